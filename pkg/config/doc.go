// Package config handles configuration management for icshared.
//
// Two documents are involved. Settings are the process-wide parameters the
// pipeline exports as IC_* environment variables (target OS, shell,
// verbosity, recent-list size, notification timeout); they are loaded once at
// startup and passed to every component. Globals is the shared studio
// document holding path translation rules and drive mappings; it is read
// fresh each time a component needs it, so edits take effect without a
// restart and there is nothing to invalidate.
package config
