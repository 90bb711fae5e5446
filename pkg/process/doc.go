// Package process runs external programs for the pipeline tools.
//
// Runner covers the four ways the tools start processes: Execute captures
// output and waits, Call waits without capturing, Popen starts a shell
// command line and returns at once, and Shell drops the user into their
// interactive shell. Open hands a path or URL to the desktop's default
// application.
package process
