// Package filesystem provides the filesystem abstraction and the file
// operations the pipeline tools share.
//
// FS has two implementations: NewOS for the real filesystem and NewAferoFS
// for any afero.Fs, which the tests use with an in-memory filesystem.
//
// Ops layers the pipeline's semantics on top: mkdir with path translation
// and hidden dot-directories on Windows, copy, move and rename, tree
// copies, hard links with a copy fallback, and a bounded breadth-first
// walk. Operations return coded errors from pkg/errors and report what they
// do through a logging.Reporter.
package filesystem
