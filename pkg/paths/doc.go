// Package paths rewrites paths between the mount conventions of the
// studio's operating systems.
//
// A path written on one machine, say /Volumes/proj/shot01 on a Mac, names
// the same file as P:/shot01 on Windows and /mnt/proj/shot01 on Linux. The
// shared globals document lists these equivalences as translation rules;
// Translator applies them for the OS the process runs as.
//
// Everything here is best-effort. A missing or broken globals document makes
// translation the identity function rather than an error for the caller.
//
// The package also holds the small normalisation helpers the rest of the
// pipeline relies on:
//
//   - AbsolutePath: expand variables, resolve . and .., forward slashes
//   - RelativePath: swap a known root for an environment variable token
//   - CheckIllegalChars and Sanitize: file name hygiene
//
// On Windows, DriveMapper additionally turns UNC paths such as
// //fileserver/projects/shot01 into their mapped drive letters.
package paths
