package filesystem

import (
	stderrors "errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/logging"
	"github.com/icarus-vfx/icshared/pkg/paths"
	"github.com/icarus-vfx/icshared/pkg/platform"
)

// Ops performs the pipeline's file operations on an FS.
//
// Mkdir and Hardlink translate their paths for the current OS first. Copy,
// Move, Rename, CopyTree and Remove work on the literal, cleaned paths they
// are given.
type Ops struct {
	fs       FS
	tr       *paths.Translator
	os       platform.OS
	reporter logging.Reporter
	logger   zerolog.Logger
}

// NewOps wires an Ops. A nil translator disables path translation and a nil
// reporter discards messages.
func NewOps(fsys FS, tr *paths.Translator, target platform.OS, reporter logging.Reporter) *Ops {
	if reporter == nil {
		reporter = logging.Discard()
	}
	return &Ops{
		fs:       fsys,
		tr:       tr,
		os:       target,
		reporter: reporter,
		logger:   logging.GetLogger("filesystem"),
	}
}

// Quiet returns a copy of o that reports nothing.
func (o *Ops) Quiet() *Ops {
	q := *o
	q.reporter = logging.Discard()
	return &q
}

// FS returns the filesystem o operates on.
func (o *Ops) FS() FS {
	return o.fs
}

// Exists reports whether anything, including a dangling symlink, exists at p.
func (o *Ops) Exists(p string) bool {
	_, err := o.fs.Lstat(filepath.Clean(p))
	return err == nil
}

// IsDir reports whether p is a directory, following symlinks.
func (o *Ops) IsDir(p string) bool {
	info, err := o.fs.Stat(filepath.Clean(p))
	return err == nil && info.IsDir()
}

// Mkdir creates the translated path p and any missing parents, returning
// the directory created. An existing directory is not an error. On Windows a
// directory whose name starts with a dot is also marked hidden.
func (o *Ops) Mkdir(p string) (string, error) {
	target := o.tr.Translate(p)
	if target == "" {
		return "", o.fail(errors.New(errors.ErrInvalidInput, "Cannot create directory: empty path"))
	}

	if info, err := o.fs.Stat(target); err == nil {
		if info.IsDir() {
			o.reporter.Detail(fmt.Sprintf("Directory already exists: %s", target))
			return target, nil
		}
		return "", o.fail(errors.Newf(errors.ErrAlreadyExists, "Cannot create directory: %s is a file", target))
	}

	if err := o.fs.MkdirAll(target, 0o755); err != nil {
		return "", o.fail(errors.FromOS(err, "Cannot create directory: %s", target))
	}

	if o.os.IsWindows() && strings.HasPrefix(path.Base(paths.ToSlash(target)), ".") {
		if err := o.fs.SetHidden(target); err != nil {
			o.reporter.Warning(fmt.Sprintf("Cannot hide directory %s: %v", target, err))
		}
	}

	o.reporter.Detail(fmt.Sprintf("mkdir %q", target))
	return target, nil
}

// Copy copies the contents of the file src to the file dst, replacing dst.
// Neither mode nor timestamps are copied; dst must not be a directory.
func (o *Ops) Copy(src, dst string) (string, error) {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	o.reporter.Detail(fmt.Sprintf("copy %q -> %q", src, dst))

	if err := o.copyFile(src, dst, false); err != nil {
		return "", o.fail(err)
	}
	return dst, nil
}

// Move moves src to dst. If dst is an existing directory, src is moved
// inside it. Moves across devices fall back to copying and removing.
func (o *Ops) Move(src, dst string) (string, error) {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	o.reporter.Detail(fmt.Sprintf("move %q -> %q", src, dst))

	srcInfo, err := o.fs.Lstat(src)
	if err != nil {
		return "", o.fail(errors.FromOS(err, "Cannot move %s", src))
	}

	if info, err := o.fs.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
		if _, err := o.fs.Lstat(dst); err == nil {
			return "", o.fail(errors.Newf(errors.ErrAlreadyExists, "Destination path %s already exists", dst))
		}
	}

	err = o.fs.Rename(src, dst)
	if err == nil {
		return dst, nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return "", o.fail(errors.FromOS(err, "Cannot move %s to %s", src, dst))
	}

	o.logger.Debug().Str("src", src).Str("dst", dst).Msg("rename crosses devices, copying instead")
	if srcInfo.IsDir() {
		if _, err := o.copyTree(src, dst, CopyTreeOptions{}); err != nil {
			return "", o.fail(err)
		}
	} else if err := o.copyEntry(src, dst, srcInfo, CopyTreeOptions{}); err != nil {
		return "", o.fail(err)
	}
	if err := o.fs.RemoveAll(src); err != nil {
		return "", o.fail(errors.FromOS(err, "Copied %s but cannot remove it", src))
	}
	return dst, nil
}

// Rename renames src to dst.
func (o *Ops) Rename(src, dst string) (string, error) {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	o.reporter.Detail(fmt.Sprintf("rename %q -> %q", src, dst))

	if err := o.fs.Rename(src, dst); err != nil {
		return "", o.fail(errors.FromOS(err, "Cannot rename %s to %s", src, dst))
	}
	return dst, nil
}

// Remove deletes the file or directory tree at p. The path is not
// translated. Removing something that does not exist is an ErrNotFound
// failure. With quiet set nothing is reported.
func (o *Ops) Remove(p string, quiet bool) (string, error) {
	if quiet {
		return o.Quiet().Remove(p, false)
	}

	p = filepath.Clean(p)
	o.reporter.Detail(fmt.Sprintf("remove %q", p))

	info, err := o.fs.Lstat(p)
	if err != nil {
		return "", o.fail(errors.FromOS(err, "Cannot remove %s", p))
	}

	if info.IsDir() {
		err = o.fs.RemoveAll(p)
	} else {
		err = o.fs.Remove(p)
	}
	if err != nil {
		return "", o.fail(errors.FromOS(err, "Cannot remove %s", p))
	}
	return p, nil
}

// Hardlink links dst to src, both translated first. A directory dst
// receives the link under the source's name, and an existing file at the
// destination is replaced.
//
// A destination that already is the source, by path or by file identity, is
// left alone and returned as linked.
//
// With verify set, the link is confirmed by comparing file identity. If the
// link cannot be made or confirmed, the file is copied instead and the copy
// is returned. Without verify the destination is returned unconfirmed.
func (o *Ops) Hardlink(src, dst string, verify bool) (string, error) {
	src, dst = o.tr.Translate(src), o.tr.Translate(dst)

	if info, err := o.fs.Stat(dst); err == nil && info.IsDir() {
		dst = path.Join(paths.ToSlash(dst), path.Base(paths.ToSlash(src)))
	}

	if info, err := o.fs.Lstat(dst); err == nil && !info.IsDir() {
		if o.sameFile(src, dst) {
			o.reporter.Detail(fmt.Sprintf("Already linked: %s", dst))
			return dst, nil
		}
		if err := o.fs.Remove(dst); err != nil {
			return "", o.fail(errors.FromOS(err, "Cannot replace %s", dst))
		}
	}

	o.reporter.Detail(fmt.Sprintf("link %q -> %q", src, dst))
	linkErr := o.fs.Link(src, dst)

	if !verify {
		if linkErr != nil {
			return "", o.fail(errors.FromOS(linkErr, "Cannot link %s to %s", dst, src))
		}
		return dst, nil
	}

	if linkErr == nil {
		if err := o.verifyLink(src, dst); err == nil {
			return dst, nil
		}
	} else {
		o.logger.Debug().Err(linkErr).Str("src", src).Str("dst", dst).Msg("hardlink failed")
	}

	o.reporter.Warning("Failed to create hardlink. Attempting to copy file instead.")
	return o.Copy(src, dst)
}

// sameFile reports whether a and b name the same file.
func (o *Ops) sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	x, err := o.fs.Stat(a)
	if err != nil {
		return false
	}
	y, err := o.fs.Stat(b)
	if err != nil {
		return false
	}
	return o.fs.SameFile(x, y)
}

func (o *Ops) verifyLink(src, dst string) error {
	a, err := o.fs.Stat(src)
	if err != nil {
		return errors.FromOS(err, "Cannot verify hardlink %s", dst)
	}
	b, err := o.fs.Stat(dst)
	if err != nil {
		return errors.FromOS(err, "Cannot verify hardlink %s", dst)
	}
	if !o.fs.SameFile(a, b) {
		return errors.Newf(errors.ErrVerificationFailed, "%s and %s are different files", src, dst)
	}
	return nil
}

// fail reports err and hands it back.
func (o *Ops) fail(err error) error {
	o.reporter.Error(errors.Message(err))
	return err
}
