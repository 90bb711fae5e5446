package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/logging"
)

// CopyTreeOptions controls CopyTree.
type CopyTreeOptions struct {
	// FollowSymlinks copies what links point to. By default links are
	// recreated as links.
	FollowSymlinks bool
	// Ignore lists doublestar patterns. Each is matched against the
	// slash-separated path relative to the source and against the base
	// name; matching entries are skipped along with their contents.
	Ignore []string
}

// CopyTree copies the contents of the directory src into dst, creating dst
// when it is missing and merging into it when it exists. Files keep their
// mode and modification time. dst may not be src or lie inside it.
func (o *Ops) CopyTree(src, dst string, opts CopyTreeOptions) (string, error) {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	o.reporter.Detail(fmt.Sprintf("copy tree %q -> %q", src, dst))

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return "", o.fail(errors.Newf(errors.ErrInvalidInput, "invalid ignore pattern %q", pattern))
		}
	}

	done := logging.LogOperationStart(o.logger, "copytree")
	defer done()

	n, err := o.copyTree(src, dst, opts)
	if err != nil {
		return "", o.fail(err)
	}
	o.reporter.Detail(fmt.Sprintf("Copied %s", logging.Pluralise("file", n)))
	return dst, nil
}

func (o *Ops) copyTree(src, dst string, opts CopyTreeOptions) (int, error) {
	info, err := o.fs.Stat(src)
	if err != nil {
		return 0, errors.FromOS(err, "Cannot copy tree %s", src)
	}
	if !info.IsDir() {
		return 0, errors.Newf(errors.ErrInvalidInput, "Cannot copy tree %s: not a directory", src)
	}
	if within(src, dst) {
		return 0, errors.Newf(errors.ErrInvalidInput, "Cannot copy tree %s into itself: %s", src, dst)
	}
	return o.copyDir(src, dst, "", info, opts)
}

// within reports whether p is dir or lies below it.
func within(dir, p string) bool {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (o *Ops) copyDir(src, dst, rel string, info fs.FileInfo, opts CopyTreeOptions) (int, error) {
	if err := o.fs.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return 0, errors.FromOS(err, "Cannot create directory %s", dst)
	}

	entries, err := o.fs.ReadDir(src)
	if err != nil {
		return 0, errors.FromOS(err, "Cannot read directory %s", src)
	}

	copied := 0
	for _, entry := range entries {
		name := entry.Name()
		entryRel := path.Join(rel, name)
		if ignored(opts.Ignore, entryRel, name) {
			o.logger.Trace().Str("path", entryRel).Msg("ignored")
			continue
		}

		if rel == "" {
			o.reporter.Progress(fmt.Sprintf("Copying %s", name))
		}

		s := filepath.Join(src, name)
		d := filepath.Join(dst, name)

		entryInfo, err := o.fs.Lstat(s)
		if err != nil {
			return copied, errors.FromOS(err, "Cannot read %s", s)
		}
		if entryInfo.Mode()&fs.ModeSymlink != 0 && opts.FollowSymlinks {
			if entryInfo, err = o.fs.Stat(s); err != nil {
				return copied, errors.FromOS(err, "Cannot follow link %s", s)
			}
		}

		if entryInfo.IsDir() {
			n, err := o.copyDir(s, d, entryRel, entryInfo, opts)
			copied += n
			if err != nil {
				return copied, err
			}
			continue
		}

		if err := o.copyEntry(s, d, entryInfo, opts); err != nil {
			return copied, err
		}
		copied++
	}

	// Restore the directory's own mode once its contents are in place.
	if err := o.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return copied, errors.FromOS(err, "Cannot set mode on %s", dst)
	}
	return copied, nil
}

// copyEntry copies a single non-directory entry described by info.
func (o *Ops) copyEntry(src, dst string, info fs.FileInfo, opts CopyTreeOptions) error {
	if info.Mode()&fs.ModeSymlink != 0 && !opts.FollowSymlinks {
		target, err := o.fs.Readlink(src)
		if err != nil {
			return errors.FromOS(err, "Cannot read link %s", src)
		}
		if _, err := o.fs.Lstat(dst); err == nil {
			if err := o.fs.Remove(dst); err != nil {
				return errors.FromOS(err, "Cannot replace %s", dst)
			}
		}
		if err := o.fs.Symlink(target, dst); err != nil {
			return errors.FromOS(err, "Cannot create link %s", dst)
		}
		return nil
	}
	return o.copyFile(src, dst, true)
}

// copyFile copies file contents, and with metadata also mode and mtime.
func (o *Ops) copyFile(src, dst string, metadata bool) error {
	info, err := o.fs.Stat(src)
	if err != nil {
		return errors.FromOS(err, "Cannot copy %s", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "Cannot copy %s: is a directory", src)
	}
	if dstInfo, err := o.fs.Stat(dst); err == nil {
		if dstInfo.IsDir() {
			return errors.Newf(errors.ErrAlreadyExists, "Cannot copy to %s: is a directory", dst)
		}
		if o.fs.SameFile(info, dstInfo) {
			return errors.Newf(errors.ErrInvalidInput, "%s and %s are the same file", src, dst)
		}
	}

	in, err := o.fs.Open(src)
	if err != nil {
		return errors.FromOS(err, "Cannot copy %s", src)
	}
	defer func() { _ = in.Close() }()

	perm := fs.FileMode(0o644)
	if metadata {
		perm = info.Mode().Perm()
	}
	out, err := o.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.FromOS(err, "Cannot copy %s to %s", src, dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.FromOS(err, "Cannot copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.FromOS(err, "Cannot copy %s to %s", src, dst)
	}

	if !metadata {
		return nil
	}
	if err := o.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.FromOS(err, "Cannot set mode on %s", dst)
	}
	if err := o.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.FromOS(err, "Cannot set times on %s", dst)
	}
	return nil
}

func ignored(patterns []string, rel, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
