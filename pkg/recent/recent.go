// Package recent keeps most-recently-used lists, such as recent shots or
// recent scene files, in a small document on disk.
//
// A document holds any number of lists under string keys. Each list is
// newest first, holds no duplicates and is capped in length.
package recent

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/filesystem"
	"github.com/icarus-vfx/icshared/pkg/logging"
)

// DefaultKey is the list used when none is named.
const DefaultKey = "default"

// List is an open recent-list document.
type List struct {
	path     string
	key      string
	max      int
	codec    codec
	fs       filesystem.FS
	reporter logging.Reporter
	lists    map[string][]string
}

// Option configures Open.
type Option func(*List)

// WithFS stores the document on fsys instead of the OS filesystem.
func WithFS(fsys filesystem.FS) Option {
	return func(l *List) { l.fs = fsys }
}

// WithReporter sends progress messages to r.
func WithReporter(r logging.Reporter) Option {
	return func(l *List) { l.reporter = r }
}

// Open loads the document at path. A missing file is an empty document.
// key selects the list Put and Get work on, and limit caps every list (values
// below one are treated as one). The storage format follows the extension:
// .toml, .yaml or .yml, and JSON for anything else.
func Open(path, key string, limit int, opts ...Option) (*List, error) {
	if key == "" {
		key = DefaultKey
	}
	if limit < 1 {
		limit = 1
	}
	l := &List{
		path:     path,
		key:      key,
		max:      limit,
		codec:    codecFor(path),
		fs:       filesystem.NewOS(),
		reporter: logging.Discard(),
		lists:    map[string][]string{},
	}
	for _, opt := range opts {
		opt(l)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Classify(err) == errors.ErrNotFound {
			return l, nil
		}
		return nil, errors.FromOS(err, "Cannot read recent list %s", path)
	}
	if len(data) == 0 {
		return l, nil
	}

	lists, err := l.codec.decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "Cannot parse recent list %s", path)
	}
	l.lists = lists
	return l, nil
}

// Path is where the document is stored.
func (l *List) Path() string {
	return l.path
}

// Put adds entry to the front of the default list and saves the document.
func (l *List) Put(entry string) error {
	return l.PutKey(l.key, entry)
}

// PutKey adds entry to the front of the list named key, removing any
// earlier occurrence and dropping the oldest entries beyond the cap, then
// saves the document.
func (l *List) PutKey(key, entry string) error {
	list := slices.DeleteFunc(slices.Clone(l.lists[key]), func(s string) bool {
		return s == entry
	})
	list = append([]string{entry}, list...)
	if len(list) > l.max {
		list = list[:l.max]
	}
	l.lists[key] = list

	if err := l.save(); err != nil {
		l.reporter.Warning(fmt.Sprintf("Entry %s could not be added to recent list.", entry))
		return err
	}
	l.reporter.Detail(fmt.Sprintf("Added %s to recent list.", entry))
	return nil
}

// Get returns the default list, newest first.
func (l *List) Get() []string {
	return l.GetKey(l.key)
}

// GetKey returns a copy of the list named key, newest first and no longer
// than the cap. An unknown key gives an empty list.
func (l *List) GetKey(key string) []string {
	list := l.lists[key]
	if len(list) > l.max {
		list = list[:l.max]
	}
	return append([]string{}, list...)
}

// Last returns the newest entry of the default list.
func (l *List) Last() (string, bool) {
	return l.LastKey(l.key)
}

// LastKey returns the newest entry of the list named key.
func (l *List) LastKey(key string) (string, bool) {
	list := l.lists[key]
	if len(list) == 0 {
		l.reporter.Debug(fmt.Sprintf("Recent list %q is empty", key))
		return "", false
	}
	return list[0], true
}

// save writes the document next to its final location and renames it into
// place so readers never see a partial file.
func (l *List) save() error {
	data, err := l.codec.encode(l.lists)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnknown, "Cannot encode recent list %s", l.path)
	}

	if err := l.fs.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return errors.FromOS(err, "Cannot create directory for %s", l.path)
	}
	tmp := l.path + ".tmp"
	if err := l.fs.WriteFile(tmp, data, 0o644); err != nil {
		return errors.FromOS(err, "Cannot write %s", tmp)
	}
	if err := l.fs.Rename(tmp, l.path); err != nil {
		_ = l.fs.Remove(tmp)
		return errors.FromOS(err, "Cannot replace %s", l.path)
	}
	return nil
}
