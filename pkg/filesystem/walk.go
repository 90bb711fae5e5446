package filesystem

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/icarus-vfx/icshared/pkg/errors"
)

// WalkEntry is one directory visited by Walk.
type WalkEntry struct {
	// Dir is the directory listed.
	Dir string
	// Dirs and Files hold the full paths of its entries. Symlinks to
	// directories count as directories.
	Dirs  []string
	Files []string
	// Depth is 1 for the top directory.
	Depth int
}

// Walk lists top and the directories below it breadth-first, descending at
// most maxdepth levels; maxdepth 1 lists only top and anything below 1 is
// treated as 1. A directory that cannot be read yields an error for that
// directory and the walk carries on.
//
// The sequence is lazy and holds no state between iterations, so it may be
// ranged over any number of times.
func Walk(fsys FS, top string, maxdepth int) iter.Seq2[WalkEntry, error] {
	if maxdepth < 1 {
		maxdepth = 1
	}
	top = filepath.Clean(top)

	return func(yield func(WalkEntry, error) bool) {
		type pending struct {
			dir   string
			depth int
		}
		queue := []pending{{dir: top, depth: 1}}

		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]

			entry, err := list(fsys, next.dir)
			entry.Depth = next.depth
			if err != nil {
				if !yield(entry, err) {
					return
				}
				continue
			}
			if !yield(entry, nil) {
				return
			}

			if next.depth < maxdepth {
				for _, d := range entry.Dirs {
					queue = append(queue, pending{dir: d, depth: next.depth + 1})
				}
			}
		}
	}
}

// Walk translates top and walks it on o's filesystem.
func (o *Ops) Walk(top string, maxdepth int) iter.Seq2[WalkEntry, error] {
	return Walk(o.fs, o.tr.Translate(top), maxdepth)
}

func list(fsys FS, dir string) (WalkEntry, error) {
	entry := WalkEntry{Dir: dir}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return entry, errors.FromOS(err, "Cannot list %s", dir)
	}

	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if isDirEntry(fsys, full, e) {
			entry.Dirs = append(entry.Dirs, full)
		} else {
			entry.Files = append(entry.Files, full)
		}
	}
	return entry, nil
}

func isDirEntry(fsys FS, full string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(full)
	return err == nil && info.IsDir()
}
