package sequence

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/filesystem"
	"github.com/icarus-vfx/icshared/pkg/logging"
)

// Sequence describes the frames found next to a frame file.
type Sequence struct {
	Dir     string
	Prefix  string
	Frames  string // range notation, e.g. "1001-1050, 1052"
	Ext     string
	Count   int
	Padding int
	Numbers []int
}

// DetectOptions tune Detect.
type DetectOptions struct {
	// Delimiter separates the frame number; DefaultDelimiter when empty.
	Delimiter string
	// IgnorePadding accepts siblings whose frame numbers have a different
	// number of digits.
	IgnorePadding bool
	// Contiguous keeps only the run of frames containing the given file.
	Contiguous bool
}

// Finder looks for frame sequences on a filesystem.
type Finder struct {
	fs       filesystem.FS
	reporter logging.Reporter
}

// NewFinder returns a Finder over fsys.
func NewFinder(fsys filesystem.FS, reporter logging.Reporter) *Finder {
	if reporter == nil {
		reporter = logging.Discard()
	}
	return &Finder{fs: fsys, reporter: reporter}
}

// Bases lists the sequences in dir as "prefix<delimiter>#<ext>" names,
// sorted and without duplicates. Hidden files and anything that is not a
// regular file are ignored. An empty delimiter matches trailing digits
// directly.
func (f *Finder) Bases(dir, delimiter string) ([]string, error) {
	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.FromOS(err, "No such file or directory: '%s'", dir)
	}
	frameRE := regexp.MustCompile(regexp.QuoteMeta(delimiter) + `\d+$`)

	var bases []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || !f.isFile(filepath.Join(dir, name), e) {
			continue
		}
		ext := filepath.Ext(name)
		root := strings.TrimSuffix(name, ext)
		loc := frameRE.FindStringIndex(root)
		if loc == nil {
			continue
		}
		bases = append(bases, root[:loc[0]]+delimiter+"#"+ext)
	}

	slices.Sort(bases)
	return slices.Compact(bases), nil
}

// Detect finds the other frames of the sequence p belongs to.
func (f *Finder) Detect(p string, opts DetectOptions) (Sequence, error) {
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	parsed, err := ParseFilepath(p, delimiter)
	if err != nil {
		return Sequence{}, err
	}

	digits := fmt.Sprintf(`\d{%d}`, parsed.Padding())
	if opts.IgnorePadding {
		digits = `\d+`
	}
	frameRE := regexp.MustCompile("^" + regexp.QuoteMeta(parsed.Prefix+delimiter) +
		"(" + digits + ")" + regexp.QuoteMeta(parsed.Ext) + "$")

	entries, err := f.fs.ReadDir(parsed.Dir)
	if err != nil {
		return Sequence{}, errors.FromOS(err, "Cannot list %s", parsed.Dir)
	}
	var frames []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := frameRE.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			frames = append(frames, n)
		}
	}
	slices.Sort(frames)
	frames = slices.Compact(frames)

	if opts.Contiguous {
		frames = runContaining(frames, parsed.Number())
	}

	padding := parsed.Padding()
	if opts.IgnorePadding {
		padding = 0
	}
	seq := Sequence{
		Dir:     parsed.Dir,
		Prefix:  parsed.Prefix,
		Frames:  NumRange(frames, padding),
		Ext:     parsed.Ext,
		Count:   len(frames),
		Padding: padding,
		Numbers: frames,
	}
	f.reporter.Detail(fmt.Sprintf("%d frame sequence detected: %s", seq.Count, seq.Frames))
	return seq, nil
}

// runContaining returns the contiguous run of sorted that holds frame, or
// sorted unchanged when no run does.
func runContaining(sorted []int, frame int) []int {
	for _, run := range Ranges(sorted) {
		if frame >= run[0] && frame <= run[1] {
			out := make([]int, 0, run[1]-run[0]+1)
			for n := run[0]; n <= run[1]; n++ {
				out = append(out, n)
			}
			return out
		}
	}
	return sorted
}

func (f *Finder) isFile(full string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := f.fs.Stat(full)
	return err == nil && info.Mode().IsRegular()
}
