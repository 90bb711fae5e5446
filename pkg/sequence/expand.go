package sequence

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/icarus-vfx/icshared/pkg/errors"
)

// DefaultShotRange is used by Check when no shot range is configured.
const DefaultShotRange = "1001-1125"

var rangeSeparators = regexp.MustCompile(`[-,\s]`)

// Expand turns a bracketed sequence name such as "plate.[1001-1003].exr"
// into the slash-separated paths of each frame under dir. Padding follows
// the width of the last number in the brackets. A name without a valid
// bracketed range is returned as a single path.
func Expand(dir, pattern string) []string {
	single := []string{filepath.ToSlash(filepath.Join(dir, pattern))}

	if strings.Count(pattern, "[") != 1 || strings.Count(pattern, "]") != 1 {
		return single
	}
	open, end := strings.Index(pattern, "["), strings.Index(pattern, "]")
	if end < open {
		return single
	}
	prefix, frRange, ext := pattern[:open], pattern[open+1:end], pattern[end+1:]

	nums, err := NumList(frRange, true)
	if err != nil {
		return single
	}
	tokens := rangeSeparators.Split(frRange, -1)
	padding := len(tokens[len(tokens)-1])

	paths := make([]string, 0, len(nums))
	for _, n := range nums {
		paths = append(paths, filepath.ToSlash(filepath.Join(dir, prefix+pad(n, padding)+ext)))
	}
	return paths
}

// Check reports whether frameRange ("first-last" or a single frame) is
// exactly the shot's range. An empty shotRange means DefaultShotRange.
func Check(frameRange, shotRange string) (bool, error) {
	if shotRange == "" {
		shotRange = DefaultShotRange
	}
	first, last, err := bounds(frameRange)
	if err != nil {
		return false, err
	}
	shotFirst, shotLast, err := bounds(shotRange)
	if err != nil {
		return false, err
	}
	return first == shotFirst && last == shotLast, nil
}

func bounds(r string) (int, int, error) {
	r = strings.TrimSpace(r)
	start, end, found := strings.Cut(r, "-")
	if !found {
		end = start
	}
	first, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, errors.Newf(errors.ErrInvalidInput, "Invalid frame range %q", r)
	}
	last, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return 0, 0, errors.Newf(errors.ErrInvalidInput, "Invalid frame range %q", r)
	}
	return first, last, nil
}
