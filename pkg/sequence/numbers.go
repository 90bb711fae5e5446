// Package sequence converts between frame lists and their compact range
// notation, and finds numbered image sequences on disk.
//
// Range notation is a comma or space separated list of single frames and
// first-last runs, optionally stepped: "1-5, 20, 50-55x2". Runs may be
// written in reverse ("10-1").
package sequence

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/icarus-vfx/icshared/pkg/errors"
)

var runPattern = regexp.MustCompile(`^(\d+)-(\d+)(?:x(\d+))?$`)

// NumList expands range notation into frame numbers with duplicates
// removed. With sorted the result is ascending, otherwise frames keep the
// order they first appear in.
func NumList(s string, sorted bool) ([]int, error) {
	groups := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "No frame range specified.")
	}

	var nums []int
	for _, grp := range groups {
		if n, err := strconv.Atoi(grp); err == nil {
			nums = append(nums, n)
			continue
		}

		m := runPattern.FindStringSubmatch(grp)
		if m == nil {
			return nil, errors.Newf(errors.ErrInvalidInput, "Sequence format is invalid: %q", grp)
		}
		first, _ := strconv.Atoi(m[1])
		last, _ := strconv.Atoi(m[2])
		step := 1
		if m[3] != "" {
			step, _ = strconv.Atoi(m[3])
			if step < 1 {
				return nil, errors.Newf(errors.ErrInvalidInput, "Sequence step must be positive: %q", grp)
			}
		}

		if first > last {
			for n := first; n >= last; n -= step {
				nums = append(nums, n)
			}
		} else {
			for n := first; n <= last; n += step {
				nums = append(nums, n)
			}
		}
	}

	if sorted {
		slices.Sort(nums)
		return slices.Compact(nums), nil
	}
	return unique(nums), nil
}

// NumRange is the inverse of NumList: it collapses nums into range
// notation, zero-padding every number to at least padding digits.
func NumRange(nums []int, padding int) string {
	sorted := slices.Clone(nums)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, 0, len(sorted))
	for _, run := range Ranges(sorted) {
		if run[0] == run[1] {
			parts = append(parts, pad(run[0], padding))
		} else {
			parts = append(parts, pad(run[0], padding)+"-"+pad(run[1], padding))
		}
	}
	return strings.Join(parts, ", ")
}

// Ranges splits an ascending list into contiguous runs, each given as its
// first and last value.
func Ranges(sorted []int) [][2]int {
	var runs [][2]int
	for _, n := range sorted {
		if len(runs) > 0 && n == runs[len(runs)-1][1]+1 {
			runs[len(runs)-1][1] = n
			continue
		}
		runs = append(runs, [2]int{n, n})
	}
	return runs
}

// Chunks splits s into consecutive pieces of n elements; the last piece may
// be shorter. It returns nil when n is less than one.
func Chunks[T any](s []T, n int) [][]T {
	if n < 1 {
		return nil
	}
	var out [][]T
	for c := range slices.Chunk(s, n) {
		out = append(out, c)
	}
	return out
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

func unique(nums []int) []int {
	seen := make(map[int]bool, len(nums))
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
