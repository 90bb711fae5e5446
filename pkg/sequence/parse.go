package sequence

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/icarus-vfx/icshared/pkg/errors"
)

// DefaultDelimiter separates the frame number from the rest of a file name.
const DefaultDelimiter = "."

var trailingDigits = regexp.MustCompile(`\d+$`)

// Parsed is a frame file name split into its parts.
type Parsed struct {
	Dir    string
	Prefix string
	Frame  string
	Ext    string
}

// Padding is the number of digits in the frame number.
func (p Parsed) Padding() int {
	return len(p.Frame)
}

// Number is the frame number as an integer.
func (p Parsed) Number() int {
	n, _ := strconv.Atoi(p.Frame)
	return n
}

// ParseFilepath splits a frame file path such as "/shots/sh010/plate.1001.exr"
// into its directory, prefix, frame number and extension. The frame is the
// text after the last delimiter; an empty delimiter takes the trailing
// digits of the name instead.
func ParseFilepath(p, delimiter string) (Parsed, error) {
	name := filepath.Base(p)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	parsed := Parsed{Dir: filepath.Dir(p), Ext: ext}
	if delimiter != "" {
		i := strings.LastIndex(base, delimiter)
		if i < 0 {
			return Parsed{}, errors.Newf(errors.ErrInvalidInput, "Could not parse sequence: %s", p)
		}
		parsed.Prefix, parsed.Frame = base[:i], base[i+len(delimiter):]
	} else {
		loc := trailingDigits.FindStringIndex(base)
		if loc != nil {
			parsed.Prefix, parsed.Frame = base[:loc[0]], base[loc[0]:]
		}
	}

	if !isDigits(parsed.Frame) {
		return Parsed{}, errors.Newf(errors.ErrInvalidInput, "Could not parse sequence: %s", p)
	}
	return parsed, nil
}

// Frame returns the frame number of p, or -1 when p has none.
func Frame(p string) int {
	parsed, err := ParseFilepath(p, DefaultDelimiter)
	if err != nil {
		return -1
	}
	return parsed.Number()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
