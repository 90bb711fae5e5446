package paths

import (
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/icarus-vfx/icshared/pkg/errors"
)

// TokenFormat selects how RelativePath writes the variable reference.
type TokenFormat string

const (
	// TokenStandard writes $VAR.
	TokenStandard TokenFormat = "standard"
	// TokenBracketed writes ${VAR}.
	TokenBracketed TokenFormat = "bracketed"
	// TokenWindows writes %VAR%.
	TokenWindows TokenFormat = "windows"
	// TokenNuke writes the TCL form [getenv VAR].
	TokenNuke TokenFormat = "nuke"
)

// Default patterns for CheckIllegalChars and Sanitize.
const (
	DefaultIllegalPattern  = `[^\w\.-]`
	DefaultSanitizePattern = `\W`
)

var (
	windowsVarPattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)
	driveLetter       = regexp.MustCompile(`^[A-Za-z]:`)
)

// AbsolutePath expands environment variables in p, resolves . and ..
// segments and returns the result with forward slashes. An empty path
// stays empty. With stripTrailingSlash, trailing slashes are removed except
// from a bare root.
func AbsolutePath(p string, stripTrailingSlash bool) string {
	if p == "" {
		return ""
	}
	out := cleanSlash(expandVars(p))
	if stripTrailingSlash {
		trimmed := strings.TrimRight(out, "/")
		if trimmed == "" {
			return "/"
		}
		return trimmed
	}
	return out
}

// ToSlash converts backslashes to forward slashes regardless of the host.
func ToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// ToNative renders a forward-slash path with the separator of the target
// platform.
func ToNative(p string, windows bool) string {
	if windows {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return ToSlash(p)
}

// RelativePath replaces the value of the environment variable token inside
// absPath with a reference to the variable, written in the given format.
// If the variable is unset the normalised absPath is returned.
func RelativePath(absPath, token string, format TokenFormat) string {
	value := ToSlash(os.Getenv(token))
	if value == "" {
		return cleanSlash(absPath)
	}

	var ref string
	switch format {
	case TokenStandard:
		ref = "$" + token
	case TokenBracketed:
		ref = "${" + token + "}"
	case TokenWindows:
		ref = "%" + token + "%"
	case TokenNuke:
		ref = "[getenv " + token + "]"
	}

	rel := strings.ReplaceAll(ToSlash(absPath), value, ref)
	return cleanSlash(rel)
}

// CheckIllegalChars reports whether p is free of characters matched by
// pattern. The drive letter and path separators are ignored. An empty
// pattern uses DefaultIllegalPattern.
func CheckIllegalChars(p, pattern string) (bool, error) {
	if pattern == "" {
		pattern = DefaultIllegalPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidInput, "invalid pattern %q", pattern)
	}

	clean := driveLetter.ReplaceAllString(p, "")
	clean = strings.NewReplacer("/", "", `\`, "").Replace(clean)
	return !re.MatchString(clean), nil
}

// Sanitize replaces every match of pattern in s with replace. An empty
// pattern uses DefaultSanitizePattern, which strips all non-word characters.
func Sanitize(s, pattern, replace string) (string, error) {
	if pattern == "" {
		pattern = DefaultSanitizePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return s, errors.Wrapf(err, errors.ErrInvalidInput, "invalid pattern %q", pattern)
	}
	return re.ReplaceAllString(s, replace), nil
}

// expandVars expands $VAR, ${VAR} and %VAR% references. Unknown variables
// are left as written.
func expandVars(p string) string {
	if strings.Contains(p, "$") {
		p = os.Expand(p, func(name string) string {
			if v, ok := os.LookupEnv(name); ok {
				return v
			}
			return "$" + name
		})
	}
	if strings.Contains(p, "%") {
		p = windowsVarPattern.ReplaceAllStringFunc(p, func(m string) string {
			if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
				return v
			}
			return m
		})
	}
	return p
}

// cleanSlash is path.Clean for paths that may carry a drive letter or a UNC
// double slash, independent of the host OS.
func cleanSlash(p string) string {
	p = ToSlash(p)

	drive := ""
	if driveLetter.MatchString(p) {
		drive, p = p[:2], p[2:]
	}
	if p == "" {
		return drive
	}

	unc := drive == "" && strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "///")
	cleaned := path.Clean(p)
	if unc {
		cleaned = "/" + cleaned
	}
	return drive + cleaned
}

// isBareDrive reports whether p is exactly a drive letter and colon.
func isBareDrive(p string) bool {
	return len(p) == 2 && driveLetter.MatchString(p)
}

// endsWithDrive reports whether p ends in a drive letter and colon with
// nothing after it, as in "P:" or "//host/P:".
func endsWithDrive(p string) bool {
	return len(p) >= 2 && isBareDrive(p[len(p)-2:])
}
