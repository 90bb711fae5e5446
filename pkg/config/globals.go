package config

import (
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/platform"
)

// TranslationRule lists the prefixes under which one logical location is
// mounted on each OS.
type TranslationRule struct {
	Mac   string `koanf:"mac"`
	Win   string `koanf:"win"`
	Linux string `koanf:"linux"`
}

// Prefix returns the rule's prefix for the given OS.
func (r TranslationRule) Prefix(o platform.OS) string {
	switch o {
	case platform.Windows:
		return r.Win
	case platform.Mac:
		return r.Mac
	default:
		return r.Linux
	}
}

// DriveMapping maps a drive letter token such as "Z:" to the UNC prefix it
// is mounted from.
type DriveMapping struct {
	Drive string
	UNC   string
}

// Globals is the decoded shared globals document. The two sections are
// independent: a document may carry only one of them.
type Globals struct {
	// Rules are tried in document order. Nil when the document has no
	// translation.rules section.
	Rules []TranslationRule
	// Drives is sorted longest UNC prefix first, then by drive letter, so a
	// first-match scan picks the most specific mapping.
	Drives []DriveMapping
}

type globalsDoc struct {
	Translation struct {
		Rules []TranslationRule `koanf:"rules"`
	} `koanf:"translation"`
	Drives struct {
		Mappings map[string]string `koanf:"mappings"`
	} `koanf:"drives"`
}

// GlobalsSource yields the current globals document. Implementations must
// not cache: each call reflects the document as it is now.
type GlobalsSource interface {
	Globals() (*Globals, error)
}

// FileGlobals reads the globals document from a file on every call.
type FileGlobals string

// Globals implements GlobalsSource.
func (f FileGlobals) Globals() (*Globals, error) {
	return LoadGlobals(string(f))
}

// StaticGlobals serves a fixed document; handy for tests and for callers
// that assemble rules in code.
type StaticGlobals struct {
	Doc *Globals
	Err error
}

// Globals implements GlobalsSource.
func (s StaticGlobals) Globals() (*Globals, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Doc == nil {
		return nil, errors.New(errors.ErrConfigUnavailable, "no globals document configured")
	}
	return s.Doc, nil
}

// TranslationRules returns g.Rules, or ErrConfigUnavailable when the
// document has no translation.rules section.
func (g *Globals) TranslationRules() ([]TranslationRule, error) {
	if g.Rules == nil {
		return nil, errors.New(errors.ErrConfigUnavailable, "globals document has no translation.rules")
	}
	return g.Rules, nil
}

// LoadGlobals parses the globals document at path. The format follows the
// file extension (.json, .toml, .yaml/.yml). Any problem, including a
// document with neither translation.rules nor drives.mappings or a rule
// without all three prefixes, is reported as ErrConfigUnavailable.
func LoadGlobals(path string) (*Globals, error) {
	if path == "" {
		return nil, errors.New(errors.ErrConfigUnavailable, "globals path is not set")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigUnavailable, "globals document %s is not readable", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigUnavailable, "failed to parse globals document %s", path)
	}
	return decodeGlobals(k, path)
}

// ParseGlobals is LoadGlobals for an in-memory document.
func ParseGlobals(data []byte, format string) (*Globals, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, parserFor("globals."+format)); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigUnavailable, "failed to parse globals document")
	}
	return decodeGlobals(k, "<memory>")
}

func decodeGlobals(k *koanf.Koanf, source string) (*Globals, error) {
	hasRules, hasDrives := k.Exists("translation.rules"), k.Exists("drives.mappings")
	if !hasRules && !hasDrives {
		return nil, errors.Newf(errors.ErrConfigUnavailable, "%s has neither translation.rules nor drives.mappings", source)
	}
	for i, rule := range k.Slices("translation.rules") {
		for _, field := range []string{"mac", "win", "linux"} {
			if !rule.Exists(field) {
				return nil, errors.Newf(errors.ErrConfigUnavailable,
					"%s: translation rule %d is missing %q", source, i, field)
			}
		}
	}

	var doc globalsDoc
	if err := unmarshal(k, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigUnavailable, "failed to decode %s", source)
	}

	g := &Globals{Rules: doc.Translation.Rules}
	if hasRules && g.Rules == nil {
		g.Rules = []TranslationRule{}
	}
	for drive, unc := range doc.Drives.Mappings {
		g.Drives = append(g.Drives, DriveMapping{Drive: drive, UNC: unc})
	}
	sort.Slice(g.Drives, func(i, j int) bool {
		a, b := g.Drives[i], g.Drives[j]
		if len(a.UNC) != len(b.UNC) {
			return len(a.UNC) > len(b.UNC)
		}
		return strings.ToUpper(a.Drive) < strings.ToUpper(b.Drive)
	})
	return g, nil
}
