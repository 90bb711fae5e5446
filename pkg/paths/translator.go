package paths

import (
	"fmt"
	"strings"

	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/logging"
	"github.com/icarus-vfx/icshared/pkg/platform"
)

// Translator rewrites foreign mount prefixes into the prefixes of the OS the
// process runs as.
type Translator struct {
	os       platform.OS
	globals  config.GlobalsSource
	reporter logging.Reporter
}

// NewTranslator builds a Translator for s.OS. When globals is nil the
// document at s.Globals is read on every call.
func NewTranslator(s *config.Settings, globals config.GlobalsSource, reporter logging.Reporter) *Translator {
	if globals == nil {
		globals = config.FileGlobals(s.Globals)
	}
	if reporter == nil {
		reporter = logging.Discard()
	}
	return &Translator{os: s.OS, globals: globals, reporter: reporter}
}

// OS is the platform paths are translated for.
func (t *Translator) OS() platform.OS {
	if t == nil {
		return platform.Host()
	}
	return t.os
}

// Translate returns p rewritten for the current OS. Any problem with the
// globals document yields p unchanged.
func (t *Translator) Translate(p string) string {
	out, err := t.TranslateE(p)
	if err != nil {
		return p
	}
	return out
}

// TranslateE is Translate that reports why the rules could not be applied.
// On error the returned path is p, untouched.
//
// Rules apply in document order and each one sees the output of the
// previous, so an unlucky rule set can rewrite a path twice. Only the
// leading prefix is replaced.
func (t *Translator) TranslateE(p string) (string, error) {
	if t == nil {
		return p, nil
	}
	g, err := t.globals.Globals()
	if err != nil {
		t.reporter.Debug(fmt.Sprintf("Path translation unavailable: %v", err))
		return p, err
	}
	rules, err := g.TranslationRules()
	if err != nil {
		t.reporter.Debug(fmt.Sprintf("Path translation unavailable: %v", err))
		return p, err
	}

	out := p
	target := t.os
	for _, rule := range rules {
		replacement := rule.Prefix(target)
		for _, other := range target.Others() {
			prefix := rule.Prefix(other)
			if prefix == "" || !strings.HasPrefix(out, prefix) {
				continue
			}
			out = replacement + out[len(prefix):]
			break
		}
	}

	if target.IsWindows() && endsWithDrive(out) {
		out += target.Separator()
	}

	result := AbsolutePath(out, false)
	if out != p {
		t.reporter.Detail(fmt.Sprintf("Performing path translation:\n  from: %s\n    to: %s", p, result))
	}
	return result, nil
}
