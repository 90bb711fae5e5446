package paths

import (
	"fmt"
	"strings"

	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/logging"
	"github.com/icarus-vfx/icshared/pkg/platform"
)

// DriveMapper replaces UNC prefixes with the drive letters they are mapped
// to. It only acts when running as Windows.
type DriveMapper struct {
	os       platform.OS
	globals  config.GlobalsSource
	reporter logging.Reporter
}

// NewDriveMapper reads drive mappings from the same source a Translator
// built with the same arguments would use.
func NewDriveMapper(s *config.Settings, globals config.GlobalsSource, reporter logging.Reporter) *DriveMapper {
	if globals == nil {
		globals = config.FileGlobals(s.Globals)
	}
	if reporter == nil {
		reporter = logging.Discard()
	}
	return &DriveMapper{os: s.OS, globals: globals, reporter: reporter}
}

// MapToDrive converts p to its mapped drive form. Paths that match no
// mapping come back normalised; configuration problems return p as given.
func (m *DriveMapper) MapToDrive(p string) string {
	out, err := m.MapToDriveE(p)
	if err != nil {
		return p
	}
	return out
}

// MapToDriveE is MapToDrive that reports configuration errors.
//
// Mappings are tried longest UNC prefix first and the first match wins. A
// prefix only matches whole path components, and case is ignored.
func (m *DriveMapper) MapToDriveE(p string) (string, error) {
	if !m.os.IsWindows() {
		return p, nil
	}
	g, err := m.globals.Globals()
	if err != nil {
		m.reporter.Debug(fmt.Sprintf("Drive mapping unavailable: %v", err))
		return p, err
	}

	norm := AbsolutePath(p, false)
	for _, mapping := range g.Drives {
		unc := AbsolutePath(mapping.UNC, true)
		if unc == "" || len(norm) < len(unc) || !strings.EqualFold(norm[:len(unc)], unc) {
			continue
		}
		rest := norm[len(unc):]
		if rest != "" && !strings.HasPrefix(rest, "/") {
			continue
		}

		out := mapping.Drive + rest
		if isBareDrive(out) {
			out += "/"
		}
		m.reporter.Detail(fmt.Sprintf("Converting UNC path:\n  from: %s\n    to: %s", norm, out))
		return out, nil
	}
	return norm, nil
}
