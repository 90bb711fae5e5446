// Package ui resolves how messages are presented on the terminal.
//
// Presentation is a capability decided once at startup and handed to the
// logging layer; nothing downstream inspects the environment again.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Style names understood by Render.
const (
	StyleDebug   = "Debug"
	StyleDetail  = "Detail"
	StyleInfo    = "Info"
	StyleWarning = "Warning"
	StyleError   = "Error"
	StyleHeader  = "Header"
)

// Presentation knows whether ANSI styling is wanted and how each message
// level looks.
type Presentation struct {
	Color  bool
	styles map[string]lipgloss.Style
}

// Plain returns a presentation that never emits escape codes.
func Plain() Presentation {
	return Presentation{}
}

// Colored returns a presentation that always styles output written to w.
func Colored(w io.Writer) Presentation {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return Presentation{Color: true, styles: newStyles(r)}
}

// DetectPresentation enables colour only for standalone sessions writing to
// a real terminal that supports it. NO_COLOR always wins.
func DetectPresentation(out *os.File, standalone bool) Presentation {
	if !standalone || os.Getenv("NO_COLOR") != "" {
		return Plain()
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return Plain()
	}

	if termenv.NewOutput(out).ColorProfile() == termenv.Ascii {
		return Plain()
	}

	return Colored(out)
}

// Render applies the named style. Without colour, or for an unknown name,
// the message is returned untouched.
func (p Presentation) Render(name, msg string) string {
	if !p.Color {
		return msg
	}
	style, ok := p.styles[name]
	if !ok {
		return msg
	}
	return style.Render(msg)
}

func newStyles(r *lipgloss.Renderer) map[string]lipgloss.Style {
	dark := lipgloss.Color("241")
	return map[string]lipgloss.Style{
		StyleDebug:   r.NewStyle().Foreground(dark).Reverse(true),
		StyleDetail:  r.NewStyle().Foreground(dark),
		StyleInfo:    r.NewStyle().Foreground(lipgloss.Color("81")),
		StyleWarning: r.NewStyle().Foreground(lipgloss.Color("186")),
		StyleError:   r.NewStyle().Foreground(lipgloss.Color("197")),
		StyleHeader:  r.NewStyle().Bold(true).Reverse(true),
	}
}
