package logging

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/icarus-vfx/icshared/pkg/ui"
)

// NewConsoleWriter returns a zerolog console writer that prints only the
// message, prefixed and styled by level the way pipeline users expect:
//
//	DEBUG: ...
//	Warning: ...
//	ERROR: ...
//
// Structured fields still reach the activity log file; they are dropped
// from the console.
func NewConsoleWriter(out io.Writer, p ui.Presentation) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
		FormatPrepare: func(evt map[string]interface{}) error {
			level, _ := evt[zerolog.LevelFieldName].(string)
			msg, _ := evt[zerolog.MessageFieldName].(string)
			styled := decorate(level, msg, p)
			if inline, _ := evt["inline"].(bool); inline && p.Color {
				styled = cursorUpClear + styled
			}
			for k := range evt {
				delete(evt, k)
			}
			evt[zerolog.MessageFieldName] = styled
			return nil
		},
	}
}

// Moves the cursor to the start of the previous line and clears it.
const cursorUpClear = "\x1b[1A\x1b[1000D\x1b[0K"

func decorate(level, msg string, p ui.Presentation) string {
	switch level {
	case zerolog.LevelTraceValue:
		return p.Render(ui.StyleDebug, "DEBUG: "+msg)
	case zerolog.LevelDebugValue:
		return p.Render(ui.StyleDetail, msg)
	case zerolog.LevelWarnValue:
		return p.Render(ui.StyleWarning, "Warning: "+msg)
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return p.Render(ui.StyleError, "ERROR: "+msg)
	default:
		return p.Render(ui.StyleInfo, msg)
	}
}
