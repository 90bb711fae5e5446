package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/icarus-vfx/icshared/pkg/ui"
)

// Verbosity levels used across the pipeline:
//
//	0 - Nothing is output
//	1 - Errors and messages requiring user action
//	2 - Errors and warning messages
//	3 - Info and progress messages (default)
//	4 - Detailed info messages
//	5 - Debugging messages
const (
	VerbositySilent  = 0
	VerbosityError   = 1
	VerbosityWarning = 2
	VerbosityInfo    = 3
	VerbosityDetail  = 4
	VerbosityDebug   = 5
)

// LevelFor maps a pipeline verbosity onto the zerolog level shown on the
// console.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= VerbositySilent:
		return zerolog.Disabled
	case verbosity == VerbosityError:
		return zerolog.ErrorLevel
	case verbosity == VerbosityWarning:
		return zerolog.WarnLevel
	case verbosity == VerbosityInfo:
		return zerolog.InfoLevel
	case verbosity == VerbosityDetail:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger based on verbosity level.
// Console output is filtered by verbosity; the activity log file always
// records info and above.
func SetupLogger(verbosity int, p ui.Presentation) {
	SetupLoggerTo(os.Stderr, verbosity, p)
}

// SetupLoggerTo is SetupLogger with an explicit console writer.
func SetupLoggerTo(console io.Writer, verbosity int, p ui.Presentation) {
	consoleLevel := LevelFor(verbosity)

	globalLevel := consoleLevel
	if globalLevel > zerolog.InfoLevel {
		globalLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(globalLevel)

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: NewConsoleWriter(console, p)},
			Level:  consoleLevel,
		},
	}

	// Set up file logging
	logFile := getLogFilePath()
	logFileHandle, err := setupLogFile(logFile)
	if err == nil {
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: logFileHandle},
			Level:  zerolog.InfoLevel,
		})
	}

	multi := zerolog.MultiLevelWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if err != nil {
		log.Debug().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Startup goes to the activity log only.
	if logFileHandle != nil {
		zerolog.New(logFileHandle).Info().Timestamp().
			Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns where the activity log is written.
func LogFilePath() string {
	return getLogFilePath()
}

// getLogFilePath returns the path to the log file
// It respects XDG_STATE_HOME if set, otherwise uses the XDG default
func getLogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	return filepath.Join(stateHome, "icshared", "icshared.log")
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(logger zerolog.Logger, cmd string, args []string) {
	logger.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg(fmt.Sprintf("%s %v", cmd, args))
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Trace().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Trace().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
