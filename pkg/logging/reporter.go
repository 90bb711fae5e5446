package logging

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Reporter is the leveled message sink the filesystem, path and process
// layers talk to. Calls never fail and never block on the caller.
type Reporter interface {
	Debug(msg string)
	Detail(msg string)
	Message(msg string)
	Progress(msg string)
	Warning(msg string)
	Error(msg string)
}

// Notifier raises a desktop notification. It is satisfied by the notify
// package.
type Notifier interface {
	Notify(title, message string) error
}

// Verbose is the zerolog-backed Reporter.
type Verbose struct {
	logger   zerolog.Logger
	notifier Notifier
	title    string

	mu           sync.Mutex
	lastProgress bool
}

// NewReporter adapts logger into a Reporter. The notifier may be nil, in
// which case MessageNotify behaves like Message.
func NewReporter(logger zerolog.Logger, notifier Notifier) *Verbose {
	return &Verbose{logger: logger, notifier: notifier, title: "icshared"}
}

// WithTitle sets the title used for notifications.
func (v *Verbose) WithTitle(title string) *Verbose {
	if title != "" {
		v.title = title
	}
	return v
}

// Debug logs at the most verbose level.
func (v *Verbose) Debug(msg string) {
	v.settle()
	v.logger.Trace().Msg(msg)
}

// Detail logs supplementary information.
func (v *Verbose) Detail(msg string) {
	v.settle()
	v.logger.Debug().Msg(msg)
}

// Message logs an informational line.
func (v *Verbose) Message(msg string) {
	v.settle()
	v.logger.Info().Msg(msg)
}

// Progress logs a status line. Consecutive progress lines are marked so a
// colour console can overwrite the previous one.
func (v *Verbose) Progress(msg string) {
	v.mu.Lock()
	inline := v.lastProgress
	v.lastProgress = true
	v.mu.Unlock()

	v.logger.Info().Bool("progress", true).Bool("inline", inline).Msg(msg)
}

// Warning logs a recoverable problem.
func (v *Verbose) Warning(msg string) {
	v.settle()
	v.logger.Warn().Msg(msg)
}

// Error logs a failure.
func (v *Verbose) Error(msg string) {
	v.settle()
	v.logger.Error().Msg(msg)
}

// MessageNotify logs msg and also raises a desktop notification. A failed
// notification is logged at detail level and otherwise ignored.
func (v *Verbose) MessageNotify(msg string) {
	v.Message(msg)
	if v.notifier == nil {
		return
	}
	if err := v.notifier.Notify(v.title, msg); err != nil {
		v.logger.Debug().Err(err).Msg("notification failed")
	}
}

func (v *Verbose) settle() {
	v.mu.Lock()
	v.lastProgress = false
	v.mu.Unlock()
}

type discard struct{}

func (discard) Debug(string)    {}
func (discard) Detail(string)   {}
func (discard) Message(string)  {}
func (discard) Progress(string) {}
func (discard) Warning(string)  {}
func (discard) Error(string)    {}

// Discard returns a Reporter that drops everything.
func Discard() Reporter {
	return discard{}
}

// Pluralise returns "<count> <noun>" with an "s" appended unless count is
// exactly one.
func Pluralise(noun string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
