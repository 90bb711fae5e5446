package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	title, message string
	err            error
}

func (r *recordingNotifier) Notify(title, message string) error {
	r.title, r.message = title, message
	return r.err
}

func newTestReporter(n Notifier) (*Verbose, *bytes.Buffer) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	var buf bytes.Buffer
	return NewReporter(zerolog.New(&buf), n), &buf
}

func TestReporterLevels(t *testing.T) {
	tests := []struct {
		name  string
		call  func(Reporter)
		level string
	}{
		{"debug", func(r Reporter) { r.Debug("m") }, "trace"},
		{"detail", func(r Reporter) { r.Detail("m") }, "debug"},
		{"message", func(r Reporter) { r.Message("m") }, "info"},
		{"progress", func(r Reporter) { r.Progress("m") }, "info"},
		{"warning", func(r Reporter) { r.Warning("m") }, "warn"},
		{"error", func(r Reporter) { r.Error("m") }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestReporter(nil)
			tt.call(r)
			assert.Contains(t, buf.String(), `"level":"`+tt.level+`"`)
			assert.Contains(t, buf.String(), `"message":"m"`)
		})
	}
}

func TestReporterProgressInline(t *testing.T) {
	r, buf := newTestReporter(nil)

	r.Progress("1 of 3")
	assert.Contains(t, buf.String(), `"inline":false`)

	buf.Reset()
	r.Progress("2 of 3")
	assert.Contains(t, buf.String(), `"inline":true`)

	buf.Reset()
	r.Message("done")
	r.Progress("again")
	assert.Contains(t, buf.String(), `"inline":false`)
}

func TestMessageNotify(t *testing.T) {
	t.Run("notifies", func(t *testing.T) {
		n := &recordingNotifier{}
		r, buf := newTestReporter(n)
		r.WithTitle("nuke").MessageNotify("render finished")

		assert.Equal(t, "nuke", n.title)
		assert.Equal(t, "render finished", n.message)
		assert.Contains(t, buf.String(), "render finished")
	})

	t.Run("notification failure is logged", func(t *testing.T) {
		n := &recordingNotifier{err: errors.New("no dbus")}
		r, buf := newTestReporter(n)
		r.MessageNotify("hello")

		assert.Contains(t, buf.String(), "notification failed")
	})

	t.Run("no notifier", func(t *testing.T) {
		r, buf := newTestReporter(nil)
		r.MessageNotify("hello")
		assert.Contains(t, buf.String(), "hello")
	})
}

func TestDiscard(t *testing.T) {
	r := Discard()
	assert.NotPanics(t, func() {
		r.Debug("a")
		r.Detail("a")
		r.Message("a")
		r.Progress("a")
		r.Warning("a")
		r.Error("a")
	})
}

func TestPluralise(t *testing.T) {
	assert.Equal(t, "0 files", Pluralise("file", 0))
	assert.Equal(t, "1 file", Pluralise("file", 1))
	assert.Equal(t, "12 frames", Pluralise("frame", 12))
}
