package testutil

import (
	"strings"
	"sync"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level   string
	Message string
}

// Recorder is a logging.Reporter that keeps every message for inspection.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

func (r *Recorder) Debug(msg string)    { r.add("debug", msg) }
func (r *Recorder) Detail(msg string)   { r.add("detail", msg) }
func (r *Recorder) Message(msg string)  { r.add("message", msg) }
func (r *Recorder) Progress(msg string) { r.add("progress", msg) }
func (r *Recorder) Warning(msg string)  { r.add("warning", msg) }
func (r *Recorder) Error(msg string)    { r.add("error", msg) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the messages recorded at level.
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (r *Recorder) Contains(level, substr string) bool {
	for _, msg := range r.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
