package logging

import (
	"sync"

	"github.com/rs/zerolog"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level  zerolog.Level
	Msg    string
	Fields map[string]any
}

// Recorder keeps every message in memory. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Info(msg string, fields map[string]any) {
	r.record(zerolog.InfoLevel, msg, fields)
}

func (r *Recorder) Warn(msg string, fields map[string]any) {
	r.record(zerolog.WarnLevel, msg, fields)
}

func (r *Recorder) Error(msg string, fields map[string]any) {
	r.record(zerolog.ErrorLevel, msg, fields)
}

func (r *Recorder) record(level zerolog.Level, msg string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: fields})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Warnings returns only the warn-level entries.
func (r *Recorder) Warnings() []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == zerolog.WarnLevel {
			out = append(out, e)
		}
	}
	return out
}
