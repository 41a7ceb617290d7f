package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger records leveled messages with optional structured fields.
// fields may be nil.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type nop struct{}

func (nop) Info(string, map[string]any)  {}
func (nop) Warn(string, map[string]any)  {}
func (nop) Error(string, map[string]any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

type zl struct {
	log zerolog.Logger
}

// FromZerolog adapts a zerolog.Logger.
func FromZerolog(log zerolog.Logger) Logger {
	return zl{log: log}
}

func (z zl) Info(msg string, fields map[string]any)  { z.log.Info().Fields(fields).Msg(msg) }
func (z zl) Warn(msg string, fields map[string]any)  { z.log.Warn().Fields(fields).Msg(msg) }
func (z zl) Error(msg string, fields map[string]any) { z.log.Error().Fields(fields).Msg(msg) }

// Console returns a Logger printing human-readable lines to w.
func Console(w io.Writer) Logger {
	return FromZerolog(Setup(w, FormatText))
}
