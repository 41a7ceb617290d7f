package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup builds the run logger writing to w. FormatText gives uncolored
// console lines; anything else gives one JSON object per line. Writes are
// serialized so the logger can be shared between goroutines.
func Setup(w io.Writer, format string) zerolog.Logger {
	var out io.Writer = w
	if format == FormatText {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(zerolog.SyncWriter(out)).With().Timestamp().Logger()
}
