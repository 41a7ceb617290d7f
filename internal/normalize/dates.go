package normalize

import (
	"strings"
	"time"
)

// Tried in order; the first layout that parses wins. Timestamps come first
// so their time-of-day and zone can be discarded.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006",
}

// Date parses s as a calendar date and returns it at UTC midnight.
// For timestamps the date is taken as written, before any zone conversion.
func Date(field, s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, Invalid(KindInvalidDate, field, s, "unrecognized date %q", s)
}
