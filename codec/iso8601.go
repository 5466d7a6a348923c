// Package codec converts the textual date formats used by the sets API.
package codec

import (
	"strings"
	"time"
)

// MidnightMarker is the time-of-day literal every published date carries.
const MidnightMarker = "00:00:00.00"

// Epoch is the canonical form of the Unix epoch, used as a stand-in for
// absent optional dates.
const Epoch = "1970-01-01T00:00:00.000Z"

// layouts accepted by ParseISO8601, most specific first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseISO8601 parses the date and date-time forms of ISO 8601 that
// browsers accept. Values without a zone are read as UTC.
func ParseISO8601(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// FormatISO8601 renders t in UTC with millisecond precision, the shape the
// dataset uses ("2020-01-01T00:00:00.000Z").
func FormatISO8601(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// HasMidnightMarker reports whether the literal time-of-day is all zero.
func HasMidnightMarker(s string) bool { return strings.Contains(s, MidnightMarker) }
