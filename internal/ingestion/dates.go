// internal/ingestion/dates.go
package ingestion

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnsupportedDate = errors.New("unsupported date format")

// DefaultDateLayouts are tried in order. Day-first layouts precede
// month-first ones, so "03-04-2024" is the 3rd of April.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z",

	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"02 01 2006",

	"01-02-2006",
	"01/02/2006",
	"01.02.2006",
	"01 02 2006",

	"2006/01/02",
	"2006.01.02",
	"2006 01 02",

	"02-01-06",
	"01-02-06",
	"06-01-02",

	"02 January 2006",
	"02 Jan 2006",
	"January 02, 2006",
	"Jan 02, 2006",
}

// ParseDate parses s with the default layouts. An empty value or NULL
// means the interval is still open and resolves to now's civil date.
func ParseDate(s string, now time.Time) (time.Time, error) {
	return ParseDateWith(s, now, DefaultDateLayouts, true)
}

// ParseDateWith tries layouts in order. With missingAsToday false an empty
// or NULL value is an error.
func ParseDateWith(s string, now time.Time, layouts []string, missingAsToday bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NULL") {
		if !missingAsToday {
			return time.Time{}, fmt.Errorf("%w: empty date", ErrUnsupportedDate)
		}
		return civil(now), nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			if shortYear(layout) {
				t = intoCentury(t)
			}
			return civil(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedDate, s)
}

// shortYear reports whether layout carries a two-digit year.
func shortYear(layout string) bool {
	return strings.Contains(strings.ReplaceAll(layout, "2006", ""), "06")
}

// intoCentury moves a two-digit year into 2000-2099. time.Parse would put
// 69-99 into the 1900s.
func intoCentury(t time.Time) time.Time {
	return t.AddDate(2000+t.Year()%100-t.Year(), 0, 0)
}

// civil keeps the calendar date as written, dropping time and zone.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
