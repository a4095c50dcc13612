package scheduling

import (
	"fmt"
	"regexp"
	"time"
)

// Canonical layouts accepted at the API boundary. Parsing fails closed: an
// unrecognized date string is an error, never a silent fallback to a previous
// value.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseDateTime parses an appointment timestamp. Accepted forms are the
// canonical "YYYY-MM-DD HH:MM:SS" (seconds optional) and RFC 3339.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q: expected YYYY-MM-DD HH:MM:SS or RFC 3339", s)
}

// ParseDate validates a calendar date in YYYY-MM-DD form and returns it
// normalized.
func ParseDate(s string) (string, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// ValidClock reports whether s is a zero-padded 24h HH:MM clock time.
func ValidClock(s string) bool {
	return clockRe.MatchString(s)
}
