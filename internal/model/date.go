package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar day format used for storage and input.
const DateLayout = "2006-01-02"

// Date is a calendar day serialized as "YYYY-MM-DD".
//
// The value is kept as text so that a stored collection always round-trips,
// even when an entry carries a date that does not parse. Such dates are
// reported as malformed by Time.
type Date string

// NewDate returns the calendar day of t in t's location.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates s as a calendar day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date(s), nil
}

// Time returns midnight UTC of the day, and false when the date is empty
// or malformed.
func (d Date) Time() (time.Time, bool) {
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsZero reports whether no date was given.
func (d Date) IsZero() bool {
	return d == ""
}

// After reports whether d is a later day than the calendar day of now.
// Malformed dates are never after anything.
func (d Date) After(now time.Time) bool {
	t, ok := d.Time()
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.After(today)
}

func (d Date) String() string {
	return string(d)
}
