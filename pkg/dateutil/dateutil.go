// Package dateutil provides whole-day calendar arithmetic. All functions
// operate on calendar dates only; time-of-day and timezone components are
// truncated before comparison.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical wire format for dates.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a date string does not parse as a valid
// calendar date. Callers must propagate it; date arithmetic never silently
// substitutes the current day.
var ErrInvalidDate = errors.New("invalid date")

// Parse parses an ISO-8601 calendar date (YYYY-MM-DD). RFC 3339 timestamps
// are accepted and truncated to their date component.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// StartOfDay truncates t to midnight UTC of its calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n whole days after t.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month of the
// same year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
