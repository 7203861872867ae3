package calculation

import (
	"time"

	"github.com/refdash/refdash/pkg/dateutil"
)

// ExpirationDate returns the calendar date cycleDays whole days after the
// start date.
func ExpirationDate(start time.Time, cycleDays int) time.Time {
	return dateutil.AddDays(start, cycleDays)
}

// IsExpiringToday reports whether the expiration date falls on the reference
// date's calendar day. The reference date is always injected by the caller so
// results stay deterministic.
func IsExpiringToday(expiration, reference time.Time) bool {
	return dateutil.SameDay(expiration, reference)
}

// IsInCurrentMonth reports whether the date falls in the reference date's
// calendar month.
func IsInCurrentMonth(date, reference time.Time) bool {
	return dateutil.SameMonth(date, reference)
}
