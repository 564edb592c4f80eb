// Package calendar provides the whole-day date arithmetic that pay and
// expense schedules are built on: weekend shifting, day-of-month clamping,
// and frequency stepping that remembers the originally requested day.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Frequency is a recurrence cadence for paychecks or expenses.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Biweekly    Frequency = "biweekly"
	SemiMonthly Frequency = "semimonthly"
	Monthly     Frequency = "monthly"
	Quarterly   Frequency = "quarterly"
	Yearly      Frequency = "yearly"
)

// WeekendHandling controls how a date landing on Saturday or Sunday shifts.
type WeekendHandling string

const (
	WeekendBefore WeekendHandling = "before"
	WeekendAfter  WeekendHandling = "after"
	WeekendNone   WeekendHandling = "none"
)

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// DayStart truncates a time to its calendar day at UTC midnight. All period
// boundary math runs on these normalized values so time-of-day and zone
// offsets can never produce off-by-one days.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar day, normalized.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b (negative when b
// precedes a).
func DaysBetween(a, b time.Time) int {
	return int(DayStart(b).Sub(DayStart(a)).Hours() / 24)
}

// AddDays returns the date n days after d.
func AddDays(d time.Time, n int) time.Time {
	return DayStart(d).AddDate(0, 0, n)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDayToMonth returns the date for day-of-month in the given month,
// clamped to the month's last day. Day 31 degrades to 30, 29, or 28 in
// shorter months; day values below 1 clamp to 1.
func ClampDayToMonth(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AdjustForWeekend shifts a date off Saturday/Sunday per the handling rule.
// "before" moves to the preceding Friday, "after" to the following Monday,
// and "none" leaves the date untouched. Weekday dates always pass through.
func AdjustForWeekend(d time.Time, handling WeekendHandling) time.Time {
	if handling == WeekendNone || handling == "" {
		return d
	}
	switch d.Weekday() {
	case time.Saturday:
		if handling == WeekendBefore {
			return AddDays(d, -1)
		}
		return AddDays(d, 2)
	case time.Sunday:
		if handling == WeekendBefore {
			return AddDays(d, -2)
		}
		return AddDays(d, 1)
	}
	return d
}

// AdvanceByFrequency steps a date forward by one recurrence interval.
// Weekly and biweekly add whole days. Monthly, quarterly, and yearly add
// calendar months and then re-clamp to originalDay in the target month, so
// an expense anchored on the 31st lands on Feb 28 but returns to the 31st
// in March instead of drifting to whatever day February allowed.
func AdvanceByFrequency(d time.Time, freq Frequency, originalDay int) time.Time {
	d = DayStart(d)
	switch freq {
	case Weekly:
		return AddDays(d, 7)
	case Biweekly:
		return AddDays(d, 14)
	case Monthly:
		return advanceMonths(d, 1, originalDay)
	case Quarterly:
		return advanceMonths(d, 3, originalDay)
	case Yearly:
		return advanceMonths(d, 12, originalDay)
	}
	return d
}

func advanceMonths(d time.Time, months, originalDay int) time.Time {
	if originalDay < 1 {
		originalDay = d.Day()
	}
	// Anchor on the first of the month before adding, so Jan 31 + 1 month
	// lands in February rather than normalizing through to March.
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	return ClampDayToMonth(first.Year(), first.Month(), originalDay)
}

// FirstOccurrenceOnOrAfter walks a recurrence forward from its anchor until
// reaching the target date. If the anchor is already on or after the target
// it is returned unchanged. Linear in periods skipped, which is fine for
// horizons bounded to a few years.
func FirstOccurrenceOnOrAfter(anchor time.Time, freq Frequency, originalDay int, target time.Time) time.Time {
	d := DayStart(anchor)
	target = DayStart(target)
	for d.Before(target) {
		next := AdvanceByFrequency(d, freq, originalDay)
		if !next.After(d) {
			// Unknown frequency would not advance; bail rather than spin.
			return d
		}
		d = next
	}
	return d
}
