package calendar

import (
	"testing"
	"time"
)

// mustDate parses a YYYY-MM-DD string or fails the test.
func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, 1, 5, 23, 50, 0, 0, time.UTC)
	b := time.Date(2026, 1, 6, 0, 10, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween = %d, want 1", got)
	}
	if got := DaysBetween(b, a); got != -1 {
		t.Errorf("DaysBetween reversed = %d, want -1", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("DaysInMonth(2024, Feb) = %d, want 29", got)
	}
	if got := DaysInMonth(2026, time.February); got != 28 {
		t.Errorf("DaysInMonth(2026, Feb) = %d, want 28", got)
	}
	if got := DaysInMonth(2026, time.April); got != 30 {
		t.Errorf("DaysInMonth(2026, Apr) = %d, want 30", got)
	}
}

func TestClampDayToMonth(t *testing.T) {
	if got := ClampDayToMonth(2026, time.February, 31); !got.Equal(mustDate(t, "2026-02-28")) {
		t.Errorf("clamp 31 in Feb = %s, want 2026-02-28", FormatDate(got))
	}
	if got := ClampDayToMonth(2026, time.March, 15); !got.Equal(mustDate(t, "2026-03-15")) {
		t.Errorf("clamp 15 in Mar = %s, want 2026-03-15", FormatDate(got))
	}
	if got := ClampDayToMonth(2026, time.March, 0); !got.Equal(mustDate(t, "2026-03-01")) {
		t.Errorf("clamp 0 = %s, want 2026-03-01", FormatDate(got))
	}
}

func TestAdjustForWeekend(t *testing.T) {
	sat := mustDate(t, "2026-01-03")
	sun := mustDate(t, "2026-01-04")
	wed := mustDate(t, "2026-01-07")

	cases := []struct {
		name     string
		d        time.Time
		handling WeekendHandling
		want     string
	}{
		{"saturday before", sat, WeekendBefore, "2026-01-02"},
		{"saturday after", sat, WeekendAfter, "2026-01-05"},
		{"sunday before", sun, WeekendBefore, "2026-01-02"},
		{"sunday after", sun, WeekendAfter, "2026-01-05"},
		{"saturday none", sat, WeekendNone, "2026-01-03"},
		{"weekday untouched", wed, WeekendBefore, "2026-01-07"},
	}
	for _, tc := range cases {
		if got := AdjustForWeekend(tc.d, tc.handling); !got.Equal(mustDate(t, tc.want)) {
			t.Errorf("%s: got %s, want %s", tc.name, FormatDate(got), tc.want)
		}
	}
}

func TestAdvanceByFrequency_FixedSteps(t *testing.T) {
	d := mustDate(t, "2026-01-09")

	if got := AdvanceByFrequency(d, Weekly, 0); !got.Equal(mustDate(t, "2026-01-16")) {
		t.Errorf("weekly = %s, want 2026-01-16", FormatDate(got))
	}
	if got := AdvanceByFrequency(d, Biweekly, 0); !got.Equal(mustDate(t, "2026-01-23")) {
		t.Errorf("biweekly = %s, want 2026-01-23", FormatDate(got))
	}
}

func TestAdvanceByFrequency_MonthlyRemembersOriginalDay(t *testing.T) {
	// Anchored on the 31st: February clamps to the 28th, but March must
	// return to the 31st rather than drifting.
	jan := mustDate(t, "2026-01-31")

	feb := AdvanceByFrequency(jan, Monthly, 31)
	if !feb.Equal(mustDate(t, "2026-02-28")) {
		t.Fatalf("Jan 31 + 1 month = %s, want 2026-02-28", FormatDate(feb))
	}

	mar := AdvanceByFrequency(feb, Monthly, 31)
	if !mar.Equal(mustDate(t, "2026-03-31")) {
		t.Errorf("Feb 28 + 1 month = %s, want 2026-03-31", FormatDate(mar))
	}
}

func TestAdvanceByFrequency_QuarterlyAndYearly(t *testing.T) {
	if got := AdvanceByFrequency(mustDate(t, "2026-01-15"), Quarterly, 15); !got.Equal(mustDate(t, "2026-04-15")) {
		t.Errorf("quarterly = %s, want 2026-04-15", FormatDate(got))
	}
	// Leap day anchored yearly clamps in non-leap years.
	if got := AdvanceByFrequency(mustDate(t, "2024-02-29"), Yearly, 29); !got.Equal(mustDate(t, "2025-02-28")) {
		t.Errorf("yearly from leap day = %s, want 2025-02-28", FormatDate(got))
	}
}

func TestFirstOccurrenceOnOrAfter(t *testing.T) {
	anchor := mustDate(t, "2026-01-01")

	got := FirstOccurrenceOnOrAfter(anchor, Weekly, 0, mustDate(t, "2026-01-20"))
	if !got.Equal(mustDate(t, "2026-01-22")) {
		t.Errorf("weekly catch-up = %s, want 2026-01-22", FormatDate(got))
	}

	// Anchor already at or past the target is returned unchanged.
	got = FirstOccurrenceOnOrAfter(anchor, Weekly, 0, mustDate(t, "2025-12-01"))
	if !got.Equal(anchor) {
		t.Errorf("anchor past target = %s, want 2026-01-01", FormatDate(got))
	}

	// Unknown frequency must not spin forever.
	got = FirstOccurrenceOnOrAfter(anchor, Frequency("bogus"), 0, mustDate(t, "2026-06-01"))
	if !got.Equal(anchor) {
		t.Errorf("unknown frequency = %s, want the anchor back", FormatDate(got))
	}
}
