// Package schedule generates concrete future dates from recurrence rules:
// paycheck calendars and recurring-expense due dates.
package schedule

import (
	"sort"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
)

// PayDates returns the next maxCount paycheck dates for the configured
// schedule, in non-decreasing order, every date on or after NextPayDate.
func PayDates(cfg *model.BudgetConfig, maxCount int) []time.Time {
	if maxCount <= 0 {
		return nil
	}
	switch cfg.PaycheckFrequency {
	case calendar.Weekly:
		return steppedPayDates(cfg, maxCount, 7)
	case calendar.Biweekly:
		return steppedPayDates(cfg, maxCount, 14)
	case calendar.SemiMonthly:
		return monthIteratedPayDates(cfg, maxCount,
			cfg.SemiMonthly.FirstPayDay, cfg.SemiMonthly.SecondPayDay)
	case calendar.Monthly:
		return monthIteratedPayDates(cfg, maxCount, cfg.Monthly.PayDay)
	}
	return nil
}

// steppedPayDates handles weekly/biweekly: the stepping anchor advances by a
// fixed day count without weekend adjustment, and only each emitted date is
// adjusted, so one adjusted paycheck never skews the rest of the calendar.
func steppedPayDates(cfg *model.BudgetConfig, maxCount, stepDays int) []time.Time {
	dates := make([]time.Time, 0, maxCount)
	anchor := calendar.DayStart(cfg.NextPayDate.Time)
	for len(dates) < maxCount {
		dates = append(dates, calendar.AdjustForWeekend(anchor, cfg.WeekendHandling))
		anchor = calendar.AddDays(anchor, stepDays)
	}
	return dates
}

// monthIteratedPayDates handles semimonthly/monthly: walk calendar months
// forward from NextPayDate's month (or today's month when no explicit next
// pay date is recorded), clamp each configured pay day into the month,
// weekend-adjust, and emit dates on or after the floor until maxCount.
func monthIteratedPayDates(cfg *model.BudgetConfig, maxCount int, payDays ...int) []time.Time {
	floor := calendar.DayStart(cfg.NextPayDate.Time)
	if cfg.NextPayDate.IsZero() {
		floor = calendar.Today()
	}
	return monthIteratedFrom(cfg, floor, maxCount, payDays...)
}

func monthIteratedFrom(cfg *model.BudgetConfig, floor time.Time, maxCount int, payDays ...int) []time.Time {
	dates := make([]time.Time, 0, maxCount)
	year, month := floor.Year(), floor.Month()
	for len(dates) < maxCount {
		monthDates := make([]time.Time, 0, len(payDays))
		for _, day := range payDays {
			d := calendar.ClampDayToMonth(year, month, day)
			monthDates = append(monthDates, calendar.AdjustForWeekend(d, cfg.WeekendHandling))
		}
		sort.Slice(monthDates, func(i, j int) bool { return monthDates[i].Before(monthDates[j]) })

		for _, d := range monthDates {
			if d.Before(floor) {
				continue
			}
			dates = append(dates, d)
			if len(dates) == maxCount {
				break
			}
		}

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return dates
}

// NextPayDateOnOrAfter returns the first scheduled pay date on or after the
// target day. Weekly/biweekly step by their fixed interval from the recorded
// anchor; semimonthly/monthly derive purely from the configured pay days, so
// they work even when no next pay date has ever been recorded.
func NextPayDateOnOrAfter(cfg *model.BudgetConfig, target time.Time) time.Time {
	target = calendar.DayStart(target)
	switch cfg.PaycheckFrequency {
	case calendar.Weekly:
		return calendar.FirstOccurrenceOnOrAfter(cfg.NextPayDate.Time, calendar.Weekly, 0, target)
	case calendar.Biweekly:
		return calendar.FirstOccurrenceOnOrAfter(cfg.NextPayDate.Time, calendar.Biweekly, 0, target)
	case calendar.SemiMonthly:
		if dates := monthIteratedFrom(cfg, target, 1, cfg.SemiMonthly.FirstPayDay, cfg.SemiMonthly.SecondPayDay); len(dates) == 1 {
			return dates[0]
		}
	case calendar.Monthly:
		if dates := monthIteratedFrom(cfg, target, 1, cfg.Monthly.PayDay); len(dates) == 1 {
			return dates[0]
		}
	}
	return time.Time{}
}
