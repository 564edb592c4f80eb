// Package projection folds the pay calendar, recurring expenses, and ad-hoc
// transactions into a sequence of period entries with running balances, and
// derives savings-goal dates from them.
package projection

import (
	"math"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/schedule"
)

// MaxPeriods is the hard projection horizon: roughly five years at weekly
// cadence. It is the only bound when the goal is never reached.
const MaxPeriods = 260

// goalExtensionMonths is how far past the first goal crossing the
// projection keeps running, so the views show a comfortable buffer.
const goalExtensionMonths = 3

// Options tweak a projection run.
type Options struct {
	// BaselineOverride replaces the configured per-period baseline spend,
	// e.g. with the calculated rolling average.
	BaselineOverride *float64
	// MaxPeriods caps the number of full periods emitted. Zero means the
	// engine decides (goal extension window or the hard cap).
	MaxPeriods int
}

// Project generates the period-by-period balance forecast: a partial period
// 0 from the balance anchor to the first pay date (when that span is at
// least one day), then full periods until the goal has been comfortably
// passed or the horizon cap is hit. Pure: same inputs, same output.
func Project(cfg *model.BudgetConfig, today time.Time, opts Options) []model.ProjectionEntry {
	today = calendar.DayStart(today)

	cap := MaxPeriods
	if opts.MaxPeriods > 0 && opts.MaxPeriods < cap {
		cap = opts.MaxPeriods
	}

	// One extra date so the last full period still has a window end.
	payDates := schedule.PayDates(cfg, cap+1)
	if len(payDates) == 0 {
		return nil
	}

	baseline := cfg.BaselineSpendPerPeriod
	if opts.BaselineOverride != nil {
		baseline = *opts.BaselineOverride
	}

	anchor := cfg.ProjectionAnchor(today)
	horizonEnd := payDates[len(payDates)-1].AddDate(0, 1, 0)
	occurrences := schedule.ExpenseOccurrences(cfg.RecurringExpenses, anchor, horizonEnd, cfg.WeekendHandling)

	var entries []model.ProjectionEntry
	balance := cfg.CurrentBalance

	// Partial period 0: no paycheck, only expenses and period-0 ad-hocs.
	// Its after-baseline track is reported but never chained: the lead-in
	// days are covered by period 1's baseline, not by one of their own, so
	// period 1 opens at the pre-baseline balance.
	if calendar.DaysBetween(anchor, payDates[0]) > 0 {
		end := calendar.AddDays(payDates[0], -1)
		entries = append(entries, buildEntry(0, anchor, end, time.Time{}, 0, balance, baseline, occurrences, cfg.AdHocTransactions))
		balance = entries[0].BalanceAfterExpenses
	}

	goalPeriodsLeft := -1 // -1: goal not yet crossed
	extension := goalExtensionPeriods(cfg.PaycheckFrequency)

	for i := 0; i < cap && i < len(payDates)-1; i++ {
		n := i + 1
		start := payDates[i]
		end := calendar.AddDays(payDates[i+1], -1)
		if i == cap-1 {
			// Final period extends a month past its pay date as a buffer.
			end = start.AddDate(0, 1, 0)
		}

		entry := buildEntry(n, start, end, start, cfg.PaycheckAmount, balance, baseline, occurrences, cfg.AdHocTransactions)
		entries = append(entries, entry)
		balance = entry.BalanceAfterBaseline

		if opts.MaxPeriods > 0 {
			continue
		}
		if cfg.SavingsGoal > 0 {
			if goalPeriodsLeft < 0 {
				if entry.BalanceAfterBaseline >= cfg.SavingsGoal {
					// First crossing: keep projecting through the buffer
					// window before stopping.
					goalPeriodsLeft = extension
				}
			} else if goalPeriodsLeft > 0 {
				goalPeriodsLeft--
				if goalPeriodsLeft == 0 {
					break
				}
			}
		}
	}

	return entries
}

func buildEntry(number int, start, end, payDate time.Time, income, openingBalance, baseline float64, all []model.ExpenseOccurrence, txns []model.AdHocTransaction) model.ProjectionEntry {
	entry := model.ProjectionEntry{
		PeriodNumber: number,
		StartDate:    start,
		EndDate:      end,
		PayDate:      payDate,
		Income:       income,
		Baseline:     baseline,
	}

	for _, occ := range all {
		if occ.Date.Before(start) || occ.Date.After(end) {
			continue
		}
		entry.ExpenseItems = append(entry.ExpenseItems, occ)
		entry.RecurringExpenses += occ.Amount
	}

	for _, t := range txns {
		if t.PeriodNumber != number {
			continue
		}
		if t.IsIncome {
			entry.AdHocIncome += t.Amount
		} else {
			entry.AdHocExpenses += t.Amount
		}
	}

	entry.RecurringExpenses = model.Round2(entry.RecurringExpenses)
	entry.AdHocIncome = model.Round2(entry.AdHocIncome)
	entry.AdHocExpenses = model.Round2(entry.AdHocExpenses)
	entry.BalanceAfterIncome = model.Round2(openingBalance + income + entry.AdHocIncome)
	entry.BalanceAfterExpenses = model.Round2(entry.BalanceAfterIncome - entry.RecurringExpenses - entry.AdHocExpenses)
	entry.BalanceAfterBaseline = model.Round2(entry.BalanceAfterExpenses - baseline)
	return entry
}

// goalExtensionPeriods converts the extension window into a period count for
// the given pay cadence: ceil(3 months' worth of periods).
func goalExtensionPeriods(freq calendar.Frequency) int {
	var perMonth float64
	switch freq {
	case calendar.Weekly:
		perMonth = 52.0 / 12
	case calendar.Biweekly:
		perMonth = 26.0 / 12
	case calendar.SemiMonthly:
		perMonth = 2
	case calendar.Monthly:
		perMonth = 1
	default:
		perMonth = 1
	}
	return int(math.Ceil(goalExtensionMonths * perMonth))
}
