// Package reconcile closes pay periods against real-world time: it detects
// passed pay boundaries, snapshots balances, computes realized spend,
// advances stale schedule anchors, and maintains the rolling baseline
// estimate from confirmed history.
package reconcile

import (
	"fmt"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/projection"
	"github.com/theirongolddev/glidepath/internal/schedule"
)

// maxCatchUpPeriods bounds how many missed boundaries one sync will close,
// matching the projection horizon.
const maxCatchUpPeriods = projection.MaxPeriods

// SyncResult reports what one reconciliation pass changed.
type SyncResult struct {
	PeriodsClosed    []model.HistoricalPeriod
	AutoBalanced     bool
	NewBalance       float64
	PayDateAdvanced  bool
	ExpensesAdvanced int
}

// Changed reports whether the sync mutated the document at all.
func (r SyncResult) Changed() bool {
	return len(r.PeriodsClosed) > 0 || r.AutoBalanced || r.PayDateAdvanced || r.ExpensesAdvanced > 0
}

// TransitionDue reports whether a scheduled pay boundary has been crossed
// in real time without the schedule being advanced yet.
func TransitionDue(cfg *model.BudgetConfig, today time.Time) bool {
	boundary := nextBoundary(cfg, today)
	if boundary.IsZero() {
		return false
	}
	return boundary.Before(calendar.DayStart(today))
}

// nextBoundary is the recorded NextPayDate when present. Semimonthly and
// monthly schedules are fully described by their configured pay days, so a
// document that never recorded one still has a derivable boundary, anchored
// at the balance anchor.
func nextBoundary(cfg *model.BudgetConfig, today time.Time) time.Time {
	if !cfg.NextPayDate.IsZero() {
		return cfg.NextPayDate.Time
	}
	switch cfg.PaycheckFrequency {
	case calendar.SemiMonthly, calendar.Monthly:
		return schedule.NextPayDateOnOrAfter(cfg, cfg.ProjectionAnchor(today))
	}
	return time.Time{}
}

// Sync closes every passed pay boundary in order, then advances stale
// schedule anchors. Idempotent: a second call on the same day is a no-op.
func Sync(cfg *model.BudgetConfig, today time.Time) (SyncResult, error) {
	today = calendar.DayStart(today)
	var result SyncResult

	// Persist a derived boundary so closePeriod and the projection floor
	// see the same schedule.
	if cfg.NextPayDate.IsZero() {
		if b := nextBoundary(cfg, today); !b.IsZero() {
			cfg.NextPayDate = model.DateOf(b)
			result.PayDateAdvanced = true
		}
	}

	for i := 0; TransitionDue(cfg, today) && i < maxCatchUpPeriods; i++ {
		closed, autoBalanced, err := closePeriod(cfg, today)
		if err != nil {
			return result, err
		}
		if closed != nil {
			result.PeriodsClosed = append(result.PeriodsClosed, *closed)
		}
		if autoBalanced {
			result.AutoBalanced = true
			result.NewBalance = cfg.CurrentBalance
		}
		result.PayDateAdvanced = true
	}

	result.ExpensesAdvanced = advanceExpenseAnchors(cfg, today)
	return result, nil
}

// closePeriod handles exactly one passed boundary: it records the period
// that just ended, auto-sets the balance when the user has not supplied a
// fresher one, and steps NextPayDate forward by a single interval.
func closePeriod(cfg *model.BudgetConfig, today time.Time) (*model.HistoricalPeriod, bool, error) {
	boundary := cfg.NextPayDate.Time

	// Project with the stale schedule still in place: period 0 of that
	// projection is exactly the period that just closed.
	entries := projection.Project(cfg, boundary, projection.Options{MaxPeriods: 1})
	if len(entries) == 0 {
		return nil, false, fmt.Errorf("closing period at %s: empty projection", calendar.FormatDate(boundary))
	}
	closed := entries[0]
	if closed.PeriodNumber != 0 {
		// The anchor already sits on the boundary; nothing partial to
		// close, just advance the schedule.
		advancePayDate(cfg, today)
		return nil, false, nil
	}

	startingBalance := cfg.CurrentBalance
	if snap := cfg.PeriodStartSnapshot; snap != nil {
		startingBalance = snap.Balance
	}

	// Auto-balance only when the user has not already recorded a balance
	// on or after the boundary; a fresher manual balance wins. A manual
	// balance recorded on or after the boundary already includes the
	// boundary paycheck, so the closed period's ending backs it out.
	autoBalance := cfg.CurrentBalanceAsOf.IsZero() || cfg.CurrentBalanceAsOf.Before(boundary)

	endingBalance := cfg.CurrentBalance - cfg.PaycheckAmount
	if autoBalance {
		endingBalance = closed.BalanceAfterBaseline
	}

	_, trueSpend := CalculateTrueSpend(startingBalance, closed.Income,
		closed.RecurringExpenses, closed.AdHocIncome, closed.AdHocExpenses, endingBalance)

	// A new boundary supersedes any still-pending confirmation; complete it
	// with the auto figures so at most one period is ever pending.
	dismissPending(cfg, boundary)

	period := model.HistoricalPeriod{
		ID:                     model.NewID(),
		PeriodNumber:           cfg.LastPeriodNumber() + 1,
		StartDate:              model.DateOf(closed.StartDate),
		EndDate:                model.DateOf(closed.EndDate),
		StartingBalance:        model.Round2(startingBalance),
		EndingBalance:          model.Round2(endingBalance),
		ProjectedEndingBalance: closed.BalanceAfterBaseline,
		Income:                 closed.Income,
		RecurringExpenses:      closed.RecurringExpenses,
		AdHocIncome:            closed.AdHocIncome,
		AdHocExpenses:          closed.AdHocExpenses,
		BaselineSpend:          closed.Baseline,
		TrueSpend:              trueSpend,
		Variance:               model.Round2(closed.BalanceAfterBaseline - endingBalance),
		Status:                 model.PeriodPendingConfirmation,
	}
	cfg.Periods = append(cfg.Periods, period)

	// The boundary paycheck opens the next period: it is no longer in the
	// future schedule once NextPayDate advances, so it folds into the
	// working balance here or it is lost.
	newOpening := model.Round2(endingBalance + cfg.PaycheckAmount)
	if autoBalance {
		cfg.CurrentBalance = newOpening
		cfg.CurrentBalanceAsOf = model.DateOf(boundary)
	}

	cfg.PeriodStartSnapshot = &model.PeriodSnapshot{
		PeriodStartDate: model.DateOf(boundary),
		Balance:         newOpening,
	}

	advancePayDate(cfg, today)
	return &cfg.Periods[len(cfg.Periods)-1], autoBalance, nil
}

// advancePayDate steps NextPayDate forward by one interval (weekly or
// biweekly) or to the next scheduled day (semimonthly or monthly). It never
// moves the anchor backward.
func advancePayDate(cfg *model.BudgetConfig, today time.Time) {
	current := cfg.NextPayDate.Time
	var next time.Time
	switch cfg.PaycheckFrequency {
	case calendar.Weekly:
		next = calendar.AddDays(current, 7)
	case calendar.Biweekly:
		next = calendar.AddDays(current, 14)
	default:
		next = schedule.NextPayDateOnOrAfter(cfg, calendar.AddDays(current, 1))
	}
	if next.After(current) {
		cfg.NextPayDate = model.DateOf(next)
	}
}

// advanceExpenseAnchors moves each expense's NextDueDate past today, but
// only when the stale due date is already reflected in the last confirmed
// balance (due date on or before CurrentBalanceAsOf). Advancing an
// unaccounted-for due date would silently erase that expense from the
// projection before the user's balance ever absorbed it.
func advanceExpenseAnchors(cfg *model.BudgetConfig, today time.Time) int {
	if cfg.CurrentBalanceAsOf.IsZero() {
		return 0
	}
	advanced := 0
	for i := range cfg.RecurringExpenses {
		e := &cfg.RecurringExpenses[i]
		if e.NextDueDate.IsZero() {
			continue
		}
		if !e.NextDueDate.Before(today) {
			continue
		}
		if e.NextDueDate.After(cfg.CurrentBalanceAsOf.Time) {
			continue
		}
		originalDay := e.NextDueDate.Day()
		next := calendar.FirstOccurrenceOnOrAfter(e.NextDueDate.Time, e.Frequency, originalDay, today)
		if next.After(e.NextDueDate.Time) {
			e.NextDueDate = model.DateOf(next)
			advanced++
		}
	}
	return advanced
}

// dismissPending completes any still-pending period with its auto-balanced
// figures. Called when a newer boundary passes or the grace window lapses.
func dismissPending(cfg *model.BudgetConfig, now time.Time) {
	for i := range cfg.Periods {
		if cfg.Periods[i].Status == model.PeriodPendingConfirmation {
			confirmedAt := now
			cfg.Periods[i].Status = model.PeriodCompleted
			cfg.Periods[i].ConfirmedAt = &confirmedAt
		}
	}
}

// DismissPending publicly completes the pending period without actuals,
// e.g. when the user declines confirmation or the grace window expires.
func DismissPending(cfg *model.BudgetConfig, now time.Time) bool {
	if cfg.PendingPeriod() == nil {
		return false
	}
	dismissPending(cfg, now)
	return true
}

// ExpirePending auto-completes the pending period once it has been waiting
// longer than graceDays past its end date.
func ExpirePending(cfg *model.BudgetConfig, today time.Time, graceDays int) bool {
	p := cfg.PendingPeriod()
	if p == nil || p.EndDate.IsZero() {
		return false
	}
	if calendar.DaysBetween(p.EndDate.Time, calendar.DayStart(today)) <= graceDays {
		return false
	}
	dismissPending(cfg, today)
	return true
}

// CalculateTrueSpend back-calculates the realized discretionary gap for a
// closed period: what the balance should have ended at minus what it
// actually ended at, both sides rounded to cents.
func CalculateTrueSpend(startingBalance, income, expenses, adHocIncome, adHocExpenses, newBalance float64) (expectedEnding, trueSpend float64) {
	expectedEnding = model.Round2(startingBalance + income - expenses + adHocIncome - adHocExpenses)
	trueSpend = model.Round2(expectedEnding - newBalance)
	return expectedEnding, trueSpend
}
