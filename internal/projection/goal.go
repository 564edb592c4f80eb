package projection

import (
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
)

// GoalDates scans a projection for the first period where each balance
// track reaches the savings goal. Period 0 is excluded: it is partial, so a
// balance that already sits above the goal would otherwise report a bogus
// instant "goal reached". With no goal set, all dates are nil, not errors.
func GoalDates(cfg *model.BudgetConfig, entries []model.ProjectionEntry, today time.Time) model.GoalProjection {
	var goal model.GoalProjection
	goal.DaysToGoal = -1
	if cfg.SavingsGoal <= 0 {
		goal.DaysToGoal = 0
		return goal
	}

	for _, e := range entries {
		if e.PeriodNumber < 1 {
			continue
		}
		if goal.DateBeforeExpenses == nil && e.BalanceAfterIncome >= cfg.SavingsGoal {
			d := e.PayDate
			goal.DateBeforeExpenses = &d
		}
		if goal.DateAfterExpenses == nil && e.BalanceAfterExpenses >= cfg.SavingsGoal {
			d := e.PayDate
			goal.DateAfterExpenses = &d
		}
		if goal.DateAfterBaseline == nil && e.BalanceAfterBaseline >= cfg.SavingsGoal {
			d := e.PayDate
			goal.DateAfterBaseline = &d
			goal.PeriodsToGoal = e.PeriodNumber
		}
		if goal.DateBeforeExpenses != nil && goal.DateAfterExpenses != nil && goal.DateAfterBaseline != nil {
			break
		}
	}

	if goal.DateAfterBaseline != nil {
		goal.DaysToGoal = calendar.DaysBetween(today, *goal.DateAfterBaseline)
	}
	return goal
}
