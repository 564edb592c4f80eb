package model

import "time"

// ExpenseOccurrence is one concrete due date of a recurring expense.
type ExpenseOccurrence struct {
	ExpenseID string
	Name      string
	Amount    float64
	Date      time.Time
}

// ProjectionEntry is one pay period of the forward projection: the partial
// period 0 plus N full periods. Derived, never persisted.
type ProjectionEntry struct {
	PeriodNumber int
	StartDate    time.Time
	EndDate      time.Time
	// PayDate is the paycheck date opening the period; zero for period 0,
	// which carries no paycheck.
	PayDate time.Time

	Income            float64
	RecurringExpenses float64
	AdHocIncome       float64
	AdHocExpenses     float64
	Baseline          float64

	ExpenseItems []ExpenseOccurrence

	// The three cumulative balance tracks. BalanceAfterBaseline is the most
	// conservative and is the only one that gates projection termination.
	BalanceAfterIncome   float64
	BalanceAfterExpenses float64
	BalanceAfterBaseline float64
}

// GoalProjection reports when each balance track first reaches the savings
// goal. Nil dates mean the goal is unset or not reached within the horizon.
type GoalProjection struct {
	DateBeforeExpenses *time.Time
	DateAfterExpenses  *time.Time
	DateAfterBaseline  *time.Time
	PeriodsToGoal      int
	// DaysToGoal is calendar days from today to the after-baseline goal
	// date, or -1 when the goal is not reached.
	DaysToGoal int
}
