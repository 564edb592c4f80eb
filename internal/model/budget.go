// Package model defines the budget document and the derived projection types.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/glidepath/internal/calendar"
)

// PeriodStatus is the lifecycle state of a historical period.
type PeriodStatus string

const (
	PeriodActive              PeriodStatus = "active"
	PeriodPendingConfirmation PeriodStatus = "pending-confirmation"
	PeriodCompleted           PeriodStatus = "completed"
)

// VarianceReason classifies one explained slice of a period's variance.
type VarianceReason string

const (
	ReasonAdHocExpense      VarianceReason = "adhoc_expense"
	ReasonPlannedCostHigher VarianceReason = "planned_cost_higher"
	ReasonBaselineMiss      VarianceReason = "baseline_miss"
)

// DefaultPeriodsForBaseline is the confirmed-period count required before a
// calculated baseline becomes available.
const DefaultPeriodsForBaseline = 8

// BudgetConfig is the single root state document, persisted as one JSON file.
type BudgetConfig struct {
	CurrentBalance         float64 `json:"currentBalance"`
	PaycheckAmount         float64 `json:"paycheckAmount"`
	BaselineSpendPerPeriod float64 `json:"baselineSpendPerPeriod"`
	SavingsGoal            float64 `json:"savingsGoal"`

	PaycheckFrequency calendar.Frequency       `json:"paycheckFrequency"`
	NextPayDate       Date                     `json:"nextPayDate"`
	WeekendHandling   calendar.WeekendHandling `json:"weekendHandling"`
	SemiMonthly       SemiMonthlyConfig        `json:"semiMonthlyConfig"`
	Monthly           MonthlyConfig            `json:"monthlyConfig"`

	RecurringExpenses []RecurringExpense `json:"recurringExpenses"`
	AdHocTransactions []AdHocTransaction `json:"adHocTransactions"`

	// CurrentBalanceAsOf is the day CurrentBalance was last confirmed true;
	// it anchors the partial period 0 when BudgetStartDate is unset.
	CurrentBalanceAsOf Date `json:"currentBalanceAsOf"`

	// BudgetStartDate is set once when tracking begins and never recomputed.
	BudgetStartDate Date `json:"budgetStartDate"`

	PeriodStartSnapshot *PeriodSnapshot `json:"periodStartSnapshot,omitempty"`

	// PeriodSpendHistory is the legacy closed-period record, superseded by
	// Periods via a one-way migration at load time.
	PeriodSpendHistory []LegacyPeriodSpend `json:"periodSpendHistory,omitempty"`
	Periods            []HistoricalPeriod  `json:"periods"`

	PeriodsForBaselineCalc int  `json:"periodsForBaselineCalc"`
	UseCalculatedBaseline  bool `json:"useCalculatedBaseline"`
}

// SemiMonthlyConfig holds the two pay days of a semimonthly schedule.
// 31 means "last day of the month".
type SemiMonthlyConfig struct {
	FirstPayDay  int `json:"firstPayDay"`
	SecondPayDay int `json:"secondPayDay"`
}

// MonthlyConfig holds the single pay day of a monthly schedule.
type MonthlyConfig struct {
	PayDay int `json:"payDay"`
}

// PeriodSnapshot captures the balance at the start of the currently open
// period, used to back-calculate realized spend when the period closes.
type PeriodSnapshot struct {
	PeriodStartDate Date    `json:"periodStartDate"`
	Balance         float64 `json:"balance"`
}

// RecurringExpense is a bill that recurs on a fixed cadence. NextDueDate is
// the recurrence anchor; its day-of-month is remembered across short months.
type RecurringExpense struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Amount      float64            `json:"amount"`
	Frequency   calendar.Frequency `json:"frequency"`
	NextDueDate Date               `json:"nextDueDate"`
}

// AdHocTransaction is a one-off income or expense tagged to a period number.
// Amount is always non-negative; IsIncome gives it direction.
type AdHocTransaction struct {
	ID           string  `json:"id"`
	PeriodNumber int     `json:"periodNumber"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	IsIncome     bool    `json:"isIncome"`
}

// VarianceExplanation attributes part of a period's variance to a cause.
// Only baseline_miss entries with AffectsBaseline set feed the rolling
// baseline average, keeping one-off shocks out of the estimate.
type VarianceExplanation struct {
	Reason          VarianceReason `json:"reason"`
	Amount          float64        `json:"amount"`
	Description     string         `json:"description,omitempty"`
	AffectsBaseline bool           `json:"affectsBaseline"`
}

// HistoricalPeriod is the closed-period record. Created when a pay boundary
// passes, mutated only by confirmation, immutable once completed.
type HistoricalPeriod struct {
	ID                     string                `json:"id"`
	PeriodNumber           int                   `json:"periodNumber"`
	StartDate              Date                  `json:"startDate"`
	EndDate                Date                  `json:"endDate"`
	StartingBalance        float64               `json:"startingBalance"`
	EndingBalance          float64               `json:"endingBalance"`
	ProjectedEndingBalance float64               `json:"projectedEndingBalance"`
	Income                 float64               `json:"income"`
	RecurringExpenses      float64               `json:"recurringExpenses"`
	AdHocIncome            float64               `json:"adHocIncome"`
	AdHocExpenses          float64               `json:"adHocExpenses"`
	BaselineSpend          float64               `json:"baselineSpend"`
	TrueSpend              float64               `json:"trueSpend"`
	Variance               float64               `json:"variance"`
	VarianceExplanations   []VarianceExplanation `json:"varianceExplanations,omitempty"`
	Status                 PeriodStatus          `json:"status"`
	ConfirmedAt            *time.Time            `json:"confirmedAt,omitempty"`
}

// LegacyPeriodSpend is the pre-migration closed-period shape. It is read
// exactly once, by the migration, and never written back.
type LegacyPeriodSpend struct {
	PeriodNumber    int     `json:"periodNumber"`
	StartDate       Date    `json:"startDate"`
	EndDate         Date    `json:"endDate"`
	StartingBalance float64 `json:"startingBalance"`
	EndingBalance   float64 `json:"endingBalance"`
	TrueSpend       float64 `json:"trueSpend"`
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.NewString()
}

// Round2 rounds a currency amount to 2 decimal places. Applied at
// computation boundaries, not storage.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyDefaults fills zero-valued settings that have documented defaults.
func (c *BudgetConfig) ApplyDefaults() {
	if c.PeriodsForBaselineCalc <= 0 {
		c.PeriodsForBaselineCalc = DefaultPeriodsForBaseline
	}
	if c.WeekendHandling == "" {
		c.WeekendHandling = calendar.WeekendNone
	}
}

// Validate rejects documents that would corrupt a projection: non-finite or
// wrongly-signed amounts, unknown enum values, out-of-range pay days, and
// inverted period ranges. It is the fail-fast boundary of the engine.
func (c *BudgetConfig) Validate() error {
	for name, v := range map[string]float64{
		"currentBalance":         c.CurrentBalance,
		"paycheckAmount":         c.PaycheckAmount,
		"baselineSpendPerPeriod": c.BaselineSpendPerPeriod,
		"savingsGoal":            c.SavingsGoal,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not a finite number", name)
		}
	}
	if c.PaycheckAmount < 0 {
		return fmt.Errorf("paycheckAmount must not be negative, got %.2f", c.PaycheckAmount)
	}
	if c.BaselineSpendPerPeriod < 0 {
		return fmt.Errorf("baselineSpendPerPeriod must not be negative, got %.2f", c.BaselineSpendPerPeriod)
	}

	switch c.PaycheckFrequency {
	case calendar.Weekly, calendar.Biweekly:
		if c.NextPayDate.IsZero() {
			return fmt.Errorf("nextPayDate is required for %s pay frequency", c.PaycheckFrequency)
		}
	case calendar.SemiMonthly:
		if err := validatePayDay("semiMonthlyConfig.firstPayDay", c.SemiMonthly.FirstPayDay); err != nil {
			return err
		}
		if err := validatePayDay("semiMonthlyConfig.secondPayDay", c.SemiMonthly.SecondPayDay); err != nil {
			return err
		}
	case calendar.Monthly:
		if err := validatePayDay("monthlyConfig.payDay", c.Monthly.PayDay); err != nil {
			return err
		}
	case "":
		return fmt.Errorf("paycheckFrequency is not set")
	default:
		return fmt.Errorf("unknown paycheckFrequency %q", c.PaycheckFrequency)
	}

	switch c.WeekendHandling {
	case calendar.WeekendBefore, calendar.WeekendAfter, calendar.WeekendNone:
	default:
		return fmt.Errorf("unknown weekendHandling %q", c.WeekendHandling)
	}

	for _, e := range c.RecurringExpenses {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, t := range c.AdHocTransactions {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, p := range c.Periods {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validatePayDay(name string, day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("%s must be 1-31, got %d", name, day)
	}
	return nil
}

// Validate checks a recurring expense's amount and frequency.
func (e RecurringExpense) Validate() error {
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount < 0 {
		return fmt.Errorf("expense %q: amount must be a non-negative number", e.Name)
	}
	switch e.Frequency {
	case calendar.Weekly, calendar.Biweekly, calendar.Monthly, calendar.Quarterly, calendar.Yearly:
	default:
		return fmt.Errorf("expense %q: unknown frequency %q", e.Name, e.Frequency)
	}
	return nil
}

// Validate checks an ad-hoc transaction's amount and period tag.
func (t AdHocTransaction) Validate() error {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return fmt.Errorf("transaction %q: amount must be a non-negative number", t.Name)
	}
	if t.PeriodNumber < 0 {
		return fmt.Errorf("transaction %q: periodNumber must not be negative, got %d", t.Name, t.PeriodNumber)
	}
	return nil
}

// Validate checks a historical period's date range and status.
func (p HistoricalPeriod) Validate() error {
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate.Time) {
		return fmt.Errorf("period %d: endDate %s precedes startDate %s",
			p.PeriodNumber, p.EndDate, p.StartDate)
	}
	switch p.Status {
	case PeriodActive, PeriodPendingConfirmation, PeriodCompleted:
	default:
		return fmt.Errorf("period %d: unknown status %q", p.PeriodNumber, p.Status)
	}
	return nil
}

// ProjectionAnchor is the authoritative start of the partial period 0: the
// budget start date, or the balance as-of date, or today. When both dates
// are set the later one wins: the as-of date moves forward as periods
// close while the budget start date is immutable, and anchoring a current
// balance before the day it was confirmed true would double-count every
// expense already absorbed into it.
func (c *BudgetConfig) ProjectionAnchor(today time.Time) time.Time {
	anchor := c.BudgetStartDate.Time
	if !c.CurrentBalanceAsOf.IsZero() && c.CurrentBalanceAsOf.After(anchor) {
		anchor = c.CurrentBalanceAsOf.Time
	}
	if anchor.IsZero() {
		return calendar.DayStart(today)
	}
	return anchor
}

// PendingPeriod returns the period awaiting confirmation, if any.
func (c *BudgetConfig) PendingPeriod() *HistoricalPeriod {
	for i := range c.Periods {
		if c.Periods[i].Status == PeriodPendingConfirmation {
			return &c.Periods[i]
		}
	}
	return nil
}

// CompletedPeriods returns completed periods ordered as recorded.
func (c *BudgetConfig) CompletedPeriods() []HistoricalPeriod {
	var out []HistoricalPeriod
	for _, p := range c.Periods {
		if p.Status == PeriodCompleted {
			out = append(out, p)
		}
	}
	return out
}

// LastPeriodNumber returns the highest recorded period number, or 0.
func (c *BudgetConfig) LastPeriodNumber() int {
	last := 0
	for _, p := range c.Periods {
		if p.PeriodNumber > last {
			last = p.PeriodNumber
		}
	}
	return last
}
