package projection

import (
	"testing"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// biweeklyConfig is the shared scenario: paid every other Friday, one
// monthly bill, a manual baseline.
func biweeklyConfig(t *testing.T) *model.BudgetConfig {
	t.Helper()
	return &model.BudgetConfig{
		CurrentBalance:         1000,
		PaycheckAmount:         2000,
		BaselineSpendPerPeriod: 300,
		PaycheckFrequency:      calendar.Biweekly,
		NextPayDate:            model.DateOf(mustDate(t, "2026-01-09")),
		WeekendHandling:        calendar.WeekendNone,
		CurrentBalanceAsOf:     model.DateOf(mustDate(t, "2026-01-05")),
		BudgetStartDate:        model.DateOf(mustDate(t, "2026-01-05")),
		RecurringExpenses: []model.RecurringExpense{{
			ID:          "rent",
			Name:        "Rent",
			Amount:      1200,
			Frequency:   calendar.Monthly,
			NextDueDate: model.DateOf(mustDate(t, "2026-02-01")),
		}},
	}
}

func TestProject_BiweeklyScenario(t *testing.T) {
	cfg := biweeklyConfig(t)
	entries := Project(cfg, mustDate(t, "2026-01-05"), Options{MaxPeriods: 2})

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3 (partial + 2 full)", len(entries))
	}

	// Partial period 0: no paycheck, no bills yet, baseline only.
	p0 := entries[0]
	if p0.PeriodNumber != 0 {
		t.Fatalf("first entry period = %d, want 0", p0.PeriodNumber)
	}
	if !p0.PayDate.IsZero() {
		t.Errorf("period 0 has a pay date: %s", calendar.FormatDate(p0.PayDate))
	}
	if !p0.EndDate.Equal(mustDate(t, "2026-01-08")) {
		t.Errorf("period 0 end = %s, want 2026-01-08", calendar.FormatDate(p0.EndDate))
	}
	if p0.BalanceAfterBaseline != 700 {
		t.Errorf("period 0 after baseline = %.2f, want 700.00", p0.BalanceAfterBaseline)
	}

	// Period 1: Jan 9 - Jan 22, paycheck but rent not due yet. It opens at
	// period 0's pre-baseline balance: the lead-in days do not carry a
	// baseline of their own.
	p1 := entries[1]
	if p1.Income != 2000 || p1.RecurringExpenses != 0 {
		t.Errorf("period 1 income/expenses = %.2f/%.2f, want 2000/0", p1.Income, p1.RecurringExpenses)
	}
	if p1.BalanceAfterIncome != 3000 {
		t.Errorf("period 1 after income = %.2f, want 3000.00", p1.BalanceAfterIncome)
	}
	if p1.BalanceAfterBaseline != 2700 {
		t.Errorf("period 1 after baseline = %.2f, want 2700.00", p1.BalanceAfterBaseline)
	}

	// Period 2: Jan 23 - Feb 5, paycheck and rent.
	p2 := entries[2]
	if p2.RecurringExpenses != 1200 {
		t.Errorf("period 2 expenses = %.2f, want 1200.00", p2.RecurringExpenses)
	}
	if p2.BalanceAfterIncome != 4700 {
		t.Errorf("period 2 after income = %.2f, want 4700.00", p2.BalanceAfterIncome)
	}
	if p2.BalanceAfterExpenses != 3500 {
		t.Errorf("period 2 after expenses = %.2f, want 3500.00", p2.BalanceAfterExpenses)
	}
	if p2.BalanceAfterBaseline != 3200 {
		t.Errorf("period 2 after baseline = %.2f, want 3200.00", p2.BalanceAfterBaseline)
	}
}

func TestProject_OpeningBillBeforeFirstPaycheck(t *testing.T) {
	// A bill due during the lead-in days lands in period 0 and only the
	// pre-baseline remainder carries into the first full period.
	cfg := &model.BudgetConfig{
		CurrentBalance:         2000,
		PaycheckAmount:         1800,
		BaselineSpendPerPeriod: 300,
		SavingsGoal:            5000,
		PaycheckFrequency:      calendar.Biweekly,
		NextPayDate:            model.DateOf(mustDate(t, "2024-01-05")),
		WeekendHandling:        calendar.WeekendNone,
		CurrentBalanceAsOf:     model.DateOf(mustDate(t, "2024-01-01")),
		RecurringExpenses: []model.RecurringExpense{{
			ID:          "electric",
			Name:        "Electric",
			Amount:      950,
			Frequency:   calendar.Monthly,
			NextDueDate: model.DateOf(mustDate(t, "2024-01-01")),
		}},
	}

	entries := Project(cfg, mustDate(t, "2024-01-01"), Options{MaxPeriods: 2})
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3 (partial + 2 full)", len(entries))
	}

	p0 := entries[0]
	if p0.RecurringExpenses != 950 {
		t.Errorf("period 0 expenses = %.2f, want 950.00", p0.RecurringExpenses)
	}
	if p0.BalanceAfterExpenses != 1050 {
		t.Errorf("period 0 after expenses = %.2f, want 1050.00", p0.BalanceAfterExpenses)
	}
	if p0.BalanceAfterBaseline != 750 {
		t.Errorf("period 0 after baseline = %.2f, want 750.00", p0.BalanceAfterBaseline)
	}

	// 2000 + 1800 - 950 - 300: the bill hits once, the baseline hits once.
	p1 := entries[1]
	if p1.RecurringExpenses != 0 {
		t.Errorf("period 1 expenses = %.2f, want 0 (bill already charged)", p1.RecurringExpenses)
	}
	if p1.BalanceAfterBaseline != 2550 {
		t.Errorf("period 1 after baseline = %.2f, want 2550.00", p1.BalanceAfterBaseline)
	}
}

func TestProject_BalanceIdentityHolds(t *testing.T) {
	cfg := biweeklyConfig(t)
	cfg.AdHocTransactions = []model.AdHocTransaction{
		{ID: "1", PeriodNumber: 1, Name: "Refund", Amount: 75, IsIncome: true},
		{ID: "2", PeriodNumber: 1, Name: "Car repair", Amount: 450},
	}

	entries := Project(cfg, mustDate(t, "2026-01-05"), Options{MaxPeriods: 3})

	opening := cfg.CurrentBalance
	for _, e := range entries {
		wantAfterIncome := model.Round2(opening + e.Income + e.AdHocIncome)
		if e.BalanceAfterIncome != wantAfterIncome {
			t.Errorf("period %d after income = %.2f, want %.2f",
				e.PeriodNumber, e.BalanceAfterIncome, wantAfterIncome)
		}
		wantAfterExpenses := model.Round2(e.BalanceAfterIncome - e.RecurringExpenses - e.AdHocExpenses)
		if e.BalanceAfterExpenses != wantAfterExpenses {
			t.Errorf("period %d after expenses = %.2f, want %.2f",
				e.PeriodNumber, e.BalanceAfterExpenses, wantAfterExpenses)
		}
		wantAfterBaseline := model.Round2(e.BalanceAfterExpenses - e.Baseline)
		if e.BalanceAfterBaseline != wantAfterBaseline {
			t.Errorf("period %d after baseline = %.2f, want %.2f",
				e.PeriodNumber, e.BalanceAfterBaseline, wantAfterBaseline)
		}
		// Full periods chain through the after-baseline balance; the
		// partial period contributes its pre-baseline balance.
		if e.PeriodNumber == 0 {
			opening = e.BalanceAfterExpenses
		} else {
			opening = e.BalanceAfterBaseline
		}
	}
}

func TestProject_AdHocLandsInTaggedPeriodOnly(t *testing.T) {
	cfg := biweeklyConfig(t)
	cfg.AdHocTransactions = []model.AdHocTransaction{
		{ID: "1", PeriodNumber: 2, Name: "Bonus", Amount: 500, IsIncome: true},
	}

	entries := Project(cfg, mustDate(t, "2026-01-05"), Options{MaxPeriods: 3})

	for _, e := range entries {
		want := 0.0
		if e.PeriodNumber == 2 {
			want = 500
		}
		if e.AdHocIncome != want {
			t.Errorf("period %d ad-hoc income = %.2f, want %.2f", e.PeriodNumber, e.AdHocIncome, want)
		}
	}
}

func TestProject_NoPartialPeriodWhenAnchorOnPayDate(t *testing.T) {
	cfg := biweeklyConfig(t)
	cfg.CurrentBalanceAsOf = model.DateOf(mustDate(t, "2026-01-09"))
	cfg.BudgetStartDate = model.DateOf(mustDate(t, "2026-01-09"))

	entries := Project(cfg, mustDate(t, "2026-01-09"), Options{MaxPeriods: 2})

	if len(entries) == 0 || entries[0].PeriodNumber != 1 {
		t.Fatalf("first entry period = %d, want 1 (no partial period)", entries[0].PeriodNumber)
	}
}

func TestProject_StopsAfterGoalBuffer(t *testing.T) {
	cfg := biweeklyConfig(t)
	cfg.RecurringExpenses = nil
	cfg.SavingsGoal = 5000

	entries := Project(cfg, mustDate(t, "2026-01-05"), Options{})

	// Net +1700 per period from 1000: the goal is crossed in period 3.
	// Biweekly extension is ceil(3 * 26/12) = 7 more periods.
	crossed := -1
	for _, e := range entries {
		if e.PeriodNumber >= 1 && e.BalanceAfterBaseline >= cfg.SavingsGoal {
			crossed = e.PeriodNumber
			break
		}
	}
	if crossed != 3 {
		t.Fatalf("goal crossed in period %d, want 3", crossed)
	}
	last := entries[len(entries)-1].PeriodNumber
	if last != crossed+7 {
		t.Errorf("projection ran to period %d, want %d", last, crossed+7)
	}
}

func TestProject_UnreachableGoalHitsHorizonCap(t *testing.T) {
	cfg := biweeklyConfig(t)
	cfg.RecurringExpenses = nil
	cfg.PaycheckAmount = 100
	cfg.BaselineSpendPerPeriod = 300
	cfg.SavingsGoal = 100000

	entries := Project(cfg, mustDate(t, "2026-01-05"), Options{})

	last := entries[len(entries)-1]
	if last.PeriodNumber != MaxPeriods {
		t.Errorf("last period = %d, want %d", last.PeriodNumber, MaxPeriods)
	}
}

func TestProject_BaselineOverride(t *testing.T) {
	cfg := biweeklyConfig(t)
	override := 450.0

	entries := Project(cfg, mustDate(t, "2026-01-05"), Options{BaselineOverride: &override, MaxPeriods: 1})

	if entries[0].Baseline != 450 {
		t.Errorf("baseline = %.2f, want 450.00 (override)", entries[0].Baseline)
	}
}

func TestProject_ExpenseOnBoundaryCountedOnce(t *testing.T) {
	// A bill due exactly on a pay date belongs to the period that starts
	// that day, and to no other.
	cfg := biweeklyConfig(t)
	cfg.RecurringExpenses[0].NextDueDate = model.DateOf(mustDate(t, "2026-01-23"))

	entries := Project(cfg, mustDate(t, "2026-01-05"), Options{MaxPeriods: 3})

	count := 0
	for _, e := range entries {
		for _, item := range e.ExpenseItems {
			if item.Date.Equal(mustDate(t, "2026-01-23")) {
				count++
				if e.PeriodNumber != 2 {
					t.Errorf("boundary bill landed in period %d, want 2", e.PeriodNumber)
				}
			}
		}
	}
	if count != 1 {
		t.Errorf("boundary bill counted %d times, want 1", count)
	}
}
