package reconcile

import (
	"testing"

	"github.com/theirongolddev/glidepath/internal/model"
)

func completedPeriod(number int, trueSpend float64) model.HistoricalPeriod {
	return model.HistoricalPeriod{
		ID:           model.NewID(),
		PeriodNumber: number,
		TrueSpend:    trueSpend,
		Status:       model.PeriodCompleted,
	}
}

func TestAverageBaseline_FloorsUnderSpend(t *testing.T) {
	history := []model.HistoricalPeriod{
		completedPeriod(1, -20),
		completedPeriod(2, 30),
		completedPeriod(3, 50),
	}

	avg := AverageBaseline(history, 8)
	if avg == nil {
		t.Fatal("got nil average")
	}
	// The under-spend contributes zero but still counts in the divisor:
	// (0 + 30 + 50) / 3.
	if *avg != 26.67 {
		t.Errorf("average = %.2f, want 26.67", *avg)
	}
}

func TestAverageBaseline_UsesLastN(t *testing.T) {
	history := []model.HistoricalPeriod{
		completedPeriod(1, 1000),
		completedPeriod(2, 100),
		completedPeriod(3, 200),
	}

	avg := AverageBaseline(history, 2)
	if avg == nil {
		t.Fatal("got nil average")
	}
	if *avg != 150 {
		t.Errorf("average = %.2f, want 150.00 (last 2 only)", *avg)
	}
}

func TestAverageBaseline_IgnoresPending(t *testing.T) {
	pending := completedPeriod(2, 500)
	pending.Status = model.PeriodPendingConfirmation
	history := []model.HistoricalPeriod{
		completedPeriod(1, 100),
		pending,
	}

	avg := AverageBaseline(history, 8)
	if avg == nil {
		t.Fatal("got nil average")
	}
	if *avg != 100 {
		t.Errorf("average = %.2f, want 100.00 (pending excluded)", *avg)
	}
}

func TestAverageBaseline_NoSamples(t *testing.T) {
	if avg := AverageBaseline(nil, 8); avg != nil {
		t.Errorf("average = %v, want nil", *avg)
	}
	if avg := AverageBaseline([]model.HistoricalPeriod{completedPeriod(1, 50)}, 0); avg != nil {
		t.Errorf("average with periodsToUse=0 = %v, want nil", *avg)
	}
}

func TestCalculatedBaseline_Gating(t *testing.T) {
	cfg := &model.BudgetConfig{
		PeriodsForBaselineCalc: 2,
		Periods: []model.HistoricalPeriod{
			completedPeriod(1, 100),
			completedPeriod(2, 200),
		},
	}

	// Opt-in flag off: nil even with enough history.
	if got := CalculatedBaseline(cfg); got != nil {
		t.Errorf("baseline = %v, want nil without opt-in", *got)
	}

	cfg.UseCalculatedBaseline = true
	got := CalculatedBaseline(cfg)
	if got == nil {
		t.Fatal("baseline nil with opt-in and enough history")
	}
	if *got != 150 {
		t.Errorf("baseline = %.2f, want 150.00", *got)
	}

	// Not enough confirmed periods yet.
	cfg.PeriodsForBaselineCalc = 5
	if got := CalculatedBaseline(cfg); got != nil {
		t.Errorf("baseline = %v, want nil below the period threshold", *got)
	}
}

func TestConfirmPeriod_UnexplainedBecomesBaselineMiss(t *testing.T) {
	cfg := biweeklyConfig(t)
	if _, err := Sync(cfg, mustDate(t, "2026-01-10")); err != nil {
		t.Fatal(err)
	}
	// Pending period projected to end at 700; the real balance came in 80
	// lower with no explanation.
	p, err := ConfirmPeriod(cfg, 620, nil, mustDate(t, "2026-01-11"))
	if err != nil {
		t.Fatal(err)
	}

	if p.Variance != 80 {
		t.Errorf("variance = %.2f, want 80.00", p.Variance)
	}
	if len(p.VarianceExplanations) != 1 {
		t.Fatalf("explanations = %d, want 1 auto-generated", len(p.VarianceExplanations))
	}
	ex := p.VarianceExplanations[0]
	if ex.Reason != model.ReasonBaselineMiss || !ex.AffectsBaseline || ex.Amount != 80 {
		t.Errorf("auto explanation = %+v, want baseline_miss of 80 affecting baseline", ex)
	}
	// True spend = projected baseline + the miss.
	if p.TrueSpend != 380 {
		t.Errorf("true spend = %.2f, want 380.00", p.TrueSpend)
	}
	if p.Status != model.PeriodCompleted {
		t.Errorf("status = %q, want completed", p.Status)
	}
}

func TestConfirmPeriod_ExplainedVarianceStaysOutOfBaseline(t *testing.T) {
	cfg := biweeklyConfig(t)
	if _, err := Sync(cfg, mustDate(t, "2026-01-10")); err != nil {
		t.Fatal(err)
	}

	p, err := ConfirmPeriod(cfg, 620, []model.VarianceExplanation{
		{Reason: model.ReasonAdHocExpense, Amount: 80, Description: "parking ticket"},
	}, mustDate(t, "2026-01-11"))
	if err != nil {
		t.Fatal(err)
	}

	// Fully explained by a one-off: true spend stays at the baseline.
	if p.TrueSpend != 300 {
		t.Errorf("true spend = %.2f, want 300.00", p.TrueSpend)
	}
	for _, ex := range p.VarianceExplanations {
		if ex.AffectsBaseline {
			t.Errorf("explanation %+v marked baseline-affecting", ex)
		}
	}
}

func TestConfirmPeriod_RebasesWorkingBalance(t *testing.T) {
	cfg := biweeklyConfig(t)
	if _, err := Sync(cfg, mustDate(t, "2026-01-10")); err != nil {
		t.Fatal(err)
	}
	// After sync: closed ending 700, working balance 2700 (paycheck folded).
	if _, err := ConfirmPeriod(cfg, 650, nil, mustDate(t, "2026-01-11")); err != nil {
		t.Fatal(err)
	}

	// The 50 correction shifts the working balance without losing the
	// folded paycheck.
	if cfg.CurrentBalance != 2650 {
		t.Errorf("balance = %.2f, want 2650.00", cfg.CurrentBalance)
	}
	if cfg.PeriodStartSnapshot.Balance != 2650 {
		t.Errorf("snapshot balance = %.2f, want 2650.00", cfg.PeriodStartSnapshot.Balance)
	}
}

func TestConfirmPeriod_NothingPending(t *testing.T) {
	cfg := biweeklyConfig(t)
	if _, err := ConfirmPeriod(cfg, 500, nil, mustDate(t, "2026-01-11")); err == nil {
		t.Fatal("expected an error with no pending period")
	}
}
