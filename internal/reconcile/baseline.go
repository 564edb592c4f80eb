package reconcile

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/glidepath/internal/model"
)

// ConfirmPeriod records the user's actual ending balance for the pending
// period. The gap between projected and actual becomes the variance; any
// part not covered by the supplied explanations is auto-classified as a
// baseline miss, so the rolling baseline estimate only ever learns from
// unattributed discretionary overspend.
func ConfirmPeriod(cfg *model.BudgetConfig, actualEnding float64, explanations []model.VarianceExplanation, now time.Time) (*model.HistoricalPeriod, error) {
	p := cfg.PendingPeriod()
	if p == nil {
		return nil, fmt.Errorf("no period is pending confirmation")
	}

	variance := model.Round2(p.ProjectedEndingBalance - actualEnding)

	explained := 0.0
	cleaned := make([]model.VarianceExplanation, 0, len(explanations)+1)
	for _, ex := range explanations {
		ex.Amount = model.Round2(ex.Amount)
		ex.AffectsBaseline = ex.Reason == model.ReasonBaselineMiss
		cleaned = append(cleaned, ex)
		explained += ex.Amount
	}
	if remainder := model.Round2(variance - explained); remainder != 0 {
		cleaned = append(cleaned, model.VarianceExplanation{
			Reason:          model.ReasonBaselineMiss,
			Amount:          remainder,
			Description:     "unexplained",
			AffectsBaseline: true,
		})
	}

	baselineMiss := 0.0
	for _, ex := range cleaned {
		if ex.Reason == model.ReasonBaselineMiss && ex.AffectsBaseline {
			baselineMiss += ex.Amount
		}
	}

	// If the working balance still carries the auto-balanced projection for
	// this boundary, shift it by the same correction the confirmation makes.
	// Shifting rather than overwriting keeps the boundary paycheck that was
	// folded in when the period closed.
	if !cfg.CurrentBalanceAsOf.IsZero() && !p.EndDate.IsZero() &&
		!cfg.CurrentBalanceAsOf.After(p.EndDate.AddDate(0, 0, 1)) {
		cfg.CurrentBalance = model.Round2(cfg.CurrentBalance + actualEnding - p.EndingBalance)
	}

	// The open period's starting snapshot was taken from the projected
	// ending; correct it the same way so the next close measures true spend
	// from the confirmed figure.
	if snap := cfg.PeriodStartSnapshot; snap != nil && !p.EndDate.IsZero() &&
		snap.PeriodStartDate.Equal(p.EndDate.AddDate(0, 0, 1)) {
		snap.Balance = model.Round2(snap.Balance + actualEnding - p.EndingBalance)
	}

	confirmedAt := now
	p.EndingBalance = model.Round2(actualEnding)
	p.Variance = variance
	p.VarianceExplanations = cleaned
	p.TrueSpend = model.Round2(p.BaselineSpend + baselineMiss)
	p.Status = model.PeriodCompleted
	p.ConfirmedAt = &confirmedAt

	return p, nil
}

// AverageBaseline computes the rolling discretionary-spend estimate from
// the most recent periodsToUse completed periods. Negative true spend
// (an under-spend) contributes zero rather than dragging the average down.
// Returns nil when there are no samples.
func AverageBaseline(history []model.HistoricalPeriod, periodsToUse int) *float64 {
	if periodsToUse <= 0 {
		return nil
	}

	completed := make([]model.HistoricalPeriod, 0, len(history))
	for _, p := range history {
		if p.Status == model.PeriodCompleted {
			completed = append(completed, p)
		}
	}
	if len(completed) == 0 {
		return nil
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].PeriodNumber < completed[j].PeriodNumber
	})
	if len(completed) > periodsToUse {
		completed = completed[len(completed)-periodsToUse:]
	}

	sum := 0.0
	for _, p := range completed {
		if p.TrueSpend > 0 {
			sum += p.TrueSpend
		}
	}
	avg := model.Round2(sum / float64(len(completed)))
	return &avg
}

// CalculatedBaseline returns the baseline override the projection should
// use: the rolling average, but only once the user has opted in and enough
// periods have been confirmed. Nil means "use the manual estimate".
func CalculatedBaseline(cfg *model.BudgetConfig) *float64 {
	if !cfg.UseCalculatedBaseline {
		return nil
	}
	if len(cfg.CompletedPeriods()) < cfg.PeriodsForBaselineCalc {
		return nil
	}
	return AverageBaseline(cfg.Periods, cfg.PeriodsForBaselineCalc)
}
