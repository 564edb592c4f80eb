package reconcile

import (
	"github.com/theirongolddev/glidepath/internal/model"
)

// NeedsMigration reports whether the document still carries only the legacy
// periodSpendHistory shape. Once Periods has entries the legacy field is
// never read again.
func NeedsMigration(cfg *model.BudgetConfig) bool {
	return len(cfg.Periods) == 0 && len(cfg.PeriodSpendHistory) > 0
}

// Migrate transforms legacy periodSpendHistory entries into the current
// HistoricalPeriod shape, once. The transform is total: empty history and
// partially-filled legacy entries migrate cleanly. Running it on an
// already-migrated document is a no-op. Returns whether anything changed.
//
// Sign convention, applied uniformly: positive variance means the user
// spent more than projected, and only that direction marks the migrated
// explanation as baseline-affecting.
func Migrate(cfg *model.BudgetConfig) bool {
	if !NeedsMigration(cfg) {
		// Drop legacy data that has already been superseded so it cannot
		// be migrated twice after a partial save.
		if len(cfg.Periods) > 0 && cfg.PeriodSpendHistory != nil {
			cfg.PeriodSpendHistory = nil
			return true
		}
		return false
	}

	for _, legacy := range cfg.PeriodSpendHistory {
		variance := model.Round2(legacy.TrueSpend)
		cfg.Periods = append(cfg.Periods, model.HistoricalPeriod{
			ID:                     model.NewID(),
			PeriodNumber:           legacy.PeriodNumber,
			StartDate:              legacy.StartDate,
			EndDate:                legacy.EndDate,
			StartingBalance:        model.Round2(legacy.StartingBalance),
			EndingBalance:          model.Round2(legacy.EndingBalance),
			ProjectedEndingBalance: model.Round2(legacy.EndingBalance + legacy.TrueSpend),
			TrueSpend:              model.Round2(legacy.TrueSpend),
			Variance:               variance,
			VarianceExplanations: []model.VarianceExplanation{{
				Reason:          model.ReasonBaselineMiss,
				Amount:          variance,
				Description:     "migrated from legacy spend history",
				AffectsBaseline: variance > 0,
			}},
			Status: model.PeriodCompleted,
		})
	}
	cfg.PeriodSpendHistory = nil
	return true
}
