package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/glidepath/internal/model"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func archivedPeriod(t *testing.T, number int) model.HistoricalPeriod {
	t.Helper()
	start, err := model.ParseDateString("2026-01-09")
	if err != nil {
		t.Fatal(err)
	}
	end, err := model.ParseDateString("2026-01-22")
	if err != nil {
		t.Fatal(err)
	}
	confirmed := time.Date(2026, 1, 23, 9, 0, 0, 0, time.UTC)
	return model.HistoricalPeriod{
		ID:                     model.NewID(),
		PeriodNumber:           number,
		StartDate:              start,
		EndDate:                end,
		StartingBalance:        2700,
		EndingBalance:          2350,
		ProjectedEndingBalance: 2400,
		BaselineSpend:          300,
		TrueSpend:              350,
		Variance:               50,
		Status:                 model.PeriodCompleted,
		ConfirmedAt:            &confirmed,
		VarianceExplanations: []model.VarianceExplanation{{
			Reason:          model.ReasonBaselineMiss,
			Amount:          50,
			Description:     "groceries ran hot",
			AffectsBaseline: true,
		}},
	}
}

func TestArchive_RecordAndList(t *testing.T) {
	a := testArchive(t)

	want := archivedPeriod(t, 1)
	if err := a.RecordPeriod(want); err != nil {
		t.Fatal(err)
	}

	got, err := a.ListPeriods(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d periods, want 1", len(got))
	}

	p := got[0]
	if p.ID != want.ID || p.PeriodNumber != 1 {
		t.Errorf("identity = %s/%d, want %s/1", p.ID, p.PeriodNumber, want.ID)
	}
	if !p.StartDate.Equal(want.StartDate.Time) || !p.EndDate.Equal(want.EndDate.Time) {
		t.Errorf("dates = %s to %s, want %s to %s", p.StartDate, p.EndDate, want.StartDate, want.EndDate)
	}
	if p.TrueSpend != 350 || p.Variance != 50 {
		t.Errorf("trueSpend/variance = %.2f/%.2f, want 350/50", p.TrueSpend, p.Variance)
	}
	if p.ConfirmedAt == nil || !p.ConfirmedAt.Equal(*want.ConfirmedAt) {
		t.Errorf("confirmedAt = %v, want %v", p.ConfirmedAt, want.ConfirmedAt)
	}
	if len(p.VarianceExplanations) != 1 {
		t.Fatalf("explanations = %d, want 1", len(p.VarianceExplanations))
	}
	if ex := p.VarianceExplanations[0]; ex.Amount != 50 || !ex.AffectsBaseline {
		t.Errorf("explanation = %+v", ex)
	}
}

func TestArchive_RecordIsUpsert(t *testing.T) {
	a := testArchive(t)

	p := archivedPeriod(t, 1)
	if err := a.RecordPeriod(p); err != nil {
		t.Fatal(err)
	}
	p.EndingBalance = 2300
	p.VarianceExplanations = nil
	if err := a.RecordPeriod(p); err != nil {
		t.Fatal(err)
	}

	got, err := a.ListPeriods(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d periods after upsert, want 1", len(got))
	}
	if got[0].EndingBalance != 2300 {
		t.Errorf("ending = %.2f, want 2300.00 (last write wins)", got[0].EndingBalance)
	}
	if len(got[0].VarianceExplanations) != 0 {
		t.Errorf("stale explanations survived: %+v", got[0].VarianceExplanations)
	}
}

func TestArchive_ListOrderAndLimit(t *testing.T) {
	a := testArchive(t)

	for i := 1; i <= 5; i++ {
		if err := a.RecordPeriod(archivedPeriod(t, i)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := a.ListPeriods(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d periods, want 3", len(got))
	}
	for i, want := range []int{5, 4, 3} {
		if got[i].PeriodNumber != want {
			t.Errorf("period[%d] = %d, want %d (newest first)", i, got[i].PeriodNumber, want)
		}
	}

	count, err := a.PeriodCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}
