package schedule

import (
	"testing"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
)

func TestExpenseOccurrences_MonthlyClampsShortMonths(t *testing.T) {
	expenses := []model.RecurringExpense{{
		ID:          "rent",
		Name:        "Rent",
		Amount:      1200,
		Frequency:   calendar.Monthly,
		NextDueDate: model.DateOf(mustDate(t, "2026-01-31")),
	}}

	occs := ExpenseOccurrences(expenses,
		mustDate(t, "2026-01-01"), mustDate(t, "2026-04-30"), calendar.WeekendNone)

	want := []string{"2026-01-31", "2026-02-28", "2026-03-31", "2026-04-30"}
	if len(occs) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(occs), len(want))
	}
	for i, w := range want {
		if !occs[i].Date.Equal(mustDate(t, w)) {
			t.Errorf("occurrence[%d] = %s, want %s", i, calendar.FormatDate(occs[i].Date), w)
		}
	}
}

func TestExpenseOccurrences_WeekendShiftLeavesAnchorAlone(t *testing.T) {
	// Jan 31 and Feb 28 2026 are both Saturdays. With "before" handling each
	// emitted date shifts to Friday, but the recurrence keeps stepping from
	// the unadjusted month-end anchor.
	expenses := []model.RecurringExpense{{
		ID:          "rent",
		Name:        "Rent",
		Amount:      1200,
		Frequency:   calendar.Monthly,
		NextDueDate: model.DateOf(mustDate(t, "2026-01-31")),
	}}

	occs := ExpenseOccurrences(expenses,
		mustDate(t, "2026-01-01"), mustDate(t, "2026-03-31"), calendar.WeekendBefore)

	want := []string{"2026-01-30", "2026-02-27", "2026-03-31"}
	if len(occs) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(occs), len(want))
	}
	for i, w := range want {
		if !occs[i].Date.Equal(mustDate(t, w)) {
			t.Errorf("occurrence[%d] = %s, want %s", i, calendar.FormatDate(occs[i].Date), w)
		}
	}
}

func TestExpenseOccurrences_CatchesUpStaleAnchor(t *testing.T) {
	// Due date far in the past: the expense fast-forwards into the range
	// rather than emitting historical occurrences.
	expenses := []model.RecurringExpense{{
		ID:          "sub",
		Name:        "Streaming",
		Amount:      15,
		Frequency:   calendar.Monthly,
		NextDueDate: model.DateOf(mustDate(t, "2025-06-10")),
	}}

	occs := ExpenseOccurrences(expenses,
		mustDate(t, "2026-01-01"), mustDate(t, "2026-02-28"), calendar.WeekendNone)

	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(occs))
	}
	if !occs[0].Date.Equal(mustDate(t, "2026-01-10")) {
		t.Errorf("first occurrence = %s, want 2026-01-10", calendar.FormatDate(occs[0].Date))
	}
}

func TestExpenseOccurrences_SkipsMissingAnchor(t *testing.T) {
	expenses := []model.RecurringExpense{
		{ID: "a", Name: "No Anchor", Amount: 10, Frequency: calendar.Monthly},
		{ID: "b", Name: "Gym", Amount: 40, Frequency: calendar.Monthly,
			NextDueDate: model.DateOf(mustDate(t, "2026-01-05"))},
	}

	occs := ExpenseOccurrences(expenses,
		mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"), calendar.WeekendNone)

	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occs))
	}
	if occs[0].ExpenseID != "b" {
		t.Errorf("ExpenseID = %q, want b", occs[0].ExpenseID)
	}
}

func TestExpenseOccurrences_SortedByDateThenName(t *testing.T) {
	expenses := []model.RecurringExpense{
		{ID: "b", Name: "Water", Amount: 30, Frequency: calendar.Monthly,
			NextDueDate: model.DateOf(mustDate(t, "2026-01-15"))},
		{ID: "a", Name: "Electric", Amount: 90, Frequency: calendar.Monthly,
			NextDueDate: model.DateOf(mustDate(t, "2026-01-15"))},
	}

	occs := ExpenseOccurrences(expenses,
		mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"), calendar.WeekendNone)

	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(occs))
	}
	if occs[0].Name != "Electric" || occs[1].Name != "Water" {
		t.Errorf("order = %s, %s; want Electric, Water", occs[0].Name, occs[1].Name)
	}
}

func TestExpenseOccurrences_RangeBoundsInclusive(t *testing.T) {
	expenses := []model.RecurringExpense{{
		ID: "x", Name: "Bill", Amount: 50, Frequency: calendar.Weekly,
		NextDueDate: model.DateOf(mustDate(t, "2026-01-05")),
	}}

	occs := ExpenseOccurrences(expenses,
		mustDate(t, "2026-01-05"), mustDate(t, "2026-01-12"), calendar.WeekendNone)

	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2 (both endpoints inclusive)", len(occs))
	}
}
