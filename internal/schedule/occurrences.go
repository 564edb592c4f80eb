package schedule

import (
	"sort"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
)

// ExpenseOccurrences expands recurring expenses into every individual due
// date within [rangeStart, rangeEnd] (inclusive), sorted by date then name
// so equal-date occurrences order deterministically. Expenses without a due
// date anchor are skipped rather than crashing the projection.
func ExpenseOccurrences(expenses []model.RecurringExpense, rangeStart, rangeEnd time.Time, handling calendar.WeekendHandling) []model.ExpenseOccurrence {
	rangeStart = calendar.DayStart(rangeStart)
	rangeEnd = calendar.DayStart(rangeEnd)

	var occs []model.ExpenseOccurrence
	for _, e := range expenses {
		if e.NextDueDate.IsZero() {
			continue
		}
		originalDay := e.NextDueDate.Day()
		d := calendar.FirstOccurrenceOnOrAfter(e.NextDueDate.Time, e.Frequency, originalDay, rangeStart)
		for {
			due := calendar.AdjustForWeekend(d, handling)
			if due.After(rangeEnd) {
				break
			}
			occs = append(occs, model.ExpenseOccurrence{
				ExpenseID: e.ID,
				Name:      e.Name,
				Amount:    e.Amount,
				Date:      due,
			})
			next := calendar.AdvanceByFrequency(d, e.Frequency, originalDay)
			if !next.After(d) {
				break
			}
			d = next
		}
	}

	sort.Slice(occs, func(i, j int) bool {
		if !occs[i].Date.Equal(occs[j].Date) {
			return occs[i].Date.Before(occs[j].Date)
		}
		return occs[i].Name < occs[j].Name
	})
	return occs
}
