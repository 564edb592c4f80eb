package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/glidepath/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Archive is the SQLite mirror of completed periods. The JSON document
// remains the source of truth; the archive exists so history queries don't
// have to load and scan the whole document.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the archive database at the given path.
func OpenArchive(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// RecordPeriod upserts a period and its variance explanations.
func (a *Archive) RecordPeriod(p model.HistoricalPeriod) error {
	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	confirmedAt := ""
	if p.ConfirmedAt != nil {
		confirmedAt = p.ConfirmedAt.UTC().Format(time.RFC3339)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO periods
		(id, period_number, start_date, end_date, starting_balance, ending_balance,
		 projected_ending_balance, income, recurring_expenses, adhoc_income,
		 adhoc_expenses, baseline_spend, true_spend, variance, status, confirmed_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.PeriodNumber, p.StartDate.String(), p.EndDate.String(),
		p.StartingBalance, p.EndingBalance, p.ProjectedEndingBalance,
		p.Income, p.RecurringExpenses, p.AdHocIncome, p.AdHocExpenses,
		p.BaselineSpend, p.TrueSpend, p.Variance, string(p.Status), confirmedAt, now,
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM period_explanations WHERE period_id = ?", p.ID); err != nil {
		return err
	}
	for i, ex := range p.VarianceExplanations {
		affects := 0
		if ex.AffectsBaseline {
			affects = 1
		}
		_, err = tx.Exec(`INSERT INTO period_explanations
			(period_id, seq, reason, amount, description, affects_baseline)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, i, string(ex.Reason), ex.Amount, ex.Description, affects,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SyncPeriods mirrors every period in the document into the archive.
func (a *Archive) SyncPeriods(periods []model.HistoricalPeriod) error {
	for _, p := range periods {
		if err := a.RecordPeriod(p); err != nil {
			return fmt.Errorf("archiving period %d: %w", p.PeriodNumber, err)
		}
	}
	return nil
}

// ListPeriods returns archived periods ordered by period number descending,
// newest first. limit <= 0 means all.
func (a *Archive) ListPeriods(limit int) ([]model.HistoricalPeriod, error) {
	query := `SELECT id, period_number, start_date, end_date, starting_balance,
		ending_balance, projected_ending_balance, income, recurring_expenses,
		adhoc_income, adhoc_expenses, baseline_spend, true_spend, variance,
		status, confirmed_at
		FROM periods ORDER BY period_number DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var periods []model.HistoricalPeriod
	index := make(map[string]int)
	for rows.Next() {
		var p model.HistoricalPeriod
		var startStr, endStr, status, confirmedStr sql.NullString

		err := rows.Scan(&p.ID, &p.PeriodNumber, &startStr, &endStr,
			&p.StartingBalance, &p.EndingBalance, &p.ProjectedEndingBalance,
			&p.Income, &p.RecurringExpenses, &p.AdHocIncome, &p.AdHocExpenses,
			&p.BaselineSpend, &p.TrueSpend, &p.Variance, &status, &confirmedStr)
		if err != nil {
			return nil, err
		}

		p.Status = model.PeriodStatus(status.String)
		if startStr.Valid && startStr.String != "" {
			if d, err := model.ParseDateString(startStr.String); err == nil {
				p.StartDate = d
			}
		}
		if endStr.Valid && endStr.String != "" {
			if d, err := model.ParseDateString(endStr.String); err == nil {
				p.EndDate = d
			}
		}
		if confirmedStr.Valid && confirmedStr.String != "" {
			if t, err := time.Parse(time.RFC3339, confirmedStr.String); err == nil {
				p.ConfirmedAt = &t
			}
		}

		index[p.ID] = len(periods)
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exRows, err := a.db.Query(`SELECT period_id, reason, amount, description, affects_baseline
		FROM period_explanations ORDER BY period_id, seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = exRows.Close() }()

	for exRows.Next() {
		var pid string
		var ex model.VarianceExplanation
		var desc sql.NullString
		var affects int
		if err := exRows.Scan(&pid, &ex.Reason, &ex.Amount, &desc, &affects); err != nil {
			return nil, err
		}
		ex.Description = desc.String
		ex.AffectsBaseline = affects != 0
		if i, ok := index[pid]; ok {
			periods[i].VarianceExplanations = append(periods[i].VarianceExplanations, ex)
		}
	}

	return periods, exRows.Err()
}

// PeriodCount returns the number of archived periods.
func (a *Archive) PeriodCount() (int, error) {
	var count int
	err := a.db.QueryRow("SELECT COUNT(*) FROM periods").Scan(&count)
	return count, err
}
