package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS periods (
    id                        TEXT PRIMARY KEY,
    period_number             INTEGER NOT NULL,
    start_date                TEXT,
    end_date                  TEXT,
    starting_balance          REAL,
    ending_balance            REAL,
    projected_ending_balance  REAL,
    income                    REAL,
    recurring_expenses        REAL,
    adhoc_income              REAL,
    adhoc_expenses            REAL,
    baseline_spend            REAL,
    true_spend                REAL,
    variance                  REAL,
    status                    TEXT NOT NULL,
    confirmed_at              TEXT,
    archived_at               TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS period_explanations (
    period_id         TEXT NOT NULL REFERENCES periods(id) ON DELETE CASCADE,
    seq               INTEGER NOT NULL,
    reason            TEXT NOT NULL,
    amount            REAL NOT NULL,
    description       TEXT,
    affects_baseline  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (period_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_periods_number ON periods(period_number);
`
