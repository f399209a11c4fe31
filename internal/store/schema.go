package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS progress (
    key                  TEXT PRIMARY KEY,
    value                REAL NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quiz_results (
    id                   TEXT PRIMARY KEY,
    score                INTEGER NOT NULL,
    questions            INTEGER NOT NULL,
    completed_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
    id                   TEXT PRIMARY KEY,
    total_income         REAL NOT NULL,
    total_allocated      REAL NOT NULL,
    balanced             INTEGER NOT NULL DEFAULT 0,
    submitted_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_results_completed ON quiz_results(completed_at);
CREATE INDEX IF NOT EXISTS idx_evaluations_submitted ON evaluations(submitted_at);
`
