package store

const postgresSchema = `
CREATE TABLE IF NOT EXISTS validator_calibrations (
    name            TEXT PRIMARY KEY,
    bias_correction DOUBLE PRECISION NOT NULL DEFAULT 0,
    note            TEXT NOT NULL DEFAULT '',
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS validator_calibrations (
    name            TEXT PRIMARY KEY,
    bias_correction REAL NOT NULL DEFAULT 0,
    note            TEXT NOT NULL DEFAULT '',
    updated_at      TEXT NOT NULL
);
`
