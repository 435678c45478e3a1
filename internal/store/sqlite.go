package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

type calibrationRow struct {
	Name           string  `db:"name"`
	BiasCorrection float64 `db:"bias_correction"`
	Note           string  `db:"note"`
	UpdatedAt      string  `db:"updated_at"`
}

func (r calibrationRow) profile() (*CalibrationProfile, error) {
	ts, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for %s: %w", r.Name, err)
	}
	return &CalibrationProfile{
		Name:           r.Name,
		BiasCorrection: r.BiasCorrection,
		Note:           r.Note,
		UpdatedAt:      ts,
	}, nil
}

// NewSQLiteStore opens the database at path and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetCalibration(ctx context.Context, name string) (*CalibrationProfile, error) {
	var row calibrationRow
	err := s.db.GetContext(ctx, &row, `
		SELECT name, bias_correction, note, updated_at
		FROM validator_calibrations WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get calibration %s: %w", name, err)
	}
	return row.profile()
}

func (s *SQLiteStore) ListCalibrations(ctx context.Context) ([]*CalibrationProfile, error) {
	var rows []calibrationRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT name, bias_correction, note, updated_at
		FROM validator_calibrations ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list calibrations: %w", err)
	}

	out := make([]*CalibrationProfile, 0, len(rows))
	for _, r := range rows {
		p, err := r.profile()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *SQLiteStore) UpsertCalibration(ctx context.Context, p *CalibrationProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	updatedAt := s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO validator_calibrations (name, bias_correction, note, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			bias_correction = excluded.bias_correction,
			note = excluded.note,
			updated_at = excluded.updated_at`,
		p.Name, p.BiasCorrection, p.Note, updatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert calibration %s: %w", p.Name, err)
	}
	p.UpdatedAt = updatedAt
	return nil
}
