package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetCalibration(ctx context.Context, name string) (*CalibrationProfile, error) {
	p := &CalibrationProfile{}
	err := s.pool.QueryRow(ctx, `
		SELECT name, bias_correction, note, updated_at
		FROM validator_calibrations WHERE name = $1`, name,
	).Scan(&p.Name, &p.BiasCorrection, &p.Note, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get calibration %s: %w", name, err)
	}
	return p, nil
}

func (s *PostgresStore) ListCalibrations(ctx context.Context) ([]*CalibrationProfile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, bias_correction, note, updated_at
		FROM validator_calibrations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list calibrations: %w", err)
	}
	defer rows.Close()

	var out []*CalibrationProfile
	for rows.Next() {
		p := &CalibrationProfile{}
		if err := rows.Scan(&p.Name, &p.BiasCorrection, &p.Note, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan calibration: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpsertCalibration(ctx context.Context, p *CalibrationProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO validator_calibrations (name, bias_correction, note, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name) DO UPDATE SET
			bias_correction = EXCLUDED.bias_correction,
			note = EXCLUDED.note,
			updated_at = now()
		RETURNING updated_at`,
		p.Name, p.BiasCorrection, p.Note,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert calibration %s: %w", p.Name, err)
	}
	return nil
}
