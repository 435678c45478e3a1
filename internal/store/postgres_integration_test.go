//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE validator_calibrations")
		s.Close()
	})

	return s
}

func TestPostgresUpsertAndGet(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p := &CalibrationProfile{Name: "optimism-v1", BiasCorrection: -2.25, Note: "integration"}
	if err := s.UpsertCalibration(ctx, p); err != nil {
		t.Fatalf("UpsertCalibration failed: %v", err)
	}
	if p.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be set")
	}

	got, err := s.GetCalibration(ctx, "optimism-v1")
	if err != nil {
		t.Fatalf("GetCalibration failed: %v", err)
	}
	if got.BiasCorrection != -2.25 {
		t.Errorf("expected bias -2.25, got %f", got.BiasCorrection)
	}
	if got.Note != "integration" {
		t.Errorf("expected note 'integration', got %q", got.Note)
	}
}

func TestPostgresUpsertOverwrites(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	_ = s.UpsertCalibration(ctx, &CalibrationProfile{Name: "p", BiasCorrection: 1})
	if err := s.UpsertCalibration(ctx, &CalibrationProfile{Name: "p", BiasCorrection: 3}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	all, err := s.ListCalibrations(ctx)
	if err != nil {
		t.Fatalf("ListCalibrations failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(all))
	}
	if all[0].BiasCorrection != 3 {
		t.Errorf("expected bias 3, got %f", all[0].BiasCorrection)
	}
}

func TestPostgresGetMissing(t *testing.T) {
	s := setupTestDB(t)
	_, err := s.GetCalibration(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
