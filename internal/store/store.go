package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"
)

// MaxNameLength bounds calibration profile names.
const MaxNameLength = 128

// Names become a single event subject token, so dots, wildcards and
// whitespace are excluded.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrNotFound is returned when a calibration profile does not exist.
var ErrNotFound = errors.New("calibration profile not found")

// CalibrationProfile is a named bias correction applied after weighted aggregation.
type CalibrationProfile struct {
	Name           string    `json:"name"`
	BiasCorrection float64   `json:"bias_correction"`
	Note           string    `json:"note,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate checks the profile can be stored.
func (p *CalibrationProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("calibration name required")
	}
	if len(p.Name) > MaxNameLength {
		return fmt.Errorf("calibration name too long (%d > %d)", len(p.Name), MaxNameLength)
	}
	if !namePattern.MatchString(p.Name) {
		return fmt.Errorf("calibration name %q may only contain letters, digits, '-' and '_'", p.Name)
	}
	if math.IsNaN(p.BiasCorrection) || math.IsInf(p.BiasCorrection, 0) {
		return fmt.Errorf("bias_correction must be finite")
	}
	return nil
}

// Store persists calibration profiles. Scoring results are never stored.
type Store interface {
	GetCalibration(ctx context.Context, name string) (*CalibrationProfile, error)
	ListCalibrations(ctx context.Context) ([]*CalibrationProfile, error)
	UpsertCalibration(ctx context.Context, p *CalibrationProfile) error
	Close() error
}
