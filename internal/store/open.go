package store

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/Validator/internal/config"
)

// Open connects the calibration store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.URL)
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
