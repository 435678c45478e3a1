package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

// DatabaseConfig selects the calibration store. Driver is "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// ScoringConfig holds the bias correction applied when a request names none.
// DefaultProfile, when set, takes precedence over BiasCorrection.
type ScoringConfig struct {
	BiasCorrection float64 `yaml:"bias_correction"`
	DefaultProfile string  `yaml:"default_profile"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			URL:    "validator.db",
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 120,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database url required")
	}
	if math.IsNaN(c.Scoring.BiasCorrection) || math.IsInf(c.Scoring.BiasCorrection, 0) {
		return fmt.Errorf("scoring bias_correction must be finite")
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit requests_per_minute must be positive, got %d", c.RateLimit.RequestsPerMinute)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VALIDATOR_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("VALIDATOR_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("VALIDATOR_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("VALIDATOR_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("VALIDATOR_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("VALIDATOR_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("VALIDATOR_BIAS_CORRECTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.BiasCorrection = f
		}
	}
	if v := os.Getenv("VALIDATOR_DEFAULT_PROFILE"); v != "" {
		cfg.Scoring.DefaultProfile = v
	}
	if v := os.Getenv("VALIDATOR_RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.RequestsPerMinute = n
		}
	}
	if v := os.Getenv("VALIDATOR_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}
	if v := os.Getenv("VALIDATOR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VALIDATOR_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
