package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MikeSquared-Agency/Validator/internal/api"
	"github.com/MikeSquared-Agency/Validator/internal/config"
	"github.com/MikeSquared-Agency/Validator/internal/hermes"
	"github.com/MikeSquared-Agency/Validator/internal/logging"
	"github.com/MikeSquared-Agency/Validator/internal/metrics"
	"github.com/MikeSquared-Agency/Validator/internal/scoring"
	"github.com/MikeSquared-Agency/Validator/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Calibration store
	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open calibration store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("calibration store ready", "driver", cfg.Database.Driver)

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")

			err := hc.Subscribe(hermes.SubjectCalibrationUpdatedAll, func(subject string, data []byte) {
				var evt hermes.CalibrationUpdatedEvent
				if err := json.Unmarshal(data, &evt); err != nil {
					logger.Warn("malformed calibration event", "subject", subject, "error", err)
					return
				}
				logger.Info("calibration updated", "name", evt.Name, "bias_correction", evt.BiasCorrection, "updated_by", evt.UpdatedBy)
			})
			if err != nil {
				logger.Warn("failed to subscribe to calibration events", "error", err)
			}
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	scorer := scoring.NewScorer(logger, scoring.WithObserver(recorder.Observe))

	// API server
	router := api.NewRouter(db, hermesClient, scorer, cfg, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
