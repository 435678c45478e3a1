package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Validator/internal/config"
	"github.com/MikeSquared-Agency/Validator/internal/hermes"
	"github.com/MikeSquared-Agency/Validator/internal/scoring"
	"github.com/MikeSquared-Agency/Validator/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, scorer *scoring.Scorer, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", ClientIDHeader},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	r.Use(RateLimitMiddleware(cfg.RateLimit.RequestsPerMinute))

	score := NewScoreHandler(s, h, scorer, cfg.Scoring, logger)
	calibrations := NewCalibrationsHandler(s, h, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", score.Score)
		r.Post("/score/summary", score.Summary)
		r.Get("/dimensions", score.Dimensions)

		r.Get("/calibrations", calibrations.List)
		r.Get("/calibrations/{name}", calibrations.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Put("/calibrations/{name}", calibrations.Put)
		})
	})

	return r
}

// NewMetricsRouter serves /health and the metrics gathered by g.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
