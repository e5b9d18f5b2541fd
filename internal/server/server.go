// Package server exposes a loaded schema over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/internal/metrics"
)

// DefaultMaxBodyBytes bounds request bodies when Config leaves it unset.
const DefaultMaxBodyBytes = 10 << 20

// Source supplies the validator for each request. It may return nil while
// no schema is loaded.
type Source interface {
	Get() *jsonschema.Validator
}

// Config holds optional router settings.
type Config struct {
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	Metrics        *metrics.Collector
	MetricsHandler http.Handler // mounted at MetricsPath when non-nil
	MetricsPath    string
}

// NewRouter creates the HTTP router.
func NewRouter(src Source, logger zerolog.Logger, cfg Config) chi.Router {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	h := &handler{
		source:       src,
		logger:       logger,
		metrics:      cfg.Metrics,
		maxBodyBytes: cfg.MaxBodyBytes,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.Metrics != nil {
		r.Use(metricsMiddleware(cfg.Metrics))
	}

	r.Get("/healthz", h.health)
	r.Get("/schema", h.schema)
	r.Post("/validate", h.validate)

	if cfg.MetricsHandler != nil {
		r.Handle(cfg.MetricsPath, cfg.MetricsHandler)
	}

	return r
}
