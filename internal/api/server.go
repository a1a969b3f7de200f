// Package api wires the HTTP router: middleware, the assistant endpoints,
// health checks, metrics and API docs.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/scoracle-assistant/internal/api/handler"
	"github.com/albapepper/scoracle-assistant/internal/cache"
	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/metrics"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(a handler.Assistant, appCache *cache.Cache, rec *metrics.Recorder, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware(rec))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	h := handler.New(a, appCache, cfg)

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Handle("/metrics", rec.Handler())

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// API v1 routes, rate limited
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitEnabled {
			r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}

		r.Get("/ask", h.AskGet)
		r.Post("/ask", h.AskPost)
		r.Get("/columns", h.Columns)
		r.Get("/trend", h.GetTrend)
		r.Get("/history", h.ListHistory)
		r.Get("/history/{id}", h.GetHistory)
	})

	return r
}
