// Package handler provides HTTP handlers for all API endpoints.
// Every answer goes through the assistant; the handlers only shape requests
// and responses.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-assistant/internal/api/respond"
	"github.com/albapepper/scoracle-assistant/internal/assistant"
	"github.com/albapepper/scoracle-assistant/internal/cache"
	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/history"
	"github.com/albapepper/scoracle-assistant/internal/query"
)

// Assistant is the part of *assistant.Assistant the handlers use.
type Assistant interface {
	Answer(ctx context.Context, text string) assistant.Answer
	Trend(ctx context.Context, fragment string, limit int) query.Trend
	Columns() []string
	History() *history.Store
	Mode() config.Mode
	Backend() string
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	assistant Assistant
	cache     *cache.Cache
	cfg       *config.Config
}

// New creates a Handler with shared dependencies.
func New(a Assistant, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{assistant: a, cache: c, cfg: cfg}
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, answering mode and LLM backend.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"name":    "Scoracle Assistant API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"mode":    h.assistant.Mode(),
		"backend": h.assistant.Backend(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": now(),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Pings the statistics database.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.assistant.Ping(r.Context()); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": now(),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": now(),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns answer cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": now(),
	})
}
