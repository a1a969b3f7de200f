// Command api serves the assistant over HTTP.
//
// Usage:
//
//	scoracle-api
//	API_PORT=8080 ASSISTANT_MODE=hybrid LLM_BACKEND=ollama scoracle-api

// @title Scoracle Assistant API
// @version 1.0.0
// @description Answers natural-language questions about football league statistics through rule-based templates or an LLM-generated query.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-assistant/internal/api"
	"github.com/albapepper/scoracle-assistant/internal/assistant"
	"github.com/albapepper/scoracle-assistant/internal/cache"
	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/metrics"

	_ "github.com/albapepper/scoracle-assistant/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rec := metrics.NewRecorder()

	logger.Info("Opening assistant...", "mode", cfg.Mode)
	a, err := assistant.Open(ctx, cfg, logger, rec)
	if err != nil {
		logger.Error("Failed to open assistant", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	appCache := cache.New(cfg.CacheEnabled, cfg.CacheTTL)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.CacheTTL)

	router := api.NewRouter(a, appCache, rec, cfg)

	// LLM answers can take a while; the write timeout covers two completions.
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Assistant API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			cancel()
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
