// Package llm is the single completion interface the assistant uses for query
// generation and narration, with hosted (OpenAI, Gemini) and local (Ollama)
// implementations selected by configuration.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/metrics"
)

// ErrEmptyCompletion is returned when a backend answers with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// Options tune a single completion. A nil Temperature leaves the backend
// default in place; MaxTokens 0 means no explicit budget.
type Options struct {
	Temperature *float64
	MaxTokens   int
}

// Deterministic returns options for reproducible output (temperature 0).
func Deterministic(maxTokens int) Options {
	zero := 0.0
	return Options{Temperature: &zero, MaxTokens: maxTokens}
}

// Backend completes a system + user prompt pair.
type Backend interface {
	Complete(ctx context.Context, system, user string, opts Options) (string, error)
	Name() string
}

// New builds the backend named by cfg.LLMBackend, wrapped with retries.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, rec *metrics.Recorder) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch cfg.LLMBackend {
	case config.BackendOpenAI:
		b = NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout)
	case config.BackendGemini:
		b, err = NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	case config.BackendOllama:
		b = NewOllama(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTimeout)
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", cfg.LLMBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", cfg.LLMBackend, err)
	}
	return NewRetrying(b, cfg.LLMMaxRetries, logger, rec), nil
}

func nonEmpty(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyCompletion
	}
	return s, nil
}
