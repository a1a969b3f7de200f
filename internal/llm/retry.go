package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/albapepper/scoracle-assistant/internal/metrics"
)

// Retrying wraps a Backend with exponential backoff. Every attempt is
// recorded. Empty completions, context cancellation and client errors
// (4xx other than 408 and 429) are not retried.
type Retrying struct {
	next       Backend
	maxRetries int
	logger     *slog.Logger
	metrics    *metrics.Recorder

	newBackOff func() backoff.BackOff
}

func NewRetrying(next Backend, maxRetries int, logger *slog.Logger, rec *metrics.Recorder) *Retrying {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retrying{
		next:       next,
		maxRetries: maxRetries,
		logger:     logger,
		metrics:    rec,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
	}
}

func (r *Retrying) Name() string { return r.next.Name() }

func (r *Retrying) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	var out string
	attempt := 0
	op := func() error {
		attempt++
		start := time.Now()
		text, err := r.next.Complete(ctx, system, user, opts)
		r.metrics.RecordBackendAttempt(r.next.Name(), time.Since(start), err)
		if err != nil {
			if errors.Is(err, ErrEmptyCompletion) || ctx.Err() != nil || clientError(err) {
				return backoff.Permanent(err)
			}
			r.logger.Warn("llm attempt failed", "backend", r.next.Name(), "attempt", attempt, "error", err)
			return err
		}
		out = text
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxRetries)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return "", err
	}
	return out, nil
}

// statusCode digs the HTTP status out of a backend error, 0 if none.
func statusCode(err error) int {
	var oaiAPI *openai.APIError
	if errors.As(err, &oaiAPI) {
		return oaiAPI.HTTPStatusCode
	}
	var oaiReq *openai.RequestError
	if errors.As(err, &oaiReq) {
		return oaiReq.HTTPStatusCode
	}
	var gemini genai.APIError
	if errors.As(err, &gemini) {
		return gemini.Code
	}
	var ollama *StatusError
	if errors.As(err, &ollama) {
		return ollama.Code
	}
	return 0
}

func clientError(err error) bool {
	code := statusCode(err)
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return false
	}
	return code >= 400 && code < 500
}
