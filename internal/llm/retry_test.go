package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/metrics"
)

type scriptedBackend struct {
	replies []string
	errs    []error
	calls   int
	opts    []Options
}

func (s *scriptedBackend) Name() string { return "scripted" }

func (s *scriptedBackend) Complete(_ context.Context, _, _ string, opts Options) (string, error) {
	i := s.calls
	s.calls++
	s.opts = append(s.opts, opts)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", errors.New("script exhausted")
}

func newTestRetrying(next Backend, retries int) *Retrying {
	r := NewRetrying(next, retries, logging.Discard(), metrics.NewRecorder())
	r.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return r
}

func TestRetryingRecoversFromTransientErrors(t *testing.T) {
	next := &scriptedBackend{
		errs:    []error{errors.New("503"), errors.New("timeout"), nil},
		replies: []string{"", "", "SELECT 1"},
	}
	out, err := newTestRetrying(next, 2).Complete(context.Background(), "s", "u", Deterministic(10))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", out)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, 10, next.opts[2].MaxTokens)
}

func TestRetryingGivesUp(t *testing.T) {
	boom := errors.New("connection refused")
	next := &scriptedBackend{errs: []error{boom, boom, boom}}
	_, err := newTestRetrying(next, 1).Complete(context.Background(), "s", "u", Options{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, next.calls)
}

func TestRetryingDoesNotRetryEmptyCompletions(t *testing.T) {
	next := &scriptedBackend{errs: []error{ErrEmptyCompletion}}
	_, err := newTestRetrying(next, 3).Complete(context.Background(), "s", "u", Options{})
	require.ErrorIs(t, err, ErrEmptyCompletion)
	assert.Equal(t, 1, next.calls)
}

func TestRetryingStopsOnClientErrors(t *testing.T) {
	cases := map[string]error{
		"openai auth":      &openai.APIError{HTTPStatusCode: 401, Message: "invalid api key"},
		"openai request":   fmt.Errorf("wrapped: %w", &openai.RequestError{HTTPStatusCode: 400}),
		"gemini forbidden": genai.APIError{Code: 403, Message: "permission denied"},
		"ollama not found": &StatusError{Code: 404, Body: "model not found"},
	}
	for name, boom := range cases {
		t.Run(name, func(t *testing.T) {
			next := &scriptedBackend{errs: []error{boom, boom, boom}}
			_, err := newTestRetrying(next, 3).Complete(context.Background(), "s", "u", Options{})
			assert.Equal(t, boom, err)
			assert.Equal(t, 1, next.calls)
		})
	}
}

func TestRetryingRetriesThrottlingAndServerErrors(t *testing.T) {
	for _, boom := range []error{
		&openai.APIError{HTTPStatusCode: 429, Message: "rate limited"},
		genai.APIError{Code: 503},
		&StatusError{Code: 500, Body: "out of memory"},
	} {
		next := &scriptedBackend{errs: []error{boom, boom}, replies: []string{"", "", "SELECT 1"}}
		out, err := newTestRetrying(next, 2).Complete(context.Background(), "s", "u", Options{})
		require.NoError(t, err, "%v", boom)
		assert.Equal(t, "SELECT 1", out)
		assert.Equal(t, 3, next.calls)
	}
}

func TestRetryingKeepsName(t *testing.T) {
	assert.Equal(t, "scripted", newTestRetrying(&scriptedBackend{}, 0).Name())
}
