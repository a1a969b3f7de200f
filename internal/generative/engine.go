// Package generative answers questions by asking an LLM backend to write the
// SQL statement and then to narrate the rows it returned.
package generative

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/llm"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

// Result is one generative answer and the statement behind it.
type Result struct {
	Statement string
	Rows      []db.Row
	Answer    string
}

// Engine holds the backend and the column list captured at startup.
type Engine struct {
	backend         llm.Backend
	dialect         sqlbuild.Dialect
	system          string
	queryTokens     int
	narrationTokens int
	logger          *slog.Logger
}

// Config sizes the two completions.
type Config struct {
	QueryMaxTokens     int
	NarrationMaxTokens int
}

func NewEngine(backend llm.Backend, columns []string, dialect sqlbuild.Dialect, cfg Config, logger *slog.Logger) *Engine {
	return &Engine{
		backend:         backend,
		dialect:         dialect,
		system:          systemPrompt(columns),
		queryTokens:     cfg.QueryMaxTokens,
		narrationTokens: cfg.NarrationMaxTokens,
		logger:          logger,
	}
}

// GenerateQuery asks the backend for a statement answering question, at
// temperature 0. Only the wrapping around the statement is removed.
func (e *Engine) GenerateQuery(ctx context.Context, question string) (string, error) {
	out, err := e.backend.Complete(ctx, e.system, queryPrompt(question, e.dialect), llm.Deterministic(e.queryTokens))
	if err != nil {
		return "", fmt.Errorf("generate query: %w", err)
	}
	stmt := llm.CleanQuery(out)
	if stmt == "" {
		return "", fmt.Errorf("generate query: %w", llm.ErrEmptyCompletion)
	}
	return stmt, nil
}

// Narrate asks the backend to answer question from the statement and rows.
func (e *Engine) Narrate(ctx context.Context, question, statement string, rows []db.Row) (string, error) {
	results, err := encodeRows(rows)
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}
	out, err := e.backend.Complete(ctx, e.system, narrationPrompt(question, statement, results), llm.Options{MaxTokens: e.narrationTokens})
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("narrate: %w", llm.ErrEmptyCompletion)
	}
	return out, nil
}

// Answer generates a statement, runs it through r and narrates the rows.
// Statement faults surface as an empty result to the narrator.
func (e *Engine) Answer(ctx context.Context, r db.Runner, question string) (Result, error) {
	stmt, err := e.GenerateQuery(ctx, question)
	if err != nil {
		return Result{}, err
	}
	e.logger.Debug("generated statement", "backend", e.backend.Name(), "statement", stmt)

	rows := r.Run(ctx, stmt)
	answer, err := e.Narrate(ctx, question, stmt, rows)
	if err != nil {
		return Result{Statement: stmt, Rows: rows}, err
	}
	return Result{Statement: stmt, Rows: rows, Answer: answer}, nil
}

// encodeRows renders rows as a JSON array of arrays. Byte slices are sent as
// text.
func encodeRows(rows []db.Row) (string, error) {
	out := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, v := range row {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			vals[j] = v
		}
		out[i] = vals
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
