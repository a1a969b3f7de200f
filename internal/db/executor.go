package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-assistant/internal/metrics"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

// Runner executes a read-only statement, reporting faults as no rows.
type Runner interface {
	Run(ctx context.Context, stmt string, args ...any) []Row
}

// Executor is the single path statements take to the Store. Every statement,
// template or generated, must pass the read-only guard.
type Executor struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func NewExecutor(store Store, logger *slog.Logger, rec *metrics.Recorder) *Executor {
	return &Executor{store: store, logger: logger, metrics: rec}
}

// Query guards and runs stmt, returning any fault.
func (e *Executor) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	if err := sqlbuild.CheckReadOnly(stmt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadOnly, err)
	}
	return e.store.Query(ctx, stmt, args...)
}

// Run is Query with faults swallowed: a refused or failing statement is
// logged, counted and reported as an empty result.
func (e *Executor) Run(ctx context.Context, stmt string, args ...any) []Row {
	rows, err := e.Query(ctx, stmt, args...)
	if err != nil {
		reason := "query"
		if errors.Is(err, ErrReadOnly) {
			reason = "read_only"
		}
		e.logger.Warn("statement failed", "reason", reason, "error", err, "statement", stmt)
		e.metrics.RecordExecutionFault(reason)
		return nil
	}
	return rows
}
