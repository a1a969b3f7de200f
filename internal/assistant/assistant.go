// Package assistant answers one natural-language question at a time, routing
// it through the rule-based templates, the generative backend, or both.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/generative"
	"github.com/albapepper/scoracle-assistant/internal/history"
	"github.com/albapepper/scoracle-assistant/internal/intent"
	"github.com/albapepper/scoracle-assistant/internal/llm"
	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/metrics"
	"github.com/albapepper/scoracle-assistant/internal/query"
)

// Apology is returned for any per-question fault other than missing data.
const Apology = "I apologize, but I encountered an error while answering your question."

// Answer paths.
const (
	PathTemplate   = "template"
	PathGenerative = "generative"
	PathHelp       = "help"
	PathError      = "error"
)

// Answer is the reply to one question.
type Answer struct {
	Text      string `json:"answer"`
	Intent    string `json:"intent"`
	Path      string `json:"path"`
	Statement string `json:"statement,omitempty"`
	Backend   string `json:"backend,omitempty"`
	HistoryID string `json:"historyId,omitempty"`
}

// Options wires an Assistant built by New.
type Options struct {
	Mode       config.Mode
	Backend    llm.Backend // required unless Mode is rules
	Generative generative.Config
	History    *history.Store
	Metrics    *metrics.Recorder
}

// Assistant owns the Data Store handle and the column list captured at
// startup. Answer calls are serialized.
type Assistant struct {
	mu sync.Mutex

	mode       config.Mode
	store      db.Store
	runner     *db.Executor
	templates  *query.Engine
	generative *generative.Engine
	backend    string
	columns    []string
	history    *history.Store
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// Open connects to the configured Data Store and LLM backend. Any failure
// here is a startup failure.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, rec *metrics.Recorder) (*Assistant, error) {
	store, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		store.Close()
		return nil, err
	}

	var backend llm.Backend
	if cfg.UsesLLM() {
		backend, err = llm.New(ctx, cfg, logger, rec)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	a, err := New(ctx, store, Options{
		Mode:    cfg.Mode,
		Backend: backend,
		Generative: generative.Config{
			QueryMaxTokens:     cfg.QueryMaxTokens,
			NarrationMaxTokens: cfg.NarrationMaxTokens,
		},
		History: hist,
		Metrics: rec,
	}, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

// New builds an Assistant over an open store. The column list is read once.
func New(ctx context.Context, store db.Store, opts Options, logger *slog.Logger) (*Assistant, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeRules
	}
	if opts.Mode != config.ModeRules && opts.Backend == nil {
		return nil, fmt.Errorf("mode %s needs an LLM backend", opts.Mode)
	}
	if opts.History == nil {
		opts.History, _ = history.Open("")
	}

	columns, err := store.ListColumns(ctx, config.TeamStatisticsTable)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found; run `ingest schema` first", config.TeamStatisticsTable)
	}

	a := &Assistant{
		mode:      opts.Mode,
		store:     store,
		runner:    db.NewExecutor(store, logger, opts.Metrics),
		templates: query.NewEngine(store.Dialect(), logger, opts.Metrics),
		columns:   columns,
		history:   opts.History,
		logger:    logger,
		metrics:   opts.Metrics,
	}
	if opts.Backend != nil {
		a.backend = opts.Backend.Name()
		a.generative = generative.NewEngine(opts.Backend, columns, store.Dialect(), opts.Generative, logger)
	}

	logger.Info("Assistant ready",
		"mode", a.mode,
		"backend", a.backend,
		"dialect", store.Dialect(),
		"columns", len(columns),
	)
	return a, nil
}

// Answer replies to text. It never fails: faults become the apology and are
// logged.
func (a *Assistant) Answer(ctx context.Context, text string) (ans Answer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	text = strings.TrimSpace(text)
	in := intent.Parse(text)
	ans.Intent = in.Kind.String()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic while answering",
				"question", text,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			ans = Answer{Text: Apology, Intent: in.Kind.String(), Path: PathError, Backend: ans.Backend}
		}
		a.finish(text, &ans)
	}()

	switch {
	case in.Kind != intent.Unknown && a.mode != config.ModeLLM:
		reply, plan, _ := a.templates.Answer(ctx, a.runner, in)
		ans.Text, ans.Path, ans.Statement = reply, PathTemplate, plan.Statement
	case a.mode == config.ModeRules:
		ans.Text, ans.Path = query.HelpText, PathHelp
	default:
		ans.Backend = a.backend
		res, err := a.generative.Answer(ctx, a.runner, text)
		ans.Statement = res.Statement
		if err != nil {
			a.logger.Error("generative answer failed",
				"backend", a.backend,
				"question", text,
				"error", err,
			)
			ans.Text, ans.Path = Apology, PathError
			return ans
		}
		ans.Text, ans.Path = res.Answer, PathGenerative
	}
	return ans
}

func (a *Assistant) finish(question string, ans *Answer) {
	a.metrics.RecordQuestion(ans.Intent, ans.Path)

	entry, err := a.history.Append(history.Entry{
		Question:  question,
		Intent:    ans.Intent,
		Path:      ans.Path,
		Statement: ans.Statement,
		Answer:    ans.Text,
		Backend:   ans.Backend,
	})
	if err != nil {
		a.logger.Warn("history not saved", "error", err)
	}
	ans.HistoryID = entry.ID
}

// Trend returns the goal trend for the team matching fragment.
func (a *Assistant) Trend(ctx context.Context, fragment string, limit int) query.Trend {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.templates.GoalTrend(ctx, a.runner, fragment, limit)
}

// Columns returns the column list captured at startup.
func (a *Assistant) Columns() []string {
	return append([]string(nil), a.columns...)
}

// History returns the transcript store.
func (a *Assistant) History() *history.Store { return a.history }

// Mode returns the answering mode.
func (a *Assistant) Mode() config.Mode { return a.mode }

// Backend returns the LLM backend name, empty in rules mode.
func (a *Assistant) Backend() string { return a.backend }

// Ping checks the Data Store.
func (a *Assistant) Ping(ctx context.Context) error { return a.store.Ping(ctx) }

// Close releases the Data Store.
func (a *Assistant) Close() error {
	return a.store.Close()
}
