// Command chat asks the assistant questions from the terminal.
//
// Usage:
//
//	scoracle-chat                              # interactive, 'quit' exits
//	scoracle-chat ask Show stats for Galatasaray in 24/25
//	scoracle-chat --mode hybrid --backend ollama ask Who conceded the fewest goals?
//	scoracle-chat trend Galatasaray --seasons 5
//	scoracle-chat history --limit 10
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-assistant/internal/assistant"
	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/history"
	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/query"
)

// flags shared by every subcommand
type options struct {
	mode    string
	backend string
	showSQL bool
	asJSON  bool
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	opts := &options{}
	root := &cobra.Command{
		Use:          "scoracle-chat",
		Short:        "Ask questions about football league statistics",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(opts, func(ctx context.Context, a *assistant.Assistant) error {
				return chatLoop(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			})
		},
	}
	root.PersistentFlags().StringVar(&opts.mode, "mode", "", "Answering mode: rules, llm or hybrid (default from ASSISTANT_MODE)")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "LLM backend: openai, gemini or ollama (default from LLM_BACKEND)")
	root.PersistentFlags().BoolVar(&opts.showSQL, "show-sql", false, "Print the statement behind each answer")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print answers as JSON")

	root.AddCommand(askCmd(opts))
	root.AddCommand(trendCmd(opts))
	root.AddCommand(historyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// commands
// --------------------------------------------------------------------------

func askCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer one question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(opts, func(ctx context.Context, a *assistant.Assistant) error {
				ans := a.Answer(ctx, strings.Join(args, " "))
				return printAnswer(cmd.OutOrStdout(), ans, opts)
			})
		},
	}
}

func trendCmd(opts *options) *cobra.Command {
	var seasons int
	cmd := &cobra.Command{
		Use:   "trend <team...>",
		Short: "Show a team's goal record across recent seasons",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(opts, func(ctx context.Context, a *assistant.Assistant) error {
				team := strings.Join(args, " ")
				trend := a.Trend(ctx, team, seasons)
				if len(trend.Points) == 0 {
					return fmt.Errorf("no seasons found for %q", team)
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"seasons": trend.Points,
						"changes": trend.Changes(),
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTrend(trend))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&seasons, "seasons", query.DefaultTrendSeasons, "Number of recent seasons")
	return cmd
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently answered questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.HistoryPath == "" {
				return fmt.Errorf("history is not kept; set HISTORY_PATH")
			}
			store, err := history.Open(cfg.HistoryPath)
			if err != nil {
				return err
			}
			entries := store.Latest(limit)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No questions yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), renderHistory(entries))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries")
	return cmd
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func chatLoop(ctx context.Context, a *assistant.Assistant, in io.Reader, out io.Writer, opts *options) error {
	fmt.Fprintln(out, "Welcome to the Turkish Football League Assistant!")
	fmt.Fprintln(out, "Ask me about team statistics, comparisons, or form analysis.")
	fmt.Fprintln(out, "Type 'quit' to exit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYour question: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(question, "quit") {
			break
		}
		if question == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintln(out)
		if err := printAnswer(out, a.Answer(ctx, question), opts); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "\nGoodbye!")
	return scanner.Err()
}

func printAnswer(out io.Writer, ans assistant.Answer, opts *options) error {
	if opts.asJSON {
		return writeJSON(out, ans)
	}
	fmt.Fprintln(out, ans.Text)
	if opts.showSQL && ans.Statement != "" {
		fmt.Fprintln(out, renderStatement(ans.Statement))
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withAssistant loads config, applies flag overrides and opens the
// assistant for the duration of fn. Logs go to stderr so answers stay clean
// on stdout.
func withAssistant(opts *options, fn func(ctx context.Context, a *assistant.Assistant) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.mode != "" {
		cfg.Mode = config.Mode(strings.ToLower(opts.mode))
	}
	if opts.backend != "" {
		cfg.LLMBackend = strings.ToLower(opts.backend)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	a, err := assistant.Open(ctx, cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("open assistant: %w", err)
	}
	defer a.Close()

	return fn(ctx, a)
}
