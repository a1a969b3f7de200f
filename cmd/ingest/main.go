// Command ingest loads league data into the statistics database.
//
// Usage:
//
//	scoracle-ingest schema
//	scoracle-ingest import data/super_lig.json
//	cat feed.json | scoracle-ingest import - --strict
//	FEED_API_KEY=... scoracle-ingest import https://feeds.example.com/super-lig
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/db"
	"github.com/albapepper/scoracle-assistant/internal/logging"
	"github.com/albapepper/scoracle-assistant/internal/provider"
	"github.com/albapepper/scoracle-assistant/internal/seed"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scoracle-ingest",
		Short:        "Scoracle league data ingestion CLI",
		SilenceUsage: true,
	}

	root.AddCommand(schemaCmd())
	root.AddCommand(importCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// schema command
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the seasons, teams and team_statistics tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, _ *config.Config, d db.Database, logger *slog.Logger) error {
				if err := db.ApplySchema(ctx, d); err != nil {
					return err
				}
				logger.Info("Schema applied", "dialect", d.Dialect())
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "import <file.json|-|url>",
		Short: "Import seasons, teams and team statistics from a JSON feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, d db.Database, logger *slog.Logger) error {
				seasons, err := readFeed(ctx, cfg, args[0], cmd.InOrStdin(), logger)
				if err != nil {
					return err
				}
				start := time.Now()
				result, err := seed.Import(ctx, d, seasons, logger)
				if err != nil {
					return err
				}
				logger.Info("Import finished", "duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("import error", "error", e)
				}
				if strict && len(result.Errors) > 0 {
					return fmt.Errorf("%d items skipped", len(result.Errors))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any item was skipped")
	return cmd
}

func readFeed(ctx context.Context, cfg *config.Config, path string, stdin io.Reader, logger *slog.Logger) ([]provider.Season, error) {
	switch {
	case path == "-":
		return provider.Decode(stdin)
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		client := provider.NewClient(cfg.FeedAPIKey, cfg.FeedRequestsPerMinute, 30*time.Second, logger)
		return client.Fetch(ctx, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()
	return provider.Decode(f)
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func runIngest(fn func(ctx context.Context, cfg *config.Config, d db.Database, logger *slog.Logger) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	d, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer d.Close()

	return fn(ctx, cfg, d, logger)
}
