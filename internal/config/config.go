// Package config provides centralized configuration loaded from environment
// variables, optionally seeded from a YAML file. Shared by cmd/chat, cmd/api
// and cmd/ingest.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names, matching sqlbuild.CreateTables
// --------------------------------------------------------------------------

const (
	SeasonsTable        = "seasons"
	TeamsTable          = "teams"
	TeamStatisticsTable = "team_statistics"
)

// --------------------------------------------------------------------------
// Assistant modes and LLM backends
// --------------------------------------------------------------------------

// Mode selects how questions are answered.
type Mode string

const (
	ModeRules  Mode = "rules"  // regex intents + fixed templates only
	ModeLLM    Mode = "llm"    // every question goes through the LLM backend
	ModeHybrid Mode = "hybrid" // templates for known intents, LLM for the rest
)

// Backend names accepted by LLM_BACKEND.
const (
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
	BackendOllama = "ollama"
)

// ErrNoDatabase is returned when no database location is configured.
var ErrNoDatabase = errors.New("DATABASE_URL must be set")

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Assistant
	Mode        Mode
	HistoryPath string

	// LLM
	LLMBackend         string
	LLMTimeout         time.Duration
	LLMMaxRetries      int
	QueryMaxTokens     int
	NarrationMaxTokens int
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	GeminiAPIKey       string
	GeminiModel        string
	OllamaURL          string
	OllamaModel        string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Import feed
	FeedAPIKey            string
	FeedRequestsPerMinute int

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
// When ASSISTANT_CONFIG points at a YAML file its values replace the built-in
// defaults; environment variables still win.
func Load() (*Config, error) {
	file, err := loadFile(os.Getenv("ASSISTANT_CONFIG"))
	if err != nil {
		return nil, err
	}
	d := file.defaults()

	dbURL := envOr("DATABASE_URL", d.DatabaseURL)
	if dbURL == "" {
		return nil, ErrNoDatabase
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		Mode:        Mode(strings.ToLower(envOr("ASSISTANT_MODE", d.Mode))),
		HistoryPath: envOr("HISTORY_PATH", d.HistoryPath),

		LLMBackend:         strings.ToLower(envOr("LLM_BACKEND", d.LLMBackend)),
		LLMTimeout:         envDuration("LLM_TIMEOUT", d.LLMTimeout),
		LLMMaxRetries:      envInt("LLM_MAX_RETRIES", 2),
		QueryMaxTokens:     envInt("LLM_QUERY_MAX_TOKENS", 512),
		NarrationMaxTokens: envInt("LLM_NARRATION_MAX_TOKENS", 2000),
		OpenAIAPIKey:       envOr("OPENAI_API_KEY", d.OpenAIAPIKey),
		OpenAIModel:        envOr("OPENAI_MODEL", d.OpenAIModel),
		OpenAIBaseURL:      envOr("OPENAI_BASE_URL", d.OpenAIBaseURL),
		GeminiAPIKey:       envOr("GEMINI_API_KEY", d.GeminiAPIKey),
		GeminiModel:        envOr("GEMINI_MODEL", d.GeminiModel),
		OllamaURL:          envOr("OLLAMA_URL", d.OllamaURL),
		OllamaModel:        envOr("OLLAMA_MODEL", d.OllamaModel),

		APIHost:     envOr("API_HOST", d.APIHost),
		APIPort:     envInt("API_PORT", envInt("PORT", d.APIPort)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		FeedAPIKey:            os.Getenv("FEED_API_KEY"),
		FeedRequestsPerMinute: envInt("FEED_REQUESTS_PER_MINUTE", 60),

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     envDuration("CACHE_TTL", 10*time.Minute),

		LogLevel:  envOr("LOG_LEVEL", d.LogLevel),
		LogFormat: envOr("LOG_FORMAT", d.LogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRules, ModeLLM, ModeHybrid:
	default:
		return fmt.Errorf("ASSISTANT_MODE must be rules, llm or hybrid, got %q", c.Mode)
	}
	if !c.UsesLLM() {
		return nil
	}
	switch c.LLMBackend {
	case BackendOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai backend")
		}
	case BackendGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini backend")
		}
	case BackendOllama:
	default:
		return fmt.Errorf("LLM_BACKEND must be openai, gemini or ollama, got %q", c.LLMBackend)
	}
	return nil
}

// UsesLLM reports whether the configured mode needs an LLM backend.
func (c *Config) UsesLLM() bool {
	return c.Mode == ModeLLM || c.Mode == ModeHybrid
}

// IsSQLite reports whether DatabaseURL addresses an embedded SQLite file.
func (c *Config) IsSQLite() bool {
	_, ok := c.SQLitePath()
	return ok
}

// SQLitePath returns the file path of a "sqlite:" database URL.
func (c *Config) SQLitePath() (string, bool) {
	for _, prefix := range []string{"sqlite://", "sqlite:"} {
		if strings.HasPrefix(c.DatabaseURL, prefix) {
			return strings.TrimPrefix(c.DatabaseURL, prefix), true
		}
	}
	return "", false
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
