package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ASSISTANT_CONFIG", "DATABASE_URL", "ASSISTANT_MODE", "LLM_BACKEND",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "OLLAMA_URL", "OLLAMA_MODEL",
		"LLM_TIMEOUT", "API_PORT", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresDatabase(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.ErrorIs(t, err, ErrNoDatabase)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/turkish_football")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeRules, cfg.Mode)
	assert.Equal(t, BackendOpenAI, cfg.LLMBackend)
	assert.Equal(t, "gpt-4", cfg.OpenAIModel)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.False(t, cfg.UsesLLM())
	assert.False(t, cfg.IsSQLite())
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite:league.db")
	t.Setenv("ASSISTANT_MODE", "telepathy")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ASSISTANT_MODE")
}

func TestLoadRequiresKeyForHostedBackends(t *testing.T) {
	cases := []struct {
		backend string
		keyVar  string
	}{
		{BackendOpenAI, "OPENAI_API_KEY"},
		{BackendGemini, "GEMINI_API_KEY"},
	}
	for _, tc := range cases {
		t.Run(tc.backend, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_URL", "sqlite:league.db")
			t.Setenv("ASSISTANT_MODE", "llm")
			t.Setenv("LLM_BACKEND", tc.backend)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.keyVar)

			t.Setenv(tc.keyVar, "secret")
			cfg, err := Load()
			require.NoError(t, err)
			assert.True(t, cfg.UsesLLM())
		})
	}
}

func TestLoadOllamaNeedsNoKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite:league.db")
	t.Setenv("ASSISTANT_MODE", "HYBRID")
	t.Setenv("LLM_BACKEND", "Ollama")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeHybrid, cfg.Mode)
	assert.Equal(t, BackendOllama, cfg.LLMBackend)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
}

func TestLoadFileDefaultsAreOverriddenByEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	doc := `database_url: sqlite:data/league.db
mode: hybrid
llm:
  backend: ollama
  timeout: 45s
  ollama:
    model: mistral
api:
  port: 9090
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	t.Setenv("ASSISTANT_CONFIG", path)
	t.Setenv("OLLAMA_MODEL", "llama3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite:data/league.db", cfg.DatabaseURL)
	assert.Equal(t, ModeHybrid, cfg.Mode)
	assert.Equal(t, BackendOllama, cfg.LLMBackend)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "llama3", cfg.OllamaModel)
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [unclosed"), 0o644))
	t.Setenv("ASSISTANT_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestSQLitePath(t *testing.T) {
	cases := []struct {
		url  string
		path string
		ok   bool
	}{
		{"sqlite:league.db", "league.db", true},
		{"sqlite:///tmp/league.db", "/tmp/league.db", true},
		{"postgres://localhost/db", "", false},
	}
	for _, tc := range cases {
		cfg := &Config{DatabaseURL: tc.url}
		path, ok := cfg.SQLitePath()
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.path, path, tc.url)
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("LIST_TEST", " a, ,b ,c")
	assert.Equal(t, []string{"a", "b", "c"}, envList("LIST_TEST", nil))

	t.Setenv("LIST_TEST", " , ")
	assert.Equal(t, []string{"x"}, envList("LIST_TEST", []string{"x"}))
}
