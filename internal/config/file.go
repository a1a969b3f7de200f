package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML document named by ASSISTANT_CONFIG.
//
//	database_url: sqlite:data/league.db
//	mode: hybrid
//	llm:
//	  backend: ollama
//	  timeout: 120s
//	  ollama:
//	    url: http://localhost:11434
//	    model: llama2
type FileConfig struct {
	DatabaseURL string  `yaml:"database_url"`
	Mode        string  `yaml:"mode"`
	HistoryPath string  `yaml:"history_path"`
	LLM         LLMFile `yaml:"llm"`
	API         APIFile `yaml:"api"`
	Logging     LogFile `yaml:"logging"`
}

// LLMFile configures the LLM backends.
type LLMFile struct {
	Backend string       `yaml:"backend"`
	Timeout string       `yaml:"timeout"`
	OpenAI  ProviderFile `yaml:"openai"`
	Gemini  ProviderFile `yaml:"gemini"`
	Ollama  ProviderFile `yaml:"ollama"`
}

// ProviderFile holds per-provider connection settings.
type ProviderFile struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	URL    string `yaml:"url"`
}

// APIFile configures the HTTP server.
type APIFile struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogFile configures logging.
type LogFile struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

func loadFile(path string) (*FileConfig, error) {
	fc := &FileConfig{}
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// fileDefaults are the fallbacks passed to the env helpers.
type fileDefaults struct {
	DatabaseURL   string
	Mode          string
	HistoryPath   string
	LLMBackend    string
	LLMTimeout    time.Duration
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	OllamaURL     string
	OllamaModel   string
	APIHost       string
	APIPort       int
	LogLevel      string
	LogFormat     string
}

func (fc *FileConfig) defaults() fileDefaults {
	d := fileDefaults{
		DatabaseURL:   fc.DatabaseURL,
		Mode:          or(fc.Mode, string(ModeRules)),
		HistoryPath:   fc.HistoryPath,
		LLMBackend:    or(fc.LLM.Backend, BackendOpenAI),
		LLMTimeout:    120 * time.Second,
		OpenAIAPIKey:  fc.LLM.OpenAI.APIKey,
		OpenAIModel:   or(fc.LLM.OpenAI.Model, "gpt-4"),
		OpenAIBaseURL: fc.LLM.OpenAI.URL,
		GeminiAPIKey:  fc.LLM.Gemini.APIKey,
		GeminiModel:   or(fc.LLM.Gemini.Model, "gemini-2.0-flash"),
		OllamaURL:     or(fc.LLM.Ollama.URL, "http://localhost:11434"),
		OllamaModel:   or(fc.LLM.Ollama.Model, "llama2"),
		APIHost:       or(fc.API.Host, "0.0.0.0"),
		APIPort:       8000,
		LogLevel:      or(fc.Logging.Level, "info"),
		LogFormat:     or(fc.Logging.Format, "text"),
	}
	if fc.API.Port > 0 {
		d.APIPort = fc.API.Port
	}
	if t, err := time.ParseDuration(fc.LLM.Timeout); err == nil && t > 0 {
		d.LLMTimeout = t
	}
	return d
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
