// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Host is the listen address (default "0.0.0.0").
	Host string `json:"host" yaml:"host"`

	// Port is the listen port (default 8000).
	Port int `json:"port" yaml:"port"`
}

// LogConfig holds settings for the application logger.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// Dir is the directory for daily log files (default "data/logs").
	Dir string `json:"dir" yaml:"dir"`

	// Console controls whether log lines are also written to stderr.
	Console bool `json:"console" yaml:"console"`
}

// LLMProvider identifies a text-completion provider.
type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderLlama  LLMProvider = "llama"
	ProviderClaude LLMProvider = "claude"
)

// LLMConfig holds settings for the text-completion backend.
type LLMConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the completion model identifier (default "gpt-3.5-turbo").
	Model string `json:"model" yaml:"model"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float32 `json:"temperature" yaml:"temperature"`

	// MaxTokens is the completion token budget per section (default 800).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// SearchConfig holds settings for paper search.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the per-backend result cap (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// InternalDBPath is the internal paper list JSON file. When the file
	// is absent the built-in sample set is used instead.
	InternalDBPath string `json:"internal_db_path" yaml:"internal_db_path"`
}

// CacheConfig holds settings for the JSON file cache.
type CacheConfig struct {
	// Dir is the cache directory (default "data/cache").
	Dir string `json:"dir" yaml:"dir"`

	// MaxAge is the freshness window applied by readers that check it
	// (default 24h). Most readers do not.
	MaxAge time.Duration `json:"max_age" yaml:"max_age"`
}

// ExtractorConfig holds settings for webpage content extraction.
type ExtractorConfig struct {
	HTTPConfig `yaml:",inline"`
}

// WizardConfig holds settings for the wizard session store.
type WizardConfig struct {
	// DBPath is the SQLite database file (default "data/wizard.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups all component configurations. It is constructed once at
// startup and passed explicitly; nothing reads it from process globals.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Search    SearchConfig    `json:"search" yaml:"search"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Extractor ExtractorConfig `json:"extractor" yaml:"extractor"`
	Wizard    WizardConfig    `json:"wizard" yaml:"wizard"`
}

// DefaultConfig returns a Config populated with the defaults used when no
// config file or environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Log: LogConfig{
			Level:   "info",
			Dir:     "data/logs",
			Console: true,
		},
		LLM: LLMConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   60 * time.Second,
				UserAgent: "topic-wizard/0.1",
			},
			Model:       "gpt-3.5-turbo",
			Temperature: 0.7,
			MaxTokens:   800,
		},
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "topic-wizard/0.1",
			},
			MaxResults:     5,
			InternalDBPath: "data/internal_papers.json",
		},
		Cache: CacheConfig{
			Dir:    "data/cache",
			MaxAge: 24 * time.Hour,
		},
		Extractor: ExtractorConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			},
		},
		Wizard: WizardConfig{
			DBPath: "data/wizard.db",
		},
	}
}
