package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "medblog-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the literature search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates with the search API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// NumResults is the number of hits requested from the search API
	// (default 10).
	NumResults int `json:"num_results" yaml:"num_results"`

	// MaxArticles caps how many parsed articles are passed to generation
	// (default 3). The fallback pair is never truncated.
	MaxArticles int `json:"max_articles" yaml:"max_articles"`

	// DateWindow bounds how far back search hits may be published
	// (default 5 years).
	DateWindow time.Duration `json:"date_window" yaml:"date_window"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "llama-3.3-70b-versatile").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerationConfig holds settings for the prose generation stage.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`
}

// CacheConfig holds settings for the session-scoped topic cache.
type CacheConfig struct {
	// SessionID scopes persisted cache entries. Derived from the topic
	// when the caller does not supply one.
	SessionID string `json:"session_id" yaml:"session_id"`

	// DBPath is the SQLite database file backing the cache. Empty means
	// the cache lives in memory only.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search     SearchConfig     `json:"search" yaml:"search"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
}
