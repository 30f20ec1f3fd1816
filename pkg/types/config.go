package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-monitor/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the arXiv feed client and the
// ingestion pipeline.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// Topics are the search queries fetched on each run.
	Topics []string `json:"topics" yaml:"topics"`

	// MaxResults is the number of entries requested per topic (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// WindowDays is the trailing recency window in days (default 30).
	WindowDays int `json:"window_days" yaml:"window_days"`
}

// StoreConfig holds settings for the article store.
type StoreConfig struct {
	// Path is the SQLite database file (default "arxiv.db").
	Path string `json:"path" yaml:"path"`
}

// SummarizerConfig holds settings for the summary generation batch.
type SummarizerConfig struct {
	// Model is the chat-completion model identifier (default "gpt-4o").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the OpenAI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// OutputDir is where summary text files are written
	// (default "data/summaries").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// RankerConfig holds settings for embedding-based relevance ranking.
type RankerConfig struct {
	// Model is the embedding model identifier
	// (default "text-embedding-3-small").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the OpenAI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// BotConfig holds settings for the Telegram command loop.
type BotConfig struct {
	// Token is the Telegram bot token.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// PollTimeout is the long-poll timeout passed to getUpdates
	// (default 30s).
	PollTimeout time.Duration `json:"poll_timeout" yaml:"poll_timeout"`

	// WindowDays bounds the /list lookback period (default 30).
	WindowDays int `json:"window_days" yaml:"window_days"`
}
