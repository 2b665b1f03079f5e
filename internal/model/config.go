package model

import "time"

// Config holds the full InfoLens configuration
type Config struct {
	HTTP          HTTPConfig        `yaml:"http" mapstructure:"http"`
	Search        SearchConfig      `yaml:"search" mapstructure:"search"`
	KnowledgeBase KBConfig          `yaml:"knowledge_base" mapstructure:"knowledge_base"`
	Server        ServerConfig      `yaml:"server" mapstructure:"server"`
	Cache         CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency   ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output        OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound HTTP behavior (article fetching, providers)
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// SearchConfig controls the web-search evidence provider
type SearchConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// KBConfig controls the knowledge-base evidence provider
type KBConfig struct {
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ServerConfig controls the HTTP API server
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	DatabasePath   string   `yaml:"database_path" mapstructure:"database_path"`
}

// CacheConfig controls evidence caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	VerifyWorkers int `yaml:"verify_workers" mapstructure:"verify_workers"`
	BatchWorkers  int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "InfoLens/1.0 (contact@infolens.io)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Search: SearchConfig{
			BaseURL:        "https://html.duckduckgo.com/html/",
			RequestsPerSec: 1,
			Burst:          3,
		},
		KnowledgeBase: KBConfig{
			BaseURL:  "https://en.wikipedia.org/api/rest_v1",
			CacheTTL: 6 * time.Hour,
		},
		Server: ServerConfig{
			Port:           8000,
			AllowedOrigins: []string{"*"},
			DatabasePath:   "infolens.db",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 4,
			BatchWorkers:  4,
		},
	}
}
