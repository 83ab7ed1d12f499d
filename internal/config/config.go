package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is popcorn's startup configuration. It is read once; the app never
// writes it back.
type Config struct {
	OMDb   OMDbConfig   `json:"omdb"`
	Search SearchConfig `json:"search"`
	Rating RatingConfig `json:"rating"`
}

// OMDbConfig holds the movie API settings
type OMDbConfig struct {
	APIKey            string `json:"api_key,omitempty"`
	BaseURL           string `json:"base_url"`
	TimeoutMs         int    `json:"timeout_ms"`
	RequestIntervalMs int    `json:"request_interval_ms"` // Minimum spacing between requests
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	MinQueryLength int `json:"min_query_length"`
}

// RatingConfig holds the star widget settings
type RatingConfig struct {
	MaxRating int      `json:"max_rating"`
	Labels    []string `json:"labels,omitempty"` // One per star; ignored unless len == max_rating
	Color     string   `json:"color"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL:           "https://www.omdbapi.com/",
			TimeoutMs:         15000,
			RequestIntervalMs: 300,
		},
		Search: SearchConfig{
			MinQueryLength: 3,
		},
		Rating: RatingConfig{
			MaxRating: 10,
			Color:     "#fcc419",
		},
	}
}

// DataDir returns ~/.popcorn, where the config, logs and event log live.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".popcorn")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// EventLogPath returns the path to the JSONL event log.
func EventLogPath() string {
	return filepath.Join(DataDir(), "events.jsonl")
}

// Load reads the config file (if any) and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFrom(ConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFrom reads path over the defaults. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overrides settings from OMDB_API_KEY and POPCORN_OMDB_URL.
func (c *Config) ApplyEnv() {
	if key := strings.TrimSpace(os.Getenv("OMDB_API_KEY")); key != "" {
		c.OMDb.APIKey = key
	}
	if u := strings.TrimSpace(os.Getenv("POPCORN_OMDB_URL")); u != "" {
		c.OMDb.BaseURL = u
	}
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.OMDb.TimeoutMs) * time.Millisecond
}

// RequestInterval returns the minimum spacing between OMDb requests.
func (c *Config) RequestInterval() time.Duration {
	return time.Duration(c.OMDb.RequestIntervalMs) * time.Millisecond
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = def.OMDb.BaseURL
	}
	if c.OMDb.TimeoutMs <= 0 {
		c.OMDb.TimeoutMs = def.OMDb.TimeoutMs
	}
	if c.OMDb.RequestIntervalMs <= 0 {
		c.OMDb.RequestIntervalMs = def.OMDb.RequestIntervalMs
	}
	if c.Search.MinQueryLength <= 0 {
		c.Search.MinQueryLength = def.Search.MinQueryLength
	}
	if c.Rating.MaxRating <= 0 {
		c.Rating.MaxRating = def.Rating.MaxRating
	}
	if c.Rating.Color == "" {
		c.Rating.Color = def.Rating.Color
	}
}
