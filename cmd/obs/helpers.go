package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abelbrown/popcorn/internal/config"
	"github.com/abelbrown/popcorn/internal/omdb"
)

// loadConfig reads the popcorn config or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// newClient builds an OMDb client from the config, exiting when no API key
// is configured.
func newClient(cfg *config.Config, timeout time.Duration) *omdb.Client {
	if cfg.OMDb.APIKey == "" {
		fmt.Fprintln(os.Stderr, "error: an OMDb API key is required")
		fmt.Fprintf(os.Stderr, "  export OMDB_API_KEY=... or add omdb.api_key to %s\n", config.ConfigPath())
		os.Exit(1)
	}
	if timeout <= 0 {
		timeout = cfg.Timeout()
	}
	return omdb.NewClient(cfg.OMDb.APIKey, cfg.OMDb.BaseURL, timeout, cfg.RequestInterval())
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
