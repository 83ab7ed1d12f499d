package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abelbrown/popcorn/internal/omdb"
)

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("n", 10, "Maximum results to print per query")
	timeout := fs.Duration("timeout", 0, "Per-request timeout (default from config)")
	fs.Parse(os.Args[1:])

	queries := fs.Args()
	if len(queries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: obs search [-n N] [-timeout D] <query> [query...]")
		os.Exit(1)
	}

	cfg := loadConfig()
	client := newClient(cfg, *timeout)
	ctx := context.Background()

	fmt.Printf("Endpoint: %s\n", cfg.OMDb.BaseURL)
	fmt.Println(strings.Repeat("=", 80))

	for _, query := range queries {
		fmt.Printf("\n>>> QUERY: %q\n", query)
		fmt.Println(strings.Repeat("-", 80))

		if n := len([]rune(query)); n < cfg.Search.MinQueryLength {
			fmt.Printf("  (the TUI would not search: %d < %d characters)\n", n, cfg.Search.MinQueryLength)
		}

		t0 := time.Now()
		movies, err := client.Search(ctx, query)
		dur := time.Since(t0)
		if err != nil {
			fmt.Printf("  ERROR [%v]: %v\n", dur.Round(time.Millisecond), err)
			fmt.Printf("  UI message: %q\n", omdb.UserMessage(err))
			continue
		}

		fmt.Printf("  %d results in %v\n", len(movies), dur.Round(time.Millisecond))
		for i, m := range movies {
			if i >= *limit {
				fmt.Printf("  ... %d more\n", len(movies)-*limit)
				break
			}
			poster := "poster"
			if m.PosterURL == "" {
				poster = "no poster"
			}
			fmt.Printf("  %2d. %-10s %-6s %s (%s)\n", i+1, m.ID, m.Year, truncate(m.Title, 50), poster)
		}
	}

	fmt.Println()
}
