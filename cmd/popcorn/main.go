// Command popcorn is a terminal movie search and rating app built on OMDb.
//
// Search as you type, open a result to read its details, rate it and keep a
// watched list with running averages for the session.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/abelbrown/popcorn/internal/config"
	"github.com/abelbrown/popcorn/internal/controller"
	"github.com/abelbrown/popcorn/internal/logging"
	"github.com/abelbrown/popcorn/internal/omdb"
	"github.com/abelbrown/popcorn/internal/otel"
	"github.com/abelbrown/popcorn/internal/store"
	"github.com/abelbrown/popcorn/internal/ui"
	"github.com/abelbrown/popcorn/internal/ui/rating"
)

func main() {
	apiKey := flag.String("key", "", "OMDb API key (overrides OMDB_API_KEY)")
	baseURL := flag.String("url", "", "OMDb base URL (overrides POPCORN_OMDB_URL)")
	events := flag.Bool("events", false, "Write the JSONL event log to "+config.EventLogPath())
	debug := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *apiKey != "" {
		cfg.OMDb.APIKey = *apiKey
	}
	if *baseURL != "" {
		cfg.OMDb.BaseURL = *baseURL
	}
	if cfg.OMDb.APIKey == "" {
		fatal("An OMDb API key is required: set OMDB_API_KEY, pass -key, or add omdb.api_key to %s", config.ConfigPath())
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fatal("Failed to create data directory: %v", err)
	}

	level := log.InfoLevel
	if *debug {
		level = log.DebugLevel
	}
	if err := logging.Init(dataDir, level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	// Event log: JSONL file when asked for, always a ring for the F12 overlay.
	var eventOut io.Writer = io.Discard
	if *events {
		f, err := os.OpenFile(config.EventLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fatal("Failed to open event log: %v", err)
		}
		defer f.Close()
		eventOut = f
	}
	obs := otel.NewLogger(eventOut)
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	obs.SetRingBuffer(ring)
	defer obs.Close()

	obs.Info(otel.KindStartup, "main", "popcorn starting")
	logging.Info("popcorn starting", "session", obs.SessionID(), "endpoint", cfg.OMDb.BaseURL)

	client := omdb.NewClient(cfg.OMDb.APIKey, cfg.OMDb.BaseURL, cfg.Timeout(), cfg.RequestInterval())

	watched, err := store.Open()
	if err != nil {
		fatal("Failed to open watched list: %v", err)
	}
	defer watched.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	search := controller.NewSearchController(ctx, client, cfg.Search.MinQueryLength, obs)
	defer search.Close()
	detail := controller.NewDetailController(ctx, client, obs)

	app := ui.NewApp(ui.Deps{
		Search:  search,
		Detail:  detail,
		Watched: watched,
		Events:  obs,
		Ring:    ring,
		Rating: rating.Options{
			MaxRating: cfg.Rating.MaxRating,
			Labels:    cfg.Rating.Labels,
			Color:     cfg.Rating.Color,
		},
	})

	start := time.Now()
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
	}

	cancel()
	obs.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShutdown, Comp: "main", Dur: time.Since(start)})
	logging.Info("popcorn stopped", "uptime", time.Since(start).Round(time.Second))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "popcorn: "+format+"\n", args...)
	os.Exit(1)
}
