package controller

import (
	"context"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/abelbrown/popcorn/internal/model"
	"github.com/abelbrown/popcorn/internal/omdb"
	"github.com/abelbrown/popcorn/internal/otel"
)

// DefaultMinQueryLength is the shortest query that triggers a search.
const DefaultMinQueryLength = 3

// Searcher runs a movie search. *omdb.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Movie, error)
}

// SearchSettled is produced by the command SetQuery returns once its request
// finishes, successfully or not.
type SearchSettled struct {
	Query   string
	QueryID string // correlation ID for otel events
	Results []model.Movie
	Err     error
	Dur     time.Duration

	token context.Context
}

// SearchController owns the query string and the single authoritative search.
type SearchController struct {
	searcher Searcher
	events   *otel.Logger
	base     context.Context
	minLen   int

	query   string
	queryID string
	state   SearchState
	results []model.Movie
	err     string
	cancel  context.CancelFunc
}

// NewSearchController creates a controller whose requests derive from ctx.
// minLen <= 0 selects DefaultMinQueryLength. events may be nil.
func NewSearchController(ctx context.Context, s Searcher, minLen int, events *otel.Logger) *SearchController {
	if minLen <= 0 {
		minLen = DefaultMinQueryLength
	}
	return &SearchController{
		searcher: s,
		events:   events,
		base:     ctx,
		minLen:   minLen,
	}
}

// SetQuery records a new query. Any request still in flight is cancelled
// first. A query shorter than the minimum clears results and error and returns
// nil; otherwise the returned command performs the search and yields a
// SearchSettled. An unchanged query is a no-op.
func (c *SearchController) SetQuery(q string) tea.Cmd {
	if q == c.query {
		return nil
	}
	c.query = q
	c.abort()

	if utf8.RuneCountInString(q) < c.minLen {
		c.state = StateIdle
		c.results = nil
		c.err = ""
		return nil
	}

	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.queryID = uuid.NewString()
	c.state = StateLoading
	c.err = ""

	c.events.Emit(otel.Event{
		Level:   otel.LevelInfo,
		Kind:    otel.KindSearchStart,
		Comp:    "search",
		QueryID: c.queryID,
		Query:   q,
	})

	searcher, qid := c.searcher, c.queryID
	return func() tea.Msg {
		start := time.Now()
		movies, err := searcher.Search(ctx, q)
		return SearchSettled{
			Query:   q,
			QueryID: qid,
			Results: movies,
			Err:     err,
			Dur:     time.Since(start),
			token:   ctx,
		}
	}
}

// Handle applies a settled search. Messages from superseded requests are
// dropped and Handle returns false; nothing observable changes.
func (c *SearchController) Handle(msg SearchSettled) bool {
	if msg.token == nil || msg.token.Err() != nil {
		return false
	}

	// Only the current request's token can still be live.
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	ev := otel.Event{Comp: "search", QueryID: msg.QueryID, Query: msg.Query, Dur: msg.Dur}
	switch {
	case msg.Err == nil:
		c.state = StateSuccess
		c.results = msg.Results
		c.err = ""
		ev.Level, ev.Kind, ev.Count = otel.LevelInfo, otel.KindSearchComplete, len(msg.Results)

	case omdb.IsCancelled(msg.Err):
		// Cancelled without being superseded: the program is shutting down.
		c.state = StateIdle
		ev.Level, ev.Kind = otel.LevelInfo, otel.KindSearchCancel

	default:
		c.state = StateError
		c.results = nil
		c.err = omdb.UserMessage(msg.Err)
		ev.Level, ev.Kind, ev.Err = otel.LevelWarn, otel.KindSearchError, msg.Err.Error()
	}
	c.events.Emit(ev)
	return true
}

// Close cancels any request in flight.
func (c *SearchController) Close() {
	c.abort()
}

func (c *SearchController) abort() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	if c.state == StateLoading {
		c.events.Emit(otel.Event{
			Level:   otel.LevelDebug,
			Kind:    otel.KindSearchCancel,
			Comp:    "search",
			QueryID: c.queryID,
		})
	}
}

// Query returns the current query string.
func (c *SearchController) Query() string { return c.query }

// State returns the current state.
func (c *SearchController) State() SearchState { return c.state }

// Loading is true from request start until it settles.
func (c *SearchController) Loading() bool { return c.state == StateLoading }

// Results returns the current results, empty on no match or error.
func (c *SearchController) Results() []model.Movie { return c.results }

// Err returns the user-visible error message, or "".
func (c *SearchController) Err() string { return c.err }

// MinQueryLength returns the shortest query that triggers a search.
func (c *SearchController) MinQueryLength() int { return c.minLen }
