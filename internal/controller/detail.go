package controller

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/popcorn/internal/logging"
	"github.com/abelbrown/popcorn/internal/model"
	"github.com/abelbrown/popcorn/internal/otel"
)

// DetailFetcher loads one movie's full record. *omdb.Client implements it.
type DetailFetcher interface {
	Detail(ctx context.Context, id string) (model.MovieDetail, error)
}

// DetailLoaded is produced by the command Select returns.
type DetailLoaded struct {
	ID     string
	Detail model.MovieDetail
	Err    error
	Dur    time.Duration
}

// DetailController tracks the selected movie. Selections are discrete, so
// requests are not cancelled; instead a response is applied only while its
// ID is still the requested one.
type DetailController struct {
	fetcher DetailFetcher
	events  *otel.Logger
	base    context.Context

	requested string
	current   *model.MovieDetail
	err       error
}

// NewDetailController creates a controller whose requests derive from ctx.
// events may be nil.
func NewDetailController(ctx context.Context, f DetailFetcher, events *otel.Logger) *DetailController {
	return &DetailController{fetcher: f, events: events, base: ctx}
}

// Select requests the detail for id. The currently shown detail, if any,
// stays until the response arrives.
func (c *DetailController) Select(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	c.requested = id
	c.err = nil

	c.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindDetailStart, Comp: "detail", MovieID: id})

	ctx, fetcher := c.base, c.fetcher
	return func() tea.Msg {
		start := time.Now()
		d, err := fetcher.Detail(ctx, id)
		return DetailLoaded{ID: id, Detail: d, Err: err, Dur: time.Since(start)}
	}
}

// Handle applies a loaded detail. Responses for anything but the pending
// selection are ignored and Handle returns false. A failed fetch is logged and
// leaves the current detail in place.
func (c *DetailController) Handle(msg DetailLoaded) bool {
	if msg.ID == "" || msg.ID != c.requested {
		c.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindDetailStale, Comp: "detail", MovieID: msg.ID})
		return false
	}
	c.requested = ""

	if msg.Err != nil {
		c.err = msg.Err
		logging.Error("detail fetch failed", "id", msg.ID, "error", msg.Err)
		c.events.Emit(otel.Event{
			Level:   otel.LevelError,
			Kind:    otel.KindDetailError,
			Comp:    "detail",
			MovieID: msg.ID,
			Err:     msg.Err.Error(),
			Dur:     msg.Dur,
		})
		return true
	}

	d := msg.Detail
	c.current = &d
	c.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindDetailComplete, Comp: "detail", MovieID: msg.ID, Dur: msg.Dur})
	return true
}

// Clear deselects. A response still in flight will be ignored.
func (c *DetailController) Clear() {
	c.requested = ""
	c.current = nil
	c.err = nil
}

// Current returns the loaded detail, if any.
func (c *DetailController) Current() (model.MovieDetail, bool) {
	if c.current == nil {
		return model.MovieDetail{}, false
	}
	return *c.current, true
}

// Selected reports whether a detail is loaded.
func (c *DetailController) Selected() bool { return c.current != nil }

// Pending returns the ID being fetched, or "".
func (c *DetailController) Pending() string { return c.requested }

// Err returns the last fetch failure since the last Select or Clear.
func (c *DetailController) Err() error { return c.err }
