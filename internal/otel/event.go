// Package otel records structured session events for popcorn.
//
// Events are typed structs serialized as JSONL. The Logger writes them from a
// background goroutine; an attached RingBuffer keeps the most recent ones in
// memory for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level is event severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind names an event as "<subsystem>.<action>".
type EventKind string

const (
	// Search controller
	KindSearchStart    EventKind = "search.start"
	KindSearchComplete EventKind = "search.complete"
	KindSearchCancel   EventKind = "search.cancel"
	KindSearchError    EventKind = "search.error"

	// Detail controller
	KindDetailStart    EventKind = "detail.start"
	KindDetailComplete EventKind = "detail.complete"
	KindDetailStale    EventKind = "detail.stale"
	KindDetailError    EventKind = "detail.error"

	// Watched list
	KindWatchedAdd    EventKind = "watched.add"
	KindWatchedRemove EventKind = "watched.remove"
	KindStoreError    EventKind = "store.error"

	// System
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
)

// Event is one observability record. Only Kind is required; Time is filled in
// by the Logger when zero.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "search", "detail", "watched", "main"
	SessionID string         `json:"session_id,omitempty"`
	QueryID   string         `json:"qid,omitempty"` // correlates one search's events
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Count     int            `json:"count,omitempty"`
	Query     string         `json:"query,omitempty"`
	MovieID   string         `json:"movie_id,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON writes Dur as fractional milliseconds.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
