// Package ui is popcorn's Bubble Tea interface.
//
// The root App lays out a header with the search input, a left box with
// search results and a right box that shows either the watched list (browse
// mode) or the selected movie (detail mode). Request lifecycles live in the
// controllers; App only routes input to them and renders what they hold.
package ui

import "github.com/abelbrown/popcorn/internal/model"

// WatchedLoaded is sent after the watched list is read or changed.
type WatchedLoaded struct {
	Entries []model.WatchedEntry
	Summary model.Summary
	Err     error
}
