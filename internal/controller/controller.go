// Package controller owns popcorn's request lifecycles.
//
// Controllers sit between the OMDb client and the Bubble Tea view. The view
// calls a controller method in response to input and gets back a tea.Cmd; the
// command performs the I/O off the UI goroutine and returns a message, which
// the view hands back to the controller's Handle method. All controller state
// is mutated only from Update, so no locking is needed.
//
// # Controllers
//
//   - SearchController: one authoritative search per query, superseded
//     requests cancelled through their context
//   - DetailController: one detail fetch per selection, stale responses
//     ignored by identifier
//
// # Cancellation
//
// Each search carries its context as a cancellation token inside the settled
// message. Starting a new search cancels the previous token, and Handle drops
// any message whose token is already cancelled, whether the request itself
// noticed the cancellation or finished first.
package controller

// SearchState is the search controller's position in its state machine:
//
//	Idle ──query≥min──> Loading ──ok──> Success
//	  ^                    │  └───err──> Error
//	  └────query<min───────┘   (any state re-enters Loading on a new query)
type SearchState int

const (
	StateIdle SearchState = iota
	StateLoading
	StateSuccess
	StateError
)

func (s SearchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
