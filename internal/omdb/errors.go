package omdb

import (
	"context"
	"errors"
)

var (
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("omdb: transport error")

	// ErrNotFound is returned when OMDb answers Response:"False".
	ErrNotFound = errors.New("omdb: movie not found")

	// ErrCancelled is returned when the request context was cancelled before
	// the response was fully read. Errors wrapping it also match
	// context.Canceled.
	ErrCancelled = errors.New("omdb: request cancelled")

	// ErrInvalidRuntimeFormat is returned for a Runtime value that is not
	// "<n> min".
	ErrInvalidRuntimeFormat = errors.New("omdb: invalid runtime format")
)

// IsCancelled reports whether err means the caller no longer wanted the result.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// UserMessage maps an error from this package to the text shown to the user.
// Cancellations map to the empty string; they are expected, not failures.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsCancelled(err):
		return ""
	case errors.Is(err, ErrNotFound):
		return "Movie not found"
	case errors.Is(err, ErrTransport):
		return "Something went wrong"
	default:
		return err.Error()
	}
}
