package domain

import "errors"

// Sentinel errors shared across components. Callers branch on these with
// errors.Is rather than matching message text.
var (
	// ErrNoData indicates the series store holds no samples at all.
	ErrNoData = errors.New("no data")

	// ErrEmptyWindow indicates the store holds samples but none fall
	// inside the requested time window.
	ErrEmptyWindow = errors.New("no data in window")

	// ErrClosed indicates an operation on a feed client that has been
	// shut down.
	ErrClosed = errors.New("feed client closed")
)
