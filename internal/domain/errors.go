package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFeedUnavailable indicates the remote feed could not be loaded.
	// This is terminal for the session: the UI shows a "could not load"
	// message and does not retry.
	ErrFeedUnavailable = errors.New("feed is unavailable")

	// ErrItemNotFound indicates the requested item does not exist
	ErrItemNotFound = errors.New("feed item not found")
)
