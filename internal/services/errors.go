package services

import "errors"

// Engine error taxonomy. Repository not-found conditions pass through as
// repository.ErrNotFound.
var (
	// ErrInvalidDirection rejects a decision whose direction is neither
	// positive nor negative, before any write occurs.
	ErrInvalidDirection = errors.New("invalid swipe direction")

	// ErrDeckFetch marks a transient failure while composing a deck. A deck
	// is never returned partially filtered.
	ErrDeckFetch = errors.New("failed to fetch deck")

	// ErrStatsFetch marks a transient failure while aggregating swipe stats.
	ErrStatsFetch = errors.New("failed to fetch swipe stats")

	// ErrBatchTooLarge rejects a stats request for more ids than one deck
	// page can hold.
	ErrBatchTooLarge = errors.New("too many startup ids requested")
)
