package search

import "errors"

// Typed error taxonomy. The A* layer never recovers from any of
// these; it reports and lets the CBS layer decide.
var (
	// ErrOutOfNodes is returned when the frontier empties before the
	// goal is reached.
	ErrOutOfNodes = errors.New("search: out of nodes")
	// ErrSearchDepthExceeded is returned when a Position's t exceeds
	// the configured depth limit.
	ErrSearchDepthExceeded = errors.New("search: search depth exceeded")
	// ErrTimeLimitExceeded is returned when the cooperative time-limit
	// check at the top of the main loop observes a cancelled context.
	ErrTimeLimitExceeded = errors.New("search: time limit exceeded")
	// ErrInternal signals an invariant violation — a defect, never a
	// recoverable condition.
	ErrInternal = errors.New("search: internal invariant violation")
)
