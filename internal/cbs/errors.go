package cbs

import "errors"

// ErrNoSolution is returned when the CBS frontier empties without
// finding a conflict-free node.
var ErrNoSolution = errors.New("cbs: no solution")
