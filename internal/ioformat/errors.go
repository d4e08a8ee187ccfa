// Package ioformat implements the external text-file interfaces:
// the grid file, the agent file, and the solution file. Grounded on
// original_source/MS_Project/World.cpp (grid reader) and
// CBSTree.cc's generate_agents/str_to_coord (agent parsing),
// reimplemented with bufio.Scanner instead of a manual index walk.
package ioformat

import "fmt"

// InputError reports a malformed grid/agent file, unreadable file, or
// empty world. Fatal at the CLI; the planner never starts.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func inputErrorf(format string, args ...any) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}
