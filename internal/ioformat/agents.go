package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

// Agent is one parsed agent-file line: a name plus its start and goal
// coords.
type Agent struct {
	Name  string
	Start gridworld.Coord
	Goal  gridworld.Coord
}

// ParseAgents reads the agent file format: one agent per
// line as `<name> (<sx>,<sy>) (<gx>,<gy>)`, fields separated by a
// single space; lines starting with '#' are ignored; malformed lines
// are fatal.
func ParseAgents(r io.Reader) ([]Agent, error) {
	var agents []Agent

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, " ")
		if len(fields) != 3 {
			return nil, inputErrorf("agent file: line %d: expected 3 space-separated fields, got %d", lineNo, len(fields))
		}
		start, err := parseCoord(fields[1])
		if err != nil {
			return nil, inputErrorf("agent file: line %d: start coord: %v", lineNo, err)
		}
		goal, err := parseCoord(fields[2])
		if err != nil {
			return nil, inputErrorf("agent file: line %d: goal coord: %v", lineNo, err)
		}
		agents = append(agents, Agent{Name: fields[0], Start: start, Goal: goal})
	}
	if err := scanner.Err(); err != nil {
		return nil, inputErrorf("agent file: read error: %v", err)
	}
	if len(agents) == 0 {
		return nil, inputErrorf("agent file: no agents declared")
	}
	return agents, nil
}

// WriteAgents writes agents back out in the same name/start/goal
// text format ParseAgents reads.
func WriteAgents(w io.Writer, agents []Agent) error {
	bw := bufio.NewWriter(w)
	for _, a := range agents {
		if _, err := fmt.Fprintf(bw, "%s (%d,%d) (%d,%d)\n", a.Name, a.Start.X, a.Start.Y, a.Goal.X, a.Goal.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func parseCoord(field string) (gridworld.Coord, error) {
	field = strings.TrimPrefix(field, "(")
	field = strings.TrimSuffix(field, ")")
	parts := strings.SplitN(field, ",", 2)
	if len(parts) != 2 {
		return gridworld.Coord{}, fmt.Errorf("malformed coordinate %q", field)
	}
	x, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return gridworld.Coord{}, fmt.Errorf("malformed x in %q: %w", field, err)
	}
	y, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return gridworld.Coord{}, fmt.Errorf("malformed y in %q: %w", field, err)
	}
	return gridworld.Coord{X: uint16(x), Y: uint16(y)}, nil
}
