package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/search"
)

const solutionDelimiter = "*********************"

// NamedPath is one agent's path as parsed back out of a solution file.
type NamedPath struct {
	Name   string
	Coords []gridworld.Coord
}

// WriteSolution writes the solution file format: for
// each agent, in the order declared in the agent file, a
// delimiter-name-delimiter header followed by its path, one CRLF-
// terminated "(x,y)" coordinate per line, then a blank line.
func WriteSolution(w io.Writer, agents []Agent, paths []search.Path) error {
	if len(agents) != len(paths) {
		return fmt.Errorf("ioformat: %d agents but %d paths", len(agents), len(paths))
	}
	bw := bufio.NewWriter(w)
	for i, a := range agents {
		if _, err := fmt.Fprintf(bw, "%s\r\n%s\r\n%s\r\n", solutionDelimiter, a.Name, solutionDelimiter); err != nil {
			return err
		}
		for _, c := range paths[i] {
			if _, err := fmt.Fprintf(bw, "(%d,%d)\r\n", c.X, c.Y); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\r\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseSolution reads a solution file back into one NamedPath per
// agent block.
func ParseSolution(r io.Reader) ([]NamedPath, error) {
	scanner := bufio.NewScanner(r)
	var result []NamedPath

	for scanner.Scan() {
		header := strings.TrimSuffix(scanner.Text(), "\r")
		if header == "" {
			continue
		}
		if header != solutionDelimiter {
			return nil, inputErrorf("solution file: expected delimiter, got %q", header)
		}
		if !scanner.Scan() {
			return nil, inputErrorf("solution file: truncated after delimiter")
		}
		name := strings.TrimSuffix(scanner.Text(), "\r")
		if !scanner.Scan() {
			return nil, inputErrorf("solution file: truncated after name")
		}
		closing := strings.TrimSuffix(scanner.Text(), "\r")
		if closing != solutionDelimiter {
			return nil, inputErrorf("solution file: expected closing delimiter, got %q", closing)
		}

		var coords []gridworld.Coord
		for scanner.Scan() {
			line := strings.TrimSuffix(scanner.Text(), "\r")
			if line == "" {
				break
			}
			c, err := parseCoord(line)
			if err != nil {
				return nil, inputErrorf("solution file: agent %s: %v", name, err)
			}
			coords = append(coords, c)
		}
		result = append(result, NamedPath{Name: name, Coords: coords})
	}
	if err := scanner.Err(); err != nil {
		return nil, inputErrorf("solution file: read error: %v", err)
	}
	return result, nil
}
