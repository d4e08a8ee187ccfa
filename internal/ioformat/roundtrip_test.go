package ioformat

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/search"
)

// TestGridRoundTrip covers "Grid file → parse → print → parse
// yields the same internal grid."
func TestGridRoundTrip(t *testing.T) {
	input := "111\r\n101\r\n11\n"
	g1, err := ParseGrid(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteGrid(&buf, g1); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	g2, err := ParseGrid(&buf)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}

	if g1.Width() != g2.Width() || g1.Height() != g2.Height() {
		t.Fatalf("dimension mismatch: %dx%d vs %dx%d", g1.Width(), g1.Height(), g2.Width(), g2.Height())
	}
	for y := 0; y < g1.Height(); y++ {
		for x := 0; x < g1.Width(); x++ {
			c := gridworld.Coord{X: uint16(x), Y: uint16(y)}
			if g1.Passable(c) != g2.Passable(c) {
				t.Fatalf("cell %v mismatch after round-trip", c)
			}
		}
	}
	// row 2 ("11") is shorter than width 3; the padded cell must be blocked.
	if g1.Passable(gridworld.Coord{X: 2, Y: 2}) {
		t.Fatalf("expected short-row padding to be blocked")
	}
}

func TestGridEmptyFileIsInputError(t *testing.T) {
	_, err := ParseGrid(strings.NewReader(""))
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InputError, got %v", err)
	}
}

func TestGridInvalidCharacterIsInputError(t *testing.T) {
	_, err := ParseGrid(strings.NewReader("10x"))
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InputError, got %v", err)
	}
}

func TestAgentsParse(t *testing.T) {
	input := "# comment\nalpha (0,0) (2,2)\nbeta (1,0) (1,2)\n"
	agents, err := ParseAgents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agents))
	}
	if agents[0].Name != "alpha" || agents[0].Start != (gridworld.Coord{0, 0}) || agents[0].Goal != (gridworld.Coord{2, 2}) {
		t.Fatalf("unexpected agent 0: %+v", agents[0])
	}
}

func TestAgentsMalformedLineIsInputError(t *testing.T) {
	_, err := ParseAgents(strings.NewReader("alpha (0,0)\n"))
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InputError, got %v", err)
	}
}

// TestSolutionRoundTrip covers "Solution-writer output parsed
// back gives the same path sequence."
func TestSolutionRoundTrip(t *testing.T) {
	agents := []Agent{
		{Name: "alpha", Start: gridworld.Coord{0, 0}, Goal: gridworld.Coord{2, 0}},
		{Name: "beta", Start: gridworld.Coord{2, 0}, Goal: gridworld.Coord{0, 0}},
	}
	paths := []search.Path{
		{{0, 0}, {1, 0}, {2, 0}},
		{{2, 0}, {1, 0}, {0, 0}, {0, 0}},
	}

	var buf bytes.Buffer
	if err := WriteSolution(&buf, agents, paths); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\r\n") {
		t.Fatalf("expected CRLF line terminators")
	}

	parsed, err := ParseSolution(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed) != len(agents) {
		t.Fatalf("expected %d agent blocks, got %d", len(agents), len(parsed))
	}
	for i, np := range parsed {
		if np.Name != agents[i].Name {
			t.Fatalf("agent %d name mismatch: %q vs %q", i, np.Name, agents[i].Name)
		}
		if len(np.Coords) != len(paths[i]) {
			t.Fatalf("agent %d path length mismatch", i)
		}
		for j, c := range np.Coords {
			if c != paths[i][j] {
				t.Fatalf("agent %d step %d mismatch: %v vs %v", i, j, c, paths[i][j])
			}
		}
	}
}
