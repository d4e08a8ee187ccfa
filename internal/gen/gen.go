// Package gen generates deterministic random grid/agents instances
// for benchmark and self-check scenarios, tunable by obstacle
// probability, grid size, and agent count. Random cell placement and
// a deterministic math/rand.NewSource(seed) carry over from a prior
// instance generator, simplified to the plain grid+agents domain: no
// heterogeneous robot types, airspace layers, or tasks, since CBS
// plans single-shot paths rather than scheduling recurring work.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/ioformat"
)

// Params is the set of tunables needed to generate one grid instance.
type Params struct {
	Seed                int64
	GridRows, GridCols  int
	AgentsPerCase       int
	ObstacleProbability float64
}

// Instance is one generated grid + start/goal assignment.
type Instance struct {
	Name   string
	Grid   *gridworld.Grid
	Agents []ioformat.Agent
}

// Generate builds one deterministic instance from params. The same
// seed always yields the same grid and agent placement.
func Generate(params Params) (*Instance, error) {
	rng := rand.New(rand.NewSource(params.Seed))

	cells := make([]bool, params.GridRows*params.GridCols)
	for i := range cells {
		cells[i] = rng.Float64() >= params.ObstacleProbability
	}
	grid := gridworld.New(params.GridCols, params.GridRows, cells)

	passable := passableCoords(grid)
	needed := 2 * params.AgentsPerCase
	if len(passable) < needed {
		return nil, fmt.Errorf("gen: grid has only %d passable cells, need %d for %d agents", len(passable), needed, params.AgentsPerCase)
	}

	rng.Shuffle(len(passable), func(i, j int) { passable[i], passable[j] = passable[j], passable[i] })

	agents := make([]ioformat.Agent, params.AgentsPerCase)
	for i := 0; i < params.AgentsPerCase; i++ {
		agents[i] = ioformat.Agent{
			Name:  fmt.Sprintf("agent%d", i),
			Start: passable[2*i],
			Goal:  passable[2*i+1],
		}
	}

	return &Instance{
		Name:   fmt.Sprintf("mapfcbs_%d_%dx%d_%d", params.AgentsPerCase, params.GridCols, params.GridRows, params.Seed),
		Grid:   grid,
		Agents: agents,
	}, nil
}

// GenerateBatch produces count instances from consecutive seeds
// starting at params.Seed, for a benchmark run.
func GenerateBatch(params Params, count int) ([]*Instance, error) {
	instances := make([]*Instance, count)
	for i := 0; i < count; i++ {
		p := params
		p.Seed = params.Seed + int64(i)
		inst, err := Generate(p)
		if err != nil {
			return nil, err
		}
		instances[i] = inst
	}
	return instances, nil
}

func passableCoords(g *gridworld.Grid) []gridworld.Coord {
	var coords []gridworld.Coord
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := gridworld.Coord{X: uint16(x), Y: uint16(y)}
			if g.Passable(c) {
				coords = append(coords, c)
			}
		}
	}
	return coords
}
