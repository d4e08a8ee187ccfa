package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

func TestGenerateIsDeterministic(t *testing.T) {
	params := Params{Seed: 7, GridRows: 10, GridCols: 10, AgentsPerCase: 4, ObstacleProbability: 0.2}

	a, err := Generate(params)
	require.NoError(t, err)
	b, err := Generate(params)
	require.NoError(t, err)

	require.Equal(t, len(a.Agents), len(b.Agents))
	for i := range a.Agents {
		assert.Equalf(t, a.Agents[i], b.Agents[i], "same seed produced different agent %d", i)
	}
	for y := 0; y < a.Grid.Height(); y++ {
		for x := 0; x < a.Grid.Width(); x++ {
			c := coord(x, y)
			assert.Equalf(t, a.Grid.Passable(c), b.Grid.Passable(c), "same seed produced different grid at (%d,%d)", x, y)
		}
	}
}

func TestGenerateDistinctSeedsDiffer(t *testing.T) {
	a, err := Generate(Params{Seed: 1, GridRows: 10, GridCols: 10, AgentsPerCase: 4, ObstacleProbability: 0.2})
	require.NoError(t, err)
	b, err := Generate(Params{Seed: 2, GridRows: 10, GridCols: 10, AgentsPerCase: 4, ObstacleProbability: 0.2})
	require.NoError(t, err)

	same := true
	for i := range a.Agents {
		if a.Agents[i] != b.Agents[i] {
			same = false
		}
	}
	assert.False(t, same, "expected different seeds to (almost certainly) produce different agent placements")
}

func TestGenerateAllStartsAndGoalsArePassableAndDistinct(t *testing.T) {
	inst, err := Generate(Params{Seed: 3, GridRows: 12, GridCols: 12, AgentsPerCase: 6, ObstacleProbability: 0.15})
	require.NoError(t, err)

	seen := make(map[[2]uint16]bool)
	for _, a := range inst.Agents {
		assert.Truef(t, inst.Grid.Passable(a.Start), "agent %s start %+v is not passable", a.Name, a.Start)
		assert.Truef(t, inst.Grid.Passable(a.Goal), "agent %s goal %+v is not passable", a.Name, a.Goal)
		for _, c := range []struct{ x, y uint16 }{{a.Start.X, a.Start.Y}, {a.Goal.X, a.Goal.Y}} {
			key := [2]uint16{c.x, c.y}
			assert.Falsef(t, seen[key], "coordinate %+v assigned to more than one agent endpoint", key)
			seen[key] = true
		}
	}
}

func TestGenerateErrorsWhenGridTooSmall(t *testing.T) {
	_, err := Generate(Params{Seed: 1, GridRows: 2, GridCols: 2, AgentsPerCase: 10, ObstacleProbability: 0})
	assert.Error(t, err)
}

func TestGenerateBatchUsesConsecutiveSeeds(t *testing.T) {
	instances, err := GenerateBatch(Params{Seed: 100, GridRows: 10, GridCols: 10, AgentsPerCase: 3, ObstacleProbability: 0.1}, 5)
	require.NoError(t, err)
	require.Len(t, instances, 5)

	names := make(map[string]bool)
	for _, inst := range instances {
		assert.Falsef(t, names[inst.Name], "duplicate instance name %q", inst.Name)
		names[inst.Name] = true
	}
}

func coord(x, y int) gridworld.Coord {
	return gridworld.Coord{X: uint16(x), Y: uint16(y)}
}
