package gridworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassableInBounds(t *testing.T) {
	g := New(3, 1, []bool{true, true, true})
	assert.True(t, g.Passable(Coord{1, 0}))
}

func TestPassableBlocked(t *testing.T) {
	g := New(3, 1, []bool{true, false, true})
	assert.False(t, g.Passable(Coord{1, 0}))
}

func TestPassableOutOfRangeIsFalseNotError(t *testing.T) {
	g := New(2, 2, []bool{true, true, true, true})
	cases := []Coord{{2, 0}, {0, 2}, {100, 100}}
	for _, c := range cases {
		assert.Falsef(t, g.Passable(c), "expected %+v out of range to be impassable", c)
	}
}

func TestDimensions(t *testing.T) {
	g := New(4, 2, make([]bool, 8))
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 2, g.Height())
}
