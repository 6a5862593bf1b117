package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkRoundTrip(t *testing.T) {
	coords := []Coord{
		C(0, 0, 0),
		C(3, 3, 3),
		C(4, 4, 4),
		C(-1, -1, -1),
		C(-4, -4, -4),
		C(-5, 2, 17),
	}
	for _, c := range coords {
		chunk, local := c.Chunk()
		got := chunk.Coord(local)
		assert.Equal(t, c, got, "coord %v round-trip through chunk/local", c)
		for i, v := range local {
			assert.True(t, v >= 0 && v < BrickDim, "local[%d]=%d out of range for %v", i, v, c)
		}
	}
}

func TestWorldPosRoundTrip(t *testing.T) {
	c := C(2, -3, 9)
	p := c.WorldPos()
	got := FromWorldPos(p)
	assert.Equal(t, c, got)
}

func TestNeighbours6(t *testing.T) {
	c := C(0, 0, 0)
	n := c.Neighbours6()
	assert.Len(t, n, 6)
	seen := map[Coord]bool{}
	for _, nb := range n {
		seen[nb] = true
	}
	assert.True(t, seen[C(1, 0, 0)])
	assert.True(t, seen[C(-1, 0, 0)])
	assert.True(t, seen[C(0, 1, 0)])
	assert.True(t, seen[C(0, -1, 0)])
	assert.True(t, seen[C(0, 0, 1)])
	assert.True(t, seen[C(0, 0, -1)])
}
