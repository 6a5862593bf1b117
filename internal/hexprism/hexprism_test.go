package hexprism

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAxialWorldRoundTrip(t *testing.T) {
	radius, height := DefaultHexRadius, float32(2.0)
	cases := []Axial{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{-2, 3, 1},
		{4, -4, 2},
		{-1, -1, -1},
	}
	for _, a := range cases {
		world := AxialToWorld(a, radius, height)
		got := WorldToAxial(world, radius, height)
		assert.Equal(t, a, got, "round-trip for %v", a)
	}
}

func TestInsertSetsMeshDirty(t *testing.T) {
	g := NewGrid(DefaultHexRadius, 2.0)
	assert.False(t, g.TakeMeshDirty())

	g.Insert(Axial{1, 0, 0}, 3)
	assert.True(t, g.TakeMeshDirty())
	assert.False(t, g.TakeMeshDirty())

	assert.True(t, g.Contains(Axial{1, 0, 0}))
}

func TestRemoveOnlyDirtiesOnSuccess(t *testing.T) {
	g := NewGrid(DefaultHexRadius, 2.0)
	g.Insert(Axial{0, 0, 0}, 1)
	g.TakeMeshDirty()

	_, ok := g.Remove(Axial{9, 9, 9})
	assert.False(t, ok)
	assert.False(t, g.TakeMeshDirty())

	_, ok = g.Remove(Axial{0, 0, 0})
	assert.True(t, ok)
	assert.True(t, g.TakeMeshDirty())
	assert.False(t, g.Contains(Axial{0, 0, 0}))
}

func TestRayCastFindsNearestPrismInFront(t *testing.T) {
	g := NewGrid(1.0, 2.0)
	near := Axial{1, 0, 0}
	far := Axial{3, 0, 0}
	g.Insert(near, 1)
	g.Insert(far, 2)

	origin := mgl32.Vec3{-5, 1, AxialToWorld(near, 1.0, 2.0).Z()}
	dir := mgl32.Vec3{1, 0, 0}

	hit, ok := g.RayCast(origin, dir, 50)
	assert.True(t, ok)
	assert.Equal(t, near, hit.Axial)
}

func TestRayCastMissesBeyondMaxDist(t *testing.T) {
	g := NewGrid(1.0, 2.0)
	g.Insert(Axial{10, 0, 0}, 1)

	origin := mgl32.Vec3{-5, 1, 0}
	_, ok := g.RayCast(origin, mgl32.Vec3{1, 0, 0}, 2)
	assert.False(t, ok)
}

func TestCollisionRadiusIsApothem(t *testing.T) {
	p := Prism{Radius: 2.0}
	assert.InDelta(t, 2.0*0.8660254, p.CollisionRadius(), 1e-5)
}
