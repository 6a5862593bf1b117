package cluster

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungaromakker/battlearena/internal/voxel"
)

func nextIDFn() func() uint32 {
	var n uint32
	return func() uint32 { n++; return n }
}

func TestSpawnRemovesCellsFromWorld(t *testing.T) {
	tree := voxel.NewTree()
	island := []voxel.Coord{voxel.C(0, 1, 0), voxel.C(0, 2, 0)}
	for _, c := range island {
		tree.Place(c, voxel.NewCell(1, 0))
	}

	clusters := Spawn(nextIDFn(), tree, [][]voxel.Coord{island}, mgl32.Vec3{})
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Cells, 2)

	for _, c := range island {
		assert.False(t, tree.Contains(c))
	}
}

// TestClusterSettlesUnderThreshold lets a cluster fall onto the y=0 ground
// plane: once it lands and velocity stays under SettleVelocityThreshold for
// SettleTimeS, Tick emits one ClusterSettle event and marks it settled.
func TestClusterSettlesUnderThreshold(t *testing.T) {
	c := &Cluster{Orient: mgl32.QuatIdent(), Cells: []CellOffset{{Cell: voxel.NewCell(1, 0)}}}

	var events []AudioEvent
	dt := float32(0.1)
	steps := int(SettleTimeS/dt) + 2
	for i := 0; i < steps; i++ {
		events = append(events, c.Tick(dt)...)
	}
	require.Len(t, events, 1)
	assert.Equal(t, AudioClusterSettle, events[0].Kind)
	assert.True(t, c.Settled)
}

func TestClusterFallsUnderGravity(t *testing.T) {
	c := &Cluster{Pos: mgl32.Vec3{0, 5, 0}, Orient: mgl32.QuatIdent(), Cells: []CellOffset{{Cell: voxel.NewCell(1, 0)}}}
	startY := c.Pos.Y()
	c.Tick(1.0 / 60)
	assert.Less(t, c.Pos.Y(), startY)
}

func TestDominantMaterialMajorityWins(t *testing.T) {
	c := &Cluster{Cells: []CellOffset{
		{Cell: voxel.NewCell(1, 0)},
		{Cell: voxel.NewCell(2, 0)},
		{Cell: voxel.NewCell(2, 0)},
	}}
	assert.Equal(t, uint8(2), c.dominantMaterial())
}
