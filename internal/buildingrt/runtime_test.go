package buildingrt

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungaromakker/battlearena/internal/support"
	"github.com/hungaromakker/battlearena/internal/voxel"
)

func TestPlaceVoxelMarksDirtyAndAudible(t *testing.T) {
	rt := NewRuntime(1, nil)
	defer rt.Close()

	rt.PlaceVoxel(voxel.C(0, 0, 0), 3)
	assert.True(t, rt.TakeWorldChangeFlag())

	events := rt.DrainAudioEvents()
	require.Len(t, events, 1)
	assert.Equal(t, AudioPlaceTick, events[0].Kind)
}

func TestRemoveVoxelTriggersSupportRecheckAndSpawnsCluster(t *testing.T) {
	rt := NewRuntime(1, nil)
	defer rt.Close()

	// A three-cell column standing on an anchored base: removing the base
	// leaves the two cells above it with no anchored neighbour, so the
	// support recheck finds them unsupported and spawns them as a cluster.
	rt.Tree.Place(voxel.C(0, 0, 0), voxel.NewCell(1, voxel.FlagTerrainAnchored))
	rt.Tree.Place(voxel.C(0, 1, 0), voxel.NewCell(1, 0))
	rt.Tree.Place(voxel.C(0, 2, 0), voxel.NewCell(1, 0))
	rt.Tree.TakeWorldChangeFlag()

	rt.RemoveVoxel(voxel.C(0, 0, 0))

	// Drive ticks until the support worker reports back and a cluster
	// spawns, or time out.
	deadline := time.Now().Add(2 * time.Second)
	spawned := false
	for time.Now().Before(deadline) {
		rt.Tick(1.0/60, 0)
		for _, e := range rt.DrainAudioEvents() {
			if e.Kind == AudioClusterSpawn {
				spawned = true
			}
		}
		if spawned {
			break
		}
	}
	assert.True(t, spawned, "expected an unsupported island to spawn a cluster")
}

func TestApplyDamageAtHitDestroysAndMarksDirty(t *testing.T) {
	rt := NewRuntime(1, nil)
	defer rt.Close()

	coord := voxel.C(5, 5, 5)
	rt.Tree.Place(coord, voxel.NewCell(2, 0))
	rt.Tree.TakeWorldChangeFlag()

	res := rt.ApplyDamageAtHit(coord, 65535, 10)
	assert.True(t, res.Hit)
	assert.True(t, res.Destroyed)
	assert.False(t, rt.Tree.Contains(coord))

	var sawDestroy bool
	for _, e := range rt.DrainAudioEvents() {
		if e.Kind == AudioDestroyVoxel {
			sawDestroy = true
		}
	}
	assert.True(t, sawDestroy)
}

func TestApplyVoxelBatchQueuesSupportOnRemoval(t *testing.T) {
	rt := NewRuntime(1, nil)
	defer rt.Close()

	rt.Tree.Place(voxel.C(1, 1, 1), voxel.NewCell(1, 0))

	var batch voxel.Batch
	batch.Remove(voxel.C(1, 1, 1))
	res := rt.ApplyVoxelBatch(batch)
	assert.Equal(t, 1, res.Removed)
	assert.True(t, res.AnyRemoval)
	assert.Len(t, rt.pendingSupport, 1)
}

func TestPartitionIslandsSplitsDisconnectedGroups(t *testing.T) {
	coords := []voxel.Coord{
		voxel.C(0, 0, 0), voxel.C(1, 0, 0), // connected pair
		voxel.C(10, 0, 0), // isolated
	}
	islands := partitionIslands(coords)
	assert.Len(t, islands, 2)
}

func TestRaycastVoxelDelegatesToTree(t *testing.T) {
	rt := NewRuntime(1, nil)
	defer rt.Close()

	rt.Tree.Place(voxel.C(2, 0, 0), voxel.NewCell(1, 0))
	hit, ok := rt.RaycastVoxel(mgl32.Vec3{-5, 0.125, 0}, mgl32.Vec3{1, 0, 0}, 100)
	require.True(t, ok)
	assert.Equal(t, voxel.C(2, 0, 0), hit.Coord)
}

func TestDispatchFallsBackInlineWhenWorkerUnavailable(t *testing.T) {
	rt := NewRuntime(1, nil)
	defer rt.Close()
	rt.worker.Stop() // a stopped worker refuses every Submit

	rt.Tree.Place(voxel.C(0, 0, 0), voxel.NewCell(1, voxel.FlagTerrainAnchored))
	rt.queueSupportRecheckLocked(voxel.C(0, 0, 0), support.ReasonManual)
	assert.NotPanics(t, func() { rt.dispatchSupportIfPending() })
	assert.False(t, rt.supportInFlight, "a refused job is solved inline, not left in flight")
}
