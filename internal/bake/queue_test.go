package bake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebakeLifecycle(t *testing.T) {
	tracker := NewRebakeTracker()
	tracker.Register(1, ShapeParams{Scale: [3]float32{1, 1, 1}})
	slot10 := uint32(10)
	tracker.SetBakedSdfID(1, slot10)

	changed := tracker.UpdateScale(1, [3]float32{2, 2, 2})
	assert.True(t, changed)
	assert.True(t, tracker.IsDirty(1))

	dirty := tracker.TakeDirtyEntities()
	require.Len(t, dirty, 1)
	assert.Equal(t, uint32(1), dirty[0].EntityID)
	require.NotNil(t, dirty[0].OldSlot)
	assert.Equal(t, uint32(10), *dirty[0].OldSlot)

	pool := NewSlotPool(16)
	// reserve one slot as if another entity already held it
	_, _ = pool.Allocate() // slot 15 (LIFO) pretend taken by something else

	queue := NewQueue()
	queue.QueueRebake(RebakeJob{EntityID: 1, Params: dirty[0].Params, OldSlot: dirty[0].OldSlot})

	transitioned := queue.ProcessFrame(0, pool)
	require.Len(t, transitioned, 1)
	newSlot := transitioned[0].NewSlot

	progress, ok := queue.GetTransitionProgress(1, 0.15)
	require.True(t, ok)
	assert.InDelta(t, 0.5, progress, 0.01)

	queue.Update(0.3)
	progress, ok = queue.GetTransitionProgress(1, 0.3)
	require.True(t, ok)
	assert.Equal(t, float32(1), progress)

	tracker.SetBakedSdfID(1, newSlot)
	assert.False(t, tracker.IsDirty(1))
}

func TestPositionOnlyChangeNeverDirties(t *testing.T) {
	tracker := NewRebakeTracker()
	tracker.Register(1, ShapeParams{Scale: [3]float32{1, 1, 1}})

	// ShapeParams has no position/rotation/color fields at all: re-registering
	// identical shape params (simulating a position-only update upstream)
	// must not dirty the entity (invariant B-1).
	changed := tracker.UpdateParams(1, ShapeParams{Scale: [3]float32{1, 1, 1}})
	assert.False(t, changed)
	assert.False(t, tracker.IsDirty(1))
}

func TestBakeQueueBackPressureFIFO(t *testing.T) {
	pool := NewSlotPool(2)
	queue := NewQueue()

	for i := uint32(1); i <= 4; i++ {
		queue.QueueBake(Job{EntityID: i})
	}

	transitioned := queue.ProcessFrame(0, pool)
	assert.Len(t, transitioned, 2)
	assert.Equal(t, uint32(1), transitioned[0].EntityID)
	assert.Equal(t, uint32(2), transitioned[1].EntityID)

	// pool exhausted: entities 3 and 4 remain pending, in order
	assert.Equal(t, 2, queue.PendingCount())
	more := queue.ProcessFrame(0, pool)
	assert.Empty(t, more)
}

func TestFreeEntityReleasesBakedSlot(t *testing.T) {
	pool := NewSlotPool(1)
	queue := NewQueue()
	queue.QueueBake(Job{EntityID: 1})
	transitioned := queue.ProcessFrame(0, pool)
	require.Len(t, transitioned, 1)
	assert.Equal(t, 0, pool.Available())

	queue.FreeEntity(1, pool)
	assert.Equal(t, 1, pool.Available())
}

func TestShapeParamsEpsilonEquality(t *testing.T) {
	a := ShapeParams{Scale: [3]float32{1, 1, 1}, NoiseAmplitude: 0.5}
	b := a
	b.Scale[0] += 1e-5
	assert.True(t, a.Equal(b))

	b.Scale[0] += 1e-2
	assert.False(t, a.Equal(b))
}
