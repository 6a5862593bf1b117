package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungaromakker/battlearena/internal/building"
)

func TestPassesForDelayClampsToConfiguredRange(t *testing.T) {
	assert.Equal(t, IntegrityMinPasses, passesForDelay(0))
	assert.Equal(t, IntegrityMaxPasses, passesForDelay(1000))
	mid := passesForDelay(IntegrityRecheckPassIntervalS * 5)
	assert.Equal(t, 5, mid)
}

func TestUniqueSortedIDsDedupsAndSorts(t *testing.T) {
	got := uniqueSortedIDs([]uint32{5, 1, 5, 3, 1})
	assert.Equal(t, []uint32{1, 3, 5}, got)
}

func TestScheduleIntegrityRecheckIgnoresEmptyBlockList(t *testing.T) {
	c := newTestCoordinator(t)
	c.scheduleIntegrityRecheck(nil, 1)
	assert.Empty(t, c.integrityJobs)
}

func TestIntegrityJobRetiresAfterStablePasses(t *testing.T) {
	c := newTestCoordinator(t)
	c.Blocks.Add(building.Block{ID: 1, Position: mgl32.Vec3{}, Shape: building.CubeShape(mgl32.Vec3{0.5, 0.5, 0.5}), HP: 100, MaxHP: 100})
	// fully supported: recheckIntegrityForBlocks is a no-op, so every pass is stable
	if _, ps, ok := c.Blocks.Get(1); ok {
		ps.Supported = true
	}

	c.scheduleIntegrityRecheck([]uint32{1}, IntegrityRecheckPassIntervalS)
	require.Len(t, c.integrityJobs, 1)

	for i := 0; i < IntegrityStablePassesToSleep+1 && len(c.integrityJobs) > 0; i++ {
		c.tickIntegrityJobs(IntegrityRecheckPassIntervalS)
	}
	assert.Empty(t, c.integrityJobs, "a job with nothing destroyed each pass should retire by the stable-pass threshold")
}

func TestIntegrityJobSpawnsFollowUpOnDestruction(t *testing.T) {
	c := newTestCoordinator(t)
	c.Blocks.Add(building.Block{ID: 1, Position: mgl32.Vec3{}, Shape: building.CubeShape(mgl32.Vec3{0.5, 0.5, 0.5}), HP: FatigueDamagePerPass, MaxHP: 100})
	if _, ps, ok := c.Blocks.Get(1); ok {
		ps.Supported = false // unsupported so fatigue damage applies
	}

	c.scheduleIntegrityRecheck([]uint32{1}, IntegrityRecheckPassIntervalS)
	c.tickIntegrityJobs(IntegrityRecheckPassIntervalS)

	require.Len(t, c.integrityJobs, 1, "destroying a block should schedule a follow-up job for its neighborhood")
	assert.Equal(t, 0, c.integrityJobs[0].StablePasses)

	_, _, stillThere := c.Blocks.Get(1)
	assert.False(t, stillThere)
}

func TestRunIntegrityJobStopsFollowUpWhenPassesExhausted(t *testing.T) {
	c := newTestCoordinator(t)
	c.Blocks.Add(building.Block{ID: 1, Position: mgl32.Vec3{}, Shape: building.CubeShape(mgl32.Vec3{0.5, 0.5, 0.5}), HP: FatigueDamagePerPass, MaxHP: 100})
	if _, ps, ok := c.Blocks.Get(1); ok {
		ps.Supported = false
	}

	job := &IntegrityRecheckJob{PassesLeft: 0, BlockIDs: []uint32{1}}
	var retained []*IntegrityRecheckJob
	c.runIntegrityJob(job, &retained)
	assert.Empty(t, retained, "no follow-up job should be spawned once the pass budget is exhausted")
}
