package bake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungaromakker/battlearena/internal/voxel"
)

func TestSchedulerCoalescesDirtyChunks(t *testing.T) {
	s := NewScheduler(1)
	c := voxel.C(0, 0, 0)
	s.MarkVoxelDirty(c)
	s.MarkVoxelDirty(voxel.C(1, 0, 0)) // same chunk as c

	assert.Equal(t, 1, s.PendingChunkCount())
	jobs := s.Tick(0.1)
	require.Len(t, jobs, 1)
}

func TestSchedulerRespectsPerTickCap(t *testing.T) {
	s := NewScheduler(1)
	for i := int32(0); i < 10; i++ {
		s.MarkChunkDirty(voxel.ChunkCoord{X: i})
	}
	jobs := s.Tick(0.1)
	assert.Len(t, jobs, MaxShellJobsPerTick)
	assert.Equal(t, 10-MaxShellJobsPerTick, s.PendingChunkCount())
}

func TestBlendProgressEndsPreview(t *testing.T) {
	s := NewScheduler(1)
	chunk := voxel.ChunkCoord{}
	s.MarkChunkDirty(chunk)
	s.Tick(0)

	b, ok := s.BlendFor(chunk)
	require.True(t, ok)
	assert.True(t, b.PreviewActive)

	s.Tick(BlendDurationS)
	b, ok = s.BlendFor(chunk)
	require.True(t, ok)
	assert.False(t, b.PreviewActive)
	assert.Equal(t, float32(1), b.BlendT)
}

func TestPreviewNoiseZeroAmplitudeIsZero(t *testing.T) {
	s := NewScheduler(42)
	v := s.PreviewNoise(voxel.C(1, 2, 3).WorldPos(), ShapeParams{})
	assert.Equal(t, float32(0), v)
}
