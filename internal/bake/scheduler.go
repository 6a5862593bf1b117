package bake

import (
	"github.com/go-gl/mathgl/mgl32"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/hungaromakker/battlearena/internal/voxel"
)

// ShellJob is one shell-bake job the scheduler emits: a chunk whose
// occupied cells changed since the last bake, grouped for a single GPU
// upload.
type ShellJob struct {
	Chunk voxel.ChunkCoord
}

// ShellResult is a completed bake: the chunk and the slot its SDF landed
// in.
type ShellResult struct {
	Chunk voxel.ChunkCoord
	Slot  uint32
}

// BlendState drives the renderer's cross-fade between the equation-SDF
// preview and the baked mesh for a chunk (spec.md §4.3).
type BlendState struct {
	PreviewActive bool
	BlendT        float32
}

// MaxShellJobsPerTick bounds how many bake jobs Scheduler.Tick emits in one
// call, the K referenced by spec.md §4.3.
const MaxShellJobsPerTick = 4

// BlendDurationS is how long the preview/baked cross-fade takes.
const BlendDurationS float32 = 0.5

// Scheduler coalesces per-voxel dirties into bounded-rate shell-bake jobs
// (spec.md §4.3).
type Scheduler struct {
	pendingChunks map[voxel.ChunkCoord]struct{}
	order         []voxel.ChunkCoord
	results       []ShellResult
	blend         map[voxel.ChunkCoord]*BlendState
	noise         opensimplex.Noise
}

// NewScheduler builds a scheduler using seed to drive the equation-SDF
// preview noise field (PreviewNoise) shown while a chunk's real bake is in
// flight.
func NewScheduler(seed int64) *Scheduler {
	return &Scheduler{
		pendingChunks: make(map[voxel.ChunkCoord]struct{}),
		blend:         make(map[voxel.ChunkCoord]*BlendState),
		noise:         opensimplex.NewNormalized(seed),
	}
}

// MarkVoxelDirty accumulates coord's owning chunk into the pending set.
func (s *Scheduler) MarkVoxelDirty(coord voxel.Coord) {
	chunk, _ := coord.Chunk()
	s.MarkChunkDirty(chunk)
}

// MarkChunkDirty accumulates a chunk directly (used when a batch already
// knows its affected chunks).
func (s *Scheduler) MarkChunkDirty(chunk voxel.ChunkCoord) {
	if _, ok := s.pendingChunks[chunk]; ok {
		return
	}
	s.pendingChunks[chunk] = struct{}{}
	s.order = append(s.order, chunk)
}

// Tick emits up to MaxShellJobsPerTick jobs grouped by owning chunk and
// advances blend progress for chunks with an active preview.
func (s *Scheduler) Tick(dt float32) []ShellJob {
	var jobs []ShellJob
	n := len(s.order)
	if n > MaxShellJobsPerTick {
		n = MaxShellJobsPerTick
	}
	for i := 0; i < n; i++ {
		chunk := s.order[0]
		s.order = s.order[1:]
		delete(s.pendingChunks, chunk)

		jobs = append(jobs, ShellJob{Chunk: chunk})
		s.blend[chunk] = &BlendState{PreviewActive: true, BlendT: 0}
	}

	for _, b := range s.blend {
		if !b.PreviewActive {
			continue
		}
		b.BlendT += dt / BlendDurationS
		if b.BlendT >= 1 {
			b.BlendT = 1
			b.PreviewActive = false
		}
	}

	return jobs
}

// CompleteBake records a finished GPU bake for later draining.
func (s *Scheduler) CompleteBake(chunk voxel.ChunkCoord, slot uint32) {
	s.results = append(s.results, ShellResult{Chunk: chunk, Slot: slot})
}

// DrainResults returns and clears previously completed bakes.
func (s *Scheduler) DrainResults() []ShellResult {
	if len(s.results) == 0 {
		return nil
	}
	out := s.results
	s.results = nil
	return out
}

// BlendFor returns the current blend state for a chunk, if any bake has
// been scheduled for it.
func (s *Scheduler) BlendFor(chunk voxel.ChunkCoord) (BlendState, bool) {
	b, ok := s.blend[chunk]
	if !ok {
		return BlendState{}, false
	}
	return *b, true
}

// PreviewNoise samples the equation-SDF preview field at a world position,
// driven by a ShapeParams' noise amplitude/frequency/octaves, shown while a
// chunk's baked SDF is still in flight.
func (s *Scheduler) PreviewNoise(p mgl32.Vec3, params ShapeParams) float32 {
	if params.NoiseOctaves <= 0 || params.NoiseAmplitude == 0 {
		return 0
	}
	var sum float32
	amp := params.NoiseAmplitude
	freq := params.NoiseFrequency
	for o := 0; o < params.NoiseOctaves; o++ {
		n := float32(s.noise.Eval3(float64(p.X()*freq), float64(p.Y()*freq), float64(p.Z()*freq)))
		sum += n * amp
		freq *= 2
		amp *= 0.5
	}
	return sum
}

// PendingChunkCount reports how many chunks are still queued for a bake.
func (s *Scheduler) PendingChunkCount() int { return len(s.order) }
