// Package buildingrt is the voxel building runtime: the single façade over
// brick-tree storage, the support solver, the shell-bake scheduler, and
// cluster physics (spec.md §4.1). All voxel mutations go through Runtime so
// the dirty-chunk and audio-event streams stay authoritative.
package buildingrt

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hungaromakker/battlearena/internal/bake"
	"github.com/hungaromakker/battlearena/internal/cluster"
	"github.com/hungaromakker/battlearena/internal/support"
	"github.com/hungaromakker/battlearena/internal/telemetry"
	"github.com/hungaromakker/battlearena/internal/voxel"
)

// AudioKind tags the events the runtime emits for the voxel world
// (spec.md §6).
type AudioKind uint8

const (
	AudioPlaceTick AudioKind = iota
	AudioCrackStage
	AudioDestroyVoxel
	AudioClusterSpawn
	AudioClusterSettle
)

// AudioEvent is one entry in the drained audio-event stream.
type AudioEvent struct {
	Kind      AudioKind
	Position  mgl32.Vec3
	Material  uint8
	Magnitude float32
}

// RenderDelta is what tick() appends to the per-frame render-delta batch:
// dirty chunks plus any bake jobs/results emitted this tick.
type RenderDelta struct {
	DirtyChunks []voxel.ChunkCoord
	BakeJobs    []bake.ShellJob
	BakeResults []bake.ShellResult
}

// Runtime is the voxel building runtime façade.
type Runtime struct {
	Tree          *voxel.Tree
	Scheduler     *bake.Scheduler
	worker        *support.Worker
	nextClusterID uint32
	clusters      []*cluster.Cluster

	supportInFlight bool
	pendingSupport  map[voxel.Coord]struct{}
	pendingReason   support.Reason

	audioEvents []AudioEvent
	log         telemetry.Logger
}

// NewRuntime builds a runtime with its own off-thread support worker and a
// shell-bake scheduler seeded for its preview noise field.
func NewRuntime(noiseSeed int64, log telemetry.Logger) *Runtime {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &Runtime{
		Tree:           voxel.NewTree(),
		Scheduler:      bake.NewScheduler(noiseSeed),
		worker:         support.NewWorker(4),
		pendingSupport: make(map[voxel.Coord]struct{}),
		log:            log,
	}
}

// Close stops the support worker; call on shutdown.
func (r *Runtime) Close() { r.worker.Stop() }

// Tick advances cluster physics, drains worker events, drains dirty chunks
// into a render-delta batch, advances the bake scheduler, and updates
// shell-blend progress (spec.md §4.1 tick(dt)).
func (r *Runtime) Tick(dt float32, now float64) RenderDelta {
	r.tickClusters(dt)
	r.drainSupportResults()

	delta := RenderDelta{
		DirtyChunks: r.Tree.DrainDirtyChunks(),
		BakeJobs:    r.Scheduler.Tick(dt),
		BakeResults: r.Scheduler.DrainResults(),
	}

	r.dispatchSupportIfPending()
	return delta
}

func (r *Runtime) tickClusters(dt float32) {
	alive := r.clusters[:0]
	for _, c := range r.clusters {
		events := c.Tick(dt)
		for _, e := range events {
			r.audioEvents = append(r.audioEvents, AudioEvent{
				Kind:      AudioClusterSettle,
				Position:  e.Position,
				Material:  e.Material,
				Magnitude: e.Magnitude,
			})
		}
		if !c.Settled {
			alive = append(alive, c)
		}
	}
	r.clusters = alive
}

// TakeWorldChangeFlag exposes invariant V-1.
func (r *Runtime) TakeWorldChangeFlag() bool { return r.Tree.TakeWorldChangeFlag() }

// DrainChangedCoords exposes invariant V-2.
func (r *Runtime) DrainChangedCoords() []voxel.Coord { return r.Tree.DrainChangedCoords() }

// DrainAudioEvents returns and clears the accumulated audio-event stream.
func (r *Runtime) DrainAudioEvents() []AudioEvent {
	if len(r.audioEvents) == 0 {
		return nil
	}
	out := r.audioEvents
	r.audioEvents = nil
	return out
}

// RaycastVoxel delegates to the tree's DDA raycast.
func (r *Runtime) RaycastVoxel(origin, dir mgl32.Vec3, maxDist float32) (voxel.RayHit, bool) {
	return r.Tree.RaycastVoxel(origin, dir, maxDist)
}

// RaycastVoxelSegment delegates to the 5-ray swept test.
func (r *Runtime) RaycastVoxelSegment(from, to mgl32.Vec3, radius float32) (voxel.RayHit, bool) {
	return support5RaySegment(r.Tree, from, to, radius)
}

func support5RaySegment(tree *voxel.Tree, from, to mgl32.Vec3, radius float32) (voxel.RayHit, bool) {
	return voxel.RaycastVoxelSegment(tree, from, to, radius)
}

// PlaceVoxel performs a single-cell placement, marking dirty, bumping
// revision, and scheduling a shell-bake for that voxel.
func (r *Runtime) PlaceVoxel(coord voxel.Coord, material uint8) {
	r.Tree.Place(coord, voxel.NewCell(material, 0))
	r.Scheduler.MarkVoxelDirty(coord)
	r.audioEvents = append(r.audioEvents, AudioEvent{Kind: AudioPlaceTick, Position: coord.WorldPos(), Material: material, Magnitude: 1})
}

// RemoveVoxel performs a single-cell removal and enqueues a support
// recheck with reason Remove.
func (r *Runtime) RemoveVoxel(coord voxel.Coord) {
	if _, ok := r.Tree.Remove(coord); ok {
		r.Scheduler.MarkVoxelDirty(coord)
		r.queueSupportRecheckLocked(coord, support.ReasonRemove)
	}
}

// ApplyVoxelBatch forwards to the tree and enqueues a support recheck if
// any removal occurred.
func (r *Runtime) ApplyVoxelBatch(batch voxel.Batch) voxel.BatchResult {
	res := r.Tree.Apply(batch)
	for _, c := range res.ChangedCoords {
		r.Scheduler.MarkVoxelDirty(c)
	}
	if res.AnyRemoval {
		for _, c := range res.ChangedCoords {
			r.queueSupportRecheckLocked(c, support.ReasonRemove)
		}
	}
	return res
}

// ApplyDamageAtHit forwards to the damage model, marks the hit coord for
// re-bake, and on destruction enqueues a support recheck with reason
// Damage.
func (r *Runtime) ApplyDamageAtHit(coord voxel.Coord, damage uint16, impulse float32) voxel.DamageResult {
	res := r.Tree.ApplyDamageAtHit(coord, damage, impulse)
	if !res.Hit {
		return res
	}
	r.Scheduler.MarkVoxelDirty(coord)
	if res.Destroyed {
		r.audioEvents = append(r.audioEvents, AudioEvent{Kind: AudioDestroyVoxel, Position: coord.WorldPos(), Magnitude: impulse})
		r.queueSupportRecheckLocked(coord, support.ReasonDamage)
	} else if res.CrackChanged {
		r.audioEvents = append(r.audioEvents, AudioEvent{Kind: AudioCrackStage, Position: coord.WorldPos(), Magnitude: float32(res.NewCrackStage)})
	}
	return res
}

// QueueSupportRecheck merges coords into the pending set with a reason
// (spec.md §4.1).
func (r *Runtime) QueueSupportRecheck(coords []voxel.Coord, reason support.Reason) {
	for _, c := range coords {
		r.queueSupportRecheckLocked(c, reason)
	}
}

func (r *Runtime) queueSupportRecheckLocked(c voxel.Coord, reason support.Reason) {
	r.pendingSupport[c] = struct{}{}
	r.pendingReason = reason
}

func (r *Runtime) dispatchSupportIfPending() {
	if r.supportInFlight || len(r.pendingSupport) == 0 {
		return
	}

	coords := make([]voxel.Coord, 0, len(r.pendingSupport))
	for c := range r.pendingSupport {
		coords = append(coords, c)
	}
	job := support.BuildJob(r.Tree, r.Tree.Revision(), r.pendingReason, coords)

	if r.worker.Submit(job) {
		r.supportInFlight = true
		r.pendingSupport = make(map[voxel.Coord]struct{})
		return
	}

	// No worker available: solve inline (spec.md §7 E-kind-4).
	r.applySupportResult(support.Solve(job))
	r.pendingSupport = make(map[voxel.Coord]struct{})
}

func (r *Runtime) drainSupportResults() {
	for {
		select {
		case res := <-r.worker.Results():
			r.supportInFlight = false
			r.applySupportResult(res)
		default:
			return
		}
	}
}

// applySupportResult spins off each newly unsupported island into cluster
// physics; stale results (revision mismatch) are dropped silently.
func (r *Runtime) applySupportResult(res support.Result) {
	if res.Revision != r.Tree.Revision() {
		r.log.Debugf("discarding stale support result: job revision %d, current %d", res.Revision, r.Tree.Revision())
		return
	}
	if len(res.Unsupported) == 0 {
		return
	}

	islands := partitionIslands(res.Unsupported)
	spawned := cluster.Spawn(r.allocClusterID, r.Tree, islands, mgl32.Vec3{})
	for _, c := range spawned {
		r.clusters = append(r.clusters, c)
		e := c.SpawnEvent()
		r.audioEvents = append(r.audioEvents, AudioEvent{
			Kind:      AudioClusterSpawn,
			Position:  e.Position,
			Material:  e.Material,
			Magnitude: e.Magnitude,
		})
		for _, co := range c.Cells {
			r.Scheduler.MarkVoxelDirty(voxel.FromWorldPos(c.Pos.Add(co.Offset)))
		}
	}
}

func (r *Runtime) allocClusterID() uint32 {
	r.nextClusterID++
	return r.nextClusterID
}

// partitionIslands groups unsupported coords into 6-connected components.
func partitionIslands(coords []voxel.Coord) [][]voxel.Coord {
	set := make(map[voxel.Coord]struct{}, len(coords))
	for _, c := range coords {
		set[c] = struct{}{}
	}

	var islands [][]voxel.Coord
	visited := make(map[voxel.Coord]struct{}, len(coords))

	for _, start := range coords {
		if _, seen := visited[start]; seen {
			continue
		}
		var island []voxel.Coord
		queue := []voxel.Coord{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			c := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			island = append(island, c)
			for _, n := range c.Neighbours6() {
				if _, inSet := set[n]; !inSet {
					continue
				}
				if _, seen := visited[n]; seen {
					continue
				}
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}
		islands = append(islands, island)
	}
	return islands
}
