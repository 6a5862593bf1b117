package bake

// TransitionDuration is how long a newly-allocated slot cross-fades in
// before the entity is considered fully Baked (spec.md §6).
const TransitionDuration = 0.3

// MaxBakesPerFrame bounds how many pending jobs process_frame dequeues in
// one call (spec.md §6).
const MaxBakesPerFrame = 5

// SlotAllocator is the external SDF-slot pool (spec.md §6).
type SlotAllocator interface {
	Allocate() (uint32, bool)
	Free(uint32)
}

// StateKind is the bake-lifecycle tag: Pending -> Baking -> Transitioning ->
// Baked (spec.md §3.4).
type StateKind uint8

const (
	StatePending StateKind = iota
	StateBaking
	StateTransitioning
	StateBaked
)

// State is the per-entity bake state; Slot and StartTime are only
// meaningful for Transitioning/Baked.
type State struct {
	Kind      StateKind
	Slot      uint32
	StartTime float64
}

// Job is what queue_bake/queue_rebake accept.
type Job struct {
	EntityID uint32
	Params   ShapeParams
}

// RebakeJob additionally carries the slot the entity is currently rendering
// from, so process_frame can free it once the new bake transitions in.
type RebakeJob struct {
	EntityID uint32
	Params   ShapeParams
	OldSlot  *uint32
}

type pendingJob struct {
	entityID uint32
	oldSlot  *uint32
}

// Queue is the bake queue and transition tracker (spec.md §4.4).
type Queue struct {
	pending  []pendingJob
	states   map[uint32]*State
	queued   map[uint32]struct{} // entity ids currently somewhere in pending
	pendingFree map[uint32]uint32 // entity id -> slot to free once its re-bake transitions
}

func NewQueue() *Queue {
	return &Queue{
		states:      make(map[uint32]*State),
		queued:      make(map[uint32]struct{}),
		pendingFree: make(map[uint32]uint32),
	}
}

// QueueBake enters an entity as Pending. job.EntityID must be unique among
// live jobs; a duplicate overwrites per spec.md §7's "tolerated by
// overwriting" propagation policy.
func (q *Queue) QueueBake(job Job) {
	q.states[job.EntityID] = &State{Kind: StatePending}
	if _, already := q.queued[job.EntityID]; !already {
		q.pending = append(q.pending, pendingJob{entityID: job.EntityID})
		q.queued[job.EntityID] = struct{}{}
	}
}

// QueueRebake attaches the entity's current slot to the pending-free map
// and re-enters it as Pending; the entity keeps rendering its old slot
// until the new bake transitions.
func (q *Queue) QueueRebake(job RebakeJob) {
	if job.OldSlot != nil {
		q.pendingFree[job.EntityID] = *job.OldSlot
	}
	q.states[job.EntityID] = &State{Kind: StatePending}
	if _, already := q.queued[job.EntityID]; !already {
		q.pending = append(q.pending, pendingJob{entityID: job.EntityID, oldSlot: job.OldSlot})
		q.queued[job.EntityID] = struct{}{}
	}
}

// Transitioned is one element of process_frame's return value.
type Transitioned struct {
	EntityID uint32
	NewSlot  uint32
}

// ProcessFrame dequeues up to MaxBakesPerFrame jobs, FIFO (invariant Q-2).
// For each, it allocates a new slot; on allocation failure the job is
// pushed back to the front of the queue and processing stops for this
// frame (back-pressure). On success the entity becomes Transitioning, and
// if it has a pending-free slot, that slot is released in the same step
// (invariant Q-1).
func (q *Queue) ProcessFrame(now float64, alloc SlotAllocator) []Transitioned {
	var out []Transitioned
	n := len(q.pending)
	if n > MaxBakesPerFrame {
		n = MaxBakesPerFrame
	}

	for i := 0; i < n; i++ {
		job := q.pending[0]
		slot, ok := alloc.Allocate()
		if !ok {
			break // back-pressure: job stays at the front, FIFO order preserved
		}
		q.pending = q.pending[1:]
		delete(q.queued, job.entityID)

		q.states[job.entityID] = &State{Kind: StateTransitioning, Slot: slot, StartTime: now}

		if oldSlot, ok := q.pendingFree[job.entityID]; ok {
			alloc.Free(oldSlot)
			delete(q.pendingFree, job.entityID)
		}

		out = append(out, Transitioned{EntityID: job.entityID, NewSlot: slot})
	}
	return out
}

// Update advances every Transitioning state whose elapsed time has reached
// TransitionDuration to Baked.
func (q *Queue) Update(now float64) {
	for _, s := range q.states {
		if s.Kind == StateTransitioning && now-s.StartTime >= TransitionDuration {
			s.Kind = StateBaked
		}
	}
}

// GetTransitionProgress returns 0 for Pending/Baking, a clamped elapsed
// fraction for Transitioning, 1 for Baked, and (_, false) for an unknown id.
func (q *Queue) GetTransitionProgress(id uint32, now float64) (float32, bool) {
	s, ok := q.states[id]
	if !ok {
		return 0, false
	}
	switch s.Kind {
	case StateTransitioning:
		t := float32((now - s.StartTime) / TransitionDuration)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		return t, true
	case StateBaked:
		return 1, true
	default:
		return 0, true
	}
}

// FreeEntity releases any baked or pending-free slot and removes pending
// jobs for id.
func (q *Queue) FreeEntity(id uint32, alloc SlotAllocator) {
	if s, ok := q.states[id]; ok {
		if s.Kind == StateTransitioning || s.Kind == StateBaked {
			alloc.Free(s.Slot)
		}
		delete(q.states, id)
	}
	if slot, ok := q.pendingFree[id]; ok {
		alloc.Free(slot)
		delete(q.pendingFree, id)
	}
	if _, ok := q.queued[id]; ok {
		delete(q.queued, id)
		filtered := q.pending[:0]
		for _, j := range q.pending {
			if j.entityID != id {
				filtered = append(filtered, j)
			}
		}
		q.pending = filtered
	}
}

// PendingCount reports how many jobs remain queued, for back-pressure tests.
func (q *Queue) PendingCount() int { return len(q.pending) }
