package bake

// TrackedEntity mirrors spec.md's TrackedEntity: the current shape params,
// the slot it last baked to (if any), and whether it owes a re-bake.
type TrackedEntity struct {
	Params     ShapeParams
	BakedSdfID *uint32
	Dirty      bool
}

// DirtyEntity is one element of RebakeTracker.TakeDirtyEntities: the
// entity id, its current params, and the slot it should be freed from once
// the new bake lands.
type DirtyEntity struct {
	EntityID uint32
	Params   ShapeParams
	OldSlot  *uint32
}

// RebakeTracker owns ShapeParams per entity and detects shape-affecting
// changes (spec.md §4.4 re-bake tracker contract).
type RebakeTracker struct {
	entities map[uint32]*TrackedEntity
}

func NewRebakeTracker() *RebakeTracker {
	return &RebakeTracker{entities: make(map[uint32]*TrackedEntity)}
}

// Register starts tracking an entity with its initial params. Re-registering
// an existing id resets its tracked state.
func (r *RebakeTracker) Register(id uint32, params ShapeParams) {
	r.entities[id] = &TrackedEntity{Params: params}
}

// IsDirty reports whether id currently owes a re-bake.
func (r *RebakeTracker) IsDirty(id uint32) bool {
	e, ok := r.entities[id]
	return ok && e.Dirty
}

// UpdateParams sets id's full ShapeParams, returning true iff the new
// params differ from the stored ones beyond ParamEpsilon and the entity is
// tracked. A difference marks the entity dirty (invariant B-1: a no-op
// replace, or a replace differing only by fields not present in
// ShapeParams at all, never sets dirty).
func (r *RebakeTracker) UpdateParams(id uint32, params ShapeParams) bool {
	e, ok := r.entities[id]
	if !ok {
		return false
	}
	if e.Params.Equal(params) {
		return false
	}
	e.Params = params
	e.Dirty = true
	return true
}

// UpdateScale is a convenience wrapper that only touches Scale.
func (r *RebakeTracker) UpdateScale(id uint32, scale [3]float32) bool {
	e, ok := r.entities[id]
	if !ok {
		return false
	}
	next := e.Params
	next.Scale = scale
	return r.UpdateParams(id, next)
}

// UpdateNoise is a convenience wrapper that only touches the noise fields.
func (r *RebakeTracker) UpdateNoise(id uint32, amplitude, frequency float32, octaves int) bool {
	e, ok := r.entities[id]
	if !ok {
		return false
	}
	next := e.Params
	next.NoiseAmplitude = amplitude
	next.NoiseFrequency = frequency
	next.NoiseOctaves = octaves
	return r.UpdateParams(id, next)
}

// TakeDirtyEntities returns every dirty entity's id/params/old-slot triple.
// It does not clear dirty flags: the caller clears them via SetBakedSdfID
// once the new bake actually lands, so a dropped bake retries naturally.
func (r *RebakeTracker) TakeDirtyEntities() []DirtyEntity {
	var out []DirtyEntity
	for id, e := range r.entities {
		if !e.Dirty {
			continue
		}
		out = append(out, DirtyEntity{EntityID: id, Params: e.Params, OldSlot: e.BakedSdfID})
	}
	return out
}

// SetBakedSdfID records the slot a new bake landed in and clears dirty
// (invariant B-2).
func (r *RebakeTracker) SetBakedSdfID(id uint32, slot uint32) {
	e, ok := r.entities[id]
	if !ok {
		return
	}
	s := slot
	e.BakedSdfID = &s
	e.Dirty = false
}

// Forget drops all tracked state for id.
func (r *RebakeTracker) Forget(id uint32) { delete(r.entities, id) }
