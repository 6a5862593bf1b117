package voxel

// Tree is the brick-tree voxel world: a sparse chunk-coordinate -> Brick map
// plus the dirty-chunk and changed-coord tracking the voxel building runtime
// drains once per tick (spec.md §3.1, §4.1 invariants V-1/V-2).
type Tree struct {
	bricks map[ChunkCoord]*Brick

	dirtyChunks   map[ChunkCoord]struct{}
	changedCoords map[Coord]struct{}
	worldChanged  bool

	revision uint64
}

func NewTree() *Tree {
	return &Tree{
		bricks:        make(map[ChunkCoord]*Brick),
		dirtyChunks:   make(map[ChunkCoord]struct{}),
		changedCoords: make(map[Coord]struct{}),
	}
}

// Revision is the monotonic counter bumped on every occupancy mutation; the
// support solver stamps jobs with it to detect stale results (spec.md §4.2).
func (t *Tree) Revision() uint64 { return t.revision }

func (t *Tree) markChanged(chunk ChunkCoord, coord Coord) {
	t.dirtyChunks[chunk] = struct{}{}
	t.changedCoords[coord] = struct{}{}
	t.worldChanged = true
	t.revision++
}

// Get returns the cell at coord, if occupied.
func (t *Tree) Get(coord Coord) (Cell, bool) {
	chunk, local := coord.Chunk()
	brick, ok := t.bricks[chunk]
	if !ok {
		return Cell{}, false
	}
	return brick.Get(local[0], local[1], local[2])
}

// Contains reports whether coord is occupied.
func (t *Tree) Contains(coord Coord) bool {
	_, ok := t.Get(coord)
	return ok
}

// Place sets a cell's contents, creating its owning brick if necessary.
// Returns true if this was a new occupancy (false if it only overwrote an
// already-occupied cell; that overwrite still marks the chunk dirty and the
// coord changed, but does not bump the revision).
func (t *Tree) Place(coord Coord, cell Cell) bool {
	chunk, local := coord.Chunk()
	brick, ok := t.bricks[chunk]
	if !ok {
		brick = &Brick{}
		t.bricks[chunk] = brick
	}
	wasNew := brick.Set(local[0], local[1], local[2], cell)
	if wasNew {
		t.markChanged(chunk, coord)
	} else {
		// Overwriting an occupied cell's payload (e.g. damage mutation via
		// UpdateInPlace callers) is handled by Update, not Place; if Place
		// is called on an occupied cell we still treat it as a content
		// change worth a re-bake but not a structural occupancy change.
		t.dirtyChunks[chunk] = struct{}{}
		t.changedCoords[coord] = struct{}{}
		t.worldChanged = true
	}
	return wasNew
}

// Update mutates an occupied cell's payload without affecting occupancy.
// Returns false if the coord was not occupied.
func (t *Tree) Update(coord Coord, cell Cell) bool {
	chunk, local := coord.Chunk()
	brick, ok := t.bricks[chunk]
	if !ok {
		return false
	}
	if _, occupied := brick.Get(local[0], local[1], local[2]); !occupied {
		return false
	}
	brick.UpdateInPlace(local[0], local[1], local[2], cell)
	t.dirtyChunks[chunk] = struct{}{}
	t.changedCoords[coord] = struct{}{}
	t.worldChanged = true
	return true
}

// Remove clears a cell. Returns the removed cell and whether it was present.
// A brick that becomes empty is dropped from the map (invariant I-1).
func (t *Tree) Remove(coord Coord) (Cell, bool) {
	chunk, local := coord.Chunk()
	brick, ok := t.bricks[chunk]
	if !ok {
		return Cell{}, false
	}
	old, occupied := brick.Get(local[0], local[1], local[2])
	if !occupied {
		return Cell{}, false
	}
	brick.Clear(local[0], local[1], local[2])
	if brick.IsEmpty() {
		delete(t.bricks, chunk)
	}
	t.markChanged(chunk, coord)
	return old, true
}

// TakeWorldChangeFlag returns true iff at least one chunk was marked dirty
// since the last call, and resets the flag (invariant V-1).
func (t *Tree) TakeWorldChangeFlag() bool {
	v := t.worldChanged
	t.worldChanged = false
	return v
}

// DrainDirtyChunks returns and clears the set of chunks touched since the
// last drain.
func (t *Tree) DrainDirtyChunks() []ChunkCoord {
	if len(t.dirtyChunks) == 0 {
		return nil
	}
	out := make([]ChunkCoord, 0, len(t.dirtyChunks))
	for c := range t.dirtyChunks {
		out = append(out, c)
	}
	t.dirtyChunks = make(map[ChunkCoord]struct{})
	return out
}

// DrainChangedCoords returns and clears every coord whose occupancy or
// content changed since the last drain, without duplicates (invariant V-2).
func (t *Tree) DrainChangedCoords() []Coord {
	if len(t.changedCoords) == 0 {
		return nil
	}
	out := make([]Coord, 0, len(t.changedCoords))
	for c := range t.changedCoords {
		out = append(out, c)
	}
	t.changedCoords = make(map[Coord]struct{})
	return out
}

// BrickAt exposes the raw brick for a chunk (nil if absent); used by the
// support solver to build its full-world snapshot without per-cell map
// lookups.
func (t *Tree) BrickAt(chunk ChunkCoord) *Brick { return t.bricks[chunk] }

// ChunkCoords returns every chunk coordinate currently holding a brick.
func (t *Tree) ChunkCoords() []ChunkCoord {
	out := make([]ChunkCoord, 0, len(t.bricks))
	for c := range t.bricks {
		out = append(out, c)
	}
	return out
}

// Count returns the total number of occupied cells (used by tests).
func (t *Tree) Count() int {
	n := 0
	for _, b := range t.bricks {
		n += b.count
	}
	return n
}
