package voxel

import "sort"

// OpKind distinguishes a place from a remove within an edit batch.
type OpKind uint8

const (
	OpRemove OpKind = iota // removals sort before places at the same coord
	OpPlace
)

// Edit is one element of a VoxelEditBatch.
type Edit struct {
	Coord    Coord
	Op       OpKind
	Material uint8 // only meaningful for OpPlace
	Flags    CellFlags
}

// Batch is spec.md's VoxelEditBatch: an unordered list of edits, applied in
// a deterministic (coord, op) order with removals before places at the same
// coord (spec.md §4.1 apply_voxel_batch).
type Batch struct {
	Edits []Edit
}

func (b *Batch) Place(coord Coord, material uint8, flags CellFlags) {
	b.Edits = append(b.Edits, Edit{Coord: coord, Op: OpPlace, Material: material, Flags: flags})
}

func (b *Batch) Remove(coord Coord) {
	b.Edits = append(b.Edits, Edit{Coord: coord, Op: OpRemove})
}

// BatchResult is what apply_voxel_batch returns: counts plus the
// deduplicated set of coords whose occupancy or content changed.
type BatchResult struct {
	Placed         int
	Removed        int
	Applied        int // Placed + Removed, i.e. occupancy changes; in-place content updates are not counted
	ChangedCoords  []Coord
	AnyRemoval     bool
	RevisionBefore uint64
	RevisionAfter  uint64
}

// sortedEdits returns a copy of edits sorted by (coord, op), removals before
// places at the same coord, for deterministic apply order.
func sortedEdits(edits []Edit) []Edit {
	out := make([]Edit, len(edits))
	copy(out, edits)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Coord != b.Coord {
			if a.Coord.X != b.Coord.X {
				return a.Coord.X < b.Coord.X
			}
			if a.Coord.Y != b.Coord.Y {
				return a.Coord.Y < b.Coord.Y
			}
			return a.Coord.Z < b.Coord.Z
		}
		return a.Op < b.Op
	})
	return out
}

// Apply applies a batch deterministically and reports what changed. A no-op
// batch (every edit a place-on-already-placed or remove-on-already-empty
// that produces no occupancy/content delta) reports Applied == 0 and does
// not bump the world revision (spec.md §8 round-trip law).
func (t *Tree) Apply(batch Batch) BatchResult {
	res := BatchResult{RevisionBefore: t.revision}

	changed := make(map[Coord]struct{})
	for _, e := range sortedEdits(batch.Edits) {
		switch e.Op {
		case OpRemove:
			if _, ok := t.Remove(e.Coord); ok {
				res.Removed++
				res.AnyRemoval = true
				changed[e.Coord] = struct{}{}
			}
		case OpPlace:
			cell := NewCell(e.Material, e.Flags)
			if existing, existed := t.Get(e.Coord); existed {
				if existing.MaterialID == cell.MaterialID && existing.Flags == cell.Flags {
					continue // identical re-place: no-op, does not bump revision
				}
				cell.HP = existing.HP
				cell.CrackStage = existing.CrackStage
				t.Update(e.Coord, cell)
				changed[e.Coord] = struct{}{}
			} else {
				t.Place(e.Coord, cell)
				res.Placed++
				changed[e.Coord] = struct{}{}
			}
		}
	}

	res.Applied = res.Placed + res.Removed
	res.RevisionAfter = t.revision
	for c := range changed {
		res.ChangedCoords = append(res.ChangedCoords, c)
	}
	return res
}
