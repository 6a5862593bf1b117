package building

import "github.com/go-gl/mathgl/mgl32"

type gridCell struct {
	x, y, z int32
}

func cellOf(p mgl32.Vec3) gridCell {
	return gridCell{
		x: floorDivCell(p.X()),
		y: floorDivCell(p.Y()),
		z: floorDivCell(p.Z()),
	}
}

func floorDivCell(v float32) int32 {
	q := v / BlockGridSize
	fl := int32(q)
	if q < 0 && float32(fl) != q {
		fl--
	}
	return fl
}

// Manager is the BuildingBlockManager: block storage plus a spatial hash on
// BlockGridSize, and per-block physics state (spec.md §3.3).
type Manager struct {
	blocks  map[uint32]*Block
	physics map[uint32]*PhysicsState
	hash    map[gridCell]map[uint32]struct{}
}

func NewManager() *Manager {
	return &Manager{
		blocks:  make(map[uint32]*Block),
		physics: make(map[uint32]*PhysicsState),
		hash:    make(map[gridCell]map[uint32]struct{}),
	}
}

// Add inserts a block with default (non-loose) physics state.
func (m *Manager) Add(b Block) {
	m.blocks[b.ID] = &b
	m.physics[b.ID] = &PhysicsState{Mass: 1}
	cell := cellOf(b.Position)
	if m.hash[cell] == nil {
		m.hash[cell] = make(map[uint32]struct{})
	}
	m.hash[cell][b.ID] = struct{}{}
}

// Get returns the block and its physics state, if present.
func (m *Manager) Get(id uint32) (*Block, *PhysicsState, bool) {
	b, ok := m.blocks[id]
	if !ok {
		return nil, nil, false
	}
	return b, m.physics[id], true
}

// Remove deletes a block from storage and the spatial hash.
func (m *Manager) Remove(id uint32) {
	b, ok := m.blocks[id]
	if !ok {
		return
	}
	cell := cellOf(b.Position)
	if set, ok := m.hash[cell]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(m.hash, cell)
		}
	}
	delete(m.blocks, id)
	delete(m.physics, id)
}

// Count returns the number of blocks currently stored.
func (m *Manager) Count() int { return len(m.blocks) }

// QueryCell returns every block id whose position falls in the same grid
// cell as p.
func (m *Manager) QueryCell(p mgl32.Vec3) []uint32 {
	set, ok := m.hash[cellOf(p)]
	if !ok {
		return nil
	}
	out := make([]uint32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// QueryAABB returns every block id whose AABB overlaps [min,max]. Blocks
// are hashed by their center position, so the scan covers the grid cells
// the query box spans plus one neighbouring cell on each side; a block
// whose half extent exceeds BlockGridSize can still be missed.
func (m *Manager) QueryAABB(min, max mgl32.Vec3) []uint32 {
	grow := mgl32.Vec3{BlockGridSize, BlockGridSize, BlockGridSize}
	cMin := cellOf(min.Sub(grow))
	cMax := cellOf(max.Add(grow))

	seen := make(map[uint32]struct{})
	var out []uint32
	for x := cMin.x; x <= cMax.x; x++ {
		for y := cMin.y; y <= cMax.y; y++ {
			for z := cMin.z; z <= cMax.z; z++ {
				for id := range m.hash[gridCell{x, y, z}] {
					if _, dup := seen[id]; dup {
						continue
					}
					b := m.blocks[id]
					bMin, bMax := b.AABB()
					if aabbOverlap(bMin, bMax, min, max) {
						seen[id] = struct{}{}
						out = append(out, id)
					}
				}
			}
		}
	}
	return out
}

func aabbOverlap(aMin, aMax, bMin, bMax mgl32.Vec3) bool {
	return aMin.X() <= bMax.X() && aMax.X() >= bMin.X() &&
		aMin.Y() <= bMax.Y() && aMax.Y() >= bMin.Y() &&
		aMin.Z() <= bMax.Z() && aMax.Z() >= bMin.Z()
}

// Each iterates every block id in the manager.
func (m *Manager) Each(fn func(id uint32)) {
	for id := range m.blocks {
		fn(id)
	}
}
