package hexprism

import "github.com/go-gl/mathgl/mgl32"

// Grid is the sparse axial-to-prism map (spec.md §3.2 HexPrismGrid).
type Grid struct {
	prisms    map[Axial]Prism
	meshDirty bool
	radius    float32
	height    float32
}

// NewGrid constructs an empty grid using a uniform prism radius and height
// for axial<->world conversion.
func NewGrid(radius, height float32) *Grid {
	return &Grid{
		prisms: make(map[Axial]Prism),
		radius: radius,
		height: height,
	}
}

func (g *Grid) Radius() float32 { return g.radius }
func (g *Grid) Height() float32 { return g.height }

// Contains reports whether a prism exists at the given axial coordinate.
func (g *Grid) Contains(a Axial) bool {
	_, ok := g.prisms[a]
	return ok
}

// Get returns the prism at a, if any.
func (g *Grid) Get(a Axial) (Prism, bool) {
	p, ok := g.prisms[a]
	return p, ok
}

// Insert places a prism at a, always computing its world center from the
// grid's radius/height. Sets mesh_dirty (invariant H-1).
func (g *Grid) Insert(a Axial, material uint8) {
	p := Prism{
		Center:   AxialToWorld(a, g.radius, g.height),
		Height:   g.height,
		Radius:   g.radius,
		Material: material,
	}
	g.prisms[a] = p
	g.meshDirty = true
}

// Remove deletes the prism at a, if present. Sets mesh_dirty on success
// only (invariant H-1).
func (g *Grid) Remove(a Axial) (Prism, bool) {
	p, ok := g.prisms[a]
	if !ok {
		return Prism{}, false
	}
	delete(g.prisms, a)
	g.meshDirty = true
	return p, true
}

// TakeMeshDirty returns and clears the mesh-dirty flag.
func (g *Grid) TakeMeshDirty() bool {
	v := g.meshDirty
	g.meshDirty = false
	return v
}

// Each iterates every occupied axial coordinate with its prism.
func (g *Grid) Each(fn func(a Axial, p Prism)) {
	for a, p := range g.prisms {
		fn(a, p)
	}
}

// Count returns the number of prisms currently in the grid.
func (g *Grid) Count() int { return len(g.prisms) }

// Within returns every axial coordinate whose world-space center lies
// within radius of center, used by the rocket blast pass (spec.md §4.10.f).
func (g *Grid) Within(center mgl32.Vec3, radius float32) []Axial {
	var out []Axial
	r2 := radius * radius
	for a, p := range g.prisms {
		d := p.Center.Sub(center)
		if d.Dot(d) <= r2 {
			out = append(out, a)
		}
	}
	return out
}
