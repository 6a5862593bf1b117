// Package hexprism implements the sparse hex-prism wall grid: pointy-top
// axial coordinates stacked vertically by level, ray-casting, and the
// mesh-dirty flag the renderer watches for regen (spec.md §3.2, §4.8).
package hexprism

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultHexRadius is the circumradius used when callers don't size their
// own prisms; the scene coordinator's blast-radius constants are multiples
// of it (spec.md §6).
const DefaultHexRadius float32 = 1.0

// Prism mirrors spec.md's HexPrism. Radius is the circumradius; the
// collision radius used by capsule tests is the inscribed (apothem) radius,
// radius * cos(30deg).
type Prism struct {
	Center   mgl32.Vec3
	Height   float32
	Radius   float32
	Material uint8
}

const apothemFactor = 0.8660254037844387 // cos(30deg)

// CollisionRadius returns the inscribed-circle radius used for capsule and
// segment collision tests against this prism.
func (p Prism) CollisionRadius() float32 {
	return p.Radius * apothemFactor
}

// Axial identifies a hex column: (q, r, level) with level pure vertical
// stacking.
type Axial struct {
	Q, R  int32
	Level int32
}

// AxialToWorld converts a pointy-top axial coordinate plus level to the
// world-space center of the corresponding prism, given the prism radius and
// height used for this grid.
func AxialToWorld(a Axial, radius, height float32) mgl32.Vec3 {
	x := radius * (sqrt3*float32(a.Q) + sqrt3/2*float32(a.R))
	z := radius * (1.5 * float32(a.R))
	y := float32(a.Level)*height + height/2
	return mgl32.Vec3{x, y, z}
}

// WorldToAxial is the inverse of AxialToWorld, rounding to the nearest
// integer lattice point (spec.md §8: world_to_axial(axial_to_world(...)) is
// an exact round-trip within the integer lattice).
func WorldToAxial(pos mgl32.Vec3, radius, height float32) Axial {
	q := (sqrt3/3*pos.X() - 1.0/3*pos.Z()) / radius
	r := (2.0 / 3 * pos.Z()) / radius
	level := (pos.Y() - height/2) / height

	return axialRound(q, r, float64(level))
}

const sqrt3 = float32(1.7320508075688772)

// axialRound implements cube-coordinate rounding so fractional axial
// coordinates land on the nearest valid hex.
func axialRound(qf, rf float32, levelf float64) Axial {
	x := float64(qf)
	z := float64(rf)
	y := -x - z

	rx := math.Round(x)
	ry := math.Round(y)
	rz := math.Round(z)

	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		// ry is least reliable; it's dependent, already dropped.
	default:
		rz = -rx - ry
	}

	return Axial{Q: int32(rx), R: int32(rz), Level: int32(math.Round(levelf))}
}
