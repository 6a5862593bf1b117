// Package player implements capsule locomotion over composite ground: flat
// or radial gravity, coyote-timed jumping, and acceleration/turn-rate
// shaped movement (spec.md §4.7). Grounded on the semi-implicit vertical
// integration style used by physics.go's rigid-body step.
package player

import "github.com/go-gl/mathgl/mgl32"

// GravityModeKind distinguishes flat (gravity = -Y) from spherical
// (gravity toward a planet center) worlds.
type GravityModeKind uint8

const (
	GravityFlat GravityModeKind = iota
	GravitySpherical
)

// GravityMode is a closed tagged union: Flat or Spherical{center, radius}.
type GravityMode struct {
	Kind          GravityModeKind
	PlanetCenter  mgl32.Vec3
	PlanetRadius  float32
}

// FlatGravity is the default ground-plane gravity mode.
func FlatGravity() GravityMode { return GravityMode{Kind: GravityFlat} }

// SphericalGravity builds a radial gravity mode around a planet.
func SphericalGravity(center mgl32.Vec3, radius float32) GravityMode {
	return GravityMode{Kind: GravitySpherical, PlanetCenter: center, PlanetRadius: radius}
}

// Up returns the local "up" direction at pos under this gravity mode: +Y
// for flat worlds, the outward surface normal for spherical worlds.
func (g GravityMode) Up(pos mgl32.Vec3) mgl32.Vec3 {
	if g.Kind == GravityFlat {
		return mgl32.Vec3{0, 1, 0}
	}
	d := pos.Sub(g.PlanetCenter)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// SurfaceDistance returns how far pos is from the walkable surface: for a
// flat world, pos.Y minus groundHeight; for a spherical world, radial
// distance minus (PlanetRadius + surfaceOffset).
func (g GravityMode) SurfaceDistance(pos mgl32.Vec3, groundHeight, surfaceOffset float32) float32 {
	if g.Kind == GravityFlat {
		return pos.Y() - groundHeight
	}
	return pos.Sub(g.PlanetCenter).Len() - (g.PlanetRadius + surfaceOffset)
}
