// Package collision implements the ray/capsule/AABB/hex-prism collision
// primitives the scene coordinator uses for player-vs-world contacts and
// projectile-vs-block sweeps (spec.md §4.8).
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RayAABBIntersect performs a slab test and returns the smaller positive
// root, if the ray hits the box in front of origin.
func RayAABBIntersect(origin, dir, min, max mgl32.Vec3) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math.Inf(1))

	axes := [3]struct{ o, d, lo, hi float32 }{
		{origin.X(), dir.X(), min.X(), max.X()},
		{origin.Y(), dir.Y(), min.Y(), max.Y()},
		{origin.Z(), dir.Z(), min.Z(), max.Z()},
	}

	for _, ax := range axes {
		if ax.d == 0 {
			if ax.o < ax.lo || ax.o > ax.hi {
				return 0, false
			}
			continue
		}
		invD := 1 / ax.d
		t0 := (ax.lo - ax.o) * invD
		t1 := (ax.hi - ax.o) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}

	if tMin < 0 {
		if tMax < 0 {
			return 0, false
		}
		return tMax, true
	}
	return tMin, true
}

// AABBSurfaceNormal returns the outward normal at point, picking the axis
// of maximum relative penetration past the box's half-extent.
func AABBSurfaceNormal(point, min, max mgl32.Vec3) mgl32.Vec3 {
	center := min.Add(max).Mul(0.5)
	half := max.Sub(min).Mul(0.5)
	d := point.Sub(center)

	relX, relY, relZ := float32(0), float32(0), float32(0)
	if half.X() > 0 {
		relX = d.X() / half.X()
	}
	if half.Y() > 0 {
		relY = d.Y() / half.Y()
	}
	if half.Z() > 0 {
		relZ = d.Z() / half.Z()
	}

	ax, ay, az := absf(relX), absf(relY), absf(relZ)
	switch {
	case ax >= ay && ax >= az:
		return mgl32.Vec3{signf(relX), 0, 0}
	case ay >= az:
		return mgl32.Vec3{0, signf(relY), 0}
	default:
		return mgl32.Vec3{0, 0, signf(relZ)}
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func signf(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
