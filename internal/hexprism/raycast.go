package hexprism

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is the result of Grid.RayCast: the axial coord hit, world-space
// position of the surface point, and a face-aligned normal.
type Hit struct {
	Axial    Axial
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// RayCast finds the nearest prism struck by a ray, treating each prism as a
// vertical cylinder of radius CollisionRadius() (the same model used by
// check_capsule_hex_collision, spec.md §4.8), strictly in front of the ray
// within max_dist (invariant H-2).
func (g *Grid) RayCast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	var best Hit
	found := false

	for a, p := range g.prisms {
		t, ok := rayCylinderHit(origin, dir, p, maxDist)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			pos := origin.Add(dir.Mul(t))
			best = Hit{
				Axial:    a,
				Position: pos,
				Normal:   cylinderNormalAt(pos, p),
				Distance: t,
			}
			found = true
		}
	}
	return best, found
}

// rayCylinderHit intersects a ray with the finite vertical cylinder
// (radius = CollisionRadius, height span [center.y-height/2, center.y+height/2])
// representing one prism's collision volume.
func rayCylinderHit(origin, dir mgl32.Vec3, p Prism, maxDist float32) (float32, bool) {
	r := p.CollisionRadius()
	ox, oz := origin.X()-p.Center.X(), origin.Z()-p.Center.Z()
	dx, dz := dir.X(), dir.Z()

	a := dx*dx + dz*dz
	b := 2 * (ox*dx + oz*dz)
	c := ox*ox + oz*oz - r*r

	var t float32
	haveT := false

	if a > 1e-8 {
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0, false
		}
		sq := float32(math.Sqrt(float64(disc)))
		t0 := (-b - sq) / (2 * a)
		t1 := (-b + sq) / (2 * a)
		if t0 > 1e-5 {
			t, haveT = t0, true
		} else if t1 > 1e-5 {
			t, haveT = t1, true
		}
	} else if c <= 0 {
		// ray is (near-)parallel to the cylinder axis and starts inside it
		t, haveT = 0, true
	}
	if !haveT || t > maxDist {
		return 0, false
	}

	yAt := origin.Y() + dir.Y()*t
	yBot, yTop := p.Center.Y()-p.Height/2, p.Center.Y()+p.Height/2
	if yAt < yBot || yAt > yTop {
		return 0, false
	}
	return t, true
}

func cylinderNormalAt(pos mgl32.Vec3, p Prism) mgl32.Vec3 {
	yBot, yTop := p.Center.Y()-p.Height/2, p.Center.Y()+p.Height/2
	const capEps = 1e-3
	if pos.Y() >= yTop-capEps {
		return mgl32.Vec3{0, 1, 0}
	}
	if pos.Y() <= yBot+capEps {
		return mgl32.Vec3{0, -1, 0}
	}
	n := mgl32.Vec3{pos.X() - p.Center.X(), 0, pos.Z() - p.Center.Z()}
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
