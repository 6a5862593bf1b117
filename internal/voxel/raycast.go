package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RayHit is the result of a voxel raycast: the cell coordinate hit, the
// coordinate of the empty cell immediately before it along the ray (where a
// new block would be placed), and the distance traveled.
type RayHit struct {
	Coord     Coord
	PrevCoord Coord
	Distance  float32
	Cell      Cell
}

// RaycastVoxel walks a ray through the tree using a 3D DDA (amanatides-woo
// style stepping, one cell boundary at a time) until it hits an occupied
// cell or exceeds maxDistance. Grounded on the stepping scheme used by
// voxelrt's RayMarch (voxelrt/rt/volume/xbrickmap.go).
func (t *Tree) RaycastVoxel(origin, dir mgl32.Vec3, maxDistance float32) (RayHit, bool) {
	if dir.Len() == 0 {
		return RayHit{}, false
	}
	dir = dir.Normalize()

	cur := FromWorldPos(origin)
	stepX, tMaxX, tDeltaX := ddaAxis(origin.X(), dir.X(), cur.X)
	stepY, tMaxY, tDeltaY := ddaAxis(origin.Y(), dir.Y(), cur.Y)
	stepZ, tMaxZ, tDeltaZ := ddaAxis(origin.Z(), dir.Z(), cur.Z)

	prev := cur
	var dist float32
	for dist <= maxDistance {
		if cell, ok := t.Get(cur); ok {
			return RayHit{Coord: cur, PrevCoord: prev, Distance: dist, Cell: cell}, true
		}
		prev = cur

		switch {
		case tMaxX < tMaxY && tMaxX < tMaxZ:
			cur.X += stepX
			dist = tMaxX
			tMaxX += tDeltaX
		case tMaxY < tMaxZ:
			cur.Y += stepY
			dist = tMaxY
			tMaxY += tDeltaY
		default:
			cur.Z += stepZ
			dist = tMaxZ
			tMaxZ += tDeltaZ
		}
	}
	return RayHit{}, false
}

// ddaAxis computes the DDA step direction, the distance to the first voxel
// boundary crossing on this axis, and the per-step delta distance.
func ddaAxis(origin, dirComp float32, cellIdx int32) (step int32, tMax, tDelta float32) {
	if dirComp == 0 {
		return 0, float32(math.Inf(1)), float32(math.Inf(1))
	}
	cellWorld := float32(cellIdx) * VoxelSize
	if dirComp > 0 {
		step = 1
		boundary := cellWorld + VoxelSize
		tMax = (boundary - origin) / dirComp
		tDelta = VoxelSize / dirComp
	} else {
		step = -1
		boundary := cellWorld
		tMax = (boundary - origin) / dirComp
		tDelta = VoxelSize / -dirComp
	}
	return step, tMax, tDelta
}

// RaycastVoxelSegment performs a 5-ray swept test (center plus 4 offset
// rays at the edges of a small probe radius) so a fast-moving projectile
// doesn't tunnel through a thin wall between the segment endpoints. It
// returns the nearest hit across all 5 rays, if any.
func RaycastVoxelSegment(t *Tree, from, to mgl32.Vec3, probeRadius float32) (RayHit, bool) {
	seg := to.Sub(from)
	length := seg.Len()
	if length == 0 {
		return RayHit{}, false
	}
	dir := seg.Mul(1 / length)

	perp1, perp2 := orthonormalBasis(dir)
	offsets := []mgl32.Vec3{
		{0, 0, 0},
		perp1.Mul(probeRadius),
		perp1.Mul(-probeRadius),
		perp2.Mul(probeRadius),
		perp2.Mul(-probeRadius),
	}

	var best RayHit
	found := false
	for _, off := range offsets {
		hit, ok := t.RaycastVoxel(from.Add(off), dir, length)
		if ok && (!found || hit.Distance < best.Distance) {
			best = hit
			found = true
		}
	}
	return best, found
}

func orthonormalBasis(dir mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(dir.Dot(up))) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	perp1 := dir.Cross(up).Normalize()
	perp2 := dir.Cross(perp1).Normalize()
	return perp1, perp2
}
