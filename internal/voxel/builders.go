package voxel

import "math"

// The "castle tool" builders compose edit batches for common build shapes.
// They never touch a Tree directly: the caller (the voxel building runtime,
// spec.md §4.1) is responsible for calling Apply and wiring the result into
// dirty-chunk/support-recheck bookkeeping.

// BasePlateRect returns a batch placing a solid rectangular plate spanning
// [minX,maxX] x [minZ,maxZ] at the given Y, one cell thick. The plate is the
// foundation layer, so every cell carries TERRAIN_ANCHORED.
func BasePlateRect(minX, maxX, y, minZ, maxZ int32, material uint8) Batch {
	var b Batch
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			b.Place(C(x, y, z), material, FlagTerrainAnchored)
		}
	}
	return b
}

// BasePlateCircle returns a batch placing a disc of radius r (in cells)
// centered at (cx, cz) at the given Y. Every cell carries
// TERRAIN_ANCHORED, matching the rectangular plate's role as the bottom
// anchor layer (spec.md §4.1: "the bottom layer of plates always carries
// TERRAIN_ANCHORED").
func BasePlateCircle(cx, y, cz int32, r float32, material uint8) Batch {
	var b Batch
	ir := int32(math.Ceil(float64(r)))
	r2 := r * r
	for x := cx - ir; x <= cx+ir; x++ {
		for z := cz - ir; z <= cz+ir; z++ {
			dx, dz := float32(x-cx), float32(z-cz)
			if dx*dx+dz*dz <= r2 {
				b.Place(C(x, y, z), material, FlagTerrainAnchored)
			}
		}
	}
	return b
}

// WallLine returns a batch placing a straight wall of the given height
// (cells) from (x0,z0) to (x1,z1) at y0, using a Bresenham-style walk so the
// line has no gaps on either axis. Every cell is RIB_MEMBER and only the
// bottom layer (y0) additionally carries TERRAIN_ANCHORED, matching a built wall's
// structural role as a vertical rib anchored to the plate below it.
func WallLine(x0, z0, x1, z1, y0 int32, height int, material uint8) Batch {
	var b Batch
	for _, c := range bresenhamLine(x0, z0, x1, z1) {
		for dy := 0; dy < height; dy++ {
			flags := CellFlags(FlagRibMember)
			if dy == 0 {
				flags |= FlagTerrainAnchored
			}
			b.Place(C(c[0], y0+int32(dy), c[1]), material, flags)
		}
	}
	return b
}

// WallRing returns a batch placing a closed ring of walls of the given
// height around (cx, cz) at radius r (in cells).
func WallRing(cx, cz int32, r float32, y0 int32, height int, segments int, material uint8) Batch {
	if segments < 3 {
		segments = 3
	}
	var b Batch
	prev := ringPoint(cx, cz, r, 0, segments)
	for i := 1; i <= segments; i++ {
		cur := ringPoint(cx, cz, r, i%segments, segments)
		seg := WallLine(prev[0], prev[1], cur[0], cur[1], y0, height, material)
		b.Edits = append(b.Edits, seg.Edits...)
		prev = cur
	}
	return b
}

func ringPoint(cx, cz int32, r float32, i, segments int) [2]int32 {
	theta := 2 * math.Pi * float64(i) / float64(segments)
	x := float64(cx) + float64(r)*math.Cos(theta)
	z := float64(cz) + float64(r)*math.Sin(theta)
	return [2]int32{int32(math.Round(x)), int32(math.Round(z))}
}

// JointColumn returns a batch placing a vertical column of RIGID_JOINT
// cells, used to pin two wall segments together at a corner.
func JointColumn(x, z, y0 int32, height int, material uint8) Batch {
	var b Batch
	for dy := 0; dy < height; dy++ {
		flags := CellFlags(FlagRigidJoint)
		if dy == 0 {
			flags |= FlagTerrainAnchored
		}
		b.Place(C(x, y0+int32(dy), z), material, flags)
	}
	return b
}

func bresenhamLine(x0, z0, x1, z1 int32) [][2]int32 {
	var pts [][2]int32
	dx := abs32(x1 - x0)
	dz := -abs32(z1 - z0)
	sx := int32(1)
	if x0 >= x1 {
		sx = -1
	}
	sz := int32(1)
	if z0 >= z1 {
		sz = -1
	}
	err := dx + dz
	x, z := x0, z0
	for {
		pts = append(pts, [2]int32{x, z})
		if x == x1 && z == z1 {
			break
		}
		e2 := 2 * err
		if e2 >= dz {
			err += dz
			x += sx
		}
		if e2 <= dx {
			err += dx
			z += sz
		}
	}
	return pts
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
