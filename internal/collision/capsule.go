package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CapsuleResponse is what check_capsule_aabb_collision / check_capsule_hex_collision
// return: the world-space push needed to resolve the penetration, a velocity
// adjustment (the velocity component along the push direction zeroed), and,
// when the capsule landed on top of the obstacle, the ground height to snap to.
type CapsuleResponse struct {
	Hit                bool
	Push               mgl32.Vec3
	VelocityAdjustment mgl32.Vec3
	Grounded           bool
	GroundY            float32
}

// CheckCapsuleAABBCollision resolves a vertical capsule (base..top, given
// radius) against an axis-aligned box, picking whichever of the horizontal
// or vertical axis has the smallest overlap (spec.md §4.8).
func CheckCapsuleAABBCollision(base, top mgl32.Vec3, radius float32, vel mgl32.Vec3, aabbMin, aabbMax mgl32.Vec3) CapsuleResponse {
	// Horizontal: closest point on the AABB's XZ rectangle to the capsule axis.
	closestX := clampf(base.X(), aabbMin.X(), aabbMax.X())
	closestZ := clampf(base.Z(), aabbMin.Z(), aabbMax.Z())
	dx, dz := base.X()-closestX, base.Z()-closestZ
	horizDistSq := dx*dx + dz*dz
	horizOverlap := radius - sqrtf(horizDistSq)

	// Vertical: slab overlap between [base.y, top.y] and [aabbMin.y, aabbMax.y].
	vertOverlap := minf(top.Y(), aabbMax.Y()) - maxf(base.Y(), aabbMin.Y())

	if horizOverlap <= 0 || vertOverlap <= 0 {
		return CapsuleResponse{}
	}

	if vertOverlap < horizOverlap {
		// Vertical wins: push the capsule fully above or below the box.
		if base.Y() < aabbMin.Y()+(aabbMax.Y()-aabbMin.Y())/2 {
			push := mgl32.Vec3{0, -vertOverlap, 0}
			return CapsuleResponse{
				Hit:                true,
				Push:               push,
				VelocityAdjustment: mgl32.Vec3{0, minf(vel.Y(), 0) - vel.Y(), 0},
			}
		}
		push := mgl32.Vec3{0, vertOverlap, 0}
		return CapsuleResponse{
			Hit:                true,
			Push:               push,
			VelocityAdjustment: mgl32.Vec3{0, maxf(vel.Y(), 0) - vel.Y(), 0},
			Grounded:           true,
			GroundY:            aabbMax.Y(),
		}
	}

	// Horizontal wins.
	dist := sqrtf(horizDistSq)
	var nx, nz float32 = 0, 1
	if dist > 1e-6 {
		nx, nz = dx/dist, dz/dist
	}
	push := mgl32.Vec3{nx * horizOverlap, 0, nz * horizOverlap}
	vAlong := vel.X()*nx + vel.Z()*nz
	adj := mgl32.Vec3{0, 0, 0}
	if vAlong < 0 {
		adj = mgl32.Vec3{-nx * vAlong, 0, -nz * vAlong}
	}
	return CapsuleResponse{Hit: true, Push: push, VelocityAdjustment: adj}
}

// CheckCapsuleHexCollision resolves a vertical capsule against a hex
// prism's cylindrical collision volume: horizontal is a cylinder test at
// (cx, cz) with effective radius collRadius+capsuleRadius; vertical is a
// slab test against [yBot, yTop] (spec.md §4.8).
func CheckCapsuleHexCollision(base, top mgl32.Vec3, capsuleRadius float32, vel mgl32.Vec3, cx, cz, yBot, yTop, collRadius float32) CapsuleResponse {
	effRadius := collRadius + capsuleRadius
	dx, dz := base.X()-cx, base.Z()-cz
	distSq := dx*dx + dz*dz
	horizOverlap := effRadius - sqrtf(distSq)

	vertOverlap := minf(top.Y(), yTop) - maxf(base.Y(), yBot)

	if horizOverlap <= 0 || vertOverlap <= 0 {
		return CapsuleResponse{}
	}

	if vertOverlap < horizOverlap {
		if base.Y() < yBot+(yTop-yBot)/2 {
			return CapsuleResponse{
				Hit:                true,
				Push:               mgl32.Vec3{0, -vertOverlap, 0},
				VelocityAdjustment: mgl32.Vec3{0, minf(vel.Y(), 0) - vel.Y(), 0},
			}
		}
		return CapsuleResponse{
			Hit:                true,
			Push:               mgl32.Vec3{0, vertOverlap, 0},
			VelocityAdjustment: mgl32.Vec3{0, maxf(vel.Y(), 0) - vel.Y(), 0},
			Grounded:           true,
			GroundY:            yTop,
		}
	}

	dist := sqrtf(distSq)
	var nx, nz float32 = 0, 1
	if dist > 1e-6 {
		nx, nz = dx/dist, dz/dist
	}
	push := mgl32.Vec3{nx * horizOverlap, 0, nz * horizOverlap}
	vAlong := vel.X()*nx + vel.Z()*nz
	adj := mgl32.Vec3{0, 0, 0}
	if vAlong < 0 {
		adj = mgl32.Vec3{-nx * vAlong, 0, -nz * vAlong}
	}
	return CapsuleResponse{Hit: true, Push: push, VelocityAdjustment: adj}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func sqrtf(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(v)))
}
