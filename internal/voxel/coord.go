// Package voxel implements the destructible brick-tree voxel world: sparse
// chunked storage, single-cell and batch edits, and the per-cell damage
// model (spec.md §3.1, §4.1, §4.6).
package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// VoxelSize is the fixed edge length of one voxel cell, in meters.
const VoxelSize float32 = 0.25

// BrickDim is the edge length, in cells, of one Brick (spec.md §3.1: "fixed
// 4x4x4 occupancy").
const BrickDim = 4

// Coord is a signed 3-tuple voxel-grid coordinate.
type Coord struct {
	X, Y, Z int32
}

func C(x, y, z int32) Coord { return Coord{x, y, z} }

// WorldPos returns the world-space position of the cell center.
func (c Coord) WorldPos() mgl32.Vec3 {
	half := VoxelSize * 0.5
	return mgl32.Vec3{
		float32(c.X)*VoxelSize + half,
		float32(c.Y)*VoxelSize + half,
		float32(c.Z)*VoxelSize + half,
	}
}

// FromWorldPos maps a world position back to the enclosing voxel coordinate.
func FromWorldPos(p mgl32.Vec3) Coord {
	return Coord{
		X: floorDiv32(p.X(), VoxelSize),
		Y: floorDiv32(p.Y(), VoxelSize),
		Z: floorDiv32(p.Z(), VoxelSize),
	}
}

func floorDiv32(v float32, size float32) int32 {
	return int32(math.Floor(float64(v / size)))
}

// ChunkCoord identifies a brick owner: Coord / BrickDim, floored.
type ChunkCoord struct {
	X, Y, Z int32
}

// Chunk returns the chunk (brick) coordinate that owns c, and c's position
// within that brick as (q, r, s) in [0, BrickDim)^3.
func (c Coord) Chunk() (ChunkCoord, [3]int) {
	cx, lx := floorDivMod(c.X, BrickDim)
	cy, ly := floorDivMod(c.Y, BrickDim)
	cz, lz := floorDivMod(c.Z, BrickDim)
	return ChunkCoord{cx, cy, cz}, [3]int{lx, ly, lz}
}

func floorDivMod(v, d int32) (int32, int) {
	q := v / d
	r := v % d
	if r < 0 {
		r += d
		q--
	}
	return q, int(r)
}

// Coord reconstructs the global voxel coordinate from a chunk and local
// (q, r, s) triple.
func (cc ChunkCoord) Coord(local [3]int) Coord {
	return Coord{
		X: cc.X*BrickDim + int32(local[0]),
		Y: cc.Y*BrickDim + int32(local[1]),
		Z: cc.Z*BrickDim + int32(local[2]),
	}
}

// Neighbours6 returns the 6-connected neighbour coordinates (+/-X, +/-Y, +/-Z).
func (c Coord) Neighbours6() [6]Coord {
	return [6]Coord{
		{c.X + 1, c.Y, c.Z}, {c.X - 1, c.Y, c.Z},
		{c.X, c.Y + 1, c.Z}, {c.X, c.Y - 1, c.Z},
		{c.X, c.Y, c.Z + 1}, {c.X, c.Y, c.Z - 1},
	}
}
