// Package building implements the coarse-voxel block world used by
// constructed buildings: block storage with a spatial hash, per-block
// physics state, and block damage (spec.md §3.3, §4.6). Grounded on the
// ColliderShape tagged union and scaled-half-extents handling in physics.go.
package building

import "github.com/go-gl/mathgl/mgl32"

// BlockGridSize is the cell edge length of the spatial hash (spec.md §3.3).
const BlockGridSize float32 = 2.0

// Shape is a closed tagged union over block collider shapes.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl32.Vec3 // Cube
	Radius      float32    // Sphere
}

type ShapeKind uint8

const (
	ShapeCube ShapeKind = iota
	ShapeSphere
)

// CubeShape builds a Cube shape with the given half extents.
func CubeShape(halfExtents mgl32.Vec3) Shape {
	return Shape{Kind: ShapeCube, HalfExtents: halfExtents}
}

// SphereShape builds a Sphere shape with the given radius.
func SphereShape(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// AABBHalfExtents returns the half extents of the shape's bounding box,
// regardless of kind.
func (s Shape) AABBHalfExtents() mgl32.Vec3 {
	if s.Kind == ShapeSphere {
		return mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	}
	return s.HalfExtents
}

// Block mirrors spec.md's Block.
type Block struct {
	ID         uint32
	Position   mgl32.Vec3
	Shape      Shape
	Material   uint8
	HP         float32
	MaxHP      float32
	CrackStage uint8
}

// AABB returns the block's world-space bounding box.
func (b Block) AABB() (min, max mgl32.Vec3) {
	he := b.Shape.AABBHalfExtents()
	return b.Position.Sub(he), b.Position.Add(he)
}

// PhysicsState mirrors spec.md's BlockPhysicsState.
type PhysicsState struct {
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Mass            float32
	Force           mgl32.Vec3
	PeakImpact      float32
	Grounded        bool
	Supported       bool
	Loose           bool
}
