// Package projectile implements ballistic integration under gravity and
// quadratic drag, and the projectile system: spawn, integrate,
// segment-collide, dispatch impact events (spec.md §4.9, L1/L11).
package projectile

import "github.com/go-gl/mathgl/mgl32"

// Kind is a closed tagged union over projectile types.
type Kind uint8

const (
	Cannonball Kind = iota
	Rocket
)

// AirDensity and a default drag coefficient/area ground the quadratic drag
// law F_d = -1/2 * rho * C_d * A * |v| * v (spec.md §4.9).
const AirDensity float32 = 1.2

// State is the ballistics classification a single update step produces.
type State uint8

const (
	Flying State = iota
	Hit
	Expired
)

// Body is the minimal ballistic state Integrate advances; Projectile
// embeds it with system-level bookkeeping.
type Body struct {
	Position        mgl32.Vec3
	Velocity        mgl32.Vec3
	Mass            float32
	DragCoefficient float32
	Radius          float32
	DistanceTraveled float32
}

// crossSectionArea approximates the projectile as a sphere for drag
// purposes.
func (b Body) crossSectionArea() float32 {
	return 3.14159265 * b.Radius * b.Radius
}

// Integrate advances one fixed step using semi-implicit Euler: compute drag
// force from the velocity at the start of the step, apply gravity and drag
// to get the new velocity, then move position by the new velocity.
func (b *Body) Integrate(dt, gravity float32) {
	speed := b.Velocity.Len()
	var drag mgl32.Vec3
	if speed > 0 && b.Mass > 0 {
		dragMag := 0.5 * AirDensity * b.DragCoefficient * b.crossSectionArea() * speed
		drag = b.Velocity.Mul(-dragMag / b.Mass)
	}

	b.Velocity = b.Velocity.Add(mgl32.Vec3{0, -gravity, 0}.Mul(dt)).Add(drag.Mul(dt))
	step := b.Velocity.Mul(dt)
	b.Position = b.Position.Add(step)
	b.DistanceTraveled += step.Len()
}
