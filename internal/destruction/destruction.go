// Package destruction advances falling hex prisms, debris particles, and
// meteor impact events (spec.md §4.10.h, L12). Grounded on the
// semi-implicit gravity integration style shared with cluster physics and
// ballistics.
package destruction

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hungaromakker/battlearena/internal/hexprism"
)

// Gravity matches the other gravity-bearing systems (spec.md §6).
const Gravity float32 = 20

// FallingPrism is a hex prism removed from the grid and falling as a rigid
// body until it reaches the y=0 ground plane and settles.
type FallingPrism struct {
	Axial   hexprism.Axial
	Prism   hexprism.Prism
	Pos     mgl32.Vec3
	Vel     mgl32.Vec3
	Settled bool
}

// Tick integrates one fixed step under gravity and a ground-plane stop.
func (f *FallingPrism) Tick(dt float32) {
	if f.Settled {
		return
	}
	f.Vel = f.Vel.Add(mgl32.Vec3{0, -Gravity, 0}.Mul(dt))
	f.Pos = f.Pos.Add(f.Vel.Mul(dt))
	if f.Pos.Y() <= 0 {
		f.Pos = mgl32.Vec3{f.Pos.X(), 0, f.Pos.Z()}
		f.Settled = true
	}
}

// DebrisParticle is a short-lived visual particle spawned on destruction
// events (block crumble, cluster crumble, explosion).
type DebrisParticle struct {
	Pos      mgl32.Vec3
	Vel      mgl32.Vec3
	Material uint8
	LifeS    float32
	Age      float32
}

// Alive reports whether the particle should still be simulated/rendered.
func (p DebrisParticle) Alive() bool { return p.Age < p.LifeS }

// Tick integrates one fixed step under gravity and ages the particle.
func (p *DebrisParticle) Tick(dt float32) {
	p.Vel = p.Vel.Add(mgl32.Vec3{0, -Gravity, 0}.Mul(dt))
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))
	p.Age += dt
}

// SpawnDebrisBurst creates count particles radiating outward from center
// with the given material and lifetime, spaced evenly around a sphere.
func SpawnDebrisBurst(center mgl32.Vec3, count int, speed, lifeS float32, material uint8) []DebrisParticle {
	out := make([]DebrisParticle, 0, count)
	for i := 0; i < count; i++ {
		dir := fibonacciSphereDir(i, count)
		out = append(out, DebrisParticle{
			Pos:      center,
			Vel:      dir.Mul(speed),
			Material: material,
			LifeS:    lifeS,
		})
	}
	return out
}

// MeteorEvent is a scheduled meteor impact: a target position and an
// impending-impact countdown.
type MeteorEvent struct {
	Target       mgl32.Vec3
	TimeToImpact float32
	Radius       float32
}

// Tick counts down to impact; returns true exactly once, the tick the
// countdown reaches zero.
func (m *MeteorEvent) Tick(dt float32) bool {
	if m.TimeToImpact <= 0 {
		return false
	}
	m.TimeToImpact -= dt
	return m.TimeToImpact <= 0
}
