package projectile

import "github.com/go-gl/mathgl/mgl32"

// ExpiredDistance is the cumulative travel distance at which a flying
// projectile expires absent any collision (spec.md §4.9).
const ExpiredDistance float32 = 400

// Gravity matches the player locomotion constant (spec.md §6).
const Gravity float32 = 20

// Projectile is a live ballistic entity plus its kind and active flag.
type Projectile struct {
	Kind   Kind
	Body   Body
	Active bool
}

// Update is one element of System.Update's return value (spec.md §4.9).
type Update struct {
	Index    int
	Kind     Kind
	PrevPos  mgl32.Vec3
	NewPos   mgl32.Vec3
	State    State
	HitPos   mgl32.Vec3 // valid only when State == Hit
	HitNorm  mgl32.Vec3 // valid only when State == Hit
}

// System owns the live projectile set (spec.md §4.9).
type System struct {
	projectiles []Projectile
}

func NewSystem() *System { return &System{} }

// FireWithKind spawns a projectile and reports whether the spawn succeeded.
// The push never fails in this implementation (no fixed capacity), but the
// bool return is kept to match the documented contract (spec.md §4.9) for
// callers that want to treat a future capacity limit uniformly.
func (s *System) FireWithKind(muzzle, dir mgl32.Vec3, speed float32, kind Kind, mass, dragCoeff, radius float32) bool {
	if dir.Len() == 0 {
		return false
	}
	s.projectiles = append(s.projectiles, Projectile{
		Kind: kind,
		Body: Body{
			Position:        muzzle,
			Velocity:        dir.Normalize().Mul(speed),
			Mass:            mass,
			DragCoefficient: dragCoeff,
			Radius:          radius,
		},
		Active: true,
	})
	return true
}

// Update integrates every active projectile one fixed step and classifies
// its state. A naive y<=0 stop is used absent an external collision
// (spec.md §9 Open Question 2: the caller is expected to override this for
// arena geometry via the returned Flying updates and its own segment
// tests).
func (s *System) Update(dt float32) []Update {
	var out []Update
	for i := range s.projectiles {
		p := &s.projectiles[i]
		if !p.Active {
			continue
		}
		prev := p.Body.Position
		p.Body.Integrate(dt, Gravity)

		u := Update{Index: i, Kind: p.Kind, PrevPos: prev, NewPos: p.Body.Position, State: Flying}

		switch {
		case p.Body.Position.Y() <= 0:
			u.State = Hit
			u.HitPos = mgl32.Vec3{p.Body.Position.X(), 0, p.Body.Position.Z()}
			u.HitNorm = mgl32.Vec3{0, 1, 0}
		case p.Body.DistanceTraveled >= ExpiredDistance:
			u.State = Expired
		}

		out = append(out, u)
	}
	return out
}

// Remove deletes the projectile at index via swap-remove (O(1)). Callers
// resolving a batch of updates must remove indices in descending order so
// earlier indices stay valid.
func (s *System) Remove(index int) {
	n := len(s.projectiles)
	if index < 0 || index >= n {
		return
	}
	s.projectiles[index] = s.projectiles[n-1]
	s.projectiles = s.projectiles[:n-1]
}

// Count returns the number of live projectiles (active or not yet removed).
func (s *System) Count() int { return len(s.projectiles) }

// At returns the projectile at index for inspection (e.g. by impact
// resolution needing its radius for a swept AABB).
func (s *System) At(index int) Projectile { return s.projectiles[index] }
