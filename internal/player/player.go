package player

import "github.com/go-gl/mathgl/mgl32"

// Locomotion constants (spec.md §6).
const (
	CoyoteTime   float32 = 0.1
	JumpVelocity float32 = 8
	Gravity      float32 = 20
	WalkSpeed    float32 = 5
	SprintSpeed  float32 = 10
	Acceleration float32 = 50
	Deceleration float32 = 30
	MaxTurnRate  float32 = 10 // radians/sec, implementation discretion per spec.md §9
)

// Keys is the per-tick movement input (spec.md §6).
type Keys struct {
	Forward, Backward, Left, Right, Up, Down, Sprint bool
}

// Player mirrors spec.md's Player state.
type Player struct {
	Position        mgl32.Vec3
	Velocity        mgl32.Vec3 // horizontal only
	VerticalVel     float32
	IsGrounded      bool
	FacingYaw       float32
	CoyoteRemaining float32
}

func hasHorizontalInput(k Keys) bool {
	return k.Forward || k.Backward || k.Left || k.Right
}

// CanJump reports whether a jump request would succeed right now.
func (p *Player) CanJump() bool {
	return p.IsGrounded || p.CoyoteRemaining > 0
}

// Step advances the player one fixed tick under gravity mode, against
// ground, given input and the camera yaw (spec.md §4.7).
func (p *Player) Step(dt float32, mode GravityMode, ground Ground, keys Keys, cameraYaw float32, jumpRequested bool) {
	up := mode.Up(p.Position)

	moveYaw := cameraYaw
	targetSpeed := float32(0)
	if hasHorizontalInput(keys) {
		speed := WalkSpeed
		if keys.Sprint {
			speed = SprintSpeed
		}
		targetSpeed = speed
		moveYaw = inputYaw(keys, cameraYaw)
	}

	targetVel := mgl32.Vec3{0, 0, 0}
	if targetSpeed > 0 {
		fwd, _ := tangentBasis(up, moveYaw)
		targetVel = fwd.Mul(targetSpeed)
	}

	accelRate := Deceleration
	if hasHorizontalInput(keys) {
		accelRate = Acceleration
	}
	p.Velocity = moveToward3(p.Velocity, targetVel, accelRate*dt)

	if hasHorizontalInput(keys) {
		p.FacingYaw = approachAngle(p.FacingYaw, moveYaw, MaxTurnRate*dt)
	}

	gravityAccel := -Gravity
	prevVVel := p.VerticalVel
	p.VerticalVel += gravityAccel * dt
	if jumpRequested && p.CanJump() {
		p.VerticalVel = JumpVelocity
		p.IsGrounded = false
		p.CoyoteRemaining = 0
		prevVVel = p.VerticalVel
	}
	midpoint := (prevVVel + p.VerticalVel) * 0.5

	p.Position = p.Position.Add(p.Velocity.Mul(dt)).Add(up.Mul(midpoint * dt))

	if !p.IsGrounded {
		p.CoyoteRemaining -= dt
		if p.CoyoteRemaining < 0 {
			p.CoyoteRemaining = 0
		}
	}

	groundHeight, ok := ground.SampleHeight(p.Position)
	if ok {
		dist := mode.SurfaceDistance(p.Position, groundHeight, 0)
		if dist <= 0 {
			if mode.Kind == GravityFlat {
				p.Position = mgl32.Vec3{p.Position.X(), groundHeight, p.Position.Z()}
			} else {
				n := mode.Up(p.Position)
				surfaceRadius := mode.PlanetRadius
				p.Position = mode.PlanetCenter.Add(n.Mul(surfaceRadius))
			}
			p.VerticalVel = 0
			p.IsGrounded = true
			p.CoyoteRemaining = CoyoteTime
		} else {
			p.IsGrounded = false
		}
	} else if p.Position.Y() < ground.KillY {
		p.Position = ground.RespawnPos
		p.Velocity = mgl32.Vec3{}
		p.VerticalVel = 0
		p.IsGrounded = false
		p.CoyoteRemaining = 0
	} else {
		p.IsGrounded = false
	}
}

// tangentBasis returns forward/right vectors in the tangent plane of up,
// rotated by yaw around up.
func tangentBasis(up mgl32.Vec3, yaw float32) (fwd, right mgl32.Vec3) {
	ref := mgl32.Vec3{0, 0, -1}
	if absf32(up.Dot(ref)) > 0.99 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	right = up.Cross(ref).Normalize()
	fwd0 := right.Cross(up).Normalize()

	q := mgl32.QuatRotate(yaw, up)
	fwd = q.Rotate(fwd0)
	right = q.Rotate(right)
	return fwd, right
}

func inputYaw(keys Keys, cameraYaw float32) float32 {
	fx, fz := float32(0), float32(0)
	if keys.Forward {
		fz -= 1
	}
	if keys.Backward {
		fz += 1
	}
	if keys.Left {
		fx -= 1
	}
	if keys.Right {
		fx += 1
	}
	if fx == 0 && fz == 0 {
		return cameraYaw
	}
	return cameraYaw + atan2f(fx, -fz)
}

func moveToward3(cur, target mgl32.Vec3, maxDelta float32) mgl32.Vec3 {
	diff := target.Sub(cur)
	dist := diff.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return cur.Add(diff.Mul(maxDelta / dist))
}

func approachAngle(cur, target, maxDelta float32) float32 {
	d := wrapAngle(target - cur)
	if d > maxDelta {
		d = maxDelta
	} else if d < -maxDelta {
		d = -maxDelta
	}
	return cur + d
}
