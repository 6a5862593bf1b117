package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hungaromakker/battlearena/internal/building"
	"github.com/hungaromakker/battlearena/internal/buildingrt"
	"github.com/hungaromakker/battlearena/internal/destruction"
	"github.com/hungaromakker/battlearena/internal/hexprism"
	"github.com/hungaromakker/battlearena/internal/player"
	"github.com/hungaromakker/battlearena/internal/projectile"
	"github.com/hungaromakker/battlearena/internal/telemetry"
)

// Input is the scene's per-tick external surface: movement keys, camera
// orientation, and fire/grab requests (spec.md §6).
type Input struct {
	Keys           Keys
	CameraYaw      float32
	CameraForward  mgl32.Vec3
	JumpRequested  bool
	FireCannonball bool
	FireRocket     bool
	CannonGrabbed  bool
}

// Keys aliases player.Keys so callers only need to import scene.
type Keys = player.Keys

// Coordinator is the battle scene coordinator: it owns every system and
// runs the fixed-step pipeline (spec.md §4.10).
type Coordinator struct {
	Player      *player.Player
	GravityMode player.GravityMode
	Ground      player.Ground

	Runtime     *buildingrt.Runtime
	HexGrid     *hexprism.Grid
	Blocks      *building.Manager
	Projectiles *projectile.System

	fallingPrisms []*destruction.FallingPrism
	debris        []destruction.DebrisParticle
	meteors       []*destruction.MeteorEvent

	integrityJobs []*IntegrityRecheckJob
	fatigueCursor int
	nextLooseID   uint32

	explosionEvents []ExplosionEvent

	cannonYaw     float32
	cannonGrabbed bool

	accumulator float32
	input       Input

	log     telemetry.Logger
	metrics *telemetry.Metrics
}

// NewCoordinator wires a coordinator over freshly constructed systems.
func NewCoordinator(noiseSeed int64, log telemetry.Logger, metrics *telemetry.Metrics) *Coordinator {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &Coordinator{
		Player:      &player.Player{},
		GravityMode: player.FlatGravity(),
		Runtime:     buildingrt.NewRuntime(noiseSeed, log),
		HexGrid:     hexprism.NewGrid(hexprism.DefaultHexRadius, 1),
		Blocks:      building.NewManager(),
		Projectiles: projectile.NewSystem(),
		log:         log,
		metrics:     metrics,
	}
}

// Close releases the voxel runtime's background worker.
func (c *Coordinator) Close() { c.Runtime.Close() }

// SetInput latches the most recent external input; every fixed sub-step
// run within the next Tick call samples this same value, matching the
// teacher's fixed/dynamic update split (SPEC_FULL.md §4.10).
func (c *Coordinator) SetInput(in Input) { c.input = in }

// QueueMeteor schedules a meteor impact event.
func (c *Coordinator) QueueMeteor(target mgl32.Vec3, timeToImpact, radius float32) {
	c.meteors = append(c.meteors, &destruction.MeteorEvent{Target: target, TimeToImpact: timeToImpact, Radius: radius})
}

// Tick advances the scene by realDt seconds: an accumulator runs
// FixedPhysicsStepS substeps up to MaxFixedStepsPerFrame, dropping excess
// time rather than spiraling (spec.md §4.10).
func (c *Coordinator) Tick(realDt float32) {
	start := time.Now()

	c.accumulator += realDt
	steps := 0
	for c.accumulator >= FixedPhysicsStepS && steps < MaxFixedStepsPerFrame {
		c.fixedStep(FixedPhysicsStepS)
		c.accumulator -= FixedPhysicsStepS
		steps++
	}
	if steps == MaxFixedStepsPerFrame {
		c.accumulator = 0
	}

	// Bake-queue ticking runs on the caller's own per-frame cadence, not
	// inside the fixed-step body (SPEC_FULL.md §4.10).
	c.Runtime.Tick(realDt, 0)

	if c.metrics != nil {
		c.metrics.TickDuration.Observe(time.Since(start).Seconds())
		c.metrics.ActiveProjectile.Set(float64(c.Projectiles.Count()))
	}
}

// fixedStep runs one deterministic physics step, §4.10.a-h in order.
func (c *Coordinator) fixedStep(dt float32) {
	c.stepPlayer(dt)
	c.stepCannon()

	updates := c.Projectiles.Update(dt)
	c.resolveProjectileUpdates(updates)

	c.tickIntegrityJobs(dt)

	c.tickContinuousFatigue()
	c.tickLooseBlockPhysics(dt)
	c.tickDestructionSystems(dt)
	c.tickPlayerWorldCollisions()
}

func (c *Coordinator) stepPlayer(dt float32) {
	c.Player.Step(dt, c.GravityMode, c.Ground, c.input.Keys, c.input.CameraYaw, c.input.JumpRequested)

	if c.input.FireCannonball {
		c.fireFromCannon(projectile.Cannonball, 40, 8, 0.12, 0.15)
	}
	if c.input.FireRocket {
		c.fireFromCannon(projectile.Rocket, 28, 20, 0.5, 0.2)
	}
}

// stepCannon snaps the cannon to the camera forward, or to the player's
// facing yaw plus an offset while grabbed (spec.md §4.10.b).
func (c *Coordinator) stepCannon() {
	c.cannonGrabbed = c.input.CannonGrabbed
	if c.cannonGrabbed {
		c.cannonYaw = c.Player.FacingYaw + CannonYawOffset
		return
	}
	c.cannonYaw = c.input.CameraYaw
}

func (c *Coordinator) cannonMuzzle() mgl32.Vec3 {
	return c.Player.Position.Add(mgl32.Vec3{0, playerCapsuleHeight * 0.8, 0})
}

func (c *Coordinator) cannonDir() mgl32.Vec3 {
	if c.cannonGrabbed || c.input.CameraForward.Len() == 0 {
		return mgl32.Vec3{-sinf(c.cannonYaw), 0, -cosf(c.cannonYaw)}
	}
	return c.input.CameraForward
}

func (c *Coordinator) fireFromCannon(kind projectile.Kind, speed, mass, dragCoeff, radius float32) {
	c.Projectiles.FireWithKind(c.cannonMuzzle(), c.cannonDir(), speed, kind, mass, dragCoeff, radius)
}
