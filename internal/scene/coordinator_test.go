package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c := NewCoordinator(1, nil, nil)
	t.Cleanup(c.Close)
	return c
}

func TestTickRunsAtLeastOneFixedStepPerAccumulatedPeriod(t *testing.T) {
	c := newTestCoordinator(t)
	c.Tick(FixedPhysicsStepS)
	assert.InDelta(t, 0, c.accumulator, 1e-5)
}

func TestTickAccumulatesSubFixedStepRemainder(t *testing.T) {
	c := newTestCoordinator(t)
	c.Tick(FixedPhysicsStepS / 2)
	assert.InDelta(t, FixedPhysicsStepS/2, c.accumulator, 1e-6)
}

func TestTickCapsSubstepsAndDropsExcessTime(t *testing.T) {
	c := newTestCoordinator(t)
	// far more time than MaxFixedStepsPerFrame*FixedPhysicsStepS can consume
	c.Tick(FixedPhysicsStepS * float32(MaxFixedStepsPerFrame) * 10)
	assert.Equal(t, float32(0), c.accumulator, "excess time beyond the step cap must be dropped, not carried forward")
}

func TestStepCannonFollowsCameraWhenNotGrabbed(t *testing.T) {
	c := newTestCoordinator(t)
	c.SetInput(Input{CameraYaw: 1.25})
	c.stepCannon()
	assert.Equal(t, float32(1.25), c.cannonYaw)
}

func TestStepCannonFollowsPlayerFacingWhenGrabbed(t *testing.T) {
	c := newTestCoordinator(t)
	c.Player.FacingYaw = 0.5
	c.SetInput(Input{CameraYaw: 1.25, CannonGrabbed: true})
	c.stepCannon()
	assert.Equal(t, float32(0.5)+CannonYawOffset, c.cannonYaw)
}

func TestFireFromCannonSpawnsProjectile(t *testing.T) {
	c := newTestCoordinator(t)
	require.Equal(t, 0, c.Projectiles.Count())
	c.SetInput(Input{CameraYaw: 0, CameraForward: mgl32.Vec3{0, 0, -1}, FireCannonball: true})
	c.stepPlayer(FixedPhysicsStepS)
	assert.Equal(t, 1, c.Projectiles.Count())
}
