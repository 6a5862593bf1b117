package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatGround(surfaceY float32) Ground {
	return Ground{
		Islands: []Island{{Center: mgl32.Vec3{0, 0, 0}, Radius: 100, SurfaceY: surfaceY}},
		KillY:   -100,
	}
}

func TestGroundedHasZeroVerticalVelocity(t *testing.T) {
	p := &Player{Position: mgl32.Vec3{0, 0.01, 0}}
	mode := FlatGravity()
	ground := flatGround(0)

	for i := 0; i < 5; i++ {
		p.Step(1.0/120, mode, ground, Keys{}, 0, false)
	}
	if p.IsGrounded {
		assert.Equal(t, float32(0), p.VerticalVel)
	}
}

func TestCoyoteJumpSucceedsWithinWindow(t *testing.T) {
	p := &Player{Position: mgl32.Vec3{0, 0, 0}, IsGrounded: true, CoyoteRemaining: CoyoteTime}
	mode := FlatGravity()
	// island is far away: the player has just walked off its own ledge with
	// no ground beneath this position
	ground := Ground{Islands: []Island{{Center: mgl32.Vec3{50, 0, 50}, Radius: 5, SurfaceY: 0}}, KillY: -100}
	p.Step(1.0/120, mode, ground, Keys{}, 0, false)
	require.False(t, p.IsGrounded)
	assert.Greater(t, p.CoyoteRemaining, float32(0))

	jumped := false
	if p.CanJump() {
		p.Step(1.0/120, mode, ground, Keys{}, 0, true)
		jumped = p.VerticalVel > 0 && !p.IsGrounded
	}
	assert.True(t, jumped)
}

func TestCoyoteExpiresAfterWindow(t *testing.T) {
	p := &Player{Position: mgl32.Vec3{0, 0, 0}, IsGrounded: false, CoyoteRemaining: 0}
	assert.False(t, p.CanJump())
}

func TestGroundHeightIsMaxOfCandidates(t *testing.T) {
	g := Ground{
		Islands: []Island{
			{Center: mgl32.Vec3{0, 0, 0}, Radius: 5, SurfaceY: 1},
			{Center: mgl32.Vec3{0, 0, 0}, Radius: 5, SurfaceY: 3},
		},
	}
	y, ok := g.SampleHeight(mgl32.Vec3{1, 0, 1})
	require.True(t, ok)
	assert.Equal(t, float32(3), y)
}

func TestNoGroundPastKillYRespawns(t *testing.T) {
	p := &Player{Position: mgl32.Vec3{0, -200, 0}}
	g := Ground{KillY: -100, RespawnPos: mgl32.Vec3{5, 5, 5}}
	p.Step(1.0/120, FlatGravity(), g, Keys{}, 0, false)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, p.Position)
}
