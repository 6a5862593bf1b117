package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungaromakker/battlearena/internal/building"
	"github.com/hungaromakker/battlearena/internal/hexprism"
	"github.com/hungaromakker/battlearena/internal/player"
)

func TestReinsertAsLooseRubbleKeepsFastDebrisAsLooseBody(t *testing.T) {
	c := newTestCoordinator(t)
	c.reinsertAsLooseRubble(building.DestroyedBlock{ID: 1, Position: mgl32.Vec3{1, 2, 3}, Material: 5, Velocity: mgl32.Vec3{0, -5, 0}})

	require.Equal(t, 1, c.Blocks.Count())
	found := false
	c.Blocks.Each(func(id uint32) {
		_, ps, ok := c.Blocks.Get(id)
		if ok && ps.Loose {
			found = true
		}
	})
	assert.True(t, found, "a destroyed block with enough velocity should reappear as a loose body")
}

func TestReinsertAsLooseRubbleBecomesDebrisWhenSlow(t *testing.T) {
	c := newTestCoordinator(t)
	c.reinsertAsLooseRubble(building.DestroyedBlock{ID: 1, Position: mgl32.Vec3{}, Velocity: mgl32.Vec3{0, 0, 0}})

	assert.Equal(t, 0, c.Blocks.Count(), "a near-zero-velocity destroyed block should not be reinserted as a block")
	assert.NotEmpty(t, c.debris)
}

func TestTickLooseBlockPhysicsSettlesOnGround(t *testing.T) {
	c := newTestCoordinator(t)
	c.Ground = player.Ground{Islands: []player.Island{{Center: mgl32.Vec3{}, Radius: 100, SurfaceY: 0}}}
	c.reinsertAsLooseRubble(building.DestroyedBlock{ID: 1, Position: mgl32.Vec3{0, 5, 0}, Velocity: mgl32.Vec3{0, -1, 0}})

	var id uint32
	c.Blocks.Each(func(bid uint32) { id = bid })

	for i := 0; i < 500; i++ {
		c.tickLooseBlockPhysics(1.0 / 60)
		if _, ps, ok := c.Blocks.Get(id); ok && ps.Grounded {
			break
		}
	}

	_, ps, ok := c.Blocks.Get(id)
	require.True(t, ok)
	assert.True(t, ps.Grounded)
	assert.False(t, ps.Loose)
}

func TestTickLooseBlockPhysicsDespawnsOutOfBounds(t *testing.T) {
	c := newTestCoordinator(t)
	c.reinsertAsLooseRubble(building.DestroyedBlock{ID: 1, Position: mgl32.Vec3{0, BlockFallOutOfBoundsY + 1, 0}, Velocity: mgl32.Vec3{0, -10, 0}})

	var id uint32
	c.Blocks.Each(func(bid uint32) { id = bid })

	for i := 0; i < 50 && c.Blocks.Count() > 0; i++ {
		c.tickLooseBlockPhysics(1.0)
	}

	_, _, ok := c.Blocks.Get(id)
	assert.False(t, ok, "a loose block that falls past the out-of-bounds plane should be removed")
}

func TestTickContinuousFatigueOnlyBudgetsASubsetPerTick(t *testing.T) {
	c := newTestCoordinator(t)
	for i := uint32(1); i <= uint32(FatigueBudgetPerTick)*3; i++ {
		c.Blocks.Add(building.Block{ID: i, Position: mgl32.Vec3{float32(i), 0, 0}, Shape: building.CubeShape(mgl32.Vec3{0.1, 0.1, 0.1}), HP: 1000, MaxHP: 1000})
		if _, ps, ok := c.Blocks.Get(i); ok {
			ps.Supported = false
		}
	}

	c.tickContinuousFatigue()
	assert.Equal(t, FatigueBudgetPerTick, c.fatigueCursor)
}

func TestTickContinuousFatigueSkipsSupportedBlocks(t *testing.T) {
	c := newTestCoordinator(t)
	c.Blocks.Add(building.Block{ID: 1, Position: mgl32.Vec3{}, Shape: building.CubeShape(mgl32.Vec3{0.5, 0.5, 0.5}), HP: 10, MaxHP: 10})
	if _, ps, ok := c.Blocks.Get(1); ok {
		ps.Supported = true
	}

	c.tickContinuousFatigue()
	blk, _, ok := c.Blocks.Get(1)
	require.True(t, ok)
	assert.Equal(t, float32(10), blk.HP, "a fully supported block should not take fatigue damage")
}

func TestDestroyHexPrismsWithinRemovesAndSpawnsFallingPrism(t *testing.T) {
	c := newTestCoordinator(t)
	c.HexGrid.Insert(hexprism.Axial{Q: 0, R: 0, Level: 0}, 2)

	count := c.destroyHexPrismsWithin(mgl32.Vec3{0, 0.5, 0}, 5)
	assert.Equal(t, 1, count)
	assert.False(t, c.HexGrid.Contains(hexprism.Axial{Q: 0, R: 0, Level: 0}))
	require.Len(t, c.fallingPrisms, 1)
}

func TestTickPlayerWorldCollisionsGroundsOnHexPrismTop(t *testing.T) {
	c := newTestCoordinator(t)
	c.HexGrid.Insert(hexprism.Axial{Q: 0, R: 0, Level: 0}, 1)
	// A level-0, height-1 prism occupies world y in [0, 1]; place the
	// capsule base just beneath its top surface so it resolves upward onto it.
	c.Player.Position = mgl32.Vec3{0, 0.95, 0}
	c.Player.IsGrounded = false

	c.tickPlayerWorldCollisions()
	assert.True(t, c.Player.IsGrounded)
}
