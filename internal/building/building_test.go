package building

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryAABBFindsOverlapping(t *testing.T) {
	m := NewManager()
	m.Add(Block{ID: 1, Position: mgl32.Vec3{0, 0, 0}, Shape: CubeShape(mgl32.Vec3{0.5, 0.5, 0.5}), MaxHP: 100, HP: 100})
	m.Add(Block{ID: 2, Position: mgl32.Vec3{10, 10, 10}, Shape: CubeShape(mgl32.Vec3{0.5, 0.5, 0.5}), MaxHP: 100, HP: 100})

	hits := m.QueryAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	require.Len(t, hits, 1)
	assert.Equal(t, uint32(1), hits[0])
}

func TestApplyBlockDamageDestroysAtZeroHP(t *testing.T) {
	m := NewManager()
	m.Add(Block{ID: 5, Position: mgl32.Vec3{}, Shape: SphereShape(0.5), MaxHP: 50, HP: 50})

	outcome, ok := m.ApplyBlockDamage(5, 60, mgl32.Vec3{10, 0, 0}, true)
	require.True(t, ok)
	require.NotNil(t, outcome.Destroyed)
	assert.Equal(t, uint32(5), outcome.Destroyed.ID)

	_, _, stillThere := m.Get(5)
	assert.False(t, stillThere)
}

func TestApplyBlockDamageAdvancesCrackStage(t *testing.T) {
	m := NewManager()
	m.Add(Block{ID: 1, Position: mgl32.Vec3{}, Shape: CubeShape(mgl32.Vec3{1, 1, 1}), MaxHP: 100, HP: 100})

	outcome, ok := m.ApplyBlockDamage(1, 50, mgl32.Vec3{}, false)
	require.True(t, ok)
	assert.True(t, outcome.CrackStageAdvanced)
	assert.Equal(t, uint8(1), outcome.CrackStage)
	assert.Nil(t, outcome.Destroyed)
}

func TestApplyBlockDamageUnknownIDFails(t *testing.T) {
	m := NewManager()
	_, ok := m.ApplyBlockDamage(999, 10, mgl32.Vec3{}, false)
	assert.False(t, ok)
}

func TestLooseVelocitySeedsFromImpulseOverMass(t *testing.T) {
	m := NewManager()
	m.Add(Block{ID: 1, Position: mgl32.Vec3{}, Shape: CubeShape(mgl32.Vec3{1, 1, 1}), MaxHP: 10, HP: 10})

	outcome, _ := m.ApplyBlockDamage(1, 20, mgl32.Vec3{4, 0, 0}, true)
	require.NotNil(t, outcome.Destroyed)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, outcome.Destroyed.Velocity) // mass defaults to 1
}
