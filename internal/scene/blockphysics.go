package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hungaromakker/battlearena/internal/building"
	"github.com/hungaromakker/battlearena/internal/collision"
	"github.com/hungaromakker/battlearena/internal/destruction"
	"github.com/hungaromakker/battlearena/internal/hexprism"
	"github.com/hungaromakker/battlearena/internal/player"
)

// FatigueBudgetPerTick bounds how many blocks the continuous structural
// fatigue pass inspects each fixed step.
const FatigueBudgetPerTick = 8

// FatigueDamagePerPass is a small, steady damage applied to an unsupported
// block even absent a direct hit (spec.md §4.10.h).
const FatigueDamagePerPass float32 = 2

// BlockFallOutOfBoundsY below which a loose block is considered lost.
const BlockFallOutOfBoundsY float32 = -50

// recheckIntegrityForBlocks re-applies support bookkeeping for the given
// blocks: any block not marked Supported takes FatigueDamagePerPass,
// whatever its current HP; destroyed blocks are reported back to the
// integrity job driver.
func (c *Coordinator) recheckIntegrityForBlocks(ids []uint32) []building.DestroyedBlock {
	var destroyed []building.DestroyedBlock
	for _, id := range ids {
		blk, ps, ok := c.Blocks.Get(id)
		if !ok {
			continue
		}
		if ps.Supported {
			continue
		}
		outcome, ok := c.Blocks.ApplyBlockDamage(id, FatigueDamagePerPass, mgl32.Vec3{0, -1, 0}, true)
		if !ok {
			continue
		}
		_ = blk
		if outcome.Destroyed != nil {
			destroyed = append(destroyed, *outcome.Destroyed)
		}
	}
	return destroyed
}

// nearbyBlockIDs returns block ids within radius of pos via the spatial
// hash (used to build integrity-recheck follow-up jobs).
func (c *Coordinator) nearbyBlockIDs(pos mgl32.Vec3, radius float32) []uint32 {
	r := mgl32.Vec3{radius, radius, radius}
	return c.Blocks.QueryAABB(pos.Sub(r), pos.Add(r))
}

func (c *Coordinator) spawnBlockDebris(d building.DestroyedBlock) {
	burst := destruction.SpawnDebrisBurst(d.Position, 10, 4, 1.2, d.Material)
	c.debris = append(c.debris, burst...)
}

// looseBlockIDBase keeps re-inserted rubble out of the id range callers
// assign to their own blocks (spec.md §4.6: a destroyed block becomes "a
// free physics body until grounded" when allow_loose is set).
const looseBlockIDBase uint32 = 1 << 24

// looseRubbleHalfExtent sizes the small cube a destroyed block leaves
// behind as a loose rigid body (implementation discretion per spec.md §9).
const looseRubbleHalfExtent float32 = 0.3

// reinsertAsLooseRubble re-adds a destroyed block as a small loose body
// seeded with the destruction velocity, handing ongoing physics to
// tickLooseBlockPhysics. A destroyed block with no meaningful velocity
// just becomes debris instead.
func (c *Coordinator) reinsertAsLooseRubble(d building.DestroyedBlock) {
	if d.Velocity.Len() < 0.5 {
		c.spawnBlockDebris(d)
		return
	}

	c.nextLooseID++
	id := looseBlockIDBase + c.nextLooseID
	c.Blocks.Add(building.Block{
		ID:       id,
		Position: d.Position,
		Shape:    building.CubeShape(mgl32.Vec3{looseRubbleHalfExtent, looseRubbleHalfExtent, looseRubbleHalfExtent}),
		Material: d.Material,
		HP:       1,
		MaxHP:    1,
	})
	if _, ps, ok := c.Blocks.Get(id); ok {
		ps.Loose = true
		ps.Velocity = d.Velocity
	}
}

// tickContinuousFatigue runs a budgeted structural-integrity pass over a
// rotating slice of blocks each tick, independent of any direct hit
// (spec.md §4.10.h).
func (c *Coordinator) tickContinuousFatigue() {
	var ids []uint32
	c.Blocks.Each(func(id uint32) { ids = append(ids, id) })
	if len(ids) == 0 {
		return
	}

	n := FatigueBudgetPerTick
	if n > len(ids) {
		n = len(ids)
	}
	budget := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		idx := (c.fatigueCursor + i) % len(ids)
		budget = append(budget, ids[idx])
	}
	c.fatigueCursor = (c.fatigueCursor + n) % len(ids)

	destroyed := c.recheckIntegrityForBlocks(budget)
	for _, d := range destroyed {
		c.reinsertAsLooseRubble(d)
	}
}

// tickLooseBlockPhysics integrates every block whose physics state is
// loose: gravity, ground contact against the arena ground, and an
// out-of-bounds destroy path (spec.md §4.10.h).
func (c *Coordinator) tickLooseBlockPhysics(dt float32) {
	var ids []uint32
	c.Blocks.Each(func(id uint32) { ids = append(ids, id) })

	for _, id := range ids {
		blk, ps, ok := c.Blocks.Get(id)
		if !ok || !ps.Loose {
			continue
		}

		ps.Velocity = ps.Velocity.Add(mgl32.Vec3{0, -player.Gravity, 0}.Mul(dt))
		blk.Position = blk.Position.Add(ps.Velocity.Mul(dt))

		if groundY, ok := c.Ground.SampleHeight(blk.Position); ok && blk.Position.Y() <= groundY {
			blk.Position = mgl32.Vec3{blk.Position.X(), groundY, blk.Position.Z()}
			ps.Velocity = mgl32.Vec3{ps.Velocity.X(), 0, ps.Velocity.Z()}
			ps.Grounded = true
			ps.Loose = false
		}

		if blk.Position.Y() < BlockFallOutOfBoundsY {
			c.Blocks.Remove(id)
		}
	}
}

// tickDestructionSystems advances falling hex prisms, debris particles,
// and pending meteor countdowns, firing meteor impacts as they arrive.
func (c *Coordinator) tickDestructionSystems(dt float32) {
	alivePrisms := c.fallingPrisms[:0]
	for _, f := range c.fallingPrisms {
		f.Tick(dt)
		if !f.Settled {
			alivePrisms = append(alivePrisms, f)
		}
	}
	c.fallingPrisms = alivePrisms

	aliveDebris := c.debris[:0]
	for i := range c.debris {
		c.debris[i].Tick(dt)
		if c.debris[i].Alive() {
			aliveDebris = append(aliveDebris, c.debris[i])
		}
	}
	c.debris = aliveDebris

	var remainingMeteors []*destruction.MeteorEvent
	for _, m := range c.meteors {
		if m.Tick(dt) {
			c.triggerMeteorImpact(m)
			continue
		}
		if m.TimeToImpact > 0 {
			remainingMeteors = append(remainingMeteors, m)
		}
	}
	c.meteors = remainingMeteors
}

func (c *Coordinator) triggerMeteorImpact(m *destruction.MeteorEvent) {
	destroyedPrisms := c.destroyHexPrismsWithin(m.Target, m.Radius)
	c.applyGeomodCarveToBlocks(m.Target, GeomodCoreRadius*2, GeomodShellRadius*2, GeomodMaxTargets*2, GeomodShellDamage*2, GeomodShellImpulse*2)
	c.pushEmber(m.Target, destroyedPrisms)
}

// destroyHexPrismsWithin removes every prism within radius of center and
// marks the grid dirty; returns the count destroyed.
func (c *Coordinator) destroyHexPrismsWithin(center mgl32.Vec3, radius float32) int {
	axials := c.HexGrid.Within(center, radius)
	count := 0
	for _, a := range axials {
		if p, ok := c.HexGrid.Remove(a); ok {
			c.fallingPrisms = append(c.fallingPrisms, &destruction.FallingPrism{
				Axial: a,
				Prism: p,
				Pos:   p.Center,
			})
			count++
		}
	}
	return count
}

// tickPlayerWorldCollisions resolves the player capsule against nearby
// blocks and hex prisms, applying the smallest push from each contact and
// setting grounded when a top-hit is close enough (spec.md §4.10, "Player
// world collisions").
func (c *Coordinator) tickPlayerWorldCollisions() {
	base := c.Player.Position
	top := base.Add(mgl32.Vec3{0, playerCapsuleHeight, 0})

	pad := mgl32.Vec3{playerCollisionPadding, playerCollisionPadding, playerCollisionPadding}
	ids := c.Blocks.QueryAABB(base.Sub(pad), top.Add(pad))
	for _, id := range ids {
		blk, _, ok := c.Blocks.Get(id)
		if !ok {
			continue
		}
		bMin, bMax := blk.AABB()
		resp := collision.CheckCapsuleAABBCollision(base, top, playerCapsuleRadius, mgl32.Vec3{}, bMin, bMax)
		c.applyPlayerContact(resp)
	}

	axial := hexprism.WorldToAxial(base, c.HexGrid.Radius(), c.HexGrid.Height())
	for _, n := range hexNeighborhood(axial) {
		prism, ok := c.HexGrid.Get(n)
		if !ok {
			continue
		}
		center := hexprism.AxialToWorld(n, c.HexGrid.Radius(), c.HexGrid.Height())
		yBot := center.Y() - prism.Height/2
		yTop := center.Y() + prism.Height/2
		resp := collision.CheckCapsuleHexCollision(base, top, playerCapsuleRadius, mgl32.Vec3{}, center.X(), center.Z(), yBot, yTop, prism.CollisionRadius())
		c.applyPlayerContact(resp)
	}
}

func (c *Coordinator) applyPlayerContact(resp collision.CapsuleResponse) {
	if !resp.Hit {
		return
	}
	c.Player.Position = c.Player.Position.Add(resp.Push)
	if resp.Grounded && resp.GroundY >= c.Player.Position.Y()-PlayerGroundSnapDownM {
		c.Player.IsGrounded = true
		c.Player.VerticalVel = 0
	}
}

// hexNeighborhood returns the axial and its 6 neighbours at the same
// level, a small fixed-size candidate set for player<->hex collision.
func hexNeighborhood(a hexprism.Axial) []hexprism.Axial {
	out := []hexprism.Axial{a}
	dirs := [6][2]int32{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}
	for _, d := range dirs {
		out = append(out, hexprism.Axial{Q: a.Q + d[0], R: a.R + d[1], Level: a.Level})
	}
	return out
}
