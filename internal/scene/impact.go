package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hungaromakker/battlearena/internal/collision"
	"github.com/hungaromakker/battlearena/internal/destruction"
	"github.com/hungaromakker/battlearena/internal/hexprism"
	"github.com/hungaromakker/battlearena/internal/projectile"
)

// blockSweepCandidate pairs a block id with the segment-entry distance so
// the nearest can be picked after a batch query.
type blockSweepCandidate struct {
	id   uint32
	dist float32
}

// segmentVsBlocks restricts the test to blocks overlapping the swept AABB
// (expanded by ProjectileHitRadius), then ray-AABB tests each candidate
// along the segment and keeps the nearest (spec.md §4.10.d).
func (c *Coordinator) segmentVsBlocks(from, to mgl32.Vec3) (uint32, mgl32.Vec3, float32, bool) {
	dir := to.Sub(from)
	length := dir.Len()
	if length == 0 {
		return 0, mgl32.Vec3{}, 0, false
	}
	dirN := dir.Mul(1 / length)

	pad := mgl32.Vec3{ProjectileHitRadius, ProjectileHitRadius, ProjectileHitRadius}
	sweepMin := mgl32.Vec3{
		minF(from.X(), to.X()), minF(from.Y(), to.Y()), minF(from.Z(), to.Z()),
	}.Sub(pad)
	sweepMax := mgl32.Vec3{
		maxF(from.X(), to.X()), maxF(from.Y(), to.Y()), maxF(from.Z(), to.Z()),
	}.Add(pad)

	ids := c.Blocks.QueryAABB(sweepMin, sweepMax)
	var best *blockSweepCandidate
	for _, id := range ids {
		blk, _, ok := c.Blocks.Get(id)
		if !ok {
			continue
		}
		bMin, bMax := blk.AABB()
		bMin = bMin.Sub(pad)
		bMax = bMax.Add(pad)
		t, hit := collision.RayAABBIntersect(from, dirN, bMin, bMax)
		if !hit || t > length {
			continue
		}
		if best == nil || t < best.dist {
			best = &blockSweepCandidate{id: id, dist: t}
		}
	}
	if best == nil {
		return 0, mgl32.Vec3{}, 0, false
	}
	return best.id, from.Add(dirN.Mul(best.dist)), best.dist, true
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// resolveProjectileUpdates runs §4.10.d-h's per-update impact resolution
// for one fixed step's projectile updates.
func (c *Coordinator) resolveProjectileUpdates(updates []projectile.Update) {
	var toRemove []int
	for _, u := range updates {
		switch u.State {
		case projectile.Flying:
			if c.resolveFlyingImpact(u) {
				toRemove = append(toRemove, u.Index)
			}
		case projectile.Hit:
			c.resolveGroundHit(u)
			toRemove = append(toRemove, u.Index)
		case projectile.Expired:
			toRemove = append(toRemove, u.Index)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(toRemove)))
	for _, idx := range toRemove {
		c.Projectiles.Remove(idx)
	}
}

// resolveFlyingImpact runs the wall-vs-block comparison for one in-flight
// update; returns true if the projectile should be removed this step.
func (c *Coordinator) resolveFlyingImpact(u projectile.Update) bool {
	dir := u.NewPos.Sub(u.PrevPos)
	length := dir.Len()
	if length == 0 {
		return false
	}
	dirN := dir.Mul(1 / length)

	wallHit, wallOK := c.HexGrid.RayCast(u.PrevPos, dirN, length)
	blockID, blockPos, blockDist, blockOK := c.segmentVsBlocks(u.PrevPos, u.NewPos)

	switch {
	case blockOK && (!wallOK || blockDist <= wallHit.Distance):
		c.resolveBlockImpact(u.Kind, blockID, blockPos)
		return true
	case wallOK:
		c.resolveWallImpact(u.Kind, wallHit)
		return true
	default:
		return false
	}
}

func (c *Coordinator) resolveBlockImpact(kind projectile.Kind, directBlockID uint32, impact mgl32.Vec3) {
	switch kind {
	case projectile.Cannonball:
		destroyedCount := c.applyGeomodCarveToBlocks(impact, GeomodCoreRadius, GeomodShellRadius, GeomodMaxTargets, GeomodShellDamage, GeomodShellImpulse)
		c.applyHitRing(directBlockID, impact)
		c.scheduleIntegrityRecheck([]uint32{directBlockID}, 5)
		c.pushEmber(impact, destroyedCount)
	case projectile.Rocket:
		c.rocketExplosion(impact, nil)
	}
}

func (c *Coordinator) resolveWallImpact(kind projectile.Kind, hit hexprism.Hit) {
	switch kind {
	case projectile.Cannonball:
		if p, ok := c.HexGrid.Remove(hit.Axial); ok {
			c.fallingPrisms = append(c.fallingPrisms, &destruction.FallingPrism{Axial: hit.Axial, Prism: p, Pos: p.Center})
		}
		c.applySmallExplosionToBlocks(hit.Position, PlayerBlastRadius/2)
		c.pushEmber(hit.Position, 1)
	case projectile.Rocket:
		axial := hit.Axial
		c.rocketExplosion(hit.Position, &axial)
	}
}

func (c *Coordinator) resolveGroundHit(u projectile.Update) {
	switch u.Kind {
	case projectile.Rocket:
		c.rocketExplosion(u.HitPos, nil)
	case projectile.Cannonball:
		c.applySmallExplosionToBlocks(u.HitPos, PlayerBlastRadius/2)
		c.pushEmber(u.HitPos, 1)
	}
}

// applyGeomodCarveToBlocks implements spec.md §4.10.e: enumerate blocks in
// a sphere, sort by distance, cap to max_targets; heavy fixed damage
// inside core_r, falloff-shaped damage/impulse in the shell.
func (c *Coordinator) applyGeomodCarveToBlocks(center mgl32.Vec3, coreR, shellR float32, maxTargets int, shellDamage, shellImpulse float32) int {
	pad := mgl32.Vec3{shellR, shellR, shellR}
	ids := c.Blocks.QueryAABB(center.Sub(pad), center.Add(pad))

	type cand struct {
		id   uint32
		dist float32
	}
	var cands []cand
	for _, id := range ids {
		blk, _, ok := c.Blocks.Get(id)
		if !ok {
			continue
		}
		d := blk.Position.Sub(center).Len()
		if d <= shellR {
			cands = append(cands, cand{id, d})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	if len(cands) > maxTargets {
		cands = cands[:maxTargets]
	}

	destroyed := 0
	for _, cd := range cands {
		blk, _, ok := c.Blocks.Get(cd.id)
		if !ok {
			continue
		}
		dir := blk.Position.Sub(center)
		if dir.Len() > 1e-6 {
			dir = dir.Normalize()
		} else {
			dir = mgl32.Vec3{0, 1, 0}
		}

		var damage, impulseMag float32
		if cd.dist <= coreR {
			damage = shellDamage * 4
			impulseMag = shellImpulse * 3
		} else {
			frac := (cd.dist - coreR) / (shellR - coreR)
			falloff := float32(math.Pow(float64(1-frac), float64(GeomodShellFalloff)))
			damage = shellDamage * falloff
			impulseMag = shellImpulse * falloff
		}

		impulse := dir.Add(mgl32.Vec3{0, 0.4, 0}).Mul(impulseMag)
		outcome, ok := c.Blocks.ApplyBlockDamage(cd.id, damage, impulse, true)
		if ok && outcome.Destroyed != nil {
			c.reinsertAsLooseRubble(*outcome.Destroyed)
			destroyed++
		}
	}
	return destroyed
}

// applyHitRing applies a smaller-radius, linear-falloff damage ring
// centered on the direct hit block (spec.md §4.10.e).
func (c *Coordinator) applyHitRing(directBlockID uint32, impact mgl32.Vec3) {
	const ringRadius = 0.8
	const ringDamage = 8
	center := impact
	if direct, _, ok := c.Blocks.Get(directBlockID); ok {
		center = direct.Position
	}
	pad := mgl32.Vec3{ringRadius, ringRadius, ringRadius}
	ids := c.Blocks.QueryAABB(center.Sub(pad), center.Add(pad))
	for _, id := range ids {
		blk, _, ok := c.Blocks.Get(id)
		if !ok {
			continue
		}
		d := blk.Position.Sub(center).Len()
		if d > ringRadius {
			continue
		}
		falloff := 1 - d/ringRadius
		outcome, ok := c.Blocks.ApplyBlockDamage(id, ringDamage*falloff, mgl32.Vec3{0, 1, 0}.Mul(falloff), true)
		if ok && outcome.Destroyed != nil {
			c.reinsertAsLooseRubble(*outcome.Destroyed)
		}
	}
}

func (c *Coordinator) applySmallExplosionToBlocks(center mgl32.Vec3, radius float32) {
	pad := mgl32.Vec3{radius, radius, radius}
	ids := c.Blocks.QueryAABB(center.Sub(pad), center.Add(pad))
	for _, id := range ids {
		blk, _, ok := c.Blocks.Get(id)
		if !ok {
			continue
		}
		d := blk.Position.Sub(center).Len()
		if d > radius {
			continue
		}
		falloff := 1 - d/radius
		dir := blk.Position.Sub(center)
		if dir.Len() > 1e-6 {
			dir = dir.Normalize()
		} else {
			dir = mgl32.Vec3{0, 1, 0}
		}
		outcome, ok := c.Blocks.ApplyBlockDamage(id, GeomodShellDamage*falloff, dir.Mul(GeomodShellImpulse*falloff), true)
		if ok && outcome.Destroyed != nil {
			c.reinsertAsLooseRubble(*outcome.Destroyed)
		}
	}
}

// rocketExplosion implements spec.md §4.10.f: destroy prisms within the
// blast radius, carve + explode blocks more broadly, push the player with
// distance falloff, and emit debris + an ember event sized by destroyed
// count.
func (c *Coordinator) rocketExplosion(center mgl32.Vec3, directHit *hexprism.Axial) {
	if directHit != nil {
		c.HexGrid.Remove(*directHit)
	}
	destroyedPrisms := c.destroyHexPrismsWithin(center, RocketBlastRadius)

	destroyedBlocks := c.applyGeomodCarveToBlocks(center, GeomodCoreRadius*2, GeomodShellRadius*2.5, GeomodMaxTargets*2, GeomodShellDamage*1.5, GeomodShellImpulse*1.5)

	dist := c.Player.Position.Sub(center).Len()
	if dist < PlayerBlastRadius {
		falloff := 1 - dist/PlayerBlastRadius
		dir := c.Player.Position.Sub(center)
		if dir.Len() > 1e-6 {
			dir = mgl32.Vec3{dir.X(), 0, dir.Z()}
			if dir.Len() > 1e-6 {
				dir = dir.Normalize()
			}
		}
		push := dir.Mul(PlayerBlastHorizontal * falloff)
		c.Player.Position = c.Player.Position.Add(push)
		c.Player.VerticalVel += PlayerBlastUpward * falloff
		c.Player.IsGrounded = false
	}

	destroyed := destroyedPrisms + destroyedBlocks
	if destroyed > 0 {
		burst := destruction.SpawnDebrisBurst(center, 10*destroyed, 4, 1.2, 0)
		c.debris = append(c.debris, burst...)
	}
	c.pushEmber(center, destroyed)
}
