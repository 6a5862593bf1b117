// Package cluster implements the rigid-body physics for voxel islands that
// lost structural support: spawn from a list of coord islands, semi-implicit
// integration with gravity and damping, and settle-or-retire (spec.md
// §4.5). Grounded on the semi-implicit Euler step and sleep-threshold idiom
// used by physics.go's rigid-body integration.
package cluster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hungaromakker/battlearena/internal/voxel"
)

// Gravity is the fall acceleration applied to clusters (m/s^2), matching
// the player locomotion constant (spec.md §6 GRAVITY = 20).
const Gravity float32 = 20

// LinearDamping is applied multiplicatively to velocity each tick.
const LinearDamping float32 = 0.98

// SettleVelocityThreshold is the speed below which a cluster is considered
// at rest.
const SettleVelocityThreshold float32 = 0.05

// SettleTimeS is how long a cluster must stay under the velocity threshold
// before it's retired.
const SettleTimeS float32 = 0.4

// AudioKind tags the events a cluster emits (spec.md §6 audio event kinds,
// restricted to the cluster-relevant subset).
type AudioKind uint8

const (
	AudioClusterSpawn AudioKind = iota
	AudioClusterSettle
)

// AudioEvent is one emitted cluster sound cue.
type AudioEvent struct {
	Kind     AudioKind
	Position mgl32.Vec3
	Material uint8
	Magnitude float32
}

// CellOffset is one voxel cell's position within a cluster, relative to the
// cluster's origin at spawn time, so the cluster keeps its appearance while
// it falls.
type CellOffset struct {
	Offset mgl32.Vec3
	Cell   voxel.Cell
}

// Cluster is a disconnected voxel island lifted out of the static world and
// placed under rigid-body integration (spec.md §4.5, GLOSSARY).
type Cluster struct {
	ID       uint32
	Pos      mgl32.Vec3
	Vel      mgl32.Vec3
	Orient   mgl32.Quat
	AngVel   mgl32.Vec3
	Mass     float32
	Settled  bool
	Cells    []CellOffset
	settleFor float32
}

// massPerCell is the mass contribution of one voxel cell, used to size a
// spawned cluster's mass proportional to its cell count.
const massPerCell = 1.0

// Spawn builds one Cluster per island (a list of coord-lists), removing the
// cells from tree (marking dirties through tree's own bookkeeping) and
// setting the initial velocity to the impulse passed in by the caller;
// gravity is applied from the first Tick on.
func Spawn(nextID func() uint32, tree *voxel.Tree, islands [][]voxel.Coord, impulse mgl32.Vec3) []*Cluster {
	var out []*Cluster
	for _, island := range islands {
		if len(island) == 0 {
			continue
		}
		origin := island[0].WorldPos()
		var cells []CellOffset
		for _, c := range island {
			cell, ok := tree.Remove(c)
			if !ok {
				continue
			}
			cells = append(cells, CellOffset{Offset: c.WorldPos().Sub(origin), Cell: cell})
		}
		if len(cells) == 0 {
			continue
		}
		out = append(out, &Cluster{
			ID:     nextID(),
			Pos:    origin,
			Vel:    impulse,
			Orient: mgl32.QuatIdent(),
			Mass:   float32(len(cells)) * massPerCell,
			Cells:  cells,
		})
	}
	return out
}

// Tick integrates a cluster one fixed step: semi-implicit Euler under
// gravity, linear damping, and settle detection. Returns any audio events
// the step produced.
func (c *Cluster) Tick(dt float32) []AudioEvent {
	if c.Settled {
		return nil
	}

	c.Vel = c.Vel.Add(mgl32.Vec3{0, -Gravity, 0}.Mul(dt))
	c.Vel = c.Vel.Mul(LinearDamping)
	c.Pos = c.Pos.Add(c.Vel.Mul(dt))

	// Ground-plane fallback: a cluster that falls below y=0 lands and its
	// vertical velocity is absorbed, same as the y<=0 stop ballistics uses
	// absent an explicit terrain query.
	if c.Pos.Y() < 0 {
		c.Pos = mgl32.Vec3{c.Pos.X(), 0, c.Pos.Z()}
		c.Vel = mgl32.Vec3{c.Vel.X(), 0, c.Vel.Z()}
	}

	if c.Vel.Len() < SettleVelocityThreshold {
		c.settleFor += dt
		if c.settleFor >= SettleTimeS {
			c.Settled = true
			return []AudioEvent{{
				Kind:      AudioClusterSettle,
				Position:  c.Pos,
				Material:  c.dominantMaterial(),
				Magnitude: float32(len(c.Cells)),
			}}
		}
	} else {
		c.settleFor = 0
	}
	return nil
}

// SpawnEvent returns the ClusterSpawn audio event for this cluster, emitted
// once right after Spawn.
func (c *Cluster) SpawnEvent() AudioEvent {
	return AudioEvent{
		Kind:      AudioClusterSpawn,
		Position:  c.Pos,
		Material:  c.dominantMaterial(),
		Magnitude: float32(len(c.Cells)),
	}
}

func (c *Cluster) dominantMaterial() uint8 {
	counts := make(map[uint8]int)
	best := uint8(0)
	bestCount := 0
	for _, co := range c.Cells {
		counts[co.Cell.MaterialID]++
		if counts[co.Cell.MaterialID] > bestCount {
			best = co.Cell.MaterialID
			bestCount = counts[co.Cell.MaterialID]
		}
	}
	return best
}
