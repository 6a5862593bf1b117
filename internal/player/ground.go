package player

import "github.com/go-gl/mathgl/mgl32"

// Island is one circular ground patch in the arena.
type Island struct {
	Center   mgl32.Vec3 // XZ used for distance; Y ignored
	Radius   float32
	SurfaceY float32
}

// BridgeConfig controls the deck thickness of a bridge segment.
type BridgeConfig struct {
	DeckThickness float32
	Width         float32
}

// Bridge connects two islands with a capsule-shaped walkable deck.
type Bridge struct {
	Start, End mgl32.Vec3
	Config     BridgeConfig
}

// Ground is spec.md's ArenaGround: composite ground surface made of
// islands plus an optional bridge, with kill-plane respawn.
type Ground struct {
	Islands    []Island
	Bridge     *Bridge
	KillY      float32
	RespawnPos mgl32.Vec3
}

// SampleHeight returns the effective ground height under pos.xz: the
// maximum of every applicable island/bridge candidate (spec.md §4.7), and
// whether any candidate applied at all.
func (g Ground) SampleHeight(pos mgl32.Vec3) (float32, bool) {
	var best float32
	found := false

	for _, isl := range g.Islands {
		dx := pos.X() - isl.Center.X()
		dz := pos.Z() - isl.Center.Z()
		if dx*dx+dz*dz < isl.Radius*isl.Radius {
			if !found || isl.SurfaceY > best {
				best = isl.SurfaceY
				found = true
			}
		}
	}

	if g.Bridge != nil {
		if y, ok := g.bridgeHeight(pos); ok {
			if !found || y > best {
				best = y
				found = true
			}
		}
	}

	return best, found
}

func (g Ground) bridgeHeight(pos mgl32.Vec3) (float32, bool) {
	b := g.Bridge
	seg := b.End.Sub(b.Start)
	segLenSq := seg.X()*seg.X() + seg.Z()*seg.Z()
	if segLenSq == 0 {
		return 0, false
	}

	toPoint := mgl32.Vec3{pos.X() - b.Start.X(), 0, pos.Z() - b.Start.Z()}
	t := (toPoint.X()*seg.X() + toPoint.Z()*seg.Z()) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closestX := b.Start.X() + seg.X()*t
	closestZ := b.Start.Z() + seg.Z()*t
	dx, dz := pos.X()-closestX, pos.Z()-closestZ
	if dx*dx+dz*dz > (b.Config.Width/2)*(b.Config.Width/2) {
		return 0, false
	}

	y := b.Start.Y() + (b.End.Y()-b.Start.Y())*t
	return y + b.Config.DeckThickness, true
}
