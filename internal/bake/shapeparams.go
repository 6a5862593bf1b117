// Package bake implements the shell-bake scheduler, the bake queue, and the
// re-bake tracker: per-entity shape-param dirty detection, a bounded-rate
// job scheduler, and the Pending -> Baking -> Transitioning -> Baked slot
// lifecycle (spec.md §3.4, §4.3, §4.4).
package bake

import "math"

// ParamEpsilon is the float tolerance for shape-param equality (spec.md §6).
const ParamEpsilon = 1e-4

// SdfType is a closed tag for the equation-SDF variant an entity bakes.
type SdfType uint8

const (
	SdfSphere SdfType = iota
	SdfBox
	SdfRoundedBox
	SdfCapsule
)

// ShapeParams is the subset of an entity's parameters that affect the baked
// SDF (spec.md §3.4). Position, rotation, and color are deliberately absent:
// mutating them must never mark an entity dirty (invariant B-1).
type ShapeParams struct {
	Scale          [3]float32
	NoiseAmplitude float32
	NoiseFrequency float32
	NoiseOctaves   int
	SdfType        SdfType
}

// Equal reports whether two ShapeParams are the same up to ParamEpsilon on
// the float fields; SdfType and NoiseOctaves must match exactly.
func (p ShapeParams) Equal(o ShapeParams) bool {
	if p.SdfType != o.SdfType || p.NoiseOctaves != o.NoiseOctaves {
		return false
	}
	for i := range p.Scale {
		if !approxEqual(p.Scale[i], o.Scale[i]) {
			return false
		}
	}
	return approxEqual(p.NoiseAmplitude, o.NoiseAmplitude) && approxEqual(p.NoiseFrequency, o.NoiseFrequency)
}

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) <= ParamEpsilon
}
