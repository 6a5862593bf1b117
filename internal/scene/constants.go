// Package scene is the battle scene coordinator: the fixed-step loop that
// ties player locomotion, the hex-prism/voxel worlds, projectile ballistics,
// geomod carve, rocket explosions, integrity rechecks, and block physics
// into one per-tick pipeline (spec.md §4.10).
package scene

import "github.com/hungaromakker/battlearena/internal/hexprism"

// Fixed-step accumulator constants (spec.md §6).
const (
	FixedPhysicsStepS     float32 = 1.0 / 120
	MaxFixedStepsPerFrame int     = 8
)

// Integrity recheck constants (spec.md §6).
const (
	IntegrityRecheckPassIntervalS float32 = 1.0 / 40
	IntegrityMinPasses            int     = 3
	IntegrityMaxPasses            int     = 14
	IntegrityStablePassesToSleep  int     = 2
)

// Blast constants (spec.md §6).
const (
	RocketBlastRadius     float32 = 7 * hexprism.DefaultHexRadius
	PlayerBlastRadius     float32 = 5
	PlayerBlastHorizontal float32 = 14
	PlayerBlastUpward     float32 = 8
)

// Geomod carve constants (spec.md §4.10.e).
const (
	GeomodCoreRadius   float32 = 0.42
	GeomodShellRadius  float32 = 1.35
	GeomodMaxTargets   int     = 22
	GeomodShellDamage  float32 = 20
	GeomodShellImpulse float32 = 3.8
	GeomodShellFalloff float32 = 2.3
)

// ProjectileHitRadius expands the swept-AABB block query around a
// projectile's path (spec.md §4.10.d names this "projectile_hit_radius"
// without a value; chosen larger than the fired projectiles' own radii,
// 0.15 for a cannonball and 0.2 for a rocket).
const ProjectileHitRadius float32 = 0.35

// PlayerGroundSnapDownM is the downward tolerance used to decide whether a
// capsule contact counts as "grounded" (spec.md §4.10, player<->world
// collisions; value is an implementation discretion per spec.md §9).
const PlayerGroundSnapDownM float32 = 0.25

// EmberFromDestroyedScale sizes an ember event's count from the number of
// prisms/blocks a single impact destroyed.
const EmberFromDestroyedScale float32 = 1.5

// Player capsule dimensions used by player<->world collision resolution
// (spec.md §4.10 names the capsule but leaves its exact radius/height to
// implementation discretion per spec.md §9).
const (
	playerCapsuleRadius    float32 = 0.4
	playerCapsuleHeight    float32 = 1.8
	playerCollisionPadding float32 = 1.0
)

// CannonYawOffset is the fixed yaw offset the cannon keeps relative to the
// player while grabbed (spec.md §4.10.b; value is implementation
// discretion per spec.md §9).
const CannonYawOffset float32 = 0

