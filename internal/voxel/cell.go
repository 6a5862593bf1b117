package voxel

// CellFlags is a bitmask of structural/gameplay flags on a VoxelCell
// (spec.md §3.1).
type CellFlags uint8

const (
	FlagTerrainAnchored CellFlags = 1 << iota
	FlagRibMember
	FlagRigidJoint
)

// Crack-stage thresholds: the exact thresholds are left as a design variable
// by spec.md §9 Open Question 4; monotonicity and "three stages" are fixed
// here since the damage model (§4.6) and the shell-bake preview both need a
// concrete stage count to key cross-fade/crack-decal assets on.
const (
	crackStageNone = 0
	crackStage1Pct = 0.66 // HP fraction below which crack_stage becomes 1
	crackStage2Pct = 0.33 // HP fraction below which crack_stage becomes 2
	maxCrackStage  = 3
)

// Cell mirrors spec.md's VoxelCell: { material_id, flags, normal_oct, hp,
// crack_stage }.
type Cell struct {
	MaterialID uint8
	Flags      CellFlags
	NormalOct  [2]uint8
	HP         uint16
	CrackStage uint8
}

func (c Cell) Has(f CellFlags) bool { return c.Flags&f != 0 }

// DefaultCellHP is the HP a newly placed cell starts with absent an explicit
// material table (out of scope per spec.md §1, "material/shader parameter
// structs").
const DefaultCellHP uint16 = 100

// NewCell builds an occupied cell with default HP for the given material.
func NewCell(material uint8, flags CellFlags) Cell {
	return Cell{MaterialID: material, Flags: flags, HP: DefaultCellHP}
}

// crackStageForHP derives crack_stage from the HP fraction remaining,
// monotone non-decreasing as HP falls (invariant I-3).
func crackStageForHP(hp, maxHP uint16) uint8 {
	if maxHP == 0 {
		return 0
	}
	frac := float64(hp) / float64(maxHP)
	switch {
	case frac <= crackStage2Pct:
		return 2
	case frac <= crackStage1Pct:
		return 1
	default:
		return crackStageNone
	}
}
