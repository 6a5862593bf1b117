package building

import "github.com/go-gl/mathgl/mgl32"

const (
	blockCrackStage1Pct = 0.66
	blockCrackStage2Pct = 0.33
)

// crackStageForHPFraction mirrors the voxel cell's monotone crack-stage
// bucketing, expressed over a float HP fraction for blocks.
func crackStageForHPFraction(frac float32) uint8 {
	switch {
	case frac <= blockCrackStage2Pct:
		return 2
	case frac <= blockCrackStage1Pct:
		return 1
	default:
		return 0
	}
}

// DestroyedBlock is returned from ApplyBlockDamage when a block's HP
// reaches zero, carrying what the caller needs to spawn debris.
type DestroyedBlock struct {
	ID       uint32
	Position mgl32.Vec3
	Material uint8
	Velocity mgl32.Vec3 // only set when allowLoose was passed and the block has mass
}

// DamageOutcome is what ApplyBlockDamage returns (spec.md §4.6).
type DamageOutcome struct {
	CrackStageAdvanced bool
	CrackStage         uint8
	Destroyed          *DestroyedBlock
}

// ApplyBlockDamage subtracts damage from a block's HP, advances its crack
// stage, and on destruction removes it from the manager in the same call.
// A destroyed block is always removed; if allowLoose is set and the block
// has mass, the returned Velocity is impulse/mass, which the caller may use
// to re-add it as a loose body.
func (m *Manager) ApplyBlockDamage(id uint32, damage float32, impulse mgl32.Vec3, allowLoose bool) (DamageOutcome, bool) {
	b, ps, ok := m.Get(id)
	if !ok {
		return DamageOutcome{}, false
	}

	b.HP -= damage
	if b.HP < 0 {
		b.HP = 0
	}

	frac := float32(1)
	if b.MaxHP > 0 {
		frac = b.HP / b.MaxHP
	}
	newStage := crackStageForHPFraction(frac)
	advanced := newStage != b.CrackStage
	b.CrackStage = newStage

	outcome := DamageOutcome{CrackStageAdvanced: advanced, CrackStage: newStage}

	if b.HP <= 0 {
		destroyed := &DestroyedBlock{ID: b.ID, Position: b.Position, Material: b.Material}
		if allowLoose && ps.Mass > 0 {
			destroyed.Velocity = impulse.Mul(1 / ps.Mass)
		}
		outcome.Destroyed = destroyed
		m.Remove(id)
	}

	return outcome, true
}
