package voxel

// DamageResult is what apply_damage_at_hit (spec.md §4.6) returns to the
// caller so it can decide which audio/debris events to emit.
type DamageResult struct {
	Hit          bool
	Destroyed    bool
	CrackChanged bool
	NewCrackStage uint8
	DebrisCount  int
}

// ApplyDamageAtHit subtracts damage from the cell at coord, saturating at
// zero, updates its crack stage, and removes the cell outright once HP
// reaches zero. debrisScale is the impulse magnitude used to size the
// suggested debris particle count on destruction.
func (t *Tree) ApplyDamageAtHit(coord Coord, damage uint16, debrisScale float32) DamageResult {
	cell, ok := t.Get(coord)
	if !ok {
		return DamageResult{Hit: false}
	}

	if damage >= cell.HP {
		t.Remove(coord)
		return DamageResult{
			Hit:         true,
			Destroyed:   true,
			DebrisCount: debrisCountFor(debrisScale),
		}
	}

	cell.HP -= damage
	newStage := crackStageForHP(cell.HP, DefaultCellHP)
	changed := newStage != cell.CrackStage
	cell.CrackStage = newStage
	t.Update(coord, cell)

	return DamageResult{
		Hit:           true,
		CrackChanged:  changed,
		NewCrackStage: newStage,
	}
}

// debrisCountFor scales a suggested debris particle count from hit impulse
// magnitude; clamped to a sane range so a grazing hit doesn't spawn zero
// particles and a huge impulse doesn't flood the cluster system.
func debrisCountFor(impulseMag float32) int {
	n := int(impulseMag * 0.5)
	if n < 2 {
		n = 2
	}
	if n > 24 {
		n = 24
	}
	return n
}
