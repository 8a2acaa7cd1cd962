package world

import "slices"

func affectModify(c *Character, loc ApplyLoc, mod int, bits AffectFlag, add bool) {
	if add {
		c.AffFlags.Set(bits)
	} else {
		c.AffFlags.Clear(bits)
		mod = -mod
	}
	switch loc {
	case ApplyStr:
		c.Abilities.Str += mod
	case ApplyDex:
		c.Abilities.Dex += mod
	case ApplyInt:
		c.Abilities.Int += mod
	case ApplyWis:
		c.Abilities.Wis += mod
	case ApplyCon:
		c.Abilities.Con += mod
	case ApplyCha:
		c.Abilities.Cha += mod
	case ApplyMaxMana:
		c.Points.MaxMana += mod
	case ApplyMaxHit:
		c.Points.MaxHit += mod
	case ApplyMaxMove:
		c.Points.MaxMove += mod
	case ApplyAC:
		c.Points.Armor += mod
	case ApplyHitroll:
		c.Points.Hitroll += mod
	case ApplyDamroll:
		c.Points.Damroll += mod
	}
}

// reapplyBits restores affection bits still granted by remaining affects
// after one of them was removed.
func reapplyBits(c *Character) {
	for _, af := range c.Affects {
		c.AffFlags.Set(af.Bits)
	}
}

// AffectToChar adds af to ch and applies its modifier.
func (w *World) AffectToChar(ch CharID, af Affect) {
	c := w.Ch(ch)
	c.Affects = append([]Affect{af}, c.Affects...)
	affectModify(c, af.Location, af.Modifier, af.Bits, true)
}

// AffectRemove drops the i-th affect from ch.
func (w *World) AffectRemove(ch CharID, i int) {
	c := w.Ch(ch)
	af := c.Affects[i]
	c.Affects = slices.Delete(c.Affects, i, i+1)
	affectModify(c, af.Location, af.Modifier, af.Bits, false)
	reapplyBits(c)
}

// AffectFromChar drops every affect of the given type.
func (w *World) AffectFromChar(ch CharID, typ string) {
	for i := len(w.Ch(ch).Affects) - 1; i >= 0; i-- {
		if w.Ch(ch).Affects[i].Type == typ {
			w.AffectRemove(ch, i)
		}
	}
}

// AffectedBy reports whether ch carries an affect of the given type.
func (w *World) AffectedBy(ch CharID, typ string) bool {
	return slices.ContainsFunc(w.Ch(ch).Affects, func(a Affect) bool { return a.Type == typ })
}

// AffectUpdate ages every timed affect by one game hour. wearOff is called
// for each affect that expires.
func (w *World) AffectUpdate(wearOff func(ch CharID, af Affect)) {
	for _, id := range slices.Clone(w.CharList) {
		c, ok := w.Chars.Lookup(id)
		if !ok {
			continue
		}
		for i := len(c.Affects) - 1; i >= 0; i-- {
			af := &c.Affects[i]
			switch {
			case af.Duration >= 1:
				af.Duration--
			case af.Duration < 0:
			default:
				expired := *af
				w.AffectRemove(id, i)
				if wearOff != nil {
					wearOff(id, expired)
				}
				c = w.Ch(id)
			}
		}
	}
}

// Unaffected returns ch's abilities and points with every affect and
// worn-object modifier taken off. These are the values a player file
// stores.
func (w *World) Unaffected(ch CharID) (Abilities, Points) {
	c := *w.Ch(ch)
	for _, af := range c.Affects {
		affectModify(&c, af.Location, af.Modifier, 0, false)
	}
	for pos, o := range c.Equipment {
		if o.IsZero() {
			continue
		}
		obj := w.Obj(o)
		c.Points.Armor += armorApply(obj, WearPos(pos))
		for _, a := range obj.Affects {
			affectModify(&c, a.Location, a.Modifier, 0, false)
		}
	}
	return c.Abilities, c.Points
}
