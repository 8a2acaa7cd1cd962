package gameserver

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

const maxCondition = 24

// wearOffMessages tells a character an affect of the given type ended.
var wearOffMessages = map[string]string{
	"armor":               "You feel less protected.",
	"bless":               "You feel less righteous.",
	"blindness":           "You feel a cloak of blindness dissolve.",
	"curse":               "You feel more optimistic.",
	"detect invisibility": "Your eyes stop tingling.",
	"infravision":         "Your night vision seems to fade.",
	"invisibility":        "You feel yourself exposed.",
	"poison":              "You feel less sick.",
	"sanctuary":           "The white aura around your body fades.",
	"sleep":               "You feel less tired.",
	"sneak":               "You feel less sneaky.",
	"strength":            "You feel weaker.",
}

// graf interpolates a regeneration rate by age: p0 below fifteen, p6 from
// eighty, and straight lines between the points in between.
func graf(age, p0, p1, p2, p3, p4, p5, p6 int) int {
	switch {
	case age < 15:
		return p0
	case age <= 29:
		return p1 + (age-15)*(p2-p1)/15
	case age <= 44:
		return p2 + (age-30)*(p3-p2)/15
	case age <= 59:
		return p3 + (age-45)*(p4-p3)/15
	case age <= 79:
		return p4 + (age-60)*(p5-p4)/20
	}
	return p6
}

// regenPoint selects the pool a gain is computed for.
type regenPoint int

const (
	regenHit regenPoint = iota
	regenMana
	regenMove
)

// gain is how much of the given pool c recovers in one game hour.
func (g *Game) gain(c *world.Character, p regenPoint) int {
	if c.IsNPC() {
		return c.Level
	}
	age := g.age(c).Year
	var n int
	switch p {
	case regenHit:
		n = graf(age, 8, 12, 20, 32, 16, 10, 4)
	case regenMana:
		n = graf(age, 4, 8, 12, 16, 12, 10, 8)
	default:
		n = graf(age, 16, 20, 24, 20, 16, 12, 10)
	}

	if p == regenMana {
		switch c.Position {
		case world.PosSleeping:
			n *= 2
		case world.PosResting:
			n += n / 2
		case world.PosSitting:
			n += n / 4
		}
	} else {
		switch c.Position {
		case world.PosSleeping:
			n += n / 2
		case world.PosResting:
			n += n / 4
		case world.PosSitting:
			n += n / 8
		}
	}

	caster := c.Class == world.ClassMagicUser || c.Class == world.ClassCleric
	switch {
	case caster && p == regenMana:
		n *= 2
	case caster && p == regenHit:
		n /= 2
	}
	if c.Player != nil && (c.Player.Conditions[world.CondFull] == 0 || c.Player.Conditions[world.CondThirst] == 0) {
		n /= 4
	}
	if c.AffFlags.Has(world.AffPoison) {
		n /= 4
	}
	return n
}

// gainCondition moves one of a player's conditions by delta, clamped to
// 0..24. A condition of -1 never changes.
func (g *Game) gainCondition(ch world.CharID, cond, delta int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() || c.Player == nil || c.Player.Conditions[cond] == -1 {
		return
	}
	intoxicated := c.Player.Conditions[world.CondDrunk] > 0
	c.Player.Conditions[cond] = min(max(c.Player.Conditions[cond]+delta, 0), maxCondition)
	if c.Player.Conditions[cond] != 0 || c.PlrFlags.Has(world.PlrWriting) {
		return
	}
	switch cond {
	case world.CondFull:
		comm.SendToChar(w, ch, "You are hungry.\r\n")
	case world.CondThirst:
		comm.SendToChar(w, ch, "You are thirsty.\r\n")
	case world.CondDrunk:
		if intoxicated {
			comm.SendToChar(w, ch, "You are now sober.\r\n")
		}
	}
}

// checkIdling counts an idle hour for a player. Idlers are first pulled
// into the void, later rented out and extracted.
func (g *Game) checkIdling(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	c.Timer++
	if c.Timer <= g.cfg.IdleVoidTicks {
		return
	}
	if c.WasInRoom == world.Nowhere && c.InRoom != world.Nowhere {
		c.WasInRoom = c.InRoom
		if !c.Fighting.IsZero() {
			w.StopFighting(c.Fighting)
			w.StopFighting(ch)
		}
		comm.Act(w, "$n disappears into the void.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		comm.SendToChar(w, ch, "You have been idle, and are pulled into a void.\r\n")
		g.saveChar(ch)
		g.crashSave(ch)
		w.MoveChar(ch, g.voidRoom())
		return
	}
	if c.Timer <= g.cfg.IdleRentTicks {
		return
	}
	if d, ok := w.Descs.Lookup(c.Desc); ok {
		d.State = world.ConDisconnect
		d.Character = world.CharID{}
		c.Desc = world.DescID{}
	}
	g.rentSave(ch)
	g.mudlog(logCmp, world.LvlGod, fmt.Sprintf("%s force-rented and extracted (idle).", c.Name))
	w.ExtractChar(ch)
}

// updateCharObjects burns down a worn light and ages worn objects.
func (g *Game) updateCharObjects(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	if light, ok := w.Objs.Lookup(c.Equipment[world.WearLight]); ok && light.Type == world.ItemLight && light.Values[2] > 0 {
		light.Values[2]--
		switch light.Values[2] {
		case 1:
			comm.SendToChar(w, ch, "Your light begins to flicker and fade.\r\n")
			comm.Act(w, "$n's light begins to flicker and fade.", false, ch, world.ObjID{}, nil, comm.ToRoom)
		case 0:
			comm.SendToChar(w, ch, "Your light sputters out and dies.\r\n")
			comm.Act(w, "$n's light sputters out and dies.", false, ch, world.ObjID{}, nil, comm.ToRoom)
			if w.ValidRoom(c.InRoom) {
				w.Room(c.InRoom).Light--
			}
		}
	}
	var age func(o world.ObjID)
	age = func(o world.ObjID) {
		obj := w.Obj(o)
		if obj.Timer > 0 {
			obj.Timer = max(obj.Timer-2, 0)
		}
		for _, inner := range obj.Contains {
			age(inner)
		}
	}
	for _, o := range c.Equipment {
		if !o.IsZero() {
			age(o)
		}
	}
}

// affectUpdate ages timed affects by one game hour and tells characters
// about the ones that wear off, once per affect type.
func (g *Game) affectUpdate() {
	w := g.world
	told := map[world.CharID]string{}
	w.AffectUpdate(func(ch world.CharID, af world.Affect) {
		msg, ok := wearOffMessages[af.Type]
		if !ok || told[ch] == af.Type {
			return
		}
		told[ch] = af.Type
		comm.SendToChar(w, ch, msg+"\r\n")
	})
}

// pointUpdate runs the hourly upkeep of every character: hunger, thirst,
// sobering, regeneration, worn objects and idling.
func (g *Game) pointUpdate() {
	w := g.world
	for _, ch := range append([]world.CharID(nil), w.CharList...) {
		c, ok := w.Chars.Lookup(ch)
		if !ok || w.PendingExtraction(ch) {
			continue
		}
		g.gainCondition(ch, world.CondFull, -1)
		g.gainCondition(ch, world.CondDrunk, -1)
		g.gainCondition(ch, world.CondThirst, -1)

		if c.Position >= world.PosStunned {
			p := &c.Points
			p.Hit = min(p.Hit+g.gain(c, regenHit), p.MaxHit)
			p.Mana = min(p.Mana+g.gain(c, regenMana), p.MaxMana)
			p.Move = min(p.Move+g.gain(c, regenMove), p.MaxMove)
		}
		if !c.IsNPC() {
			g.updateCharObjects(ch)
			if c.Level < g.cfg.IdleMaxLevel {
				g.checkIdling(ch)
			}
		}
	}
}

// extractPending finishes every extraction requested this pulse. Players
// are saved first. A switched body hands its connection back; a player
// with a connection returns to the main menu.
func (g *Game) extractPending() {
	w := g.world
	w.ExtractPendingChars(world.ExtractHooks{
		Before: func(ch world.CharID) {
			c := w.Ch(ch)
			if !c.IsNPC() && c.Desc.IsZero() {
				g.recallSwitched(ch)
				c = w.Ch(ch)
			}
			if !c.IsNPC() {
				g.saveChar(ch)
				g.writeAliases(ch)
			}
		},
		Detached: func(ch world.CharID) {
			c := w.Ch(ch)
			d, ok := w.Descs.Lookup(c.Desc)
			if !ok {
				return
			}
			if !d.Original.IsZero() {
				g.returnToOriginal(ch)
				return
			}
			if c.IsNPC() {
				return
			}
			d.State = world.ConMenu
			if d.Edit != nil {
				w.Texts.Take(d.Edit.Text)
				d.Edit = nil
			}
			d.Pager = nil
			d.Write(mainMenu)
		},
	})
}

// recallSwitched sends a connection that switched out of body back into it
// before the body leaves the world.
func (g *Game) recallSwitched(body world.CharID) {
	w := g.world
	for _, id := range slices.Clone(w.DescList) {
		d, ok := w.Descs.Lookup(id)
		if !ok || d.Original != body {
			continue
		}
		if _, ok := w.Chars.Lookup(d.Character); ok {
			g.returnToOriginal(d.Character)
		} else {
			d.Original = world.CharID{}
		}
	}
}
