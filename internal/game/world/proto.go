package world

import "github.com/cory-johannsen/circlemud/internal/game/dice"

// MobProto is a mobile template.
type MobProto struct {
	Vnum    Vnum
	Proto   Character
	HitDice dice.Expression
	// Count is the number of live instances.
	Count int
}

// ObjProto is an object template.
type ObjProto struct {
	Vnum  Vnum
	Proto Object
	Count int
}

// ReadMobile instantiates mobile template rnum, linked into the character
// list but in no room.
func (w *World) ReadMobile(rnum int) CharID {
	p := &w.MobProtos[rnum]
	c := p.Proto
	c.Affects = nil
	c.Carrying = nil
	c.Followers = nil
	c.Equipment = [NumWears]ObjID{}
	c.MobFlags.Set(MobIsNPC)
	c.InRoom, c.WasInRoom = Nowhere, Nowhere
	c.ProtoRnum = rnum
	c.Class = ClassUndefined
	c.Points.MaxHit = max(w.Dice.Roll(p.HitDice), 1)
	c.Points.Hit = c.Points.MaxHit
	c.Points.Mana = c.Points.MaxMana
	c.Points.Move = c.Points.MaxMove
	p.Count++
	return w.AddCharacter(c)
}

// ReadObject instantiates object template rnum in limbo.
func (w *World) ReadObject(rnum int) ObjID {
	p := &w.ObjProtos[rnum]
	o := p.Proto
	o.Contains = nil
	o.Loc = Location{}
	o.ProtoRnum = rnum
	p.Count++
	return w.Objs.Push(o)
}

// CreateObject makes an object with no template, such as a mail letter.
func (w *World) CreateObject(o Object) ObjID {
	o.ProtoRnum = -1
	o.Contains = nil
	o.Loc = Location{}
	return w.Objs.Push(o)
}
