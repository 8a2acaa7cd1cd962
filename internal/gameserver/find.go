package gameserver

import "github.com/cory-johannsen/circlemud/internal/game/world"

// Places genericFind may search.
const (
	findCharRoom = 1 << iota
	findCharWorld
	findObjInv
	findObjRoom
	findObjWorld
	findObjEquip
)

// genericFind looks for name in the places named by bits, in the order
// room characters, world characters, equipment, inventory, room contents
// and world objects. It returns the bit of the place that matched, or 0.
func (g *Game) genericFind(ch world.CharID, name string, bits int) (int, world.CharID, world.ObjID) {
	w := g.world
	if name == "" {
		return 0, world.CharID{}, world.ObjID{}
	}
	if bits&findCharRoom != 0 {
		if v, ok := w.GetCharRoomVis(ch, name); ok {
			return findCharRoom, v, world.ObjID{}
		}
	}
	if bits&findCharWorld != 0 {
		if v, ok := w.GetCharWorldVis(ch, name); ok {
			return findCharWorld, v, world.ObjID{}
		}
	}
	if bits&findObjEquip != 0 {
		if o, _, ok := w.GetObjInEquipVis(ch, name); ok {
			return findObjEquip, world.CharID{}, o
		}
	}
	c := w.Ch(ch)
	if bits&findObjInv != 0 {
		if o, ok := w.GetObjInListVis(ch, name, c.Carrying); ok {
			return findObjInv, world.CharID{}, o
		}
	}
	if bits&findObjRoom != 0 && c.InRoom != world.Nowhere {
		if o, ok := w.GetObjInListVis(ch, name, w.Room(c.InRoom).Contents); ok {
			return findObjRoom, world.CharID{}, o
		}
	}
	if bits&findObjWorld != 0 {
		if o, ok := w.GetObjVis(ch, name); ok {
			return findObjWorld, world.CharID{}, o
		}
	}
	return 0, world.CharID{}, world.ObjID{}
}
