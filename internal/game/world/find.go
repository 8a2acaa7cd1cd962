package world

import (
	"strings"

	"github.com/cory-johannsen/circlemud/internal/game/command"
)

// FindType is the result of FindAllDots.
type FindType int

// FindAllDots results.
const (
	FindIndiv FindType = iota
	FindAll
	FindAllDot
)

// FindAllDots classifies "all", "all.x" and plain arguments, returning the
// name to match for the dotted form.
func FindAllDots(arg string) (FindType, string) {
	switch {
	case arg == "all":
		return FindAll, ""
	case strings.HasPrefix(arg, "all."):
		return FindAllDot, arg[4:]
	default:
		return FindIndiv, arg
	}
}

func (w *World) charMatches(id CharID, name string) bool {
	return command.IsName(name, w.Ch(id).Name)
}

// GetCharRoomVis finds a visible character in viewer's room by name,
// honoring "self", "me" and "N.name".
func (w *World) GetCharRoomVis(viewer CharID, name string) (CharID, bool) {
	if name == "self" || name == "me" {
		return viewer, true
	}
	n, name := command.GetNumber(name)
	if n == 0 {
		return CharID{}, false
	}
	v := w.Ch(viewer)
	if !w.ValidRoom(v.InRoom) {
		return CharID{}, false
	}
	for _, id := range w.Rooms[v.InRoom].People {
		if w.charMatches(id, name) && w.CanSee(viewer, id) {
			if n--; n == 0 {
				return id, true
			}
		}
	}
	return CharID{}, false
}

// GetCharWorldVis finds a visible character anywhere, checking the
// viewer's room first.
func (w *World) GetCharWorldVis(viewer CharID, name string) (CharID, bool) {
	if id, ok := w.GetCharRoomVis(viewer, name); ok {
		return id, true
	}
	n, name := command.GetNumber(name)
	if n == 0 {
		return CharID{}, false
	}
	vroom := w.Ch(viewer).InRoom
	for _, id := range w.CharList {
		c, ok := w.Chars.Lookup(id)
		if !ok || c.InRoom == Nowhere || c.InRoom == vroom {
			continue
		}
		if command.IsName(name, c.Name) && w.CanSee(viewer, id) {
			if n--; n == 0 {
				return id, true
			}
		}
	}
	return CharID{}, false
}

// GetPlayerVis finds a visible player character by exact name. With
// inRoom set the search is limited to the viewer's room.
func (w *World) GetPlayerVis(viewer CharID, name string, inRoom bool) (CharID, bool) {
	vroom := w.Ch(viewer).InRoom
	for _, id := range w.CharList {
		c, ok := w.Chars.Lookup(id)
		if !ok || c.IsNPC() || c.InRoom == Nowhere {
			continue
		}
		if inRoom && c.InRoom != vroom {
			continue
		}
		if strings.EqualFold(c.Name, name) && w.CanSee(viewer, id) {
			return id, true
		}
	}
	return CharID{}, false
}

// GetPlayer finds a player in the game by name regardless of visibility.
func (w *World) GetPlayer(name string) (CharID, bool) {
	for _, id := range w.CharList {
		c, ok := w.Chars.Lookup(id)
		if ok && !c.IsNPC() && strings.EqualFold(c.Name, name) {
			return id, true
		}
	}
	return CharID{}, false
}

// GetObjInListVis finds the n-th visible object in list matching name.
func (w *World) GetObjInListVis(viewer CharID, name string, list []ObjID) (ObjID, bool) {
	n, name := command.GetNumber(name)
	if n == 0 {
		return ObjID{}, false
	}
	for _, o := range list {
		if command.IsName(name, w.Obj(o).Name) && w.CanSeeObj(viewer, o) {
			if n--; n == 0 {
				return o, true
			}
		}
	}
	return ObjID{}, false
}

// GetObjVis searches the viewer's inventory, then the room, then the
// world.
func (w *World) GetObjVis(viewer CharID, name string) (ObjID, bool) {
	v := w.Ch(viewer)
	if o, ok := w.GetObjInListVis(viewer, name, v.Carrying); ok {
		return o, true
	}
	if w.ValidRoom(v.InRoom) {
		if o, ok := w.GetObjInListVis(viewer, name, w.Rooms[v.InRoom].Contents); ok {
			return o, true
		}
	}
	return w.GetObjInListVis(viewer, name, w.Objs.Handles())
}

// GetObjInEquipVis finds a visible worn object by name.
func (w *World) GetObjInEquipVis(viewer CharID, name string) (ObjID, WearPos, bool) {
	v := w.Ch(viewer)
	for pos := range NumWears {
		o := v.Equipment[pos]
		if !o.IsZero() && command.IsName(name, w.Obj(o).Name) && w.CanSeeObj(viewer, o) {
			return o, pos, true
		}
	}
	return ObjID{}, 0, false
}

// GetObjNum returns the first object instance of template rnum.
func (w *World) GetObjNum(rnum int) (ObjID, bool) {
	for _, o := range w.Objs.Handles() {
		if w.Obj(o).ProtoRnum == rnum {
			return o, true
		}
	}
	return ObjID{}, false
}

// GetObjInListNum returns the first object of template rnum in list.
func (w *World) GetObjInListNum(rnum int, list []ObjID) (ObjID, bool) {
	for _, o := range list {
		if w.Obj(o).ProtoRnum == rnum {
			return o, true
		}
	}
	return ObjID{}, false
}
