package world

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Follow errors.
var (
	ErrSelfFollow    = errors.New("cannot follow self")
	ErrAlreadyLeader = errors.New("already following someone")
	ErrFollowLoop    = errors.New("follow loop")
)

func (w *World) isLight(o ObjID) bool {
	if o.IsZero() {
		return false
	}
	obj := w.Obj(o)
	return obj.Type == ItemLight && obj.Values[2] != 0
}

// CharFromRoom unlinks ch from its room.
//
// Precondition: ch is in a valid room.
// Postcondition: ch.InRoom == Nowhere and no room lists ch.
func (w *World) CharFromRoom(ch CharID) {
	c := w.Ch(ch)
	if !w.ValidRoom(c.InRoom) {
		panic(fmt.Sprintf("SYSERR: char_from_room: %s is NOWHERE", c.Name))
	}
	if !c.Fighting.IsZero() {
		w.StopFighting(ch)
	}
	room := &w.Rooms[c.InRoom]
	if w.isLight(c.Equipment[WearLight]) {
		room.Light--
	}
	room.People, _ = removeID(room.People, ch)
	c.InRoom = Nowhere
}

// CharToRoom links ch into room r.
//
// Precondition: ch is in no room and r is valid.
// Postcondition: ch.InRoom == r and room r lists ch exactly once.
func (w *World) CharToRoom(ch CharID, r Rnum) {
	if !w.ValidRoom(r) {
		panic(fmt.Sprintf("SYSERR: char_to_room: illegal room %d", r))
	}
	c := w.Ch(ch)
	if c.InRoom != Nowhere {
		panic(fmt.Sprintf("SYSERR: char_to_room: %s already in room %d", c.Name, c.InRoom))
	}
	room := &w.Rooms[r]
	room.People = append([]CharID{ch}, room.People...)
	c.InRoom = r
	if w.isLight(c.Equipment[WearLight]) {
		room.Light++
	}
	if !c.Fighting.IsZero() {
		if v, ok := w.Chars.Lookup(c.Fighting); !ok || v.InRoom != r {
			w.StopFighting(ch)
		}
	}
}

// MoveChar is the paired from/to move.
func (w *World) MoveChar(ch CharID, r Rnum) {
	w.CharFromRoom(ch)
	w.CharToRoom(ch, r)
}

func (w *World) requireNowhere(o ObjID, op string) *Object {
	obj := w.Obj(o)
	if obj.Loc.Kind != LocNowhere {
		panic(fmt.Sprintf("SYSERR: %s: object %s is not in limbo", op, o))
	}
	return obj
}

// ObjToRoom puts a limbo object on the floor of r.
func (w *World) ObjToRoom(o ObjID, r Rnum) {
	if !w.ValidRoom(r) {
		panic(fmt.Sprintf("SYSERR: obj_to_room: illegal room %d", r))
	}
	obj := w.requireNowhere(o, "obj_to_room")
	room := &w.Rooms[r]
	room.Contents = append([]ObjID{o}, room.Contents...)
	obj.Loc = InRoom(r)
}

// ObjFromRoom returns a floor object to limbo.
func (w *World) ObjFromRoom(o ObjID) {
	obj := w.Obj(o)
	if obj.Loc.Kind != LocRoom {
		panic(fmt.Sprintf("SYSERR: obj_from_room: object %s is not in a room", o))
	}
	room := &w.Rooms[obj.Loc.Room]
	room.Contents, _ = removeID(room.Contents, o)
	obj.Loc = Location{}
}

// ObjToChar gives a limbo object to ch.
func (w *World) ObjToChar(o ObjID, ch CharID) {
	obj := w.requireNowhere(o, "obj_to_char")
	c := w.Ch(ch)
	c.Carrying = append([]ObjID{o}, c.Carrying...)
	c.CarryWeight += obj.Weight
	c.CarryItems++
	obj.Loc = CarriedBy(ch)
	if !c.IsNPC() {
		c.PlrFlags.Set(PlrCrash)
	}
}

// ObjFromChar takes a carried object back to limbo.
func (w *World) ObjFromChar(o ObjID) {
	obj := w.Obj(o)
	if obj.Loc.Kind != LocCarried {
		panic(fmt.Sprintf("SYSERR: obj_from_char: object %s is not carried", o))
	}
	c := w.Ch(obj.Loc.Char)
	c.Carrying, _ = removeID(c.Carrying, o)
	c.CarryWeight -= obj.Weight
	c.CarryItems--
	if !c.IsNPC() {
		c.PlrFlags.Set(PlrCrash)
	}
	obj.Loc = Location{}
}

func armorApply(obj *Object, pos WearPos) int {
	if obj.Type != ItemArmor {
		return 0
	}
	switch pos {
	case WearBody:
		return 3 * obj.Values[0]
	case WearHead, WearLegs:
		return 2 * obj.Values[0]
	default:
		return obj.Values[0]
	}
}

// EquipChar wears a limbo object in slot pos. It refuses and returns false
// when the slot is taken.
func (w *World) EquipChar(o ObjID, ch CharID, pos WearPos) bool {
	if pos < 0 || pos >= NumWears {
		panic(fmt.Sprintf("SYSERR: equip_char: bad position %d", pos))
	}
	c := w.Ch(ch)
	if !c.Equipment[pos].IsZero() {
		w.Logger.Warn("SYSERR: char is already equipped",
			zap.String("name", c.Name), zap.Int("pos", int(pos)))
		return false
	}
	obj := w.requireNowhere(o, "equip_char")
	c.Equipment[pos] = o
	obj.Loc = WornBy(ch, pos)
	c.Points.Armor -= armorApply(obj, pos)
	if pos == WearLight && w.isLight(o) && w.ValidRoom(c.InRoom) {
		w.Rooms[c.InRoom].Light++
	}
	for _, a := range obj.Affects {
		affectModify(c, a.Location, a.Modifier, 0, true)
	}
	return true
}

// UnequipChar removes the object in slot pos to limbo and returns it, or
// the zero handle when the slot is empty.
func (w *World) UnequipChar(ch CharID, pos WearPos) ObjID {
	c := w.Ch(ch)
	o := c.Equipment[pos]
	if o.IsZero() {
		return o
	}
	obj := w.Obj(o)
	c.Points.Armor += armorApply(obj, pos)
	if pos == WearLight && w.isLight(o) && w.ValidRoom(c.InRoom) {
		w.Rooms[c.InRoom].Light--
	}
	for _, a := range obj.Affects {
		affectModify(c, a.Location, a.Modifier, 0, false)
	}
	c.Equipment[pos] = ObjID{}
	obj.Loc = Location{}
	return o
}

// ObjToObj puts a limbo object inside a container. The weight is added to
// every enclosing container and to the character at the top of the chain.
func (w *World) ObjToObj(o, container ObjID) {
	if o == container {
		panic("SYSERR: obj_to_obj: object into itself")
	}
	obj := w.requireNowhere(o, "obj_to_obj")
	cont := w.Obj(container)
	cont.Contains = append([]ObjID{o}, cont.Contains...)
	obj.Loc = InObj(container)
	w.adjustContainerWeight(container, obj.Weight)
}

// ObjFromObj takes an object out of its container to limbo.
func (w *World) ObjFromObj(o ObjID) {
	obj := w.Obj(o)
	if obj.Loc.Kind != LocContainer {
		panic(fmt.Sprintf("SYSERR: obj_from_obj: object %s is not in a container", o))
	}
	container := obj.Loc.Obj
	cont := w.Obj(container)
	cont.Contains, _ = removeID(cont.Contains, o)
	obj.Loc = Location{}
	w.adjustContainerWeight(container, -obj.Weight)
}

func (w *World) adjustContainerWeight(container ObjID, delta int) {
	cur := container
	for {
		c := w.Obj(cur)
		c.Weight += delta
		switch c.Loc.Kind {
		case LocContainer:
			cur = c.Loc.Obj
			continue
		case LocCarried:
			w.Ch(c.Loc.Char).CarryWeight += delta
		case LocWorn:
			w.Ch(c.Loc.Char).CarryWeight += delta
		}
		return
	}
}

// ObjFromAnywhere returns an object to limbo from whatever holds it.
func (w *World) ObjFromAnywhere(o ObjID) {
	obj := w.Obj(o)
	switch obj.Loc.Kind {
	case LocRoom:
		w.ObjFromRoom(o)
	case LocCarried:
		w.ObjFromChar(o)
	case LocWorn:
		w.UnequipChar(obj.Loc.Char, obj.Loc.Slot)
	case LocContainer:
		w.ObjFromObj(o)
	}
}

// ExtractObj removes an object and everything inside it from the game.
func (w *World) ExtractObj(o ObjID) {
	w.ObjFromAnywhere(o)
	obj := w.Obj(o)
	for _, inner := range slices.Clone(obj.Contains) {
		w.ExtractObj(inner)
	}
	if obj.ProtoRnum >= 0 && obj.ProtoRnum < len(w.ObjProtos) {
		w.ObjProtos[obj.ProtoRnum].Count--
	}
	w.Objs.Take(o)
}

// StopFighting ends ch's fight.
func (w *World) StopFighting(ch CharID) {
	c := w.Ch(ch)
	c.Fighting = CharID{}
	if c.Position == PosFighting {
		c.Position = PosStanding
	}
}

// CircleFollow reports whether ch following victim would close a loop.
func (w *World) CircleFollow(ch, victim CharID) bool {
	for k := victim; !k.IsZero(); {
		if k == ch {
			return true
		}
		kc, ok := w.Chars.Lookup(k)
		if !ok {
			return false
		}
		k = kc.Master
	}
	return false
}

// AddFollower makes ch follow leader.
func (w *World) AddFollower(ch, leader CharID) error {
	if ch == leader {
		return ErrSelfFollow
	}
	c := w.Ch(ch)
	if !c.Master.IsZero() {
		return ErrAlreadyLeader
	}
	if w.CircleFollow(ch, leader) {
		return ErrFollowLoop
	}
	c.Master = leader
	l := w.Ch(leader)
	l.Followers = append([]CharID{ch}, l.Followers...)
	return nil
}

// StopFollower detaches ch from its leader. OnStopFollow is called first
// so the caller can announce it.
func (w *World) StopFollower(ch CharID) {
	c := w.Ch(ch)
	if c.Master.IsZero() {
		return
	}
	leader := c.Master
	if w.OnStopFollow != nil {
		w.OnStopFollow(ch, leader)
	}
	if l, ok := w.Chars.Lookup(leader); ok {
		l.Followers, _ = removeID(l.Followers, ch)
	}
	c = w.Ch(ch)
	c.Master = CharID{}
	c.AffFlags.Clear(AffCharm | AffGroup)
}

// DieFollower stops ch from following and releases its followers.
func (w *World) DieFollower(ch CharID) {
	w.StopFollower(ch)
	for _, f := range slices.Clone(w.Ch(ch).Followers) {
		w.StopFollower(f)
	}
}

// ExtractChar marks ch for removal at the end-of-tick sweep. The character
// stays linked and resolvable until then.
func (w *World) ExtractChar(ch CharID) {
	c := w.Ch(ch)
	if w.PendingExtraction(ch) {
		return
	}
	if c.IsNPC() {
		c.MobFlags.Set(MobNotDeadYet)
	} else {
		c.PlrFlags.Set(PlrNotDeadYet)
	}
	w.pending = append(w.pending, ch)
}

// PendingExtraction reports whether ch is marked for extraction.
func (w *World) PendingExtraction(ch CharID) bool {
	c, ok := w.Chars.Lookup(ch)
	if !ok {
		return true
	}
	if c.IsNPC() {
		return c.MobFlags.Has(MobNotDeadYet)
	}
	return c.PlrFlags.Has(PlrNotDeadYet)
}

// ExtractHooks let the game act on characters during the sweep.
type ExtractHooks struct {
	// Before runs while the character is still fully linked.
	Before func(CharID)
	// Detached runs once the character has left the world. A player that
	// still has a descriptor is kept in the store for it.
	Detached func(CharID)
}

// ExtractPendingChars sweeps every character marked by ExtractChar and
// returns how many were removed.
func (w *World) ExtractPendingChars(h ExtractHooks) int {
	pending := w.pending
	w.pending = nil
	n := 0
	for _, id := range pending {
		if !w.Chars.Valid(id) {
			continue
		}
		if h.Before != nil {
			h.Before(id)
		}
		w.extractCharFinal(id, h.Detached)
		n++
	}
	return n
}

func (w *World) extractCharFinal(ch CharID, detached func(CharID)) {
	c := w.Ch(ch)
	if !w.ValidRoom(c.InRoom) {
		panic(fmt.Sprintf("SYSERR: NOWHERE extracting char %s", c.Name))
	}
	room := c.InRoom

	if len(c.Followers) > 0 || !c.Master.IsZero() {
		w.DieFollower(ch)
	}

	for _, o := range slices.Clone(w.Ch(ch).Carrying) {
		w.ObjFromChar(o)
		w.ObjToRoom(o, room)
	}
	for pos := range NumWears {
		if o := w.UnequipChar(ch, pos); !o.IsZero() {
			w.ObjToRoom(o, room)
		}
	}

	for _, other := range w.CharList {
		oc, ok := w.Chars.Lookup(other)
		if !ok || other == ch {
			continue
		}
		if oc.Fighting == ch {
			w.StopFighting(other)
		}
		if oc.Hunting == ch {
			oc.Hunting = CharID{}
		}
	}

	w.CharFromRoom(ch)
	w.CharList, _ = removeID(w.CharList, ch)

	c = w.Ch(ch)
	c.MobFlags.Clear(MobNotDeadYet)
	c.PlrFlags.Clear(PlrNotDeadYet)
	if c.IsNPC() && c.ProtoRnum >= 0 && c.ProtoRnum < len(w.MobProtos) {
		w.MobProtos[c.ProtoRnum].Count--
	}

	if detached != nil {
		detached(ch)
	}

	c = w.Ch(ch)
	if c.IsNPC() || c.Desc.IsZero() {
		if !c.Desc.IsZero() {
			if d, ok := w.Descs.Lookup(c.Desc); ok && d.Character == ch {
				d.Character = CharID{}
			}
		}
		w.Chars.Take(ch)
	}
}

// FreeChar drops a character that is not in the world (a login that never
// entered the game, or a player back at the menu).
//
// Precondition: ch is in no room and carries nothing.
func (w *World) FreeChar(ch CharID) {
	c := w.Ch(ch)
	if c.InRoom != Nowhere {
		panic(fmt.Sprintf("SYSERR: free_char: %s is still in room %d", c.Name, c.InRoom))
	}
	w.CharList, _ = removeID(w.CharList, ch)
	w.Chars.Take(ch)
}
