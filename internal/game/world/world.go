package world

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/depot"
	"github.com/cory-johannsen/circlemud/internal/game/dice"
)

// Sun states.
const (
	SunDark = iota
	SunRise
	SunLight
	SunSet
)

// Sky conditions.
const (
	SkyCloudless = iota
	SkyCloudy
	SkyRaining
	SkyLightning
)

// Weather is the global weather state.
type Weather struct {
	Pressure int
	Change   int
	Sky      int
	Sunlight int
}

// MudTime is the in-game calendar.
type MudTime struct {
	Hours int
	Day   int
	Month int
	Year  int
}

// World owns all game state. It is not safe for concurrent use; only the
// game loop goroutine touches it.
type World struct {
	Rooms     []Room
	Zones     []Zone
	MobProtos []MobProto
	ObjProtos []ObjProto

	roomIdx map[Vnum]Rnum
	mobIdx  map[Vnum]int
	objIdx  map[Vnum]int

	Chars *depot.Depot[Character]
	Objs  *depot.Depot[Object]
	Texts *depot.Depot[Text]
	Descs *depot.Depot[Descriptor]

	// CharList is every character in the game, newest first.
	CharList []CharID
	// DescList is every connection, in connect order.
	DescList []DescID

	pending []CharID

	visitGen uint32
	visited  []uint32

	Time    MudTime
	Weather Weather

	// OnStopFollow announces a follower leaving its leader.
	OnStopFollow func(follower, leader CharID)

	Dice   *dice.Roller
	Logger *zap.Logger
}

// New returns an empty world. Rooms, zones and templates are added with
// Build.
func New(roller *dice.Roller, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	if roller == nil {
		roller = dice.NewRoller(dice.NewCryptoSource(), logger)
	}
	return &World{
		roomIdx: map[Vnum]Rnum{},
		mobIdx:  map[Vnum]int{},
		objIdx:  map[Vnum]int{},
		Chars:   depot.New[Character](),
		Objs:    depot.New[Object](),
		Texts:   depot.New[Text](),
		Descs:   depot.New[Descriptor](),
		Dice:    roller,
		Logger:  logger,
		Weather: Weather{Pressure: 1000, Sunlight: SunLight},
	}
}

// RealRoom maps a room vnum to its rnum, or Nowhere.
func (w *World) RealRoom(v Vnum) Rnum {
	if r, ok := w.roomIdx[v]; ok {
		return r
	}
	return Nowhere
}

// RealMobile maps a mobile vnum to its template index, or -1.
func (w *World) RealMobile(v Vnum) int {
	if i, ok := w.mobIdx[v]; ok {
		return i
	}
	return -1
}

// RealObject maps an object vnum to its template index, or -1.
func (w *World) RealObject(v Vnum) int {
	if i, ok := w.objIdx[v]; ok {
		return i
	}
	return -1
}

// ValidRoom reports whether r indexes a room.
func (w *World) ValidRoom(r Rnum) bool { return r >= 0 && int(r) < len(w.Rooms) }

// Room returns the room at r.
//
// Precondition: w.ValidRoom(r).
func (w *World) Room(r Rnum) *Room {
	if !w.ValidRoom(r) {
		panic(fmt.Sprintf("GURU MEDITATION: invalid room rnum %d", r))
	}
	return &w.Rooms[r]
}

// Ch resolves a character handle, panicking when it is stale.
func (w *World) Ch(id CharID) *Character { return w.Chars.GetMut(id) }

// Obj resolves an object handle, panicking when it is stale.
func (w *World) Obj(id ObjID) *Object { return w.Objs.GetMut(id) }

// Txt resolves a text handle, panicking when it is stale.
func (w *World) Txt(id TextID) *Text { return w.Texts.GetMut(id) }

// Desc resolves a descriptor handle, panicking when it is stale.
func (w *World) Desc(id DescID) *Descriptor { return w.Descs.GetMut(id) }

// Exit returns the exit of ch's room in dir, or nil.
func (w *World) Exit(ch CharID, dir Direction) *Exit {
	c := w.Ch(ch)
	if !w.ValidRoom(c.InRoom) || !dir.Valid() {
		return nil
	}
	return w.Rooms[c.InRoom].Exits[dir]
}

// AddCharacter stores c and links it into the character list.
func (w *World) AddCharacter(c Character) CharID {
	id := w.Chars.Push(c)
	w.CharList = append([]CharID{id}, w.CharList...)
	return id
}

// StoreCharacter stores c without linking it into the character list, as
// for a player still at the login prompts.
func (w *World) StoreCharacter(c Character) CharID { return w.Chars.Push(c) }

// LinkCharacter adds a stored character to the character list.
func (w *World) LinkCharacter(id CharID) {
	if !slices.Contains(w.CharList, id) {
		w.CharList = append([]CharID{id}, w.CharList...)
	}
}

// AddDescriptor stores d and appends it to the descriptor list.
func (w *World) AddDescriptor(d Descriptor) DescID {
	id := w.Descs.Push(d)
	w.DescList = append(w.DescList, id)
	return id
}

// RemoveDescriptor drops a descriptor from the list and the store.
//
// Precondition: the descriptor is unlinked from its characters and snoop
// partners.
func (w *World) RemoveDescriptor(id DescID) Descriptor {
	w.DescList = slices.DeleteFunc(w.DescList, func(d DescID) bool { return d == id })
	return w.Descs.Take(id)
}

// NewText stores an empty text buffer limited to maxLen bytes.
func (w *World) NewText(body string, maxLen int) TextID {
	return w.Texts.Push(Text{Body: body, MaxLen: maxLen})
}

// Playing returns snapshots of descriptors that are in the game.
func (w *World) Playing() []DescID {
	var out []DescID
	for _, id := range w.DescList {
		if d, ok := w.Descs.Lookup(id); ok && d.Playing() && !d.Character.IsZero() {
			out = append(out, id)
		}
	}
	return out
}

// RoomVnum returns the vnum of r, or NoVnum.
func (w *World) RoomVnum(r Rnum) Vnum {
	if !w.ValidRoom(r) {
		return NoVnum
	}
	return w.Rooms[r].Vnum
}

// ZoneOf returns the zone index of room r, or -1.
func (w *World) ZoneOf(r Rnum) int {
	if !w.ValidRoom(r) {
		return -1
	}
	return w.Rooms[r].Zone
}

// IsOutdoors reports whether a room is open to the weather.
func (w *World) IsOutdoors(r Rnum) bool {
	room := w.Room(r)
	return !room.Flags.Has(RoomIndoors) && room.Sector != SectInside
}

func removeID[T any](list []depot.Handle[T], id depot.Handle[T]) ([]depot.Handle[T], bool) {
	i := slices.Index(list, id)
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}
