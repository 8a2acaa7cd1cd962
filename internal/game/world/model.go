// Package world holds the game state: rooms and zones, characters, objects,
// text buffers and descriptors, plus every operation that links them
// together. Entities refer to each other only through depot handles.
package world

import (
	"fmt"

	"github.com/cory-johannsen/circlemud/internal/depot"
	"github.com/cory-johannsen/circlemud/internal/game/command"
)

// Vnum is the author-facing number of a room, mobile or object template.
type Vnum int32

// Rnum is the dense index of a room in World.Rooms.
type Rnum int32

// Sentinels for absent numbers.
const (
	NoVnum  Vnum = -1
	Nowhere Rnum = -1
)

// Entity handles.
type (
	CharID = depot.Handle[Character]
	ObjID  = depot.Handle[Object]
	TextID = depot.Handle[Text]
	DescID = depot.Handle[Descriptor]
)

// Sector is the terrain type of a room.
type Sector int

// Sector types.
const (
	SectInside Sector = iota
	SectCity
	SectField
	SectForest
	SectHills
	SectMountain
	SectWaterSwim
	SectWaterNoSwim
	SectUnderwater
	SectFlying
)

// SectorNames is indexed by Sector.
var SectorNames = []string{"inside", "city", "field", "forest", "hills", "mountain",
	"water_swim", "water_noswim", "underwater", "flying"}

// MovementLoss is the move point cost of entering each sector.
var MovementLoss = []int{1, 1, 2, 3, 4, 6, 4, 1, 1, 1}

// ExtraDesc is a keyword-addressed description on a room or object.
type ExtraDesc struct {
	Keywords    string
	Description string
}

// FindExtraDesc returns the description whose keywords include word.
func FindExtraDesc(word string, descs []ExtraDesc) (string, bool) {
	for _, d := range descs {
		if command.IsName(word, d.Keywords) {
			return d.Description, true
		}
	}
	return "", false
}

// Exit is one directional passage out of a room.
type Exit struct {
	Description string
	Keyword     string
	Info        Flags[ExitFlag]
	Key         Vnum
	ToRoom      Rnum
}

// IsDoor reports whether the exit can be opened and closed.
func (e *Exit) IsDoor() bool { return e.Info.Has(ExIsDoor) }

// IsClosed reports whether the door is shut.
func (e *Exit) IsClosed() bool { return e.Info.Has(ExClosed) }

// IsLocked reports whether the door is locked.
func (e *Exit) IsLocked() bool { return e.Info.Has(ExLocked) }

// Room is a location. Rooms live in World.Rooms for the life of the world
// and are addressed by Rnum.
type Room struct {
	Vnum        Vnum
	Zone        int
	Name        string
	Description string
	ExtraDescs  []ExtraDesc
	Sector      Sector
	Flags       Flags[RoomFlag]
	Exits       [NumDirs]*Exit
	Light       int
	SpecProc    string

	People   []CharID
	Contents []ObjID
}

// ResetMode controls when a zone is repopulated.
type ResetMode int

// Zone reset modes.
const (
	ResetNever ResetMode = iota
	ResetWhenEmpty
	ResetAlways
)

// ResetCmd is one zone reset instruction with its arguments already
// converted to rnums.
type ResetCmd struct {
	Command byte // M O G E P D R
	IfFlag  bool
	Arg1    int
	Arg2    int
	Arg3    int
	Line    int
}

// Zone is a group of rooms reset together.
type Zone struct {
	Vnum      Vnum
	Name      string
	Bottom    Vnum
	Top       Vnum
	Lifespan  int
	Age       int
	ResetMode ResetMode
	Cmds      []ResetCmd
}

// Validate checks zone invariants that do not depend on other zones.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (z *Zone) Validate() error {
	if z.Name == "" {
		return fmt.Errorf("zone %d: name must not be empty", z.Vnum)
	}
	if z.Top < z.Bottom {
		return fmt.Errorf("zone %d: top %d below bottom %d", z.Vnum, z.Top, z.Bottom)
	}
	if z.Lifespan < 0 {
		return fmt.Errorf("zone %d: lifespan must not be negative", z.Vnum)
	}
	return nil
}

// Contains reports whether vnum falls in the zone's range.
func (z *Zone) Contains(v Vnum) bool { return v >= z.Bottom && v <= z.Top }
