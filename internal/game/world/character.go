package world

import (
	"time"

	"github.com/cory-johannsen/circlemud/internal/game/command"
)

// Position is a character's posture, totally ordered from Dead to
// Standing. Commands are gated on a minimum position.
type Position int

// Positions.
const (
	PosDead Position = iota
	PosMortallyW
	PosIncap
	PosStunned
	PosSleeping
	PosResting
	PosSitting
	PosFighting
	PosStanding
)

// PositionNames is indexed by Position.
var PositionNames = []string{"Dead", "Mortally wounded", "Incapacitated", "Stunned",
	"Sleeping", "Resting", "Sitting", "Fighting", "Standing"}

func (p Position) String() string {
	if p < 0 || int(p) >= len(PositionNames) {
		return "UNDEFINED"
	}
	return PositionNames[p]
}

// Sex of a character.
type Sex int

// Sexes.
const (
	SexNeutral Sex = iota
	SexMale
	SexFemale
)

// SexNames is indexed by Sex.
var SexNames = []string{"neutral", "male", "female"}

// Class of a player character.
type Class int

// Classes. ClassUndefined marks NPCs and characters mid-creation.
const (
	ClassUndefined Class = iota - 1
	ClassMagicUser
	ClassCleric
	ClassThief
	ClassWarrior
	NumClasses = 4
)

var classNames = [NumClasses]string{"Magic User", "Cleric", "Thief", "Warrior"}
var classAbbrevs = [NumClasses]string{"Mu", "Cl", "Th", "Wa"}

func (c Class) String() string {
	if c < 0 || c >= NumClasses {
		return "Undefined"
	}
	return classNames[c]
}

// Abbrev returns the two-letter class abbreviation used by who.
func (c Class) Abbrev() string {
	if c < 0 || c >= NumClasses {
		return "--"
	}
	return classAbbrevs[c]
}

// ClassMenu is shown during character creation.
const ClassMenu = "\r\n" +
	"Select a class:\r\n" +
	"  [C]leric\r\n" +
	"  [T]hief\r\n" +
	"  [W]arrior\r\n" +
	"  [M]agic-user\r\n"

// ParseClass maps a class menu key to a class.
func ParseClass(key byte) Class {
	switch key | 0x20 {
	case 'm':
		return ClassMagicUser
	case 'c':
		return ClassCleric
	case 't':
		return ClassThief
	case 'w':
		return ClassWarrior
	}
	return ClassUndefined
}

// Levels.
const (
	LvlImpl   = 34
	LvlGrGod  = 33
	LvlGod    = 32
	LvlImmort = 31
	LvlFreeze = LvlGrGod
)

// Conditions.
const (
	CondDrunk = iota
	CondFull
	CondThirst
)

// Abilities are the six rolled attributes.
type Abilities struct {
	Str, Int, Wis, Dex, Con, Cha int
}

// Points are the character's resource pools and combat modifiers.
type Points struct {
	Hit, MaxHit   int
	Mana, MaxMana int
	Move, MaxMove int
	Gold          int
	BankGold      int
	Exp           int
	Armor         int
	Hitroll       int
	Damroll       int
}

// ApplyLoc is the stat an affect or object modifier changes.
type ApplyLoc int

// Apply locations.
const (
	ApplyNone ApplyLoc = iota
	ApplyStr
	ApplyDex
	ApplyInt
	ApplyWis
	ApplyCon
	ApplyCha
	ApplyMaxMana
	ApplyMaxHit
	ApplyMaxMove
	ApplyAC
	ApplyHitroll
	ApplyDamroll
)

// Affect is a timed modifier on a character.
type Affect struct {
	Type     string
	Duration int // game hours; negative is permanent
	Modifier int
	Location ApplyLoc
	Bits     AffectFlag
}

// PlayerData holds the fields only player characters carry.
type PlayerData struct {
	Password    string
	BadPws      int
	Host        string
	Birth       time.Time
	LastLogon   time.Time
	Played      time.Duration
	InvisLevel  int
	FreezeLevel int
	LoadRoom    Vnum
	Conditions  [3]int
	PoofIn      string
	PoofOut     string
	LastTell    int64
	Aliases     command.Aliases
	Practices   int
}

// Character is a player or non-player character.
type Character struct {
	Name        string // player name, or the keyword list of an NPC
	ShortDescr  string
	LongDescr   string
	Description string
	Title       string
	Sex         Sex
	Class       Class
	Level       int
	IDNum       int64
	Alignment   int
	Abilities   Abilities
	Points      Points

	Position   Position
	DefaultPos Position
	InRoom     Rnum
	WasInRoom  Rnum

	Carrying    []ObjID
	Equipment   [NumWears]ObjID
	CarryWeight int
	CarryItems  int

	Affects   []Affect
	Master    CharID
	Followers []CharID
	Fighting  CharID
	Hunting   CharID
	Desc      DescID

	MobFlags  Flags[MobFlag]
	PlrFlags  Flags[PlayerFlag]
	PrefFlags Flags[PrefFlag]
	AffFlags  Flags[AffectFlag]

	Wait      int
	Timer     int
	ProtoRnum int
	SpecProc  string

	Player *PlayerData
}

// NewPlayer returns a blank player character.
func NewPlayer(name string) Character {
	return Character{
		Name:      name,
		Class:     ClassUndefined,
		Position:  PosStanding,
		InRoom:    Nowhere,
		WasInRoom: Nowhere,
		ProtoRnum: -1,
		Player:    &PlayerData{LoadRoom: NoVnum},
	}
}

// IsNPC reports whether the character is a mobile.
func (c *Character) IsNPC() bool { return c.MobFlags.Has(MobIsNPC) }

// DisplayName is the name others see: the short description of an NPC or
// the name of a player.
func (c *Character) DisplayName() string {
	if c.IsNPC() {
		return c.ShortDescr
	}
	return c.Name
}

// Awake reports whether the character is above sleeping.
func (c *Character) Awake() bool { return c.Position > PosSleeping }

// IsImmortal reports whether the character is at or above immortal level.
func (c *Character) IsImmortal() bool { return !c.IsNPC() && c.Level >= LvlImmort }

// InvisLevel returns the wizinvis level of a player, 0 for NPCs.
func (c *Character) InvisLevel() int {
	if c.Player == nil {
		return 0
	}
	return c.Player.InvisLevel
}

// HisHer returns "his", "her" or "its".
func (c *Character) HisHer() string {
	return [...]string{"its", "his", "her"}[c.Sex]
}

// HeShe returns "he", "she" or "it".
func (c *Character) HeShe() string {
	return [...]string{"it", "he", "she"}[c.Sex]
}

// HimHer returns "him", "her" or "it".
func (c *Character) HimHer() string {
	return [...]string{"it", "him", "her"}[c.Sex]
}

// CanCarryWeight is the weight limit for inventory and equipment.
func (c *Character) CanCarryWeight() int { return c.Abilities.Str*15 + 25 }

// CanCarryItems is the item count limit for inventory.
func (c *Character) CanCarryItems() int { return 5 + c.Abilities.Dex/2 + c.Level/2 }
