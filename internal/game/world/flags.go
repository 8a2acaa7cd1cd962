package world

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flags is a set of bit flags of one kind.
type Flags[F ~uint64] struct {
	bits F
}

// FlagsOf builds a set from the given flags.
func FlagsOf[F ~uint64](fs ...F) Flags[F] {
	var s Flags[F]
	for _, f := range fs {
		s.bits |= f
	}
	return s
}

// Has reports whether every bit of f is set.
func (s Flags[F]) Has(f F) bool { return f != 0 && s.bits&f == f }

// Any reports whether any bit of f is set.
func (s Flags[F]) Any(f F) bool { return s.bits&f != 0 }

// Set turns f on.
func (s *Flags[F]) Set(f F) { s.bits |= f }

// Clear turns f off.
func (s *Flags[F]) Clear(f F) { s.bits &^= f }

// Toggle flips f and returns whether it is now on.
func (s *Flags[F]) Toggle(f F) bool {
	s.bits ^= f
	return s.Has(f)
}

// Bits returns the raw bit pattern, for persistence.
func (s Flags[F]) Bits() F { return s.bits }

// SetBits replaces the raw bit pattern.
func (s *Flags[F]) SetBits(b F) { s.bits = b }

// Names renders the set bits using names indexed by bit position, the way
// sprintbit does. An empty set renders as "NOBITS".
func (s Flags[F]) Names(names []string) string {
	var parts []string
	for b := uint64(s.bits); b != 0; b &= b - 1 {
		i := bits.TrailingZeros64(b)
		if i < len(names) {
			parts = append(parts, names[i])
		} else {
			parts = append(parts, "UNDEFINED")
		}
	}
	if len(parts) == 0 {
		return "NOBITS"
	}
	return strings.Join(parts, " ")
}

// ParseFlags resolves flag names (case-insensitive) against names indexed
// by bit position.
func ParseFlags[F ~uint64](in []string, names []string) (Flags[F], error) {
	var s Flags[F]
	for _, n := range in {
		found := false
		for i, name := range names {
			if strings.EqualFold(n, name) {
				s.bits |= F(1) << i
				found = true
				break
			}
		}
		if !found {
			return s, fmt.Errorf("unknown flag %q", n)
		}
	}
	return s, nil
}

// RoomFlag is a room attribute bit.
type RoomFlag uint64

// Room flags.
const (
	RoomDark RoomFlag = 1 << iota
	RoomDeath
	RoomNoMob
	RoomIndoors
	RoomPeaceful
	RoomSoundproof
	RoomNoTrack
	RoomNoMagic
	RoomTunnel
	RoomPrivate
	RoomGodRoom
	RoomHouse
)

// RoomFlagNames is indexed by bit position.
var RoomFlagNames = []string{"dark", "death", "nomob", "indoors", "peaceful", "soundproof",
	"notrack", "nomagic", "tunnel", "private", "godroom", "house"}

// ExitFlag is a door state bit.
type ExitFlag uint64

// Exit flags.
const (
	ExIsDoor ExitFlag = 1 << iota
	ExClosed
	ExLocked
	ExPickproof
)

// ExitFlagNames is indexed by bit position.
var ExitFlagNames = []string{"door", "closed", "locked", "pickproof"}

// MobFlag is an NPC attribute bit.
type MobFlag uint64

// Mob flags.
const (
	MobSpec MobFlag = 1 << iota
	MobSentinel
	MobScavenger
	MobIsNPC
	MobAware
	MobAggressive
	MobStayZone
	MobWimpy
	MobMemory
	MobHelper
	MobNoCharm
	MobNoSummon
	MobNoSleep
	MobNoBash
	MobNoBlind
	MobNotDeadYet
)

// MobFlagNames is indexed by bit position.
var MobFlagNames = []string{"spec", "sentinel", "scavenger", "isnpc", "aware", "aggressive",
	"stay_zone", "wimpy", "memory", "helper", "nocharm", "nosummon", "nosleep", "nobash",
	"noblind", "notdeadyet"}

// PlayerFlag is a player account bit.
type PlayerFlag uint64

// Player flags.
const (
	PlrKiller PlayerFlag = 1 << iota
	PlrThief
	PlrFrozen
	PlrDontSet
	PlrWriting
	PlrMailing
	PlrCrash
	PlrSiteOK
	PlrNoShout
	PlrNoTitle
	PlrDeleted
	PlrLoadRoom
	PlrNoWizlist
	PlrNoDelete
	PlrInvStart
	PlrCryo
	PlrNotDeadYet
)

// PlayerFlagNames is indexed by bit position.
var PlayerFlagNames = []string{"killer", "thief", "frozen", "dontset", "writing", "mailing",
	"csh", "siteok", "noshout", "notitle", "deleted", "loadrm", "no_wiz", "no_del", "invst",
	"cryo", "notdeadyet"}

// PrefFlag is a player preference bit.
type PrefFlag uint64

// Preference flags.
const (
	PrfBrief PrefFlag = 1 << iota
	PrfCompact
	PrfDeaf
	PrfNoTell
	PrfDispHP
	PrfDispMana
	PrfDispMove
	PrfAutoExit
	PrfNoHassle
	PrfQuest
	PrfSummonable
	PrfNoRepeat
	PrfHolylight
	PrfColor1
	PrfColor2
	PrfNoWiz
	PrfLog1
	PrfLog2
	PrfNoAuct
	PrfNoGoss
	PrfNoGratz
	PrfRoomFlags
)

// PrefFlagNames is indexed by bit position.
var PrefFlagNames = []string{"brief", "compact", "deaf", "notell", "disphp", "dispmana",
	"dispmove", "autoexit", "nohassle", "quest", "summonable", "norepeat", "holylight",
	"color1", "color2", "nowiz", "log1", "log2", "noauct", "nogoss", "nogratz", "roomflags"}

// AffectFlag is a magical affection bit.
type AffectFlag uint64

// Affection flags.
const (
	AffBlind AffectFlag = 1 << iota
	AffInvisible
	AffDetectAlign
	AffDetectInvis
	AffDetectMagic
	AffSenseLife
	AffWaterwalk
	AffSanctuary
	AffGroup
	AffCurse
	AffInfravision
	AffPoison
	AffProtectEvil
	AffProtectGood
	AffSleep
	AffNoTrack
	AffSneak
	AffHide
	AffCharm
)

// AffectFlagNames is indexed by bit position.
var AffectFlagNames = []string{"blind", "invis", "det_align", "det_invis", "det_magic",
	"sense_life", "waterwalk", "sanct", "group", "curse", "infra", "poison", "prot_evil",
	"prot_good", "sleep", "no_track", "sneak", "hide", "charm"}

// ItemFlag is an object extra bit.
type ItemFlag uint64

// Item extra flags.
const (
	ItemGlow ItemFlag = 1 << iota
	ItemHum
	ItemNoRent
	ItemNoDonate
	ItemNoInvis
	ItemInvisible
	ItemMagic
	ItemNoDrop
	ItemBless
	ItemAntiGood
	ItemAntiEvil
	ItemAntiNeutral
	ItemAntiMagicUser
	ItemAntiCleric
	ItemAntiThief
	ItemAntiWarrior
	ItemNoSell
)

// ItemFlagNames is indexed by bit position.
var ItemFlagNames = []string{"glow", "hum", "norent", "nodonate", "noinvis", "invisible",
	"magic", "nodrop", "bless", "anti_good", "anti_evil", "anti_neutral", "anti_mage",
	"anti_cleric", "anti_thief", "anti_warrior", "nosell"}

// WearFlag marks where an object can be worn.
type WearFlag uint64

// Wear flags.
const (
	ItemWearTake WearFlag = 1 << iota
	ItemWearFinger
	ItemWearNeck
	ItemWearBody
	ItemWearHead
	ItemWearLegs
	ItemWearFeet
	ItemWearHands
	ItemWearArms
	ItemWearShield
	ItemWearAbout
	ItemWearWaist
	ItemWearWrist
	ItemWearWield
	ItemWearHold
)

// WearFlagNames is indexed by bit position.
var WearFlagNames = []string{"take", "finger", "neck", "body", "head", "legs", "feet",
	"hands", "arms", "shield", "about", "waist", "wrist", "wield", "hold"}
