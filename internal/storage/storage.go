// Package storage defines the records the game persists and the sentinel
// errors shared by every backend. Backends live in the postgres and bolt
// subpackages; the game converts between these records and live world
// entities.
package storage

import (
	"errors"
	"time"
)

// Sentinel errors returned by every backend.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player name already taken")
	ErrBoardFull      = errors.New("board is full")
	ErrNoSuchMessage  = errors.New("no such message")
	ErrBanExists      = errors.New("site already banned")
	ErrBanNotFound    = errors.New("site not banned")
)

// MaxBoardMessages caps the number of posts on one board.
const MaxBoardMessages = 60

// AffectRecord is a saved timed affect.
type AffectRecord struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Modifier int    `json:"modifier"`
	Location int    `json:"location"`
	Bits     uint64 `json:"bits"`
}

// PlayerRecord is everything saved for a player character.
type PlayerRecord struct {
	IDNum       int64         `json:"idnum"`
	Name        string        `json:"name"`
	Password    string        `json:"password"`
	Level       int           `json:"level"`
	Sex         int           `json:"sex"`
	Class       int           `json:"class"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Host        string        `json:"host"`
	Birth       time.Time     `json:"birth"`
	LastLogon   time.Time     `json:"last_logon"`
	Played      time.Duration `json:"played"`
	BadPws      int           `json:"bad_pws"`
	LoadRoom    int32         `json:"load_room"`
	InvisLevel  int           `json:"invis_level"`
	FreezeLevel int           `json:"freeze_level"`
	Practices   int           `json:"practices"`
	Alignment   int           `json:"alignment"`
	PoofIn      string        `json:"poof_in"`
	PoofOut     string        `json:"poof_out"`

	PlrFlags  uint64 `json:"plr_flags"`
	PrefFlags uint64 `json:"pref_flags"`
	AffFlags  uint64 `json:"aff_flags"`

	Abilities  [6]int `json:"abilities"`
	Conditions [3]int `json:"conditions"`

	Hit      int `json:"hit"`
	MaxHit   int `json:"max_hit"`
	Mana     int `json:"mana"`
	MaxMana  int `json:"max_mana"`
	Move     int `json:"move"`
	MaxMove  int `json:"max_move"`
	Gold     int `json:"gold"`
	BankGold int `json:"bank_gold"`
	Exp      int `json:"exp"`
	Armor    int `json:"armor"`
	Hitroll  int `json:"hitroll"`
	Damroll  int `json:"damroll"`

	Affects []AffectRecord `json:"affects,omitempty"`
}

// Deleted reports whether the record carries the self-delete flag.
// Bit 10 is PLR_DELETED.
func (r *PlayerRecord) Deleted() bool { return r.PlrFlags&(1<<10) != 0 }

// PlayerSummary is a row of the player index.
type PlayerSummary struct {
	IDNum     int64
	Name      string
	Level     int
	LastLogon time.Time
	Deleted   bool
}

// RentItem is one object saved with a player. Worn is the equipment slot,
// or -1 for inventory. Contents nest for containers.
type RentItem struct {
	Vnum       int32      `json:"vnum"`
	Worn       int        `json:"worn"`
	Values     [4]int     `json:"values"`
	ExtraFlags uint64     `json:"extra_flags"`
	Weight     int        `json:"weight"`
	Timer      int        `json:"timer"`
	Contents   []RentItem `json:"contents,omitempty"`
}

// BoardMessage is a post on a bulletin board.
type BoardMessage struct {
	Author  string
	Level   int
	Heading string
	Body    string
	Posted  time.Time
}

// MailMessage is a letter waiting at the post office.
type MailMessage struct {
	From int64
	To   int64
	Sent time.Time
	Body string
}

// BanType is the severity of a site ban. Larger values are stricter.
type BanType int

// Ban types.
const (
	BanNot BanType = iota
	BanNew
	BanSelect
	BanAll
)

// BanTypeNames is indexed by BanType.
var BanTypeNames = []string{"no", "new", "select", "all"}

func (b BanType) String() string {
	if b < 0 || int(b) >= len(BanTypeNames) {
		return "ERROR"
	}
	return BanTypeNames[b]
}

// Ban is one banned site.
type Ban struct {
	Site string
	Type BanType
	Name string
	Date time.Time
}
