// Package importer converts world files from other formats into the zone
// YAML read by the world loader.
package importer

// ZoneData is the common intermediate format produced by all Source
// implementations. Its YAML tags match the zone file schema exactly, so it
// can be marshalled directly and validated by world.LoadZoneFromBytes.
type ZoneData struct {
	Zone ZoneSpec `yaml:"zone"`
}

// ZoneSpec holds zone-level metadata and its contents.
type ZoneSpec struct {
	Vnum      int          `yaml:"vnum"`
	Name      string       `yaml:"name"`
	Bottom    int          `yaml:"bottom"`
	Top       int          `yaml:"top"`
	Lifespan  int          `yaml:"lifespan"`
	ResetMode int          `yaml:"reset_mode"`
	Rooms     []RoomSpec   `yaml:"rooms,omitempty"`
	Mobiles   []MobileSpec `yaml:"mobiles,omitempty"`
	Objects   []ObjectSpec `yaml:"objects,omitempty"`
	Resets    []ResetSpec  `yaml:"resets,omitempty"`
}

// ExtraSpec is a keyword-addressed extra description.
type ExtraSpec struct {
	Keywords    string `yaml:"keywords"`
	Description string `yaml:"description"`
}

// RoomSpec holds a single room's data.
type RoomSpec struct {
	Vnum        int         `yaml:"vnum"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Sector      string      `yaml:"sector,omitempty"`
	Flags       []string    `yaml:"flags,omitempty,flow"`
	Special     string      `yaml:"special,omitempty"`
	Extra       []ExtraSpec `yaml:"extra,omitempty"`
	Exits       []ExitSpec  `yaml:"exits,omitempty"`
}

// ExitSpec holds a single exit's data.
type ExitSpec struct {
	Dir         string   `yaml:"dir"`
	To          int      `yaml:"to"`
	Description string   `yaml:"description,omitempty"`
	Keyword     string   `yaml:"keyword,omitempty"`
	Flags       []string `yaml:"flags,omitempty,flow"`
	Key         int      `yaml:"key,omitempty"`
}

// MobileSpec holds a mobile prototype.
type MobileSpec struct {
	Vnum        int      `yaml:"vnum"`
	Keywords    string   `yaml:"keywords"`
	Short       string   `yaml:"short"`
	Long        string   `yaml:"long,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Level       int      `yaml:"level,omitempty"`
	Sex         string   `yaml:"sex,omitempty"`
	Alignment   int      `yaml:"alignment,omitempty"`
	HitDice     string   `yaml:"hit_dice,omitempty"`
	Gold        int      `yaml:"gold,omitempty"`
	Exp         int      `yaml:"exp,omitempty"`
	Armor       int      `yaml:"armor,omitempty"`
	Flags       []string `yaml:"flags,omitempty,flow"`
	Affects     []string `yaml:"affects,omitempty,flow"`
	Position    string   `yaml:"position,omitempty"`
	Special     string   `yaml:"special,omitempty"`
}

// ObjectSpec holds an object prototype.
type ObjectSpec struct {
	Vnum     int         `yaml:"vnum"`
	Keywords string      `yaml:"keywords"`
	Short    string      `yaml:"short"`
	Long     string      `yaml:"long,omitempty"`
	Action   string      `yaml:"action,omitempty"`
	Type     string      `yaml:"type"`
	Flags    []string    `yaml:"flags,omitempty,flow"`
	Wear     []string    `yaml:"wear,omitempty,flow"`
	Values   [4]int      `yaml:"values,flow"`
	Weight   int         `yaml:"weight,omitempty"`
	Cost     int         `yaml:"cost,omitempty"`
	Rent     int         `yaml:"rent,omitempty"`
	Special  string      `yaml:"special,omitempty"`
	Extra    []ExtraSpec `yaml:"extra,omitempty"`
}

// ResetSpec is one zone reset command.
type ResetSpec struct {
	Cmd       string `yaml:"cmd"`
	If        bool   `yaml:"if,omitempty"`
	Mob       int    `yaml:"mob,omitempty"`
	Obj       int    `yaml:"obj,omitempty"`
	Room      int    `yaml:"room,omitempty"`
	Container int    `yaml:"container,omitempty"`
	Max       int    `yaml:"max,omitempty"`
	Slot      string `yaml:"slot,omitempty"`
	Dir       string `yaml:"dir,omitempty"`
	State     string `yaml:"state,omitempty"`
}

// Source loads content from a format-specific source directory and produces
// ZoneData ready to be written as zone YAML files.
//
// Precondition: sourceDir must exist and contain the expected layout for the format.
// Postcondition: returns at least one ZoneData, or a non-nil error.
type Source interface {
	Load(sourceDir string) ([]*ZoneData, error)
}
