package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/circlemud/internal/game/dice"
)

// ErrDanglingVnum reports a reference to a room, mobile or object vnum
// that no zone defines. The world cannot run with one.
var ErrDanglingVnum = errors.New("reference to undefined vnum")

// yamlZoneFile is the top-level YAML structure for zone files.
type yamlZoneFile struct {
	Zone yamlZone `yaml:"zone"`
}

type yamlZone struct {
	Vnum      Vnum         `yaml:"vnum"`
	Name      string       `yaml:"name"`
	Bottom    Vnum         `yaml:"bottom"`
	Top       Vnum         `yaml:"top"`
	Lifespan  int          `yaml:"lifespan"`
	ResetMode int          `yaml:"reset_mode"`
	Rooms     []yamlRoom   `yaml:"rooms"`
	Mobiles   []yamlMobile `yaml:"mobiles"`
	Objects   []yamlObject `yaml:"objects"`
	Resets    []yamlReset  `yaml:"resets"`
}

type yamlExtra struct {
	Keywords    string `yaml:"keywords"`
	Description string `yaml:"description"`
}

type yamlRoom struct {
	Vnum        Vnum        `yaml:"vnum"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Sector      string      `yaml:"sector"`
	Flags       []string    `yaml:"flags"`
	Special     string      `yaml:"special"`
	Extra       []yamlExtra `yaml:"extra"`
	Exits       []yamlExit  `yaml:"exits"`
}

type yamlExit struct {
	Dir         string   `yaml:"dir"`
	To          Vnum     `yaml:"to"`
	Description string   `yaml:"description"`
	Keyword     string   `yaml:"keyword"`
	Flags       []string `yaml:"flags"`
	Key         Vnum     `yaml:"key"`
}

type yamlMobile struct {
	Vnum        Vnum     `yaml:"vnum"`
	Keywords    string   `yaml:"keywords"`
	Short       string   `yaml:"short"`
	Long        string   `yaml:"long"`
	Description string   `yaml:"description"`
	Level       int      `yaml:"level"`
	Sex         string   `yaml:"sex"`
	Alignment   int      `yaml:"alignment"`
	HitDice     string   `yaml:"hit_dice"`
	Mana        int      `yaml:"mana"`
	Move        int      `yaml:"move"`
	Gold        int      `yaml:"gold"`
	Exp         int      `yaml:"exp"`
	Armor       int      `yaml:"armor"`
	Flags       []string `yaml:"flags"`
	Affects     []string `yaml:"affects"`
	Position    string   `yaml:"position"`
	Special     string   `yaml:"special"`
}

type yamlObject struct {
	Vnum     Vnum        `yaml:"vnum"`
	Keywords string      `yaml:"keywords"`
	Short    string      `yaml:"short"`
	Long     string      `yaml:"long"`
	Action   string      `yaml:"action"`
	Type     string      `yaml:"type"`
	Flags    []string    `yaml:"flags"`
	Wear     []string    `yaml:"wear"`
	Values   [4]int      `yaml:"values"`
	Weight   int         `yaml:"weight"`
	Cost     int         `yaml:"cost"`
	Rent     int         `yaml:"rent"`
	Special  string      `yaml:"special"`
	Extra    []yamlExtra `yaml:"extra"`
}

type yamlReset struct {
	Cmd       string `yaml:"cmd"`
	If        bool   `yaml:"if"`
	Mob       Vnum   `yaml:"mob"`
	Obj       Vnum   `yaml:"obj"`
	Room      Vnum   `yaml:"room"`
	Container Vnum   `yaml:"container"`
	Max       int    `yaml:"max"`
	Slot      string `yaml:"slot"`
	Dir       string `yaml:"dir"`
	State     string `yaml:"state"`
}

// ZoneFile is one parsed, not yet linked, zone file.
type ZoneFile struct {
	Path string
	zone yamlZone
}

// LoadZoneFromBytes parses a zone from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the zone schema.
// Postcondition: Returns a parsed ZoneFile or a non-nil error.
func LoadZoneFromBytes(data []byte) (*ZoneFile, error) {
	var file yamlZoneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing zone YAML: %w", err)
	}
	if file.Zone.Name == "" {
		return nil, fmt.Errorf("zone %d: name must not be empty", file.Zone.Vnum)
	}
	return &ZoneFile{zone: file.Zone}, nil
}

// LoadZoneFromFile reads a single zone YAML file.
func LoadZoneFromFile(path string) (*ZoneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zone file %s: %w", path, err)
	}
	zf, err := LoadZoneFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading zone from %s: %w", path, err)
	}
	zf.Path = path
	return zf, nil
}

// LoadZonesFromDir loads all YAML files in a directory.
//
// Postcondition: Returns all parsed zones or the first error encountered.
func LoadZonesFromDir(dir string) ([]*ZoneFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading zone directory %s: %w", dir, err)
	}

	var zones []*ZoneFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		zf, err := LoadZoneFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		zones = append(zones, zf)
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", dir)
	}
	return zones, nil
}

func lookupName(s string, names []string, what string) (int, error) {
	if s == "" {
		return 0, nil
	}
	for i, n := range names {
		if strings.EqualFold(s, n) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}

// Build links parsed zones into the world: rooms are numbered densely in
// vnum order, then exits and reset commands are resolved to rnums. Any
// reference to an undefined vnum fails with ErrDanglingVnum.
func (w *World) Build(files []*ZoneFile) error {
	zones := slices.Clone(files)
	slices.SortFunc(zones, func(a, b *ZoneFile) int { return int(a.zone.Vnum - b.zone.Vnum) })

	type pendingRoom struct {
		zone int
		y    yamlRoom
	}
	var rooms []pendingRoom
	for zi, zf := range zones {
		z := Zone{
			Vnum:      zf.zone.Vnum,
			Name:      zf.zone.Name,
			Bottom:    zf.zone.Bottom,
			Top:       zf.zone.Top,
			Lifespan:  zf.zone.Lifespan,
			ResetMode: ResetMode(zf.zone.ResetMode),
		}
		if err := z.Validate(); err != nil {
			return err
		}
		w.Zones = append(w.Zones, z)
		for _, yr := range zf.zone.Rooms {
			rooms = append(rooms, pendingRoom{zone: zi, y: yr})
		}
		for _, ym := range zf.zone.Mobiles {
			p, err := convertMobile(ym)
			if err != nil {
				return fmt.Errorf("zone %d: mobile %d: %w", z.Vnum, ym.Vnum, err)
			}
			w.MobProtos = append(w.MobProtos, p)
		}
		for _, yo := range zf.zone.Objects {
			p, err := convertObject(yo)
			if err != nil {
				return fmt.Errorf("zone %d: object %d: %w", z.Vnum, yo.Vnum, err)
			}
			w.ObjProtos = append(w.ObjProtos, p)
		}
	}

	slices.SortStableFunc(rooms, func(a, b pendingRoom) int { return int(a.y.Vnum - b.y.Vnum) })
	slices.SortStableFunc(w.MobProtos, func(a, b MobProto) int { return int(a.Vnum - b.Vnum) })
	slices.SortStableFunc(w.ObjProtos, func(a, b ObjProto) int { return int(a.Vnum - b.Vnum) })

	for _, pr := range rooms {
		if _, dup := w.roomIdx[pr.y.Vnum]; dup {
			return fmt.Errorf("duplicate room vnum %d", pr.y.Vnum)
		}
		room, err := convertRoom(pr.y)
		if err != nil {
			return fmt.Errorf("room %d: %w", pr.y.Vnum, err)
		}
		room.Zone = pr.zone
		w.roomIdx[room.Vnum] = Rnum(len(w.Rooms))
		w.Rooms = append(w.Rooms, room)
	}
	for i, p := range w.MobProtos {
		if _, dup := w.mobIdx[p.Vnum]; dup {
			return fmt.Errorf("duplicate mobile vnum %d", p.Vnum)
		}
		w.mobIdx[p.Vnum] = i
	}
	for i, p := range w.ObjProtos {
		if _, dup := w.objIdx[p.Vnum]; dup {
			return fmt.Errorf("duplicate object vnum %d", p.Vnum)
		}
		w.objIdx[p.Vnum] = i
	}

	for _, pr := range rooms {
		r := w.roomIdx[pr.y.Vnum]
		for _, ye := range pr.y.Exits {
			ex, dir, err := w.convertExit(ye)
			if err != nil {
				return fmt.Errorf("room %d: exit %s: %w", pr.y.Vnum, ye.Dir, err)
			}
			w.Rooms[r].Exits[dir] = ex
		}
	}

	for zi, zf := range zones {
		for line, yr := range zf.zone.Resets {
			cmd, err := w.convertReset(yr)
			if err != nil {
				return fmt.Errorf("zone %d: reset %d: %w", zf.zone.Vnum, line+1, err)
			}
			cmd.Line = line + 1
			w.Zones[zi].Cmds = append(w.Zones[zi].Cmds, cmd)
		}
	}
	return nil
}

func convertRoom(yr yamlRoom) (Room, error) {
	sector, err := lookupName(yr.Sector, SectorNames, "sector")
	if err != nil {
		return Room{}, err
	}
	flags, err := ParseFlags[RoomFlag](yr.Flags, RoomFlagNames)
	if err != nil {
		return Room{}, err
	}
	room := Room{
		Vnum:        yr.Vnum,
		Name:        yr.Name,
		Description: normalizeText(yr.Description),
		Sector:      Sector(sector),
		Flags:       flags,
		SpecProc:    yr.Special,
	}
	for _, e := range yr.Extra {
		room.ExtraDescs = append(room.ExtraDescs, ExtraDesc{Keywords: e.Keywords, Description: normalizeText(e.Description)})
	}
	return room, nil
}

func (w *World) convertExit(ye yamlExit) (*Exit, Direction, error) {
	dir, ok := ParseDirection(ye.Dir)
	if !ok {
		return nil, 0, fmt.Errorf("unknown direction %q", ye.Dir)
	}
	to := w.RealRoom(ye.To)
	if to == Nowhere {
		return nil, 0, fmt.Errorf("%w: room %d", ErrDanglingVnum, ye.To)
	}
	flags, err := ParseFlags[ExitFlag](ye.Flags, ExitFlagNames)
	if err != nil {
		return nil, 0, err
	}
	if flags.Any(ExClosed | ExLocked) {
		flags.Set(ExIsDoor)
	}
	key := ye.Key
	if key == 0 {
		key = NoVnum
	}
	return &Exit{
		Description: normalizeText(ye.Description),
		Keyword:     ye.Keyword,
		Info:        flags,
		Key:         key,
		ToRoom:      to,
	}, dir, nil
}

func convertMobile(ym yamlMobile) (MobProto, error) {
	sex, err := lookupName(ym.Sex, SexNames, "sex")
	if err != nil {
		return MobProto{}, err
	}
	flags, err := ParseFlags[MobFlag](ym.Flags, MobFlagNames)
	if err != nil {
		return MobProto{}, err
	}
	affs, err := ParseFlags[AffectFlag](ym.Affects, AffectFlagNames)
	if err != nil {
		return MobProto{}, err
	}
	pos := int(PosStanding)
	if ym.Position != "" {
		if pos, err = lookupName(ym.Position, PositionNames, "position"); err != nil {
			return MobProto{}, err
		}
	}
	hd := ym.HitDice
	if hd == "" {
		hd = "1d1+0"
	}
	expr, err := dice.Parse(hd)
	if err != nil {
		return MobProto{}, err
	}
	flags.Set(MobIsNPC)
	if ym.Special != "" {
		flags.Set(MobSpec)
	}
	proto := Character{
		Name:        ym.Keywords,
		ShortDescr:  ym.Short,
		LongDescr:   normalizeText(ym.Long),
		Description: normalizeText(ym.Description),
		Level:       ym.Level,
		Sex:         Sex(sex),
		Alignment:   ym.Alignment,
		Abilities:   Abilities{Str: 11, Int: 11, Wis: 11, Dex: 11, Con: 11, Cha: 11},
		Points: Points{
			MaxMana: ym.Mana,
			MaxMove: max(ym.Move, 50),
			Gold:    ym.Gold,
			Exp:     ym.Exp,
			Armor:   ym.Armor,
		},
		Position:   Position(pos),
		DefaultPos: Position(pos),
		MobFlags:   flags,
		AffFlags:   affs,
		SpecProc:   ym.Special,
	}
	return MobProto{Vnum: ym.Vnum, Proto: proto, HitDice: expr}, nil
}

func convertObject(yo yamlObject) (ObjProto, error) {
	typ, err := lookupName(yo.Type, ItemTypeNames, "item type")
	if err != nil {
		return ObjProto{}, err
	}
	extra, err := ParseFlags[ItemFlag](yo.Flags, ItemFlagNames)
	if err != nil {
		return ObjProto{}, err
	}
	wear, err := ParseFlags[WearFlag](yo.Wear, WearFlagNames)
	if err != nil {
		return ObjProto{}, err
	}
	o := Object{
		Vnum:        yo.Vnum,
		Name:        yo.Keywords,
		ShortDescr:  yo.Short,
		Description: yo.Long,
		ActionDescr: normalizeText(yo.Action),
		Type:        ItemType(typ),
		ExtraFlags:  extra,
		WearFlags:   wear,
		Values:      yo.Values,
		Weight:      yo.Weight,
		Cost:        yo.Cost,
		Rent:        yo.Rent,
		SpecProc:    yo.Special,
	}
	for _, e := range yo.Extra {
		o.ExtraDescs = append(o.ExtraDescs, ExtraDesc{Keywords: e.Keywords, Description: normalizeText(e.Description)})
	}
	return ObjProto{Vnum: yo.Vnum, Proto: o}, nil
}

func (w *World) convertReset(yr yamlReset) (ResetCmd, error) {
	cmd := ResetCmd{IfFlag: yr.If}
	if len(yr.Cmd) != 1 {
		return cmd, fmt.Errorf("bad reset command %q", yr.Cmd)
	}
	cmd.Command = strings.ToUpper(yr.Cmd)[0]

	room := func(v Vnum) (int, error) {
		r := w.RealRoom(v)
		if r == Nowhere {
			return 0, fmt.Errorf("%w: room %d", ErrDanglingVnum, v)
		}
		return int(r), nil
	}
	mob := func(v Vnum) (int, error) {
		if i := w.RealMobile(v); i >= 0 {
			return i, nil
		}
		return 0, fmt.Errorf("%w: mobile %d", ErrDanglingVnum, v)
	}
	obj := func(v Vnum) (int, error) {
		if i := w.RealObject(v); i >= 0 {
			return i, nil
		}
		return 0, fmt.Errorf("%w: object %d", ErrDanglingVnum, v)
	}

	var err error
	switch cmd.Command {
	case 'M':
		if cmd.Arg1, err = mob(yr.Mob); err != nil {
			return cmd, err
		}
		cmd.Arg2 = yr.Max
		cmd.Arg3, err = room(yr.Room)
	case 'O':
		if cmd.Arg1, err = obj(yr.Obj); err != nil {
			return cmd, err
		}
		cmd.Arg2 = yr.Max
		cmd.Arg3, err = room(yr.Room)
	case 'G':
		cmd.Arg1, err = obj(yr.Obj)
		cmd.Arg2 = yr.Max
	case 'E':
		if cmd.Arg1, err = obj(yr.Obj); err != nil {
			return cmd, err
		}
		cmd.Arg2 = yr.Max
		cmd.Arg3, err = lookupName(yr.Slot, WearPosNames, "wear slot")
	case 'P':
		if cmd.Arg1, err = obj(yr.Obj); err != nil {
			return cmd, err
		}
		cmd.Arg2 = yr.Max
		cmd.Arg3, err = obj(yr.Container)
	case 'R':
		if cmd.Arg1, err = room(yr.Room); err != nil {
			return cmd, err
		}
		cmd.Arg2, err = obj(yr.Obj)
	case 'D':
		if cmd.Arg1, err = room(yr.Room); err != nil {
			return cmd, err
		}
		dir, ok := ParseDirection(yr.Dir)
		if !ok {
			return cmd, fmt.Errorf("unknown direction %q", yr.Dir)
		}
		cmd.Arg2 = int(dir)
		cmd.Arg3, err = lookupName(yr.State, []string{"open", "closed", "locked"}, "door state")
	default:
		err = fmt.Errorf("unknown reset command %q", yr.Cmd)
	}
	return cmd, err
}

// normalizeText converts YAML block text to the CRLF form sent to clients.
func normalizeText(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(s, "\n", "\r\n") + "\r\n"
}
