package legacy

import (
	"strings"

	"github.com/cory-johannsen/circlemud/internal/importer"
)

// Exit door types in .wld files.
const (
	exitNoDoor = iota
	exitDoor
	exitPickproof
)

// parseRooms reads every room in a .wld file.
func (p *parser) parseRooms() ([]importer.RoomSpec, error) {
	var rooms []importer.RoomSpec
	for {
		vnum, done, err := p.r.record("room")
		if err != nil {
			return nil, err
		}
		if done {
			return rooms, nil
		}
		room, err := p.parseRoom(vnum)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
}

func (p *parser) parseRoom(vnum int) (importer.RoomSpec, error) {
	r := p.r
	room := importer.RoomSpec{Vnum: vnum}
	var err error
	if room.Name, err = r.tilde("room name"); err != nil {
		return room, err
	}
	if room.Description, err = r.tilde("room description"); err != nil {
		return room, err
	}

	s, err := r.next()
	if err != nil {
		return room, r.errorf("room #%d: expecting flags and sector", vnum)
	}
	f := strings.Fields(s)
	if len(f) < 3 {
		return room, r.errorf("room #%d: bad flags/sector line %q", vnum, s)
	}
	flags, err := asciiFlags(f[1])
	if err != nil {
		return room, r.errorf("room #%d: %v", vnum, err)
	}
	room.Flags = p.names(flags, roomBits, "room", vnum)
	sector, err := atoi(f[2])
	if err != nil {
		return room, r.errorf("room #%d: bad sector %q", vnum, f[2])
	}
	if room.Sector, err = valueName(sector, sectors, "sector"); err != nil {
		return room, r.errorf("room #%d: %v", vnum, err)
	}

	for {
		s, err := r.next()
		if err != nil {
			return room, r.errorf("room #%d: expecting D, E or S", vnum)
		}
		s = strings.TrimSpace(s)
		switch s[0] {
		case 'D':
			dir, err := atoi(s[1:])
			if err != nil || dir < 0 || dir >= len(directions) {
				return room, r.errorf("room #%d: bad direction %q", vnum, s)
			}
			ex, ok, err := p.parseExit(vnum, dir)
			if err != nil {
				return room, err
			}
			if ok {
				room.Exits = append(room.Exits, ex)
			}
		case 'E':
			e, err := p.parseExtra()
			if err != nil {
				return room, err
			}
			room.Extra = append(room.Extra, e)
		case 'S':
			return room, nil
		default:
			return room, r.errorf("room #%d: expecting D, E or S, got %q", vnum, s)
		}
	}
}

// parseExit reads one direction block. Exits leading nowhere are dropped.
func (p *parser) parseExit(vnum, dir int) (importer.ExitSpec, bool, error) {
	r := p.r
	ex := importer.ExitSpec{Dir: directions[dir]}
	var err error
	if ex.Description, err = r.tilde("exit description"); err != nil {
		return ex, false, err
	}
	if ex.Keyword, err = r.tilde("exit keyword"); err != nil {
		return ex, false, err
	}
	ex.Keyword = strings.TrimSpace(ex.Keyword)
	n, _, err := r.ints("exit info", 3)
	if err != nil {
		return ex, false, err
	}
	switch n[0] {
	case exitNoDoor:
	case exitDoor:
		ex.Flags = []string{"door"}
	case exitPickproof:
		ex.Flags = []string{"door", "pickproof"}
	default:
		p.warn("room #%d: unknown door type %d on %s exit", vnum, n[0], ex.Dir)
	}
	if n[1] > 0 {
		ex.Key = n[1]
	}
	if n[2] < 0 {
		p.warn("room #%d: dropping %s exit that leads nowhere", vnum, ex.Dir)
		return ex, false, nil
	}
	ex.To = n[2]
	return ex, true, nil
}

// parseExtra reads an E block's keywords and description.
func (p *parser) parseExtra() (importer.ExtraSpec, error) {
	var e importer.ExtraSpec
	var err error
	if e.Keywords, err = p.r.tilde("extra description keywords"); err != nil {
		return e, err
	}
	e.Keywords = strings.TrimSpace(e.Keywords)
	e.Description, err = p.r.tilde("extra description")
	return e, err
}
