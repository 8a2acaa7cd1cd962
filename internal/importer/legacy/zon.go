package legacy

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/circlemud/internal/importer"
)

// parseZone reads a .zon file: header, then reset commands up to S.
func (p *parser) parseZone() (importer.ZoneSpec, error) {
	r := p.r
	var z importer.ZoneSpec
	vnum, done, err := r.record("zone")
	if err != nil {
		return z, err
	}
	if done {
		return z, r.errorf("empty zone file")
	}
	z.Vnum = vnum
	if z.Name, err = r.tilde("zone name"); err != nil {
		return z, err
	}
	z.Name = strings.TrimSpace(z.Name)

	n, rest, err := r.ints("zone header", 3)
	if err != nil {
		return z, err
	}
	// Older files omit the bottom vnum; the zone then starts at vnum*100.
	if len(rest) > 0 {
		four, err := atoi(rest[0])
		if err != nil {
			return z, r.errorf("zone #%d: bad reset mode %q", vnum, rest[0])
		}
		z.Bottom, z.Top, z.Lifespan, z.ResetMode = n[0], n[1], n[2], four
	} else {
		z.Bottom, z.Top, z.Lifespan, z.ResetMode = vnum*100, n[0], n[1], n[2]
	}
	if z.Bottom > z.Top {
		return z, r.errorf("zone #%d: bottom %d > top %d", vnum, z.Bottom, z.Top)
	}

	for {
		s, err := r.next()
		if err != nil {
			return z, r.errorf("zone #%d: file ended before S", vnum)
		}
		s = strings.TrimSpace(s)
		cmd := strings.ToUpper(s[:1])
		if cmd == "S" || cmd == "$" {
			return z, nil
		}
		reset, err := p.parseReset(cmd, s[1:])
		if err != nil {
			return z, r.errorf("zone #%d: %v", vnum, err)
		}
		z.Resets = append(z.Resets, reset)
	}
}

// parseReset decodes one command line. M, O, E, P and D take four
// numbers; G and R take three. Anything after them is a comment.
func (p *parser) parseReset(cmd, args string) (importer.ResetSpec, error) {
	rs := importer.ResetSpec{Cmd: cmd}
	want := 4
	switch cmd {
	case "M", "O", "E", "P", "D":
	case "G", "R":
		want = 3
	default:
		return rs, fmt.Errorf("unknown reset command %q", cmd)
	}
	f := strings.Fields(args)
	if len(f) < want {
		return rs, fmt.Errorf("reset %s needs %d numbers, got %q", cmd, want, args)
	}
	n := make([]int, want)
	for i := range n {
		v, err := atoi(f[i])
		if err != nil {
			return rs, fmt.Errorf("reset %s: bad number %q", cmd, f[i])
		}
		n[i] = v
	}
	rs.If = n[0] != 0

	var err error
	switch cmd {
	case "M":
		rs.Mob, rs.Max, rs.Room = n[1], n[2], n[3]
	case "O":
		rs.Obj, rs.Max, rs.Room = n[1], n[2], n[3]
	case "G":
		rs.Obj, rs.Max = n[1], n[2]
	case "E":
		rs.Obj, rs.Max = n[1], n[2]
		rs.Slot, err = valueName(n[3], wearSlots, "wear slot")
	case "P":
		rs.Obj, rs.Max, rs.Container = n[1], n[2], n[3]
	case "D":
		rs.Room = n[1]
		if rs.Dir, err = valueName(n[2], directions, "direction"); err == nil {
			rs.State, err = valueName(n[3], doorStates, "door state")
		}
	case "R":
		rs.Room, rs.Obj = n[1], n[2]
	}
	return rs, err
}
