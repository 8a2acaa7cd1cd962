package legacy

import (
	"io"
	"strings"

	"github.com/cory-johannsen/circlemud/internal/importer"
)

// parseObjects reads every object in a .obj file. Object records have no
// terminator, so each ends at the next '#' or '$'.
func (p *parser) parseObjects() ([]importer.ObjectSpec, error) {
	var objs []importer.ObjectSpec
	for {
		vnum, done, err := p.r.record("object")
		if err != nil {
			return nil, err
		}
		if done {
			return objs, nil
		}
		o, err := p.parseObject(vnum)
		if err != nil {
			return nil, err
		}
		objs = append(objs, o)
	}
}

func (p *parser) parseObject(vnum int) (importer.ObjectSpec, error) {
	r := p.r
	o := importer.ObjectSpec{Vnum: vnum}
	var err error
	if o.Keywords, err = r.tilde("object keywords"); err != nil {
		return o, err
	}
	if o.Short, err = r.tilde("object short description"); err != nil {
		return o, err
	}
	if o.Long, err = r.tilde("object long description"); err != nil {
		return o, err
	}
	if o.Action, err = r.tilde("object action description"); err != nil {
		return o, err
	}

	s, err := r.next()
	if err != nil {
		return o, r.errorf("obj #%d: expecting type and flags", vnum)
	}
	f := strings.Fields(s)
	if len(f) < 3 {
		return o, r.errorf("obj #%d: bad type/flags line %q", vnum, s)
	}
	typ, err := atoi(f[0])
	if err != nil {
		return o, r.errorf("obj #%d: bad item type %q", vnum, f[0])
	}
	if o.Type, err = valueName(typ, itemTypes, "item type"); err != nil {
		return o, r.errorf("obj #%d: %v", vnum, err)
	}
	extra, err := asciiFlags(f[1])
	if err != nil {
		return o, r.errorf("obj #%d: %v", vnum, err)
	}
	wear, err := asciiFlags(f[2])
	if err != nil {
		return o, r.errorf("obj #%d: %v", vnum, err)
	}
	o.Flags = p.names(extra, itemBits, "extra", vnum)
	o.Wear = p.names(wear, wearBits, "wear", vnum)

	n, _, err := r.ints("object values", 4)
	if err != nil {
		return o, err
	}
	copy(o.Values[:], n)
	n, _, err = r.ints("weight, cost and rent", 3)
	if err != nil {
		return o, err
	}
	o.Weight, o.Cost, o.Rent = n[0], n[1], n[2]

	affects := 0
	for {
		s, err := r.next()
		if err == io.EOF {
			return o, nil
		}
		if err != nil {
			return o, err
		}
		t := strings.TrimSpace(s)
		switch t[0] {
		case 'E':
			e, err := p.parseExtra()
			if err != nil {
				return o, err
			}
			o.Extra = append(o.Extra, e)
		case 'A':
			if _, _, err := r.ints("object affect", 2); err != nil {
				return o, err
			}
			affects++
		case '#', '$':
			r.unread(s)
			if affects > 0 {
				p.warn("obj #%d: ignoring %d stat affects", vnum, affects)
			}
			return o, nil
		default:
			return o, r.errorf("obj #%d: expecting E, A, # or $, got %q", vnum, t)
		}
	}
}
