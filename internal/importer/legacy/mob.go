package legacy

import (
	"strings"

	"github.com/cory-johannsen/circlemud/internal/importer"
)

// parseMobiles reads every mobile in a .mob file.
func (p *parser) parseMobiles() ([]importer.MobileSpec, error) {
	var mobs []importer.MobileSpec
	for {
		vnum, done, err := p.r.record("mobile")
		if err != nil {
			return nil, err
		}
		if done {
			return mobs, nil
		}
		m, err := p.parseMobile(vnum)
		if err != nil {
			return nil, err
		}
		mobs = append(mobs, m)
	}
}

func (p *parser) parseMobile(vnum int) (importer.MobileSpec, error) {
	r := p.r
	m := importer.MobileSpec{Vnum: vnum}
	var err error
	if m.Keywords, err = r.tilde("mobile keywords"); err != nil {
		return m, err
	}
	if m.Short, err = r.tilde("mobile short description"); err != nil {
		return m, err
	}
	if m.Long, err = r.tilde("mobile long description"); err != nil {
		return m, err
	}
	m.Long = strings.TrimRight(m.Long, "\n")
	if m.Description, err = r.tilde("mobile description"); err != nil {
		return m, err
	}

	s, err := r.next()
	if err != nil {
		return m, r.errorf("mob #%d: expecting flags line", vnum)
	}
	f := strings.Fields(s)
	if len(f) < 4 {
		return m, r.errorf("mob #%d: bad flags line %q", vnum, s)
	}
	flags, err := asciiFlags(f[0])
	if err != nil {
		return m, r.errorf("mob #%d: %v", vnum, err)
	}
	affs, err := asciiFlags(f[1])
	if err != nil {
		return m, r.errorf("mob #%d: %v", vnum, err)
	}
	m.Flags = p.names(flags, mobBits, "mobile", vnum)
	m.Affects = p.names(affs, affectBits, "affect", vnum)
	if m.Alignment, err = atoi(f[2]); err != nil {
		return m, r.errorf("mob #%d: bad alignment %q", vnum, f[2])
	}
	kind := strings.ToUpper(f[3])
	if kind != "S" && kind != "E" {
		return m, r.errorf("mob #%d: unsupported mob type %q", vnum, f[3])
	}

	if err := p.parseSimpleMob(&m); err != nil {
		return m, err
	}
	if kind == "E" {
		return m, p.skipEnhanced(vnum)
	}
	return m, nil
}

// parseSimpleMob reads the three stat lines shared by S and E mobiles.
func (p *parser) parseSimpleMob(m *importer.MobileSpec) error {
	r := p.r
	s, err := r.next()
	if err != nil {
		return r.errorf("mob #%d: expecting level line", m.Vnum)
	}
	f := strings.Fields(s)
	if len(f) < 5 {
		return r.errorf("mob #%d: bad level line %q", m.Vnum, s)
	}
	if m.Level, err = atoi(f[0]); err != nil {
		return r.errorf("mob #%d: bad level %q", m.Vnum, f[0])
	}
	ac, err := atoi(f[2])
	if err != nil {
		return r.errorf("mob #%d: bad armor class %q", m.Vnum, f[2])
	}
	m.Armor = 10 * ac
	m.HitDice = f[3]

	n, _, err := r.ints("gold and experience", 2)
	if err != nil {
		return err
	}
	m.Gold, m.Exp = n[0], n[1]

	n, _, err = r.ints("positions and sex", 3)
	if err != nil {
		return err
	}
	if m.Position, err = valueName(n[0], positions, "position"); err != nil {
		return r.errorf("mob #%d: %v", m.Vnum, err)
	}
	if m.Sex, err = valueName(n[2], sexes, "sex"); err != nil {
		return r.errorf("mob #%d: %v", m.Vnum, err)
	}
	return nil
}

// skipEnhanced consumes "Name: value" lines up to the closing E. The
// abilities they set are not modelled.
func (p *parser) skipEnhanced(vnum int) error {
	for {
		s, err := p.r.next()
		if err != nil {
			return p.r.errorf("mob #%d: enhanced block missing its closing E", vnum)
		}
		s = strings.TrimSpace(s)
		if s == "E" {
			return nil
		}
		if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "$") {
			return p.r.errorf("mob #%d: enhanced block missing its closing E", vnum)
		}
		if key, _, ok := strings.Cut(s, ":"); ok {
			p.warn("mob #%d: ignoring %s", vnum, strings.TrimSpace(key))
		}
	}
}
