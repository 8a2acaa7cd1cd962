// Package legacy imports CircleMUD text world files (.wld, .mob, .obj and
// .zon) laid out as in the classic lib/world directory.
package legacy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for the legacy layout:
//
//	sourceDir/
//	  zon/   <- one .zon file per zone (required)
//	  wld/   <- rooms (required)
//	  mob/   <- mobiles
//	  obj/   <- objects
//
// A directory with an "index" file loads the files it lists, up to the
// '$' line; otherwise every file with the directory's extension is read.
type Source struct {
	logger   *zap.Logger
	specials map[kindVnum]string
}

type kindVnum struct {
	kind string
	vnum int
}

// Option configures a Source.
type Option func(*Source)

// WithoutSpecials leaves every special procedure unassigned.
func WithoutSpecials() Option {
	return func(s *Source) { s.specials = nil }
}

// NewSource constructs a Source. Stock Midgaard vnums get the built-in
// special procedures unless WithoutSpecials is given.
func NewSource(logger *zap.Logger, opts ...Option) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Source{logger: logger, specials: stockSpecials()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// stockSpecials assigns special procedures by vnum the way the stock
// world expects.
func stockSpecials() map[kindVnum]string {
	m := map[kindVnum]string{
		{"mob", 1}:     "puff",
		{"mob", 1201}:  "postmaster",
		{"mob", 1202}:  "janitor",
		{"mob", 3010}:  "postmaster",
		{"mob", 3059}:  "cityguard",
		{"mob", 3060}:  "cityguard",
		{"mob", 3061}:  "janitor",
		{"mob", 3067}:  "cityguard",
		{"mob", 3068}:  "janitor",
		{"mob", 7900}:  "cityguard",
		{"room", 3030}: "dump",
	}
	for v := 3024; v <= 3027; v++ {
		m[kindVnum{"mob", v}] = "guild_guard"
	}
	for v := 3096; v <= 3099; v++ {
		m[kindVnum{"obj", v}] = "bulletin_board"
	}
	return m
}

// Load reads the tree rooted at sourceDir and returns one ZoneData per
// zone, with every room, mobile and object placed in the zone whose vnum
// range holds it. Data the game cannot represent is dropped and logged.
//
// Precondition: sourceDir must contain zon/ and wld/ subdirectories.
// Postcondition: returns at least one ZoneData or a non-nil error.
func (s *Source) Load(sourceDir string) ([]*importer.ZoneData, error) {
	var warnings []string
	defer func() {
		for _, w := range warnings {
			s.logger.Warn("import", zap.String("warning", w))
		}
	}()

	var zones []*importer.ZoneData
	err := eachFile(filepath.Join(sourceDir, "zon"), ".zon", true, func(name string, r io.Reader) error {
		z, err := newParser(name, r, &warnings).parseZone()
		if err != nil {
			return err
		}
		zones = append(zones, &importer.ZoneData{Zone: z})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", filepath.Join(sourceDir, "zon"))
	}
	slices.SortFunc(zones, func(a, b *importer.ZoneData) int { return a.Zone.Vnum - b.Zone.Vnum })

	owner := func(kind string, vnum int) (*importer.ZoneSpec, error) {
		for _, z := range zones {
			if vnum >= z.Zone.Bottom && vnum <= z.Zone.Top {
				return &z.Zone, nil
			}
		}
		return nil, fmt.Errorf("%s #%d is outside of any zone", kind, vnum)
	}

	err = eachFile(filepath.Join(sourceDir, "wld"), ".wld", true, func(name string, r io.Reader) error {
		rooms, err := newParser(name, r, &warnings).parseRooms()
		if err != nil {
			return err
		}
		for _, room := range rooms {
			z, err := owner("room", room.Vnum)
			if err != nil {
				return err
			}
			room.Special = s.specials[kindVnum{"room", room.Vnum}]
			z.Rooms = append(z.Rooms, room)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachFile(filepath.Join(sourceDir, "mob"), ".mob", false, func(name string, r io.Reader) error {
		mobs, err := newParser(name, r, &warnings).parseMobiles()
		if err != nil {
			return err
		}
		for _, m := range mobs {
			z, err := owner("mobile", m.Vnum)
			if err != nil {
				return err
			}
			m.Special = s.specials[kindVnum{"mob", m.Vnum}]
			z.Mobiles = append(z.Mobiles, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachFile(filepath.Join(sourceDir, "obj"), ".obj", false, func(name string, r io.Reader) error {
		objs, err := newParser(name, r, &warnings).parseObjects()
		if err != nil {
			return err
		}
		for _, o := range objs {
			z, err := owner("object", o.Vnum)
			if err != nil {
				return err
			}
			o.Special = s.specials[kindVnum{"obj", o.Vnum}]
			z.Objects = append(z.Objects, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prune(zones, &warnings)
	return zones, nil
}

// prune drops exits and reset commands that refer to vnums nothing
// defines. A dropped reset takes the dependent commands after it along.
func prune(zones []*importer.ZoneData, warnings *[]string) {
	rooms, mobs, objs := map[int]bool{}, map[int]bool{}, map[int]bool{}
	for _, z := range zones {
		for _, r := range z.Zone.Rooms {
			rooms[r.Vnum] = true
		}
		for _, m := range z.Zone.Mobiles {
			mobs[m.Vnum] = true
		}
		for _, o := range z.Zone.Objects {
			objs[o.Vnum] = true
		}
	}
	warn := func(format string, args ...any) {
		*warnings = append(*warnings, fmt.Sprintf(format, args...))
	}

	for _, z := range zones {
		for i := range z.Zone.Rooms {
			room := &z.Zone.Rooms[i]
			room.Exits = slices.DeleteFunc(room.Exits, func(ex importer.ExitSpec) bool {
				if rooms[ex.To] {
					return false
				}
				warn("room #%d: dropping %s exit to missing room #%d", room.Vnum, ex.Dir, ex.To)
				return true
			})
		}

		var kept []importer.ResetSpec
		skipping := false
		for line, rs := range z.Zone.Resets {
			if skipping && rs.If {
				warn("zone #%d: dropping reset %d (%s) after a dropped command", z.Zone.Vnum, line+1, rs.Cmd)
				continue
			}
			skipping = false
			if missing := resetMissing(rs, rooms, mobs, objs); missing != "" {
				warn("zone #%d: dropping reset %d (%s): %s", z.Zone.Vnum, line+1, rs.Cmd, missing)
				skipping = true
				continue
			}
			kept = append(kept, rs)
		}
		z.Zone.Resets = kept
	}
}

func resetMissing(rs importer.ResetSpec, rooms, mobs, objs map[int]bool) string {
	needRoom := func(v int) string {
		if !rooms[v] {
			return fmt.Sprintf("no room #%d", v)
		}
		return ""
	}
	needObj := func(v int) string {
		if !objs[v] {
			return fmt.Sprintf("no object #%d", v)
		}
		return ""
	}
	switch rs.Cmd {
	case "M":
		if !mobs[rs.Mob] {
			return fmt.Sprintf("no mobile #%d", rs.Mob)
		}
		return needRoom(rs.Room)
	case "O":
		if m := needObj(rs.Obj); m != "" {
			return m
		}
		return needRoom(rs.Room)
	case "G", "E":
		return needObj(rs.Obj)
	case "P":
		if m := needObj(rs.Obj); m != "" {
			return m
		}
		return needObj(rs.Container)
	case "D":
		return needRoom(rs.Room)
	case "R":
		if m := needRoom(rs.Room); m != "" {
			return m
		}
		return needObj(rs.Obj)
	}
	return ""
}

// eachFile calls fn for every world file in dir. A missing optional
// directory is skipped.
func eachFile(dir, ext string, required bool, fn func(name string, r io.Reader) error) error {
	names, err := listFiles(dir, ext)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("required directory %q not accessible in source: %w", filepath.Base(dir), err)
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		err = fn(path, f)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func listFiles(dir, ext string) ([]string, error) {
	if f, err := os.Open(filepath.Join(dir, "index")); err == nil {
		defer f.Close()
		var names []string
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if strings.HasPrefix(line, "$") {
				break
			}
			if line != "" {
				names = append(names, line)
			}
		}
		return names, sc.Err()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
