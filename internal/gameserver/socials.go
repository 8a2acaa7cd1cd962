package gameserver

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Social is one canned action such as smile or bow. Messages are act
// templates; an empty CharFound means the social ignores arguments.
type Social struct {
	Name              string `yaml:"name"`
	Hide              bool   `yaml:"hide"`
	MinPosition       string `yaml:"min_position"`
	MinVictimPosition string `yaml:"min_victim_position"`

	CharNoArg   string `yaml:"char_no_arg"`
	OthersNoArg string `yaml:"others_no_arg"`
	CharFound   string `yaml:"char_found"`
	OthersFound string `yaml:"others_found"`
	VictFound   string `yaml:"vict_found"`
	NotFound    string `yaml:"not_found"`
	CharAuto    string `yaml:"char_auto"`
	OthersAuto  string `yaml:"others_auto"`

	minPos    world.Position
	minVictim world.Position
}

type socialFile struct {
	Socials []Social `yaml:"socials"`
}

func parsePosition(s string, def world.Position) (world.Position, error) {
	if s == "" {
		return def, nil
	}
	i := slices.IndexFunc(world.PositionNames, func(n string) bool { return strings.EqualFold(n, s) })
	if i < 0 {
		return def, fmt.Errorf("unknown position %q", s)
	}
	return world.Position(i), nil
}

// ParseSocials decodes a socials document.
//
// Postcondition: Returns the socials keyed by lowercased name, or an error
// naming the first invalid entry.
func ParseSocials(data []byte) (map[string]Social, error) {
	var f socialFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing socials: %w", err)
	}
	out := make(map[string]Social, len(f.Socials))
	for i, s := range f.Socials {
		s.Name = strings.ToLower(strings.TrimSpace(s.Name))
		if s.Name == "" {
			return nil, fmt.Errorf("social %d: name must not be empty", i)
		}
		if _, dup := out[s.Name]; dup {
			return nil, fmt.Errorf("social %q: defined twice", s.Name)
		}
		if s.CharNoArg == "" {
			return nil, fmt.Errorf("social %q: char_no_arg must not be empty", s.Name)
		}
		var err error
		if s.minPos, err = parsePosition(s.MinPosition, world.PosResting); err != nil {
			return nil, fmt.Errorf("social %q: %w", s.Name, err)
		}
		if s.minVictim, err = parsePosition(s.MinVictimPosition, world.PosResting); err != nil {
			return nil, fmt.Errorf("social %q: %w", s.Name, err)
		}
		out[s.Name] = s
	}
	return out, nil
}

// LoadSocials reads the socials file at path.
func LoadSocials(path string) (map[string]Social, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading socials: %w", err)
	}
	return ParseSocials(data)
}

// addSocials appends a command entry for every social the table does not
// already name, in alphabetical order.
func (g *Game) addSocials() {
	names := make([]string, 0, len(g.socials))
	for name := range g.socials {
		if g.commandIndex(name) < 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		g.commands = append(g.commands, Command{
			Name:    name,
			MinPos:  g.socials[name].minPos,
			Handler: doAction,
			Social:  true,
		})
	}
}

func doAction(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	s, ok := g.socials[g.commands[cmd].Name]
	if !ok {
		comm.SendToChar(g.world, ch, "That action is not supported.\r\n")
		return
	}
	g.doSocial(ch, s, argument)
}

// performSocial makes ch perform the named social at target, as a mobile
// would. It reports whether the social exists.
func (g *Game) performSocial(ch world.CharID, name, target string) bool {
	s, ok := g.socials[name]
	if !ok {
		return false
	}
	g.doSocial(ch, s, target)
	return true
}

func (g *Game) doSocial(ch world.CharID, s Social, argument string) {
	w := g.world
	var arg string
	if s.CharFound != "" {
		arg, _ = command.OneArgument(argument)
	}
	if arg == "" {
		comm.SendToChar(w, ch, s.CharNoArg+"\r\n")
		comm.Act(w, s.OthersNoArg, s.Hide, ch, world.ObjID{}, nil, comm.ToRoom)
		return
	}
	vict, ok := w.GetCharRoomVis(ch, arg)
	switch {
	case !ok:
		comm.SendToChar(w, ch, s.NotFound+"\r\n")
	case vict == ch:
		comm.SendToChar(w, ch, s.CharAuto+"\r\n")
		comm.Act(w, s.OthersAuto, s.Hide, ch, world.ObjID{}, nil, comm.ToRoom)
	case w.Ch(vict).Position < s.minVictim:
		comm.Act(w, "$N is not in a proper position for that.", false, ch, world.ObjID{}, vict, comm.ToChar|comm.ToSleep)
	default:
		comm.Act(w, s.CharFound, false, ch, world.ObjID{}, vict, comm.ToChar|comm.ToSleep)
		comm.Act(w, s.OthersFound, s.Hide, ch, world.ObjID{}, vict, comm.ToNotVict)
		comm.Act(w, s.VictFound, s.Hide, ch, world.ObjID{}, vict, comm.ToVict)
	}
}
