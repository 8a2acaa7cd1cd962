package gameserver

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// CommandFunc runs one command. cmd is the command's index in the table
// and subcmd distinguishes commands sharing a handler.
type CommandFunc func(g *Game, ch world.CharID, argument string, cmd, subcmd int)

// Command is one entry of the command table. Entries are searched in
// order, so earlier entries win abbreviations.
type Command struct {
	Name     string
	MinPos   world.Position
	Handler  CommandFunc
	MinLevel int
	Subcmd   int
	// Social entries take their messages from the socials table.
	Social bool
}

// Stock replies shared by many commands.
const (
	msgOK       = "Ok.\r\n"
	msgNoPerson = "No-one by that name here.\r\n"
	msgNoEffect = "Nothing seems to happen.\r\n"
	msgHuh      = "Huh?!?\r\n"
)

// cmdReserved is the table's first entry. Special procedures see it as
// the command on periodic calls.
const cmdReserved = 0

var positionMessages = map[world.Position]string{
	world.PosDead:      "Lie still; you are DEAD!!! :-(\r\n",
	world.PosIncap:     "You are in a pretty bad shape, unable to do anything!\r\n",
	world.PosMortallyW: "You are in a pretty bad shape, unable to do anything!\r\n",
	world.PosStunned:   "All you can do right now is think about the stars!\r\n",
	world.PosSleeping:  "In your dreams, or what?\r\n",
	world.PosResting:   "Nah... You feel too relaxed to do that..\r\n",
	world.PosSitting:   "Maybe you should get on your feet first?\r\n",
	world.PosFighting:  "No way!  You're fighting for your life!\r\n",
}

// findCommand returns the index of the first command abbreviated by arg
// that level may use, or -1.
func (g *Game) findCommand(arg string, level int) int {
	for i := cmdReserved + 1; i < len(g.commands); i++ {
		c := &g.commands[i]
		if command.IsAbbrev(arg, c.Name) && level >= c.MinLevel {
			return i
		}
	}
	return -1
}

// isMove reports whether cmd is one of the direction commands, which
// occupy the entries right after cmdReserved in direction order.
func isMove(cmd int) bool {
	return cmd > cmdReserved && cmd <= int(world.NumDirs)
}

// cmdIs reports whether cmd is the command named name.
func (g *Game) cmdIs(cmd int, name string) bool {
	return cmd > cmdReserved && cmd < len(g.commands) && g.commands[cmd].Name == name
}

// commandIndex returns the index of the command named exactly name.
func (g *Game) commandIndex(name string) int {
	for i := range g.commands {
		if g.commands[i].Name == name {
			return i
		}
	}
	return -1
}

// fname returns the first keyword of a keyword list.
func fname(namelist string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(namelist), " ")
	return strings.ToLower(first)
}

// commandInterpreter parses line and runs the matching command for ch.
func (g *Game) commandInterpreter(ch world.CharID, line string) {
	w := g.world
	c := w.Ch(ch)
	c.AffFlags.Clear(world.AffHide)

	line = command.SkipSpaces(line)
	if line == "" {
		return
	}

	var arg, rest string
	if r, size := utf8.DecodeRuneInString(line); !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		arg, rest = line[:size], line[size:]
	} else {
		arg, rest = command.AnyOneArg(line)
	}

	idx := g.findCommand(arg, c.Level)
	if idx < 0 {
		comm.SendToChar(w, ch, msgHuh)
		return
	}
	cmd := &g.commands[idx]
	if g.metrics != nil {
		g.metrics.Commands.Inc()
	}

	switch {
	case !c.IsNPC() && c.PlrFlags.Has(world.PlrFrozen) && c.Level < world.LvlImpl:
		comm.SendToChar(w, ch, "You try, but the mind-numbing cold prevents you...\r\n")
	case cmd.Handler == nil:
		comm.SendToChar(w, ch, "Sorry, that command hasn't been implemented yet.\r\n")
	case c.IsNPC() && cmd.MinLevel >= world.LvlImmort:
		comm.SendToChar(w, ch, "You can't use immortal commands while switched.\r\n")
	case c.Position < cmd.MinPos:
		comm.SendToChar(w, ch, positionMessages[c.Position])
	default:
		if g.special(ch, idx, rest) {
			return
		}
		cmd.Handler(g, ch, rest, idx, cmd.Subcmd)
	}
}
