package gameserver

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Quit subcommands.
const (
	scmdQui = iota
	scmdQuit
)

// Toggle subcommands.
const (
	scmdNoSummon = iota
	scmdNoHassle
	scmdBrief
	scmdCompact
	scmdNoTell
	scmdDeaf
	scmdNoGossip
	scmdNoWiz
	scmdQuest
	scmdRoomFlags
	scmdNoRepeat
	scmdHolylight
	scmdSlowNS
	scmdAutoExit
	scmdTrack
)

const (
	maxTitleLength = 80
	// maxExpGain caps the experience a single award may grant.
	maxExpGain = 100000
)

// toggle is one preference flipped by doGenTog. Config toggles have no
// flag and flip a game setting instead.
type toggle struct {
	flag world.PrefFlag
	off  string
	on   string
}

var toggles = []toggle{
	scmdNoSummon:  {world.PrfSummonable, "You are now safe from summoning by other players.\r\n", "You may now be summoned by other players.\r\n"},
	scmdNoHassle:  {world.PrfNoHassle, "Nohassle disabled.\r\n", "Nohassle enabled.\r\n"},
	scmdBrief:     {world.PrfBrief, "Brief mode off.\r\n", "Brief mode on.\r\n"},
	scmdCompact:   {world.PrfCompact, "Compact mode off.\r\n", "Compact mode on.\r\n"},
	scmdNoTell:    {world.PrfNoTell, "You can now hear tells.\r\n", "You are now deaf to tells.\r\n"},
	scmdDeaf:      {world.PrfDeaf, "You can now hear shouts.\r\n", "You are now deaf to shouts.\r\n"},
	scmdNoGossip:  {world.PrfNoGoss, "You can now hear gossip.\r\n", "You are now deaf to gossip.\r\n"},
	scmdNoWiz:     {world.PrfNoWiz, "You can now hear the Wiz-channel.\r\n", "You are now deaf to the Wiz-channel.\r\n"},
	scmdQuest:     {world.PrfQuest, "You are no longer part of the Quest.\r\n", "Okay, you are part of the Quest!\r\n"},
	scmdRoomFlags: {world.PrfRoomFlags, "You will no longer see the room flags.\r\n", "You will now see the room flags.\r\n"},
	scmdNoRepeat:  {world.PrfNoRepeat, "You will now have your communication repeated.\r\n", "You will no longer have your communication repeated.\r\n"},
	scmdHolylight: {world.PrfHolylight, "HolyLight mode off.\r\n", "HolyLight mode on.\r\n"},
	scmdSlowNS:    {0, "Nameserver_is_slow changed to NO; IP addresses will now be resolved.\r\n", "Nameserver_is_slow changed to YES; sitenames will no longer be resolved.\r\n"},
	scmdAutoExit:  {world.PrfAutoExit, "Autoexits disabled.\r\n", "Autoexits enabled.\r\n"},
	scmdTrack:     {0, "Will no longer track through doors.\r\n", "Will now track through doors.\r\n"},
}

func doQuit(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() || c.Desc.IsZero() {
		return
	}
	switch {
	case subcmd != scmdQuit && c.Level < world.LvlImmort:
		comm.SendToChar(w, ch, "You have to type quit--no less, to quit!\r\n")
	case c.Position == world.PosFighting:
		comm.SendToChar(w, ch, "No way!  You're fighting for your life!\r\n")
	default:
		comm.Act(w, "$n has left the game.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		g.mudlog(logNrm, max(world.LvlImmort, c.InvisLevel()), c.Name+" has quit the game.")
		comm.SendToChar(w, ch, "Goodbye, friend.. Come back soon!\r\n")
		if w.Room(c.InRoom).Flags.Has(world.RoomHouse) && !c.PlrFlags.Has(world.PlrLoadRoom) {
			c.Player.LoadRoom = w.RoomVnum(c.InRoom)
		}
		g.rentSave(ch)
		g.writeAliases(ch)
		w.ExtractChar(ch)
	}
}

// writeAliases stores ch's alias list.
func (g *Game) writeAliases(ch world.CharID) {
	c := g.world.Ch(ch)
	if c.IsNPC() || c.Player == nil || c.IDNum == 0 {
		return
	}
	if err := g.stores.Aliases.SaveAliases(c.IDNum, c.Player.Aliases); err != nil {
		g.logger.Warn("SYSERR: saving aliases", zap.String("name", c.Name), zap.Error(err))
	}
}

func doSave(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() || c.Desc.IsZero() {
		return
	}
	if cmd != cmdReserved {
		if g.cfg.AutosaveMinutes > 0 && c.Level <= world.LvlImmort {
			comm.SendToChar(w, ch, "Saving aliases.\r\n")
			g.writeAliases(ch)
			return
		}
		comm.SendToCharf(w, ch, "Saving %s and aliases.\r\n", c.Name)
	}
	g.writeAliases(ch)
	g.saveChar(ch)
	g.crashSave(ch)
}

// doNotHere answers commands that only special procedures implement.
func doNotHere(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	comm.SendToChar(g.world, ch, "Sorry, but you cannot do that here!\r\n")
}

func doTitle(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	argument = command.DeleteDoubleDollar(command.SkipSpaces(argument))
	switch {
	case c.IsNPC():
		comm.SendToChar(w, ch, "Your title is fine... go away.\r\n")
	case c.PlrFlags.Has(world.PlrNoTitle):
		comm.SendToChar(w, ch, "You can't title yourself -- you shouldn't have abused it!\r\n")
	case strings.ContainsAny(argument, "()"):
		comm.SendToChar(w, ch, "Titles can't contain the ( or ) characters.\r\n")
	case len(argument) > maxTitleLength:
		comm.SendToCharf(w, ch, "Sorry, titles can't be longer than %d characters.\r\n", maxTitleLength)
	default:
		c.Title = argument
		comm.SendToCharf(w, ch, "Okay, you're now %s %s.\r\n", c.Name, c.Title)
	}
}

func doGenTog(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() {
		return
	}
	if subcmd < 0 || subcmd >= len(toggles) {
		g.logger.Error("SYSERR: Unknown subcmd in do_gen_toggle", zap.Int("subcmd", subcmd))
		return
	}
	t := toggles[subcmd]
	var on bool
	switch subcmd {
	case scmdSlowNS:
		g.cfg.Nameserver = !g.cfg.Nameserver
		on = !g.cfg.Nameserver
	case scmdTrack:
		g.cfg.TrackThroughDoors = !g.cfg.TrackThroughDoors
		on = g.cfg.TrackThroughDoors
	default:
		on = c.PrefFlags.Toggle(t.flag)
	}
	if on {
		comm.SendToChar(w, ch, t.on)
	} else {
		comm.SendToChar(w, ch, t.off)
	}
}

func doDisplay(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	const usage = "Usage: prompt { { H | M | V } | all | none }\r\n"
	if c.IsNPC() {
		comm.SendToChar(w, ch, "Monsters don't need displays.  Go away.\r\n")
		return
	}
	argument = strings.ToLower(command.SkipSpaces(argument))
	all := world.PrfDispHP | world.PrfDispMana | world.PrfDispMove
	switch argument {
	case "":
		comm.SendToChar(w, ch, usage)
		return
	case "on", "all":
		c.PrefFlags.Set(all)
	case "off", "none":
		c.PrefFlags.Clear(all)
	default:
		var bits world.PrefFlag
		for _, r := range argument {
			switch r {
			case 'h':
				bits |= world.PrfDispHP
			case 'm':
				bits |= world.PrfDispMana
			case 'v':
				bits |= world.PrfDispMove
			default:
				comm.SendToChar(w, ch, usage)
				return
			}
		}
		c.PrefFlags.Clear(all)
		c.PrefFlags.Set(bits)
	}
	comm.SendToChar(w, ch, msgOK)
}

func doAlias(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() {
		return
	}
	name, repl := command.AnyOneArg(argument)
	name = strings.ToLower(name)
	repl = command.SkipSpaces(repl)

	if name == "" {
		var b strings.Builder
		b.WriteString("Currently defined aliases:\r\n")
		if len(c.Player.Aliases) == 0 {
			b.WriteString(" None.\r\n")
		}
		for _, a := range c.Player.Aliases {
			fmt.Fprintf(&b, "%-15s %s\r\n", a.Name, a.Replacement)
		}
		comm.SendToChar(w, ch, b.String())
		return
	}

	aliases, existed := c.Player.Aliases.Delete(name)
	c.Player.Aliases = aliases
	if repl == "" {
		if existed {
			comm.SendToChar(w, ch, "Alias deleted.\r\n")
		} else {
			comm.SendToChar(w, ch, "No such alias.\r\n")
		}
		return
	}
	if name == "alias" {
		comm.SendToChar(w, ch, "You can't alias 'alias'.\r\n")
		return
	}
	c.Player.Aliases = c.Player.Aliases.Set(name, command.DeleteDoubleDollar(repl))
	comm.SendToChar(w, ch, "Alias added.\r\n")
}

func (g *Game) performGroup(ch, vict world.CharID) bool {
	w := g.world
	v := w.Ch(vict)
	if v.AffFlags.Has(world.AffGroup) || !w.CanSee(ch, vict) {
		return false
	}
	v.AffFlags.Set(world.AffGroup)
	if ch != vict {
		comm.Act(w, "$N is now a member of your group.", false, ch, world.ObjID{}, vict, comm.ToChar)
	}
	comm.Act(w, "You are now a member of $n's group.", false, ch, world.ObjID{}, vict, comm.ToVict)
	comm.Act(w, "$N is now a member of $n's group.", false, ch, world.ObjID{}, vict, comm.ToNotVict)
	return true
}

func (g *Game) printGroup(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	if !c.AffFlags.Has(world.AffGroup) {
		comm.SendToChar(w, ch, "But you are not the member of a group!\r\n")
		return
	}
	comm.SendToChar(w, ch, "Your group consists of:\r\n")
	leader := ch
	if !c.Master.IsZero() {
		leader = c.Master
	}
	line := func(k world.CharID, suffix string) {
		kc := w.Ch(k)
		p := kc.Points
		comm.Act(w, fmt.Sprintf("     [%3dH %3dM %3dV] [%2d %s] $N%s", p.Hit, p.Mana, p.Move, kc.Level, kc.Class.Abbrev(), suffix),
			false, ch, world.ObjID{}, k, comm.ToChar)
	}
	if w.Ch(leader).AffFlags.Has(world.AffGroup) {
		line(leader, " (Head of group)")
	}
	for _, f := range w.Ch(leader).Followers {
		if w.Ch(f).AffFlags.Has(world.AffGroup) {
			line(f, "")
		}
	}
}

func doGroup(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		g.printGroup(ch)
		return
	}
	if !c.Master.IsZero() {
		comm.Act(w, "You can not enroll group members without being head of a group.", false, ch, world.ObjID{}, nil, comm.ToChar)
		return
	}
	if arg == "all" {
		g.performGroup(ch, ch)
		found := false
		for _, f := range c.Followers {
			if g.performGroup(ch, f) {
				found = true
			}
		}
		if !found {
			comm.SendToChar(w, ch, "Everyone following you is already in your group.\r\n")
		}
		return
	}
	vict, ok := w.GetCharRoomVis(ch, arg)
	switch {
	case !ok:
		comm.SendToChar(w, ch, msgNoPerson)
	case w.Ch(vict).Master != ch && vict != ch:
		comm.Act(w, "$N must follow you to enter your group.", false, ch, world.ObjID{}, vict, comm.ToChar)
	case !w.Ch(vict).AffFlags.Has(world.AffGroup):
		g.performGroup(ch, vict)
	default:
		if ch != vict {
			comm.Act(w, "$N is no longer a member of your group.", false, ch, world.ObjID{}, vict, comm.ToChar)
		}
		comm.Act(w, "You have been kicked out of $n's group!", false, ch, world.ObjID{}, vict, comm.ToVict)
		comm.Act(w, "$N has been kicked out of $n's group!", false, ch, world.ObjID{}, vict, comm.ToNotVict)
		w.Ch(vict).AffFlags.Clear(world.AffGroup)
	}
}

// gainExp adds experience to a mortal player. Levels are granted by
// immortals with advance, so experience only accumulates.
func (g *Game) gainExp(ch world.CharID, gain int) {
	c := g.world.Ch(ch)
	if c.IsNPC() || c.Level < 1 || c.Level >= world.LvlImmort {
		return
	}
	if gain > 0 {
		c.Points.Exp += min(gain, maxExpGain)
		return
	}
	c.Points.Exp = max(0, c.Points.Exp+gain)
}
