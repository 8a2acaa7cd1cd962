package gameserver

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Bridged channel names.
const (
	ChanHoller = "holler"
	ChanGossip = "gossip"
	ChanWiznet = "wiznet"
)

// Communication subcommands.
const (
	scmdHoller = iota
	scmdShout
	scmdGossip
)

const (
	scmdWhisper = iota
	scmdAsk
)

const (
	scmdEmote = iota
	scmdEcho
)

const (
	levelCanShout  = 1
	hollerMoveCost = 20
)

// genComm describes one public channel.
type genComm struct {
	cannot  string
	verb    string
	offChan string
	// off is the preference that keeps a listener off the channel.
	off    world.PrefFlag
	bridge string
}

var genComms = []genComm{
	scmdHoller: {"You cannot holler!!\r\n", "holler", "", 0, ChanHoller},
	scmdShout:  {"You cannot shout!!\r\n", "shout", "Turn off your noshout flag first!\r\n", world.PrfDeaf, ""},
	scmdGossip: {"You cannot gossip!!\r\n", "gossip", "You aren't even on the channel!\r\n", world.PrfNoGoss, ChanGossip},
}

func noRepeat(c *world.Character) bool {
	return !c.IsNPC() && c.PrefFlags.Has(world.PrfNoRepeat)
}

// say makes ch speak msg to its room.
func (g *Game) say(ch world.CharID, msg string) {
	w := g.world
	comm.Act(w, "$n says, '"+msg+"'", false, ch, world.ObjID{}, nil, comm.ToRoom)
	if noRepeat(w.Ch(ch)) {
		comm.SendToChar(w, ch, msgOK)
		return
	}
	comm.SendToChar(w, ch, "You say, '"+command.DeleteDoubleDollar(msg)+"'\r\n")
}

func doSay(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	argument = command.SkipSpaces(argument)
	if argument == "" {
		comm.SendToChar(g.world, ch, "Yes, but WHAT do you want to say?\r\n")
		return
	}
	g.say(ch, argument)
}

// tellOK reports whether ch may tell vict something, explaining to ch
// when it may not.
func (g *Game) tellOK(ch, vict world.CharID) bool {
	w := g.world
	c, v := w.Ch(ch), w.Ch(vict)
	switch {
	case ch == vict:
		comm.SendToChar(w, ch, "You try to tell yourself something.\r\n")
	case !c.IsNPC() && c.PrefFlags.Has(world.PrfNoTell):
		comm.SendToChar(w, ch, "You can't tell other people while you have notell on.\r\n")
	case w.Room(c.InRoom).Flags.Has(world.RoomSoundproof):
		comm.SendToChar(w, ch, "The walls seem to absorb your words.\r\n")
	case !v.IsNPC() && v.Desc.IsZero():
		comm.Act(w, "$E's linkless at the moment.", false, ch, world.ObjID{}, vict, comm.ToChar|comm.ToSleep)
	case v.PlrFlags.Has(world.PlrWriting):
		comm.Act(w, "$E's writing a message right now; try again later.", false, ch, world.ObjID{}, vict, comm.ToChar|comm.ToSleep)
	case (!v.IsNPC() && v.PrefFlags.Has(world.PrfNoTell)) || w.Room(v.InRoom).Flags.Has(world.RoomSoundproof):
		comm.Act(w, "$E can't hear you.", false, ch, world.ObjID{}, vict, comm.ToChar|comm.ToSleep)
	default:
		return true
	}
	return false
}

func (g *Game) performTell(ch, vict world.CharID, msg string) {
	w := g.world
	comm.Act(w, "$n tells you, '"+msg+"'", false, ch, world.ObjID{}, vict, comm.ToVict|comm.ToSleep)
	c, v := w.Ch(ch), w.Ch(vict)
	if noRepeat(c) {
		comm.SendToChar(w, ch, msgOK)
	} else {
		comm.Act(w, "You tell $N, '"+msg+"'", false, ch, world.ObjID{}, vict, comm.ToChar|comm.ToSleep)
	}
	if !v.IsNPC() && !c.IsNPC() {
		v.Player.LastTell = c.IDNum
	}
}

func doTell(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	name, msg := command.HalfChop(argument)
	if name == "" || msg == "" {
		comm.SendToChar(w, ch, "Who do you wish to tell what??\r\n")
		return
	}
	var vict world.CharID
	var ok bool
	if w.Ch(ch).Level < world.LvlImmort {
		vict, ok = w.GetPlayerVis(ch, name, false)
	} else {
		vict, ok = w.GetCharWorldVis(ch, name)
	}
	if !ok {
		comm.SendToChar(w, ch, msgNoPerson)
		return
	}
	if g.tellOK(ch, vict) {
		g.performTell(ch, vict, msg)
	}
}

func doReply(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() {
		return
	}
	argument = command.SkipSpaces(argument)
	switch {
	case c.Player.LastTell == 0:
		comm.SendToChar(w, ch, "You have nobody to reply to!\r\n")
	case argument == "":
		comm.SendToChar(w, ch, "What is your reply?\r\n")
	default:
		for _, id := range w.CharList {
			t := w.Ch(id)
			if !t.IsNPC() && t.IDNum == c.Player.LastTell {
				if g.tellOK(ch, id) {
					g.performTell(ch, id, argument)
				}
				return
			}
		}
		comm.SendToChar(w, ch, "They are no longer playing.\r\n")
	}
}

func doSpecComm(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	sing, plur, others := "whisper to", "whispers to", "$n whispers something to $N."
	if subcmd == scmdAsk {
		sing, plur, others = "ask", "asks", "$n asks $N a question."
	}
	name, msg := command.HalfChop(argument)
	if name == "" || msg == "" {
		comm.SendToCharf(w, ch, "Whom do you want to %s.. and what??\r\n", sing)
		return
	}
	vict, ok := w.GetCharRoomVis(ch, name)
	switch {
	case !ok:
		comm.SendToChar(w, ch, msgNoPerson)
	case vict == ch:
		comm.SendToChar(w, ch, "You can't get your mouth close enough to your ear...\r\n")
	default:
		comm.Act(w, fmt.Sprintf("$n %s you, '%s'", plur, msg), false, ch, world.ObjID{}, vict, comm.ToVict)
		if noRepeat(w.Ch(ch)) {
			comm.SendToChar(w, ch, msgOK)
		} else {
			comm.SendToCharf(w, ch, "You %s %s, '%s'\r\n", sing, w.Ch(vict).DisplayName(), msg)
		}
		comm.Act(w, others, false, ch, world.ObjID{}, vict, comm.ToNotVict)
	}
}

func doPage(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	name, msg := command.HalfChop(argument)
	switch {
	case c.IsNPC():
		comm.SendToChar(w, ch, "Monsters can't page.. go away.\r\n")
		return
	case name == "":
		comm.SendToChar(w, ch, "Whom do you wish to page?\r\n")
		return
	}
	buf := "\a\a*$n* " + msg
	if strings.EqualFold(name, "all") {
		if c.Level <= world.LvlGod {
			comm.SendToChar(w, ch, "You will never be godly enough to do that!\r\n")
			return
		}
		for _, id := range w.Playing() {
			comm.Act(w, buf, false, ch, world.ObjID{}, w.Desc(id).Character, comm.ToVict)
		}
		return
	}
	vict, ok := w.GetCharWorldVis(ch, name)
	if !ok {
		comm.SendToChar(w, ch, "There is no such person in the game!\r\n")
		return
	}
	comm.Act(w, buf, false, ch, world.ObjID{}, vict, comm.ToVict)
	if noRepeat(c) {
		comm.SendToChar(w, ch, msgOK)
	} else {
		comm.Act(w, buf, false, ch, world.ObjID{}, vict, comm.ToChar)
	}
}

// doGenComm handles holler, shout and gossip.
func doGenComm(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	gc := genComms[subcmd]
	if c.Desc.IsZero() {
		return
	}
	switch {
	case c.PlrFlags.Has(world.PlrNoShout):
		comm.SendToChar(w, ch, gc.cannot)
		return
	case w.Room(c.InRoom).Flags.Has(world.RoomSoundproof):
		comm.SendToChar(w, ch, "The walls seem to absorb your words.\r\n")
		return
	case c.Level < levelCanShout:
		comm.SendToCharf(w, ch, "You must be at least level %d before you can %s.\r\n", levelCanShout, gc.verb)
		return
	case gc.off != 0 && c.PrefFlags.Has(gc.off):
		comm.SendToChar(w, ch, gc.offChan)
		return
	}
	argument = command.SkipSpaces(argument)
	if argument == "" {
		comm.SendToCharf(w, ch, "Yes, %s, fine, %s we must, but WHAT???\r\n", gc.verb, gc.verb)
		return
	}
	if subcmd == scmdHoller {
		if c.Points.Move < hollerMoveCost {
			comm.SendToChar(w, ch, "You're too exhausted to holler.\r\n")
			return
		}
		c.Points.Move -= hollerMoveCost
	}

	if noRepeat(c) {
		comm.SendToChar(w, ch, msgOK)
	} else {
		comm.SendToCharf(w, ch, "You %s, '%s'\r\n", gc.verb, argument)
	}

	buf := fmt.Sprintf("$n %ss, '%s'", gc.verb, argument)
	zone := w.Room(c.InRoom).Zone
	for _, id := range w.Playing() {
		if id == c.Desc {
			continue
		}
		i := w.Desc(id).Character
		ic := w.Ch(i)
		if !g.onChannel(ic, gc.off) {
			continue
		}
		if subcmd == scmdShout && (w.Room(ic.InRoom).Zone != zone || !ic.Awake()) {
			continue
		}
		comm.Act(w, buf, false, ch, world.ObjID{}, i, comm.ToVict|comm.ToSleep)
	}

	if gc.bridge != "" {
		g.publish(gc.bridge, c.DisplayName(), argument)
	}
}

// onChannel reports whether a playing character hears a public channel.
func (g *Game) onChannel(c *world.Character, off world.PrefFlag) bool {
	if off != 0 && c.PrefFlags.Has(off) {
		return false
	}
	if c.PlrFlags.Has(world.PlrWriting) {
		return false
	}
	return !g.world.Room(c.InRoom).Flags.Has(world.RoomSoundproof)
}

// doEcho handles emote and the immortal echo.
func doEcho(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	argument = command.SkipSpaces(argument)
	if argument == "" {
		comm.SendToChar(w, ch, "Yes.. but what?\r\n")
		return
	}
	buf := argument
	if subcmd == scmdEmote {
		buf = "$n " + argument
	}
	comm.Act(w, buf, false, ch, world.ObjID{}, nil, comm.ToRoom)
	if noRepeat(w.Ch(ch)) {
		comm.SendToChar(w, ch, msgOK)
	} else {
		comm.Act(w, buf, false, ch, world.ObjID{}, nil, comm.ToChar)
	}
}

func doWiznet(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	argument = command.DeleteDoubleDollar(command.SkipSpaces(argument))
	if argument == "" {
		comm.SendToChar(w, ch, "Usage: wiznet <text> | #<level> <text> | *<emotetext> |\r\n        wiznet @<level> *<emotetext> | wiz @\r\n")
		return
	}

	emote := false
	level := world.LvlImmort
	switch argument[0] {
	case '*', '#':
		emote = argument[0] == '*'
		argument = argument[1:]
		if first, _ := command.OneArgument(argument); command.IsNumber(first) {
			first, argument = command.HalfChop(argument)
			n, _ := strconv.Atoi(first)
			level = max(n, world.LvlImmort)
			if level > c.Level {
				comm.SendToChar(w, ch, "You can't wizline above your own level.\r\n")
				return
			}
		}
	case '@':
		var b strings.Builder
		b.WriteString("God channel status:\r\n")
		for _, id := range w.Playing() {
			i := w.Desc(id).Character
			ic := w.Ch(i)
			if ic.Level < world.LvlImmort || !w.CanSee(ch, i) {
				continue
			}
			fmt.Fprintf(&b, "  %-20s", ic.Name)
			if ic.PlrFlags.Has(world.PlrWriting) {
				b.WriteString(" (Writing)")
			}
			if ic.PlrFlags.Has(world.PlrMailing) {
				b.WriteString(" (Writing mail)")
			}
			if ic.PrefFlags.Has(world.PrfNoWiz) {
				b.WriteString(" (Offline)")
			}
			b.WriteString("\r\n")
		}
		comm.SendToChar(w, ch, b.String())
		return
	case '\\':
		argument = argument[1:]
	}

	if c.PrefFlags.Has(world.PrfNoWiz) {
		comm.SendToChar(w, ch, "You are offline!\r\n")
		return
	}
	argument = command.SkipSpaces(argument)
	if argument == "" {
		comm.SendToChar(w, ch, "Don't bother the gods like that!\r\n")
		return
	}
	prefix := ""
	if emote {
		prefix = "<--- "
	}
	seen := fmt.Sprintf("%s: %s%s\r\n", c.Name, prefix, argument)
	unseen := fmt.Sprintf("Someone: %s%s\r\n", prefix, argument)
	if level > world.LvlImmort {
		seen = fmt.Sprintf("%s: <%d> %s%s\r\n", c.Name, level, prefix, argument)
		unseen = fmt.Sprintf("Someone: <%d> %s%s\r\n", level, prefix, argument)
	}
	for _, id := range w.Playing() {
		i := w.Desc(id).Character
		ic := w.Ch(i)
		if ic.Level < level || ic.PrefFlags.Has(world.PrfNoWiz) || ic.PlrFlags.Any(world.PlrWriting|world.PlrMailing) {
			continue
		}
		if id == c.Desc && noRepeat(c) {
			continue
		}
		if w.CanSee(i, ch) {
			comm.SendToChar(w, i, seen)
		} else {
			comm.SendToChar(w, i, unseen)
		}
	}
	if noRepeat(c) {
		comm.SendToChar(w, ch, msgOK)
	}
	if level == world.LvlImmort && c.InvisLevel() == 0 {
		g.publish(ChanWiznet, c.Name, prefix+argument)
	}
}

// publish relays a channel message to the other servers.
func (g *Game) publish(channel, from, text string) {
	if g.bridge == nil {
		return
	}
	if err := g.bridge.Publish(channel, from, text); err != nil {
		g.logger.Warn("channel publish failed", zap.String("channel", channel), zap.Error(err))
	}
}

// DeliverRemote shows a channel message that arrived from another
// server. It must run on the game goroutine; the bridge reaches it
// through Submit.
func (g *Game) DeliverRemote(channel, server, from, text string) {
	w := g.world
	from = from + "@" + server
	text = command.DeleteDoubleDollar(text)
	for _, id := range w.Playing() {
		i := w.Desc(id).Character
		ic := w.Ch(i)
		switch channel {
		case ChanGossip:
			if g.onChannel(ic, world.PrfNoGoss) {
				comm.SendToCharf(w, i, "%s gossips, '%s'\r\n", from, text)
			}
		case ChanHoller:
			if g.onChannel(ic, 0) {
				comm.SendToCharf(w, i, "%s hollers, '%s'\r\n", from, text)
			}
		case ChanWiznet:
			if ic.Level >= world.LvlImmort && !ic.PrefFlags.Has(world.PrfNoWiz) &&
				!ic.PlrFlags.Any(world.PlrWriting|world.PlrMailing) {
				comm.SendToCharf(w, i, "%s: %s\r\n", from, text)
			}
		default:
			g.logger.Debug("dropping message for unknown channel", zap.String("channel", channel))
			return
		}
	}
}
