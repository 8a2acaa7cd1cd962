package gameserver

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

// Wizard utility subcommands.
const (
	scmdPardon = iota
	scmdNoTitle
	scmdSquelch
	scmdFreeze
	scmdThaw
	scmdUnaffect
)

// Poof subcommands.
const (
	scmdPoofIn = iota
	scmdPoofOut
)

// Date subcommands.
const (
	scmdDate = iota
	scmdUptime
)

const scmdShutdown = 1

var logTypes = []string{"off", "brief", "normal", "complete"}

// findTargetRoom resolves a vnum, character or object name to a room the
// immortal may enter. It reports failures to ch itself.
func (g *Game) findTargetRoom(ch world.CharID, raw string) (world.Rnum, bool) {
	w := g.world
	arg, _ := command.OneArgument(raw)
	if arg == "" {
		comm.SendToChar(w, ch, "You must supply a room number or name.\r\n")
		return world.Nowhere, false
	}

	location := world.Nowhere
	if arg[0] >= '0' && arg[0] <= '9' && !strings.Contains(arg, ".") {
		n, err := strconv.Atoi(arg)
		if err == nil {
			location = w.RealRoom(world.Vnum(n))
		}
		if location == world.Nowhere {
			comm.SendToChar(w, ch, "No room exists with that number.\r\n")
			return world.Nowhere, false
		}
	} else if vict, ok := w.GetCharWorldVis(ch, arg); ok {
		location = w.Ch(vict).InRoom
		if location == world.Nowhere {
			comm.SendToChar(w, ch, "That character is currently lost.\r\n")
			return world.Nowhere, false
		}
	} else if o, ok := w.GetObjVis(ch, arg); ok {
		location = g.objRoom(o)
		if location == world.Nowhere {
			comm.SendToChar(w, ch, "That object is currently not in a room.\r\n")
			return world.Nowhere, false
		}
	} else {
		comm.SendToChar(w, ch, "Nothing exists by that name.\r\n")
		return world.Nowhere, false
	}

	c := w.Ch(ch)
	if c.Level >= world.LvlGrGod {
		return location, true
	}
	room := w.Room(location)
	switch {
	case room.Flags.Has(world.RoomGodRoom):
		comm.SendToChar(w, ch, "You are not godly enough to use that room!\r\n")
	case room.Flags.Has(world.RoomPrivate) && len(room.People) > 1:
		comm.SendToChar(w, ch, "There's a private conversation going on in that room.\r\n")
	default:
		return location, true
	}
	return world.Nowhere, false
}

// objRoom is the room an object is in, or carried or worn in.
func (g *Game) objRoom(o world.ObjID) world.Rnum {
	w := g.world
	for {
		loc := w.Obj(o).Loc
		switch loc.Kind {
		case world.LocRoom:
			return loc.Room
		case world.LocCarried, world.LocWorn:
			return w.Ch(loc.Char).InRoom
		case world.LocContainer:
			o = loc.Obj
		default:
			return world.Nowhere
		}
	}
}

func doAt(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	where, what := command.HalfChop(argument)
	if where == "" {
		comm.SendToChar(w, ch, "You must supply a room number or a name.\r\n")
		return
	}
	if what == "" {
		comm.SendToChar(w, ch, "What do you want to do there?\r\n")
		return
	}
	location, ok := g.findTargetRoom(ch, where)
	if !ok {
		return
	}
	original := w.Ch(ch).InRoom
	w.MoveChar(ch, location)
	g.commandInterpreter(ch, what)

	// The command may have moved or extracted ch.
	if c, ok := w.Chars.Lookup(ch); ok && !w.PendingExtraction(ch) && c.InRoom == location {
		w.MoveChar(ch, original)
	}
}

func poof(msg, fallback string) string {
	if msg == "" {
		return "$n " + fallback
	}
	return "$n " + msg
}

func doGoto(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	location, ok := g.findTargetRoom(ch, argument)
	if !ok {
		return
	}
	var in, out string
	if p := w.Ch(ch).Player; p != nil {
		in, out = p.PoofIn, p.PoofOut
	}
	comm.Act(w, poof(out, "disappears in a puff of smoke."), true, ch, world.ObjID{}, nil, comm.ToRoom)
	w.MoveChar(ch, location)
	comm.Act(w, poof(in, "appears with an ear-splitting bang."), true, ch, world.ObjID{}, nil, comm.ToRoom)
	g.lookAtRoom(ch, false)
}

// transfer brings vict to ch's room.
func (g *Game) transfer(ch, vict world.CharID) {
	w := g.world
	comm.Act(w, "$n disappears in a mushroom cloud.", false, vict, world.ObjID{}, nil, comm.ToRoom)
	w.MoveChar(vict, w.Ch(ch).InRoom)
	comm.Act(w, "$n arrives from a puff of smoke.", false, vict, world.ObjID{}, nil, comm.ToRoom)
	comm.Act(w, "$n has transferred you!", false, ch, world.ObjID{}, vict, comm.ToVict)
	g.lookAtRoom(vict, false)
}

func doTrans(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	switch {
	case arg == "":
		comm.SendToChar(w, ch, "Whom do you wish to transfer?\r\n")
		return
	case arg != "all":
		vict, ok := w.GetCharWorldVis(ch, arg)
		if !ok {
			comm.SendToChar(w, ch, msgNoPerson)
			return
		}
		if vict == ch {
			comm.SendToChar(w, ch, "That doesn't make much sense, does it?\r\n")
			return
		}
		if v := w.Ch(vict); c.Level < v.Level && !v.IsNPC() {
			comm.SendToChar(w, ch, "Go transfer someone your own size.\r\n")
			return
		}
		g.transfer(ch, vict)
	default:
		if c.Level < world.LvlGrGod {
			comm.SendToChar(w, ch, "I think not.\r\n")
			return
		}
		for _, id := range w.Playing() {
			vict := w.Desc(id).Character
			if vict == ch || w.Ch(vict).Level >= c.Level {
				continue
			}
			g.transfer(ch, vict)
		}
	}
	comm.SendToChar(w, ch, msgOK)
}

func doTeleport(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	who, where := command.TwoArguments(argument)
	if who == "" {
		comm.SendToChar(w, ch, "Whom do you wish to teleport?\r\n")
		return
	}
	vict, ok := w.GetCharWorldVis(ch, who)
	switch {
	case !ok:
		comm.SendToChar(w, ch, msgNoPerson)
		return
	case vict == ch:
		comm.SendToChar(w, ch, "Use 'goto' to teleport yourself.\r\n")
		return
	case w.Ch(vict).Level >= w.Ch(ch).Level:
		comm.SendToChar(w, ch, "Maybe you shouldn't do that.\r\n")
		return
	case where == "":
		comm.SendToChar(w, ch, "Where do you wish to send this person?\r\n")
		return
	}
	target, ok := g.findTargetRoom(ch, where)
	if !ok {
		return
	}
	comm.SendToChar(w, ch, msgOK)
	comm.Act(w, "$n disappears in a puff of smoke.", false, vict, world.ObjID{}, nil, comm.ToRoom)
	w.MoveChar(vict, target)
	comm.Act(w, "$n arrives from a puff of smoke.", false, vict, world.ObjID{}, nil, comm.ToRoom)
	comm.Act(w, "$n has teleported you!", false, ch, world.ObjID{}, vict, comm.ToVict)
	g.lookAtRoom(vict, false)
}

func doSend(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	who, msg := command.HalfChop(argument)
	if who == "" {
		comm.SendToChar(w, ch, "Send what to who?\r\n")
		return
	}
	vict, ok := w.GetCharWorldVis(ch, who)
	if !ok {
		comm.SendToChar(w, ch, msgNoPerson)
		return
	}
	comm.SendToChar(w, vict, msg+"\r\n")
	if w.Ch(ch).PrefFlags.Has(world.PrfNoRepeat) {
		comm.SendToChar(w, ch, "Sent.\r\n")
	} else {
		comm.SendToCharf(w, ch, "You send '%s' to %s.\r\n", msg, w.Ch(vict).DisplayName())
	}
}

func doGecho(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	msg := command.DeleteDoubleDollar(command.SkipSpaces(argument))
	if msg == "" {
		comm.SendToChar(w, ch, "That must be a mistake...\r\n")
		return
	}
	for _, id := range w.Playing() {
		if d := w.Desc(id); d.Character != ch {
			d.Write(msg + "\r\n")
		}
	}
	if w.Ch(ch).PrefFlags.Has(world.PrfNoRepeat) {
		comm.SendToChar(w, ch, msgOK)
	} else {
		comm.SendToChar(w, ch, msg+"\r\n")
	}
}

func doLoad(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	kind, num := command.TwoArguments(argument)
	if kind == "" || num == "" || num[0] < '0' || num[0] > '9' {
		comm.SendToChar(w, ch, "Usage: load { obj | mob } <number>\r\n")
		return
	}
	if !command.IsNumber(num) {
		comm.SendToChar(w, ch, "That is not a number.\r\n")
		return
	}
	n, _ := strconv.Atoi(num)
	switch {
	case command.IsAbbrev(kind, "mob"):
		rnum := w.RealMobile(world.Vnum(n))
		if rnum < 0 {
			comm.SendToChar(w, ch, "There is no monster with that number.\r\n")
			return
		}
		mob := w.ReadMobile(rnum)
		w.CharToRoom(mob, w.Ch(ch).InRoom)
		comm.Act(w, "$n makes a quaint, magical gesture with one hand.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		comm.Act(w, "$n has created $N!", false, ch, world.ObjID{}, mob, comm.ToRoom)
		comm.Act(w, "You create $N.", false, ch, world.ObjID{}, mob, comm.ToChar)
	case command.IsAbbrev(kind, "obj"):
		rnum := w.RealObject(world.Vnum(n))
		if rnum < 0 {
			comm.SendToChar(w, ch, "There is no object with that number.\r\n")
			return
		}
		o := w.ReadObject(rnum)
		w.ObjToChar(o, ch)
		comm.Act(w, "$n makes a strange magical gesture.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		comm.Act(w, "$n has created $p!", false, ch, o, nil, comm.ToRoom)
		comm.Act(w, "You create $p.", false, ch, o, nil, comm.ToChar)
	default:
		comm.SendToChar(w, ch, "That'll have to be either 'obj' or 'mob'.\r\n")
	}
}

func doPurge(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.Act(w, "$n gestures... You are surrounded by scorching flames!", false, ch, world.ObjID{}, nil, comm.ToRoom)
		comm.SendToRoom(w, c.InRoom, "The world seems a little cleaner.\r\n")
		room := w.Room(c.InRoom)
		for _, id := range slices.Clone(room.People) {
			v := w.Ch(id)
			if !v.IsNPC() {
				continue
			}
			for _, o := range slices.Clone(v.Carrying) {
				w.ExtractObj(o)
			}
			for pos := range world.NumWears {
				if o := v.Equipment[pos]; !o.IsZero() {
					w.ExtractObj(o)
				}
			}
			w.ExtractChar(id)
		}
		for _, o := range slices.Clone(room.Contents) {
			w.ExtractObj(o)
		}
		return
	}

	if vict, ok := w.GetCharRoomVis(ch, arg); ok {
		v := w.Ch(vict)
		if !v.IsNPC() && c.Level <= v.Level {
			comm.SendToChar(w, ch, "Fuuuuuuuuu!\r\n")
			return
		}
		comm.Act(w, "$n disintegrates $N.", false, ch, world.ObjID{}, vict, comm.ToNotVict)
		if !v.IsNPC() {
			g.mudlog(logBrf, max(world.LvlGod, c.InvisLevel()), fmt.Sprintf("(GC) %s has purged %s.", c.Name, v.Name))
			if d, ok := w.Descs.Lookup(v.Desc); ok {
				d.State = world.ConClose
				d.Character = world.CharID{}
				v.Desc = world.DescID{}
			}
		}
		w.ExtractChar(vict)
	} else if o, ok := w.GetObjInListVis(ch, arg, w.Room(c.InRoom).Contents); ok {
		comm.Act(w, "$n destroys $p.", false, ch, o, nil, comm.ToRoom)
		w.ExtractObj(o)
	} else {
		comm.SendToChar(w, ch, "Nothing here by that name.\r\n")
		return
	}
	comm.SendToChar(w, ch, msgOK)
}

func doSnoop(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	d, ok := w.Descs.Lookup(c.Desc)
	if !ok {
		return
	}
	stop := func() {
		target, ok := w.Descs.Lookup(d.Snooping)
		if !ok {
			comm.SendToChar(w, ch, "You aren't snooping anyone.\r\n")
			return
		}
		comm.SendToChar(w, ch, "You stop snooping.\r\n")
		target.SnoopBy = world.DescID{}
		d.Snooping = world.DescID{}
	}

	arg, _ := command.OneArgument(argument)
	if arg == "" {
		stop()
		return
	}
	vict, ok := w.GetCharWorldVis(ch, arg)
	if !ok {
		comm.SendToChar(w, ch, "No such person around.\r\n")
		return
	}
	vd, ok := w.Descs.Lookup(w.Ch(vict).Desc)
	switch {
	case !ok:
		comm.SendToChar(w, ch, "There's no link.. nothing to snoop.\r\n")
		return
	case vict == ch:
		stop()
		return
	case !vd.SnoopBy.IsZero():
		comm.SendToChar(w, ch, "Busy already. \r\n")
		return
	case vd.Snooping == c.Desc:
		comm.SendToChar(w, ch, "Don't be stupid.\r\n")
		return
	}
	body := vict
	if !vd.Original.IsZero() {
		body = vd.Original
	}
	if w.Ch(body).Level >= c.Level {
		comm.SendToChar(w, ch, "You can't.\r\n")
		return
	}
	comm.SendToChar(w, ch, msgOK)
	if old, ok := w.Descs.Lookup(d.Snooping); ok {
		old.SnoopBy = world.DescID{}
	}
	d.Snooping = w.Ch(vict).Desc
	vd.SnoopBy = c.Desc
}

func doSwitch(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	d, ok := w.Descs.Lookup(c.Desc)
	if !ok {
		return
	}
	arg, _ := command.OneArgument(argument)
	if !d.Original.IsZero() {
		comm.SendToChar(w, ch, "You're already switched.\r\n")
		return
	}
	if arg == "" {
		comm.SendToChar(w, ch, "Switch with who?\r\n")
		return
	}
	vict, ok := w.GetCharWorldVis(ch, arg)
	if !ok {
		comm.SendToChar(w, ch, "No such character.\r\n")
		return
	}
	v := w.Ch(vict)
	switch {
	case vict == ch:
		comm.SendToChar(w, ch, "Hee hee... we are jolly funny today, eh?\r\n")
	case !v.Desc.IsZero():
		comm.SendToChar(w, ch, "You can't do that, the body is already in use!\r\n")
	case c.Level < world.LvlImpl && !v.IsNPC():
		comm.SendToChar(w, ch, "You aren't holy enough to use a mortal's body.\r\n")
	case c.Level < world.LvlGrGod && w.Room(v.InRoom).Flags.Has(world.RoomGodRoom):
		comm.SendToChar(w, ch, "You are not godly enough to use that room!\r\n")
	default:
		comm.SendToChar(w, ch, msgOK)
		d.Character = vict
		d.Original = ch
		v.Desc = c.Desc
		c.Desc = world.DescID{}
	}
}

func doReturn(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	g.returnToOriginal(ch)
}

// returnToOriginal puts a switched descriptor back in its own body. A
// connection that took over the original body meanwhile is disconnected.
func (g *Game) returnToOriginal(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	d, ok := w.Descs.Lookup(c.Desc)
	if !ok || d.Original.IsZero() {
		return
	}
	orig, ok := w.Chars.Lookup(d.Original)
	if !ok {
		d.Original = world.CharID{}
		comm.SendToChar(w, ch, "Your original body is gone.\r\n")
		return
	}
	comm.SendToChar(w, ch, "You return to your original body.\r\n")
	if other, ok := w.Descs.Lookup(orig.Desc); ok {
		other.Character = world.CharID{}
		other.State = world.ConDisconnect
	}
	orig.Desc = c.Desc
	d.Character = d.Original
	d.Original = world.CharID{}
	c.Desc = world.DescID{}
}

func doAdvance(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	name, lvl := command.TwoArguments(argument)
	if name == "" {
		comm.SendToChar(w, ch, "Advance who?\r\n")
		return
	}
	vict, ok := w.GetCharWorldVis(ch, name)
	if !ok {
		comm.SendToChar(w, ch, "That player is not here.\r\n")
		return
	}
	v := w.Ch(vict)
	if c.Level <= v.Level {
		comm.SendToChar(w, ch, "Maybe that's not such a great idea.\r\n")
		return
	}
	if v.IsNPC() {
		comm.SendToChar(w, ch, "NO!  Not on NPC's.\r\n")
		return
	}
	newLevel, err := strconv.Atoi(lvl)
	switch {
	case err != nil || newLevel <= 0:
		comm.SendToChar(w, ch, "That's not a level!\r\n")
		return
	case newLevel > world.LvlImpl:
		comm.SendToCharf(w, ch, "%d is the highest possible level.\r\n", world.LvlImpl)
		return
	case newLevel > c.Level:
		comm.SendToChar(w, ch, "Yeah, right.\r\n")
		return
	case newLevel == v.Level:
		comm.SendToChar(w, ch, "They are already at that level.\r\n")
		return
	}

	oldLevel := v.Level
	if newLevel < oldLevel {
		g.doStart(vict)
		comm.SendToChar(w, vict, "You are momentarily enveloped by darkness!\r\nYou feel somewhat diminished.\r\n")
	} else {
		comm.Act(w, "$n makes some strange gestures.\r\n"+
			"A strange feeling comes upon you,\r\n"+
			"Like a giant hand, light comes down\r\n"+
			"from above, grabbing your body, that\r\n"+
			"begins to pulse with colored lights\r\n"+
			"from inside.\r\n\r\n"+
			"Your head seems to be filled with demons\r\n"+
			"from another plane as your body dissolves\r\n"+
			"to the elements of time and space itself.\r\n"+
			"Suddenly a silent explosion of light\r\n"+
			"snaps you back to reality.\r\n\r\n"+
			"You feel slightly different.", false, ch, world.ObjID{}, vict, comm.ToVict)
	}
	comm.SendToChar(w, ch, msgOK)

	if newLevel < oldLevel {
		g.mudlog(logBrf, max(world.LvlGod, c.InvisLevel()),
			fmt.Sprintf("(GC) %s demoted %s from level %d to %d.", c.Name, v.Name, oldLevel, newLevel))
	} else {
		g.mudlog(logBrf, max(world.LvlGod, c.InvisLevel()),
			fmt.Sprintf("(GC) %s has advanced %s to level %d (from %d)", c.Name, v.Name, newLevel, oldLevel))
	}
	g.setLevel(vict, newLevel)
	if oldLevel >= world.LvlImmort && newLevel < world.LvlImmort {
		w.Ch(vict).PrefFlags.Clear(world.PrfLog1 | world.PrfLog2 | world.PrfNoHassle | world.PrfHolylight)
	}
	g.saveChar(vict)
}

// setLevel raises or lowers a player to level, granting the gains of
// every level passed on the way up.
func (g *Game) setLevel(ch world.CharID, level int) {
	c := g.world.Ch(ch)
	if level <= c.Level {
		c.Level = level
		return
	}
	for c.Level < level {
		c.Level++
		g.advanceLevel(ch)
		c = g.world.Ch(ch)
	}
}

func doRestore(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Whom do you wish to restore?\r\n")
		return
	}
	vict, ok := w.GetCharWorldVis(ch, arg)
	if !ok {
		comm.SendToChar(w, ch, msgNoPerson)
		return
	}
	v := w.Ch(vict)
	if !v.IsNPC() && vict != ch && v.Level >= c.Level {
		comm.SendToChar(w, ch, "They don't need your help.\r\n")
		return
	}
	v.Points.Hit = v.Points.MaxHit
	v.Points.Mana = v.Points.MaxMana
	v.Points.Move = v.Points.MaxMove
	if !v.IsNPC() && c.Level >= world.LvlGrGod && v.Level >= world.LvlGrGod {
		v.Abilities = world.Abilities{Str: 25, Int: 25, Wis: 25, Dex: 25, Con: 25, Cha: 25}
	}
	comm.SendToChar(w, ch, msgOK)
	comm.Act(w, "You have been fully healed by $N!", false, vict, world.ObjID{}, ch, comm.ToChar)
}

func (g *Game) immortVis(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	if c.Player.InvisLevel == 0 && !c.AffFlags.Any(world.AffHide|world.AffInvisible) {
		comm.SendToChar(w, ch, "You are already fully visible.\r\n")
		return
	}
	c.Player.InvisLevel = 0
	w.AffectFromChar(ch, "invisibility")
	c.AffFlags.Clear(world.AffHide | world.AffInvisible)
	comm.SendToChar(w, ch, "You are now fully visible.\r\n")
}

func (g *Game) immortInvis(ch world.CharID, level int) {
	w := g.world
	c := w.Ch(ch)
	for _, id := range w.Room(c.InRoom).People {
		if id == ch {
			continue
		}
		t := w.Ch(id)
		if t.Level >= c.Player.InvisLevel && t.Level < level {
			comm.Act(w, "You blink and suddenly realize that $n is gone.", false, ch, world.ObjID{}, id, comm.ToVict)
		}
		if t.Level < c.Player.InvisLevel && t.Level >= level {
			comm.Act(w, "You suddenly realize that $n is standing beside you.", false, ch, world.ObjID{}, id, comm.ToVict)
		}
	}
	c.Player.InvisLevel = level
	comm.SendToCharf(w, ch, "Your invisibility level is %d.\r\n", level)
}

func doInvis(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() {
		comm.SendToChar(w, ch, "You can't do that!\r\n")
		return
	}
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		if c.Player.InvisLevel > 0 {
			g.immortVis(ch)
		} else {
			g.immortInvis(ch, c.Level)
		}
		return
	}
	level, _ := strconv.Atoi(arg)
	switch {
	case level > c.Level:
		comm.SendToChar(w, ch, "You can't go invisible above your own level.\r\n")
	case level < 1:
		g.immortVis(ch)
	default:
		g.immortInvis(ch, level)
	}
}

func doPoofset(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	c := g.world.Ch(ch)
	if c.IsNPC() {
		return
	}
	msg := command.SkipSpaces(argument)
	switch subcmd {
	case scmdPoofIn:
		c.Player.PoofIn = msg
	case scmdPoofOut:
		c.Player.PoofOut = msg
	default:
		return
	}
	comm.SendToChar(g.world, ch, msgOK)
}

func doShutdown(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	if subcmd != scmdShutdown {
		comm.SendToChar(w, ch, "If you want to shut something down, say so!\r\n")
		return
	}
	name := w.Ch(ch).Name
	arg, _ := command.OneArgument(argument)
	switch arg {
	case "":
	case "reboot":
		comm.SendToAll(w, "Rebooting.. come back in a minute or two.\r\n")
	case "die", "pause":
		comm.SendToAll(w, "Shutting down for maintenance.\r\n")
	default:
		comm.SendToChar(w, ch, "Unknown shutdown option.\r\n")
		return
	}
	g.mudlog(logBrf, world.LvlImpl, fmt.Sprintf("(GC) Shutdown by %s.", name))
	g.stopping = true
	g.shutdownReason = "shutdown by " + name
}

func doWizlock(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	when := "currently"
	if arg != "" {
		value, err := strconv.Atoi(arg)
		if err != nil || value < 0 || value > w.Ch(ch).Level {
			comm.SendToChar(w, ch, "Invalid wizlock value.\r\n")
			return
		}
		g.restrict = value
		when = "now"
	}
	switch g.restrict {
	case 0:
		comm.SendToCharf(w, ch, "The game is %s completely open.\r\n", when)
	case 1:
		comm.SendToCharf(w, ch, "The game is %s closed to new players.\r\n", when)
	default:
		comm.SendToCharf(w, ch, "Only level %d and above may enter the game %s.\r\n", g.restrict, when)
	}
}

func doDate(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	now := g.now()
	if subcmd == scmdDate {
		comm.SendToCharf(w, ch, "Current machine time: %s\r\n", now.Format(time.ANSIC))
		return
	}
	up := now.Sub(g.boot)
	days := int(up.Hours()) / 24
	plural := "s"
	if days == 1 {
		plural = ""
	}
	comm.SendToCharf(w, ch, "Up since %s: %d day%s, %d:%02d\r\n",
		g.boot.Format(time.ANSIC), days, plural, int(up.Hours())%24, int(up.Minutes())%60)
}

func doLast(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "For whom do you wish to search?\r\n")
		return
	}
	rec, err := g.loadPlayer(arg)
	if err != nil || rec.Deleted() {
		comm.SendToChar(w, ch, "There is no such player.\r\n")
		return
	}
	if rec.Level > c.Level && c.Level < world.LvlImpl {
		comm.SendToChar(w, ch, "You are not sufficiently godly for that!\r\n")
		return
	}
	comm.SendToCharf(w, ch, "[%5d] [%2d %s] %-12s : %-18s : %-20s\r\n",
		rec.IDNum, rec.Level, world.Class(rec.Class).Abbrev(), rec.Name, rec.Host,
		rec.LastLogon.Format(time.ANSIC))
}

func doForce(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, what := command.HalfChop(argument)
	forced := fmt.Sprintf("$n has forced you to '%s'.", what)
	if arg == "" || what == "" {
		comm.SendToChar(w, ch, "Whom do you wish to force do what?\r\n")
		return
	}
	logLevel := max(world.LvlGod, c.InvisLevel())
	force := func(vict world.CharID) {
		comm.Act(w, forced, true, ch, world.ObjID{}, vict, comm.ToVict)
		g.commandInterpreter(vict, what)
	}

	if c.Level < world.LvlGrGod || (arg != "all" && arg != "room") {
		vict, ok := w.GetCharWorldVis(ch, arg)
		if !ok {
			comm.SendToChar(w, ch, msgNoPerson)
			return
		}
		if v := w.Ch(vict); !v.IsNPC() && c.Level <= v.Level {
			comm.SendToChar(w, ch, "No, no, no!\r\n")
			return
		}
		comm.SendToChar(w, ch, msgOK)
		g.mudlog(logNrm, logLevel, fmt.Sprintf("(GC) %s forced %s to %s", c.Name, w.Ch(vict).DisplayName(), what))
		force(vict)
		return
	}

	comm.SendToChar(w, ch, msgOK)
	var victims []world.CharID
	if arg == "room" {
		g.mudlog(logNrm, logLevel, fmt.Sprintf("(GC) %s forced room %d to %s", c.Name, w.RoomVnum(c.InRoom), what))
		victims = slices.Clone(w.Room(c.InRoom).People)
	} else {
		g.mudlog(logNrm, logLevel, fmt.Sprintf("(GC) %s forced all to %s", c.Name, what))
		for _, id := range w.Playing() {
			victims = append(victims, w.Desc(id).Character)
		}
	}
	for _, vict := range victims {
		v, ok := w.Chars.Lookup(vict)
		if !ok || w.PendingExtraction(vict) || vict == ch || (!v.IsNPC() && v.Level >= c.Level) {
			continue
		}
		force(vict)
	}
}

func doWizutil(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Yes, but for whom?!?\r\n")
		return
	}
	vict, ok := w.GetCharWorldVis(ch, arg)
	if !ok {
		comm.SendToChar(w, ch, "There is no such player.\r\n")
		return
	}
	v := w.Ch(vict)
	if v.IsNPC() {
		comm.SendToChar(w, ch, "You can't do that to a mob!\r\n")
		return
	}
	if v.Level > c.Level {
		comm.SendToChar(w, ch, "Hmmm...you'd better not.\r\n")
		return
	}
	logLevel := max(world.LvlGod, c.InvisLevel())
	onOff := func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	}

	switch subcmd {
	case scmdPardon:
		if !v.PlrFlags.Any(world.PlrThief | world.PlrKiller) {
			comm.SendToChar(w, ch, "Your victim is not flagged.\r\n")
			return
		}
		v.PlrFlags.Clear(world.PlrThief | world.PlrKiller)
		comm.SendToChar(w, ch, "Pardoned.\r\n")
		comm.SendToChar(w, vict, "You have been pardoned by the Gods!\r\n")
		g.mudlog(logBrf, logLevel, fmt.Sprintf("(GC) %s pardoned by %s", v.Name, c.Name))
	case scmdNoTitle:
		msg := fmt.Sprintf("(GC) Notitle %s for %s by %s.", onOff(v.PlrFlags.Toggle(world.PlrNoTitle)), v.Name, c.Name)
		g.mudlog(logNrm, logLevel, msg)
		comm.SendToChar(w, ch, msg+"\r\n")
	case scmdSquelch:
		msg := fmt.Sprintf("(GC) Squelch %s for %s by %s.", onOff(v.PlrFlags.Toggle(world.PlrNoShout)), v.Name, c.Name)
		g.mudlog(logBrf, logLevel, msg)
		comm.SendToChar(w, ch, msg+"\r\n")
	case scmdFreeze:
		if vict == ch {
			comm.SendToChar(w, ch, "Oh, yeah, THAT'S real smart...\r\n")
			return
		}
		if v.PlrFlags.Has(world.PlrFrozen) {
			comm.SendToChar(w, ch, "Your victim is already pretty cold.\r\n")
			return
		}
		v.PlrFlags.Set(world.PlrFrozen)
		v.Player.FreezeLevel = c.Level
		comm.SendToChar(w, vict, "A bitter wind suddenly rises and drains every erg of heat from your body!\r\nYou feel frozen!\r\n")
		comm.SendToChar(w, ch, "Frozen.\r\n")
		comm.Act(w, "A sudden cold wind conjured from nowhere freezes $n!", false, vict, world.ObjID{}, nil, comm.ToRoom)
		g.mudlog(logBrf, logLevel, fmt.Sprintf("(GC) %s frozen by %s.", v.Name, c.Name))
	case scmdThaw:
		if !v.PlrFlags.Has(world.PlrFrozen) {
			comm.SendToChar(w, ch, "Sorry, your victim is not morbidly encased in ice at the moment.\r\n")
			return
		}
		if v.Player.FreezeLevel > c.Level {
			comm.SendToCharf(w, ch, "Sorry, a level %d God froze %s... you can't unfreeze %s.\r\n",
				v.Player.FreezeLevel, v.Name, v.HimHer())
			return
		}
		g.mudlog(logBrf, logLevel, fmt.Sprintf("(GC) %s un-frozen by %s.", v.Name, c.Name))
		v.PlrFlags.Clear(world.PlrFrozen)
		comm.SendToChar(w, vict, "A fireball suddenly explodes in front of you, melting the ice!\r\nYou feel thawed.\r\n")
		comm.SendToChar(w, ch, "Thawed.\r\n")
		comm.Act(w, "A sudden fireball conjured from nowhere thaws $n!", false, vict, world.ObjID{}, nil, comm.ToRoom)
	case scmdUnaffect:
		if len(v.Affects) == 0 {
			comm.SendToChar(w, ch, "Your victim does not have any affections!\r\n")
			return
		}
		for len(w.Ch(vict).Affects) > 0 {
			w.AffectRemove(vict, 0)
		}
		comm.SendToChar(w, vict, "There is a brief flash of light!\r\nYou feel slightly different.\r\n")
		comm.SendToChar(w, ch, "All spells removed.\r\n")
	default:
		g.mudlog(logBrf, world.LvlImpl, fmt.Sprintf("SYSERR: Unknown subcmd %d passed to do_wizutil", subcmd))
		return
	}
	g.saveChar(vict)
}

func doZreset(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "You must specify a zone.\r\n")
		return
	}
	logLevel := max(world.LvlGrGod, c.InvisLevel())
	if arg[0] == '*' {
		for z := range w.Zones {
			w.ResetZone(z)
		}
		comm.SendToChar(w, ch, "Reset world.\r\n")
		g.mudlog(logNrm, logLevel, fmt.Sprintf("(GC) %s reset entire world.", c.Name))
		return
	}
	z := -1
	if arg[0] == '.' {
		z = w.ZoneOf(c.InRoom)
	} else if n, err := strconv.Atoi(arg); err == nil {
		z = slices.IndexFunc(w.Zones, func(zn world.Zone) bool { return int(zn.Vnum) == n })
	}
	if z < 0 || z >= len(w.Zones) {
		comm.SendToChar(w, ch, "Invalid zone number.\r\n")
		return
	}
	w.ResetZone(z)
	zone := &w.Zones[z]
	comm.SendToCharf(w, ch, "Reset zone %d (#%d): %s.\r\n", z, zone.Vnum, zone.Name)
	g.mudlog(logNrm, logLevel, fmt.Sprintf("(GC) %s reset zone %d (%s)", c.Name, z, zone.Name))
}

func doDC(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	arg, _ := command.OneArgument(argument)
	num, err := strconv.Atoi(arg)
	if err != nil {
		comm.SendToChar(w, ch, "Usage: DC <user number> (type USERS for a list)\r\n")
		return
	}
	if num < 1 || num > len(w.DescList) {
		comm.SendToChar(w, ch, "No such connection.\r\n")
		return
	}
	d := w.Desc(w.DescList[num-1])
	if t, ok := w.Chars.Lookup(d.Character); ok && t.Level >= c.Level {
		if !w.CanSee(ch, d.Character) {
			comm.SendToChar(w, ch, "No such connection.\r\n")
		} else {
			comm.SendToChar(w, ch, "Umm.. maybe that's not such a good idea...\r\n")
		}
		return
	}
	if d.State == world.ConDisconnect || d.State == world.ConClose {
		comm.SendToChar(w, ch, "They're already being disconnected.\r\n")
		return
	}
	if d.Playing() {
		d.State = world.ConDisconnect
	} else {
		d.State = world.ConClose
	}
	comm.SendToCharf(w, ch, "Connection #%d closed.\r\n", num)
	g.mudlog(logNrm, max(world.LvlGod, c.InvisLevel()), fmt.Sprintf("(GC) Connection closed by %s.", c.Name))
}

func doSyslog(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	current := 0
	if c.PrefFlags.Has(world.PrfLog1) {
		current |= 1
	}
	if c.PrefFlags.Has(world.PrfLog2) {
		current |= 2
	}
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToCharf(w, ch, "Your syslog is currently %s.\r\n", logTypes[current])
		return
	}
	tp := command.SearchBlock(arg, logTypes, false)
	if tp < 0 {
		comm.SendToChar(w, ch, "Usage: syslog { Off | Brief | Normal | Complete }\r\n")
		return
	}
	c.PrefFlags.Clear(world.PrfLog1 | world.PrfLog2)
	if tp&1 != 0 {
		c.PrefFlags.Set(world.PrfLog1)
	}
	if tp&2 != 0 {
		c.PrefFlags.Set(world.PrfLog2)
	}
	comm.SendToCharf(w, ch, "Your syslog is now %s.\r\n", logTypes[tp])
}

func doReload(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "*" {
		arg = "all"
	}
	if arg == "" {
		comm.SendToChar(w, ch, "Usage: reload { all | <text file> }\r\n")
		return
	}
	if err := g.texts.Reload(arg); err != nil {
		comm.SendToChar(w, ch, "Unknown reload option.\r\n")
		return
	}
	comm.SendToChar(w, ch, msgOK)
}

const banListFormat = "%-25s  %-8s  %-10s  %-16s\r\n"

func doBan(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if command.SkipSpaces(argument) == "" {
		if len(g.bans) == 0 {
			comm.SendToChar(w, ch, "No sites are banned.\r\n")
			return
		}
		var b strings.Builder
		fmt.Fprintf(&b, banListFormat, "Banned Site Name", "Ban Type", "Banned On", "Banned By")
		dashes := strings.Repeat("-", 33)
		fmt.Fprintf(&b, banListFormat, dashes, dashes, dashes, dashes)
		for _, ban := range g.bans {
			date := "Unknown"
			if !ban.Date.IsZero() {
				date = ban.Date.Format("Mon Jan 2")
			}
			fmt.Fprintf(&b, banListFormat, ban.Site, ban.Type, date, ban.Name)
		}
		g.page(ch, b.String())
		return
	}

	flag, site := command.TwoArguments(argument)
	if flag == "" || site == "" {
		comm.SendToChar(w, ch, "Usage: ban {all | select | new} site_name\r\n")
		return
	}
	typ := slices.Index(storage.BanTypeNames, flag)
	if typ <= int(storage.BanNot) {
		comm.SendToChar(w, ch, "Flag must be ALL, SELECT, or NEW.\r\n")
		return
	}
	site = strings.ToLower(site)
	if slices.ContainsFunc(g.bans, func(b storage.Ban) bool { return b.Site == site }) {
		comm.SendToChar(w, ch, "That site has already been banned -- unban it to change the ban type.\r\n")
		return
	}
	ban := storage.Ban{Site: site, Type: storage.BanType(typ), Name: c.Name, Date: g.now()}
	if err := g.stores.Bans.AddBan(ban); err != nil && !errors.Is(err, storage.ErrBanExists) {
		g.mudlog(logBrf, world.LvlImpl, "SYSERR: saving ban list: "+err.Error())
	}
	g.bans = append(g.bans, ban)
	g.mudlog(logNrm, max(world.LvlGod, c.InvisLevel()),
		fmt.Sprintf("%s has banned %s for %s players.", c.Name, site, ban.Type))
	comm.SendToChar(w, ch, "Site banned.\r\n")
}

func doUnban(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	site, _ := command.OneArgument(argument)
	if site == "" {
		comm.SendToChar(w, ch, "A site to unban might help.\r\n")
		return
	}
	site = strings.ToLower(site)
	i := slices.IndexFunc(g.bans, func(b storage.Ban) bool { return b.Site == site })
	if i < 0 {
		comm.SendToChar(w, ch, "That site is not currently banned.\r\n")
		return
	}
	ban := g.bans[i]
	g.bans = slices.Delete(g.bans, i, i+1)
	if _, err := g.stores.Bans.RemoveBan(site); err != nil && !errors.Is(err, storage.ErrBanNotFound) {
		g.mudlog(logBrf, world.LvlImpl, "SYSERR: saving ban list: "+err.Error())
	}
	comm.SendToChar(w, ch, "Site unbanned.\r\n")
	g.mudlog(logNrm, max(world.LvlGod, c.InvisLevel()),
		fmt.Sprintf("%s removed the %s-player ban on %s.", c.Name, ban.Type, ban.Site))
}

func (g *Game) statRoom(ch world.CharID) {
	w := g.world
	r := w.Ch(ch).InRoom
	room := w.Room(r)
	var b strings.Builder
	fmt.Fprintf(&b, "Room name: %s\r\n", room.Name)
	fmt.Fprintf(&b, "Zone: [%3d], VNum: [%5d], RNum: [%5d], Type: %s\r\n",
		w.Zones[room.Zone].Vnum, room.Vnum, r, world.SectorNames[room.Sector])
	spec := room.SpecProc
	if spec == "" {
		spec = "None"
	}
	fmt.Fprintf(&b, "SpecProc: %s, Flags: %s\r\n", spec, room.Flags.Names(world.RoomFlagNames))
	fmt.Fprintf(&b, "Description:\r\n%s", room.Description)
	if len(room.ExtraDescs) > 0 {
		b.WriteString("Extra descs:")
		for _, ed := range room.ExtraDescs {
			b.WriteString(" " + ed.Keywords)
		}
		b.WriteString("\r\n")
	}
	var people []string
	for _, id := range room.People {
		if w.CanSee(ch, id) {
			kind := "PC"
			if w.Ch(id).IsNPC() {
				kind = "MOB"
			}
			people = append(people, fmt.Sprintf("%s(%s)", w.Pers(id, ch), kind))
		}
	}
	if len(people) > 0 {
		fmt.Fprintf(&b, "Chars present: %s\r\n", strings.Join(people, ", "))
	}
	var contents []string
	for _, o := range room.Contents {
		if w.CanSeeObj(ch, o) {
			contents = append(contents, w.Obj(o).ShortDescr)
		}
	}
	if len(contents) > 0 {
		fmt.Fprintf(&b, "Contents: %s\r\n", strings.Join(contents, ", "))
	}
	for dir := range world.Direction(world.NumDirs) {
		ex := room.Exits[dir]
		if ex == nil {
			continue
		}
		to := world.NoVnum
		if ex.ToRoom != world.Nowhere {
			to = w.RoomVnum(ex.ToRoom)
		}
		fmt.Fprintf(&b, "Exit %-5s:  To: [%5d], Key: [%5d], Keywrd: %s, Type: %s\r\n",
			dir, to, ex.Key, ex.Keyword, ex.Info.Names(world.ExitFlagNames))
	}
	g.page(ch, b.String())
}

func (g *Game) statObject(ch world.CharID, o world.ObjID) {
	w := g.world
	obj := w.Obj(o)
	var b strings.Builder
	fmt.Fprintf(&b, "Name: '%s', Aliases: %s\r\n", obj.ShortDescr, obj.Name)
	spec := obj.SpecProc
	if spec == "" {
		spec = "none"
	}
	fmt.Fprintf(&b, "VNum: [%5d], RNum: [%5d], Type: %s, SpecProc: %s\r\n",
		obj.Vnum, obj.ProtoRnum, world.ItemTypeNames[obj.Type], spec)
	fmt.Fprintf(&b, "L-Des: %s\r\n", obj.Description)
	fmt.Fprintf(&b, "Can be worn on: %s\r\n", obj.WearFlags.Names(world.WearFlagNames))
	fmt.Fprintf(&b, "Extra flags   : %s\r\n", obj.ExtraFlags.Names(world.ItemFlagNames))
	fmt.Fprintf(&b, "Weight: %d, Value: %d, Cost/day: %d, Timer: %d\r\n",
		obj.Weight, obj.Cost, obj.Rent, obj.Timer)
	fmt.Fprintf(&b, "Values 0-3: [%d] [%d] [%d] [%d]\r\n",
		obj.Values[0], obj.Values[1], obj.Values[2], obj.Values[3])
	if len(obj.Contains) > 0 {
		names := make([]string, 0, len(obj.Contains))
		for _, in := range obj.Contains {
			names = append(names, w.Obj(in).ShortDescr)
		}
		fmt.Fprintf(&b, "Contents: %s\r\n", strings.Join(names, ", "))
	}
	g.page(ch, b.String())
}

func (g *Game) statCharacter(ch, k world.CharID) {
	w := g.world
	c := w.Ch(k)
	var b strings.Builder
	kind := "PC"
	if c.IsNPC() {
		kind = "MOB"
	}
	fmt.Fprintf(&b, "%s %s '%s'  IDNum: [%5d], In room [%5d]\r\n",
		world.SexNames[c.Sex], kind, c.Name, c.IDNum, w.RoomVnum(c.InRoom))
	if c.IsNPC() {
		fmt.Fprintf(&b, "Alias: %s, VNum: [%5d]\r\n", c.Name, w.MobProtos[c.ProtoRnum].Vnum)
		fmt.Fprintf(&b, "L-Des: %s", c.LongDescr)
	} else {
		fmt.Fprintf(&b, "Title: %s\r\n", c.Title)
	}
	fmt.Fprintf(&b, "Class: %s, Lev: [%2d], XP: [%7d], Align: [%4d]\r\n",
		c.Class, c.Level, c.Points.Exp, c.Alignment)
	a := c.Abilities
	fmt.Fprintf(&b, "Str: [%d]  Int: [%d]  Wis: [%d]  Dex: [%d]  Con: [%d]  Cha: [%d]\r\n",
		a.Str, a.Int, a.Wis, a.Dex, a.Con, a.Cha)
	p := c.Points
	fmt.Fprintf(&b, "Hit p.:[%d/%d]  Mana p.:[%d/%d]  Move p.:[%d/%d]\r\n",
		p.Hit, p.MaxHit, p.Mana, p.MaxMana, p.Move, p.MaxMove)
	fmt.Fprintf(&b, "Coins: [%9d], Bank: [%9d]\r\n", p.Gold, p.BankGold)
	fmt.Fprintf(&b, "Pos: %s, Idle Timer (in tics) [%d]\r\n", c.Position, c.Timer)
	if c.IsNPC() {
		fmt.Fprintf(&b, "NPC flags: %s\r\n", c.MobFlags.Names(world.MobFlagNames))
	} else {
		fmt.Fprintf(&b, "PLR: %s\r\n", c.PlrFlags.Names(world.PlayerFlagNames))
		fmt.Fprintf(&b, "PRF: %s\r\n", c.PrefFlags.Names(world.PrefFlagNames))
		fmt.Fprintf(&b, "Hunger: %d, Thirst: %d, Drunk: %d\r\n",
			c.Player.Conditions[world.CondFull], c.Player.Conditions[world.CondThirst], c.Player.Conditions[world.CondDrunk])
	}
	fmt.Fprintf(&b, "Carried: weight: %d, items: %d\r\n", c.CarryWeight, len(c.Carrying))
	if m, ok := w.Chars.Lookup(c.Master); ok {
		fmt.Fprintf(&b, "Master is: %s\r\n", m.DisplayName())
	}
	if len(c.Followers) > 0 {
		names := make([]string, 0, len(c.Followers))
		for _, f := range c.Followers {
			names = append(names, w.Pers(f, ch))
		}
		fmt.Fprintf(&b, "Followers are: %s\r\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "AFF: %s\r\n", c.AffFlags.Names(world.AffectFlagNames))
	for _, af := range c.Affects {
		fmt.Fprintf(&b, "SPL: (%3dhr) %-21s\r\n", af.Duration+1, af.Type)
	}
	g.page(ch, b.String())
}

func doStat(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	what, name := command.HalfChop(argument)
	name, _ = command.OneArgument(name)
	switch {
	case what == "":
		comm.SendToChar(w, ch, "Stats on who or what?\r\n")
	case command.IsAbbrev(what, "room"):
		g.statRoom(ch)
	case command.IsAbbrev(what, "mob"):
		if name == "" {
			comm.SendToChar(w, ch, "Stats on which mobile?\r\n")
		} else if vict, ok := w.GetCharWorldVis(ch, name); ok {
			g.statCharacter(ch, vict)
		} else {
			comm.SendToChar(w, ch, "No such mobile around.\r\n")
		}
	case command.IsAbbrev(what, "player"):
		if name == "" {
			comm.SendToChar(w, ch, "Stats on which player?\r\n")
		} else if vict, ok := w.GetPlayerVis(ch, name, false); ok {
			g.statCharacter(ch, vict)
		} else {
			comm.SendToChar(w, ch, "No such player around.\r\n")
		}
	case command.IsAbbrev(what, "object"):
		if name == "" {
			comm.SendToChar(w, ch, "Stats on which object?\r\n")
		} else if o, ok := w.GetObjVis(ch, name); ok {
			g.statObject(ch, o)
		} else {
			comm.SendToChar(w, ch, "No such object around.\r\n")
		}
	default:
		c := w.Ch(ch)
		if o, _, ok := w.GetObjInEquipVis(ch, what); ok {
			g.statObject(ch, o)
		} else if o, ok := w.GetObjInListVis(ch, what, c.Carrying); ok {
			g.statObject(ch, o)
		} else if vict, ok := w.GetCharWorldVis(ch, what); ok {
			g.statCharacter(ch, vict)
		} else if o, ok := w.GetObjVis(ch, what); ok {
			g.statObject(ch, o)
		} else {
			comm.SendToChar(w, ch, "Nothing around by that name.\r\n")
		}
	}
}
