package gameserver

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Door subcommands.
const (
	scmdOpen = iota
	scmdClose
	scmdUnlock
	scmdLock
)

var doorVerbs = [...]string{"open", "close", "unlock", "lock"}

const (
	needOpen = 1 << iota
	needClosed
	needUnlocked
	needLocked
)

var doorNeeds = [...]int{
	needClosed | needUnlocked,
	needOpen,
	needClosed | needLocked,
	needClosed | needUnlocked,
}

// tunnelSize is how many characters a tunnel room holds.
const tunnelSize = 1

func doMove(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	g.performMove(ch, world.Direction(subcmd), false)
}

// hasBoat reports whether ch can cross deep water.
func (g *Game) hasBoat(ch world.CharID) bool {
	w := g.world
	c := w.Ch(ch)
	if c.IsImmortal() || c.AffFlags.Has(world.AffWaterwalk) {
		return true
	}
	for _, o := range c.Carrying {
		if w.Obj(o).Type == world.ItemBoat {
			return true
		}
	}
	for _, o := range c.Equipment {
		if obj, ok := w.Objs.Lookup(o); ok && obj.Type == world.ItemBoat {
			return true
		}
	}
	return false
}

// simpleMove moves ch one room in dir without checking the exit itself.
// followed is set for a follower being dragged along, which also lets the
// special procedures of the old room veto the move.
//
// Postcondition: Returns true if ch moved.
func (g *Game) simpleMove(ch world.CharID, dir world.Direction, followed bool) bool {
	w := g.world
	if followed && g.special(ch, int(dir)+1, "") {
		return false
	}
	c := w.Ch(ch)
	if c.AffFlags.Has(world.AffCharm) && !c.Master.IsZero() && c.InRoom == w.Ch(c.Master).InRoom {
		comm.SendToChar(w, ch, "The thought of leaving your master makes you weep.\r\n")
		comm.Act(w, "$n bursts into tears.", false, ch, world.ObjID{}, nil, comm.ToRoom)
		return false
	}

	from := c.InRoom
	to := w.Room(from).Exits[dir].ToRoom
	if w.Room(from).Sector == world.SectWaterNoSwim || w.Room(to).Sector == world.SectWaterNoSwim {
		if !g.hasBoat(ch) {
			comm.SendToChar(w, ch, "You need a boat to go there.\r\n")
			return false
		}
	}

	need := (world.MovementLoss[w.Room(from).Sector] + world.MovementLoss[w.Room(to).Sector]) / 2
	if c.Points.Move < need && !c.IsNPC() {
		if followed && !c.Master.IsZero() {
			comm.SendToChar(w, ch, "You are too exhausted to follow.\r\n")
		} else {
			comm.SendToChar(w, ch, "You are too exhausted.\r\n")
		}
		return false
	}
	if w.Room(to).Flags.Has(world.RoomTunnel) && len(w.Room(to).People) >= tunnelSize {
		comm.SendToChar(w, ch, "There isn't enough room there for more than one person!\r\n")
		return false
	}
	if w.Room(to).Flags.Has(world.RoomGodRoom) && c.Level < world.LvlGrGod {
		comm.SendToChar(w, ch, "You aren't godly enough to use that room!\r\n")
		return false
	}

	if c.Level < world.LvlImmort && !c.IsNPC() {
		c.Points.Move -= need
	}
	sneaking := c.AffFlags.Has(world.AffSneak)
	if !sneaking {
		comm.Act(w, fmt.Sprintf("$n leaves %s.", dir), true, ch, world.ObjID{}, nil, comm.ToRoom)
	}
	w.MoveChar(ch, to)
	if !sneaking {
		comm.Act(w, "$n has arrived.", true, ch, world.ObjID{}, nil, comm.ToRoom)
	}
	c = w.Ch(ch)
	if !c.Desc.IsZero() {
		g.lookAtRoom(ch, false)
	}

	if w.Room(to).Flags.Has(world.RoomDeath) && c.Level < world.LvlImmort {
		g.mudlog(logBrf, world.LvlImmort, fmt.Sprintf("%s hit death trap #%d (%s)",
			c.DisplayName(), w.RoomVnum(to), w.Room(to).Name))
		g.deathCry(ch)
		w.ExtractChar(ch)
		return false
	}
	return true
}

// performMove checks the exit, moves ch and brings along the followers
// standing in the room it left.
func (g *Game) performMove(ch world.CharID, dir world.Direction, followed bool) bool {
	w := g.world
	c := w.Ch(ch)
	if !dir.Valid() || !c.Fighting.IsZero() {
		return false
	}
	ex := w.Exit(ch, dir)
	switch {
	case ex == nil || ex.ToRoom == world.Nowhere:
		comm.SendToChar(w, ch, "Alas, you cannot go that way...\r\n")
		return false
	case ex.IsClosed():
		if ex.Keyword != "" {
			comm.SendToCharf(w, ch, "The %s seems to be closed.\r\n", fname(ex.Keyword))
		} else {
			comm.SendToChar(w, ch, "It seems to be closed.\r\n")
		}
		return false
	}

	if len(c.Followers) == 0 {
		return g.simpleMove(ch, dir, followed)
	}
	wasIn := c.InRoom
	if !g.simpleMove(ch, dir, followed) {
		return false
	}
	for _, f := range slices.Clone(w.Ch(ch).Followers) {
		fc, ok := w.Chars.Lookup(f)
		if !ok || fc.InRoom != wasIn || fc.Position < world.PosStanding {
			continue
		}
		comm.Act(w, "You follow $N.\r\n", false, f, world.ObjID{}, ch, comm.ToChar)
		g.performMove(f, dir, true)
	}
	return true
}

// deathCry tells the room and the rooms around it that ch died.
func (g *Game) deathCry(ch world.CharID) {
	w := g.world
	comm.Act(w, "Your blood freezes as you hear $n's death cry.", false, ch, world.ObjID{}, nil, comm.ToRoom)
	r := w.Ch(ch).InRoom
	for _, ex := range w.Room(r).Exits {
		if ex != nil && ex.ToRoom != world.Nowhere && ex.ToRoom != r {
			comm.SendToRoom(w, ex.ToRoom, "Your blood freezes as you hear someone's death cry.\r\n")
		}
	}
}

// findDoor resolves a door by keyword and optional direction, telling ch
// why when it cannot.
func (g *Game) findDoor(ch world.CharID, keyword, dirArg, verb string) (world.Direction, bool) {
	w := g.world
	if dirArg != "" {
		i := command.SearchBlock(dirArg, world.DirectionNames(), false)
		if i < 0 {
			comm.SendToChar(w, ch, "That's not a direction.\r\n")
			return 0, false
		}
		dir := world.Direction(i)
		ex := w.Exit(ch, dir)
		switch {
		case ex == nil:
			comm.SendToCharf(w, ch, "I really don't see how you can %s anything there.\r\n", verb)
			return 0, false
		case ex.Keyword != "" && !command.IsName(keyword, ex.Keyword):
			comm.SendToCharf(w, ch, "I see no %s there.\r\n", keyword)
			return 0, false
		}
		return dir, true
	}

	if keyword == "" {
		comm.SendToCharf(w, ch, "What is it you want to %s?\r\n", verb)
		return 0, false
	}
	for dir := range world.Direction(world.NumDirs) {
		if ex := w.Exit(ch, dir); ex != nil && ex.Keyword != "" && command.IsName(keyword, ex.Keyword) {
			return dir, true
		}
	}
	comm.SendToCharf(w, ch, "There doesn't seem to be %s %s here.\r\n", command.An(keyword), keyword)
	return 0, false
}

// hasKey reports whether ch carries or holds the key numbered key.
func (g *Game) hasKey(ch world.CharID, key world.Vnum) bool {
	w := g.world
	c := w.Ch(ch)
	for _, o := range c.Carrying {
		if w.Obj(o).Vnum == key {
			return true
		}
	}
	if held, ok := w.Objs.Lookup(c.Equipment[world.WearHold]); ok && held.Vnum == key {
		return true
	}
	return false
}

// doorTarget is either a container or an exit of the actor's room.
type doorTarget struct {
	obj world.ObjID
	dir world.Direction
}

func (g *Game) doorFlags(ch world.CharID, t doorTarget) (openable, closed, locked bool, key world.Vnum) {
	w := g.world
	if o, ok := w.Objs.Lookup(t.obj); ok {
		v := o.Values[1]
		return o.Type == world.ItemContainer && v&world.ContCloseable != 0,
			v&world.ContClosed != 0, v&world.ContLocked != 0, world.Vnum(o.Values[2])
	}
	ex := w.Exit(ch, t.dir)
	return ex.IsDoor(), ex.IsClosed(), ex.IsLocked(), ex.Key
}

// setDoor applies a door subcommand to one side of a door or a container.
func setDoor(flags *world.Flags[world.ExitFlag], subcmd int) {
	switch subcmd {
	case scmdOpen:
		flags.Clear(world.ExClosed)
	case scmdClose:
		flags.Set(world.ExClosed)
	case scmdUnlock:
		flags.Clear(world.ExLocked)
	case scmdLock:
		flags.Set(world.ExLocked)
	}
}

func setContainer(values *[4]int, subcmd int) {
	switch subcmd {
	case scmdOpen:
		values[1] &^= world.ContClosed
	case scmdClose:
		values[1] |= world.ContClosed
	case scmdUnlock:
		values[1] &^= world.ContLocked
	case scmdLock:
		values[1] |= world.ContLocked
	}
}

// doorCmd carries out an open, close, lock or unlock that has passed
// every check, on both sides of a two-way door.
func (g *Game) doorCmd(ch world.CharID, t doorTarget, subcmd int) {
	w := g.world
	verb := doorVerbs[subcmd]

	if o, ok := w.Objs.Lookup(t.obj); ok {
		setContainer(&o.Values, subcmd)
	} else {
		ex := w.Exit(ch, t.dir)
		setDoor(&ex.Info, subcmd)
		if other := ex.ToRoom; other != world.Nowhere {
			if back := w.Room(other).Exits[t.dir.Opposite()]; back != nil && back.ToRoom == w.Ch(ch).InRoom {
				setDoor(&back.Info, subcmd)
				if subcmd == scmdOpen || subcmd == scmdClose {
					name := "door"
					if back.Keyword != "" {
						name = fname(back.Keyword)
					}
					suffix := "ed"
					if subcmd == scmdClose {
						suffix = "d"
					}
					defer comm.SendToRoom(w, other, fmt.Sprintf("The %s is %s%s from the other side.\r\n", name, verb, suffix))
				}
			}
		}
	}

	if subcmd == scmdOpen || subcmd == scmdClose {
		comm.SendToChar(w, ch, msgOK)
	} else {
		comm.SendToChar(w, ch, "*Click*\r\n")
	}

	if !t.obj.IsZero() {
		if w.Obj(t.obj).Loc.Kind != world.LocNowhere {
			comm.Act(w, "$n "+verb+"s $p.", false, ch, t.obj, nil, comm.ToRoom)
		}
		return
	}
	ex := w.Exit(ch, t.dir)
	if ex.Keyword != "" {
		comm.Act(w, "$n "+verb+"s the $F.", false, ch, world.ObjID{}, ex.Keyword, comm.ToRoom)
	} else {
		comm.Act(w, "$n "+verb+"s the door.", false, ch, world.ObjID{}, nil, comm.ToRoom)
	}
}

func doGenDoor(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	verb := doorVerbs[subcmd]
	argument = command.SkipSpaces(argument)
	if argument == "" {
		comm.SendToCharf(w, ch, "%s what?\r\n", command.Cap(verb))
		return
	}
	keyword, dirArg := command.TwoArguments(argument)

	var t doorTarget
	c := w.Ch(ch)
	if o, ok := w.GetObjInListVis(ch, keyword, c.Carrying); ok {
		t.obj = o
	} else if o, ok := w.GetObjInListVis(ch, keyword, w.Room(c.InRoom).Contents); ok {
		t.obj = o
	} else {
		dir, ok := g.findDoor(ch, keyword, dirArg, verb)
		if !ok {
			return
		}
		t.dir = dir
	}

	openable, closed, locked, key := g.doorFlags(ch, t)
	need := doorNeeds[subcmd]
	switch {
	case !openable:
		comm.Act(w, "You can't $F that!", false, ch, world.ObjID{}, verb, comm.ToChar)
	case closed && need&needOpen != 0:
		comm.SendToChar(w, ch, "But it's already closed!\r\n")
	case !closed && need&needClosed != 0:
		comm.SendToChar(w, ch, "But it's currently open!\r\n")
	case !locked && need&needLocked != 0:
		comm.SendToChar(w, ch, "Oh.. it wasn't locked, after all..\r\n")
	case locked && need&needUnlocked != 0:
		comm.SendToChar(w, ch, "It seems to be locked.\r\n")
	case (subcmd == scmdLock || subcmd == scmdUnlock) && w.Ch(ch).Level < world.LvlGod && !g.hasKey(ch, key):
		comm.SendToChar(w, ch, "You don't seem to have the proper key.\r\n")
	default:
		g.doorCmd(ch, t, subcmd)
	}
}

func doStand(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	switch c.Position {
	case world.PosStanding:
		comm.SendToChar(w, ch, "You are already standing.\r\n")
	case world.PosSitting:
		comm.SendToChar(w, ch, "You stand up.\r\n")
		comm.Act(w, "$n clambers to $s feet.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		if c.Fighting.IsZero() {
			c.Position = world.PosStanding
		} else {
			c.Position = world.PosFighting
		}
	case world.PosResting:
		comm.SendToChar(w, ch, "You stop resting, and stand up.\r\n")
		comm.Act(w, "$n stops resting, and clambers on $s feet.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosStanding
	case world.PosSleeping:
		comm.SendToChar(w, ch, "You have to wake up first!\r\n")
	case world.PosFighting:
		comm.SendToChar(w, ch, "Do you not consider fighting as standing?\r\n")
	default:
		comm.SendToChar(w, ch, "You stop floating around, and put your feet on the ground.\r\n")
		comm.Act(w, "$n stops floating around, and puts $s feet on the ground.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosStanding
	}
}

func doSit(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	switch c.Position {
	case world.PosStanding:
		comm.SendToChar(w, ch, "You sit down.\r\n")
		comm.Act(w, "$n sits down.", false, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosSitting
	case world.PosSitting:
		comm.SendToChar(w, ch, "You're sitting already.\r\n")
	case world.PosResting:
		comm.SendToChar(w, ch, "You stop resting, and sit up.\r\n")
		comm.Act(w, "$n stops resting.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosSitting
	case world.PosSleeping:
		comm.SendToChar(w, ch, "You have to wake up first.\r\n")
	case world.PosFighting:
		comm.SendToChar(w, ch, "Sit down while fighting? Are you MAD?\r\n")
	default:
		comm.SendToChar(w, ch, "You stop floating around, and sit down.\r\n")
		comm.Act(w, "$n stops floating around, and sits down.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosSitting
	}
}

func doRest(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	switch c.Position {
	case world.PosStanding:
		comm.SendToChar(w, ch, "You sit down and rest your tired bones.\r\n")
		comm.Act(w, "$n sits down and rests.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosResting
	case world.PosSitting:
		comm.SendToChar(w, ch, "You rest your tired bones.\r\n")
		comm.Act(w, "$n rests.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosResting
	case world.PosResting:
		comm.SendToChar(w, ch, "You are already resting.\r\n")
	case world.PosSleeping:
		comm.SendToChar(w, ch, "You have to wake up first.\r\n")
	case world.PosFighting:
		comm.SendToChar(w, ch, "Rest while fighting?  Are you MAD?\r\n")
	default:
		comm.SendToChar(w, ch, "You stop floating around, and stop to rest your tired bones.\r\n")
		comm.Act(w, "$n stops floating around, and rests.", false, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosSitting
	}
}

func doSleep(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	switch c.Position {
	case world.PosStanding, world.PosSitting, world.PosResting:
		comm.SendToChar(w, ch, "You go to sleep.\r\n")
		comm.Act(w, "$n lies down and falls asleep.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosSleeping
	case world.PosSleeping:
		comm.SendToChar(w, ch, "You are already sound asleep.\r\n")
	case world.PosFighting:
		comm.SendToChar(w, ch, "Sleep while fighting?  Are you MAD?\r\n")
	default:
		comm.SendToChar(w, ch, "You stop floating around, and lie down to sleep.\r\n")
		comm.Act(w, "$n stops floating around, and lie down to sleep.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosSleeping
	}
}

func doWake(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg != "" {
		if w.Ch(ch).Position == world.PosSleeping {
			comm.SendToChar(w, ch, "Maybe you should wake yourself up first.\r\n")
			return
		}
		vict, ok := w.GetCharRoomVis(ch, arg)
		if !ok {
			comm.SendToChar(w, ch, msgNoPerson)
			return
		}
		if vict != ch {
			vc := w.Ch(vict)
			switch {
			case vc.Awake():
				comm.Act(w, "$E is already awake.", false, ch, world.ObjID{}, vict, comm.ToChar)
			case vc.AffFlags.Has(world.AffSleep):
				comm.Act(w, "You can't wake $M up!", false, ch, world.ObjID{}, vict, comm.ToChar)
			case vc.Position < world.PosSleeping:
				comm.Act(w, "$E's in pretty bad shape!", false, ch, world.ObjID{}, vict, comm.ToChar)
			default:
				comm.Act(w, "You wake $M up.", false, ch, world.ObjID{}, vict, comm.ToChar)
				comm.Act(w, "You are awakened by $n.", false, ch, world.ObjID{}, vict, comm.ToVict|comm.ToSleep)
				vc.Position = world.PosSitting
			}
			return
		}
	}

	c := w.Ch(ch)
	switch {
	case c.AffFlags.Has(world.AffSleep):
		comm.SendToChar(w, ch, "You can't wake up!\r\n")
	case c.Position > world.PosSleeping:
		comm.SendToChar(w, ch, "You are already awake...\r\n")
	default:
		comm.SendToChar(w, ch, "You awaken, and sit up.\r\n")
		comm.Act(w, "$n awakens.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c.Position = world.PosSitting
	}
}

func doFollow(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Whom do you wish to follow?\r\n")
		return
	}
	leader, ok := w.GetCharRoomVis(ch, arg)
	if !ok {
		comm.SendToChar(w, ch, msgNoPerson)
		return
	}
	c := w.Ch(ch)
	if c.Master == leader {
		comm.Act(w, "You are already following $M.", false, ch, world.ObjID{}, leader, comm.ToChar)
		return
	}
	if c.AffFlags.Has(world.AffCharm) && !c.Master.IsZero() {
		comm.Act(w, "But you only feel like following $N!", false, ch, world.ObjID{}, c.Master, comm.ToChar)
		return
	}
	if leader == ch {
		if c.Master.IsZero() {
			comm.SendToChar(w, ch, "You are already following yourself.\r\n")
			return
		}
		w.StopFollower(ch)
		return
	}
	if w.CircleFollow(ch, leader) {
		comm.SendToChar(w, ch, "Sorry, but following in loops is not allowed.\r\n")
		return
	}
	if !c.Master.IsZero() {
		w.StopFollower(ch)
	}
	w.Ch(ch).AffFlags.Clear(world.AffGroup)
	g.addFollower(ch, leader)
}

// addFollower makes ch follow leader and tells everyone.
func (g *Game) addFollower(ch, leader world.CharID) {
	w := g.world
	if err := w.AddFollower(ch, leader); err != nil {
		return
	}
	comm.Act(w, "You now follow $N.", false, ch, world.ObjID{}, leader, comm.ToChar)
	if w.CanSee(leader, ch) {
		comm.Act(w, "$n starts following you.", true, ch, world.ObjID{}, leader, comm.ToVict)
	}
	comm.Act(w, "$n starts to follow $N.", true, ch, world.ObjID{}, leader, comm.ToNotVict)
}

// announceStopFollow tells ch, its leader and the room that ch stopped
// following. The world calls it from StopFollower.
func (g *Game) announceStopFollow(ch, leader world.CharID) {
	w := g.world
	if !w.Chars.Valid(leader) {
		return
	}
	if w.Ch(ch).AffFlags.Has(world.AffCharm) {
		comm.Act(w, "You realize that $N is a jerk!", false, ch, world.ObjID{}, leader, comm.ToChar)
		comm.Act(w, "$n realizes that $N is a jerk!", false, ch, world.ObjID{}, leader, comm.ToNotVict)
		comm.Act(w, "$n hates your guts!", false, ch, world.ObjID{}, leader, comm.ToVict)
		return
	}
	comm.Act(w, "You stop following $N.", false, ch, world.ObjID{}, leader, comm.ToChar)
	comm.Act(w, "$n stops following $N.", true, ch, world.ObjID{}, leader, comm.ToNotVict)
	comm.Act(w, "$n stops following you.", true, ch, world.ObjID{}, leader, comm.ToVict)
}

func doTrack(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Whom are you trying to track?\r\n")
		return
	}
	vict, ok := w.GetCharWorldVis(ch, arg)
	if !ok {
		comm.SendToChar(w, ch, "No one is around by that name.\r\n")
		return
	}
	vc := w.Ch(vict)
	if vc.AffFlags.Has(world.AffNoTrack) {
		comm.SendToChar(w, ch, "You sense no trail.\r\n")
		return
	}
	switch dir := w.FindFirstStep(w.Ch(ch).InRoom, vc.InRoom, g.cfg.TrackThroughDoors); dir {
	case world.BFSError:
		comm.SendToChar(w, ch, "Hmm.. something seems to be wrong.\r\n")
	case world.BFSAlreadyThere:
		comm.SendToChar(w, ch, "You're already in the same room!!\r\n")
	case world.BFSNoPath:
		comm.SendToCharf(w, ch, "You can't sense a trail to %s from here.\r\n", vc.HimHer())
	default:
		comm.SendToCharf(w, ch, "You sense a trail %s from here!\r\n", dir)
	}
}
