package gameserver

import (
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/scripting"
)

// SpecOwner is the room, object or mobile a special procedure is attached
// to. Exactly one of Room, Obj and Mob is set.
type SpecOwner struct {
	Room world.Rnum
	Obj  world.ObjID
	Mob  world.CharID
}

func roomOwner(r world.Rnum) SpecOwner  { return SpecOwner{Room: r} }
func objOwner(o world.ObjID) SpecOwner  { return SpecOwner{Room: world.Nowhere, Obj: o} }
func mobOwner(m world.CharID) SpecOwner { return SpecOwner{Room: world.Nowhere, Mob: m} }

func (o SpecOwner) kind() string {
	switch {
	case !o.Mob.IsZero():
		return "mob"
	case !o.Obj.IsZero():
		return "obj"
	}
	return "room"
}

// SpecProc is a special procedure. cmd is the command index, or
// cmdReserved for the periodic call where ch is zero. Returning true
// consumes the command.
type SpecProc func(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool

func builtinSpecs() map[string]SpecProc {
	return map[string]SpecProc{
		"postmaster":     specPostmaster,
		"bulletin_board": specBulletinBoard,
		"dump":           specDump,
		"cityguard":      specCityguard,
		"puff":           specPuff,
		"guild_guard":    specGuildGuard,
		"janitor":        specJanitor,
	}
}

// special offers the command to the special procedures around ch: the
// room, ch's equipment and inventory, the mobiles present and the room's
// contents.
func (g *Game) special(ch world.CharID, cmd int, arg string) bool {
	w := g.world
	c := w.Ch(ch)
	r := c.InRoom

	if name := w.Room(r).SpecProc; name != "" {
		if g.callSpec(name, ch, roomOwner(r), cmd, arg) {
			return true
		}
	}
	for pos := range world.NumWears {
		o := w.Ch(ch).Equipment[pos]
		if obj, ok := w.Objs.Lookup(o); ok && obj.SpecProc != "" {
			if g.callSpec(obj.SpecProc, ch, objOwner(o), cmd, arg) {
				return true
			}
		}
	}
	for _, o := range slices.Clone(w.Ch(ch).Carrying) {
		if obj, ok := w.Objs.Lookup(o); ok && obj.SpecProc != "" {
			if g.callSpec(obj.SpecProc, ch, objOwner(o), cmd, arg) {
				return true
			}
		}
	}
	for _, k := range slices.Clone(w.Room(r).People) {
		kc, ok := w.Chars.Lookup(k)
		if !ok || kc.SpecProc == "" || w.PendingExtraction(k) {
			continue
		}
		if g.callSpec(kc.SpecProc, ch, mobOwner(k), cmd, arg) {
			return true
		}
	}
	for _, o := range slices.Clone(w.Room(r).Contents) {
		if obj, ok := w.Objs.Lookup(o); ok && obj.SpecProc != "" {
			if g.callSpec(obj.SpecProc, ch, objOwner(o), cmd, arg) {
				return true
			}
		}
	}
	return false
}

// callSpec runs the procedure called name, built in or scripted.
func (g *Game) callSpec(name string, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	if fn, ok := g.specs[name]; ok {
		return fn(g, ch, self, cmd, arg)
	}
	if g.scripts == nil || !g.scripts.HasSpec(name) {
		return false
	}

	w := g.world
	call := scripting.SpecCall{
		Name:     name,
		Owner:    self.kind(),
		Argument: arg,
		Room:     int(w.RoomVnum(g.ownerRoom(ch, self))),
		Pulse:    cmd == cmdReserved,
		Host:     &specHost{g: g, ch: ch, self: self},
	}
	if cmd > cmdReserved && cmd < len(g.commands) {
		call.Command = g.commands[cmd].Name
	}
	if c, ok := w.Chars.Lookup(ch); ok {
		call.Actor = c.DisplayName()
		call.ActorLevel = c.Level
		call.ActorNPC = c.IsNPC()
	}
	handled, err := g.scripts.CallSpec(call)
	if err != nil {
		g.logger.Warn("scripted special procedure", zap.String("spec", name), zap.Error(err))
		return false
	}
	return handled
}

// ownerRoom is the room a special procedure is acting in.
func (g *Game) ownerRoom(ch world.CharID, self SpecOwner) world.Rnum {
	w := g.world
	if m, ok := w.Chars.Lookup(self.Mob); ok {
		return m.InRoom
	}
	if c, ok := w.Chars.Lookup(ch); ok {
		return c.InRoom
	}
	if o, ok := w.Objs.Lookup(self.Obj); ok && o.Loc.Kind == world.LocRoom {
		return o.Loc.Room
	}
	return self.Room
}

// specHost carries out a script's requests for one call.
type specHost struct {
	g    *Game
	ch   world.CharID
	self SpecOwner
}

func (h *specHost) Send(msg string) {
	comm.SendToChar(h.g.world, h.ch, msg+"\r\n")
}

func (h *specHost) Echo(msg string) {
	if r := h.g.ownerRoom(h.ch, h.self); r != world.Nowhere {
		comm.SendToRoom(h.g.world, r, msg+"\r\n")
	}
}

func (h *specHost) Say(msg string) {
	if h.self.Mob.IsZero() {
		h.Echo(msg)
		return
	}
	h.g.say(h.self.Mob, msg)
}

func (h *specHost) Act(template, audience string) {
	to := map[string]comm.Audience{
		"room":    comm.ToRoom,
		"char":    comm.ToChar,
		"vict":    comm.ToVict,
		"notvict": comm.ToNotVict,
	}[audience]
	if to == 0 {
		to = comm.ToRoom
	}
	w := h.g.world
	if !h.self.Mob.IsZero() {
		var vict any
		if !h.ch.IsZero() {
			vict = h.ch
		}
		comm.Act(w, template, false, h.self.Mob, world.ObjID{}, vict, to)
		return
	}
	if h.ch.IsZero() {
		return
	}
	comm.Act(w, template, false, h.ch, h.self.Obj, nil, to)
}

// specDump destroys whatever lands in the room and pays for drops.
func specDump(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	w := g.world
	vanish := func() int {
		value := 0
		for _, o := range slices.Clone(w.Room(self.Room).Contents) {
			comm.Act(w, "$p vanishes in a puff of smoke!", false, world.CharID{}, o, nil, comm.ToRoom)
			value += max(1, min(50, w.Obj(o).Cost/10))
			w.ExtractObj(o)
		}
		return value
	}
	vanish()
	if !g.cmdIs(cmd, "drop") {
		return false
	}

	doDrop(g, ch, arg, cmd, scmdDrop)
	value := vanish()
	if value > 0 {
		comm.SendToChar(w, ch, "You are awarded for outstanding performance.\r\n")
		comm.Act(w, "$n has been awarded for being a good citizen.", true, ch, world.ObjID{}, nil, comm.ToRoom)
		c := w.Ch(ch)
		if c.Level < 3 {
			g.gainExp(ch, value)
		} else {
			c.Points.Gold += value
		}
	}
	return true
}

// specCityguard yells at known killers and thieves, and now and then
// spits at the ugliest player present.
func specCityguard(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	w := g.world
	guard := self.Mob
	gc := w.Ch(guard)
	if cmd != cmdReserved || !gc.Awake() || !gc.Fighting.IsZero() {
		return false
	}

	var spittle world.CharID
	minCha := 6
	for _, t := range slices.Clone(w.Room(gc.InRoom).People) {
		if !w.CanSee(guard, t) {
			continue
		}
		tc := w.Ch(t)
		if tc.IsNPC() {
			continue
		}
		if tc.PlrFlags.Has(world.PlrKiller) {
			comm.Act(w, "$n screams 'HEY!!!  You're one of those PLAYER KILLERS!!!!!!'", false, guard, world.ObjID{}, nil, comm.ToRoom)
			return true
		}
		if tc.PlrFlags.Has(world.PlrThief) {
			comm.Act(w, "$n screams 'HEY!!!  You're one of those PLAYER THIEVES!!!!!!'", false, guard, world.ObjID{}, nil, comm.ToRoom)
			return true
		}
		if tc.Abilities.Cha < minCha {
			spittle = t
			minCha = tc.Abilities.Cha
		}
	}
	if !spittle.IsZero() && w.Dice.Number(0, 9) == 0 {
		return g.performSocial(guard, "spit", w.Ch(spittle).Name)
	}
	return false
}

var puffSayings = []string{
	"My god!  It's full of stars!",
	"How'd all those fish get up here?",
	"I'm a very female dragon.",
	"I've got a peaceful, easy feeling.",
}

func specPuff(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	if cmd != cmdReserved {
		return false
	}
	n := g.world.Dice.Number(0, 60)
	if n >= len(puffSayings) {
		return false
	}
	g.say(self.Mob, puffSayings[n])
	return true
}

// guildInfo lists the guild entrances the guards keep other classes out of.
var guildInfo = []struct {
	class world.Class
	room  world.Vnum
	dir   world.Direction
}{
	{world.ClassMagicUser, 3017, world.South},
	{world.ClassCleric, 3004, world.North},
	{world.ClassThief, 3027, world.East},
	{world.ClassWarrior, 3021, world.East},
}

func specGuildGuard(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	w := g.world
	if !isMove(cmd) {
		return false
	}
	if w.Ch(self.Mob).AffFlags.Has(world.AffBlind) {
		return false
	}
	c := w.Ch(ch)
	if c.IsImmortal() {
		return false
	}
	dir := world.Direction(cmd - 1)
	vnum := w.RoomVnum(c.InRoom)
	for _, gi := range guildInfo {
		if gi.room != vnum || gi.dir != dir {
			continue
		}
		if !c.IsNPC() && c.Class == gi.class {
			continue
		}
		comm.SendToChar(w, ch, "The guard humiliates you, and blocks your way.\r\n")
		comm.Act(w, "The guard humiliates $n, and blocks $s way.", false, ch, world.ObjID{}, nil, comm.ToRoom)
		return true
	}
	return false
}

func specJanitor(g *Game, ch world.CharID, self SpecOwner, cmd int, arg string) bool {
	w := g.world
	jc := w.Ch(self.Mob)
	if cmd != cmdReserved || !jc.Awake() {
		return false
	}
	for _, o := range w.Room(jc.InRoom).Contents {
		obj := w.Obj(o)
		if !obj.CanWear(world.ItemWearTake) {
			continue
		}
		if obj.Type != world.ItemDrinkCon && obj.Cost >= 15 {
			continue
		}
		comm.Act(w, "$n picks up some trash.", false, self.Mob, world.ObjID{}, nil, comm.ToRoom)
		w.ObjFromRoom(o)
		w.ObjToChar(o, self.Mob)
		return true
	}
	return false
}
