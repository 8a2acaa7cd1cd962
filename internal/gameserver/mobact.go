package gameserver

import (
	"slices"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// mobileActivity gives every awake mobile its periodic turn: its special
// procedure first, then scavenging and wandering.
func (g *Game) mobileActivity() {
	w := g.world
	for _, ch := range slices.Clone(w.CharList) {
		c, ok := w.Chars.Lookup(ch)
		if !ok || !c.IsNPC() || w.PendingExtraction(ch) || c.InRoom == world.Nowhere {
			continue
		}
		if c.SpecProc != "" {
			if g.callSpec(c.SpecProc, world.CharID{}, mobOwner(ch), cmdReserved, "") {
				continue
			}
			if c, ok = w.Chars.Lookup(ch); !ok || w.PendingExtraction(ch) {
				continue
			}
		}
		if !c.Fighting.IsZero() || !c.Awake() {
			continue
		}
		if c.MobFlags.Has(world.MobScavenger) {
			g.scavenge(ch)
		}
		g.wander(ch)
	}
}

// scavenge occasionally picks up the most valuable object in the room.
func (g *Game) scavenge(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	room := w.Room(c.InRoom)
	if len(room.Contents) == 0 || w.Dice.Number(0, 10) != 0 {
		return
	}
	best := world.ObjID{}
	most := 1
	for _, o := range room.Contents {
		obj := w.Obj(o)
		if obj.Cost > most && g.canGetObj(ch, o) {
			best, most = o, obj.Cost
		}
	}
	if best.IsZero() {
		return
	}
	w.ObjFromRoom(best)
	w.ObjToChar(best, ch)
	comm.Act(w, "$n gets $p.", false, ch, best, nil, comm.ToRoom)
}

// canGetObj is canTakeObj without the explanations.
func (g *Game) canGetObj(ch world.CharID, o world.ObjID) bool {
	w := g.world
	c := w.Ch(ch)
	obj := w.Obj(o)
	return obj.CanWear(world.ItemWearTake) &&
		c.CarryItems < c.CanCarryItems() &&
		c.CarryWeight+obj.Weight <= c.CanCarryWeight() &&
		w.CanSeeObj(ch, o)
}

// wander moves a standing mobile through a random open exit about one
// time in three. Sentinels stay put; stay-zone mobiles keep to their zone.
func (g *Game) wander(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	dir := world.Direction(w.Dice.Number(0, 18))
	if c.MobFlags.Has(world.MobSentinel) || c.Position != world.PosStanding || !dir.Valid() {
		return
	}
	exit := w.Exit(ch, dir)
	if exit == nil || exit.ToRoom == world.Nowhere || exit.Info.Has(world.ExClosed) {
		return
	}
	to := w.Room(exit.ToRoom)
	if to.Flags.Any(world.RoomNoMob | world.RoomDeath) {
		return
	}
	if c.MobFlags.Has(world.MobStayZone) && to.Zone != w.Room(c.InRoom).Zone {
		return
	}
	g.performMove(ch, dir, true)
}
