package gameserver

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/textfiles"
)

// Object display modes.
const (
	showObjLong = iota
	showObjShort
	showObjAction
)

// Look subcommands.
const (
	scmdLook = iota
	scmdRead
)

// Text page subcommands.
const (
	scmdCredits = iota
	scmdNews
	scmdInfo
	scmdWizlist
	scmdImmlist
	scmdHandbook
	scmdPolicies
	scmdMotd
	scmdImotd
	scmdClear
	scmdVersion
	scmdWhoami
)

// Command list subcommands.
const (
	scmdCommands = iota
	scmdSocials
	scmdWizhelp
)

const versionString = "CircleMUD, version 3.00"

// roomPositions describe a character shown in a room, by position.
var roomPositions = []string{
	" is lying here, dead.",
	" is lying here, mortally wounded.",
	" is lying here, incapacitated.",
	" is lying here, stunned.",
	" is sleeping here.",
	" is resting here.",
	" is sitting here.",
	"!FIGHTING!",
	" is standing here.",
}

var liquidColors = []string{"clear", "brown", "clear", "brown", "dark", "golden", "red",
	"green", "clear", "light green", "white", "brown", "black", "red", "clear", "crystal clear"}

var fullness = []string{"less than half ", "about half ", "more than half ", ""}

var skyLook = []string{"cloudless", "cloudy", "rainy", "lit by flashes of lightning"}

// dexDefense is the armor class bonus for each dexterity, in tenths.
var dexDefense = []int{6, 5, 5, 4, 3, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, -1, -2, -3, -4, -4,
	-4, -5, -5, -5, -6, -6}

func isEvil(c *world.Character) bool { return c.Alignment <= -350 }
func isGood(c *world.Character) bool { return c.Alignment >= 350 }

// canSeeInDark reports whether c sees without light.
func canSeeInDark(c *world.Character) bool {
	return c.AffFlags.Has(world.AffInfravision) || (!c.IsNPC() && c.PrefFlags.Has(world.PrfHolylight))
}

// page shows text to ch through the pager.
func (g *Game) page(ch world.CharID, text string) {
	w := g.world
	c := w.Ch(ch)
	if d, ok := w.Descs.Lookup(c.Desc); ok {
		comm.PageString(d, text, g.pageLength(), g.pageWidth())
	}
}

func (g *Game) objModifiers(ch world.CharID, o world.ObjID) string {
	w := g.world
	obj := w.Obj(o)
	c := w.Ch(ch)
	var b strings.Builder
	if obj.ExtraFlags.Has(world.ItemInvisible) {
		b.WriteString(" (invisible)")
	}
	if obj.ExtraFlags.Has(world.ItemBless) && c.AffFlags.Has(world.AffDetectAlign) {
		b.WriteString(" ..It glows blue!")
	}
	if obj.ExtraFlags.Has(world.ItemMagic) && c.AffFlags.Has(world.AffDetectMagic) {
		b.WriteString(" ..It glows yellow!")
	}
	if obj.ExtraFlags.Has(world.ItemGlow) {
		b.WriteString(" ..It has a soft glowing aura!")
	}
	if obj.ExtraFlags.Has(world.ItemHum) {
		b.WriteString(" ..It emits a faint humming sound!")
	}
	return b.String()
}

// showObj describes o to ch in the given mode.
func (g *Game) showObj(ch world.CharID, o world.ObjID, mode int) {
	w := g.world
	obj := w.Obj(o)
	switch mode {
	case showObjLong:
		comm.SendToChar(w, ch, obj.Description)
	case showObjShort:
		comm.SendToChar(w, ch, obj.ShortDescr)
	case showObjAction:
		switch obj.Type {
		case world.ItemNote:
			if obj.ActionDescr != "" {
				g.page(ch, "There is something written on it:\r\n\r\n"+obj.ActionDescr)
			} else {
				comm.SendToChar(w, ch, "It's blank.\r\n")
			}
			return
		case world.ItemDrinkCon:
			comm.SendToChar(w, ch, "It looks like a drink container.")
		default:
			comm.SendToChar(w, ch, "You see nothing special..")
		}
	}
	comm.SendToChar(w, ch, g.objModifiers(ch, o)+"\r\n")
}

func (g *Game) listObjs(ch world.CharID, list []world.ObjID, mode int, show bool) {
	w := g.world
	found := false
	for _, o := range list {
		if w.CanSeeObj(ch, o) {
			g.showObj(ch, o, mode)
			found = true
		}
	}
	if !found && show {
		comm.SendToChar(w, ch, "  Nothing.\r\n")
	}
}

// diagnose describes how hurt i looks to ch.
func (g *Game) diagnose(i, ch world.CharID) {
	w := g.world
	ic := w.Ch(i)
	pct := -1
	if ic.Points.MaxHit > 0 {
		pct = 100 * ic.Points.Hit / ic.Points.MaxHit
	}
	name := command.Cap(w.Pers(i, ch))
	var msg string
	switch {
	case pct >= 100:
		msg = "is in excellent condition."
	case pct >= 90:
		msg = "has a few scratches."
	case pct >= 75:
		msg = "has some small wounds and bruises."
	case pct >= 50:
		msg = "has quite a few wounds."
	case pct >= 30:
		msg = "has some big nasty wounds and scratches."
	case pct >= 15:
		msg = "looks pretty hurt."
	case pct >= 0:
		msg = "is in awful condition."
	default:
		msg = "is bleeding awfully from big wounds."
	}
	comm.SendToCharf(w, ch, "%s %s\r\n", name, msg)
}

func (g *Game) lookAtChar(i, ch world.CharID) {
	w := g.world
	if w.Ch(ch).Desc.IsZero() {
		return
	}
	ic := w.Ch(i)
	if ic.Description != "" {
		comm.SendToChar(w, ch, ic.Description)
	} else {
		comm.Act(w, "You see nothing special about $m.", false, i, world.ObjID{}, ch, comm.ToVict)
	}
	g.diagnose(i, ch)

	worn := false
	for _, o := range ic.Equipment {
		if !o.IsZero() && w.CanSeeObj(ch, o) {
			worn = true
			break
		}
	}
	if worn {
		comm.SendToChar(w, ch, "\r\n")
		comm.Act(w, "$n is using:", false, i, world.ObjID{}, ch, comm.ToVict)
		for pos, o := range w.Ch(i).Equipment {
			if !o.IsZero() && w.CanSeeObj(ch, o) {
				comm.SendToChar(w, ch, world.WearWhere[pos])
				g.showObj(ch, o, showObjShort)
			}
		}
	}

	c := w.Ch(ch)
	if ch != i && (c.Class == world.ClassThief || c.Level >= world.LvlImmort) {
		comm.Act(w, "\r\nYou attempt to peek at $s inventory:", false, i, world.ObjID{}, ch, comm.ToVict)
		found := false
		for _, o := range w.Ch(i).Carrying {
			if w.CanSeeObj(ch, o) && w.Dice.Number(0, 20) < c.Level {
				g.showObj(ch, o, showObjShort)
				found = true
			}
		}
		if !found {
			comm.SendToChar(w, ch, "You can't see anything.\r\n")
		}
	}
}

// listOneChar shows i to ch as a line of a room listing.
func (g *Game) listOneChar(i, ch world.CharID) {
	w := g.world
	ic := w.Ch(i)
	c := w.Ch(ch)
	var b strings.Builder

	auras := func(before bool) {
		if !c.AffFlags.Has(world.AffDetectAlign) {
			return
		}
		switch {
		case isEvil(ic) && before:
			b.WriteString("(Red Aura) ")
		case isGood(ic) && before:
			b.WriteString("(Blue Aura) ")
		case isEvil(ic):
			b.WriteString(" (Red Aura)")
		case isGood(ic):
			b.WriteString(" (Blue Aura)")
		}
	}

	if ic.IsNPC() && ic.LongDescr != "" && ic.Position == ic.DefaultPos {
		if ic.AffFlags.Has(world.AffInvisible) {
			b.WriteString("*")
		}
		auras(true)
		b.WriteString(ic.LongDescr)
	} else {
		if ic.IsNPC() {
			b.WriteString(command.Cap(ic.ShortDescr))
		} else {
			b.WriteString(ic.Name + " " + ic.Title)
		}
		if ic.AffFlags.Has(world.AffInvisible) {
			b.WriteString(" (invisible)")
		}
		if ic.AffFlags.Has(world.AffHide) {
			b.WriteString(" (hidden)")
		}
		if !ic.IsNPC() && ic.Desc.IsZero() {
			b.WriteString(" (linkless)")
		}
		if !ic.IsNPC() && ic.PlrFlags.Has(world.PlrWriting) {
			b.WriteString(" (writing)")
		}
		switch {
		case ic.Position != world.PosFighting:
			b.WriteString(roomPositions[ic.Position])
		case ic.Fighting.IsZero():
			b.WriteString(" is here struggling with thin air.")
		case ic.Fighting == ch:
			b.WriteString(" is here, fighting YOU!")
		case w.Ch(ic.Fighting).InRoom == ic.InRoom:
			b.WriteString(" is here, fighting " + w.Pers(ic.Fighting, ch) + "!")
		default:
			b.WriteString(" is here, fighting someone who has already left!")
		}
		auras(false)
		b.WriteString("\r\n")
	}
	comm.SendToChar(w, ch, b.String())

	if ic.AffFlags.Has(world.AffSanctuary) {
		comm.Act(w, "...$e glows with a bright light!", false, i, world.ObjID{}, ch, comm.ToVict)
	}
	if ic.AffFlags.Has(world.AffBlind) {
		comm.Act(w, "...$e is groping around blindly!", false, i, world.ObjID{}, ch, comm.ToVict)
	}
}

func (g *Game) listChars(ch world.CharID, list []world.CharID) {
	w := g.world
	c := w.Ch(ch)
	for _, i := range list {
		if i == ch {
			continue
		}
		switch {
		case w.CanSee(ch, i):
			g.listOneChar(i, ch)
		case w.IsDark(c.InRoom) && !canSeeInDark(c) && w.Ch(i).AffFlags.Has(world.AffInfravision):
			comm.SendToChar(w, ch, "You see a pair of glowing red eyes looking your way.\r\n")
		}
	}
}

func (g *Game) autoExits(ch world.CharID) {
	w := g.world
	var b strings.Builder
	b.WriteString("[ Exits: ")
	n := 0
	for dir := range world.Direction(world.NumDirs) {
		ex := w.Exit(ch, dir)
		if ex == nil || ex.ToRoom == world.Nowhere || ex.IsClosed() {
			continue
		}
		b.WriteString(dir.String()[:1] + " ")
		n++
	}
	if n == 0 {
		b.WriteString("None! ")
	}
	b.WriteString("]\r\n")
	comm.SendToChar(w, ch, b.String())
}

// lookAtRoom shows ch its surroundings. The description is left out in
// brief mode unless ignoreBrief is set.
func (g *Game) lookAtRoom(ch world.CharID, ignoreBrief bool) {
	w := g.world
	c := w.Ch(ch)
	if c.Desc.IsZero() {
		return
	}
	r := c.InRoom
	room := w.Room(r)
	if w.IsDark(r) && !canSeeInDark(c) {
		comm.SendToChar(w, ch, "It is pitch black...\r\n")
		return
	}
	if c.AffFlags.Has(world.AffBlind) {
		comm.SendToChar(w, ch, "You see nothing but infinite darkness...\r\n")
		return
	}

	if !c.IsNPC() && c.PrefFlags.Has(world.PrfRoomFlags) {
		comm.SendToCharf(w, ch, "[%5d] %s [ %s]\r\n", room.Vnum, room.Name, room.Flags.Names(world.RoomFlagNames))
	} else {
		comm.SendToChar(w, ch, room.Name+"\r\n")
	}
	if (!c.IsNPC() && !c.PrefFlags.Has(world.PrfBrief)) || ignoreBrief || room.Flags.Has(world.RoomDeath) {
		comm.SendToChar(w, ch, room.Description)
	}
	if !c.IsNPC() && c.PrefFlags.Has(world.PrfAutoExit) {
		g.autoExits(ch)
	}
	g.listObjs(ch, room.Contents, showObjLong, false)
	g.listChars(ch, room.People)
}

func (g *Game) lookInDirection(ch world.CharID, dir world.Direction) {
	w := g.world
	ex := w.Exit(ch, dir)
	if ex == nil {
		comm.SendToChar(w, ch, "Nothing special there...\r\n")
		return
	}
	if ex.Description != "" {
		comm.SendToChar(w, ch, ex.Description)
	} else {
		comm.SendToChar(w, ch, "You see nothing special.\r\n")
	}
	switch {
	case ex.IsClosed() && ex.Keyword != "":
		comm.SendToCharf(w, ch, "The %s is closed.\r\n", fname(ex.Keyword))
	case ex.IsDoor() && ex.Keyword != "":
		comm.SendToCharf(w, ch, "The %s is open.\r\n", fname(ex.Keyword))
	}
}

func (g *Game) lookInObj(ch world.CharID, arg string) {
	w := g.world
	if arg == "" {
		comm.SendToChar(w, ch, "Look in what?\r\n")
		return
	}
	bits, _, o := g.genericFind(ch, arg, findObjInv|findObjRoom|findObjEquip)
	if bits == 0 {
		comm.SendToCharf(w, ch, "There doesn't seem to be %s %s here.\r\n", command.An(arg), arg)
		return
	}
	obj := w.Obj(o)
	switch obj.Type {
	case world.ItemContainer:
		if obj.Values[1]&world.ContClosed != 0 {
			comm.SendToChar(w, ch, "It is closed.\r\n")
			return
		}
		where := map[int]string{findObjInv: " (carried): \r\n", findObjRoom: " (here): \r\n", findObjEquip: " (used): \r\n"}[bits]
		comm.SendToChar(w, ch, fname(obj.Name)+where)
		g.listObjs(ch, obj.Contains, showObjShort, true)
	case world.ItemDrinkCon, world.ItemFountain:
		capacity, amount, liquid := obj.Values[0], obj.Values[1], obj.Values[2]
		switch {
		case amount <= 0:
			comm.SendToChar(w, ch, "It is empty.\r\n")
		case capacity <= 0 || amount > capacity:
			comm.SendToChar(w, ch, "Its contents seem somewhat murky.\r\n")
		default:
			color := "clear"
			if liquid >= 0 && liquid < len(liquidColors) {
				color = liquidColors[liquid]
			}
			comm.SendToCharf(w, ch, "It's %sfull of a %s liquid.\r\n", fullness[amount*3/capacity], color)
		}
	default:
		comm.SendToChar(w, ch, "There's nothing inside that!\r\n")
	}
}

func (g *Game) lookAtTarget(ch world.CharID, arg string) {
	w := g.world
	if arg == "" {
		comm.SendToChar(w, ch, "Look at what?\r\n")
		return
	}
	bits, vict, obj := g.genericFind(ch, arg, findObjInv|findObjRoom|findObjEquip|findCharRoom)
	if !vict.IsZero() {
		g.lookAtChar(vict, ch)
		if ch != vict {
			if w.CanSee(vict, ch) {
				comm.Act(w, "$n looks at you.", true, ch, world.ObjID{}, vict, comm.ToVict)
			}
			comm.Act(w, "$n looks at $N.", true, ch, world.ObjID{}, vict, comm.ToNotVict)
		}
		return
	}

	n, name := command.GetNumber(arg)
	if n == 0 {
		comm.SendToChar(w, ch, "Look at what?\r\n")
		return
	}
	c := w.Ch(ch)
	i := 0
	match := func(descs []world.ExtraDesc) (string, bool) {
		if desc, ok := world.FindExtraDesc(name, descs); ok {
			if i++; i == n {
				return desc, true
			}
		}
		return "", false
	}

	if desc, ok := match(w.Room(c.InRoom).ExtraDescs); ok {
		g.page(ch, desc)
		return
	}
	found := false
	search := func(list []world.ObjID) {
		for _, o := range list {
			if found || o.IsZero() || !w.CanSeeObj(ch, o) {
				continue
			}
			if desc, ok := match(w.Obj(o).ExtraDescs); ok {
				comm.SendToChar(w, ch, desc)
				found = true
			}
		}
	}
	search(c.Equipment[:])
	search(c.Carrying)
	search(w.Room(c.InRoom).Contents)

	switch {
	case bits != 0 && !found:
		g.showObj(ch, obj, showObjAction)
	case bits != 0:
		comm.SendToChar(w, ch, g.objModifiers(ch, obj)+"\r\n")
	case !found:
		comm.SendToChar(w, ch, "You do not see that here.\r\n")
	}
}

func doLook(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.Desc.IsZero() {
		return
	}
	switch {
	case c.Position < world.PosSleeping:
		comm.SendToChar(w, ch, "You can't see anything but stars!\r\n")
	case c.AffFlags.Has(world.AffBlind):
		comm.SendToChar(w, ch, "You can't see a damned thing, you're blind!\r\n")
	case w.IsDark(c.InRoom) && !canSeeInDark(c):
		comm.SendToChar(w, ch, "It is pitch black...\r\n")
		g.listChars(ch, w.Room(c.InRoom).People)
	default:
		arg, arg2 := command.HalfChop(argument)
		arg = strings.ToLower(arg)
		if subcmd == scmdRead {
			if arg == "" {
				comm.SendToChar(w, ch, "Read what?\r\n")
			} else {
				g.lookAtTarget(ch, arg)
			}
			return
		}
		switch {
		case arg == "":
			g.lookAtRoom(ch, true)
		case command.IsAbbrev(arg, "in"):
			arg2, _ = command.OneArgument(arg2)
			g.lookInObj(ch, arg2)
		case command.SearchBlock(arg, world.DirectionNames(), false) >= 0:
			g.lookInDirection(ch, world.Direction(command.SearchBlock(arg, world.DirectionNames(), false)))
		case command.IsAbbrev(arg, "at"):
			arg2, _ = command.OneArgument(arg2)
			g.lookAtTarget(ch, arg2)
		default:
			g.lookAtTarget(ch, arg)
		}
	}
}

func doExamine(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Examine what?\r\n")
		return
	}
	g.lookAtTarget(ch, arg)
	_, _, o := g.genericFind(ch, arg, findObjInv|findObjRoom|findCharRoom|findObjEquip)
	if obj, ok := w.Objs.Lookup(o); ok {
		switch obj.Type {
		case world.ItemDrinkCon, world.ItemFountain, world.ItemContainer:
			comm.SendToChar(w, ch, "When you look inside, you see:\r\n")
			g.lookInObj(ch, arg)
		}
	}
}

func doExits(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.AffFlags.Has(world.AffBlind) {
		comm.SendToChar(w, ch, "You can't see a damned thing, you're blind!\r\n")
		return
	}
	var b strings.Builder
	b.WriteString("Obvious exits:\r\n")
	n := 0
	for dir := range world.Direction(world.NumDirs) {
		ex := w.Exit(ch, dir)
		if ex == nil || ex.ToRoom == world.Nowhere || ex.IsClosed() {
			continue
		}
		n++
		to := w.Room(ex.ToRoom)
		switch {
		case c.Level >= world.LvlImmort:
			fmt.Fprintf(&b, "%-5s - [%5d] %s\r\n", dir, to.Vnum, to.Name)
		case w.IsDark(ex.ToRoom) && !canSeeInDark(c):
			fmt.Fprintf(&b, "%-5s - Too dark to tell\r\n", dir)
		default:
			fmt.Fprintf(&b, "%-5s - %s\r\n", dir, to.Name)
		}
	}
	if n == 0 {
		b.WriteString(" None.\r\n")
	}
	comm.SendToChar(w, ch, b.String())
}

// armorClass is the effective armor class, improved by dexterity when awake.
func armorClass(c *world.Character) int {
	ac := c.Points.Armor
	if c.Awake() {
		dex := min(max(c.Abilities.Dex, 0), len(dexDefense)-1)
		ac += dexDefense[dex] * 10
	}
	return max(-100, ac)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func doScore(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if c.IsNPC() {
		return
	}
	var b strings.Builder
	age := g.age(c)
	fmt.Fprintf(&b, "You are %d years old.", age.Year)
	if age.Month == 0 && age.Day == 0 {
		b.WriteString("  It's your birthday today.\r\n")
	} else {
		b.WriteString("\r\n")
	}
	p := c.Points
	fmt.Fprintf(&b, "You have %d(%d) hit, %d(%d) mana and %d(%d) movement points.\r\n",
		p.Hit, p.MaxHit, p.Mana, p.MaxMana, p.Move, p.MaxMove)
	fmt.Fprintf(&b, "Your armor class is %d/10, and your alignment is %d.\r\n", armorClass(c), c.Alignment)
	fmt.Fprintf(&b, "You have scored %d exp, and have %d gold coins.\r\n", p.Exp, p.Gold)

	played := c.Player.Played + g.now().Sub(c.Player.LastLogon)
	days := int(played / (24 * time.Hour))
	hours := int(played/time.Hour) % 24
	fmt.Fprintf(&b, "You have been playing for %d day%s and %d hour%s.\r\n", days, plural(days), hours, plural(hours))
	fmt.Fprintf(&b, "This ranks you as %s %s (level %d).\r\n", c.Name, c.Title, c.Level)

	switch c.Position {
	case world.PosDead:
		b.WriteString("You are DEAD!\r\n")
	case world.PosMortallyW:
		b.WriteString("You are mortally wounded!  You should seek help!\r\n")
	case world.PosIncap:
		b.WriteString("You are incapacitated, slowly fading away...\r\n")
	case world.PosStunned:
		b.WriteString("You are stunned!  You can't move!\r\n")
	case world.PosSleeping:
		b.WriteString("You are sleeping.\r\n")
	case world.PosResting:
		b.WriteString("You are resting.\r\n")
	case world.PosSitting:
		b.WriteString("You are sitting.\r\n")
	case world.PosFighting:
		foe := "thin air"
		if w.Chars.Valid(c.Fighting) {
			foe = w.Pers(c.Fighting, ch)
		}
		fmt.Fprintf(&b, "You are fighting %s.\r\n", foe)
	case world.PosStanding:
		b.WriteString("You are standing.\r\n")
	default:
		b.WriteString("You are floating.\r\n")
	}

	cond := c.Player.Conditions
	if cond[world.CondDrunk] > 10 {
		b.WriteString("You are intoxicated.\r\n")
	}
	if cond[world.CondFull] == 0 {
		b.WriteString("You are hungry.\r\n")
	}
	if cond[world.CondThirst] == 0 {
		b.WriteString("You are thirsty.\r\n")
	}
	for _, a := range []struct {
		flag world.AffectFlag
		msg  string
	}{
		{world.AffBlind, "You have been blinded!\r\n"},
		{world.AffInvisible, "You are invisible.\r\n"},
		{world.AffDetectInvis, "You are sensitive to the presence of invisible things.\r\n"},
		{world.AffSanctuary, "You are protected by Sanctuary.\r\n"},
		{world.AffPoison, "You are poisoned!\r\n"},
		{world.AffCharm, "You have been charmed!\r\n"},
		{world.AffInfravision, "Your eyes are glowing red.\r\n"},
	} {
		if c.AffFlags.Has(a.flag) {
			b.WriteString(a.msg)
		}
	}
	if c.PrefFlags.Has(world.PrfSummonable) {
		b.WriteString("You are summonable by other players.\r\n")
	}
	comm.SendToChar(w, ch, b.String())
}

func doInventory(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	comm.SendToChar(g.world, ch, "You are carrying:\r\n")
	g.listObjs(ch, g.world.Ch(ch).Carrying, showObjShort, true)
}

func doEquipment(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	comm.SendToChar(w, ch, "You are using:\r\n")
	found := false
	for pos, o := range w.Ch(ch).Equipment {
		if o.IsZero() {
			continue
		}
		found = true
		comm.SendToChar(w, ch, world.WearWhere[pos])
		if w.CanSeeObj(ch, o) {
			g.showObj(ch, o, showObjShort)
		} else {
			comm.SendToChar(w, ch, "Something.\r\n")
		}
	}
	if !found {
		comm.SendToChar(w, ch, " Nothing.\r\n")
	}
}

func ordinalSuffix(day int) string {
	switch {
	case day == 1:
		return "st"
	case day == 2:
		return "nd"
	case day == 3:
		return "rd"
	case day < 20:
		return "th"
	case day%10 == 1:
		return "st"
	case day%10 == 2:
		return "nd"
	case day%10 == 3:
		return "rd"
	}
	return "th"
}

func doTime(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	t := w.Time
	weekday := (35*t.Month + t.Day + 1) % 7
	hour := t.Hours % 12
	if hour == 0 {
		hour = 12
	}
	ampm := "am"
	if t.Hours >= 12 {
		ampm = "pm"
	}
	comm.SendToCharf(w, ch, "It is %d o'clock %s, on %s.\r\n", hour, ampm, weekdays[weekday])
	day := t.Day + 1
	comm.SendToCharf(w, ch, "The %d%s Day of the %s, Year %d.\r\n", day, ordinalSuffix(day), monthNames[t.Month], t.Year)
}

func doWeather(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	c := w.Ch(ch)
	if !w.IsOutdoors(c.InRoom) {
		comm.SendToChar(w, ch, "You have no feeling about the weather at all.\r\n")
		return
	}
	wx := w.Weather
	feel := "you feel a warm wind from south"
	if wx.Change < 0 {
		feel = "your foot tells you bad weather is due"
	}
	comm.SendToCharf(w, ch, "The sky is %s and %s.\r\n", skyLook[wx.Sky], feel)
	if c.Level >= world.LvlGod {
		comm.SendToCharf(w, ch, "Pressure: %d (change: %d), Sky: %d (%s)\r\n", wx.Pressure, wx.Change, wx.Sky, skyLook[wx.Sky])
	}
}

// whoLine is one entry of the who list.
type whoLine struct {
	Level int
	Class string
	Name  string
	Title string
	Flags []string
}

func (l whoLine) String() string {
	s := fmt.Sprintf("[%2d %s] %s %s", l.Level, l.Class, l.Name, l.Title)
	if len(l.Flags) > 0 {
		s += " " + strings.Join(l.Flags, " ")
	}
	return s
}

// whoList returns the playing characters viewer can see. A zero viewer
// sees everyone not wizinvis.
func (g *Game) whoList(viewer world.CharID) []whoLine {
	w := g.world
	var lines []whoLine
	for _, id := range w.Playing() {
		d := w.Desc(id)
		t := d.Character
		if !d.Original.IsZero() {
			t = d.Original
		}
		tc, ok := w.Chars.Lookup(t)
		if !ok {
			continue
		}
		if viewer.IsZero() {
			if tc.InvisLevel() > 0 {
				continue
			}
		} else if !w.CanSee(viewer, t) {
			continue
		}
		l := whoLine{Level: tc.Level, Class: tc.Class.Abbrev(), Name: tc.Name, Title: tc.Title}
		switch {
		case tc.InvisLevel() > 0:
			l.Flags = append(l.Flags, fmt.Sprintf("(i%d)", tc.InvisLevel()))
		case tc.AffFlags.Has(world.AffInvisible):
			l.Flags = append(l.Flags, "(invis)")
		}
		switch {
		case tc.PlrFlags.Has(world.PlrMailing):
			l.Flags = append(l.Flags, "(mailing)")
		case tc.PlrFlags.Has(world.PlrWriting):
			l.Flags = append(l.Flags, "(writing)")
		}
		for _, f := range []struct {
			on  bool
			tag string
		}{
			{tc.PrefFlags.Has(world.PrfDeaf), "(deaf)"},
			{tc.PrefFlags.Has(world.PrfNoTell), "(notell)"},
			{tc.PrefFlags.Has(world.PrfQuest), "(quest)"},
			{tc.PlrFlags.Has(world.PlrThief), "(THIEF)"},
			{tc.PlrFlags.Has(world.PlrKiller), "(KILLER)"},
		} {
			if f.on {
				l.Flags = append(l.Flags, f.tag)
			}
		}
		lines = append(lines, l)
	}
	return lines
}

func doWho(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	filter, _ := command.OneArgument(argument)
	var b strings.Builder
	b.WriteString("Players\r\n-------\r\n")
	n := 0
	for _, l := range g.whoList(ch) {
		if filter != "" && !command.IsAbbrev(filter, strings.ToLower(l.Name)) {
			continue
		}
		b.WriteString(l.String() + "\r\n")
		n++
	}
	switch n {
	case 0:
		b.WriteString("\r\nNobody at all!\r\n")
	case 1:
		b.WriteString("\r\nOne lonely character displayed.\r\n")
	default:
		fmt.Fprintf(&b, "\r\n%d characters displayed.\r\n", n)
	}
	g.page(ch, b.String())
}

func doUsers(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	var b strings.Builder
	b.WriteString("Num Class   Name         State          Idl Login@   Site\r\n")
	b.WriteString("--- ------- ------------ -------------- --- -------- ------------------------\r\n")
	n := 0
	for i, id := range w.DescList {
		d := w.Desc(id)
		t := d.Character
		if !d.Original.IsZero() {
			t = d.Original
		}
		tc, hasChar := w.Chars.Lookup(t)
		if d.Playing() && (!hasChar || !w.CanSee(ch, d.Character)) {
			continue
		}

		class := "   -   "
		name := "UNDEFINED"
		if hasChar && tc.Name != "" {
			name = tc.Name
			if tc.Class != world.ClassUndefined {
				class = fmt.Sprintf("[%2d %s]", tc.Level, tc.Class.Abbrev())
			}
		}
		state := d.State.String()
		if d.Playing() && !d.Original.IsZero() {
			state = "Switched"
		}
		idle := ""
		if c, ok := w.Chars.Lookup(d.Character); ok && d.Playing() && c.Level < world.LvlGod {
			idle = fmt.Sprintf("%3d", c.Timer*secsPerMudHour/60)
		}
		host := "[Hostname unknown]"
		if d.Host != "" {
			host = "[" + d.Host + "]"
		}
		fmt.Fprintf(&b, "%3d %-7s %-12s %-14s %-3s %-8s %s\r\n",
			i+1, class, name, state, idle, d.LoginTime.Format("15:04:05"), host)
		n++
	}
	fmt.Fprintf(&b, "\r\n%d visible sockets connected.\r\n", n)
	g.page(ch, b.String())
}

func (g *Game) objectLocation(b *strings.Builder, num int, o world.ObjID, ch world.CharID) {
	w := g.world
	obj := w.Obj(o)
	if num > 0 {
		fmt.Fprintf(b, "O%3d. %-25s - ", num, obj.ShortDescr)
	} else {
		fmt.Fprintf(b, "%33s", " - ")
	}
	switch obj.Loc.Kind {
	case world.LocRoom:
		fmt.Fprintf(b, "[%5d] %s\r\n", w.RoomVnum(obj.Loc.Room), w.Room(obj.Loc.Room).Name)
	case world.LocCarried:
		fmt.Fprintf(b, "carried by %s\r\n", w.Pers(obj.Loc.Char, ch))
	case world.LocWorn:
		fmt.Fprintf(b, "worn by %s\r\n", w.Pers(obj.Loc.Char, ch))
	case world.LocContainer:
		fmt.Fprintf(b, "inside %s, which is\r\n", w.Obj(obj.Loc.Obj).ShortDescr)
		g.objectLocation(b, 0, obj.Loc.Obj, ch)
	default:
		b.WriteString("in an unknown location\r\n")
	}
}

func doWhere(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	c := w.Ch(ch)
	var b strings.Builder

	if c.Level >= world.LvlImmort {
		if arg == "" {
			b.WriteString("Players\r\n-------\r\n")
			for _, id := range w.Playing() {
				d := w.Desc(id)
				i := d.Character
				if !d.Original.IsZero() {
					i = d.Original
				}
				ic, ok := w.Chars.Lookup(i)
				if !ok || !w.CanSee(ch, i) || ic.InRoom == world.Nowhere {
					continue
				}
				if !d.Original.IsZero() {
					body := w.Ch(d.Character)
					fmt.Fprintf(&b, "%-20s - [%5d] %s (in %s)\r\n", ic.Name, w.RoomVnum(body.InRoom),
						w.Room(body.InRoom).Name, body.DisplayName())
				} else {
					fmt.Fprintf(&b, "%-20s - [%5d] %s\r\n", ic.Name, w.RoomVnum(ic.InRoom), w.Room(ic.InRoom).Name)
				}
			}
			g.page(ch, b.String())
			return
		}
		num := 0
		for _, i := range w.CharList {
			ic := w.Ch(i)
			if ic.InRoom == world.Nowhere || !w.CanSee(ch, i) || !command.IsName(arg, ic.Name) {
				continue
			}
			num++
			fmt.Fprintf(&b, "M%3d. %-25s - [%5d] %s\r\n", num, ic.DisplayName(), w.RoomVnum(ic.InRoom), w.Room(ic.InRoom).Name)
		}
		for _, o := range w.Objs.Handles() {
			if w.CanSeeObj(ch, o) && command.IsName(arg, w.Obj(o).Name) {
				num++
				g.objectLocation(&b, num, o, ch)
			}
		}
		if num == 0 {
			comm.SendToChar(w, ch, "Couldn't find any such thing.\r\n")
			return
		}
		g.page(ch, b.String())
		return
	}

	zone := w.Room(c.InRoom).Zone
	if arg == "" {
		b.WriteString("Players in your Zone\r\n--------------------\r\n")
		for _, id := range w.Playing() {
			d := w.Desc(id)
			if d.Character == ch {
				continue
			}
			i := d.Character
			if !d.Original.IsZero() {
				i = d.Original
			}
			ic, ok := w.Chars.Lookup(i)
			if !ok || ic.InRoom == world.Nowhere || !w.CanSee(ch, i) || w.Room(ic.InRoom).Zone != zone {
				continue
			}
			fmt.Fprintf(&b, "%-20s - %s\r\n", ic.Name, w.Room(ic.InRoom).Name)
		}
		comm.SendToChar(w, ch, b.String())
		return
	}
	for _, i := range w.CharList {
		ic := w.Ch(i)
		if i == ch || ic.InRoom == world.Nowhere || !w.CanSee(ch, i) || w.Room(ic.InRoom).Zone != zone {
			continue
		}
		if command.IsName(arg, ic.Name) {
			comm.SendToCharf(w, ch, "%-25s - %s\r\n", ic.DisplayName(), w.Room(ic.InRoom).Name)
			return
		}
	}
	comm.SendToChar(w, ch, "No-one around by that name.\r\n")
}

func doCommands(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	vict := ch
	if arg, _ := command.OneArgument(argument); arg != "" {
		v, ok := w.GetCharWorldVis(ch, arg)
		if !ok || w.Ch(v).IsNPC() {
			comm.SendToChar(w, ch, "Who is that?\r\n")
			return
		}
		if w.Ch(ch).Level < w.Ch(v).Level {
			comm.SendToChar(w, ch, "You can't see the commands of people above your level.\r\n")
			return
		}
		vict = v
	}
	socials := subcmd == scmdSocials
	wizhelp := subcmd == scmdWizhelp

	var b strings.Builder
	kind := "commands"
	if socials {
		kind = "socials"
	}
	priv := ""
	if wizhelp {
		priv = "privileged "
	}
	whom := "you"
	if vict != ch {
		whom = w.Ch(vict).Name
	}
	fmt.Fprintf(&b, "The following %s%s are available to %s:\r\n", priv, kind, whom)

	level := w.Ch(vict).Level
	names := make([]*Command, 0, len(g.commands))
	for i := cmdReserved + 1; i < len(g.commands); i++ {
		names = append(names, &g.commands[i])
	}
	slices.SortStableFunc(names, func(a, b *Command) int { return strings.Compare(a.Name, b.Name) })

	no := 1
	for _, c := range names {
		if c.MinLevel < 0 || level < c.MinLevel {
			continue
		}
		if (c.MinLevel >= world.LvlImmort) != wizhelp {
			continue
		}
		if !wizhelp && socials != c.Social {
			continue
		}
		fmt.Fprintf(&b, "%-11s", c.Name)
		if no%7 == 0 {
			b.WriteString("\r\n")
		}
		no++
	}
	if no%7 != 1 {
		b.WriteString("\r\n")
	}
	g.page(ch, b.String())
}

// doGenPS shows one of the text files, or a short fixed reply.
func doGenPS(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	file := map[int]string{
		scmdCredits:  textfiles.Credits,
		scmdNews:     textfiles.News,
		scmdInfo:     textfiles.Info,
		scmdWizlist:  textfiles.Wizlist,
		scmdImmlist:  textfiles.Immlist,
		scmdHandbook: textfiles.Handbook,
		scmdPolicies: textfiles.Policies,
		scmdMotd:     textfiles.Motd,
		scmdImotd:    textfiles.Imotd,
	}
	if name, ok := file[subcmd]; ok {
		g.page(ch, g.texts.Get(name, len(w.Playing())))
		return
	}
	switch subcmd {
	case scmdClear:
		comm.SendToChar(w, ch, "\033[H\033[J")
	case scmdVersion:
		comm.SendToChar(w, ch, versionString+"\r\n")
	case scmdWhoami:
		comm.SendToChar(w, ch, w.Ch(ch).DisplayName()+"\r\n")
	}
}

func doGold(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	switch gold := w.Ch(ch).Points.Gold; gold {
	case 0:
		comm.SendToChar(w, ch, "You're broke!\r\n")
	case 1:
		comm.SendToChar(w, ch, "You have one miserable little gold coin.\r\n")
	default:
		comm.SendToChar(w, ch, fmt.Sprintf("You have %d gold coins.\r\n", gold))
	}
}

func doDiagnose(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		if f := w.Ch(ch).Fighting; !f.IsZero() {
			g.diagnose(f, ch)
			return
		}
		comm.SendToChar(w, ch, "Diagnose who?\r\n")
		return
	}
	vict, ok := w.GetCharRoomVis(ch, arg)
	if !ok {
		comm.SendToChar(w, ch, msgNoPerson)
		return
	}
	g.diagnose(vict, ch)
}
