package gameserver

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Drop subcommands.
const (
	scmdDrop = iota
	scmdJunk
)

var wearMessages = [world.NumWears][2]string{
	{"$n lights $p and holds it.", "You light $p and hold it."},
	{"$n slides $p on to $s right ring finger.", "You slide $p on to your right ring finger."},
	{"$n slides $p on to $s left ring finger.", "You slide $p on to your left ring finger."},
	{"$n wears $p around $s neck.", "You wear $p around your neck."},
	{"$n wears $p around $s neck.", "You wear $p around your neck."},
	{"$n wears $p on $s body.", "You wear $p on your body."},
	{"$n wears $p on $s head.", "You wear $p on your head."},
	{"$n puts $p on $s legs.", "You put $p on your legs."},
	{"$n wears $p on $s feet.", "You wear $p on your feet."},
	{"$n puts $p on $s hands.", "You put $p on your hands."},
	{"$n wears $p on $s arms.", "You wear $p on your arms."},
	{"$n straps $p around $s arm as a shield.", "You start to use $p as a shield."},
	{"$n wears $p about $s body.", "You wear $p around your body."},
	{"$n wears $p around $s waist.", "You wear $p around your waist."},
	{"$n puts $p on around $s right wrist.", "You put $p on around your right wrist."},
	{"$n puts $p on around $s left wrist.", "You put $p on around your left wrist."},
	{"$n wields $p.", "You wield $p."},
	{"$n grabs $p.", "You grab $p."},
}

// wearBits is the wear flag each slot requires. Take means any object.
var wearBits = [world.NumWears]world.WearFlag{
	world.ItemWearTake, world.ItemWearFinger, world.ItemWearFinger, world.ItemWearNeck,
	world.ItemWearNeck, world.ItemWearBody, world.ItemWearHead, world.ItemWearLegs,
	world.ItemWearFeet, world.ItemWearHands, world.ItemWearArms, world.ItemWearShield,
	world.ItemWearAbout, world.ItemWearWaist, world.ItemWearWrist, world.ItemWearWrist,
	world.ItemWearWield, world.ItemWearTake,
}

var alreadyWearing = [world.NumWears]string{
	"You're already using a light.\r\n",
	"YOU SHOULD NEVER SEE THIS MESSAGE.  PLEASE REPORT.\r\n",
	"You're already wearing something on both of your ring fingers.\r\n",
	"YOU SHOULD NEVER SEE THIS MESSAGE.  PLEASE REPORT.\r\n",
	"You can't wear anything else around your neck.\r\n",
	"You're already wearing something on your body.\r\n",
	"You're already wearing something on your head.\r\n",
	"You're already wearing something on your legs.\r\n",
	"You're already wearing something on your feet.\r\n",
	"You're already wearing something on your hands.\r\n",
	"You're already wearing something on your arms.\r\n",
	"You're already using a shield.\r\n",
	"You're already wearing something about your body.\r\n",
	"You already have something around your waist.\r\n",
	"YOU SHOULD NEVER SEE THIS MESSAGE.  PLEASE REPORT.\r\n",
	"You're already wearing something around both of your wrists.\r\n",
	"You're already wielding a weapon.\r\n",
	"You're already holding something.\r\n",
}

// bodyKeywords name the slots "wear <obj> <where>" accepts.
var bodyKeywords = []string{"!RESERVED!", "finger", "!RESERVED!", "neck", "!RESERVED!", "body",
	"head", "legs", "feet", "hands", "arms", "shield", "about", "waist", "wrist", "!RESERVED!",
	"!RESERVED!", "!RESERVED!"}

// moneyDesc describes a heap of coins.
func moneyDesc(amount int) string {
	switch {
	case amount <= 0:
		return ""
	case amount == 1:
		return "a gold coin"
	case amount <= 10:
		return "a tiny pile of gold coins"
	case amount <= 20:
		return "a handful of gold coins"
	case amount <= 75:
		return "a little pile of gold coins"
	case amount <= 200:
		return "a small pile of gold coins"
	case amount <= 1000:
		return "a pile of gold coins"
	case amount <= 5000:
		return "a big pile of gold coins"
	case amount <= 10000:
		return "a large heap of gold coins"
	case amount <= 20000:
		return "a huge mound of gold coins"
	case amount <= 75000:
		return "an enormous mound of gold coins"
	case amount <= 150000:
		return "a small mountain of gold coins"
	case amount <= 250000:
		return "a mountain of gold coins"
	case amount <= 500000:
		return "a huge mountain of gold coins"
	case amount <= 1000000:
		return "an enormous mountain of gold coins"
	}
	return "an absolutely colossal mountain of gold coins"
}

// createMoney makes a coin object worth amount.
func (g *Game) createMoney(amount int) world.ObjID {
	obj := world.Object{
		Type:      world.ItemMoney,
		Values:    [4]int{amount},
		Cost:      amount,
		WearFlags: world.FlagsOf(world.ItemWearTake),
	}
	if amount == 1 {
		obj.Name = "coin gold"
		obj.ShortDescr = "a gold coin"
		obj.Description = "One miserable gold coin is lying here."
		obj.ExtraDescs = []world.ExtraDesc{{Keywords: "coin gold", Description: "It's just one miserable little gold coin."}}
		return g.world.CreateObject(obj)
	}
	obj.Name = "coins gold"
	obj.ShortDescr = moneyDesc(amount)
	obj.Description = command.Cap(moneyDesc(amount)) + " is lying here."
	var look string
	switch {
	case amount < 10:
		look = fmt.Sprintf("There are %d coins.", amount)
	case amount < 100:
		look = fmt.Sprintf("There are about %d coins.", 10*((amount+5)/10))
	case amount < 1000:
		look = fmt.Sprintf("It looks to be about %d coins.", 100*((amount+50)/100))
	case amount < 100000:
		look = fmt.Sprintf("You guess there are, maybe, %d coins.", 1000*((amount+500)/1000))
	default:
		look = "There are a LOT of coins."
	}
	obj.ExtraDescs = []world.ExtraDesc{{Keywords: "coins gold", Description: look}}
	return g.world.CreateObject(obj)
}

// canTakeObj reports whether ch can pick up o, explaining when not.
func (g *Game) canTakeObj(ch world.CharID, o world.ObjID) bool {
	w := g.world
	c := w.Ch(ch)
	obj := w.Obj(o)
	switch {
	case c.CarryItems >= c.CanCarryItems():
		comm.Act(w, "$p: you can't carry that many items.", false, ch, o, nil, comm.ToChar)
	case c.CarryWeight+obj.Weight > c.CanCarryWeight():
		comm.Act(w, "$p: you can't carry that much weight.", false, ch, o, nil, comm.ToChar)
	case !obj.CanWear(world.ItemWearTake):
		comm.Act(w, "$p: you can't take that!", false, ch, o, nil, comm.ToChar)
	default:
		return true
	}
	return false
}

// checkMoney turns a picked up coin object into gold.
func (g *Game) checkMoney(ch world.CharID, o world.ObjID) {
	w := g.world
	obj := w.Obj(o)
	value := obj.Values[0]
	if obj.Type != world.ItemMoney || value <= 0 {
		return
	}
	w.ExtractObj(o)
	w.Ch(ch).Points.Gold += value
	if value == 1 {
		comm.SendToChar(w, ch, "There was 1 coin.\r\n")
	} else {
		comm.SendToCharf(w, ch, "There were %d coins.\r\n", value)
	}
}

func (g *Game) getFromContainer1(ch world.CharID, o, cont world.ObjID, mode int) {
	w := g.world
	if mode != findObjInv && !g.canTakeObj(ch, o) {
		return
	}
	c := w.Ch(ch)
	if c.CarryItems >= c.CanCarryItems() {
		comm.Act(w, "$p: you can't hold any more items.", false, ch, o, nil, comm.ToChar)
		return
	}
	w.ObjFromObj(o)
	w.ObjToChar(o, ch)
	comm.Act(w, "You get $p from $P.", false, ch, o, cont, comm.ToChar)
	comm.Act(w, "$n gets $p from $P.", true, ch, o, cont, comm.ToRoom)
	g.checkMoney(ch, o)
}

func (g *Game) getFromContainer(ch world.CharID, cont world.ObjID, arg string, mode, howmany int) {
	w := g.world
	if w.Obj(cont).Values[1]&world.ContClosed != 0 {
		comm.Act(w, "$p is closed.", false, ch, cont, nil, comm.ToChar)
		return
	}
	dotmode, name := world.FindAllDots(arg)
	if dotmode == world.FindIndiv {
		o, ok := w.GetObjInListVis(ch, name, w.Obj(cont).Contains)
		if !ok {
			comm.Act(w, fmt.Sprintf("There doesn't seem to be %s %s in $p.", command.An(name), name), false, ch, cont, nil, comm.ToChar)
			return
		}
		for ; ok && howmany > 0; howmany-- {
			before := len(w.Obj(cont).Contains)
			g.getFromContainer1(ch, o, cont, mode)
			if len(w.Obj(cont).Contains) == before {
				break
			}
			o, ok = w.GetObjInListVis(ch, name, w.Obj(cont).Contains)
		}
		return
	}
	if dotmode == world.FindAllDot && name == "" {
		comm.SendToChar(w, ch, "Get all of what?\r\n")
		return
	}
	found := false
	for _, o := range slices.Clone(w.Obj(cont).Contains) {
		if w.CanSeeObj(ch, o) && (dotmode == world.FindAll || command.IsName(name, w.Obj(o).Name)) {
			found = true
			g.getFromContainer1(ch, o, cont, mode)
		}
	}
	if !found {
		if dotmode == world.FindAll {
			comm.Act(w, "$p seems to be empty.", false, ch, cont, nil, comm.ToChar)
		} else {
			comm.Act(w, fmt.Sprintf("You can't seem to find any %ss in $p.", name), false, ch, cont, nil, comm.ToChar)
		}
	}
}

func (g *Game) getFromRoom1(ch world.CharID, o world.ObjID) bool {
	w := g.world
	if !g.canTakeObj(ch, o) {
		return false
	}
	w.ObjFromRoom(o)
	w.ObjToChar(o, ch)
	comm.Act(w, "You get $p.", false, ch, o, nil, comm.ToChar)
	comm.Act(w, "$n gets $p.", true, ch, o, nil, comm.ToRoom)
	g.checkMoney(ch, o)
	return true
}

func (g *Game) getFromRoom(ch world.CharID, arg string, howmany int) {
	w := g.world
	room := func() []world.ObjID { return w.Room(w.Ch(ch).InRoom).Contents }
	dotmode, name := world.FindAllDots(arg)
	if dotmode == world.FindIndiv {
		o, ok := w.GetObjInListVis(ch, name, room())
		if !ok {
			comm.SendToCharf(w, ch, "You don't see %s %s here.\r\n", command.An(name), name)
			return
		}
		for ; ok && howmany > 0; howmany-- {
			if !g.getFromRoom1(ch, o) {
				break
			}
			o, ok = w.GetObjInListVis(ch, name, room())
		}
		return
	}
	if dotmode == world.FindAllDot && name == "" {
		comm.SendToChar(w, ch, "Get all of what?\r\n")
		return
	}
	found := false
	for _, o := range slices.Clone(room()) {
		if w.CanSeeObj(ch, o) && (dotmode == world.FindAll || command.IsName(name, w.Obj(o).Name)) {
			found = true
			g.getFromRoom1(ch, o)
		}
	}
	if !found {
		if dotmode == world.FindAll {
			comm.SendToChar(w, ch, "There doesn't seem to be anything here.\r\n")
		} else {
			comm.SendToCharf(w, ch, "You don't see any %ss here.\r\n", name)
		}
	}
}

// threeArguments splits the first three words of argument.
func threeArguments(argument string) (string, string, string) {
	a1, rest := command.OneArgument(argument)
	a2, rest := command.OneArgument(rest)
	a3, _ := command.OneArgument(rest)
	return a1, a2, a3
}

func doGet(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg1, arg2, arg3 := threeArguments(argument)
	switch {
	case arg1 == "":
		comm.SendToChar(w, ch, "Get what?\r\n")
		return
	case arg2 == "":
		g.getFromRoom(ch, arg1, 1)
		return
	case command.IsNumber(arg1) && arg3 == "":
		n, _ := strconv.Atoi(arg1)
		g.getFromRoom(ch, arg2, n)
		return
	}

	amount := 1
	if command.IsNumber(arg1) {
		amount, _ = strconv.Atoi(arg1)
		arg1, arg2 = arg2, arg3
	}
	contMode, contName := world.FindAllDots(arg2)
	if contMode == world.FindIndiv {
		mode, _, cont := g.genericFind(ch, arg2, findObjInv|findObjRoom)
		switch {
		case mode == 0:
			comm.SendToCharf(w, ch, "You don't have %s %s.\r\n", command.An(arg2), arg2)
		case w.Obj(cont).Type != world.ItemContainer:
			comm.Act(w, "$p is not a container.", false, ch, cont, nil, comm.ToChar)
		default:
			g.getFromContainer(ch, cont, arg1, mode, amount)
		}
		return
	}
	if contMode == world.FindAllDot && contName == "" {
		comm.SendToChar(w, ch, "Get from all of what?\r\n")
		return
	}
	found := false
	search := func(list []world.ObjID, mode int) {
		for _, cont := range slices.Clone(list) {
			if !w.Objs.Valid(cont) || !w.CanSeeObj(ch, cont) {
				continue
			}
			if contMode != world.FindAll && !command.IsName(contName, w.Obj(cont).Name) {
				continue
			}
			switch {
			case w.Obj(cont).Type == world.ItemContainer:
				found = true
				g.getFromContainer(ch, cont, arg1, mode, amount)
			case contMode == world.FindAllDot:
				found = true
				comm.Act(w, "$p is not a container.", false, ch, cont, nil, comm.ToChar)
			}
		}
	}
	search(w.Ch(ch).Carrying, findObjInv)
	search(w.Room(w.Ch(ch).InRoom).Contents, findObjRoom)
	if !found {
		if contMode == world.FindAll {
			comm.SendToChar(w, ch, "You can't seem to find any containers.\r\n")
		} else {
			comm.SendToCharf(w, ch, "You can't seem to find any %ss here.\r\n", contName)
		}
	}
}

func (g *Game) dropGold(ch world.CharID, amount, mode int) {
	w := g.world
	c := w.Ch(ch)
	switch {
	case amount <= 0:
		comm.SendToChar(w, ch, "Heh heh heh.. we are jolly funny today, eh?\r\n")
		return
	case c.Points.Gold < amount:
		comm.SendToChar(w, ch, "You don't have that many coins!\r\n")
		return
	}
	if mode == scmdJunk {
		comm.Act(w, fmt.Sprintf("$n drops %s which disappears in a puff of smoke!", moneyDesc(amount)), false, ch, world.ObjID{}, nil, comm.ToRoom)
		comm.SendToChar(w, ch, "You drop some gold which disappears in a puff of smoke!\r\n")
	} else {
		c.Wait = 2 * g.pps
		o := g.createMoney(amount)
		comm.Act(w, fmt.Sprintf("$n drops %s.", moneyDesc(amount)), true, ch, world.ObjID{}, nil, comm.ToRoom)
		comm.SendToChar(w, ch, "You drop some gold.\r\n")
		w.ObjToRoom(o, c.InRoom)
	}
	c.Points.Gold -= amount
}

// dropObj drops or junks one object and returns the junk reward.
func (g *Game) dropObj(ch world.CharID, o world.ObjID, mode int, verb string) int {
	w := g.world
	obj := w.Obj(o)
	if obj.ExtraFlags.Has(world.ItemNoDrop) {
		comm.Act(w, fmt.Sprintf("You can't %s $p, it must be CURSED!", verb), false, ch, o, nil, comm.ToChar)
		return 0
	}
	vanish := ""
	if mode == scmdJunk {
		vanish = "  It vanishes in a puff of smoke!"
	}
	comm.Act(w, fmt.Sprintf("You %s $p.%s", verb, vanish), false, ch, o, nil, comm.ToChar)
	comm.Act(w, fmt.Sprintf("$n %ss $p.%s", verb, vanish), true, ch, o, nil, comm.ToRoom)
	w.ObjFromChar(o)
	if mode == scmdJunk {
		value := max(1, min(200, obj.Cost/16))
		w.ExtractObj(o)
		return value
	}
	w.ObjToRoom(o, w.Ch(ch).InRoom)
	return 0
}

// doDrop handles drop and junk.
func doDrop(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	verb := "drop"
	if subcmd == scmdJunk {
		verb = "junk"
	}
	carrying := func() []world.ObjID { return w.Ch(ch).Carrying }
	arg, rest := command.OneArgument(argument)
	amount := 0

	switch {
	case arg == "":
		comm.SendToCharf(w, ch, "What do you want to %s?\r\n", verb)
		return
	case command.IsNumber(arg):
		multi, _ := strconv.Atoi(arg)
		what, _ := command.OneArgument(rest)
		if what == "coins" || what == "coin" {
			g.dropGold(ch, multi, subcmd)
			return
		}
		switch {
		case multi <= 0:
			comm.SendToChar(w, ch, "Yeah, that makes sense.\r\n")
		case what == "":
			comm.SendToCharf(w, ch, "What do you want to %s %d of?\r\n", verb, multi)
		default:
			o, ok := w.GetObjInListVis(ch, what, carrying())
			if !ok {
				comm.SendToCharf(w, ch, "You don't seem to have any %ss.\r\n", what)
			}
			for ; ok && multi > 0; multi-- {
				n := len(carrying())
				amount += g.dropObj(ch, o, subcmd, verb)
				if len(carrying()) == n {
					break
				}
				o, ok = w.GetObjInListVis(ch, what, carrying())
			}
		}
	default:
		dotmode, name := world.FindAllDots(arg)
		switch dotmode {
		case world.FindAll:
			if subcmd == scmdJunk {
				comm.SendToChar(w, ch, "Go to the dump if you want to junk EVERYTHING!\r\n")
				return
			}
			if len(carrying()) == 0 {
				comm.SendToChar(w, ch, "You don't seem to be carrying anything.\r\n")
			}
			for _, o := range slices.Clone(carrying()) {
				amount += g.dropObj(ch, o, subcmd, verb)
			}
		case world.FindAllDot:
			if name == "" {
				comm.SendToCharf(w, ch, "What do you want to %s all of?\r\n", verb)
				return
			}
			found := false
			for _, o := range slices.Clone(carrying()) {
				if w.CanSeeObj(ch, o) && command.IsName(name, w.Obj(o).Name) {
					found = true
					amount += g.dropObj(ch, o, subcmd, verb)
				}
			}
			if !found {
				comm.SendToCharf(w, ch, "You don't seem to have any %ss.\r\n", name)
			}
		default:
			o, ok := w.GetObjInListVis(ch, arg, carrying())
			if !ok {
				comm.SendToCharf(w, ch, "You don't seem to have %s %s.\r\n", command.An(arg), arg)
				return
			}
			amount += g.dropObj(ch, o, subcmd, verb)
		}
	}

	if amount > 0 && subcmd == scmdJunk {
		comm.SendToChar(w, ch, "You have been rewarded by the gods!\r\n")
		comm.Act(w, "$n has been rewarded by the gods!", true, ch, world.ObjID{}, nil, comm.ToRoom)
		w.Ch(ch).Points.Gold += amount
	}
}

func (g *Game) putObj(ch world.CharID, o, cont world.ObjID) {
	w := g.world
	obj, co := w.Obj(o), w.Obj(cont)
	switch {
	case co.Weight+obj.Weight > co.Values[0]:
		comm.Act(w, "$p won't fit in $P.", false, ch, o, cont, comm.ToChar)
	case obj.ExtraFlags.Has(world.ItemNoDrop) && co.Loc.Kind == world.LocRoom:
		comm.Act(w, "You can't get $p out of your hand.", false, ch, o, nil, comm.ToChar)
	default:
		w.ObjFromChar(o)
		w.ObjToObj(o, cont)
		comm.Act(w, "$n puts $p in $P.", true, ch, o, cont, comm.ToRoom)
		if obj.ExtraFlags.Has(world.ItemNoDrop) && !co.ExtraFlags.Has(world.ItemNoDrop) {
			co.ExtraFlags.Set(world.ItemNoDrop)
			comm.Act(w, "You get a strange feeling as you put $p in $P.", false, ch, o, cont, comm.ToChar)
		} else {
			comm.Act(w, "You put $p in $P.", false, ch, o, cont, comm.ToChar)
		}
	}
}

func doPut(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg1, arg2, arg3 := threeArguments(argument)
	howmany := 1
	theObj, theCont := arg1, arg2
	if arg3 != "" && command.IsNumber(arg1) {
		howmany, _ = strconv.Atoi(arg1)
		theObj, theCont = arg2, arg3
	}
	objMode, objName := world.FindAllDots(theObj)
	contMode, _ := world.FindAllDots(theCont)

	switch {
	case theObj == "":
		comm.SendToChar(w, ch, "Put what in what?\r\n")
		return
	case contMode != world.FindIndiv:
		comm.SendToChar(w, ch, "You can only put things into one container at a time.\r\n")
		return
	case theCont == "":
		what := "them"
		if objMode == world.FindIndiv {
			what = "it"
		}
		comm.SendToCharf(w, ch, "What do you want to put %s in?\r\n", what)
		return
	}

	bits, _, cont := g.genericFind(ch, theCont, findObjInv|findObjRoom)
	switch {
	case bits == 0:
		comm.SendToCharf(w, ch, "You don't see %s %s here.\r\n", command.An(theCont), theCont)
		return
	case w.Obj(cont).Type != world.ItemContainer:
		comm.Act(w, "$p is not a container.", false, ch, cont, nil, comm.ToChar)
		return
	case w.Obj(cont).Values[1]&world.ContClosed != 0:
		comm.SendToChar(w, ch, "You'd better open it first!\r\n")
		return
	}

	if objMode == world.FindIndiv {
		o, ok := w.GetObjInListVis(ch, theObj, w.Ch(ch).Carrying)
		switch {
		case !ok:
			comm.SendToCharf(w, ch, "You aren't carrying %s %s.\r\n", command.An(theObj), theObj)
		case o == cont && howmany == 1:
			comm.SendToChar(w, ch, "You attempt to fold it into itself, but fail.\r\n")
		default:
			for _, o := range slices.Clone(w.Ch(ch).Carrying) {
				if howmany == 0 {
					break
				}
				if o == cont || !w.CanSeeObj(ch, o) || !command.IsName(objName, w.Obj(o).Name) {
					continue
				}
				howmany--
				g.putObj(ch, o, cont)
			}
		}
		return
	}

	found := false
	for _, o := range slices.Clone(w.Ch(ch).Carrying) {
		if o != cont && w.CanSeeObj(ch, o) && (objMode == world.FindAll || command.IsName(objName, w.Obj(o).Name)) {
			found = true
			g.putObj(ch, o, cont)
		}
	}
	if !found {
		if objMode == world.FindAll {
			comm.SendToChar(w, ch, "You don't seem to have anything to put in it.\r\n")
		} else {
			comm.SendToCharf(w, ch, "You don't seem to have any %ss.\r\n", objName)
		}
	}
}

func (g *Game) giveObj(ch, vict world.CharID, o world.ObjID) {
	w := g.world
	v := w.Ch(vict)
	switch {
	case w.Obj(o).ExtraFlags.Has(world.ItemNoDrop):
		comm.Act(w, "You can't let go of $p!!  Yeech!", false, ch, o, nil, comm.ToChar)
	case v.CarryItems >= v.CanCarryItems():
		comm.Act(w, "$N seems to have $S hands full.", false, ch, world.ObjID{}, vict, comm.ToChar)
	case w.Obj(o).Weight+v.CarryWeight > v.CanCarryWeight():
		comm.Act(w, "$E can't carry that much weight.", false, ch, world.ObjID{}, vict, comm.ToChar)
	default:
		w.ObjFromChar(o)
		w.ObjToChar(o, vict)
		comm.Act(w, "You give $p to $N.", false, ch, o, vict, comm.ToChar)
		comm.Act(w, "$n gives you $p.", false, ch, o, vict, comm.ToVict)
		comm.Act(w, "$n gives $p to $N.", true, ch, o, vict, comm.ToNotVict)
	}
}

func (g *Game) giveFindVict(ch world.CharID, arg string) (world.CharID, bool) {
	w := g.world
	arg = command.SkipSpaces(arg)
	if arg == "" {
		comm.SendToChar(w, ch, "To who?\r\n")
		return world.CharID{}, false
	}
	vict, ok := w.GetCharRoomVis(ch, arg)
	switch {
	case !ok:
		comm.SendToChar(w, ch, msgNoPerson)
	case vict == ch:
		comm.SendToChar(w, ch, "What's the point of that?\r\n")
	default:
		return vict, true
	}
	return world.CharID{}, false
}

func (g *Game) giveGold(ch, vict world.CharID, amount int) {
	w := g.world
	c := w.Ch(ch)
	if amount <= 0 {
		comm.SendToChar(w, ch, "Heh heh heh ... we are jolly funny today, eh?\r\n")
		return
	}
	free := !c.IsNPC() && c.Level >= world.LvlGod
	if c.Points.Gold < amount && !free {
		comm.SendToChar(w, ch, "You don't have that many coins!\r\n")
		return
	}
	comm.SendToChar(w, ch, msgOK)
	comm.Act(w, fmt.Sprintf("$n gives you %d gold coin%s.", amount, plural(amount)), false, ch, world.ObjID{}, vict, comm.ToVict)
	comm.Act(w, fmt.Sprintf("$n gives %s to $N.", moneyDesc(amount)), true, ch, world.ObjID{}, vict, comm.ToNotVict)
	if !free {
		c.Points.Gold -= amount
	}
	w.Ch(vict).Points.Gold += amount
}

func doGive(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, rest := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Give what to who?\r\n")
		return
	}
	if command.IsNumber(arg) {
		amount, _ := strconv.Atoi(arg)
		what, rest := command.OneArgument(rest)
		switch {
		case what == "coins" || what == "coin":
			who, _ := command.OneArgument(rest)
			if vict, ok := g.giveFindVict(ch, who); ok {
				g.giveGold(ch, vict, amount)
			}
		case what == "":
			comm.SendToCharf(w, ch, "What do you want to give %d of?\r\n", amount)
		default:
			vict, ok := g.giveFindVict(ch, rest)
			if !ok {
				return
			}
			if _, ok := w.GetObjInListVis(ch, what, w.Ch(ch).Carrying); !ok {
				comm.SendToCharf(w, ch, "You don't seem to have any %ss.\r\n", what)
				return
			}
			for _, o := range slices.Clone(w.Ch(ch).Carrying) {
				if amount == 0 {
					break
				}
				if w.CanSeeObj(ch, o) && command.IsName(what, w.Obj(o).Name) {
					amount--
					g.giveObj(ch, vict, o)
				}
			}
		}
		return
	}

	who, _ := command.OneArgument(rest)
	vict, ok := g.giveFindVict(ch, who)
	if !ok {
		return
	}
	dotmode, name := world.FindAllDots(arg)
	if dotmode == world.FindIndiv {
		o, ok := w.GetObjInListVis(ch, arg, w.Ch(ch).Carrying)
		if !ok {
			comm.SendToCharf(w, ch, "You don't seem to have %s %s.\r\n", command.An(arg), arg)
			return
		}
		g.giveObj(ch, vict, o)
		return
	}
	if dotmode == world.FindAllDot && name == "" {
		comm.SendToChar(w, ch, "All of what?\r\n")
		return
	}
	if len(w.Ch(ch).Carrying) == 0 {
		comm.SendToChar(w, ch, "You don't seem to be holding anything.\r\n")
		return
	}
	for _, o := range slices.Clone(w.Ch(ch).Carrying) {
		if w.CanSeeObj(ch, o) && (dotmode == world.FindAll || command.IsName(name, w.Obj(o).Name)) {
			g.giveObj(ch, vict, o)
		}
	}
}

func (g *Game) performWear(ch world.CharID, o world.ObjID, where world.WearPos) {
	w := g.world
	if !w.Obj(o).CanWear(wearBits[where]) {
		comm.Act(w, "You can't wear $p there.", false, ch, o, nil, comm.ToChar)
		return
	}
	c := w.Ch(ch)
	if (where == world.WearFingerR || where == world.WearNeck1 || where == world.WearWristR) && !c.Equipment[where].IsZero() {
		where++
	}
	if !c.Equipment[where].IsZero() {
		comm.SendToChar(w, ch, alreadyWearing[where])
		return
	}
	comm.Act(w, wearMessages[where][0], true, ch, o, nil, comm.ToRoom)
	comm.Act(w, wearMessages[where][1], false, ch, o, nil, comm.ToChar)
	w.ObjFromChar(o)
	w.EquipChar(o, ch, where)
}

// findEqPos picks the slot o goes to, from the body keyword arg when
// given. It returns -1 when there is none.
func (g *Game) findEqPos(ch world.CharID, o world.ObjID, arg string) world.WearPos {
	obj := g.world.Obj(o)
	if arg != "" {
		i := command.SearchBlock(arg, bodyKeywords, false)
		if i < 0 {
			comm.SendToCharf(g.world, ch, "'%s'?  What part of your body is THAT?\r\n", arg)
			return -1
		}
		return world.WearPos(i)
	}
	where := world.WearPos(-1)
	for _, s := range []struct {
		flag world.WearFlag
		pos  world.WearPos
	}{
		{world.ItemWearFinger, world.WearFingerR},
		{world.ItemWearNeck, world.WearNeck1},
		{world.ItemWearBody, world.WearBody},
		{world.ItemWearHead, world.WearHead},
		{world.ItemWearLegs, world.WearLegs},
		{world.ItemWearFeet, world.WearFeet},
		{world.ItemWearHands, world.WearHands},
		{world.ItemWearArms, world.WearArms},
		{world.ItemWearShield, world.WearShield},
		{world.ItemWearAbout, world.WearAbout},
		{world.ItemWearWaist, world.WearWaist},
		{world.ItemWearWrist, world.WearWristR},
	} {
		if obj.CanWear(s.flag) {
			where = s.pos
		}
	}
	return where
}

func doWear(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg1, arg2 := command.TwoArguments(argument)
	if arg1 == "" {
		comm.SendToChar(w, ch, "Wear what?\r\n")
		return
	}
	dotmode, name := world.FindAllDots(arg1)
	if arg2 != "" && dotmode != world.FindIndiv {
		comm.SendToChar(w, ch, "You can't specify the same body location for more than one item!\r\n")
		return
	}
	switch dotmode {
	case world.FindAll:
		worn := 0
		for _, o := range slices.Clone(w.Ch(ch).Carrying) {
			if !w.CanSeeObj(ch, o) {
				continue
			}
			if where := g.findEqPos(ch, o, ""); where >= 0 {
				worn++
				g.performWear(ch, o, where)
			}
		}
		if worn == 0 {
			comm.SendToChar(w, ch, "You don't seem to have anything wearable.\r\n")
		}
	case world.FindAllDot:
		if name == "" {
			comm.SendToChar(w, ch, "Wear all of what?\r\n")
			return
		}
		found := false
		for _, o := range slices.Clone(w.Ch(ch).Carrying) {
			if !w.CanSeeObj(ch, o) || !command.IsName(name, w.Obj(o).Name) {
				continue
			}
			found = true
			if where := g.findEqPos(ch, o, ""); where >= 0 {
				g.performWear(ch, o, where)
			} else {
				comm.Act(w, "You can't wear $p.", false, ch, o, nil, comm.ToChar)
			}
		}
		if !found {
			comm.SendToCharf(w, ch, "You don't seem to have any %ss.\r\n", name)
		}
	default:
		o, ok := w.GetObjInListVis(ch, arg1, w.Ch(ch).Carrying)
		if !ok {
			comm.SendToCharf(w, ch, "You don't seem to have %s %s.\r\n", command.An(arg1), arg1)
			return
		}
		if where := g.findEqPos(ch, o, arg2); where >= 0 {
			g.performWear(ch, o, where)
		} else if arg2 == "" {
			comm.Act(w, "You can't wear $p.", false, ch, o, nil, comm.ToChar)
		}
	}
}

// wieldWeight is the heaviest weapon a character of the given strength
// can wield.
func wieldWeight(str int) int {
	if str <= 16 {
		return max(str, 0)
	}
	return 16 + 2*(str-16)
}

func doWield(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Wield what?\r\n")
		return
	}
	o, ok := w.GetObjInListVis(ch, arg, w.Ch(ch).Carrying)
	switch {
	case !ok:
		comm.SendToCharf(w, ch, "You don't seem to have %s %s.\r\n", command.An(arg), arg)
	case !w.Obj(o).CanWear(world.ItemWearWield):
		comm.SendToChar(w, ch, "You can't wield that.\r\n")
	case w.Obj(o).Weight > wieldWeight(w.Ch(ch).Abilities.Str):
		comm.SendToChar(w, ch, "It's too heavy for you to use.\r\n")
	default:
		g.performWear(ch, o, world.WearWield)
	}
}

func doGrab(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Hold what?\r\n")
		return
	}
	o, ok := w.GetObjInListVis(ch, arg, w.Ch(ch).Carrying)
	if !ok {
		comm.SendToCharf(w, ch, "You don't seem to have %s %s.\r\n", command.An(arg), arg)
		return
	}
	obj := w.Obj(o)
	switch obj.Type {
	case world.ItemLight:
		g.performWear(ch, o, world.WearLight)
	case world.ItemWand, world.ItemStaff, world.ItemScroll, world.ItemPotion:
		g.performWear(ch, o, world.WearHold)
	default:
		if !obj.CanWear(world.ItemWearHold) {
			comm.SendToChar(w, ch, "You can't hold that.\r\n")
			return
		}
		g.performWear(ch, o, world.WearHold)
	}
}

func (g *Game) performRemove(ch world.CharID, pos world.WearPos) {
	w := g.world
	c := w.Ch(ch)
	o := c.Equipment[pos]
	switch {
	case o.IsZero():
		g.logger.Error("SYSERR: performRemove: bad pos " + strconv.Itoa(int(pos)))
	case w.Obj(o).ExtraFlags.Has(world.ItemNoDrop):
		comm.Act(w, "You can't remove $p, it must be CURSED!", false, ch, o, nil, comm.ToChar)
	case c.CarryItems >= c.CanCarryItems():
		comm.Act(w, "$p: you can't carry that many items!", false, ch, o, nil, comm.ToChar)
	default:
		w.ObjToChar(w.UnequipChar(ch, pos), ch)
		comm.Act(w, "You stop using $p.", false, ch, o, nil, comm.ToChar)
		comm.Act(w, "$n stops using $p.", true, ch, o, nil, comm.ToRoom)
	}
}

func doRemove(g *Game, ch world.CharID, argument string, cmd, subcmd int) {
	w := g.world
	arg, _ := command.OneArgument(argument)
	if arg == "" {
		comm.SendToChar(w, ch, "Remove what?\r\n")
		return
	}
	dotmode, name := world.FindAllDots(arg)
	switch dotmode {
	case world.FindAll:
		found := false
		for pos := range world.NumWears {
			if !w.Ch(ch).Equipment[pos].IsZero() {
				g.performRemove(ch, pos)
				found = true
			}
		}
		if !found {
			comm.SendToChar(w, ch, "You're not using anything.\r\n")
		}
	case world.FindAllDot:
		if name == "" {
			comm.SendToChar(w, ch, "Remove all of what?\r\n")
			return
		}
		found := false
		for pos := range world.NumWears {
			o := w.Ch(ch).Equipment[pos]
			if !o.IsZero() && w.CanSeeObj(ch, o) && command.IsName(name, w.Obj(o).Name) {
				g.performRemove(ch, pos)
				found = true
			}
		}
		if !found {
			comm.SendToCharf(w, ch, "You don't seem to be using any %ss.\r\n", name)
		}
	default:
		_, pos, ok := w.GetObjInEquipVis(ch, arg)
		if !ok {
			comm.SendToCharf(w, ch, "You don't seem to be using %s %s.\r\n", command.An(arg), arg)
			return
		}
		g.performRemove(ch, pos)
	}
}
