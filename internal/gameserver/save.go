package gameserver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

const storeTimeout = 5 * time.Second

// storeCtx bounds one store call made from the game loop.
func (g *Game) storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// recordFromChar builds the saved form of a player. Abilities and points
// are stored without affect and equipment modifiers.
func (g *Game) recordFromChar(ch world.CharID) *storage.PlayerRecord {
	w := g.world
	c := w.Ch(ch)
	p := c.Player
	abils, pts := w.Unaffected(ch)

	affFlags := c.AffFlags
	for _, af := range c.Affects {
		affFlags.Clear(af.Bits)
	}
	rec := &storage.PlayerRecord{
		IDNum:       c.IDNum,
		Name:        c.Name,
		Password:    p.Password,
		Level:       c.Level,
		Sex:         int(c.Sex),
		Class:       int(c.Class),
		Title:       c.Title,
		Description: c.Description,
		Host:        p.Host,
		Birth:       p.Birth,
		LastLogon:   p.LastLogon,
		Played:      p.Played,
		BadPws:      p.BadPws,
		LoadRoom:    int32(p.LoadRoom),
		InvisLevel:  p.InvisLevel,
		FreezeLevel: p.FreezeLevel,
		Practices:   p.Practices,
		Alignment:   c.Alignment,
		PoofIn:      p.PoofIn,
		PoofOut:     p.PoofOut,
		PlrFlags:    uint64(c.PlrFlags.Bits() &^ world.PlrNotDeadYet),
		PrefFlags:   uint64(c.PrefFlags.Bits()),
		AffFlags:    uint64(affFlags.Bits()),
		Abilities:   [6]int{abils.Str, abils.Int, abils.Wis, abils.Dex, abils.Con, abils.Cha},
		Conditions:  p.Conditions,
		Hit:         c.Points.Hit,
		MaxHit:      pts.MaxHit,
		Mana:        c.Points.Mana,
		MaxMana:     pts.MaxMana,
		Move:        c.Points.Move,
		MaxMove:     pts.MaxMove,
		Gold:        c.Points.Gold,
		BankGold:    c.Points.BankGold,
		Exp:         c.Points.Exp,
		Armor:       pts.Armor,
		Hitroll:     pts.Hitroll,
		Damroll:     pts.Damroll,
	}
	for _, af := range c.Affects {
		rec.Affects = append(rec.Affects, storage.AffectRecord{
			Type:     af.Type,
			Duration: af.Duration,
			Modifier: af.Modifier,
			Location: int(af.Location),
			Bits:     uint64(af.Bits),
		})
	}
	return rec
}

// charFromRecord rebuilds a player from its record. Affects are applied
// once the character is stored; see applySavedAffects.
func charFromRecord(rec *storage.PlayerRecord) world.Character {
	c := world.NewPlayer(rec.Name)
	c.IDNum = rec.IDNum
	c.Level = rec.Level
	c.Sex = world.Sex(rec.Sex)
	c.Class = world.Class(rec.Class)
	c.Title = rec.Title
	c.Description = rec.Description
	c.Alignment = rec.Alignment
	c.PlrFlags.SetBits(world.PlayerFlag(rec.PlrFlags))
	c.PrefFlags.SetBits(world.PrefFlag(rec.PrefFlags))
	c.AffFlags.SetBits(world.AffectFlag(rec.AffFlags))
	a := rec.Abilities
	c.Abilities = world.Abilities{Str: a[0], Int: a[1], Wis: a[2], Dex: a[3], Con: a[4], Cha: a[5]}
	c.Points = world.Points{
		Hit:     rec.Hit, MaxHit: rec.MaxHit,
		Mana:    rec.Mana, MaxMana: rec.MaxMana,
		Move:    rec.Move, MaxMove: rec.MaxMove,
		Gold:    rec.Gold, BankGold: rec.BankGold,
		Exp:     rec.Exp, Armor: rec.Armor,
		Hitroll: rec.Hitroll, Damroll: rec.Damroll,
	}
	*c.Player = world.PlayerData{
		Password:    rec.Password,
		BadPws:      rec.BadPws,
		Host:        rec.Host,
		Birth:       rec.Birth,
		LastLogon:   rec.LastLogon,
		Played:      rec.Played,
		InvisLevel:  rec.InvisLevel,
		FreezeLevel: rec.FreezeLevel,
		LoadRoom:    world.Vnum(rec.LoadRoom),
		Conditions:  rec.Conditions,
		PoofIn:      rec.PoofIn,
		PoofOut:     rec.PoofOut,
		Practices:   rec.Practices,
	}
	return c
}

// applySavedAffects restores the timed affects in rec onto ch.
func (g *Game) applySavedAffects(ch world.CharID, rec *storage.PlayerRecord) {
	for i := len(rec.Affects) - 1; i >= 0; i-- {
		af := rec.Affects[i]
		g.world.AffectToChar(ch, world.Affect{
			Type:     af.Type,
			Duration: af.Duration,
			Modifier: af.Modifier,
			Location: world.ApplyLoc(af.Location),
			Bits:     world.AffectFlag(af.Bits),
		})
	}
}

// saveChar writes a player to the player store. NPCs are ignored.
func (g *Game) saveChar(ch world.CharID) {
	w := g.world
	c, ok := w.Chars.Lookup(ch)
	if !ok || c.IsNPC() || c.Player == nil || c.Name == "" {
		return
	}
	if d, ok := w.Descs.Lookup(c.Desc); ok {
		c.Player.Host = d.Host
	}
	rec := g.recordFromChar(ch)
	ctx, cancel := g.storeCtx()
	defer cancel()
	if err := g.stores.Players.Save(ctx, rec); err != nil {
		g.logger.Error("SYSERR: saving player", zap.String("name", c.Name), zap.Error(err))
		return
	}
	w.Ch(ch).IDNum = rec.IDNum
}

// saveAll saves every player in the game along with what they carry.
func (g *Game) saveAll() {
	w := g.world
	for _, id := range w.Playing() {
		d := w.Desc(id)
		ch := d.Character
		if !d.Original.IsZero() && w.Chars.Valid(d.Original) {
			ch = d.Original
		}
		c, ok := w.Chars.Lookup(ch)
		if !ok || c.IsNPC() {
			continue
		}
		g.saveChar(ch)
		g.crashSave(ch)
	}
}

// rentItems lists what ch carries and wears in saved form.
func (g *Game) rentItems(ch world.CharID) []storage.RentItem {
	w := g.world
	c := w.Ch(ch)
	var items []storage.RentItem
	for pos, o := range c.Equipment {
		if !o.IsZero() {
			items = append(items, g.rentItem(o, pos))
		}
	}
	for _, o := range c.Carrying {
		items = append(items, g.rentItem(o, -1))
	}
	return items
}

func (g *Game) rentItem(o world.ObjID, worn int) storage.RentItem {
	obj := g.world.Obj(o)
	it := storage.RentItem{
		Vnum:       int32(obj.Vnum),
		Worn:       worn,
		Values:     obj.Values,
		ExtraFlags: uint64(obj.ExtraFlags.Bits()),
		Weight:     obj.Weight,
		Timer:      obj.Timer,
	}
	for _, inner := range obj.Contains {
		sub := g.rentItem(inner, -1)
		it.Weight -= g.world.Obj(inner).Weight
		it.Contents = append(it.Contents, sub)
	}
	return it
}

// crashSave stores what ch carries so a crash or reconnect restores it.
func (g *Game) crashSave(ch world.CharID) {
	c := g.world.Ch(ch)
	if c.IsNPC() || c.IDNum == 0 {
		return
	}
	items := g.rentItems(ch)
	ctx, cancel := g.storeCtx()
	defer cancel()
	if err := g.stores.Rent.SaveRent(ctx, c.IDNum, items); err != nil {
		g.logger.Error("SYSERR: saving rent", zap.String("name", c.Name), zap.Error(err))
	}
}

// rentSave stores what ch carries and then destroys it, as on quit or an
// idle rent.
func (g *Game) rentSave(ch world.CharID) {
	g.crashSave(ch)
	w := g.world
	c := w.Ch(ch)
	for pos := range world.NumWears {
		if o := w.UnequipChar(ch, pos); !o.IsZero() {
			w.ExtractObj(o)
		}
	}
	for _, o := range slices.Clone(c.Carrying) {
		w.ExtractObj(o)
	}
}

// crashLoad gives ch back what it saved. Objects whose templates are gone
// are skipped.
func (g *Game) crashLoad(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	ctx, cancel := g.storeCtx()
	defer cancel()
	items, err := g.stores.Rent.LoadRent(ctx, c.IDNum)
	if err != nil {
		g.logger.Error("SYSERR: loading rent", zap.String("name", c.Name), zap.Error(err))
		return
	}
	n := 0
	for _, it := range items {
		o, ok := g.restoreItem(it)
		if !ok {
			continue
		}
		n++
		pos := world.WearPos(it.Worn)
		if it.Worn >= 0 && pos < world.NumWears && w.EquipChar(o, ch, pos) {
			continue
		}
		w.ObjToChar(o, ch)
	}
	if n > 0 {
		g.logger.Debug("restored rent", zap.String("name", w.Ch(ch).Name), zap.Int("objects", n))
	}
}

func (g *Game) restoreItem(it storage.RentItem) (world.ObjID, bool) {
	w := g.world
	rnum := w.RealObject(world.Vnum(it.Vnum))
	if rnum < 0 {
		g.logger.Warn("rent object no longer exists", zap.Int32("vnum", it.Vnum))
		return world.ObjID{}, false
	}
	o := w.ReadObject(rnum)
	obj := w.Obj(o)
	obj.Values = it.Values
	obj.ExtraFlags.SetBits(world.ItemFlag(it.ExtraFlags))
	obj.Weight = it.Weight
	obj.Timer = it.Timer
	for _, sub := range it.Contents {
		if inner, ok := g.restoreItem(sub); ok {
			w.ObjToObj(inner, o)
		}
	}
	return o, true
}

// loadPlayer fetches a record by name. A missing player is reported as
// (nil, nil).
func (g *Game) loadPlayer(name string) (*storage.PlayerRecord, error) {
	ctx, cancel := g.storeCtx()
	defer cancel()
	rec, err := g.stores.Players.Load(ctx, name)
	if errors.Is(err, storage.ErrPlayerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading player %s: %w", name, err)
	}
	return rec, nil
}

// playerName resolves an idnum to a name for mail and boards.
func (g *Game) playerName(idnum int64) string {
	for _, ch := range g.world.CharList {
		if c := g.world.Ch(ch); !c.IsNPC() && c.IDNum == idnum {
			return c.Name
		}
	}
	ctx, cancel := g.storeCtx()
	defer cancel()
	rec, err := g.stores.Players.LoadByID(ctx, idnum)
	if err != nil {
		return "someone"
	}
	return rec.Name
}

// initChar prepares a freshly created player. The very first player on
// file becomes the implementor.
func (g *Game) initChar(ch world.CharID) {
	w := g.world
	ctx, cancel := g.storeCtx()
	count, err := g.stores.Players.Count(ctx)
	cancel()
	if err != nil {
		g.logger.Error("SYSERR: counting players", zap.Error(err))
	}

	c := w.Ch(ch)
	if err == nil && count == 0 {
		c.Level = world.LvlImpl
		c.Points.Exp = 7000000
		c.Points.MaxHit = 500
		c.Points.MaxMana = 100
		c.Points.MaxMove = 82
		c.Points.Hit = c.Points.MaxHit
		c.Points.Mana = c.Points.MaxMana
		c.Points.Move = c.Points.MaxMove
	}
	c.ShortDescr = ""
	c.LongDescr = ""
	c.Description = ""
	now := g.now()
	c.Player.Birth = now
	c.Player.LastLogon = now
	c.Player.Played = 0
	c.Points.Armor = 100
	c.AffFlags.SetBits(0)
	c.Abilities = world.Abilities{Str: 25, Int: 25, Wis: 25, Dex: 25, Con: 25, Cha: 25}
	for i := range c.Player.Conditions {
		if c.Level == world.LvlImpl {
			c.Player.Conditions[i] = -1
		} else {
			c.Player.Conditions[i] = 0
		}
	}
	c.PrefFlags.Set(world.PrfAutoExit | world.PrfDispHP | world.PrfDispMana | world.PrfDispMove)
	c.Player.LoadRoom = world.NoVnum
}

// rollAbilities rolls 4d6 six times, dropping the lowest die, and hands
// the best results to the class's prime attributes.
func (g *Game) rollAbilities(ch world.CharID) {
	roll := g.world.Dice
	table := make([]int, 0, 6)
	for range 6 {
		dice := []int{roll.Number(1, 6), roll.Number(1, 6), roll.Number(1, 6), roll.Number(1, 6)}
		table = append(table, dice[0]+dice[1]+dice[2]+dice[3]-slices.Min(dice))
	}
	slices.Sort(table)
	slices.Reverse(table)

	c := g.world.Ch(ch)
	a := &c.Abilities
	switch c.Class {
	case world.ClassMagicUser:
		a.Int, a.Wis, a.Dex, a.Str, a.Con, a.Cha = table[0], table[1], table[2], table[3], table[4], table[5]
	case world.ClassCleric:
		a.Wis, a.Int, a.Str, a.Dex, a.Con, a.Cha = table[0], table[1], table[2], table[3], table[4], table[5]
	case world.ClassThief:
		a.Dex, a.Str, a.Con, a.Int, a.Wis, a.Cha = table[0], table[1], table[2], table[3], table[4], table[5]
	case world.ClassWarrior:
		a.Str, a.Dex, a.Con, a.Wis, a.Int, a.Cha = table[0], table[1], table[2], table[3], table[4], table[5]
	}
}

// doStart makes a level 0 character a level 1 adventurer.
func (g *Game) doStart(ch world.CharID) {
	c := g.world.Ch(ch)
	c.Level = 1
	c.Points.Exp = 1
	c.Title = ""
	g.rollAbilities(ch)

	c = g.world.Ch(ch)
	c.Points.MaxHit = 10
	c.Points.MaxMana = 100
	c.Points.MaxMove = 82
	g.advanceLevel(ch)
	g.mudlog(logBrf, max(world.LvlImmort, c.InvisLevel()),
		fmt.Sprintf("%s advanced to level %d", c.Name, c.Level))

	c = g.world.Ch(ch)
	c.Points.Hit = c.Points.MaxHit
	c.Points.Mana = c.Points.MaxMana
	c.Points.Move = c.Points.MaxMove
	c.Player.Conditions[world.CondThirst] = 24
	c.Player.Conditions[world.CondFull] = 24
	c.Player.Conditions[world.CondDrunk] = 0
}

// advanceLevel grants the hit, mana and move gains of a new level.
func (g *Game) advanceLevel(ch world.CharID) {
	roll := g.world.Dice
	c := g.world.Ch(ch)
	addHP := conHitBonus(c.Abilities.Con)
	addMana, addMove := 0, 0
	switch c.Class {
	case world.ClassMagicUser:
		addHP += roll.Number(3, 8)
		addMana = min(roll.Number(c.Level, 3*c.Level/2), 10)
		addMove = roll.Number(0, 2)
	case world.ClassCleric:
		addHP += roll.Number(5, 10)
		addMana = min(roll.Number(c.Level, 3*c.Level/2), 10)
		addMove = roll.Number(0, 2)
	case world.ClassThief:
		addHP += roll.Number(7, 13)
		addMove = roll.Number(1, 3)
	case world.ClassWarrior:
		addHP += roll.Number(10, 15)
		addMove = roll.Number(1, 3)
	}
	c.Points.MaxHit += max(1, addHP)
	c.Points.MaxMove += max(1, addMove)
	if c.Level > 1 {
		c.Points.MaxMana += addMana
	}
	if c.Class == world.ClassMagicUser || c.Class == world.ClassCleric {
		c.Player.Practices += 2
	} else {
		c.Player.Practices++
	}
	if c.Level >= world.LvlImmort {
		for i := range c.Player.Conditions {
			c.Player.Conditions[i] = -1
		}
		c.PrefFlags.Set(world.PrfHolylight)
	}
	g.saveChar(ch)
}

// conHitp is the constitution hit point adjustment per level, indexed
// by constitution.
var conHitp = [...]int{-4, -3, -2, -2, -1, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 2, 3, 3, 4, 5, 5, 5, 6, 6}

func conHitBonus(con int) int {
	return conHitp[max(0, min(con, len(conHitp)-1))]
}
