package gameserver

import (
	"fmt"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// dupeMode is how a login takes over an existing body.
type dupeMode int

const (
	dupeNone dupeMode = iota
	dupeReconnect
	dupeUsurp
	dupeUnswitch
)

const multipleLogin = "\r\nMultiple login detected -- disconnecting.\r\n"

// dupeCheck finds another session or a linkless body for the player that
// just gave its password on id. Other sessions are closed; if a body is
// found the connection takes it over and enters the game directly.
//
// Postcondition: Returns true when id is now playing an existing body.
func (g *Game) dupeCheck(id world.DescID) bool {
	w := g.world
	d := w.Desc(id)
	login := d.Character
	idnum := w.Ch(login).IDNum

	var target world.CharID
	mode := dupeNone

	for _, kid := range w.DescList {
		if kid == id {
			continue
		}
		k := w.Desc(kid)
		orig, hasOrig := w.Chars.Lookup(k.Original)
		kc, hasChar := w.Chars.Lookup(k.Character)
		switch {
		case hasOrig && !orig.IsNPC() && orig.IDNum == idnum:
			// The body was left behind by an immortal who switched.
			d.Write(multipleLogin)
			k.State = world.ConClose
			if target.IsZero() {
				target = k.Original
				mode = dupeUnswitch
			}
			if hasChar {
				kc.Desc = world.DescID{}
			}
			orig.Desc = world.DescID{}
			k.Character = world.CharID{}
			k.Original = world.CharID{}
		case hasChar && !kc.IsNPC() && kc.IDNum == idnum:
			switch {
			case !k.Playing():
				// A copy loaded for the prompts or the menu.
				w.FreeChar(k.Character)
			case target.IsZero():
				k.Write("\r\nThis body has been usurped!\r\n")
				target = k.Character
				mode = dupeUsurp
				kc.Desc = world.DescID{}
			default:
				kc.Desc = world.DescID{}
			}
			k.Character = world.CharID{}
			k.Original = world.CharID{}
			k.Write(multipleLogin)
			k.State = world.ConClose
		}
	}

	for _, ch := range append([]world.CharID(nil), w.CharList...) {
		c, ok := w.Chars.Lookup(ch)
		if !ok || c.IsNPC() || c.IDNum != idnum || ch == login {
			continue
		}
		if !c.Desc.IsZero() || ch == target {
			continue
		}
		if target.IsZero() {
			target = ch
			mode = dupeReconnect
			continue
		}
		if c.InRoom != world.Nowhere {
			w.CharFromRoom(ch)
		}
		w.CharToRoom(ch, g.voidRoom())
		w.ExtractChar(ch)
	}

	if target.IsZero() {
		return false
	}

	w.FreeChar(login)
	d = w.Desc(id)
	d.Character = target
	d.Original = world.CharID{}
	t := w.Ch(target)
	t.Desc = id
	t.Timer = 0
	t.PlrFlags.Clear(world.PlrMailing | world.PlrWriting)
	t.AffFlags.Clear(world.AffGroup)
	d.State = world.ConPlaying

	level := max(world.LvlImmort, t.InvisLevel())
	switch mode {
	case dupeReconnect:
		d.Write("Reconnecting.\r\n")
		comm.Act(w, "$n has reconnected.", true, target, world.ObjID{}, nil, comm.ToRoom)
		g.mudlog(logNrm, level, fmt.Sprintf("%s [%s] has reconnected.", t.Name, d.Host))
	case dupeUsurp:
		d.Write("You take over your own body, already in use!\r\n")
		comm.Act(w, "$n suddenly keels over in pain, surrounded by a white aura...\r\n"+
			"$n's body has been taken over by a new spirit!", true, target, world.ObjID{}, nil, comm.ToRoom)
		g.mudlog(logNrm, level, fmt.Sprintf("%s has re-logged in ... disconnecting old socket.", t.Name))
	case dupeUnswitch:
		d.Write("Reconnecting to unswitched char.")
		g.mudlog(logNrm, level, fmt.Sprintf("%s [%s] has reconnected.", t.Name, d.Host))
	}
	return true
}

// voidRoom is the room idle and displaced players are kept in.
func (g *Game) voidRoom() world.Rnum {
	if r := g.world.RealRoom(world.Vnum(g.cfg.VoidRoom)); r != world.Nowhere {
		return r
	}
	return 0
}
