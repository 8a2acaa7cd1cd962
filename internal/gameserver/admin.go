package gameserver

import (
	"context"
	"time"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// StatusReport is a snapshot of the running game for the admin API.
type StatusReport struct {
	Name        string
	Uptime      time.Duration
	Pulse       int
	Descriptors int
	Playing     int
	Characters  int
	Objects     int
	Rooms       int
	Zones       int
	Restrict    int
}

// Session describes one connection for the admin API.
type Session struct {
	ID        string
	Transport string
	Host      string
	State     string
	Name      string
	Level     int
	Class     string
	Idle      int
	LoginTime time.Time
}

// Status reports the game's counters, read on the game goroutine.
func (g *Game) Status(ctx context.Context) (StatusReport, error) {
	var r StatusReport
	err := g.Call(ctx, func() {
		w := g.world
		r = StatusReport{
			Name:        g.server.Name,
			Uptime:      g.now().Sub(g.boot),
			Pulse:       g.pulse,
			Descriptors: len(w.DescList),
			Playing:     len(w.Playing()),
			Characters:  len(w.CharList),
			Objects:     w.Objs.Len(),
			Rooms:       len(w.Rooms),
			Zones:       len(w.Zones),
			Restrict:    g.restrict,
		}
	})
	return r, err
}

// Sessions lists every connection, invisible characters included.
func (g *Game) Sessions(ctx context.Context) ([]Session, error) {
	var out []Session
	err := g.Call(ctx, func() {
		w := g.world
		for _, id := range w.DescList {
			d := w.Desc(id)
			s := Session{
				ID:        d.ID.String(),
				Transport: d.Conn.Kind(),
				Host:      d.Host,
				State:     d.State.String(),
				Idle:      d.IdleTics,
				LoginTime: d.LoginTime,
			}
			t := d.Character
			if !d.Original.IsZero() {
				t = d.Original
			}
			if c, ok := w.Chars.Lookup(t); ok {
				s.Name = c.Name
				s.Level = c.Level
				s.Class = c.Class.String()
				if c.Desc == id && c.Timer > 0 {
					s.Idle = c.Timer
				}
			}
			out = append(out, s)
		}
	})
	return out, err
}

// Broadcast sends msg to every playing character.
func (g *Game) Broadcast(ctx context.Context, msg string) error {
	return g.Call(ctx, func() {
		comm.SendToAll(g.world, msg+"\r\n")
		g.mudlog(logBrf, world.LvlGod, "(GC) admin broadcast: "+msg)
	})
}
