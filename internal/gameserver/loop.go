package gameserver

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Heartbeat periods, in seconds.
const (
	secsZone        = 10
	secsMobile      = 10
	secsIdlePwd     = 15
	secsPerMudHour  = 75
	secsAutosave    = 60
	secsUsage       = 5 * 60
	maxMissedSecs   = 30
	pulseWrapHours  = 10
	shutdownMessage = "Shutting down.\r\n"
)

// Run drives the game until ctx ends or Shutdown is called. Each pulse
// handles all pending input, output and heartbeats. When the host falls
// behind, missed pulses run back to back, up to thirty seconds' worth.
//
// Postcondition: Every player has been saved and every connection closed.
func (g *Game) Run(ctx context.Context) error {
	defer close(g.stopped)

	interval := g.cfg.PulseInterval
	timer := time.NewTimer(interval)
	defer timer.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			g.shutdownReason = "context cancelled"
			g.finish()
			return nil
		case reason := <-g.shutdown:
			g.stopping = true
			g.shutdownReason = reason
		case <-timer.C:
		}

		if g.stopping {
			g.finish()
			return nil
		}

		now := time.Now()
		pulses := int(now.Sub(last) / interval)
		if pulses < 1 {
			pulses = 1
		}
		if limit := maxMissedSecs * g.pps; pulses > limit {
			g.logger.Warn("SYSERR: Missed pulses",
				zap.Int("seconds", pulses/g.pps),
			)
			pulses = limit
		}
		last = last.Add(time.Duration(pulses) * interval)
		if now.Sub(last) > interval {
			last = now
		}

		g.Tick(pulses)

		timer.Reset(max(time.Until(last.Add(interval)), 0))
	}
}

// Tick runs one pass of the loop: network input, one command per
// connection, output, closes, then the given number of heartbeats.
func (g *Game) Tick(pulses int) {
	start := time.Now()

	g.acceptNew()
	g.runTasks()
	g.processInput()
	g.processCommands()
	g.processOutput()
	g.closeRequested()

	if g.metrics != nil && pulses > 1 {
		g.metrics.MissedPulses.Add(float64(pulses - 1))
	}
	for range pulses {
		g.pulse++
		g.heartbeat(g.pulse)
		if g.pulse >= pulseWrapHours*60*60*g.pps {
			g.pulse = 0
		}
	}
	g.updateMetrics(time.Since(start))
}

func (g *Game) runTasks() {
	for {
		select {
		case fn := <-g.tasks:
			fn()
		default:
			return
		}
	}
}

// processCommands takes at most one line from each connection. Wait
// states hold a character back for a number of pulses.
func (g *Game) processCommands() {
	w := g.world
	for _, id := range slices.Clone(w.DescList) {
		d, ok := w.Descs.Lookup(id)
		if !ok || d.Closing {
			continue
		}
		if c, ok := w.Chars.Lookup(d.Character); ok && d.Playing() {
			if c.Wait > 0 {
				c.Wait--
			}
			if c.Wait > 0 {
				continue
			}
		}
		line, ok := d.Dequeue()
		if !ok {
			continue
		}
		if c, ok := w.Chars.Lookup(d.Character); ok {
			c.Timer = 0
			if d.Playing() {
				g.returnFromVoid(d.Character)
				w.Ch(d.Character).Wait = 1
			}
		}
		d = w.Desc(id)
		d.HasPrompt = false

		switch {
		case d.Edit != nil:
			g.stringAdd(id, line.Text)
		case d.Pager != nil:
			comm.ShowString(d, line.Text)
		case !d.Playing():
			g.nanny(id, line.Text)
		default:
			text := line.Text
			if line.Aliased {
				d.HasPrompt = true
			} else if c, ok := w.Chars.Lookup(d.Character); ok && c.Player != nil {
				lines, queued := c.Player.Aliases.Expand(text)
				if queued {
					d.QueueFront(lines, true)
					next, _ := d.Dequeue()
					text = next.Text
				} else {
					text = lines[0]
				}
			}
			g.commandInterpreter(d.Character, text)
		}
	}
}

// returnFromVoid brings an idle player back from the void.
func (g *Game) returnFromVoid(ch world.CharID) {
	w := g.world
	c := w.Ch(ch)
	if c.WasInRoom == world.Nowhere {
		return
	}
	back := c.WasInRoom
	c.WasInRoom = world.Nowhere
	if c.InRoom != world.Nowhere {
		w.CharFromRoom(ch)
	}
	w.CharToRoom(ch, back)
	comm.Act(w, "$n has returned.", true, ch, world.ObjID{}, nil, comm.ToRoom)
}

// heartbeat runs the periodic work due on pulse.
func (g *Game) heartbeat(pulse int) {
	pps := g.pps
	if pulse%(secsZone*pps) == 0 {
		g.zoneUpdate()
	}
	if pulse%(secsIdlePwd*pps) == 0 {
		g.checkIdlePasswords()
	}
	if pulse%(secsMobile*pps) == 0 {
		g.mobileActivity()
	}
	if pulse%(secsPerMudHour*pps) == 0 {
		g.weatherAndTime(true)
		g.affectUpdate()
		g.pointUpdate()
	}
	if g.cfg.AutosaveMinutes > 0 && pulse%(secsAutosave*pps) == 0 {
		g.minsSinceSave++
		if g.minsSinceSave >= g.cfg.AutosaveMinutes {
			g.minsSinceSave = 0
			g.saveAll()
		}
	}
	if pulse%(secsUsage*pps) == 0 {
		g.recordUsage()
	}
	g.extractPending()
}

func (g *Game) recordUsage() {
	playing := len(g.world.Playing())
	g.logger.Info("nusage",
		zap.Int("sockets_connected", len(g.world.DescList)),
		zap.Int("sockets_playing", playing),
	)
}

// drainer is a transport that keeps writing queued output after Close and
// reports when it is done.
type drainer interface {
	Done() <-chan struct{}
}

// shutdownDrainWait bounds how long finish waits for the last messages to
// leave.
const shutdownDrainWait = 5 * time.Second

// finish saves everyone and closes every connection, then waits a bounded
// time for the shutdown notice to reach the clients.
func (g *Game) finish() {
	w := g.world
	g.logger.Info("shutting down", zap.String("reason", g.shutdownReason))
	g.runTasks()
	g.saveAll()
	var draining []drainer
	for _, id := range slices.Clone(w.DescList) {
		d := w.Desc(id)
		if dr, ok := d.Conn.(drainer); ok {
			draining = append(draining, dr)
		}
		d.Write(shutdownMessage)
		g.flush(id)
		g.closeSocket(id)
	}
	g.extractPending()

	timeout := time.After(shutdownDrainWait)
	for _, dr := range draining {
		select {
		case <-dr.Done():
		case <-timeout:
			g.logger.Warn("shutdown: output still pending on close", zap.Int("connections", len(draining)))
			return
		}
	}
}

func (g *Game) updateMetrics(elapsed time.Duration) {
	if g.metrics == nil {
		return
	}
	w := g.world
	g.metrics.TickDuration.Observe(elapsed.Seconds())
	g.metrics.Descriptors.Set(float64(len(w.DescList)))
	g.metrics.Playing.Set(float64(len(w.Playing())))
	g.metrics.Characters.Set(float64(len(w.CharList)))
	g.metrics.Objects.Set(float64(w.Objs.Len()))
}
