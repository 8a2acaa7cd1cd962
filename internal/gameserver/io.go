package gameserver

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/comm"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
	"github.com/cory-johannsen/circlemud/internal/textfiles"
)

const (
	msgSiteBanned = "Sorry, this site is banned.\r\n"
	msgGameFull   = "Sorry, CircleMUD is full right now... please try again later!\r\n"
	msgTimedOut   = "\r\nTimed out... goodbye.\r\n"
)

// acceptNew turns every waiting transport into a descriptor.
func (g *Game) acceptNew() {
	for {
		select {
		case t := <-g.accept:
			g.newDescriptor(t)
		default:
			return
		}
	}
}

// newDescriptor admits a connection at the name prompt, or refuses it
// for a site ban or a full game.
func (g *Game) newDescriptor(t world.Transport) {
	w := g.world
	host := hostOf(t.RemoteAddr())
	if g.metrics != nil {
		g.metrics.Connections.WithLabelValues(t.Kind()).Inc()
	}

	refuse := func(msg string) {
		_, _ = t.Write([]byte(msg))
		_ = t.Close()
	}
	if g.isBanned(host) == storage.BanAll {
		refuse(msgSiteBanned)
		g.mudlog(logCmp, world.LvlGod, fmt.Sprintf("Connection attempt denied from [%s]", host))
		return
	}
	if len(w.DescList) >= g.server.MaxPlayers {
		refuse(msgGameFull)
		return
	}

	d := world.NewDescriptor(t, g.now())
	d.Host = host
	id := w.AddDescriptor(d)
	g.logger.Info("new connection",
		zap.String("host", host),
		zap.String("transport", t.Kind()),
		zap.String("session", d.ID.String()),
	)
	w.Desc(id).Write(g.texts.Get(textfiles.Greetings, len(w.Playing())))
}

// hostOf strips the port from a remote address.
func hostOf(addr string) string {
	if i := strings.LastIndexByte(addr, ':'); i > 0 && !strings.HasSuffix(addr, "]") {
		return strings.Trim(addr[:i], "[]")
	}
	return addr
}

// processInput reads what each connection has sent and queues whole
// lines, applying history recall and substitution.
func (g *Game) processInput() {
	w := g.world
	for _, id := range slices.Clone(w.DescList) {
		d := w.Desc(id)
		if d.Closing {
			continue
		}
	read:
		for {
			select {
			case chunk, ok := <-d.Conn.Incoming():
				if !ok {
					d.Closing = true
					break read
				}
				d.Raw = append(d.Raw, chunk...)
			default:
				break read
			}
		}

		for {
			raw, rest, ok := command.NextLine(d.Raw)
			if !ok {
				break
			}
			d.Raw = rest
			g.queueLine(id, raw)
			d = w.Desc(id)
		}
		if len(d.Raw) >= command.MaxRawInputLength {
			g.logger.Warn("process_input: about to close connection: input overflow",
				zap.String("host", d.Host),
			)
			d.Raw = nil
			d.Closing = true
		}
	}
}

func (g *Game) queueLine(id world.DescID, raw []byte) {
	w := g.world
	d := w.Desc(id)
	line, truncated := command.EditLine(raw)
	if truncated {
		d.Write(fmt.Sprintf("Line too long.  Truncated to:\r\n%s\r\n", line))
	}
	if snooper, ok := w.Descs.Lookup(d.SnoopBy); ok {
		snooper.Write("% " + line + "\r\n")
	}

	switch {
	case line == "!":
		line = d.LastInput
	case strings.HasPrefix(line, "!"):
		found, ok := d.History.Find(line[1:])
		if !ok {
			d.Write("No such command in history.\r\n")
			return
		}
		line = found
		d.LastInput = line
		d.Write(line + "\r\n")
	case strings.HasPrefix(line, "^"):
		subst, ok := command.Substitute(d.LastInput, line)
		if !ok {
			d.Write("Invalid substitution.\r\n")
			return
		}
		line = subst
		d.LastInput = line
	default:
		d.LastInput = line
		d.History.Add(line)
	}
	d.Queue(line, false)
}

// processOutput sends buffered output with a fresh prompt, then prompts
// every connection that is not showing one.
func (g *Game) processOutput() {
	w := g.world
	for _, id := range slices.Clone(w.DescList) {
		d := w.Desc(id)
		if d.Closing {
			continue
		}
		if len(d.Unsent) > 0 {
			g.send(id)
			continue
		}
		if len(d.Output) > 0 {
			g.composeOutput(id)
			g.send(id)
			continue
		}
		if !d.HasPrompt {
			d.Unsent = append(d.Unsent, g.makePrompt(id)...)
			d.HasPrompt = true
			g.send(id)
		}
	}
}

// composeOutput moves the output buffer, framing and prompt into Unsent.
// A prompt already on screen is interrupted with a fresh line.
func (g *Game) composeOutput(id world.DescID) {
	w := g.world
	d := w.Desc(id)
	var b strings.Builder
	if d.HasPrompt {
		b.WriteString("\r\n")
	}
	b.Write(d.Output)
	if d.Playing() {
		if c, ok := w.Chars.Lookup(d.Character); ok && !c.IsNPC() && !c.PrefFlags.Has(world.PrfCompact) {
			b.WriteString("\r\n")
		}
	}
	b.WriteString(g.makePrompt(id))

	if snooper, ok := w.Descs.Lookup(d.SnoopBy); ok {
		snooper.Write("% " + string(d.Output) + "%%")
	}
	if d.Overflow && g.metrics != nil {
		g.metrics.Overflows.Inc()
	}

	d.Unsent = append(d.Unsent, b.String()...)
	d.Output = d.Output[:0]
	d.Overflow = false
	d.HasPrompt = true
}

// send writes as much of Unsent as the transport takes, at most one
// socket buffer per pulse. A failed write closes the connection.
func (g *Game) send(id world.DescID) {
	d := g.world.Desc(id)
	chunk := d.Unsent[:min(len(d.Unsent), world.MaxSockBuf)]
	n, err := d.Conn.Write(chunk)
	if err != nil {
		g.logger.Debug("write to descriptor failed", zap.String("host", d.Host), zap.Error(err))
		d.Closing = true
		return
	}
	d.Unsent = d.Unsent[n:]
	if len(d.Unsent) == 0 {
		d.Unsent = nil
	}
}

// flush pushes everything queued for id, used before a forced close.
func (g *Game) flush(id world.DescID) {
	d := g.world.Desc(id)
	if len(d.Output) > 0 {
		g.composeOutput(id)
	}
	if len(d.Unsent) > 0 {
		g.send(id)
	}
}

// makePrompt builds the prompt for the descriptor's current mode.
func (g *Game) makePrompt(id world.DescID) string {
	w := g.world
	d := w.Desc(id)
	switch {
	case d.Edit != nil:
		return "] "
	case d.Pager != nil:
		return comm.PagerPrompt(d)
	case !d.Playing():
		return ""
	}
	c, ok := w.Chars.Lookup(d.Character)
	if !ok {
		return ""
	}
	if c.IsNPC() {
		return c.ShortDescr + "s>"
	}

	var b strings.Builder
	if inv := c.InvisLevel(); inv > 0 {
		fmt.Fprintf(&b, "i%d ", inv)
	}
	if c.PrefFlags.Has(world.PrfDispHP) {
		fmt.Fprintf(&b, "%dH ", c.Points.Hit)
	}
	if c.PrefFlags.Has(world.PrfDispMana) {
		fmt.Fprintf(&b, "%dM ", c.Points.Mana)
	}
	if c.PrefFlags.Has(world.PrfDispMove) {
		fmt.Fprintf(&b, "%dV ", c.Points.Move)
	}
	b.WriteString("> ")
	return b.String()
}

// closeRequested closes every connection that asked to go away.
func (g *Game) closeRequested() {
	w := g.world
	for _, id := range slices.Clone(w.DescList) {
		d := w.Desc(id)
		if d.Closing || d.State == world.ConClose || d.State == world.ConDisconnect {
			g.flush(id)
			g.closeSocket(id)
		}
	}
}

// closeSocket tears down a connection: snoop links, the character's
// link and the descriptor itself. A player in the game stays behind
// linkless.
func (g *Game) closeSocket(id world.DescID) {
	w := g.world
	d := w.Desc(id)
	_ = d.Conn.Close()

	if target, ok := w.Descs.Lookup(d.Snooping); ok {
		target.SnoopBy = world.DescID{}
	}
	if snooper, ok := w.Descs.Lookup(d.SnoopBy); ok {
		snooper.Write("Your victim is no longer among us.\r\n")
		snooper.Snooping = world.DescID{}
	}

	if c, ok := w.Chars.Lookup(d.Character); ok {
		c.Desc = world.DescID{}
		if d.State == world.ConPlaying || d.State == world.ConDisconnect {
			linkless := d.Character
			if !d.Original.IsZero() && w.Chars.Valid(d.Original) {
				linkless = d.Original
			}
			if !w.PendingExtraction(linkless) && w.Ch(linkless).InRoom != world.Nowhere {
				comm.Act(w, "$n has lost $s link.", true, linkless, world.ObjID{}, nil, comm.ToRoom)
				g.saveChar(linkless)
			}
			lc := w.Ch(linkless)
			g.mudlog(logNrm, max(world.LvlImmort, lc.InvisLevel()), fmt.Sprintf("Closing link to: %s.", lc.Name))
		} else {
			g.mudlog(logCmp, world.LvlImmort, fmt.Sprintf("Losing player: %s.", nameOrNull(c.Name)))
			w.FreeChar(d.Character)
		}
	} else {
		g.mudlog(logCmp, world.LvlImmort, "Losing descriptor without char.")
	}
	if oc, ok := w.Chars.Lookup(d.Original); ok && oc.Desc == id {
		oc.Desc = world.DescID{}
	}
	w.RemoveDescriptor(id)
}

func nameOrNull(name string) string {
	if name == "" {
		return "<null>"
	}
	return name
}

// checkIdlePasswords drops connections that sit at the name or password
// prompt through two checks.
func (g *Game) checkIdlePasswords() {
	w := g.world
	for _, id := range w.DescList {
		d := w.Desc(id)
		if d.State != world.ConPassword && d.State != world.ConGetName {
			continue
		}
		if d.IdleTics == 0 {
			d.IdleTics++
			continue
		}
		d.WriteBytes(d.Conn.EchoOn())
		d.Write(msgTimedOut)
		d.State = world.ConClose
	}
}

// isBanned returns the strictest ban matching host.
func (g *Game) isBanned(host string) storage.BanType {
	host = strings.ToLower(host)
	worst := storage.BanNot
	for _, b := range g.bans {
		if strings.Contains(host, b.Site) && b.Type > worst {
			worst = b.Type
		}
	}
	return worst
}

// Mudlog types, matching the log preference levels.
const (
	logOff = iota
	logBrf
	logNrm
	logCmp
)

// mudlog writes msg to the server log and to immortals whose log
// preference is at least typ.
func (g *Game) mudlog(typ, level int, msg string) {
	g.logger.Info(msg)
	if typ == logOff {
		return
	}
	w := g.world
	for _, id := range w.Playing() {
		d := w.Desc(id)
		c, ok := w.Chars.Lookup(d.Character)
		if !ok || c.IsNPC() || c.Level < level || c.PlrFlags.Has(world.PlrWriting) {
			continue
		}
		pref := 0
		if c.PrefFlags.Has(world.PrfLog1) {
			pref++
		}
		if c.PrefFlags.Has(world.PrfLog2) {
			pref += 2
		}
		if pref < typ {
			continue
		}
		d.Write("[ " + msg + " ]\r\n")
	}
}
