package gameserver

import (
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/circlemud/internal/frontend/telnet"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

func TestInput_HistoryAndSubstitution(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()

	assert.Contains(t, h.do(mort, "say hello there"), "You say, 'hello there'")
	assert.Contains(t, h.do(mort, "!"), "You say, 'hello there'")
	assert.Contains(t, h.do(mort, "^hello^goodbye"), "You say, 'goodbye there'")
	assert.Contains(t, h.do(mort, "^nothing^else"), "Invalid substitution.")

	h.do(mort, "look")
	out := h.do(mort, "!sa")
	assert.Contains(t, out, "say hello there\r\n")
	assert.Contains(t, out, "You say, 'hello there'")
	assert.Contains(t, h.do(mort, "!xyzzy"), "No such command in history.")
}

func TestInput_LongLinesAreTruncated(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()

	out := h.do(mort, "say "+strings.Repeat("a", 300))
	assert.Contains(t, out, "Line too long.  Truncated to:\r\n")
	assert.NotContains(t, out, strings.Repeat("a", 256))
}

func TestInput_OverflowWithoutNewlineCloses(t *testing.T) {
	h := newHarness(t)
	tr := h.connect("10.0.0.5:4000")
	require.Len(t, h.g.world.DescList, 1)

	tr.SendRaw([]byte(strings.Repeat("x", 600)))
	h.g.Tick(1)
	assert.True(t, tr.Closed())
	assert.Empty(t, h.g.world.DescList)
}

func TestOutput_PartialWritesStayBuffered(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	mort.Limit = 16

	first := h.do(mort, "look")
	assert.Len(t, first, 32)

	all := first
	for range 200 {
		h.g.Tick(1)
		all += mort.Drain()
	}
	assert.Contains(t, all, "The Temple")
	assert.True(t, strings.HasSuffix(all, "> "), "prompt comes last: %q", all)
}

func TestOutput_FailedWriteDropsTheLink(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	_ = mort.Close()

	assert.Contains(t, h.do(imm, "say anyone?"), "Bob has lost his link.")
	assert.Len(t, h.g.world.DescList, 1)
	assert.True(t, h.playing("Zara"))
}

func TestPrompt_ShowsSelectedPoints(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	c := h.g.world.Ch(h.char("Bob"))

	out := h.do(mort, "display hv")
	assert.Contains(t, out, "Ok.")
	assert.True(t, strings.HasSuffix(out, fmt.Sprintf("%dH %dV > ", c.Points.Hit, c.Points.Move)), out)

	out = h.do(mort, "display none")
	assert.True(t, strings.HasSuffix(out, "\r\n> "), out)
}

func TestPager_StepsThroughPages(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()

	var b strings.Builder
	for i := 1; i <= 50; i++ {
		fmt.Fprintf(&b, "line %02d\r\n", i)
	}
	h.g.page(h.char("Bob"), b.String())
	h.g.Tick(1)
	out := mort.Drain()
	assert.Contains(t, out, "line 22")
	assert.NotContains(t, out, "line 23")
	assert.Contains(t, out, "(1/3) ]")

	out = h.do(mort, "")
	assert.Contains(t, out, "line 23")
	assert.Contains(t, out, "(2/3) ]")

	assert.Contains(t, h.do(mort, "x"),
		"Valid commands while paging are RETURN, Q, R, B, or a numeric value.")
	assert.Contains(t, h.do(mort, "r"), "line 23")
	assert.Contains(t, h.do(mort, "1"), "line 01")

	h.do(mort, "q")
	assert.Nil(t, h.g.world.Desc(h.g.world.Ch(h.char("Bob")).Desc).Pager)
	assert.Contains(t, h.do(mort, "look"), "The Temple")
}

// telnetClient connects a real telnet transport to the game over loopback
// and returns the client end.
func (h *harness) telnetClient() net.Conn {
	h.t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(h.t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
		close(accepted)
	}()
	client, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(h.t, err)
	h.t.Cleanup(func() { _ = client.Close() })
	server, ok := <-accepted
	require.True(h.t, ok)

	h.g.Accept(telnet.NewConn(server, time.Second, 16))
	h.g.Tick(1)
	return client
}

func readAll(t *testing.T, c net.Conn) string {
	t.Helper()
	_ = c.SetReadDeadline(time.Now().Add(5 * time.Second))
	b, err := io.ReadAll(c)
	require.NoError(t, err)
	return string(b)
}

func TestRefusals_ReachARealSocketBeforeHangup(t *testing.T) {
	h := newHarness(t)
	h.g.bans = []storage.Ban{{Site: "127.0.0.1", Type: storage.BanAll}}
	assert.Equal(t, "Sorry, this site is banned.\r\n", readAll(t, h.telnetClient()))

	h.g.bans = nil
	h.g.server.MaxPlayers = 0
	assert.Equal(t, "Sorry, CircleMUD is full right now... please try again later!\r\n",
		readAll(t, h.telnetClient()))
}

// telnetDesc finds the descriptor of the real telnet connection.
func (h *harness) telnetDesc() (*world.Descriptor, bool) {
	w := h.g.world
	for _, id := range w.DescList {
		if d := w.Desc(id); d.Conn.Kind() == "telnet" {
			return d, true
		}
	}
	return nil, false
}

func TestWrongPasswords_DisconnectMessageReachesTheClient(t *testing.T) {
	h := newHarness(t)
	h.pair()
	client := h.telnetClient()

	send := func(line string, handled func(d *world.Descriptor, ok bool) bool) {
		t.Helper()
		_, err := client.Write([]byte(line + "\r\n"))
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			h.g.Tick(1)
			return handled(h.telnetDesc())
		}, 5*time.Second, 5*time.Millisecond)
	}
	send("Bob", func(d *world.Descriptor, ok bool) bool { return ok && d.State == world.ConPassword })
	send("nope", func(d *world.Descriptor, ok bool) bool { return ok && d.BadPws == 1 })
	send("nope", func(d *world.Descriptor, ok bool) bool { return ok && d.BadPws == 2 })
	send("nope", func(_ *world.Descriptor, ok bool) bool { return !ok })

	assert.Contains(t, readAll(t, client), "Wrong password... disconnecting.\r\n")
}
