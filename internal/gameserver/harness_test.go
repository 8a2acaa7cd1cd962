package gameserver

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/game/dice"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage/bolt"
	"github.com/cory-johannsen/circlemud/internal/testutil"
	"github.com/cory-johannsen/circlemud/internal/textfiles"
)

const testSocials = `
socials:
  - name: smile
    char_no_arg: You smile happily.
    others_no_arg: $n smiles happily.
    char_found: You smile at $M.
    others_found: $n beams a smile at $N.
    vict_found: $n smiles at you.
    not_found: There's no one by that name around.
    char_auto: You smile at yourself.
    others_auto: $n smiles at $mself.
  - name: pray
    min_position: Sitting
    char_no_arg: You feel righteous, and maybe a little foolish.
    others_no_arg: $n begs and grovels to the powers that be.
`

// harness is a game running on the test town with a bolt store, driven a
// pulse at a time.
type harness struct {
	t     *testing.T
	g     *Game
	store *bolt.Store
	now   time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zaptest.NewLogger(t)

	cfg, err := config.LoadFromViper(config.Defaults())
	require.NoError(t, err)
	cfg.Server.Name = "TestMUD"
	cfg.Server.MaxPlayers = 10
	cfg.Game.MortalStartRoom = 3001
	cfg.Game.ImmortalStartRoom = 3001
	cfg.Game.FrozenStartRoom = 3098
	cfg.Game.VoidRoom = 3098
	cfg.Game.PulseInterval = 100 * time.Millisecond

	zf, err := world.LoadZoneFromFile("testdata/town.yaml")
	require.NoError(t, err)
	w := world.New(dice.NewRoller(dice.NewSeededSource(7), nil), logger)
	require.NoError(t, w.Build([]*world.ZoneFile{zf}))

	store, err := bolt.Open(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	socials, err := ParseSocials([]byte(testSocials))
	require.NoError(t, err)

	texts := textfiles.FromStrings("TestMUD", map[string]string{
		textfiles.Greetings:  "Welcome to {{ .MudName }}!\r\nBy what name do you wish to be known? ",
		textfiles.Motd:       "Message of the day.\r\n",
		textfiles.Imotd:      "Immortal message of the day.\r\n",
		textfiles.News:       "No news.\r\n",
		textfiles.Credits:    "Credits.\r\n",
		textfiles.Background: "Long ago.\r\n",
		textfiles.Xnames:     "badword\r\n",
	})

	g := NewGame(Deps{
		Config: cfg,
		World:  w,
		Stores: Stores{
			Players: store,
			Rent:    store,
			Boards:  store,
			Mail:    store,
			Bans:    store,
			Aliases: store,
		},
		Texts:   texts,
		Socials: socials,
		Logger:  logger,
	})
	h := &harness{t: t, g: g, store: store, now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	g.now = func() time.Time { return h.now }
	g.Boot()
	return h
}

// connect opens a connection and runs the pulse that admits it.
func (h *harness) connect(addr string) *testutil.Transport {
	tr := testutil.NewTransport(addr)
	h.g.Accept(tr)
	h.g.Tick(1)
	return tr
}

// do sends one line, runs enough pulses for it to be handled and returns
// the output it produced.
func (h *harness) do(tr *testutil.Transport, line string) string {
	tr.Drain()
	tr.Send(line)
	h.g.Tick(1)
	h.g.Tick(1)
	return tr.Drain()
}

// create makes a new character and enters the game. The first character
// created on a harness is the implementor.
func (h *harness) create(name, password string) *testutil.Transport {
	h.t.Helper()
	tr := h.connect("10.0.0.1:5000")
	for _, line := range []string{name, "y", password, password, "m", "w", "", "1"} {
		h.do(tr, line)
	}
	require.True(h.t, h.playing(name), "%s should be playing", name)
	return tr
}

// login enters the game as an existing character.
func (h *harness) login(name, password string) *testutil.Transport {
	h.t.Helper()
	tr := h.connect("10.0.0.2:5000")
	for _, line := range []string{name, password, "", "1"} {
		h.do(tr, line)
	}
	return tr
}

// char finds a player character by name.
func (h *harness) char(name string) world.CharID {
	h.t.Helper()
	w := h.g.world
	for _, ch := range w.CharList {
		if c, ok := w.Chars.Lookup(ch); ok && !c.IsNPC() && strings.EqualFold(c.Name, name) {
			return ch
		}
	}
	h.t.Fatalf("no character named %s", name)
	return world.CharID{}
}

func (h *harness) playing(name string) bool {
	w := h.g.world
	for _, id := range w.Playing() {
		if c, ok := w.Chars.Lookup(w.Desc(id).Character); ok && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// roomOf returns the vnum of the room ch stands in.
func (h *harness) roomOf(ch world.CharID) world.Vnum {
	w := h.g.world
	return w.RoomVnum(w.Ch(ch).InRoom)
}

// moveTo puts ch in the room with vnum v.
func (h *harness) moveTo(ch world.CharID, v world.Vnum) {
	w := h.g.world
	w.CharFromRoom(ch)
	w.CharToRoom(ch, w.RealRoom(v))
}

// give loads an object from its prototype into ch's inventory.
func (h *harness) give(ch world.CharID, v world.Vnum) world.ObjID {
	h.t.Helper()
	w := h.g.world
	rnum := w.RealObject(v)
	require.GreaterOrEqual(h.t, rnum, 0, "no object %d", v)
	o := w.ReadObject(rnum)
	w.ObjToChar(o, ch)
	return o
}

// pair creates an implementor and a mortal standing in the temple.
func (h *harness) pair() (imm, mort *testutil.Transport) {
	imm = h.create("Zara", "secret")
	mort = h.create("Bob", "hunter2")
	imm.Drain()
	return imm, mort
}
