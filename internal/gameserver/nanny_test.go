package gameserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/storage"
)

func TestConnect_ShowsGreeting(t *testing.T) {
	h := newHarness(t)
	tr := h.connect("10.0.0.1:5000")
	h.g.Tick(1)
	assert.Contains(t, tr.Output(), "Welcome to TestMUD!")
}

func TestCreate_FirstPlayerIsImplementor(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")

	c := h.g.world.Ch(h.char("Zara"))
	assert.Equal(t, world.LvlImpl, c.Level)
	assert.Equal(t, world.Vnum(3001), h.roomOf(h.char("Zara")))

	rec, err := h.store.Load(context.Background(), "zara")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, world.LvlImpl, rec.Level)
}

func TestCreate_LaterPlayersStartAtLevelOne(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")
	tr := h.create("Bob", "hunter2")

	c := h.g.world.Ch(h.char("Bob"))
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, world.ClassWarrior, c.Class)
	assert.Contains(t, tr.Output(), "The Temple")
}

func TestGetName_RejectsBadNames(t *testing.T) {
	h := newHarness(t)
	tr := h.connect("10.0.0.1:5000")
	for _, name := range []string{"badwordy", "all", "x", "Bo-b"} {
		assert.Contains(t, h.do(tr, name), "Invalid name, please try another.", name)
	}
}

func TestNameConfirm_NoAsksAgain(t *testing.T) {
	h := newHarness(t)
	tr := h.connect("10.0.0.1:5000")
	assert.Contains(t, h.do(tr, "Zara"), "Did I get that right, Zara (Y/N)?")
	assert.Contains(t, h.do(tr, "n"), "Okay, what IS it, then?")
	assert.Contains(t, h.do(tr, "Bob"), "Did I get that right, Bob (Y/N)?")
}

func TestNewPassword_RejectsIllegal(t *testing.T) {
	h := newHarness(t)
	tr := h.connect("10.0.0.1:5000")
	h.do(tr, "Zara")
	out := h.do(tr, "y")
	assert.Contains(t, out, "Give me a password for Zara")
	assert.Contains(t, out, "<echo off>")

	assert.Contains(t, h.do(tr, "ab"), "Illegal password.")
	assert.Contains(t, h.do(tr, "zara"), "Illegal password.")
	assert.Contains(t, h.do(tr, "waytoolongpassword"), "Illegal password.")
	assert.Contains(t, h.do(tr, "secret"), "Please retype password")
	assert.Contains(t, h.do(tr, "other"), "Passwords don't match... start over.")
}

func TestLogin_WrongPasswordThenDisconnect(t *testing.T) {
	h := newHarness(t)
	tr := h.create("Zara", "secret")
	h.do(tr, "quit")
	h.do(tr, "0")

	tr2 := h.connect("10.0.0.2:5000")
	assert.Contains(t, h.do(tr2, "Zara"), "Password:")
	assert.Contains(t, h.do(tr2, "wrong"), "Wrong password.")
	assert.Contains(t, h.do(tr2, "wrong"), "Wrong password.")
	assert.Contains(t, h.do(tr2, "wrong"), "Wrong password... disconnecting.")
	assert.True(t, tr2.Closed())

	tr3 := h.connect("10.0.0.3:5000")
	h.do(tr3, "Zara")
	out := h.do(tr3, "secret")
	assert.Contains(t, out, "3 LOGIN FAILURES SINCE LAST SUCCESSFUL LOGIN.")
	assert.Contains(t, out, "Immortal message of the day.")
}

func TestQuit_ReturnsToMenuAndLogsBackIn(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")
	tr := h.create("Bob", "hunter2")

	out := h.do(tr, "quit")
	assert.Contains(t, out, "Goodbye, friend.. Come back soon!")
	assert.Contains(t, out, "Make your choice:")
	assert.False(t, h.playing("Bob"))

	assert.Contains(t, h.do(tr, "0"), "Goodbye.")
	assert.True(t, tr.Closed())

	tr2 := h.login("Bob", "hunter2")
	assert.True(t, h.playing("Bob"))
	assert.Contains(t, tr2.Output(), "The Temple")
}

func TestQui_RequiresFullWordForMortals(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")
	tr := h.create("Bob", "hunter2")
	assert.Contains(t, h.do(tr, "qui"), "You have to type quit--no less, to quit!")
	assert.True(t, h.playing("Bob"))
}

func TestLinkdeadPlayerReconnects(t *testing.T) {
	h := newHarness(t)
	watcher := h.create("Zara", "secret")
	tr := h.create("Bob", "hunter2")
	bob := h.char("Bob")

	watcher.Drain()
	tr.Hangup()
	h.g.Tick(1)
	h.g.Tick(1)
	assert.Contains(t, watcher.Drain(), "Bob has lost his link.")
	assert.True(t, h.g.world.Ch(bob).Desc.IsZero())

	tr2 := h.connect("10.0.0.2:5000")
	h.do(tr2, "Bob")
	assert.Contains(t, h.do(tr2, "hunter2"), "Reconnecting.")
	assert.Equal(t, bob, h.char("Bob"))
	assert.Contains(t, watcher.Drain(), "Bob has reconnected.")
}

func TestSecondLoginUsurpsBody(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")
	first := h.create("Bob", "hunter2")
	bob := h.char("Bob")

	second := h.connect("10.0.0.2:5000")
	h.do(second, "Bob")
	assert.Contains(t, h.do(second, "hunter2"), "You take over your own body, already in use!")
	assert.Contains(t, first.Output(), "This body has been usurped!")
	assert.True(t, first.Closed())
	assert.Equal(t, bob, h.char("Bob"))
}

func TestGetName_RefusesNameAnotherLoginHolds(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")
	h.create("Bob", "hunter2")

	second := h.connect("10.0.0.2:5000")
	assert.Contains(t, h.do(second, "Bob"), "Password: ")

	// The player in the game comes first in the list; the login still
	// waiting on its password is what makes the name unavailable.
	third := h.connect("10.0.0.3:5000")
	assert.Contains(t, h.do(third, "bob"), "Invalid name, please try another.")
	assert.Contains(t, h.do(third, "Zara"), "Password: ")
}

func TestGameFullRefusesConnection(t *testing.T) {
	h := newHarness(t)
	h.g.server.MaxPlayers = 1
	h.connect("10.0.0.1:5000")
	tr := h.connect("10.0.0.2:5000")
	assert.Contains(t, tr.Output(), "Sorry, CircleMUD is full right now")
	assert.True(t, tr.Closed())
}

func TestBannedSites(t *testing.T) {
	h := newHarness(t)
	h.g.bans = []storage.Ban{
		{Site: "evil.example", Type: storage.BanAll},
		{Site: "10.9.", Type: storage.BanNew},
	}

	tr := h.connect("shell.evil.example:4000")
	assert.Contains(t, tr.Output(), "Sorry, this site is banned.")
	assert.True(t, tr.Closed())

	tr = h.connect("10.9.0.1:4000")
	h.do(tr, "Zara")
	assert.Contains(t, h.do(tr, "y"), "Sorry, new characters are not allowed from your site!")
	assert.True(t, tr.Closed())
}

func TestWizlockBlocksNewCharacters(t *testing.T) {
	h := newHarness(t)
	h.g.restrict = 1
	tr := h.connect("10.0.0.1:5000")
	h.do(tr, "Zara")
	assert.Contains(t, h.do(tr, "y"), "Sorry, new players can't be created at the moment.")
}

func TestMenu_DeleteCharacter(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")
	tr := h.create("Bob", "hunter2")
	h.do(tr, "quit")

	assert.Contains(t, h.do(tr, "5"), "Enter your password for verification:")
	assert.Contains(t, h.do(tr, "hunter2"), "ARE YOU ABSOLUTELY SURE?")
	assert.Contains(t, h.do(tr, "yes"), "Character 'Bob' deleted!")

	rec, err := h.store.Load(context.Background(), "bob")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Deleted())
}

func TestMenu_ChangePassword(t *testing.T) {
	h := newHarness(t)
	h.create("Zara", "secret")
	tr := h.create("Bob", "hunter2")
	h.do(tr, "quit")

	assert.Contains(t, h.do(tr, "4"), "Enter your old password:")
	assert.Contains(t, h.do(tr, "hunter2"), "Enter a new password:")
	h.do(tr, "swordfish")
	assert.Contains(t, h.do(tr, "swordfish"), "Done.")
	h.do(tr, "0")

	h.login("Bob", "swordfish")
	assert.True(t, h.playing("Bob"))
}

func TestMenu_BadChoice(t *testing.T) {
	h := newHarness(t)
	tr := h.create("Zara", "secret")
	h.do(tr, "quit")
	assert.Contains(t, h.do(tr, "9"), "That's not a menu choice!")
}
