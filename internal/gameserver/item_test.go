package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func TestGetAndDrop(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()

	assert.Contains(t, h.do(imm, "get bread"), "You get a loaf of bread.")
	assert.Contains(t, mort.Drain(), "Zara gets a loaf of bread.")
	assert.Contains(t, h.do(imm, "get bread"), "You don't see a bread here.")

	inv := h.do(imm, "inventory")
	assert.Contains(t, inv, "You are carrying:")
	assert.Contains(t, inv, "a loaf of bread")

	assert.Contains(t, h.do(imm, "drop bread"), "You drop a loaf of bread.")
	assert.Contains(t, mort.Drain(), "Zara drops a loaf of bread.")
	assert.Contains(t, h.do(imm, "drop"), "What do you want to drop?")
}

func TestGetAll(t *testing.T) {
	h := newHarness(t)
	imm, _ := h.pair()
	zara := h.char("Zara")

	h.do(imm, "get all")
	assert.Len(t, h.g.world.Ch(zara).Carrying, 3)
	assert.Contains(t, h.do(imm, "get all"), "There doesn't seem to be anything here.")
	assert.Contains(t, h.do(imm, "get all.sword"), "You don't see any swords here.")
}

func TestPutAndGetFromContainer(t *testing.T) {
	h := newHarness(t)
	imm, _ := h.pair()

	h.do(imm, "get bag")
	h.do(imm, "get bread")
	assert.Contains(t, h.do(imm, "put bread in bag"), "You put a loaf of bread in a small bag.")
	assert.Contains(t, h.do(imm, "put bag bag"), "You attempt to fold it into itself, but fail.")
	assert.Contains(t, h.do(imm, "put sword bag"), "You aren't carrying a sword.")
	assert.Contains(t, h.do(imm, "look in bag"), "a loaf of bread")
	assert.Contains(t, h.do(imm, "get bread bag"), "You get a loaf of bread from a small bag.")
	assert.Contains(t, h.do(imm, "get bread bag"), "There doesn't seem to be a bread in a small bag.")
}

func TestWieldAndRemove(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	zara := h.char("Zara")

	h.do(imm, "get sword")
	assert.Contains(t, h.do(imm, "wield bread"), "You don't seem to have a bread.")
	assert.Contains(t, h.do(imm, "wield sword"), "You wield a long sword.")
	assert.Contains(t, mort.Drain(), "Zara wields a long sword.")
	assert.False(t, h.g.world.Ch(zara).Equipment[world.WearWield].IsZero())

	eq := h.do(imm, "equipment")
	assert.Contains(t, eq, "You are using:")
	assert.Contains(t, eq, "a long sword")

	assert.Contains(t, h.do(imm, "remove sword"), "You stop using a long sword.")
	assert.True(t, h.g.world.Ch(zara).Equipment[world.WearWield].IsZero())
	assert.Contains(t, h.do(imm, "remove all"), "You're not using anything.")
}

func TestWield_TooHeavy(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	bob := h.char("Bob")
	h.g.world.Ch(bob).Abilities.Str = 3
	h.give(bob, 3012)
	assert.Contains(t, h.do(mort, "wield sword"), "It's too heavy for you to use.")
}

func TestWear_WrongPlace(t *testing.T) {
	h := newHarness(t)
	imm, _ := h.pair()
	h.do(imm, "get bread")
	assert.Contains(t, h.do(imm, "wear bread"), "You can't wear a loaf of bread.")
	assert.Contains(t, h.do(imm, "wear"), "Wear what?")
}

func TestGive(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	bob := h.char("Bob")

	h.do(imm, "get bread")
	assert.Contains(t, h.do(imm, "give bread"), "To who?")
	assert.Contains(t, h.do(imm, "give bread nobody"), "No-one by that name here.")
	assert.Contains(t, h.do(imm, "give bread bob"), "You give a loaf of bread to Bob.")
	assert.Contains(t, mort.Drain(), "Zara gives you a loaf of bread.")
	assert.Len(t, h.g.world.Ch(bob).Carrying, 1)
	assert.Contains(t, h.do(imm, "give bread zara"), "What's the point of that?")
}

func TestGold_DropGetGive(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	zara := h.char("Zara")
	bob := h.char("Bob")
	w := h.g.world
	w.Ch(zara).Points.Gold = 100
	w.Ch(bob).Points.Gold = 0

	assert.Contains(t, h.do(imm, "drop 500 coins"), "You don't have that many coins!")
	assert.Contains(t, h.do(imm, "drop 25 coins"), "You drop some gold.")
	assert.Equal(t, 75, w.Ch(zara).Points.Gold)
	assert.Contains(t, h.do(mort, "get coins"), "There were 25 coins.")
	assert.Equal(t, 25, w.Ch(bob).Points.Gold)

	assert.Contains(t, h.do(imm, "give 10 coins bob"), "Ok.")
	assert.Contains(t, mort.Drain(), "Zara gives you 10 gold coins.")
	assert.Equal(t, 35, w.Ch(bob).Points.Gold)
	assert.Contains(t, h.do(mort, "gold"), "You have 35 gold coins.")
}

func TestJunk_RewardsGold(t *testing.T) {
	h := newHarness(t)
	imm, _ := h.pair()
	zara := h.char("Zara")
	w := h.g.world
	w.Ch(zara).Points.Gold = 0

	h.do(imm, "get sword")
	out := h.do(imm, "junk sword")
	assert.Contains(t, out, "You junk a long sword.  It vanishes in a puff of smoke!")
	assert.Contains(t, out, "You have been rewarded by the gods!")
	assert.Equal(t, 100/16, w.Ch(zara).Points.Gold)
	_, found := w.GetObjNum(w.RealObject(3012))
	assert.False(t, found)
}

func TestDump_DestroysDroppedItems(t *testing.T) {
	h := newHarness(t)
	imm, _ := h.pair()
	zara := h.char("Zara")
	w := h.g.world

	h.do(imm, "get bread")
	h.do(imm, "south")
	require.Equal(t, world.Vnum(3006), h.roomOf(zara))
	w.Ch(zara).Points.Gold = 0
	assert.Contains(t, h.do(imm, "drop bread"), "You are awarded for outstanding performance.")
	assert.Empty(t, w.Room(w.RealRoom(3006)).Contents)
	assert.Equal(t, 1, w.Ch(zara).Points.Gold)
}
