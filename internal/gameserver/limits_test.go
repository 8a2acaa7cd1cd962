package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func TestIdlePlayerIsPulledIntoTheVoidAndReturns(t *testing.T) {
	h := newHarness(t)
	imm, mort := h.pair()
	bob := h.char("Bob")
	c := h.g.world.Ch(bob)

	c.Timer = h.g.cfg.IdleVoidTicks
	h.g.pointUpdate()
	h.g.Tick(1)
	assert.Equal(t, world.Vnum(3098), h.roomOf(bob))
	assert.Contains(t, mort.Drain(), "You have been idle, and are pulled into a void.")
	assert.Contains(t, imm.Drain(), "Bob disappears into the void.")

	h.do(mort, "look")
	assert.Equal(t, world.Vnum(3001), h.roomOf(bob))
	assert.Equal(t, 0, h.g.world.Ch(bob).Timer)
	assert.Contains(t, imm.Drain(), "Bob has returned.")
}

func TestIdlePlayerIsRentedOut(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	bob := h.char("Bob")
	h.give(bob, 3010)
	c := h.g.world.Ch(bob)
	id := c.IDNum

	c.Timer = h.g.cfg.IdleRentTicks
	c.WasInRoom = c.InRoom
	h.g.pointUpdate()
	h.g.Tick(1)
	h.g.Tick(1)

	assert.False(t, h.playing("Bob"))
	assert.True(t, mort.Closed())

	items, err := h.store.LoadRent(t.Context(), id)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestImmortalsDoNotIdle(t *testing.T) {
	h := newHarness(t)
	h.pair()
	zara := h.char("Zara")
	h.g.world.Ch(zara).Timer = h.g.cfg.IdleRentTicks + 5
	h.g.pointUpdate()
	assert.Equal(t, world.Vnum(3001), h.roomOf(zara))
}

func TestLowestImmortalStillIdles(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	require.Equal(t, world.LvlGod, h.g.cfg.IdleMaxLevel)

	bob := h.char("Bob")
	c := h.g.world.Ch(bob)
	c.Level = world.LvlImmort
	c.Timer = h.g.cfg.IdleVoidTicks
	h.g.pointUpdate()
	h.g.Tick(1)
	assert.Equal(t, world.Vnum(3098), h.roomOf(bob))
	assert.Contains(t, mort.Drain(), "You have been idle, and are pulled into a void.")
}

func TestHungerThirstAndRegeneration(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	c := h.g.world.Ch(h.char("Bob"))
	c.Player.Conditions[world.CondFull] = 1
	c.Player.Conditions[world.CondThirst] = 1
	c.Points.Hit = 1
	c.Points.Move = 1

	h.g.pointUpdate()
	h.g.Tick(1)
	out := mort.Drain()
	assert.Contains(t, out, "You are hungry.")
	assert.Contains(t, out, "You are thirsty.")
	assert.Greater(t, c.Points.Hit, 1)
	assert.Greater(t, c.Points.Move, 1)
	assert.LessOrEqual(t, c.Points.Hit, c.Points.MaxHit)

	assert.Contains(t, h.do(mort, "score"), "You are hungry.")
}
