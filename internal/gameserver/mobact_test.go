package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// mobileActivityUntil runs mobile turns until cond holds or n turns pass.
func (h *harness) mobileActivityUntil(n int, cond func() bool) bool {
	for range n {
		h.g.mobileActivity()
		if cond() {
			return true
		}
	}
	return false
}

func TestSentinelStaysPut(t *testing.T) {
	h := newHarness(t)
	pm := h.postmaster()
	w := h.g.world
	w.Ch(pm).SpecProc = ""

	moved := h.mobileActivityUntil(300, func() bool {
		return w.RoomVnum(w.Ch(pm).InRoom) != 3004
	})
	assert.False(t, moved)
}

func TestWanderer_LeavesThroughOpenExits(t *testing.T) {
	h := newHarness(t)
	pm := h.postmaster()
	w := h.g.world
	c := w.Ch(pm)
	c.SpecProc = ""
	c.MobFlags.Clear(world.MobSentinel)

	moved := h.mobileActivityUntil(500, func() bool {
		return w.RoomVnum(w.Ch(pm).InRoom) != 3004
	})
	require.True(t, moved)
	assert.Equal(t, world.Vnum(3002), w.RoomVnum(w.Ch(pm).InRoom))
}

func TestWanderer_AvoidsNoMobRooms(t *testing.T) {
	h := newHarness(t)
	pm := h.postmaster()
	w := h.g.world
	c := w.Ch(pm)
	c.SpecProc = ""
	c.MobFlags.Clear(world.MobSentinel)
	w.Room(w.RealRoom(3002)).Flags.Set(world.RoomNoMob)

	moved := h.mobileActivityUntil(300, func() bool {
		return w.RoomVnum(w.Ch(pm).InRoom) != 3004
	})
	assert.False(t, moved)
}

func TestSleepingMobilesDoNothing(t *testing.T) {
	h := newHarness(t)
	pm := h.postmaster()
	w := h.g.world
	c := w.Ch(pm)
	c.SpecProc = ""
	c.MobFlags.Clear(world.MobSentinel)
	c.Position = world.PosSleeping

	moved := h.mobileActivityUntil(300, func() bool {
		return w.RoomVnum(w.Ch(pm).InRoom) != 3004
	})
	assert.False(t, moved)
}

func TestScavenger_TakesTheMostValuableItem(t *testing.T) {
	h := newHarness(t)
	_, mort := h.pair()
	pm := h.postmaster()
	w := h.g.world
	c := w.Ch(pm)
	c.SpecProc = ""
	c.MobFlags.Set(world.MobScavenger)

	bob := h.char("Bob")
	h.moveTo(bob, 3004)
	sword := h.give(bob, 3012)
	h.give(bob, 3010)
	h.do(mort, "drop all")
	mort.Drain()

	took := h.mobileActivityUntil(500, func() bool {
		return len(w.Ch(pm).Carrying) > 0
	})
	require.True(t, took)
	assert.Equal(t, []world.ObjID{sword}, w.Ch(pm).Carrying)
	h.g.Tick(1)
	assert.Contains(t, mort.Drain(), "gets a long sword.")
}
