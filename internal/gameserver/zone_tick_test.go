package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// zoneMinutes runs the zone heartbeat for n game minutes.
func (h *harness) zoneMinutes(n int) {
	for range n * 60 / secsZone {
		h.g.zoneUpdate()
	}
}

func breadIn(w *world.World, v world.Vnum) int {
	n := 0
	for _, o := range w.Room(w.RealRoom(v)).Contents {
		if w.Obj(o).Name == "bread loaf" {
			n++
		}
	}
	return n
}

func TestZoneUpdate_ResetsAfterLifespan(t *testing.T) {
	h := newHarness(t)
	w := h.g.world
	require.Equal(t, 1, breadIn(w, 3001))
	for _, o := range w.Room(w.RealRoom(3001)).Contents {
		if w.Obj(o).Name == "bread loaf" {
			w.ExtractObj(o)
			break
		}
	}
	require.Equal(t, 0, breadIn(w, 3001))

	h.zoneMinutes(9)
	assert.Equal(t, 0, breadIn(w, 3001))
	assert.Equal(t, 9, w.Zones[0].Age)

	h.zoneMinutes(1)
	assert.Equal(t, 1, breadIn(w, 3001))
	assert.Equal(t, 0, w.Zones[0].Age)
}

func TestZoneUpdate_WhenEmptyWaitsForPlayersToLeave(t *testing.T) {
	h := newHarness(t)
	h.pair()
	w := h.g.world
	w.Zones[0].ResetMode = world.ResetWhenEmpty
	w.Zones[0].Age = w.Zones[0].Lifespan

	h.zoneMinutes(1)
	assert.Equal(t, w.Zones[0].Lifespan, w.Zones[0].Age)

	w.CharFromRoom(h.char("Bob"))
	w.CharFromRoom(h.char("Zara"))
	h.zoneMinutes(1)
	assert.Equal(t, 0, w.Zones[0].Age)
}

func TestZoneUpdate_NeverModeIsLeftAlone(t *testing.T) {
	h := newHarness(t)
	w := h.g.world
	w.Zones[0].ResetMode = world.ResetNever

	h.zoneMinutes(20)
	assert.Equal(t, 0, w.Zones[0].Age)
}

func TestZoneUpdate_OnlyActsOncePerMinute(t *testing.T) {
	h := newHarness(t)
	w := h.g.world
	for range 60/secsZone - 1 {
		h.g.zoneUpdate()
	}
	assert.Equal(t, 0, w.Zones[0].Age)
	h.g.zoneUpdate()
	assert.Equal(t, 1, w.Zones[0].Age)
}
