package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func TestResetZone_PopulatesKeep(t *testing.T) {
	w := newKeep(t)
	w.ResetZone(0)

	temple := w.Room(w.RealRoom(3001))
	require.Len(t, temple.People, 1)
	guard := w.Ch(temple.People[0])
	assert.Equal(t, "the keep guard", guard.ShortDescr)
	assert.GreaterOrEqual(t, guard.Points.MaxHit, 22)
	assert.LessOrEqual(t, guard.Points.MaxHit, 36)

	sword := guard.Equipment[world.WearWield]
	require.False(t, sword.IsZero())
	assert.Equal(t, world.Vnum(3020), w.Obj(sword).Vnum)

	require.Len(t, guard.Carrying, 1)
	bag := w.Obj(guard.Carrying[0])
	require.Len(t, bag.Contains, 1)
	assert.Equal(t, world.Vnum(3022), w.Obj(bag.Contains[0]).Vnum)
	assert.Equal(t, 5, bag.Weight)
	assert.Equal(t, 5, guard.CarryWeight)

	court := w.Room(w.RealRoom(3002))
	assert.Len(t, court.Contents, 1)
	assert.True(t, court.Exits[world.East].IsClosed())
	assert.Equal(t, 2, w.ObjProtos[w.RealObject(3022)].Count)
	assert.Equal(t, 0, w.Zones[0].Age)
}

func TestResetZone_IfFlagFollowsPreviousCommand(t *testing.T) {
	w := newKeep(t)
	w.ResetZone(0)
	w.ResetZone(0)

	assert.Equal(t, 1, w.MobProtos[0].Count, "max 1 guard")
	assert.Equal(t, 1, w.ObjProtos[w.RealObject(3020)].Count, "equip skipped when M fails")
	assert.Equal(t, 1, w.ObjProtos[w.RealObject(3021)].Count)
	assert.Equal(t, 3, w.ObjProtos[w.RealObject(3022)].Count, "only the O command ran again")
}

func TestAgeZones(t *testing.T) {
	w := newKeep(t)
	for range w.Zones[0].Lifespan - 1 {
		assert.Empty(t, w.AgeZones())
	}
	assert.Equal(t, []int{0}, w.AgeZones())

	w.Zones[0].ResetMode = world.ResetNever
	w.Zones[0].Age = 0
	for range 20 {
		assert.Empty(t, w.AgeZones())
	}
}

func TestIsZoneEmpty_NoPlayers(t *testing.T) {
	w := newKeep(t)
	w.ResetZone(0)
	assert.True(t, w.IsZoneEmpty(0), "mobiles do not keep a zone occupied")
}
