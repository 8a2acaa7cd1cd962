package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/circlemud/internal/game/dice"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

func newKeep(t *testing.T) *world.World {
	t.Helper()
	zf, err := world.LoadZoneFromFile("testdata/keep.yaml")
	require.NoError(t, err)
	w := world.New(dice.NewRoller(dice.NewSeededSource(7), nil), zaptest.NewLogger(t))
	require.NoError(t, w.Build([]*world.ZoneFile{zf}))
	return w
}

func TestBuild_DenseRnumsInVnumOrder(t *testing.T) {
	w := newKeep(t)
	require.Len(t, w.Rooms, 5)
	for i, v := range []world.Vnum{3001, 3002, 3003, 3004, 3005} {
		assert.Equal(t, world.Rnum(i), w.RealRoom(v))
		assert.Equal(t, v, w.Rooms[i].Vnum)
	}
	assert.Equal(t, world.Nowhere, w.RealRoom(9999))
	assert.Equal(t, 0, w.RealMobile(3010))
	assert.Equal(t, 2, w.RealObject(3022))
	assert.Equal(t, -1, w.RealObject(1))
}

func TestBuild_ResolvesExits(t *testing.T) {
	w := newKeep(t)
	court := w.Room(w.RealRoom(3002))
	east := court.Exits[world.East]
	require.NotNil(t, east)
	assert.Equal(t, w.RealRoom(3003), east.ToRoom)
	assert.True(t, east.IsDoor())
	assert.False(t, east.IsClosed())
	assert.Equal(t, world.NoVnum, east.Key)
	assert.Nil(t, court.Exits[world.Up])
	assert.Equal(t, "An open courtyard.\r\n", court.Description)
}

func TestBuild_ConvertsTemplates(t *testing.T) {
	w := newKeep(t)
	guard := w.MobProtos[0]
	assert.True(t, guard.Proto.MobFlags.Has(world.MobIsNPC|world.MobSentinel))
	assert.Equal(t, world.SexMale, guard.Proto.Sex)
	assert.Equal(t, "2d8+20", guard.HitDice.String())

	sword := w.ObjProtos[0].Proto
	assert.Equal(t, world.ItemWeapon, sword.Type)
	assert.True(t, sword.CanWear(world.ItemWearWield))
}

func TestBuild_DanglingExitIsFatal(t *testing.T) {
	zf, err := world.LoadZoneFromBytes([]byte(`
zone:
  vnum: 1
  name: Broken
  bottom: 100
  top: 199
  rooms:
    - vnum: 100
      name: Edge
      exits:
        - dir: north
          to: 555
`))
	require.NoError(t, err)
	w := world.New(nil, nil)
	assert.ErrorIs(t, w.Build([]*world.ZoneFile{zf}), world.ErrDanglingVnum)
}

func TestBuild_DanglingResetIsFatal(t *testing.T) {
	zf, err := world.LoadZoneFromBytes([]byte(`
zone:
  vnum: 1
  name: Broken
  bottom: 100
  top: 199
  rooms:
    - vnum: 100
      name: Edge
  resets:
    - {cmd: M, mob: 150, max: 1, room: 100}
`))
	require.NoError(t, err)
	w := world.New(nil, nil)
	assert.ErrorIs(t, w.Build([]*world.ZoneFile{zf}), world.ErrDanglingVnum)
}

func TestBuild_DuplicateRoom(t *testing.T) {
	zf, err := world.LoadZoneFromBytes([]byte(`
zone:
  vnum: 1
  name: Twice
  bottom: 100
  top: 199
  rooms:
    - {vnum: 100, name: A}
    - {vnum: 100, name: B}
`))
	require.NoError(t, err)
	assert.Error(t, world.New(nil, nil).Build([]*world.ZoneFile{zf}))
}

func TestLoadZoneFromBytes_Errors(t *testing.T) {
	_, err := world.LoadZoneFromBytes([]byte("zone: [unclosed"))
	assert.Error(t, err)

	_, err = world.LoadZoneFromBytes([]byte("zone:\n  vnum: 4\n"))
	assert.Error(t, err)
}

func TestLoadZonesFromDir(t *testing.T) {
	zones, err := world.LoadZonesFromDir("testdata")
	require.NoError(t, err)
	assert.Len(t, zones, 1)

	_, err = world.LoadZonesFromDir(t.TempDir())
	assert.Error(t, err)
}
