package legacy_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/circlemud/internal/importer"
	"github.com/cory-johannsen/circlemud/internal/importer/legacy"
)

func loadFixture(t *testing.T, opts ...legacy.Option) (*importer.ZoneSpec, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	zones, err := legacy.NewSource(zap.New(core), opts...).Load(writeWorld(t))
	require.NoError(t, err)
	require.Len(t, zones, 1)
	return &zones[0].Zone, logs
}

func TestLoad_ZoneHeader(t *testing.T) {
	z, _ := loadFixture(t)
	assert.Equal(t, 30, z.Vnum)
	assert.Equal(t, "Northern Midgaard", z.Name)
	assert.Equal(t, 3000, z.Bottom)
	assert.Equal(t, 3099, z.Top)
	assert.Equal(t, 15, z.Lifespan)
	assert.Equal(t, 2, z.ResetMode)
}

func TestLoad_Rooms(t *testing.T) {
	z, _ := loadFixture(t)
	require.Len(t, z.Rooms, 3)

	temple := z.Rooms[0]
	assert.Equal(t, "The Temple Of Midgaard", temple.Name)
	assert.Equal(t, "inside", temple.Sector)
	assert.Equal(t, []string{"indoors", "peaceful"}, temple.Flags)
	require.Len(t, temple.Exits, 1, "the exit to nowhere is dropped")
	assert.Equal(t, importer.ExitSpec{Dir: "east", To: 3002, Description: "A door leads east.\n", Keyword: "door", Flags: []string{"door"}}, temple.Exits[0])
	require.Len(t, temple.Extra, 1)
	assert.Equal(t, "paintings wall", temple.Extra[0].Keywords)

	board := z.Rooms[1]
	require.Len(t, board.Exits, 1, "the exit to a missing room is dropped")
	assert.Equal(t, "west", board.Exits[0].Dir)

	dump := z.Rooms[2]
	assert.Equal(t, "city", dump.Sector)
	assert.Empty(t, dump.Flags)
	assert.Equal(t, "dump", dump.Special)
}

func TestLoad_Mobiles(t *testing.T) {
	z, _ := loadFixture(t)
	require.Len(t, z.Mobiles, 2)

	guard := z.Mobiles[0]
	assert.Equal(t, 3060, guard.Vnum)
	assert.Equal(t, "A cityguard stands here.", guard.Long)
	assert.Equal(t, []string{"scavenger", "isnpc", "stay_zone"}, guard.Flags)
	assert.Equal(t, 10, guard.Level)
	assert.Equal(t, 10, guard.Armor)
	assert.Equal(t, "1d12+123", guard.HitDice)
	assert.Equal(t, 15, guard.Gold)
	assert.Equal(t, 9000, guard.Exp)
	assert.Equal(t, "standing", guard.Position)
	assert.Equal(t, "male", guard.Sex)
	assert.Equal(t, "cityguard", guard.Special)

	cleric := z.Mobiles[1]
	assert.Equal(t, 3024, cleric.Vnum)
	assert.Equal(t, -50, cleric.Armor)
	assert.Equal(t, []string{"sentinel", "nosleep"}, cleric.Flags)
	assert.Equal(t, "guild_guard", cleric.Special)
}

func TestLoad_Objects(t *testing.T) {
	z, _ := loadFixture(t)
	require.Len(t, z.Objects, 3)

	key := z.Objects[0]
	assert.Equal(t, "key", key.Type)
	assert.Equal(t, []string{"take"}, key.Wear)

	sword := z.Objects[1]
	assert.Equal(t, "weapon", sword.Type)
	assert.Equal(t, []string{"hum"}, sword.Flags)
	assert.Equal(t, []string{"take", "wield"}, sword.Wear)
	assert.Equal(t, [4]int{0, 1, 8, 3}, sword.Values)
	assert.Equal(t, 15, sword.Weight)
	assert.Equal(t, 600, sword.Cost)
	assert.Equal(t, 60, sword.Rent)
	require.Len(t, sword.Extra, 1)

	assert.Equal(t, "bulletin_board", z.Objects[2].Special)
}

func TestLoad_Resets(t *testing.T) {
	z, _ := loadFixture(t)
	assert.Equal(t, []importer.ResetSpec{
		{Cmd: "M", Mob: 3060, Max: 5, Room: 3001},
		{Cmd: "E", If: true, Obj: 3022, Max: 100, Slot: "wield"},
		{Cmd: "G", If: true, Obj: 3021, Max: 5},
		{Cmd: "O", Obj: 3099, Max: 1, Room: 3002},
		{Cmd: "D", Room: 3001, Dir: "east", State: "closed"},
		{Cmd: "D", Room: 3002, Dir: "west", State: "locked"},
	}, z.Resets)
}

func TestLoad_WarnsAboutDroppedData(t *testing.T) {
	_, logs := loadFixture(t)
	var all []string
	for _, e := range logs.All() {
		all = append(all, e.ContextMap()["warning"].(string))
	}
	joined := strings.Join(all, "\n")
	assert.Contains(t, joined, "dropping up exit that leads nowhere")
	assert.Contains(t, joined, "missing room #3999")
	assert.Contains(t, joined, "no mobile #3090")
	assert.Contains(t, joined, "after a dropped command")
	assert.Contains(t, joined, "ignoring Str")
	assert.Contains(t, joined, "ignoring 1 stat affects")
}

func TestLoad_WithoutSpecials(t *testing.T) {
	z, _ := loadFixture(t, legacy.WithoutSpecials())
	assert.Empty(t, z.Rooms[2].Special)
	assert.Empty(t, z.Mobiles[0].Special)
}

func TestLoad_IndexFileSelectsFiles(t *testing.T) {
	root := writeWorld(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "obj", "index"), []byte("$\n"), 0o644))
	_, err := legacy.NewSource(nil).Load(root)
	require.NoError(t, err, "resets naming objects that are not loaded are pruned")
}

func TestLoad_RoomOutsideAnyZone(t *testing.T) {
	root := writeWorld(t)
	extra := "#5000\nNowhere~\nNothing.\n~\n50 0 0\nS\n$\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "wld", "50.wld"), []byte(extra), 0o644))
	_, err := legacy.NewSource(nil).Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside of any zone")
}

func TestLoad_MissingZoneDir(t *testing.T) {
	_, err := legacy.NewSource(nil).Load(t.TempDir())
	require.Error(t, err)
}

func TestLoad_FormatErrorNamesLine(t *testing.T) {
	root := writeWorld(t)
	bad := "#3050\nBroken~\nNo terminator.\n~\n30 0 0\nX\n$\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "wld", "31.wld"), []byte(bad), 0o644))
	_, err := legacy.NewSource(nil).Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "31.wld:6")
}

func TestLoad_OldZoneHeader(t *testing.T) {
	root := writeWorld(t)
	old := "#31\nOld Zone~\n3199 10 1\nS\n$\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "zon", "31.zon"), []byte(old), 0o644))
	zones, err := legacy.NewSource(nil).Load(root)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, 3100, zones[1].Zone.Bottom)
	assert.Equal(t, 3199, zones[1].Zone.Top)
}
