package importer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/importer"
	"github.com/cory-johannsen/circlemud/internal/importer/legacy"
)

// staticSource returns fixed zones.
type staticSource struct {
	zones []*importer.ZoneData
	err   error
}

func (s staticSource) Load(string) ([]*importer.ZoneData, error) { return s.zones, s.err }

func zone(vnum int, name string, rooms ...importer.RoomSpec) *importer.ZoneData {
	return &importer.ZoneData{Zone: importer.ZoneSpec{
		Vnum: vnum, Name: name, Bottom: vnum * 100, Top: vnum*100 + 99, Lifespan: 10, Rooms: rooms,
	}}
}

func room(vnum int, exits ...importer.ExitSpec) importer.RoomSpec {
	return importer.RoomSpec{Vnum: vnum, Name: fmt.Sprintf("Room %d", vnum), Sector: "city", Exits: exits}
}

func TestImporter_Run_WritesLoadableZones(t *testing.T) {
	src := staticSource{zones: []*importer.ZoneData{
		zone(30, "Northern Midgaard",
			room(3001, importer.ExitSpec{Dir: "east", To: 3002}),
			room(3002, importer.ExitSpec{Dir: "west", To: 3001}, importer.ExitSpec{Dir: "south", To: 3101})),
		zone(31, "Southern Midgaard",
			room(3101, importer.ExitSpec{Dir: "north", To: 3002})),
	}}
	outDir := filepath.Join(t.TempDir(), "world")
	require.NoError(t, importer.New(src, zaptest.NewLogger(t)).Run("ignored", outDir))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "030_northern_midgaard.yaml", entries[0].Name())
	assert.Equal(t, "031_southern_midgaard.yaml", entries[1].Name())

	files, err := world.LoadZonesFromDir(outDir)
	require.NoError(t, err)
	w := world.New(nil, zaptest.NewLogger(t))
	require.NoError(t, w.Build(files))
	assert.NotEqual(t, world.Nowhere, w.RealRoom(3101))
}

func TestImporter_Run_DanglingExitWritesNothing(t *testing.T) {
	src := staticSource{zones: []*importer.ZoneData{
		zone(30, "Broken", room(3001, importer.ExitSpec{Dir: "north", To: 9999})),
	}}
	outDir := filepath.Join(t.TempDir(), "world")
	err := importer.New(src, nil).Run("ignored", outDir)
	require.ErrorIs(t, err, world.ErrDanglingVnum)
	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestImporter_Run_RejectsUnnamedZone(t *testing.T) {
	src := staticSource{zones: []*importer.ZoneData{zone(30, "", room(3001))}}
	require.Error(t, importer.New(src, nil).Run("ignored", t.TempDir()))
}

func TestImporter_Run_SourceError(t *testing.T) {
	src := staticSource{err: os.ErrNotExist}
	require.ErrorIs(t, importer.New(src, nil).Run("ignored", t.TempDir()), os.ErrNotExist)
}

func TestImporter_Run_LegacyTree(t *testing.T) {
	root := t.TempDir()
	write := func(name, body string) {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("zon/0.zon", "#0\nLimbo~\n0 99 10 0\nS\n$\n")
	write("wld/0.wld", "#1\nLimbo~\nA void.\n~\n0 e 0\nD5\n~\n~\n0 -1 2\nS\n#2\nBelow~\nStill a void.\n~\n0 0 0\nD4\n~\n~\n0 -1 1\nS\n$~\n")

	outDir := t.TempDir()
	require.NoError(t, importer.New(legacy.NewSource(nil), nil).Run(root, outDir))
	zf, err := world.LoadZoneFromFile(filepath.Join(outDir, "000_limbo.yaml"))
	require.NoError(t, err)
	w := world.New(nil, nil)
	require.NoError(t, w.Build([]*world.ZoneFile{zf}))
	r := w.Room(w.RealRoom(1))
	assert.Equal(t, "Limbo", r.Name)
	assert.True(t, r.Flags.Has(world.RoomPeaceful))
	require.NotNil(t, r.Exits[world.Down])
	assert.Equal(t, w.RealRoom(2), r.Exits[world.Down].ToRoom)
}

// TestImporter_Run_NZonesProducesNFiles checks that N distinct zones give
// exactly N output files.
func TestImporter_Run_NZonesProducesNFiles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "numZones")
		var zones []*importer.ZoneData
		for i := range n {
			zones = append(zones, zone(i+1, fmt.Sprintf("Zone %d", i+1), room((i+1)*100)))
		}
		outDir := t.TempDir()
		if err := importer.New(staticSource{zones: zones}, nil).Run("ignored", outDir); err != nil {
			rt.Fatal(err)
		}
		entries, err := os.ReadDir(outDir)
		if err != nil {
			rt.Fatal(err)
		}
		assert.Equal(rt, n, len(entries))
	})
}
