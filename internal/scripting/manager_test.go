package scripting_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/game/dice"
	"github.com/cory-johannsen/circlemud/internal/scripting"
)

type recordingHost struct {
	sent, echoed, said []string
	acts               [][2]string
}

func (h *recordingHost) Send(msg string) { h.sent = append(h.sent, msg) }
func (h *recordingHost) Echo(msg string) { h.echoed = append(h.echoed, msg) }
func (h *recordingHost) Say(msg string)  { h.said = append(h.said, msg) }
func (h *recordingHost) Act(tmpl, audience string) {
	h.acts = append(h.acts, [2]string{tmpl, audience})
}

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewRoller(dice.NewSeededSource(7), logger)
	return scripting.NewManager(roller, logger), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func TestManager_SpecRegistersAndHandles(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "fountain.lua", `
		circle.spec("fountain", function(ev)
			if ev.command ~= "drink" then return false end
			circle.send("The water is cold and clear.")
			circle.act("$N drinks from the fountain.", "room")
			return true
		end)
	`)
	require.NoError(t, mgr.Load(dir, 0))
	assert.True(t, mgr.HasSpec("fountain"))
	assert.Equal(t, []string{"fountain"}, mgr.Specs())

	h := &recordingHost{}
	handled, err := mgr.CallSpec(scripting.SpecCall{Name: "fountain", Owner: "obj", Command: "drink", Host: h})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"The water is cold and clear."}, h.sent)
	assert.Equal(t, [][2]string{{"$N drinks from the fountain.", "room"}}, h.acts)

	handled, err = mgr.CallSpec(scripting.SpecCall{Name: "fountain", Owner: "obj", Command: "look", Host: h})
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestManager_EventFields(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "echo.lua", `
		circle.spec("echo", function(ev)
			circle.echo(ev.owner .. ":" .. ev.actor .. ":" .. ev.actor_level .. ":" .. ev.room .. ":" .. tostring(ev.pulse))
			return false
		end)
	`)
	require.NoError(t, mgr.Load(dir, 0))
	h := &recordingHost{}
	_, err := mgr.CallSpec(scripting.SpecCall{
		Name: "echo", Owner: "mob", Actor: "Bob", ActorLevel: 5, Room: 3001, Host: h,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"mob:Bob:5:3001:false"}, h.echoed)
}

func TestManager_UnknownSpec_Errors(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(t.TempDir(), 0))
	assert.False(t, mgr.HasSpec("nothing"))
	_, err := mgr.CallSpec(scripting.SpecCall{Name: "nothing"})
	assert.Error(t, err)
}

func TestManager_RuntimeError_WarnsAndDeclines(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `
		circle.spec("bad", function(ev) error("intentional error") end)
	`)
	require.NoError(t, mgr.Load(dir, 0))
	handled, err := mgr.CallSpec(scripting.SpecCall{Name: "bad", Host: &recordingHost{}})
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestManager_RunawaySpec_StoppedByBudget(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "loop.lua", `
		circle.spec("loop", function(ev) while true do end end)
		circle.spec("ok", function(ev) return true end)
	`)
	require.NoError(t, mgr.Load(dir, 500))
	handled, err := mgr.CallSpec(scripting.SpecCall{Name: "loop", Host: &recordingHost{}})
	require.NoError(t, err)
	assert.False(t, handled)

	// The next call gets its own budget.
	handled, err = mgr.CallSpec(scripting.SpecCall{Name: "ok", Host: &recordingHost{}})
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestManager_Load_InvalidLua_KeepsPrevious(t *testing.T) {
	mgr, _ := newTestManager(t)
	good := writeTempLua(t, "good.lua", `circle.spec("good", function(ev) return true end)`)
	require.NoError(t, mgr.Load(good, 0))

	bad := writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)
	assert.Error(t, mgr.Load(bad, 0))
	assert.True(t, mgr.HasSpec("good"))
}

func TestManager_Load_MissingDir_LoadsNothing(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(filepath.Join(t.TempDir(), "absent"), 0))
	assert.Empty(t, mgr.Specs())
}

func TestManager_Load_FilesInNameOrder(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`greeting = "hi"`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		circle.spec("greet", function(ev) circle.say(greeting) return true end)
	`), 0644))
	require.NoError(t, mgr.Load(dir, 0))
	h := &recordingHost{}
	_, err := mgr.CallSpec(scripting.SpecCall{Name: "greet", Host: h})
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, h.said)
}

func TestManager_LogModule(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "log.lua", `
		circle.spec("log", function(ev) circle.log.info("hello from lua") return false end)
	`)
	require.NoError(t, mgr.Load(dir, 0))
	_, err := mgr.CallSpec(scripting.SpecCall{Name: "log", Host: &recordingHost{}})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("hello from lua").Len())
}

func TestManager_Close_DropsSpecs(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "x.lua", `circle.spec("x", function(ev) return true end)`)
	require.NoError(t, mgr.Load(dir, 0))
	mgr.Close()
	assert.False(t, mgr.HasSpec("x"))
}

func TestNewManager_PanicsOnNilArgs(t *testing.T) {
	logger := zap.NewNop()
	assert.Panics(t, func() { scripting.NewManager(nil, logger) })
	roller := dice.NewRoller(dice.NewSeededSource(1), logger)
	assert.Panics(t, func() { scripting.NewManager(roller, nil) })
}

func TestProperty_DiceStaysInRange(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "dice.lua", `
		circle.spec("roll", function(ev)
			local n = tonumber(ev.argument)
			local r = circle.dice(n, 6)
			if r < n or r > n * 6 then error("out of range") end
			return true
		end)
	`)
	require.NoError(t, mgr.Load(dir, 0))
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		handled, err := mgr.CallSpec(scripting.SpecCall{Name: "roll", Argument: strconv.Itoa(n), Host: &recordingHost{}})
		if err != nil || !handled {
			rt.Fatalf("roll %d failed", n)
		}
	})
}

