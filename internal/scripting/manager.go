package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/game/dice"
)

// Host carries out a script's requests against the game for one call.
type Host interface {
	// Send writes msg to the acting character.
	Send(msg string)
	// Echo writes msg to everyone in the room.
	Echo(msg string)
	// Say makes the owning mobile say msg.
	Say(msg string)
	// Act formats and delivers template. For a mobile owner $n is the
	// mobile and $N the actor; otherwise $n is the actor and $p the
	// owning object. audience is "room", "char", "vict" or "notvict".
	Act(template, audience string)
}

// SpecCall is one invocation of a special procedure.
type SpecCall struct {
	Name string
	// Owner is "room", "obj" or "mob".
	Owner      string
	Command    string
	Argument   string
	Actor      string
	ActorLevel int
	ActorNPC   bool
	Room       int
	// Pulse is set for the periodic call that has no actor.
	Pulse bool
	Host  Host
}

// Manager holds one sandboxed VM with the special procedures its scripts
// registered through circle.spec.
//
// Calls are serialized; the VM is single-threaded.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	specs     map[string]*lua.LFunction
	instLimit int
	host      Host
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{specs: map[string]*lua.LFunction{}, roller: roller, logger: logger}
}

// Load runs every .lua file in dir, in name order, in a fresh VM that
// replaces the current one. A missing dir loads nothing.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit per call.
// Postcondition: On error the previous VM stays in place.
func (m *Manager) Load(dir string, instLimit int) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		entries = nil
	} else if err != nil {
		return fmt.Errorf("reading script dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	m.mu.Lock()
	defer m.mu.Unlock()

	L := NewSandboxedState()
	specs := map[string]*lua.LFunction{}
	m.registerModules(L, specs)
	for _, f := range files {
		done := withBudget(L, instLimit)
		err := L.DoFile(f)
		done()
		if err != nil {
			L.Close()
			return fmt.Errorf("loading script %q: %w", f, err)
		}
	}

	if m.L != nil {
		m.L.Close()
	}
	m.L = L
	m.specs = specs
	m.instLimit = instLimit
	m.logger.Info("loaded special procedure scripts",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("specs", len(specs)),
	)
	return nil
}

// HasSpec reports whether a script registered name.
func (m *Manager) HasSpec(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.specs[name]
	return ok
}

// Specs returns the registered names in order.
func (m *Manager) Specs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.specs))
	for n := range m.specs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CallSpec runs the procedure named call.Name. It returns true when the
// script handled the command. Runtime errors, including an exhausted
// budget, are logged and count as not handled.
func (m *Manager) CallSpec(call SpecCall) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn, ok := m.specs[call.Name]
	if !ok {
		return false, fmt.Errorf("no special procedure %q", call.Name)
	}
	L := m.L
	m.host = call.Host
	defer func() { m.host = nil }()

	ev := L.NewTable()
	L.SetField(ev, "name", lua.LString(call.Name))
	L.SetField(ev, "owner", lua.LString(call.Owner))
	L.SetField(ev, "command", lua.LString(call.Command))
	L.SetField(ev, "argument", lua.LString(call.Argument))
	L.SetField(ev, "actor", lua.LString(call.Actor))
	L.SetField(ev, "actor_level", lua.LNumber(call.ActorLevel))
	L.SetField(ev, "actor_npc", lua.LBool(call.ActorNPC))
	L.SetField(ev, "room", lua.LNumber(call.Room))
	L.SetField(ev, "pulse", lua.LBool(call.Pulse))

	done := withBudget(L, m.instLimit)
	err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, ev)
	done()
	if err != nil {
		m.logger.Warn("special procedure failed",
			zap.String("spec", call.Name),
			zap.Error(err),
		)
		return false, nil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(ret), nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
	m.specs = map[string]*lua.LFunction{}
}
