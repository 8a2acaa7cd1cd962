// Package gameserver runs the game: the pulse loop, connection handling,
// the login state machine, the command interpreter and every command.
// A single goroutine owns the world; everything else reaches it through
// Submit.
package gameserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/game/command"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/observability"
	"github.com/cory-johannsen/circlemud/internal/scripting"
	"github.com/cory-johannsen/circlemud/internal/storage"
	"github.com/cory-johannsen/circlemud/internal/textfiles"
)

// PlayerStore persists player records.
type PlayerStore interface {
	Load(ctx context.Context, name string) (*storage.PlayerRecord, error)
	LoadByID(ctx context.Context, idnum int64) (*storage.PlayerRecord, error)
	Save(ctx context.Context, rec *storage.PlayerRecord) error
	Exists(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]storage.PlayerSummary, error)
	SetLevel(ctx context.Context, name string, level int) error
}

// RentStore persists the objects a player logs out with.
type RentStore interface {
	LoadRent(ctx context.Context, idnum int64) ([]storage.RentItem, error)
	SaveRent(ctx context.Context, idnum int64, items []storage.RentItem) error
	DeleteRent(ctx context.Context, idnum int64) error
}

// BoardStore persists bulletin boards.
type BoardStore interface {
	ListBoard(board string) ([]storage.BoardMessage, error)
	Post(board string, msg storage.BoardMessage) error
	RemovePost(board string, n int) error
}

// MailStore persists mudmail.
type MailStore interface {
	SendMail(to, from int64, body string) error
	HasMail(idnum int64) (bool, error)
	ReceiveMail(idnum int64) ([]storage.MailMessage, error)
}

// BanStore persists the site ban list.
type BanStore interface {
	ListBans() ([]storage.Ban, error)
	AddBan(ban storage.Ban) error
	RemoveBan(site string) (storage.Ban, error)
}

// AliasStore persists player aliases.
type AliasStore interface {
	LoadAliases(idnum int64) (command.Aliases, error)
	SaveAliases(idnum int64, aliases command.Aliases) error
}

// Stores groups the persistence collaborators.
type Stores struct {
	Players PlayerStore
	Rent    RentStore
	Boards  BoardStore
	Mail    MailStore
	Bans    BanStore
	Aliases AliasStore
}

// Scripts runs special procedures written in Lua.
type Scripts interface {
	HasSpec(name string) bool
	CallSpec(call scripting.SpecCall) (bool, error)
}

// Bridge relays public channels to other servers.
type Bridge interface {
	Publish(channel, from, text string) error
}

// Deps are the collaborators of a Game. Socials, Scripts and Bridge may
// be nil.
type Deps struct {
	Config  config.Config
	World   *world.World
	Stores  Stores
	Texts   *textfiles.Files
	Socials map[string]Social
	Scripts Scripts
	Bridge  Bridge
	Metrics *observability.Metrics
	Logger  *zap.Logger
}

// ErrShutdown is returned by Call once the game loop has stopped.
var ErrShutdown = errors.New("game is shut down")

// Game is the running game. Only the loop goroutine may touch its fields;
// other goroutines use Accept, Submit, Call and Shutdown.
type Game struct {
	cfg     config.GameConfig
	server  config.ServerConfig
	world   *world.World
	stores  Stores
	texts   *textfiles.Files
	scripts Scripts
	bridge  Bridge
	metrics *observability.Metrics
	logger  *zap.Logger

	commands []Command
	socials  map[string]Social
	specs    map[string]SpecProc

	accept   chan world.Transport
	tasks    chan func()
	shutdown chan string
	stopped  chan struct{}

	pps           int
	pulse         int
	minsSinceSave int
	zoneTimer     int
	restrict      int
	bans          []storage.Ban
	boot          time.Time
	now           func() time.Time

	stopping       bool
	shutdownReason string
}

// NewGame builds a game around a loaded world.
//
// Precondition: d.World, d.Texts and every store in d.Stores are non-nil.
// Postcondition: Returns a game ready to Run.
func NewGame(d Deps) *Game {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pps := int(time.Second / d.Config.Game.PulseInterval)
	if pps < 1 {
		pps = 1
	}
	g := &Game{
		cfg:      d.Config.Game,
		server:   d.Config.Server,
		world:    d.World,
		stores:   d.Stores,
		texts:    d.Texts,
		scripts:  d.Scripts,
		bridge:   d.Bridge,
		metrics:  d.Metrics,
		logger:   logger,
		socials:  d.Socials,
		accept:   make(chan world.Transport, 64),
		tasks:    make(chan func(), 256),
		shutdown: make(chan string, 1),
		stopped:  make(chan struct{}),
		pps:      pps,
		restrict: d.Config.Server.Wizlock,
		boot:     time.Now(),
		now:      time.Now,
	}
	if g.socials == nil {
		g.socials = map[string]Social{}
	}
	g.commands = buildCommandTable()
	g.addSocials()
	g.specs = builtinSpecs()
	g.world.OnStopFollow = g.announceStopFollow

	if bans, err := g.stores.Bans.ListBans(); err != nil {
		logger.Error("SYSERR: loading ban list", zap.Error(err))
	} else {
		g.bans = bans
	}
	return g
}

// World returns the world. Only code running on the game goroutine may
// use it.
func (g *Game) World() *world.World { return g.world }

// SetBridge attaches the channel bridge. It must be called before Run.
func (g *Game) SetBridge(b Bridge) { g.bridge = b }

// Accept hands a new connection to the game. It never blocks the game
// loop; it blocks the caller only while the accept queue is full.
func (g *Game) Accept(t world.Transport) {
	select {
	case g.accept <- t:
	case <-g.stopped:
		_ = t.Close()
	}
}

// Submit queues fn to run on the game goroutine at the next pulse.
func (g *Game) Submit(fn func()) {
	select {
	case g.tasks <- fn:
	case <-g.stopped:
	}
}

// Call runs fn on the game goroutine and waits for it to finish.
//
// Postcondition: Returns nil once fn has run, ctx.Err() if ctx ends
// first, or ErrShutdown if the loop has stopped.
func (g *Game) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	task := func() {
		fn()
		close(done)
	}
	select {
	case g.tasks <- task:
	case <-g.stopped:
		return ErrShutdown
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-g.stopped:
		return ErrShutdown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown asks the loop to stop at the end of the current pulse.
func (g *Game) Shutdown(reason string) {
	select {
	case g.shutdown <- reason:
	default:
	}
}

// Stopped is closed once Run has returned.
func (g *Game) Stopped() <-chan struct{} { return g.stopped }

// Boot resets every zone and reports the world size. It runs before the
// first pulse.
func (g *Game) Boot() {
	w := g.world
	for z := range w.Zones {
		g.logger.Info("resetting zone",
			zap.String("zone", w.Zones[z].Name),
			zap.Int("vnum", int(w.Zones[z].Vnum)),
		)
		w.ResetZone(z)
	}
	g.resetTime()
	g.logger.Info("boot complete",
		zap.Int("rooms", len(w.Rooms)),
		zap.Int("zones", len(w.Zones)),
		zap.Int("mobiles", len(w.MobProtos)),
		zap.Int("objects", len(w.ObjProtos)),
		zap.Int("commands", len(g.commands)),
		zap.Int("socials", len(g.socials)),
	)
}

// String identifies the game in logs.
func (g *Game) String() string {
	return fmt.Sprintf("%s (%d pps)", g.server.Name, g.pps)
}
