package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/admin"
	"github.com/cory-johannsen/circlemud/internal/auth"
	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/frontend/ssh"
	"github.com/cory-johannsen/circlemud/internal/frontend/telnet"
	"github.com/cory-johannsen/circlemud/internal/frontend/websocket"
	"github.com/cory-johannsen/circlemud/internal/game/dice"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/gameserver"
	"github.com/cory-johannsen/circlemud/internal/messaging"
	"github.com/cory-johannsen/circlemud/internal/observability"
	"github.com/cory-johannsen/circlemud/internal/scripting"
	"github.com/cory-johannsen/circlemud/internal/server"
	"github.com/cory-johannsen/circlemud/internal/storage/bolt"
	"github.com/cory-johannsen/circlemud/internal/storage/postgres"
	"github.com/cory-johannsen/circlemud/internal/textfiles"
)

// ConfigPath is the location of the YAML configuration file.
type ConfigPath string

// app is everything main needs once the graph is built.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	game      *gameserver.Game
	texts     *textfiles.Files
	lifecycle *server.Lifecycle
}

func provideConfig(path ConfigPath) (config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	l, err := observability.NewLogging(cfg.Logging, cfg.Server.Name)
	if err != nil {
		return nil, nil, err
	}
	return l.Logger, func() { _ = l.Logger.Sync() }, nil
}

func provideMetrics() *observability.Metrics {
	return observability.NewMetrics(time.Now())
}

func provideRoller(logger *zap.Logger) *dice.Roller {
	return dice.NewRoller(dice.NewCryptoSource(), logger)
}

func provideWorld(cfg config.Config, roller *dice.Roller, logger *zap.Logger) (*world.World, error) {
	start := time.Now()
	files, err := world.LoadZonesFromDir(cfg.Game.WorldDir)
	if err != nil {
		return nil, fmt.Errorf("loading world files: %w", err)
	}
	w := world.New(roller, logger)
	if err := w.Build(files); err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	logger.Info("world loaded",
		zap.String("dir", cfg.Game.WorldDir),
		zap.Int("zones", len(w.Zones)),
		zap.Int("rooms", len(w.Rooms)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return w, nil
}

func provideTexts(cfg config.Config, logger *zap.Logger) *textfiles.Files {
	return textfiles.Load(cfg.Game.TextDir, cfg.Server.Name, logger)
}

func provideScripts(cfg config.Config, roller *dice.Roller, logger *zap.Logger) (*scripting.Manager, func(), error) {
	m := scripting.NewManager(roller, logger)
	if err := m.Load(cfg.Game.ScriptsDir, 0); err != nil {
		return nil, nil, fmt.Errorf("loading scripts: %w", err)
	}
	logger.Info("special procedure scripts loaded", zap.Int("count", len(m.Specs())))
	return m, m.Close, nil
}

func provideSocials(cfg config.Config, logger *zap.Logger) (map[string]gameserver.Social, error) {
	socials, err := gameserver.LoadSocials(cfg.Game.SocialsFile)
	if err != nil {
		return nil, fmt.Errorf("loading socials: %w", err)
	}
	logger.Info("socials loaded", zap.Int("count", len(socials)))
	return socials, nil
}

func provideBolt(cfg config.Config) (*bolt.Store, func(), error) {
	store, err := bolt.Open(cfg.Storage.BoltPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", cfg.Storage.BoltPath, err)
	}
	return store, func() { _ = store.Close() }, nil
}

// provideStores keeps boards, mail, bans and aliases in bolt and puts
// players and rent in the configured backend.
func provideStores(ctx context.Context, cfg config.Config, store *bolt.Store, logger *zap.Logger) (gameserver.Stores, func(), error) {
	stores := gameserver.Stores{
		Players: store,
		Rent:    store,
		Boards:  store,
		Mail:    store,
		Bans:    store,
		Aliases: store,
	}
	if cfg.Storage.Players != "postgres" {
		return stores, func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return gameserver.Stores{}, nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info("player store: postgres", zap.String("host", cfg.Database.Host))
	stores.Players = postgres.NewPlayerRepository(pool.DB())
	stores.Rent = postgres.NewRentRepository(pool.DB())
	return stores, pool.Close, nil
}

func provideGame(cfg config.Config, w *world.World, stores gameserver.Stores, texts *textfiles.Files,
	socials map[string]gameserver.Social, scripts *scripting.Manager, metrics *observability.Metrics,
	logger *zap.Logger) *gameserver.Game {
	return gameserver.NewGame(gameserver.Deps{
		Config:  cfg,
		World:   w,
		Stores:  stores,
		Texts:   texts,
		Socials: socials,
		Scripts: scripts,
		Metrics: metrics,
		Logger:  logger,
	})
}

// provideBridge connects the channel bridge, starting an embedded NATS
// server first when configured. It returns nil when messaging is off.
func provideBridge(cfg config.Config, game *gameserver.Game, logger *zap.Logger) (*messaging.Bridge, func(), error) {
	m := cfg.Messaging
	if !m.Enabled {
		return nil, func() {}, nil
	}
	url := m.URL
	var embedded *messaging.EmbeddedServer
	if m.Embedded {
		var err error
		embedded, err = messaging.NewEmbeddedServer(m.EmbeddedPort, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := embedded.Start(); err != nil {
			return nil, nil, err
		}
		url = embedded.ClientURL()
	}
	b, err := messaging.Connect(url, m.SubjectPrefix, m.Origin, game, logger)
	if err != nil {
		if embedded != nil {
			embedded.Stop()
		}
		return nil, nil, err
	}
	game.SetBridge(b)
	return b, func() {
		b.Close()
		if embedded != nil {
			embedded.Stop()
		}
	}, nil
}

// provideLifecycle registers every long-running service. The game loop is
// essential: an in-game shutdown ends the process.
func provideLifecycle(ctx context.Context, cfg config.Config, game *gameserver.Game, texts *textfiles.Files,
	stores gameserver.Stores, metrics *observability.Metrics, _ *messaging.Bridge, logger *zap.Logger) (*server.Lifecycle, error) {
	lc := server.NewLifecycle(logger)

	gameCtx, cancelGame := context.WithCancel(ctx)
	lc.AddEssential("game", &server.FuncService{
		StartFn: func() error {
			game.Boot()
			if err := texts.Watch(gameCtx, nil); err != nil {
				logger.Warn("text files will not hot reload", zap.Error(err))
			}
			return game.Run(gameCtx)
		},
		StopFn: func() {
			game.Shutdown("signal")
			select {
			case <-game.Stopped():
			case <-time.After(30 * time.Second):
				logger.Error("game loop did not stop; cancelling")
				cancelGame()
				<-game.Stopped()
			}
			cancelGame()
		},
	})

	tel := telnet.NewAcceptor(cfg.Telnet, game, logger)
	lc.Add("telnet", &server.FuncService{StartFn: tel.ListenAndServe, StopFn: tel.Stop})

	if cfg.Websocket.Enabled {
		ws := websocket.NewAcceptor(cfg.Websocket, cfg.Telnet, game, logger)
		lc.Add("websocket", &server.FuncService{StartFn: ws.ListenAndServe, StopFn: ws.Stop})
	}

	if cfg.SSH.Enabled {
		key, err := ssh.LoadOrCreateHostKey(cfg.SSH.HostKeyPath)
		if err != nil {
			return nil, err
		}
		sa := ssh.NewAcceptor(cfg.SSH, cfg.Telnet, key, game, logger)
		lc.Add("ssh", &server.FuncService{StartFn: sa.ListenAndServe, StopFn: sa.Stop})
	}

	if cfg.Admin.Enabled {
		tokens := auth.NewTokenIssuer(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
		gs := admin.NewGRPCServer(admin.NewServer(game, stores.Players, tokens, logger), logger)
		grpcLis := admin.NewListener(cfg.Admin.GRPCAddr(), gs, logger)
		lc.Add("admin", &server.FuncService{StartFn: grpcLis.Start, StopFn: grpcLis.Stop})

		ms := admin.NewMetricsServer(cfg.Admin.MetricsAddr(), metrics.Handler(), logger)
		lc.Add("metrics", &server.FuncService{StartFn: ms.Start, StopFn: ms.Stop})
	}
	return lc, nil
}

func newApp(cfg config.Config, logger *zap.Logger, game *gameserver.Game, texts *textfiles.Files, lc *server.Lifecycle) *app {
	return &app{cfg: cfg, logger: logger, game: game, texts: texts, lifecycle: lc}
}
