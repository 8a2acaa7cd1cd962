// Package main provides a CLI tool for setting a player's level offline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/game/world"
	"github.com/cory-johannsen/circlemud/internal/gameserver"
	"github.com/cory-johannsen/circlemud/internal/storage/bolt"
	"github.com/cory-johannsen/circlemud/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/circled.yaml", "path to configuration file")
	name := flag.String("name", "", "player name (required)")
	level := flag.Int("level", -1, fmt.Sprintf("new level, 0-%d (required)", world.LvlImpl))
	flag.Parse()

	if *name == "" || *level < 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *level > world.LvlImpl {
		log.Fatalf("invalid level %d: must be at most %d", *level, world.LvlImpl)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var players gameserver.PlayerStore
	switch cfg.Storage.Players {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("connecting to database: %v", err)
		}
		defer pool.Close()
		players = postgres.NewPlayerRepository(pool.DB())
	default:
		store, err := bolt.Open(cfg.Storage.BoltPath)
		if err != nil {
			log.Fatalf("opening %s: %v", cfg.Storage.BoltPath, err)
		}
		defer store.Close()
		players = store
	}

	rec, err := players.Load(ctx, *name)
	if err != nil {
		log.Fatalf("looking up player %q: %v", *name, err)
	}
	if err := players.SetLevel(ctx, rec.Name, *level); err != nil {
		log.Fatalf("setting level: %v", err)
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stdout, "set level for %s (#%d): %d -> %d [%s]\n",
		rec.Name, rec.IDNum, rec.Level, *level, elapsed)
}
