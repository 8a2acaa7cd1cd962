// Package main is the CircleMUD server: it loads the world, opens the
// stores and serves players over telnet, websocket and ssh until shut
// down from inside the game or by signal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

func main() {
	start := time.Now()
	configPath := flag.String("config", "configs/circled.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()
	a, cleanup, err := initializeApp(ctx, ConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "circled: %v\n", err)
		os.Exit(1)
	}

	a.logger.Info("server initialized",
		zap.String("name", a.cfg.Server.Name),
		zap.String("telnet_addr", a.cfg.Telnet.Addr()),
		zap.Duration("startup", time.Since(start)),
	)

	runErr := a.lifecycle.Run(ctx)
	cleanup()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "circled: %v\n", runErr)
		os.Exit(1)
	}
}
