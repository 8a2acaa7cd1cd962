//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
)

var storageSet = wire.NewSet(provideBolt, provideStores)

var gameSet = wire.NewSet(
	provideRoller,
	provideWorld,
	provideTexts,
	provideScripts,
	provideSocials,
	provideMetrics,
	provideGame,
)

func initializeApp(ctx context.Context, path ConfigPath) (*app, func(), error) {
	wire.Build(
		provideConfig,
		provideLogger,
		storageSet,
		gameSet,
		provideBridge,
		provideLifecycle,
		newApp,
	)
	return nil, nil, nil
}
