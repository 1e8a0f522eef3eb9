//go:build wireinject
// +build wireinject

package di

import (
	"FinTalk/pkg/config"
	"FinTalk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Domain services
		ProvideSessionStore,
		ProvideDirectory,
		ProvideCompletionService,
		ProvideRateLimiter,
		ProvideMarketProvider,
		ProvideNewsProvider,
		ProvideChartProvider,

		// Engine stages
		ProvideClassifier,
		ProvideResolver,
		ProvideFetcher,
		ProvideMerger,

		// Analytics
		ProvideTurnLog,
		ProvideTurnPublisher,
		ProvideAnalyticsQueue,

		// Boundary
		ProvideEngine,
		ProvideChatHandler,
		ProvideApp,
	)
	return nil, nil
}
