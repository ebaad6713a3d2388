package main

import (
	"context"

	"github.com/Behyna/wallet-service/internal/config"
	"github.com/Behyna/wallet-service/internal/database"
	"github.com/Behyna/wallet-service/internal/metrics"
	"github.com/Behyna/wallet-service/internal/repository"
	"github.com/Behyna/wallet-service/internal/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,
			metrics.NewMetrics,

			repository.NewIdempotencyKeyRepository,
			service.NewPurgeService,
		),
		fx.Invoke(runPurgeWorker),
	).Run()
}

func runPurgeWorker(cfg *config.Config, purger service.PurgeService, logger *zap.Logger, lc fx.Lifecycle) {
	workerCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go purger.Run(workerCtx, cfg.Idempotency.PurgeInterval)

			logger.Info("idempotency key purge worker started",
				zap.Duration("interval", cfg.Idempotency.PurgeInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping purge worker")
			cancel()
			return nil
		},
	})
}
