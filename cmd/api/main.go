package main

import (
	"context"

	"github.com/Behyna/wallet-service/internal/api"
	v1 "github.com/Behyna/wallet-service/internal/api/v1"
	xvalidator "github.com/Behyna/wallet-service/internal/api/validator"
	"github.com/Behyna/wallet-service/internal/config"
	"github.com/Behyna/wallet-service/internal/database"
	apperrors "github.com/Behyna/wallet-service/internal/errors"
	"github.com/Behyna/wallet-service/internal/metrics"
	"github.com/Behyna/wallet-service/internal/repository"
	"github.com/Behyna/wallet-service/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,
			metrics.NewMetrics,
			NewValidator,
			xvalidator.NewXValidator,
			NewFiberApp,

			repository.NewTransactionManager,
			repository.NewAccountRepository,
			repository.NewTransactionRepository,
			repository.NewIdempotencyKeyRepository,
			NewTransferService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler()})
}

func NewValidator() *validator.Validate {
	return validator.New()
}

func NewTransferService(txManager repository.TxManager, accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository, idempotencyRepo repository.IdempotencyKeyRepository,
	cfg *config.Config, logger *zap.Logger, m *metrics.Metrics,
) service.TransferService {
	return service.NewTransferService(txManager, accountRepo, transactionRepo, idempotencyRepo,
		cfg.Idempotency.KeyTTL, logger, m)
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger,
	m *metrics.Metrics, db *gorm.DB, lc fx.Lifecycle,
) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler)

	systemCollector := metrics.NewSystemCollector(m, logger)
	databaseCollector := metrics.NewDatabaseMetricsCollector(m, logger, db)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			systemCollector.Start(cfg.Metrics.CollectInterval)
			databaseCollector.Start(cfg.Metrics.CollectInterval)

			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			systemCollector.Stop()
			databaseCollector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}
