package service

import (
	"context"
	"time"

	"github.com/Behyna/wallet-service/internal/metrics"
	"github.com/Behyna/wallet-service/internal/repository"
	"go.uber.org/zap"
)

// PurgeService sweeps expired unused idempotency keys. Runs outside the
// transfer hot path.
type PurgeService interface {
	PurgeOnce(ctx context.Context) (int64, error)
	Run(ctx context.Context, interval time.Duration)
}

type purgeService struct {
	idempotencyRepo repository.IdempotencyKeyRepository
	log             *zap.Logger
	metrics         *metrics.Metrics
}

func NewPurgeService(idempotencyRepo repository.IdempotencyKeyRepository, log *zap.Logger, metrics *metrics.Metrics) PurgeService {
	return &purgeService{idempotencyRepo: idempotencyRepo, log: log, metrics: metrics}
}

func (s *purgeService) PurgeOnce(ctx context.Context) (int64, error) {
	purged, err := s.idempotencyRepo.PurgeExpired(ctx, time.Now())
	if err != nil {
		s.log.Error("purge of expired idempotency keys failed", zap.Error(err))
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RecordIdempotencyKeysPurged(purged)
	}

	if purged > 0 {
		s.log.Info("Purged expired idempotency keys", zap.Int64("count", purged))
	}

	return purged, nil
}

func (s *purgeService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.PurgeOnce(ctx)
		case <-ctx.Done():
			s.log.Info("purge loop stopped")
			return
		}
	}
}
