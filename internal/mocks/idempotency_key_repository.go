package mocks

import (
	"context"
	"time"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type IdempotencyKeyRepository struct {
	mock.Mock
}

func (m *IdempotencyKeyRepository) AcquireOrGet(ctx context.Context, key string, userID string, ttl time.Duration) (model.IdempotencyKey, error) {
	args := m.Called(ctx, key, userID, ttl)
	return args.Get(0).(model.IdempotencyKey), args.Error(1)
}

func (m *IdempotencyKeyRepository) MarkUsed(ctx context.Context, key string, transactionID int64) error {
	args := m.Called(ctx, key, transactionID)
	return args.Error(0)
}

func (m *IdempotencyKeyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
