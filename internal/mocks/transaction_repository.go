package mocks

import (
	"context"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/Behyna/wallet-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) CreateFailed(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) UpdateStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error {
	args := m.Called(ctx, transactionID, status)
	return args.Error(0)
}

func (m *TransactionRepository) GetByID(ctx context.Context, transactionID int64) (model.Transaction, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (m *TransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (model.Transaction, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListForAccount(ctx context.Context, accountID int64, page repository.Pagination) ([]model.Transaction, int64, error) {
	args := m.Called(ctx, accountID, page)
	return args.Get(0).([]model.Transaction), args.Get(1).(int64), args.Error(2)
}
