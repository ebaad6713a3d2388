package mocks

import (
	"context"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) FindByUserID(ctx context.Context, userID string) (model.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountRepository) FindByIDForUpdate(ctx context.Context, accountID int64) (model.Account, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountRepository) Save(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *AccountRepository) CreateIfAbsent(ctx context.Context, userID string) (model.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Account), args.Error(1)
}
