package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Behyna/wallet-service/internal/constants"
	"github.com/Behyna/wallet-service/internal/mocks"
	"github.com/Behyna/wallet-service/internal/model"
	"github.com/Behyna/wallet-service/internal/repository"
	"github.com/Behyna/wallet-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const keyTTL = 24 * time.Hour

func newTransferService(txManager *mocks.TxManager, accounts *mocks.AccountRepository,
	transactions *mocks.TransactionRepository, keys *mocks.IdempotencyKeyRepository,
) service.TransferService {
	return service.NewTransferService(txManager, accounts, transactions, keys, keyTTL, zap.NewNop(), nil)
}

func freshKey(key, userID string) model.IdempotencyKey {
	return model.IdempotencyKey{
		KeyValue:  key,
		UserID:    userID,
		Used:      false,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(keyTTL),
	}
}

func TestTransfer_Success(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("30.00"),
		IdempotencyKey: "k1",
		Description:    "lunch",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	source := model.Account{ID: 1, UserID: "user-00001", Balance: decimal.RequireFromString("100.00")}
	dest := model.Account{ID: 2, UserID: "user-00002", Balance: decimal.RequireFromString("5.00")}

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k1", "user-00001", keyTTL).Return(freshKey("k1", "user-00001"), nil)
	mockAccounts.On("FindByUserID", mock.Anything, "user-00001").Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(2)).Return(dest, nil)

	mockTransactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *model.Transaction) bool {
		return tx.FromAccountID == 1 &&
			tx.ToAccountID == 2 &&
			tx.Status == model.TransactionStatusPending &&
			tx.IdempotencyKey == "k1" &&
			tx.Amount.Equal(decimal.RequireFromString("30.00"))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Transaction).ID = 77
	}).Return(nil)

	mockAccounts.On("Save", mock.Anything, mock.MatchedBy(func(acc *model.Account) bool {
		return acc.ID == 1 && acc.Balance.Equal(decimal.RequireFromString("70.00"))
	})).Return(nil)
	mockAccounts.On("Save", mock.Anything, mock.MatchedBy(func(acc *model.Account) bool {
		return acc.ID == 2 && acc.Balance.Equal(decimal.RequireFromString("35.00"))
	})).Return(nil)

	mockTransactions.On("UpdateStatus", mock.Anything, int64(77), model.TransactionStatusCompleted).Return(nil)
	mockKeys.On("MarkUsed", mock.Anything, "k1", int64(77)).Return(nil)

	result, err := svc.Transfer(context.Background(), cmd)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), result.TransactionID)
	assert.Equal(t, model.TransactionStatusCompleted, result.Status)
	assert.True(t, result.FromAccountBalance.Equal(decimal.RequireFromString("70.00")))
	assert.True(t, result.ToAccountBalance.Equal(decimal.RequireFromString("35.00")))
	assert.Equal(t, "k1", result.IdempotencyKey)

	mockAccounts.AssertExpectations(t)
	mockTransactions.AssertExpectations(t)
	mockKeys.AssertExpectations(t)
}

func TestTransfer_LockOrderIsAscendingRegardlessOfDirection(t *testing.T) {
	// Caller owns account 9 and sends to account 3; the locks must still be
	// taken 3 first, then 9.
	cmd := service.TransferCommand{
		UserID:         "user-00009",
		ToAccountID:    3,
		Amount:         decimal.RequireFromString("1.00"),
		IdempotencyKey: "k-order",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	source := model.Account{ID: 9, UserID: "user-00009", Balance: decimal.RequireFromString("10.00")}
	dest := model.Account{ID: 3, UserID: "user-00003", Balance: decimal.Zero}

	var lockOrder []int64

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k-order", "user-00009", keyTTL).Return(freshKey("k-order", "user-00009"), nil)
	mockAccounts.On("FindByUserID", mock.Anything, "user-00009").Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(3)).Run(func(args mock.Arguments) {
		lockOrder = append(lockOrder, 3)
	}).Return(dest, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(9)).Run(func(args mock.Arguments) {
		lockOrder = append(lockOrder, 9)
	}).Return(source, nil)

	mockTransactions.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Transaction).ID = 1
	}).Return(nil)
	mockAccounts.On("Save", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
	mockTransactions.On("UpdateStatus", mock.Anything, int64(1), model.TransactionStatusCompleted).Return(nil)
	mockKeys.On("MarkUsed", mock.Anything, "k-order", int64(1)).Return(nil)

	_, err := svc.Transfer(context.Background(), cmd)

	assert.NoError(t, err)
	assert.Equal(t, []int64{3, 9}, lockOrder)
}

func TestTransfer_IdempotentReplay(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("30.00"),
		IdempotencyKey: "k1",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	linkedID := int64(77)
	usedKey := model.IdempotencyKey{
		KeyValue:      "k1",
		UserID:        "user-00001",
		Used:          true,
		TransactionID: &linkedID,
		ExpiresAt:     time.Now().Add(-time.Hour),
	}

	original := model.Transaction{
		ID:             77,
		FromAccountID:  1,
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("30.00"),
		Status:         model.TransactionStatusCompleted,
		IdempotencyKey: "k1",
	}

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k1", "user-00001", keyTTL).Return(usedKey, nil)
	mockTransactions.On("GetByID", mock.Anything, int64(77)).Return(original, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(1)).
		Return(model.Account{ID: 1, Balance: decimal.RequireFromString("70.00")}, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(2)).
		Return(model.Account{ID: 2, Balance: decimal.RequireFromString("30.00")}, nil)

	result, err := svc.Transfer(context.Background(), cmd)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), result.TransactionID)
	assert.Equal(t, model.TransactionStatusCompleted, result.Status)
	assert.True(t, result.FromAccountBalance.Equal(decimal.RequireFromString("70.00")))

	// The replay observes; it never mutates.
	mockTransactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockAccounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockKeys.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_ExpiredUnusedKey(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("30.00"),
		IdempotencyKey: "k-old",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	expiredKey := model.IdempotencyKey{
		KeyValue:  "k-old",
		UserID:    "user-00001",
		Used:      false,
		CreatedAt: time.Now().Add(-25 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k-old", "user-00001", keyTTL).Return(expiredKey, nil)

	_, err := svc.Transfer(context.Background(), cmd)

	var svcErr service.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeIdempotencyKeyExpired, svcErr.Code)

	mockAccounts.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	mockTransactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransfer_SameAccount(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    1,
		Amount:         decimal.RequireFromString("50.00"),
		IdempotencyKey: "k-self",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k-self", "user-00001", keyTTL).Return(freshKey("k-self", "user-00001"), nil)
	mockAccounts.On("FindByUserID", mock.Anything, "user-00001").
		Return(model.Account{ID: 1, UserID: "user-00001", Balance: decimal.RequireFromString("100.00")}, nil)

	_, err := svc.Transfer(context.Background(), cmd)

	var svcErr service.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeSameAccountTransfer, svcErr.Code)

	mockAccounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockTransactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransfer_NonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-10.00"} {
		cmd := service.TransferCommand{
			UserID:         "user-00001",
			ToAccountID:    2,
			Amount:         decimal.RequireFromString(amount),
			IdempotencyKey: "k-amount",
		}

		mockTxManager := &mocks.TxManager{}
		mockAccounts := &mocks.AccountRepository{}
		mockTransactions := &mocks.TransactionRepository{}
		mockKeys := &mocks.IdempotencyKeyRepository{}

		svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockKeys.On("AcquireOrGet", mock.Anything, "k-amount", "user-00001", keyTTL).Return(freshKey("k-amount", "user-00001"), nil)
		mockAccounts.On("FindByUserID", mock.Anything, "user-00001").
			Return(model.Account{ID: 1, UserID: "user-00001", Balance: decimal.RequireFromString("100.00")}, nil)

		_, err := svc.Transfer(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeNonPositiveAmount, svcErr.Code)
	}
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("1000.00"),
		IdempotencyKey: "k-big",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	source := model.Account{ID: 1, UserID: "user-00001", Balance: decimal.RequireFromString("70.00")}
	dest := model.Account{ID: 2, UserID: "user-00002", Balance: decimal.Zero}

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k-big", "user-00001", keyTTL).Return(freshKey("k-big", "user-00001"), nil)
	mockAccounts.On("FindByUserID", mock.Anything, "user-00001").Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(2)).Return(dest, nil)

	_, err := svc.Transfer(context.Background(), cmd)

	var svcErr service.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeInsufficientBalance, svcErr.Code)

	mockAccounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockTransactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransfer_UsedKeyWithMissingTransaction(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("30.00"),
		IdempotencyKey: "k-broken",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	linkedID := int64(404)
	usedKey := model.IdempotencyKey{
		KeyValue:      "k-broken",
		UserID:        "user-00001",
		Used:          true,
		TransactionID: &linkedID,
	}

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k-broken", "user-00001", keyTTL).Return(usedKey, nil)
	mockTransactions.On("GetByID", mock.Anything, int64(404)).
		Return(model.Transaction{}, repository.ErrTransactionNotFound)

	_, err := svc.Transfer(context.Background(), cmd)

	var svcErr service.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeOperationFailed, svcErr.Code)
}

func TestTransfer_LedgerBackstopPreviouslyFailed(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("30.00"),
		IdempotencyKey: "k-burned",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	source := model.Account{ID: 1, UserID: "user-00001", Balance: decimal.RequireFromString("100.00")}
	dest := model.Account{ID: 2, UserID: "user-00002", Balance: decimal.Zero}

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k-burned", "user-00001", keyTTL).Return(freshKey("k-burned", "user-00001"), nil)
	mockAccounts.On("FindByUserID", mock.Anything, "user-00001").Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(2)).Return(dest, nil)
	mockTransactions.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).
		Return(repository.ErrTransactionExisted)
	mockTransactions.On("GetByIdempotencyKey", mock.Anything, "k-burned").
		Return(model.Transaction{ID: 9, Status: model.TransactionStatusFailed, IdempotencyKey: "k-burned"}, nil)

	_, err := svc.Transfer(context.Background(), cmd)

	var svcErr service.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeTransferPreviouslyFailed, svcErr.Code)
}

func TestTransfer_ApplyFailureRecordsFailedAttempt(t *testing.T) {
	cmd := service.TransferCommand{
		UserID:         "user-00001",
		ToAccountID:    2,
		Amount:         decimal.RequireFromString("30.00"),
		IdempotencyKey: "k-boom",
	}

	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	source := model.Account{ID: 1, UserID: "user-00001", Balance: decimal.RequireFromString("100.00")}
	dest := model.Account{ID: 2, UserID: "user-00002", Balance: decimal.Zero}

	mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockKeys.On("AcquireOrGet", mock.Anything, "k-boom", "user-00001", keyTTL).Return(freshKey("k-boom", "user-00001"), nil)
	mockAccounts.On("FindByUserID", mock.Anything, "user-00001").Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(1)).Return(source, nil)
	mockAccounts.On("FindByIDForUpdate", mock.Anything, int64(2)).Return(dest, nil)
	mockTransactions.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Transaction).ID = 5
	}).Return(nil)
	mockAccounts.On("Save", mock.Anything, mock.AnythingOfType("*model.Account")).
		Return(errors.New("disk on fire"))

	mockTransactions.On("CreateFailed", mock.Anything, mock.MatchedBy(func(tx *model.Transaction) bool {
		return tx.IdempotencyKey == "k-boom" && tx.FromAccountID == 1 && tx.ToAccountID == 2
	})).Return(nil)

	_, err := svc.Transfer(context.Background(), cmd)

	var svcErr service.Error
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeOperationFailed, svcErr.Code)

	mockTransactions.AssertCalled(t, "CreateFailed", mock.Anything, mock.AnythingOfType("*model.Transaction"))
}

func TestGetBalance(t *testing.T) {
	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	t.Run("returns the account balance", func(t *testing.T) {
		updated := time.Now()
		mockAccounts.On("FindByUserID", mock.Anything, "user-00001").
			Return(model.Account{ID: 1, UserID: "user-00001", Balance: decimal.RequireFromString("42.50"), UpdatedAt: updated}, nil).Once()

		result, err := svc.GetBalance(context.Background(), "user-00001")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), result.AccountID)
		assert.True(t, result.Balance.Equal(decimal.RequireFromString("42.50")))
		assert.Equal(t, updated, result.LastUpdated)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		mockAccounts.On("FindByUserID", mock.Anything, "user-99999").
			Return(model.Account{}, repository.ErrAccountNotFound).Once()

		_, err := svc.GetBalance(context.Background(), "user-99999")

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeAccountNotFound, svcErr.Code)
	})
}

func TestListHistory(t *testing.T) {
	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	account := model.Account{ID: 1, UserID: "user-00001"}

	t.Run("classifies directions and applies paging defaults", func(t *testing.T) {
		mockAccounts.On("FindByUserID", mock.Anything, "user-00001").Return(account, nil).Once()
		mockTransactions.On("ListForAccount", mock.Anything, int64(1), repository.Pagination{
			Page: 0, PageSize: 20, SortField: "created_at",
		}).Return([]model.Transaction{
			{ID: 2, FromAccountID: 1, ToAccountID: 3, Amount: decimal.RequireFromString("5.00"), Status: model.TransactionStatusCompleted},
			{ID: 1, FromAccountID: 4, ToAccountID: 1, Amount: decimal.RequireFromString("9.00"), Status: model.TransactionStatusCompleted},
		}, int64(2), nil).Once()

		result, err := svc.ListHistory(context.Background(), service.HistoryCommand{UserID: "user-00001"})

		assert.NoError(t, err)
		assert.Len(t, result.Entries, 2)
		assert.Equal(t, service.DirectionSent, result.Entries[0].Direction)
		assert.Equal(t, service.DirectionReceived, result.Entries[1].Direction)
		assert.Equal(t, int64(2), result.TotalCount)
		assert.Equal(t, 20, result.PageSize)
	})

	t.Run("invalid sort field maps to validation failure", func(t *testing.T) {
		mockAccounts.On("FindByUserID", mock.Anything, "user-00001").Return(account, nil).Once()
		mockTransactions.On("ListForAccount", mock.Anything, int64(1), mock.Anything).
			Return([]model.Transaction(nil), int64(0), repository.ErrInvalidSortField).Once()

		_, err := svc.ListHistory(context.Background(), service.HistoryCommand{UserID: "user-00001", SortField: "password"})

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeValidationFailed, svcErr.Code)
	})
}

func TestEnsureAccount(t *testing.T) {
	mockTxManager := &mocks.TxManager{}
	mockAccounts := &mocks.AccountRepository{}
	mockTransactions := &mocks.TransactionRepository{}
	mockKeys := &mocks.IdempotencyKeyRepository{}

	svc := newTransferService(mockTxManager, mockAccounts, mockTransactions, mockKeys)

	mockAccounts.On("CreateIfAbsent", mock.Anything, "user-00001").
		Return(model.Account{ID: 1, UserID: "user-00001", Balance: decimal.Zero}, nil)

	acc, err := svc.EnsureAccount(context.Background(), "user-00001")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), acc.ID)
	assert.True(t, acc.Balance.IsZero())
}
