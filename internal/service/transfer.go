package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/wallet-service/internal/constants"
	"github.com/Behyna/wallet-service/internal/metrics"
	"github.com/Behyna/wallet-service/internal/model"
	"github.com/Behyna/wallet-service/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrSameAccountTransfer      = errors.New("cannot transfer to the same account")
	ErrNonPositiveAmount        = errors.New("transfer amount must be greater than zero")
	ErrIdempotencyKeyExpired    = errors.New("idempotency key has expired")
	ErrTransferPreviouslyFailed = errors.New("previous transfer attempt with this key failed")
	ErrMissingLinkedTransaction = errors.New("idempotency key is used but its transaction is missing")
)

const defaultPageSize = 20
const maxPageSize = 100

type TransferService interface {
	Transfer(ctx context.Context, cmd TransferCommand) (TransferResult, error)
	GetBalance(ctx context.Context, userID string) (BalanceResult, error)
	ListHistory(ctx context.Context, cmd HistoryCommand) (HistoryResult, error)
	EnsureAccount(ctx context.Context, userID string) (model.Account, error)
}

type transferService struct {
	txManager       repository.TxManager
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	idempotencyRepo repository.IdempotencyKeyRepository
	keyTTL          time.Duration
	log             *zap.Logger
	metrics         *metrics.Metrics
}

func NewTransferService(txManager repository.TxManager, accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository, idempotencyRepo repository.IdempotencyKeyRepository,
	keyTTL time.Duration, log *zap.Logger, metrics *metrics.Metrics,
) TransferService {
	return &transferService{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		idempotencyRepo: idempotencyRepo,
		keyTTL:          keyTTL,
		log:             log,
		metrics:         metrics,
	}
}

// Transfer moves cmd.Amount from the caller's account to cmd.ToAccountID
// exactly once per idempotency key. The whole operation runs as one
// serializable transaction; the key row and both account rows are held
// under exclusive locks from acquisition until commit or rollback.
func (s *transferService) Transfer(ctx context.Context, cmd TransferCommand) (TransferResult, error) {
	start := time.Now()

	var result TransferResult
	var attempt *model.Transaction

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := s.idempotencyRepo.AcquireOrGet(ctx, cmd.IdempotencyKey, cmd.UserID, s.keyTTL)
		if err != nil {
			return err
		}

		if record.Used {
			if record.TransactionID == nil {
				s.log.Error("idempotency key used without a linked transaction",
					zap.String("idempotency_key", cmd.IdempotencyKey))
				return NewServiceError(constants.ErrCodeOperationFailed, ErrMissingLinkedTransaction)
			}
			return s.replay(ctx, *record.TransactionID, &result)
		}

		if record.Expired(time.Now()) {
			return NewServiceError(constants.ErrCodeIdempotencyKeyExpired, ErrIdempotencyKeyExpired)
		}

		source, err := s.accountRepo.FindByUserID(ctx, cmd.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return NewServiceError(constants.ErrCodeAccountNotFound, err)
			}
			return err
		}

		if source.ID == cmd.ToAccountID {
			return NewServiceError(constants.ErrCodeSameAccountTransfer, ErrSameAccountTransfer)
		}

		if !cmd.Amount.IsPositive() {
			return NewServiceError(constants.ErrCodeNonPositiveAmount, ErrNonPositiveAmount)
		}

		from, to, err := s.lockAccountPair(ctx, source.ID, cmd.ToAccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return NewServiceError(constants.ErrCodeAccountNotFound, err)
			}
			return err
		}

		if from.Balance.LessThan(cmd.Amount) {
			return NewServiceError(constants.ErrCodeInsufficientBalance,
				fmt.Errorf("%w: current balance %s, required %s",
					ErrInsufficientBalance, from.Balance, cmd.Amount))
		}

		transaction := &model.Transaction{
			FromAccountID:  from.ID,
			ToAccountID:    to.ID,
			Amount:         cmd.Amount,
			Status:         model.TransactionStatusPending,
			IdempotencyKey: cmd.IdempotencyKey,
			Description:    cmd.Description,
			CreatedAt:      time.Now(),
		}

		if err := s.transactionRepo.Create(ctx, transaction); err != nil {
			if errors.Is(err, repository.ErrTransactionExisted) {
				return s.resolveExistingAttempt(ctx, cmd.IdempotencyKey, &result)
			}
			return err
		}
		attempt = transaction

		from.Balance = from.Balance.Sub(cmd.Amount)
		to.Balance = to.Balance.Add(cmd.Amount)

		if err := s.accountRepo.Save(ctx, from); err != nil {
			return err
		}
		if err := s.accountRepo.Save(ctx, to); err != nil {
			return err
		}

		if err := s.transactionRepo.UpdateStatus(ctx, transaction.ID, model.TransactionStatusCompleted); err != nil {
			return err
		}
		if err := s.idempotencyRepo.MarkUsed(ctx, cmd.IdempotencyKey, transaction.ID); err != nil {
			return err
		}

		result = TransferResult{
			TransactionID:      transaction.ID,
			FromAccountID:      from.ID,
			ToAccountID:        to.ID,
			Amount:             cmd.Amount,
			Status:             model.TransactionStatusCompleted,
			IdempotencyKey:     cmd.IdempotencyKey,
			Description:        cmd.Description,
			FromAccountBalance: from.Balance,
			ToAccountBalance:   to.Balance,
			CreatedAt:          transaction.CreatedAt,
		}

		return nil
	})

	if err == nil {
		if s.metrics != nil {
			s.metrics.RecordTransfer(string(result.Status))
			s.metrics.RecordTransferDuration(time.Since(start))
		}
		s.log.Info("Transfer completed",
			zap.Int64("transaction_id", result.TransactionID),
			zap.String("idempotency_key", cmd.IdempotencyKey),
			zap.Duration("duration", time.Since(start)),
		)
		return result, nil
	}

	var svcErr Error
	if errors.As(err, &svcErr) {
		if s.metrics != nil {
			s.metrics.RecordTransferError(svcErr.Code)
		}
		return TransferResult{}, err
	}

	if repository.IsLockConflict(err) {
		if s.metrics != nil {
			s.metrics.RecordTransferError(constants.ErrCodeTransferConflict)
		}
		s.log.Warn("Transfer aborted by lock conflict, caller may retry with the same key",
			zap.String("idempotency_key", cmd.IdempotencyKey),
			zap.Error(err),
		)
		return TransferResult{}, NewServiceError(constants.ErrCodeTransferConflict, err)
	}

	s.recordFailedAttempt(ctx, cmd, attempt)
	if s.metrics != nil {
		s.metrics.RecordTransferError(constants.ErrCodeOperationFailed)
	}
	s.log.Error("Transfer failed",
		zap.String("idempotency_key", cmd.IdempotencyKey),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)

	return TransferResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
}

// lockAccountPair acquires exclusive locks on both accounts in ascending id
// order regardless of transfer direction, so two opposing transfers between
// the same pair can never deadlock. Returns the accounts in the requested
// order.
func (s *transferService) lockAccountPair(ctx context.Context, fromID, toID int64) (*model.Account, *model.Account, error) {
	firstID, secondID := fromID, toID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.accountRepo.FindByIDForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := s.accountRepo.FindByIDForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return &first, &second, nil
	}
	return &second, &first, nil
}

// replay rebuilds the result of an already-committed transfer. The
// transaction fields are the original ones; balances are read as of now.
// Calling Transfer any number of times with a used key reports the same
// outcome and mutates nothing.
func (s *transferService) replay(ctx context.Context, transactionID int64, result *TransferResult) error {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			s.log.Error("linked transaction missing for used idempotency key",
				zap.Int64("transaction_id", transactionID))
			return NewServiceError(constants.ErrCodeOperationFailed, ErrMissingLinkedTransaction)
		}
		return err
	}

	from, to, err := s.lockAccountPair(ctx, transaction.FromAccountID, transaction.ToAccountID)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordIdempotentReplay()
	}
	s.log.Info("Idempotent replay, returning original transfer result",
		zap.Int64("transaction_id", transaction.ID),
		zap.String("idempotency_key", transaction.IdempotencyKey),
	)

	*result = TransferResult{
		TransactionID:      transaction.ID,
		FromAccountID:      transaction.FromAccountID,
		ToAccountID:        transaction.ToAccountID,
		Amount:             transaction.Amount,
		Status:             transaction.Status,
		IdempotencyKey:     transaction.IdempotencyKey,
		Description:        transaction.Description,
		FromAccountBalance: from.Balance,
		ToAccountBalance:   to.Balance,
		CreatedAt:          transaction.CreatedAt,
	}

	return nil
}

// resolveExistingAttempt handles the ledger backstop firing: the registry
// row raced but a transaction already carries this key.
func (s *transferService) resolveExistingAttempt(ctx context.Context, key string, result *TransferResult) error {
	existing, err := s.transactionRepo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return err
	}

	switch existing.Status {
	case model.TransactionStatusCompleted:
		return s.replay(ctx, existing.ID, result)
	case model.TransactionStatusFailed:
		return NewServiceError(constants.ErrCodeTransferPreviouslyFailed, ErrTransferPreviouslyFailed)
	default:
		// A non-terminal row under this key means another attempt is still
		// in flight; surface as retryable.
		return NewServiceError(constants.ErrCodeTransferConflict,
			fmt.Errorf("transaction %d with key %q is still %s", existing.ID, key, existing.Status))
	}
}

// recordFailedAttempt persists the FAILED record outside the rolled-back
// transaction. Only reached when the PENDING insert had succeeded and the
// balance mutation did not commit.
func (s *transferService) recordFailedAttempt(ctx context.Context, cmd TransferCommand, attempt *model.Transaction) {
	if attempt == nil {
		return
	}

	failed := model.Transaction{
		FromAccountID:  attempt.FromAccountID,
		ToAccountID:    attempt.ToAccountID,
		Amount:         attempt.Amount,
		IdempotencyKey: cmd.IdempotencyKey,
		Description:    attempt.Description,
		CreatedAt:      time.Now(),
	}

	if err := s.transactionRepo.CreateFailed(ctx, &failed); err != nil {
		s.log.Error("failed to record FAILED transfer attempt",
			zap.String("idempotency_key", cmd.IdempotencyKey),
			zap.Error(err),
		)
	}
}

func (s *transferService) GetBalance(ctx context.Context, userID string) (BalanceResult, error) {
	start := time.Now()

	acc, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordBalanceRetrieval("error")
		}
		if errors.Is(err, repository.ErrAccountNotFound) {
			return BalanceResult{}, NewServiceError(constants.ErrCodeAccountNotFound, err)
		}
		return BalanceResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if s.metrics != nil {
		s.metrics.RecordBalanceRetrieval("success")
	}
	s.log.Debug("Balance retrieved",
		zap.String("user_id", userID),
		zap.Duration("duration", time.Since(start)),
	)

	return BalanceResult{
		AccountID:   acc.ID,
		UserID:      acc.UserID,
		Balance:     acc.Balance,
		LastUpdated: acc.UpdatedAt,
	}, nil
}

func (s *transferService) ListHistory(ctx context.Context, cmd HistoryCommand) (HistoryResult, error) {
	acc, err := s.accountRepo.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return HistoryResult{}, NewServiceError(constants.ErrCodeAccountNotFound, err)
		}
		return HistoryResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	page := repository.Pagination{
		Page:      cmd.Page,
		PageSize:  cmd.PageSize,
		SortField: cmd.SortField,
		SortDir:   cmd.SortDir,
	}
	if page.Page < 0 {
		page.Page = 0
	}
	if page.PageSize <= 0 {
		page.PageSize = defaultPageSize
	}
	if page.PageSize > maxPageSize {
		page.PageSize = maxPageSize
	}
	if page.SortField == "" {
		page.SortField = "created_at"
	}

	txs, total, err := s.transactionRepo.ListForAccount(ctx, acc.ID, page)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) {
			return HistoryResult{}, NewServiceError(constants.ErrCodeValidationFailed, err)
		}
		return HistoryResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	entries := make([]HistoryEntry, 0, len(txs))
	for _, tx := range txs {
		direction := DirectionReceived
		if tx.FromAccountID == acc.ID {
			direction = DirectionSent
		}
		entries = append(entries, HistoryEntry{
			TransactionID: tx.ID,
			FromAccountID: tx.FromAccountID,
			ToAccountID:   tx.ToAccountID,
			Amount:        tx.Amount,
			Status:        tx.Status,
			Description:   tx.Description,
			Direction:     direction,
			CreatedAt:     tx.CreatedAt,
		})
	}

	return HistoryResult{
		Entries:    entries,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalCount: total,
	}, nil
}

func (s *transferService) EnsureAccount(ctx context.Context, userID string) (model.Account, error) {
	acc, err := s.accountRepo.CreateIfAbsent(ctx, userID)
	if err != nil {
		return model.Account{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if s.metrics != nil {
		s.metrics.RecordAccountEnsured()
	}
	s.log.Info("Account ensured",
		zap.String("user_id", userID),
		zap.Int64("account_id", acc.ID),
	)

	return acc, nil
}
