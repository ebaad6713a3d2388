package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrTransactionExisted  = errors.New("TRANSACTION_EXISTED")
	ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
	ErrInvalidSortField    = errors.New("INVALID_SORT_FIELD")
)

// sortFields whitelists the columns ListForAccount may order by.
var sortFields = map[string]string{
	"created_at": "created_at",
	"amount":     "amount",
	"status":     "status",
}

type Pagination struct {
	Page      int
	PageSize  int
	SortField string
	SortDir   string
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	CreateFailed(ctx context.Context, tx *model.Transaction) error
	UpdateStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error
	GetByID(ctx context.Context, transactionID int64) (model.Transaction, error)
	GetByIdempotencyKey(ctx context.Context, key string) (model.Transaction, error)
	ListForAccount(ctx context.Context, accountID int64, page Pagination) ([]model.Transaction, int64, error)
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

// Create inserts the PENDING record. The unique index on idempotency_key is
// the ledger-level backstop: it fires even if the registry write races.
func (t *transaction) Create(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, t.db)

	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTransactionExisted
	}

	return err
}

// CreateFailed records a FAILED attempt on the base connection, outside any
// enclosing transaction, so the record survives the rollback that undid the
// balance mutation.
func (t *transaction) CreateFailed(ctx context.Context, tx *model.Transaction) error {
	tx.Status = model.TransactionStatusFailed

	err := t.db.WithContext(ctx).Create(tx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTransactionExisted
	}

	return err
}

func (t *transaction) UpdateStatus(ctx context.Context, transactionID int64, status model.TransactionStatus) error {
	db := GetTx(ctx, t.db)

	result := db.Model(&model.Transaction{}).
		Where("id = ?", transactionID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

func (t *transaction) GetByID(ctx context.Context, transactionID int64) (model.Transaction, error) {
	db := GetTx(ctx, t.db)

	var tx model.Transaction
	if err := db.Where("id = ?", transactionID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Transaction{}, ErrTransactionNotFound
		}
		return model.Transaction{}, err
	}

	return tx, nil
}

func (t *transaction) GetByIdempotencyKey(ctx context.Context, key string) (model.Transaction, error) {
	db := GetTx(ctx, t.db)

	var tx model.Transaction
	if err := db.Where("idempotency_key = ?", key).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Transaction{}, ErrTransactionNotFound
		}
		return model.Transaction{}, err
	}

	return tx, nil
}

// ListForAccount pages through transactions touching the account in either
// direction; the caller classifies SENT vs RECEIVED by comparing account
// ids.
func (t *transaction) ListForAccount(ctx context.Context, accountID int64, page Pagination) ([]model.Transaction, int64, error) {
	column, ok := sortFields[page.SortField]
	if !ok {
		return nil, 0, ErrInvalidSortField
	}

	dir := "DESC"
	if page.SortDir == "asc" {
		dir = "ASC"
	}

	query := t.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []model.Transaction
	err := query.
		Order(fmt.Sprintf("%s %s", column, dir)).
		Offset(page.Page * page.PageSize).
		Limit(page.PageSize).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}
