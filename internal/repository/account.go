package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound = errors.New("ACCOUNT_NOT_FOUND")
	ErrVersionConflict = errors.New("ACCOUNT_VERSION_CONFLICT")
)

type AccountRepository interface {
	FindByUserID(ctx context.Context, userID string) (model.Account, error)
	FindByIDForUpdate(ctx context.Context, accountID int64) (model.Account, error)
	Save(ctx context.Context, account *model.Account) error
	CreateIfAbsent(ctx context.Context, userID string) (model.Account, error)
}

type account struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &account{db: db}
}

func (r *account) FindByUserID(ctx context.Context, userID string) (model.Account, error) {
	db := GetTx(ctx, r.db)

	var acc model.Account
	if err := db.Where("user_id = ?", userID).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, err
	}

	return acc, nil
}

// FindByIDForUpdate reads the account row under an exclusive lock. It must
// run inside a TxManager transaction; the lock is held until that
// transaction commits or rolls back.
func (r *account) FindByIDForUpdate(ctx context.Context, accountID int64) (model.Account, error) {
	db := GetTx(ctx, r.db)

	var acc model.Account
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", accountID).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, err
	}

	return acc, nil
}

// Save persists the balance and bumps the optimistic version counter. A
// stale version means the caller raced an update outside the locked path.
func (r *account) Save(ctx context.Context, acc *model.Account) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.Account{}).
		Where("id = ? AND version = ?", acc.ID, acc.Version).
		Updates(map[string]any{
			"balance":    acc.Balance,
			"version":    acc.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	acc.Version++
	return nil
}

// CreateIfAbsent creates a zero-balance account for the user unless one
// already exists. Safe to call concurrently for the same user: the loser
// of the unique-index race re-reads the winner's row.
func (r *account) CreateIfAbsent(ctx context.Context, userID string) (model.Account, error) {
	db := GetTx(ctx, r.db)

	acc := model.Account{
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := db.Create(&acc).Error
	if err == nil {
		return acc, nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return r.FindByUserID(ctx, userID)
	}

	return model.Account{}, err
}
