package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrKeyAlreadyUsed = errors.New("IDEMPOTENCY_KEY_ALREADY_USED")

type IdempotencyKeyRepository interface {
	AcquireOrGet(ctx context.Context, key string, userID string, ttl time.Duration) (model.IdempotencyKey, error)
	MarkUsed(ctx context.Context, key string, transactionID int64) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type idempotencyKey struct {
	db *gorm.DB
}

func NewIdempotencyKeyRepository(db *gorm.DB) IdempotencyKeyRepository {
	return &idempotencyKey{db: db}
}

// AcquireOrGet locks the key row if it exists, otherwise inserts a fresh
// unused record. The insert-then-reread on a duplicate-key violation keeps
// this a single atomic get-or-create: two concurrent callers with the same
// fresh key both end up observing the one created row, one of them holding
// the lock first.
func (r *idempotencyKey) AcquireOrGet(ctx context.Context, key string, userID string, ttl time.Duration) (model.IdempotencyKey, error) {
	db := GetTx(ctx, r.db)

	record, err := r.findForUpdate(db, key)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.IdempotencyKey{}, err
	}

	record = model.IdempotencyKey{
		KeyValue:  key,
		UserID:    userID,
		Used:      false,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	err = db.Create(&record).Error
	if err == nil {
		return record, nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return r.findForUpdate(db, key)
	}

	return model.IdempotencyKey{}, err
}

func (r *idempotencyKey) findForUpdate(db *gorm.DB, key string) (model.IdempotencyKey, error) {
	var record model.IdempotencyKey
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key_value = ?", key).
		First(&record).Error
	return record, err
}

// MarkUsed promotes the key exactly once. The used-flag guard in the WHERE
// clause keeps an in-process replay from double-committing.
func (r *idempotencyKey) MarkUsed(ctx context.Context, key string, transactionID int64) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.IdempotencyKey{}).
		Where("key_value = ? AND used = ?", key, false).
		Updates(map[string]any{"used": true, "transaction_id": transactionID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrKeyAlreadyUsed
	}

	return nil
}

// PurgeExpired removes expired unused keys. Maintenance path only; used
// keys stay behind as the durable link to their transaction.
func (r *idempotencyKey) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? AND used = ?", now, false).
		Delete(&model.IdempotencyKey{})

	return result.RowsAffected, result.Error
}
