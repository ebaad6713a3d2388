package model

import "time"

// IdempotencyKey tracks the outcome of a caller-supplied deduplication key.
// Once Used is set and TransactionID is linked the record is immutable.
type IdempotencyKey struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	KeyValue      string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID        string    `gorm:"type:char(11);not null"`
	Used          bool      `gorm:"not null;default:false"`
	TransactionID *int64    `gorm:""`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	ExpiresAt     time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

func (k IdempotencyKey) Expired(now time.Time) bool {
	return k.ExpiresAt.Before(now)
}
