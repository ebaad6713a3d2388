package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Terminal reports whether no further status transition is allowed.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed || s == TransactionStatusCancelled
}

type Transaction struct {
	ID             int64             `gorm:"primaryKey;autoIncrement" json:"transaction_id"`
	FromAccountID  int64             `gorm:"not null;index" json:"from_account_id"`
	ToAccountID    int64             `gorm:"not null;index" json:"to_account_id"`
	Amount         decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status         TransactionStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	IdempotencyKey string            `gorm:"type:varchar(64);uniqueIndex;not null" json:"idempotency_key"`
	Description    string            `gorm:"type:varchar(255)" json:"description"`
	CreatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
