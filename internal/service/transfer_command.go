package service

import (
	"time"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/shopspring/decimal"
)

type TransferCommand struct {
	UserID         string
	ToAccountID    int64
	Amount         decimal.Decimal
	IdempotencyKey string
	Description    string
}

type TransferResult struct {
	TransactionID      int64                   `json:"transaction_id"`
	FromAccountID      int64                   `json:"from_account_id"`
	ToAccountID        int64                   `json:"to_account_id"`
	Amount             decimal.Decimal         `json:"amount"`
	Status             model.TransactionStatus `json:"status"`
	IdempotencyKey     string                  `json:"idempotency_key"`
	Description        string                  `json:"description"`
	FromAccountBalance decimal.Decimal         `json:"from_account_balance"`
	ToAccountBalance   decimal.Decimal         `json:"to_account_balance"`
	CreatedAt          time.Time               `json:"created_at"`
}

type BalanceResult struct {
	AccountID   int64           `json:"account_id"`
	UserID      string          `json:"user_id"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"last_updated"`
}

type HistoryCommand struct {
	UserID    string
	Page      int
	PageSize  int
	SortField string
	SortDir   string
}

// TransactionDirection classifies a history entry relative to the caller's
// account.
const (
	DirectionSent     = "SENT"
	DirectionReceived = "RECEIVED"
)

type HistoryEntry struct {
	TransactionID int64                   `json:"transaction_id"`
	FromAccountID int64                   `json:"from_account_id"`
	ToAccountID   int64                   `json:"to_account_id"`
	Amount        decimal.Decimal         `json:"amount"`
	Status        model.TransactionStatus `json:"status"`
	Description   string                  `json:"description"`
	Direction     string                  `json:"direction"`
	CreatedAt     time.Time               `json:"created_at"`
}

type HistoryResult struct {
	Entries    []HistoryEntry `json:"entries"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
}
