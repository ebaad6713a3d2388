package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"account_id"`
	UserID    string          `gorm:"column:user_id;type:char(11);uniqueIndex;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`
	Version   int64           `gorm:"not null;default:0" json:"-"`
	UpdatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"last_updated"`
	CreatedAt time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}
