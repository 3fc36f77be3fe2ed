package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes income from expense records.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense entry. Date holds a calendar day
// at midnight UTC.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index:idx_transactions_user_date" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_user_date" json:"date"`
	Category    string          `gorm:"not null" json:"category"`
}
