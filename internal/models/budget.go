package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the length of one allocation window.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
)

// Valid reports whether p is a supported period.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetPeriodWeekly || p == BudgetPeriodMonthly
}

// Budget allocates Amount per Period between StartDate and EndDate, both
// inclusive. EndDate is derived from Repetitions at creation and never moves.
type Budget struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `json:"name"`
	Period      BudgetPeriod    `gorm:"not null" json:"period"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8);not null" json:"amount"`
	Repetitions int             `gorm:"not null;default:1" json:"repetitions"`
	StartDate   time.Time       `gorm:"not null" json:"start_date"`
	EndDate     time.Time       `gorm:"not null" json:"end_date"`
}
