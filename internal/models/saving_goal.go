package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingGoal tracks deposits towards TargetAmount. CurrentAmount only grows.
type SavingGoal struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalName      string          `gorm:"not null" json:"goal_name"`
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8);not null;default:0" json:"current_amount"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       time.Time       `gorm:"not null" json:"end_date"`
}

// Completed reports whether the target has been reached.
func (g *SavingGoal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}
