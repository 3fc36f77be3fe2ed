package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// GoalProgress summarises how far a saving goal has come.
type GoalProgress struct {
	GoalID              string          `json:"goal_id"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	CurrentAmount       decimal.Decimal `json:"current_amount"`
	Remaining           decimal.Decimal `json:"remaining"`
	Percentage          decimal.Decimal `json:"percentage"`
	Completed           bool            `json:"completed"`
	Status              Status          `json:"status"`
	DaysRemaining       int             `json:"days_remaining"`
	RequiredDailySaving decimal.Decimal `json:"required_daily_saving"`
}

// BuildGoalProgress derives the progress of g as of today. DaysRemaining
// includes today for an active goal and covers the whole span for an
// upcoming one.
func BuildGoalProgress(g models.SavingGoal, today time.Time) GoalProgress {
	status := StatusOf(g.StartDate, g.EndDate, today)

	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	var daysRemaining int
	switch status {
	case StatusActive:
		daysRemaining = DaysBetween(today, g.EndDate) + 1
	case StatusUpcoming:
		daysRemaining = SpanDays(g.StartDate, g.EndDate)
	}

	required := decimal.Zero
	if daysRemaining > 0 && remaining.IsPositive() {
		required = remaining.Div(decimal.NewFromInt(int64(daysRemaining))).Round(2)
	}

	return GoalProgress{
		GoalID:              g.ID,
		TargetAmount:        g.TargetAmount,
		CurrentAmount:       g.CurrentAmount,
		Remaining:           remaining,
		Percentage:          percentOf(g.CurrentAmount, g.TargetAmount),
		Completed:           g.Completed(),
		Status:              status,
		DaysRemaining:       daysRemaining,
		RequiredDailySaving: required,
	}
}
