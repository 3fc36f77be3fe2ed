package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// BudgetReport is everything the budget detail screen renders.
type BudgetReport struct {
	BudgetID      string          `json:"budget_id"`
	Status        Status          `json:"status"`
	TotalBudget   decimal.Decimal `json:"total_budget"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Remaining     decimal.Decimal `json:"remaining"`
	Projection    Projection      `json:"projection"`
	Breakdown     []PeriodBucket  `json:"breakdown"`
}

// BuildBudgetReport combines the budget total, the expense total for the
// window appropriate to the budget's status, the projection and the period
// breakdown.
func BuildBudgetReport(b models.Budget, expenses []models.Transaction, today time.Time) BudgetReport {
	status := StatusOf(b.StartDate, b.EndDate, today)
	total := TotalBudget(b)
	spent := TotalExpenses(b, expenses, status, today)

	return BudgetReport{
		BudgetID:      b.ID,
		Status:        status,
		TotalBudget:   total,
		TotalExpenses: spent,
		Remaining:     total.Sub(spent),
		Projection:    Project(spent, total, ElapsedDays(b, status, today), SpanDays(b.StartDate, b.EndDate)),
		Breakdown:     PeriodBreakdown(b, expenses),
	}
}
