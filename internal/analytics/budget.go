package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// Budget periods are approximated as fixed day counts; a month is always 30
// days here, independent of the calendar.
const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

// PeriodDays returns the length in days of one period, or 0 when p is unknown.
func PeriodDays(p models.BudgetPeriod) int {
	switch p {
	case models.BudgetPeriodWeekly:
		return daysPerWeek
	case models.BudgetPeriodMonthly:
		return daysPerMonth
	}
	return 0
}

// TotalBudget returns the money allocated over the budget's whole span,
// prorating partial periods. Unknown periods and inverted ranges yield zero.
func TotalBudget(b models.Budget) decimal.Decimal {
	totalDays := SpanDays(b.StartDate, b.EndDate)
	periodDays := PeriodDays(b.Period)
	if totalDays <= 0 || periodDays == 0 {
		return decimal.Zero
	}

	return b.Amount.
		Mul(decimal.NewFromInt(int64(totalDays))).
		Div(decimal.NewFromInt(int64(periodDays)))
}

// ExpenseWindowEnd is the last day counted by TotalExpenses: today for an
// active budget, the budget's end date otherwise.
func ExpenseWindowEnd(b models.Budget, status Status, today time.Time) time.Time {
	if status == StatusActive {
		return DateOf(today)
	}
	return DateOf(b.EndDate)
}

// TotalExpenses sums the expenses dated within [b.StartDate, ExpenseWindowEnd].
func TotalExpenses(b models.Budget, expenses []models.Transaction, status Status, today time.Time) decimal.Decimal {
	return sumInRange(expenses, b.StartDate, ExpenseWindowEnd(b, status, today))
}

func sumInRange(txs []models.Transaction, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range txs {
		if inRange(txs[i].Date, start, end) {
			total = total.Add(txs[i].Amount)
		}
	}
	return total
}
