package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// Classification is the over/under budget verdict of a projection.
type Classification string

const (
	ClassificationUnder Classification = "under"
	ClassificationOver  Classification = "over"
)

var hundred = decimal.NewFromInt(100)

// Projection extrapolates the spending observed so far over the full span.
type Projection struct {
	TotalExpenses        decimal.Decimal `json:"total_expenses"`
	TotalBudget          decimal.Decimal `json:"total_budget"`
	ElapsedDays          int             `json:"elapsed_days"`
	SpanDays             int             `json:"span_days"`
	AverageDailyExpense  decimal.Decimal `json:"average_daily_expense"`
	ExpectedDailyAverage decimal.Decimal `json:"expected_daily_average"`
	ProjectedExpense     decimal.Decimal `json:"projected_expense"`
	SpentPercentage      decimal.Decimal `json:"spent_percentage"`
	AveragePercentage    decimal.Decimal `json:"average_percentage"`
	ProjectedPercentage  decimal.Decimal `json:"projected_percentage"`
	Classification       Classification  `json:"classification"`
}

// Project computes daily averages and a straight-line projection of
// totalExpenses, observed over elapsedDays, across spanDays. Percentages are
// relative to the budget counterpart of each figure and rounded to 2 places.
func Project(totalExpenses, totalBudget decimal.Decimal, elapsedDays, spanDays int) Projection {
	p := Projection{
		TotalExpenses:        totalExpenses,
		TotalBudget:          totalBudget,
		ElapsedDays:          elapsedDays,
		SpanDays:             spanDays,
		AverageDailyExpense:  decimal.Zero,
		ExpectedDailyAverage: decimal.Zero,
		ProjectedExpense:     decimal.Zero,
	}

	if elapsedDays > 0 {
		elapsed := decimal.NewFromInt(int64(elapsedDays))
		p.AverageDailyExpense = totalExpenses.Div(elapsed)
		if spanDays > 0 {
			p.ProjectedExpense = totalExpenses.Mul(decimal.NewFromInt(int64(spanDays))).Div(elapsed)
		}
	}
	if spanDays > 0 {
		p.ExpectedDailyAverage = totalBudget.Div(decimal.NewFromInt(int64(spanDays)))
	}

	p.SpentPercentage = percentOf(totalExpenses, totalBudget)
	p.AveragePercentage = percentOf(p.AverageDailyExpense, p.ExpectedDailyAverage)
	p.ProjectedPercentage = percentOf(p.ProjectedExpense, totalBudget)
	p.Classification = classify(totalExpenses, totalBudget, elapsedDays, spanDays)
	return p
}

// ElapsedDays is the number of budget days observed so far: days since start
// including today when active, the full span when expired, zero when upcoming.
func ElapsedDays(b models.Budget, status Status, today time.Time) int {
	switch status {
	case StatusActive:
		return DaysBetween(b.StartDate, today) + 1
	case StatusExpired:
		return SpanDays(b.StartDate, b.EndDate)
	}
	return 0
}

// classify reports whether projected spend reaches the budget. With
// projected = totalExpenses × span / elapsed, the test is done as
// totalExpenses × span against totalBudget × elapsed, with no division.
// A zero budget is only "under" when nothing is projected.
func classify(totalExpenses, totalBudget decimal.Decimal, elapsedDays, spanDays int) Classification {
	if elapsedDays <= 0 || spanDays <= 0 || !totalExpenses.IsPositive() {
		return ClassificationUnder
	}
	scaledSpent := totalExpenses.Mul(decimal.NewFromInt(int64(spanDays)))
	scaledBudget := totalBudget.Mul(decimal.NewFromInt(int64(elapsedDays)))
	if scaledSpent.LessThan(scaledBudget) {
		return ClassificationUnder
	}
	return ClassificationOver
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
