package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	return testutil.Date(t, s)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(t *testing.T, date, amount, category string) models.Transaction {
	t.Helper()
	return models.Transaction{
		Type:        models.TransactionTypeExpense,
		Description: category + " on " + date,
		Amount:      dec(amount),
		Date:        day(t, date),
		Category:    category,
	}
}

func weeklyBudget(t *testing.T, amount, start, end string) models.Budget {
	t.Helper()
	return models.Budget{
		Base:      models.Base{ID: "budget-1"},
		Period:    models.BudgetPeriodWeekly,
		Amount:    dec(amount),
		StartDate: day(t, start),
		EndDate:   day(t, end),
	}
}

func assertDate(t *testing.T, got time.Time, want string) {
	t.Helper()
	if !got.Equal(day(t, want)) {
		t.Errorf("expected date %s, got %s", want, got.Format("2006-01-02"))
	}
}
