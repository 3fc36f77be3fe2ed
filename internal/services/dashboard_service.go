package services

import (
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

const maxTrendMonths = 24

// dashboardService serves the read-only analytics views.
type dashboardService struct {
	transactions TransactionServicer
	now          func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(transactionService TransactionServicer) DashboardServicer {
	return &dashboardService{transactions: transactionService, now: time.Now}
}

// loadBoth fetches the income and expense lists of [from, to] concurrently.
func (s *dashboardService) loadBoth(userID string, from, to *time.Time) (income, expense []models.Transaction, err error) {
	var g errgroup.Group
	g.Go(func() error {
		var err error
		income, err = s.transactions.ListInRange(userID, models.TransactionTypeIncome, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		expense, err = s.transactions.ListInRange(userID, models.TransactionTypeExpense, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return income, expense, nil
}

// GetSummary builds the current-month overview: totals, the largest single
// entries and categories, and the change against last month.
func (s *dashboardService) GetSummary(userID string) (*DashboardSummary, error) {
	today := analytics.Today(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := monthStart.AddDate(0, -1, 0)
	to := monthStart.AddDate(0, 1, -1)

	income, expense, err := s.loadBoth(userID, &from, &to)
	if err != nil {
		return nil, err
	}

	incomeChange := analytics.MonthOverMonth(income, today)
	expenseChange := analytics.MonthOverMonth(expense, today)

	return &DashboardSummary{
		Month:                  today.Format("2006-01"),
		TotalIncome:            incomeChange.Current,
		TotalExpense:           expenseChange.Current,
		Net:                    incomeChange.Current.Sub(expenseChange.Current),
		HighestIncome:          analytics.HighestTransaction(income, today),
		HighestExpense:         analytics.HighestTransaction(expense, today),
		HighestIncomeCategory:  analytics.HighestCategory(income, models.IncomeCategories, today),
		HighestExpenseCategory: analytics.HighestCategory(expense, models.ExpenseCategories, today),
		IncomeChange:           incomeChange,
		ExpenseChange:          expenseChange,
	}, nil
}

// GetCategoryDistribution totals one transaction type per category over
// [from, to] and attaches each category's share.
func (s *dashboardService) GetCategoryDistribution(userID string, transactionType models.TransactionType, from, to *time.Time) ([]analytics.CategoryTotal, error) {
	categories := models.CategoriesFor(transactionType)
	if categories == nil {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from")
	}

	txs, err := s.transactions.ListInRange(userID, transactionType, from, to)
	if err != nil {
		return nil, err
	}
	return analytics.Distribution(analytics.AggregateByCategory(txs, categories)), nil
}

// GetMonthlyTrend returns income and expense totals for the last months
// calendar months, including the current one.
func (s *dashboardService) GetMonthlyTrend(userID string, months int) (*MonthlyTrend, error) {
	if months < 1 || months > maxTrendMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 24")
	}

	today := analytics.Today(s.now())
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	income, expense, err := s.loadBoth(userID, &from, &today)
	if err != nil {
		return nil, err
	}

	return &MonthlyTrend{
		Income:  analytics.MonthlyTrend(income, today, months),
		Expense: analytics.MonthlyTrend(expense, today, months),
	}, nil
}
