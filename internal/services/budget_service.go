package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

var budgetSortColumns = map[string]string{
	"start_date": "start_date",
	"end_date":   "end_date",
	"amount":     "amount",
	"name":       "name",
}

// budgetService handles budget-related business logic.
type budgetService struct {
	db           *gorm.DB
	transactions TransactionServicer
	now          func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, transactionService TransactionServicer) BudgetServicer {
	return &budgetService{db: db, transactions: transactionService, now: time.Now}
}

// BudgetEndDate returns the last day covered by repetitions consecutive
// periods starting at start. A monthly period is 30 days, the same month
// length TotalBudget prorates by.
func BudgetEndDate(start time.Time, period models.BudgetPeriod, repetitions int) time.Time {
	start = analytics.DateOf(start)
	return start.AddDate(0, 0, analytics.PeriodDays(period)*repetitions-1)
}

// CreateBudget creates a budget of repetitions periods starting at startDate.
// The end date is derived here and never changes afterwards.
func (s *budgetService) CreateBudget(
	userID, name string,
	period models.BudgetPeriod,
	amount decimal.Decimal,
	repetitions int,
	startDate time.Time,
) (*models.Budget, error) {
	if !period.Valid() {
		return nil, apperrors.ErrInvalidPeriod
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if repetitions < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "repetitions must be at least 1")
	}
	if startDate.IsZero() {
		startDate = analytics.Today(s.now())
	}

	start := analytics.DateOf(startDate)
	end := BudgetEndDate(start, period, repetitions)
	if end.Before(start) {
		return nil, apperrors.ErrInvalidBudgetRange
	}

	budget := &models.Budget{
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Period:      period,
		Amount:      amount,
		Repetitions: repetitions,
		StartDate:   start,
		EndDate:     end,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetUserBudgets returns a paginated list of budgets for the user with optional filters.
func (s *budgetService) GetUserBudgets(
	userID string,
	page pagination.PageRequest,
	status *analytics.Status,
	period *models.BudgetPeriod,
) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if status != nil {
		base = whereStatus(base, *status, analytics.Today(s.now()))
	}
	if period != nil {
		base = base.Where("period = ?", *period)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Order(page.OrderClause(budgetSortColumns, "start_date")).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// whereStatus restricts a query over a table with start_date and end_date
// columns to rows whose computed status matches.
func whereStatus(q *gorm.DB, status analytics.Status, today time.Time) *gorm.DB {
	switch status {
	case analytics.StatusActive:
		return q.Where("start_date <= ? AND end_date >= ?", today, today)
	case analytics.StatusExpired:
		return q.Where("end_date < ?", today)
	case analytics.StatusUpcoming:
		return q.Where("start_date > ?", today)
	}
	return q
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget renames a budget or changes its per-period amount. Period and
// dates are fixed at creation.
func (s *budgetService) UpdateBudget(userID, budgetID, name string, amount *decimal.Decimal) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" {
		budget.Name = name
		updates["name"] = name
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		budget.Amount = *amount
		updates["amount"] = *amount
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetReport loads the expenses dated within the budget and runs the
// analytics engine over them as of today.
func (s *budgetService) GetBudgetReport(userID, budgetID string) (*analytics.BudgetReport, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.transactions.ListInRange(userID, models.TransactionTypeExpense, &budget.StartDate, &budget.EndDate)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildBudgetReport(*budget, expenses, analytics.Today(s.now()))
	return &report, nil
}
