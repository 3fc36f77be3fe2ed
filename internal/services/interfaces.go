package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/analytics"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	Category  *string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// TransactionUpdate lists the editable fields of a transaction. Nil fields
// are left untouched.
type TransactionUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Category    *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, transactionType models.TransactionType, category string, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	ListInRange(userID string, transactionType models.TransactionType, from, to *time.Time) ([]models.Transaction, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, name string, period models.BudgetPeriod, amount decimal.Decimal, repetitions int, startDate time.Time) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, status *analytics.Status, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID, name string, amount *decimal.Decimal) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetReport(userID, budgetID string) (*analytics.BudgetReport, error)
}

// SavingGoalServicer defines the contract for saving goal business logic.
type SavingGoalServicer interface {
	CreateGoal(userID, name string, target decimal.Decimal, startDate, endDate time.Time) (*models.SavingGoal, error)
	GetUserGoals(userID string, page pagination.PageRequest, status *analytics.Status, completed *bool) (*pagination.PageResponse[models.SavingGoal], error)
	GetGoalByID(userID, goalID string) (*models.SavingGoal, error)
	UpdateGoal(userID, goalID, name string, target *decimal.Decimal, endDate *time.Time) (*models.SavingGoal, error)
	Deposit(userID, goalID string, amount decimal.Decimal) (*models.SavingGoal, error)
	DeleteGoal(userID, goalID string) error
	GetGoalProgress(userID, goalID string) (*analytics.GoalProgress, error)
}

// DashboardSummary is the month-at-a-glance view of a user's finances.
type DashboardSummary struct {
	Month                  string                  `json:"month"`
	TotalIncome            decimal.Decimal         `json:"total_income"`
	TotalExpense           decimal.Decimal         `json:"total_expense"`
	Net                    decimal.Decimal         `json:"net"`
	HighestIncome          analytics.Extremal      `json:"highest_income"`
	HighestExpense         analytics.Extremal      `json:"highest_expense"`
	HighestIncomeCategory  analytics.CategoryTotal `json:"highest_income_category"`
	HighestExpenseCategory analytics.CategoryTotal `json:"highest_expense_category"`
	IncomeChange           analytics.MonthlyChange `json:"income_change"`
	ExpenseChange          analytics.MonthlyChange `json:"expense_change"`
}

// MonthlyTrend holds aligned income and expense series.
type MonthlyTrend struct {
	Income  []analytics.MonthTotal `json:"income"`
	Expense []analytics.MonthTotal `json:"expense"`
}

// DashboardServicer defines the contract for the analytics dashboard.
type DashboardServicer interface {
	GetSummary(userID string) (*DashboardSummary, error)
	GetCategoryDistribution(userID string, transactionType models.TransactionType, from, to *time.Time) ([]analytics.CategoryTotal, error)
	GetMonthlyTrend(userID string, months int) (*MonthlyTrend, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
