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

// transactionSortColumns whitelists the sortable columns of the list endpoint.
var transactionSortColumns = map[string]string{
	"date":     "date",
	"amount":   "amount",
	"category": "category",
	"created":  "created_at",
}

// transactionService handles transaction-related business logic.
type transactionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db, now: time.Now}
}

// CreateTransaction records an income or expense entry. The category must
// belong to the enum of the transaction type. A zero date means today.
func (s *transactionService) CreateTransaction(
	userID string,
	transactionType models.TransactionType,
	category string,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if !transactionType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !models.IsValidCategory(transactionType, category) {
		return nil, apperrors.ErrInvalidCategory
	}

	if date.IsZero() {
		date = analytics.Today(s.now())
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        transactionType,
		Category:    category,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Date:        analytics.DateOf(date),
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's transactions.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order(page.OrderClause(transactionSortColumns, "date")).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", analytics.DateOf(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", analytics.DateOf(*f.ToDate))
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction edits description, amount, date or category. The type
// and owner of a transaction never change.
func (s *transactionService) UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Description != nil {
		transaction.Description = strings.TrimSpace(*update.Description)
		updates["description"] = transaction.Description
	}
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		transaction.Amount = *update.Amount
		updates["amount"] = transaction.Amount
	}
	if update.Date != nil {
		transaction.Date = analytics.DateOf(*update.Date)
		updates["date"] = transaction.Date
	}
	if update.Category != nil {
		if !models.IsValidCategory(transaction.Type, *update.Category) {
			return nil, apperrors.ErrInvalidCategory
		}
		transaction.Category = *update.Category
		updates["category"] = transaction.Category
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListInRange returns every transaction of one type dated within [from, to],
// oldest first. Nil bounds are open.
func (s *transactionService) ListInRange(userID string, transactionType models.TransactionType, from, to *time.Time) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ? AND type = ?", userID, transactionType)
	q = applyTransactionFilters(q, TransactionFilter{FromDate: from, ToDate: to})

	var transactions []models.Transaction
	if err := q.Order("date ASC").Order("created_at ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
