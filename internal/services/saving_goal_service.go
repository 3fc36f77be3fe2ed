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

var goalSortColumns = map[string]string{
	"end_date":      "end_date",
	"start_date":    "start_date",
	"target_amount": "target_amount",
	"goal_name":     "goal_name",
}

// savingGoalService handles saving goal business logic.
type savingGoalService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSavingGoalService creates a new SavingGoalServicer.
func NewSavingGoalService(db *gorm.DB) SavingGoalServicer {
	return &savingGoalService{db: db, now: time.Now}
}

// CreateGoal creates a goal with nothing saved yet.
func (s *savingGoalService) CreateGoal(userID, name string, target decimal.Decimal, startDate, endDate time.Time) (*models.SavingGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if !target.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if startDate.IsZero() {
		startDate = analytics.Today(s.now())
	}

	start := analytics.DateOf(startDate)
	end := analytics.DateOf(endDate)
	if end.Before(start) {
		return nil, apperrors.ErrInvalidGoalRange
	}

	goal := &models.SavingGoal{
		UserID:        userID,
		GoalName:      name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		StartDate:     start,
		EndDate:       end,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns a paginated list of the user's goals, optionally
// filtered by computed status and completion.
func (s *savingGoalService) GetUserGoals(
	userID string,
	page pagination.PageRequest,
	status *analytics.Status,
	completed *bool,
) (*pagination.PageResponse[models.SavingGoal], error) {
	page.Defaults()

	base := s.db.Model(&models.SavingGoal{}).Where("user_id = ?", userID)
	if status != nil {
		base = whereStatus(base, *status, analytics.Today(s.now()))
	}
	if completed != nil {
		if *completed {
			base = base.Where("current_amount >= target_amount")
		} else {
			base = base.Where("current_amount < target_amount")
		}
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.SavingGoal
	if err := base.Scopes(pagination.Paginate(page)).
		Order(page.OrderClause(goalSortColumns, "end_date")).
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *savingGoalService) GetGoalByID(userID, goalID string) (*models.SavingGoal, error) {
	var goal models.SavingGoal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal changes the name, target or end date of a goal. The saved
// amount is only changed through Deposit.
func (s *savingGoalService) UpdateGoal(userID, goalID, name string, target *decimal.Decimal, endDate *time.Time) (*models.SavingGoal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" {
		goal.GoalName = name
		updates["goal_name"] = name
	}
	if target != nil {
		if !target.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		goal.TargetAmount = *target
		updates["target_amount"] = *target
	}
	if endDate != nil {
		end := analytics.DateOf(*endDate)
		if end.Before(goal.StartDate) {
			return nil, apperrors.ErrInvalidGoalRange
		}
		goal.EndDate = end
		updates["end_date"] = end
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return goal, nil
}

// Deposit adds amount to the goal's saved total. The increment runs in SQL
// so concurrent deposits are not lost.
func (s *savingGoalService) Deposit(userID, goalID string, amount decimal.Decimal) (*models.SavingGoal, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	var goal *models.SavingGoal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SavingGoal{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Update("current_amount", gorm.Expr("current_amount + ?", amount))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrGoalNotFound
		}

		var reloaded models.SavingGoal
		if err := tx.Where("id = ?", goalID).First(&reloaded).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		goal = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *savingGoalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetGoalProgress reports the goal's progress as of today.
func (s *savingGoalService) GetGoalProgress(userID, goalID string) (*analytics.GoalProgress, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	progress := analytics.BuildGoalProgress(*goal, analytics.Today(s.now()))
	return &progress, nil
}
