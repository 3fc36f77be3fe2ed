package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// CategoryHandler serves the fixed category sets. Categories are not user
// editable, so the handler has no service dependency.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoriesResponse lists the ordered categories per transaction type.
type CategoriesResponse struct {
	Income  []string `json:"income,omitempty"`
	Expense []string `json:"expense,omitempty"`
}

// GetCategories returns the category enums
// @Summary     List categories
// @Description List the ordered income and expense categories. Pass type to get one set only.
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "income or expense"
// @Success     200 {object} CategoriesResponse "Categories"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var resp CategoriesResponse
	switch t := models.TransactionType(c.Query("type")); t {
	case "":
		resp.Income = models.IncomeCategories
		resp.Expense = models.ExpenseCategories
	case models.TransactionTypeIncome:
		resp.Income = models.IncomeCategories
	case models.TransactionTypeExpense:
		resp.Expense = models.ExpenseCategories
	default:
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}
	c.JSON(http.StatusOK, resp)
}
