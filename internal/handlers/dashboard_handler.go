package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

const defaultTrendMonths = 6

// DashboardHandler serves the analytics dashboard.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles the monthly summary
// @Summary     Dashboard summary
// @Description Current month totals, largest income and expense, top categories and month-over-month change
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetCategoryDistribution handles per-category totals
// @Summary     Category distribution
// @Description Totals and shares per category for one transaction type, optionally within a date range
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "income or expense (default expense)"
// @Param       from_date query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {array}  analytics.CategoryTotal "Category totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/categories [get]
func (h *DashboardHandler) GetCategoryDistribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txType := models.TransactionType(c.DefaultQuery("type", string(models.TransactionTypeExpense)))
	if !txType.Valid() {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}

	from, err := parseOptionalDate(c, "from_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseOptionalDate(c, "to_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.dashboardService.GetCategoryDistribution(userID, txType, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"type": txType, "categories": totals})
}

// GetMonthlyTrend handles the income/expense trend
// @Summary     Monthly trend
// @Description Income and expense totals for each of the last N calendar months
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months, 1 to 24 (default 6)"
// @Success     200 {object} services.MonthlyTrend "Trend"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/trend [get]
func (h *DashboardHandler) GetMonthlyTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := defaultTrendMonths
	if v := c.Query("months"); v != "" {
		n, parseErr := strconv.Atoi(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid months"))
			return
		}
		months = n
	}

	trend, err := h.dashboardService.GetMonthlyTrend(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
