package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// --- mock dashboard service ---

type mockDashboardService struct {
	getSummaryFn              func(userID string) (*services.DashboardSummary, error)
	getCategoryDistributionFn func(userID string, txType models.TransactionType, from, to *time.Time) ([]analytics.CategoryTotal, error)
	getMonthlyTrendFn         func(userID string, months int) (*services.MonthlyTrend, error)
}

func (m *mockDashboardService) GetSummary(userID string) (*services.DashboardSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID)
	}
	return &services.DashboardSummary{}, nil
}

func (m *mockDashboardService) GetCategoryDistribution(userID string, txType models.TransactionType, from, to *time.Time) ([]analytics.CategoryTotal, error) {
	if m.getCategoryDistributionFn != nil {
		return m.getCategoryDistributionFn(userID, txType, from, to)
	}
	return []analytics.CategoryTotal{}, nil
}

func (m *mockDashboardService) GetMonthlyTrend(userID string, months int) (*services.MonthlyTrend, error) {
	if m.getMonthlyTrendFn != nil {
		return m.getMonthlyTrendFn(userID, months)
	}
	return &services.MonthlyTrend{}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/dashboard/summary", handler.GetSummary)
	auth.GET("/dashboard/categories", handler.GetCategoryDistribution)
	auth.GET("/dashboard/trend", handler.GetMonthlyTrend)
	return r
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	t.Run("returns summary", func(t *testing.T) {
		svc := &mockDashboardService{
			getSummaryFn: func(_ string) (*services.DashboardSummary, error) {
				return &services.DashboardSummary{
					Month:          "2024-03",
					TotalExpense:   decimal.NewFromInt(80),
					HighestExpense: analytics.Extremal{Amount: decimal.Zero, Description: analytics.NoDataThisMonth},
				}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		summary := parseJSON(t, rec)["summary"].(map[string]interface{})
		if summary["month"] != "2024-03" {
			t.Errorf("expected month 2024-03, got %v", summary["month"])
		}
		highest := summary["highest_expense"].(map[string]interface{})
		if highest["description"] != analytics.NoDataThisMonth {
			t.Errorf("expected sentinel description, got %v", highest["description"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewDashboardHandler(&mockDashboardService{})
		r := gin.New()
		r.GET("/dashboard/summary", handler.GetSummary)

		rec := doRequest(r, "GET", "/dashboard/summary", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetCategoryDistribution(t *testing.T) {
	t.Run("defaults to expense", func(t *testing.T) {
		var gotType models.TransactionType
		svc := &mockDashboardService{
			getCategoryDistributionFn: func(_ string, txType models.TransactionType, from, to *time.Time) ([]analytics.CategoryTotal, error) {
				gotType = txType
				if from != nil || to != nil {
					t.Errorf("expected no date bounds, got %v %v", from, to)
				}
				return []analytics.CategoryTotal{{Category: "Rent", Amount: decimal.NewFromInt(900), Percentage: decimal.NewFromInt(100)}}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotType != models.TransactionTypeExpense {
			t.Errorf("expected expense, got %s", gotType)
		}
		result := parseJSON(t, rec)
		cats := result["categories"].([]interface{})
		if len(cats) != 1 {
			t.Fatalf("expected 1 category, got %d", len(cats))
		}
	})

	t.Run("passes income type and dates", func(t *testing.T) {
		var from, to *time.Time
		svc := &mockDashboardService{
			getCategoryDistributionFn: func(_ string, _ models.TransactionType, f, tt *time.Time) ([]analytics.CategoryTotal, error) {
				from, to = f, tt
				return nil, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/categories?type=income&from_date=2024-01-01&to_date=2024-03-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if from == nil || to == nil || to.Month() != time.March {
			t.Errorf("expected both bounds, got %v %v", from, to)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard/categories?type=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TRANSACTION_TYPE")
	})
}

func TestDashboardHandler_GetMonthlyTrend(t *testing.T) {
	t.Run("defaults to six months", func(t *testing.T) {
		var got int
		svc := &mockDashboardService{
			getMonthlyTrendFn: func(_ string, months int) (*services.MonthlyTrend, error) {
				got = months
				return &services.MonthlyTrend{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/trend", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != 6 {
			t.Errorf("expected 6 months, got %d", got)
		}
	})

	t.Run("propagates range error", func(t *testing.T) {
		svc := &mockDashboardService{
			getMonthlyTrendFn: func(_ string, _ int) (*services.MonthlyTrend, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 24")
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/trend?months=99", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on non-numeric months", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard/trend?months=six", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
