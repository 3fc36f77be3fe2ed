package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// Chart colors for breakdown buckets.
const (
	ColorOverBudget   = "#ef4444"
	ColorWithinBudget = "#22c55e"
)

// PeriodBucket is one bar of the budget chart.
type PeriodBucket struct {
	Label      string          `json:"label"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Total      decimal.Decimal `json:"total"`
	Allocated  decimal.Decimal `json:"allocated"`
	OverBudget bool            `json:"over_budget"`
	Color      string          `json:"color"`
}

// PeriodBreakdown splits the budget span into consecutive 7- or 30-day
// buckets starting at StartDate and sums the expenses of each. The last
// bucket is clipped to EndDate. A bucket is over budget when its total
// exceeds the flat per-period amount.
func PeriodBreakdown(b models.Budget, expenses []models.Transaction) []PeriodBucket {
	size := PeriodDays(b.Period)
	totalDays := SpanDays(b.StartDate, b.EndDate)
	if size == 0 || totalDays <= 0 {
		return []PeriodBucket{}
	}

	label := "Week"
	if b.Period == models.BudgetPeriodMonthly {
		label = "Month"
	}

	count := (totalDays + size - 1) / size
	start := DateOf(b.StartDate)
	end := DateOf(b.EndDate)

	buckets := make([]PeriodBucket, 0, count)
	for i := 0; i < count; i++ {
		bucketStart := start.AddDate(0, 0, i*size)
		bucketEnd := bucketStart.AddDate(0, 0, size-1)
		if bucketEnd.After(end) {
			bucketEnd = end
		}

		total := sumInRange(expenses, bucketStart, bucketEnd)
		over := total.GreaterThan(b.Amount)
		color := ColorWithinBudget
		if over {
			color = ColorOverBudget
		}

		buckets = append(buckets, PeriodBucket{
			Label:      fmt.Sprintf("%s %d", label, i+1),
			StartDate:  bucketStart,
			EndDate:    bucketEnd,
			Total:      total,
			Allocated:  b.Amount,
			OverBudget: over,
			Color:      color,
		})
	}
	return buckets
}
