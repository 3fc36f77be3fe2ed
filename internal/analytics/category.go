package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// NoDataThisMonth labels sentinel results computed over an empty month.
const NoDataThisMonth = "No Data This Month"

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AggregateByCategory sums txs per category. The result lists every entry of
// categories in order, zero when unused. Categories outside the enum are
// folded into "Other", which is appended when the enum lacks it.
func AggregateByCategory(txs []models.Transaction, categories []string) []CategoryTotal {
	totals := make([]CategoryTotal, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		totals[i] = CategoryTotal{Category: c, Amount: decimal.Zero, Percentage: decimal.Zero}
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}

	for i := range txs {
		pos, ok := index[txs[i].Category]
		if !ok {
			pos, ok = index[models.CategoryOther]
			if !ok {
				totals = append(totals, CategoryTotal{Category: models.CategoryOther, Amount: decimal.Zero, Percentage: decimal.Zero})
				pos = len(totals) - 1
				index[models.CategoryOther] = pos
			}
		}
		totals[pos].Amount = totals[pos].Amount.Add(txs[i].Amount)
	}
	return totals
}

// Distribution fills in each bucket's share of the grand total, rounded to 2
// places. Shares are zero when the grand total is zero.
func Distribution(totals []CategoryTotal) []CategoryTotal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Amount)
	}

	out := make([]CategoryTotal, len(totals))
	for i, t := range totals {
		out[i] = CategoryTotal{
			Category:   t.Category,
			Amount:     t.Amount,
			Percentage: percentOf(t.Amount, sum),
		}
	}
	return out
}

// HighestCategory returns the category with the largest total among txs dated
// in today's calendar month. Categories are scanned in enum order and only a
// strictly greater amount replaces the current best, so the earliest wins ties.
func HighestCategory(txs []models.Transaction, categories []string, today time.Time) CategoryTotal {
	month := FilterMonth(txs, today)
	if len(month) == 0 {
		return CategoryTotal{Category: NoDataThisMonth, Amount: decimal.Zero, Percentage: decimal.Zero}
	}

	totals := AggregateByCategory(month, categories)
	best := totals[0]
	for _, t := range totals[1:] {
		if t.Amount.GreaterThan(best.Amount) {
			best = t
		}
	}
	return best
}
