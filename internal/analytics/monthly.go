package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// Extremal is the single largest transaction of a month.
type Extremal struct {
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category,omitempty"`
	Date          *time.Time      `json:"date,omitempty"`
}

// MonthlyChange compares the current calendar month with the previous one.
type MonthlyChange struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	AmountChange  decimal.Decimal `json:"amount_change"`
	PercentChange decimal.Decimal `json:"percent_change"`
	IsIncrease    bool            `json:"is_increase"`
	IsEqual       bool            `json:"is_equal"`
}

// FilterMonth keeps the transactions dated in the same calendar month and
// year as ref, preserving order.
func FilterMonth(txs []models.Transaction, ref time.Time) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if sameMonth(txs[i].Date, ref) {
			out = append(out, txs[i])
		}
	}
	return out
}

// HighestTransaction finds the largest transaction of today's month. The
// first transaction wins ties. An empty month yields a zero-amount sentinel
// described as NoDataThisMonth.
func HighestTransaction(txs []models.Transaction, today time.Time) Extremal {
	month := FilterMonth(txs, today)
	if len(month) == 0 {
		return Extremal{Amount: decimal.Zero, Description: NoDataThisMonth}
	}

	best := month[0]
	for _, tx := range month[1:] {
		if tx.Amount.GreaterThan(best.Amount) {
			best = tx
		}
	}

	date := DateOf(best.Date)
	return Extremal{
		TransactionID: best.ID,
		Amount:        best.Amount,
		Description:   best.Description,
		Category:      best.Category,
		Date:          &date,
	}
}

// MonthOverMonth sums today's month and the month before it (January rolls
// back to December of the previous year) and reports the difference.
func MonthOverMonth(txs []models.Transaction, today time.Time) MonthlyChange {
	current := monthStart(today)
	previous := current.AddDate(0, -1, 0)

	cur := sumAll(FilterMonth(txs, current))
	prev := sumAll(FilterMonth(txs, previous))
	change := cur.Sub(prev)

	return MonthlyChange{
		Current:       cur,
		Previous:      prev,
		AmountChange:  change,
		PercentChange: percentOf(change, prev),
		IsIncrease:    change.IsPositive(),
		IsEqual:       change.IsZero(),
	}
}

func sumAll(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range txs {
		total = total.Add(txs[i].Amount)
	}
	return total
}
