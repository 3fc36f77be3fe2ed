package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// MonthTotal is one point of a monthly trend line.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyTrend sums txs per calendar month for the months calendar months
// ending with today's, oldest first.
func MonthlyTrend(txs []models.Transaction, today time.Time, months int) []MonthTotal {
	if months <= 0 {
		return []MonthTotal{}
	}

	first := monthStart(today).AddDate(0, -(months - 1), 0)
	out := make([]MonthTotal, months)
	for i := range out {
		m := first.AddDate(0, i, 0)
		out[i] = MonthTotal{Month: m.Format("2006-01"), Total: decimal.Zero}
	}

	for i := range txs {
		d := monthStart(txs[i].Date)
		if d.Before(first) {
			continue
		}
		offset := (d.Year()-first.Year())*12 + int(d.Month()) - int(first.Month())
		if offset < months {
			out[offset].Total = out[offset].Total.Add(txs[i].Amount)
		}
	}
	return out
}
