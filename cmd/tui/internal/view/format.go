package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const runTimeout = 2 * time.Minute

// FormatMoney renders a monetary value with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatStat renders a summary statistic with one decimal.
func FormatStat(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// RunCtx returns a context bounding a single segmentation run.
func RunCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), runTimeout)
}
