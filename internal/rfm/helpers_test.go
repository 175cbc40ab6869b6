package rfm_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

var asOf = time.Date(2011, 12, 11, 0, 0, 0, 0, time.UTC)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func line(invoice string, customer int64, qty int64, price string, at time.Time) retail.Transaction {
	desc := "WHITE HANGING HEART T-LIGHT HOLDER"
	p := decimal.RequireFromString(price)

	return retail.Transaction{
		Invoice:     invoice,
		StockCode:   "85123A",
		Description: &desc,
		Quantity:    &qty,
		Price:       &p,
		InvoiceDate: &at,
		CustomerID:  &customer,
		Country:     "United Kingdom",
	}
}

// ledger builds ten customers whose recency, frequency and monetary all
// increase with the customer index, plus records the cleaner must drop and a
// customer whose returns outweigh purchases.
func ledger() []retail.Transaction {
	var txs []retail.Transaction

	for i := 0; i < 10; i++ {
		customer := int64(12346 + i)
		last := asOf.AddDate(0, 0, -10*(10-i))

		for n := 0; n <= i; n++ {
			invoice := fmt.Sprintf("5%02d%03d", i, n)
			txs = append(txs, line(invoice, customer, 2, fmt.Sprintf("%d.50", i+1), last.AddDate(0, 0, -n)))
		}
	}

	cancelled := line("C100123", 12346, 100, "99.00", asOf.AddDate(0, 0, -1))
	txs = append(txs, cancelled)

	anonymous := line("536999", 0, 5, "1.00", asOf.AddDate(0, 0, -3))
	anonymous.CustomerID = nil
	txs = append(txs, anonymous)

	txs = append(txs,
		line("537000", 99999, 1, "3.00", asOf.AddDate(0, 0, -5)),
		line("537001", 99999, -4, "3.00", asOf.AddDate(0, 0, -4)),
	)

	return txs
}
