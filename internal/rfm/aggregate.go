package rfm

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

const day = 24 * time.Hour

// Aggregate reduces line items to one Metrics per customer, relative to asOf.
// Customers whose net spend is not positive are dropped. The result is ordered
// by customer id.
func Aggregate(items []retail.LineItem, asOf time.Time) ([]Metrics, error) {
	all, err := groupByCustomer(items, asOf)
	if err != nil {
		return nil, err
	}

	return positiveMonetary(all), nil
}

type customerAcc struct {
	last     time.Time
	invoices map[string]struct{}
	monetary decimal.Decimal
}

func groupByCustomer(items []retail.LineItem, asOf time.Time) ([]Metrics, error) {
	if asOf.IsZero() {
		return nil, ErrMissingAsOf
	}

	accs := make(map[int64]*customerAcc)

	for _, it := range items {
		acc, ok := accs[it.CustomerID]
		if !ok {
			acc = &customerAcc{
				last:     it.InvoiceDate,
				invoices: make(map[string]struct{}),
				monetary: decimal.Zero,
			}
			accs[it.CustomerID] = acc
		}

		if it.InvoiceDate.After(acc.last) {
			acc.last = it.InvoiceDate
		}

		acc.invoices[it.Invoice] = struct{}{}
		acc.monetary = acc.monetary.Add(it.Total)
	}

	ids := make([]int64, 0, len(accs))
	for id := range accs {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	out := make([]Metrics, 0, len(ids))

	for _, id := range ids {
		acc := accs[id]
		// Customers dropped for non-positive spend never reach scoring.
		if acc.last.After(asOf) && acc.monetary.IsPositive() {
			return nil, fmt.Errorf("customer %d: latest invoice %s is after %s: %w",
				id, acc.last.Format(time.DateTime), asOf.Format(time.DateTime), ErrFutureInvoice)
		}

		out = append(out, Metrics{
			CustomerID: id,
			Recency:    int(asOf.Sub(acc.last) / day),
			Frequency:  len(acc.invoices),
			Monetary:   acc.monetary,
		})
	}

	return out, nil
}

func positiveMonetary(ms []Metrics) []Metrics {
	out := make([]Metrics, 0, len(ms))

	for _, m := range ms {
		if !m.Monetary.IsPositive() {
			continue
		}

		out = append(out, m)
	}

	return out
}
