package rfm

import (
	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

// Clean keeps complete, non-cancelled transactions and attaches their line totals.
// Dropped records are not errors.
func Clean(txs []retail.Transaction) []retail.LineItem {
	items := make([]retail.LineItem, 0, len(txs))

	for _, t := range txs {
		if !t.Complete() || t.IsCancellation() {
			continue
		}

		items = append(items, retail.NewLineItem(t))
	}

	return items
}
