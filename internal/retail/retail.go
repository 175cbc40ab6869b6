package retail

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CancellationMarker flags a reversed invoice. Cancellations are reported as
// separate invoices whose identifier carries the marker (e.g. "C489449").
const CancellationMarker = "C"

// Transaction is a single invoice line as read from the ledger.
// Nullable columns are pointers; a nil pointer means the value was missing.
type Transaction struct {
	Invoice     string
	StockCode   string
	Description *string
	Quantity    *int64
	Price       *decimal.Decimal
	InvoiceDate *time.Time
	CustomerID  *int64
	Country     string
}

// IsCancellation reports whether the invoice identifier carries the cancellation marker.
func (t Transaction) IsCancellation() bool {
	return strings.Contains(t.Invoice, CancellationMarker)
}

// Complete reports whether every field needed for aggregation is present.
func (t Transaction) Complete() bool {
	return t.Invoice != "" &&
		t.CustomerID != nil &&
		t.Description != nil &&
		t.Quantity != nil &&
		t.Price != nil &&
		t.InvoiceDate != nil
}

// LineItem is a cleaned transaction with its derived line total.
type LineItem struct {
	Invoice     string
	CustomerID  int64
	Description string
	Quantity    int64
	Price       decimal.Decimal
	InvoiceDate time.Time
	Total       decimal.Decimal
}

// NewLineItem builds a LineItem from a complete transaction.
// The caller must check Complete first.
func NewLineItem(t Transaction) LineItem {
	return LineItem{
		Invoice:     t.Invoice,
		CustomerID:  *t.CustomerID,
		Description: *t.Description,
		Quantity:    *t.Quantity,
		Price:       *t.Price,
		InvoiceDate: *t.InvoiceDate,
		Total:       t.Price.Mul(decimal.NewFromInt(*t.Quantity)),
	}
}
