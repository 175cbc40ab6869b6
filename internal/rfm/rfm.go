package rfm

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metrics holds the three behavioural scalars of one customer.
type Metrics struct {
	CustomerID int64
	Recency    int // days between the latest invoice and the as-of date
	Frequency  int // distinct invoices
	Monetary   decimal.Decimal
}

// Scored is Metrics plus its quintile scores.
type Scored struct {
	Metrics
	RecencyScore   int
	FrequencyScore int
	MonetaryScore  int
}

// Code is the two-digit recency/frequency score used for segmentation.
func (s Scored) Code() string {
	return fmt.Sprintf("%d%d", s.RecencyScore, s.FrequencyScore)
}

// Customer is a scored customer with its segment.
type Customer struct {
	Scored
	Segment Segment
}

// Result is the outcome of a single pipeline run.
type Result struct {
	RunID     uuid.UUID
	Customers []Customer
	Stats     Stats
}

// Stats counts records at each stage of a run.
type Stats struct {
	Transactions int
	LineItems    int
	Aggregated   int
	NonPositive  int
	Scored       int
}
