package rfm

import "errors"

var (
	// ErrNoCustomers is returned when nothing is left to score after cleaning and aggregation.
	ErrNoCustomers = errors.New("no customers to score")

	// ErrDegenerateBins is returned when a metric does not spread enough to form distinct quantile edges.
	ErrDegenerateBins = errors.New("quantile bin edges are not unique")

	// ErrFutureInvoice is returned when a customer's latest invoice is after the as-of date.
	ErrFutureInvoice = errors.New("invoice date after as-of date")

	// ErrScoreOutOfRange is returned when a score outside 1..5 reaches the segmenter.
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrMissingAsOf is returned when the pipeline is started without a reference date.
	ErrMissingAsOf = errors.New("as-of date is required")
)
