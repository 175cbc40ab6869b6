package rfm

import (
	"fmt"
)

// Bins is the number of score levels per metric.
const Bins = 5

// Score converts each customer's metrics to 1..Bins scores.
// Lower recency scores higher. Frequency is ranked first so that ties do not
// collapse the quantile edges.
func Score(ms []Metrics) ([]Scored, error) {
	if len(ms) == 0 {
		return nil, ErrNoCustomers
	}

	recency := make([]float64, len(ms))
	frequency := make([]int, len(ms))
	monetary := make([]float64, len(ms))

	for i, m := range ms {
		recency[i] = float64(m.Recency)
		frequency[i] = m.Frequency
		monetary[i] = m.Monetary.InexactFloat64()
	}

	recencyBins, err := QuantileBins(recency, Bins)
	if err != nil {
		return nil, fmt.Errorf("scoring recency: %w", err)
	}

	frequencyBins, err := QuantileBins(rankFirst(frequency), Bins)
	if err != nil {
		return nil, fmt.Errorf("scoring frequency: %w", err)
	}

	monetaryBins, err := QuantileBins(monetary, Bins)
	if err != nil {
		return nil, fmt.Errorf("scoring monetary: %w", err)
	}

	out := make([]Scored, len(ms))
	for i, m := range ms {
		out[i] = Scored{
			Metrics:        m,
			RecencyScore:   Bins - recencyBins[i],
			FrequencyScore: frequencyBins[i] + 1,
			MonetaryScore:  monetaryBins[i] + 1,
		}
	}

	return out, nil
}
