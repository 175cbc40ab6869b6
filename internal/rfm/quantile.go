package rfm

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// QuantileBins assigns every value to one of bins equal-frequency bins and
// returns the 0-based bin index per value, in input order.
//
// Bin edges are the k/bins quantiles of values with linear interpolation
// between order statistics. Bins are right-closed and the lowest edge belongs
// to the first bin. Edges that are not strictly increasing yield
// ErrDegenerateBins; bins may still be empty when values have fewer distinct
// points than bins but interpolation keeps the edges apart.
func QuantileBins(values []float64, bins int) ([]int, error) {
	if bins < 1 {
		return nil, fmt.Errorf("bin count must be positive, got %d", bins)
	}

	if len(values) == 0 {
		return nil, ErrNoCustomers
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	edges := binEdges(sorted, bins)
	for k := 1; k < len(edges); k++ {
		if edges[k] <= edges[k-1] {
			return nil, fmt.Errorf("%w: %d distinct values among %d cannot form %d bins",
				ErrDegenerateBins, countDistinct(sorted), len(sorted), bins)
		}
	}

	out := make([]int, len(values))

	for i, v := range values {
		// First upper edge >= v. The last edge is the maximum, so idx < bins.
		idx, _ := slices.BinarySearch(edges[1:], v)
		out[i] = idx
	}

	return out, nil
}

func binEdges(sorted []float64, bins int) []float64 {
	step := 1.0 / float64(bins)
	edges := make([]float64, bins+1)

	for k := 0; k < bins; k++ {
		edges[k] = quantile(sorted, float64(k)*step)
	}

	edges[bins] = sorted[len(sorted)-1]

	return edges
}

// quantile computes the q-th quantile of sorted data using linear interpolation.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := math.Floor(pos)
	i := int(lo)

	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	return lerp(sorted[i], sorted[i+1], pos-lo)
}

// lerp interpolates from whichever end is nearer to t to limit rounding drift.
func lerp(a, b, t float64) float64 {
	diff := b - a
	if t >= 0.5 {
		return b - diff*(1-t)
	}

	return a + diff*t
}

func countDistinct(sorted []float64) int {
	if len(sorted) == 0 {
		return 0
	}

	n := 1

	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			n++
		}
	}

	return n
}

// rankFirst ranks values 1..n in ascending order, breaking ties by position.
func rankFirst[T cmp.Ordered](values []T) []float64 {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	})

	ranks := make([]float64, len(values))
	for pos, idx := range order {
		ranks[idx] = float64(pos + 1)
	}

	return ranks
}
