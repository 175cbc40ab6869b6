package rfm

import (
	"slices"
	"strings"
)

// Describe holds location and range statistics of one metric.
type Describe struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// SegmentSummary describes the customers of a single segment.
type SegmentSummary struct {
	Segment   Segment
	Customers int
	Recency   Describe
	Frequency Describe
	Monetary  Describe
}

// Summarize groups customers by segment, ordered by segment name.
func Summarize(cs []Customer) []SegmentSummary {
	type columns struct {
		recency, frequency, monetary []float64
	}

	groups := make(map[Segment]*columns)

	for _, c := range cs {
		g, ok := groups[c.Segment]
		if !ok {
			g = &columns{}
			groups[c.Segment] = g
		}

		g.recency = append(g.recency, float64(c.Recency))
		g.frequency = append(g.frequency, float64(c.Frequency))
		g.monetary = append(g.monetary, c.Monetary.InexactFloat64())
	}

	out := make([]SegmentSummary, 0, len(groups))
	for seg, g := range groups {
		out = append(out, SegmentSummary{
			Segment:   seg,
			Customers: len(g.recency),
			Recency:   describe(g.recency),
			Frequency: describe(g.frequency),
			Monetary:  describe(g.monetary),
		})
	}

	slices.SortFunc(out, func(a, b SegmentSummary) int {
		return strings.Compare(string(a.Segment), string(b.Segment))
	})

	return out
}

func describe(values []float64) Describe {
	if len(values) == 0 {
		return Describe{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	n := len(sorted)

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Describe{
		Mean:   sum / float64(n),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
	}
}
