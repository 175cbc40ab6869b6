package rfm

import (
	"errors"
	"fmt"
)

// Segment is a named marketing segment.
type Segment string

const (
	SegmentHibernating        Segment = "hibernating"
	SegmentAtRisk             Segment = "at_risk"
	SegmentCantLoose          Segment = "cant_loose"
	SegmentAboutToSleep       Segment = "about_to_sleep"
	SegmentNeedAttention      Segment = "need_attention"
	SegmentLoyalCustomers     Segment = "loyal_customers"
	SegmentPromising          Segment = "promising"
	SegmentNewCustomers       Segment = "new_customers"
	SegmentPotentialLoyalists Segment = "potential_loyalists"
	SegmentChampions          Segment = "champions"
)

// digits is an inclusive range of score digits.
type digits struct {
	lo, hi int
}

func (d digits) contains(n int) bool {
	return n >= d.lo && n <= d.hi
}

func (d digits) String() string {
	if d.lo == d.hi {
		return fmt.Sprintf("%d", d.lo)
	}

	return fmt.Sprintf("[%d-%d]", d.lo, d.hi)
}

func one(n int) digits       { return digits{n, n} }
func span(lo, hi int) digits { return digits{lo, hi} }

// Rule maps a recency/frequency digit pattern to a segment.
type Rule struct {
	Recency   digits
	Frequency digits
	Segment   Segment
}

// Matches reports whether the score pair falls inside the rule's pattern.
func (r Rule) Matches(recency, frequency int) bool {
	return r.Recency.contains(recency) && r.Frequency.contains(frequency)
}

// Pattern renders the rule as a digit pattern, e.g. "[1-2]5".
func (r Rule) Pattern() string {
	return r.Recency.String() + r.Frequency.String()
}

// rules are evaluated top to bottom, first match wins.
var rules = []Rule{
	{span(1, 2), span(1, 2), SegmentHibernating},
	{span(1, 2), span(3, 4), SegmentAtRisk},
	{span(1, 2), one(5), SegmentCantLoose},
	{one(3), span(1, 2), SegmentAboutToSleep},
	{one(3), one(3), SegmentNeedAttention},
	{span(3, 4), span(4, 5), SegmentLoyalCustomers},
	{one(4), one(1), SegmentPromising},
	{one(5), one(1), SegmentNewCustomers},
	{span(4, 5), span(2, 3), SegmentPotentialLoyalists},
	{one(5), span(4, 5), SegmentChampions},
}

func init() {
	if err := ValidateRules(rules); err != nil {
		panic(err)
	}
}

// Rules returns a copy of the segmentation table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)

	return out
}

// KnownSegment reports whether seg is produced by some rule.
func KnownSegment(seg Segment) bool {
	for _, r := range rules {
		if r.Segment == seg {
			return true
		}
	}

	return false
}

// ValidateRules checks that every score code in 1..Bins x 1..Bins matches
// exactly one rule.
func ValidateRules(rs []Rule) error {
	var errs []error

	for r := 1; r <= Bins; r++ {
		for f := 1; f <= Bins; f++ {
			var matched []Segment

			for _, rule := range rs {
				if rule.Matches(r, f) {
					matched = append(matched, rule.Segment)
				}
			}

			switch len(matched) {
			case 1:
			case 0:
				errs = append(errs, fmt.Errorf("code %d%d matches no segment", r, f))
			default:
				errs = append(errs, fmt.Errorf("code %d%d matches %d segments: %v", r, f, len(matched), matched))
			}
		}
	}

	return errors.Join(errs...)
}

// Classify returns the segment for a recency/frequency score pair.
func Classify(recency, frequency int) (Segment, error) {
	if recency < 1 || recency > Bins || frequency < 1 || frequency > Bins {
		return "", fmt.Errorf("%w: recency=%d frequency=%d", ErrScoreOutOfRange, recency, frequency)
	}

	for _, r := range rules {
		if r.Matches(recency, frequency) {
			return r.Segment, nil
		}
	}

	return "", fmt.Errorf("no segment for code %d%d", recency, frequency)
}

// Assign attaches a segment to every scored customer.
func Assign(ss []Scored) ([]Customer, error) {
	out := make([]Customer, len(ss))

	for i, s := range ss {
		seg, err := Classify(s.RecencyScore, s.FrequencyScore)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", s.CustomerID, err)
		}

		out[i] = Customer{Scored: s, Segment: seg}
	}

	return out, nil
}
