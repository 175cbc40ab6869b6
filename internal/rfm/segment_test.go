package rfm_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

func TestClassify_AllCodes(t *testing.T) {
	want := map[string]rfm.Segment{
		"11": rfm.SegmentHibernating, "12": rfm.SegmentHibernating,
		"21": rfm.SegmentHibernating, "22": rfm.SegmentHibernating,
		"13": rfm.SegmentAtRisk, "14": rfm.SegmentAtRisk,
		"23": rfm.SegmentAtRisk, "24": rfm.SegmentAtRisk,
		"15": rfm.SegmentCantLoose, "25": rfm.SegmentCantLoose,
		"31": rfm.SegmentAboutToSleep, "32": rfm.SegmentAboutToSleep,
		"33": rfm.SegmentNeedAttention,
		"34": rfm.SegmentLoyalCustomers, "35": rfm.SegmentLoyalCustomers,
		"44": rfm.SegmentLoyalCustomers, "45": rfm.SegmentLoyalCustomers,
		"41": rfm.SegmentPromising,
		"51": rfm.SegmentNewCustomers,
		"42": rfm.SegmentPotentialLoyalists, "43": rfm.SegmentPotentialLoyalists,
		"52": rfm.SegmentPotentialLoyalists, "53": rfm.SegmentPotentialLoyalists,
		"54": rfm.SegmentChampions, "55": rfm.SegmentChampions,
	}
	require.Len(t, want, 25)

	for r := 1; r <= rfm.Bins; r++ {
		for f := 1; f <= rfm.Bins; f++ {
			code := fmt.Sprintf("%d%d", r, f)

			t.Run(code, func(t *testing.T) {
				got, err := rfm.Classify(r, f)
				require.NoError(t, err)
				assert.Equal(t, want[code], got)
			})
		}
	}
}

func TestRules_PartitionCodes(t *testing.T) {
	rules := rfm.Rules()
	require.Len(t, rules, 10)
	require.NoError(t, rfm.ValidateRules(rules))

	covered := make(map[rfm.Segment]int)

	for r := 1; r <= rfm.Bins; r++ {
		for f := 1; f <= rfm.Bins; f++ {
			matches := 0

			for _, rule := range rules {
				if rule.Matches(r, f) {
					matches++
					covered[rule.Segment]++
				}
			}

			assert.Equal(t, 1, matches, "code %d%d", r, f)
		}
	}

	assert.Len(t, covered, 10)
}

func TestValidateRules_DetectsGapsAndOverlaps(t *testing.T) {
	rules := rfm.Rules()

	t.Run("Gap", func(t *testing.T) {
		err := rfm.ValidateRules(rules[1:])
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code 11 matches no segment")
	})

	t.Run("Overlap", func(t *testing.T) {
		err := rfm.ValidateRules(append(rfm.Rules(), rules[0]))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code 22 matches 2 segments")
	})
}

func TestRule_Pattern(t *testing.T) {
	want := []string{
		"[1-2][1-2]", "[1-2][3-4]", "[1-2]5", "3[1-2]", "33",
		"[3-4][4-5]", "41", "51", "[4-5][2-3]", "5[4-5]",
	}

	rules := rfm.Rules()
	require.Len(t, rules, len(want))

	for i, rule := range rules {
		assert.Equal(t, want[i], rule.Pattern())
	}
}

func TestClassify_OutOfRange(t *testing.T) {
	for _, pair := range [][2]int{{0, 1}, {1, 0}, {6, 3}, {3, 6}} {
		_, err := rfm.Classify(pair[0], pair[1])
		assert.ErrorIs(t, err, rfm.ErrScoreOutOfRange)
	}
}

func TestAssign(t *testing.T) {
	scored := []rfm.Scored{
		{Metrics: rfm.Metrics{CustomerID: 1}, RecencyScore: 5, FrequencyScore: 5},
		{Metrics: rfm.Metrics{CustomerID: 2}, RecencyScore: 5, FrequencyScore: 1},
	}

	got, err := rfm.Assign(scored)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, rfm.SegmentChampions, got[0].Segment)
	assert.Equal(t, rfm.SegmentNewCustomers, got[1].Segment)
	assert.Equal(t, scored[0], got[0].Scored)

	_, err = rfm.Assign([]rfm.Scored{{RecencyScore: 9, FrequencyScore: 1}})
	assert.ErrorIs(t, err, rfm.ErrScoreOutOfRange)
}

func TestKnownSegment(t *testing.T) {
	for _, r := range rfm.Rules() {
		assert.True(t, rfm.KnownSegment(r.Segment), r.Segment)
	}

	assert.False(t, rfm.KnownSegment("whales"))
	assert.False(t, rfm.KnownSegment(""))
}
