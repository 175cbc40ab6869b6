package rfm

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

type customerResponse struct {
	CustomerID     int64           `json:"customer_id"`
	Recency        int             `json:"recency"`
	Frequency      int             `json:"frequency"`
	Monetary       decimal.Decimal `json:"monetary_value"`
	RecencyScore   int             `json:"recency_score"`
	FrequencyScore int             `json:"frequency_score"`
	MonetaryScore  int             `json:"monetary_score"`
	Segment        rfm.Segment     `json:"segment"`
}

type describeResponse struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type summaryResponse struct {
	Segment   rfm.Segment      `json:"segment"`
	Customers int              `json:"customers"`
	Recency   describeResponse `json:"recency"`
	Frequency describeResponse `json:"frequency"`
	Monetary  describeResponse `json:"monetary_value"`
}

type statsResponse struct {
	Transactions int `json:"transactions"`
	LineItems    int `json:"line_items"`
	Aggregated   int `json:"aggregated"`
	NonPositive  int `json:"non_positive"`
	Scored       int `json:"scored"`
}

type runResponse struct {
	RunID     uuid.UUID          `json:"run_id"`
	AsOf      string             `json:"as_of"`
	Stats     statsResponse      `json:"stats"`
	Summary   []summaryResponse  `json:"summary"`
	Customers []customerResponse `json:"customers"`
}

type ruleResponse struct {
	Pattern string      `json:"pattern"`
	Segment rfm.Segment `json:"segment"`
}

func toCustomerResponse(c rfm.Customer) customerResponse {
	return customerResponse{
		CustomerID:     c.CustomerID,
		Recency:        c.Recency,
		Frequency:      c.Frequency,
		Monetary:       c.Monetary,
		RecencyScore:   c.RecencyScore,
		FrequencyScore: c.FrequencyScore,
		MonetaryScore:  c.MonetaryScore,
		Segment:        c.Segment,
	}
}

func toDescribeResponse(d rfm.Describe) describeResponse {
	return describeResponse(d)
}

func toSummaryResponse(s rfm.SegmentSummary) summaryResponse {
	return summaryResponse{
		Segment:   s.Segment,
		Customers: s.Customers,
		Recency:   toDescribeResponse(s.Recency),
		Frequency: toDescribeResponse(s.Frequency),
		Monetary:  toDescribeResponse(s.Monetary),
	}
}

func toRunResponse(res *rfm.Result, asOf string) runResponse {
	resp := runResponse{
		RunID: res.RunID,
		AsOf:  asOf,
		Stats: statsResponse{
			Transactions: res.Stats.Transactions,
			LineItems:    res.Stats.LineItems,
			Aggregated:   res.Stats.Aggregated,
			NonPositive:  res.Stats.NonPositive,
			Scored:       res.Stats.Scored,
		},
		Summary:   make([]summaryResponse, 0),
		Customers: make([]customerResponse, 0, len(res.Customers)),
	}

	for _, s := range rfm.Summarize(res.Customers) {
		resp.Summary = append(resp.Summary, toSummaryResponse(s))
	}

	for _, c := range res.Customers {
		resp.Customers = append(resp.Customers, toCustomerResponse(c))
	}

	return resp
}
