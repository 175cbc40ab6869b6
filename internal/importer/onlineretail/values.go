package onlineretail

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts covers spreadsheet exports (ISO) and the UCI repository CSV (US month-first).
var dateLayouts = []string{
	time.DateTime,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	time.DateOnly,
}

// parseText returns nil for an empty cell.
func parseText(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// parseInteger accepts "17850" as well as the "17850.0" that float-typed
// spreadsheet columns export to. Fractional values are rejected.
func parseInteger(s string) *int64 {
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return nil
	}

	n := d.IntPart()

	return &n
}

// parsePrice accepts plain decimals with an optional leading pound sign.
func parsePrice(s string) *decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(s, "£"))
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}

	return &d
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return &t
		}
	}

	return nil
}
