package rfm

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var customerHeader = []string{"customer_id", "recency", "frequency", "monetary_value", "segment"}

// WriteCSV writes one row per customer in the given order.
func WriteCSV(w io.Writer, cs []Customer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(customerHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, c := range cs {
		row := []string{
			strconv.FormatInt(c.CustomerID, 10),
			strconv.Itoa(c.Recency),
			strconv.Itoa(c.Frequency),
			c.Monetary.String(),
			string(c.Segment),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing customer %d: %w", c.CustomerID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteSegmentIDs writes the ids of the customers in seg as a single column.
// The header is derived from the segment, so new_customers becomes new_customer_id.
func WriteSegmentIDs(w io.Writer, cs []Customer, seg Segment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{idColumn(seg)}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, c := range cs {
		if c.Segment != seg {
			continue
		}

		if err := cw.Write([]string{strconv.FormatInt(c.CustomerID, 10)}); err != nil {
			return fmt.Errorf("writing customer %d: %w", c.CustomerID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func idColumn(seg Segment) string {
	return strings.TrimSuffix(string(seg), "s") + "_id"
}
