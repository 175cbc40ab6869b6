package onlineretail

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/rfm/internal/encoding"
	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

// ErrNoHeader is returned when no row matches a known ledger layout.
var ErrNoHeader = errors.New("no matching ledger format found: expected Online Retail or Online Retail II columns")

// Parser reads Online Retail ledger exports and produces raw transactions.
// The header row is located by matching column names against known profiles,
// so preamble rows above it are ignored.
type Parser struct {
	comma rune
}

func NewParser(comma rune) *Parser {
	return &Parser{comma: comma}
}

func (p *Parser) Parse(r io.Reader) ([]retail.Transaction, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = p.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		profile *Profile
		cols    colIndex
		txs     []retail.Transaction
		skipped int
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if profile == nil {
			profile, cols = detectProfile(row)
			continue
		}

		if blank(row) {
			skipped++
			continue
		}

		txs = append(txs, parseRow(profile, cols, row))
	}

	if profile == nil {
		return nil, ErrNoHeader
	}

	slog.Debug("parsed ledger", "profile", profile.Name, "rows", len(txs), "blank", skipped)

	return txs, nil
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) lookup(name string) int {
	if name == "" {
		return -1
	}

	idx, ok := c[strings.ToLower(name)]
	if !ok {
		return -1
	}

	return idx
}

// detectProfile returns the first profile whose required columns all appear in row.
func detectProfile(row []string) (*Profile, colIndex) {
	cols := make(colIndex, len(row))

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	for i := range profiles {
		if matchesProfile(&profiles[i], cols) {
			return &profiles[i], cols
		}
	}

	return nil, nil
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if cols.lookup(name) < 0 {
			return false
		}
	}

	return true
}

// parseRow never fails: unparseable cells become missing values and the
// record is left for the cleaner to drop.
func parseRow(p *Profile, cols colIndex, row []string) retail.Transaction {
	get := func(name string) string {
		return cellValue(row, cols.lookup(name))
	}

	return retail.Transaction{
		Invoice:     get(p.InvoiceCol),
		StockCode:   get(p.StockCol),
		Description: parseText(get(p.DescCol)),
		Quantity:    parseInteger(get(p.QuantityCol)),
		Price:       parsePrice(get(p.PriceCol)),
		InvoiceDate: parseDate(get(p.DateCol)),
		CustomerID:  parseInteger(get(p.CustomerCol)),
		Country:     get(p.CountryCol),
	}
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
