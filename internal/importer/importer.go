package importer

import (
	"io"

	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

// Format is the delimiter family of an exported ledger file.
type Format string

const (
	FormatCSV Format = "csv"
	FormatTSV Format = "tsv"
)

type Importer interface {
	Parse(r io.Reader) ([]retail.Transaction, error)
}
