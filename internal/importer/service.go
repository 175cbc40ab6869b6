package importer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MrJamesThe3rd/rfm/internal/importer/onlineretail"
	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

type Service struct {
	csvImporter Importer
	tsvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: onlineretail.NewParser(','),
		tsvImporter: onlineretail.NewParser('\t'),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]retail.Transaction, error) {
	var importer Importer

	switch format {
	case FormatCSV:
		importer = s.csvImporter
	case FormatTSV:
		importer = s.tsvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// FileSource loads transactions from a ledger export on disk.
type FileSource struct {
	svc    *Service
	path   string
	format Format
}

func NewFileSource(svc *Service, path string, format Format) *FileSource {
	return &FileSource{svc: svc, path: path, format: format}
}

func (f *FileSource) LoadTransactions(_ context.Context) ([]retail.Transaction, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer file.Close()

	txs, err := f.svc.Import(f.format, file)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", f.path, err)
	}

	return txs, nil
}
