package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

var validTable = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store reads ledger lines from a SQL table laid out like the Online Retail II sheet.
type Store struct {
	db    *sql.DB
	table string
}

func New(db *sql.DB, table string) (*Store, error) {
	if !validTable.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	return &Store{db: db, table: table}, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads one ledger row. Every column may be NULL.
// Expected column order: invoice, stock_code, description, quantity, invoice_date, price, customer_id, country
func scanTransaction(s scanner) (retail.Transaction, error) {
	var (
		invoice, stockCode, description, country sql.NullString
		quantity, customerID                     sql.NullInt64
		invoiceDate                              sql.NullTime
		price                                    decimal.NullDecimal
	)

	if err := s.Scan(
		&invoice, &stockCode, &description, &quantity, &invoiceDate, &price, &customerID, &country,
	); err != nil {
		return retail.Transaction{}, err
	}

	tx := retail.Transaction{
		Invoice:   invoice.String,
		StockCode: stockCode.String,
		Country:   country.String,
	}

	if description.Valid {
		tx.Description = &description.String
	}

	if quantity.Valid {
		tx.Quantity = &quantity.Int64
	}

	if invoiceDate.Valid {
		t := invoiceDate.Time.UTC()
		tx.InvoiceDate = &t
	}

	if price.Valid {
		tx.Price = &price.Decimal
	}

	if customerID.Valid {
		tx.CustomerID = &customerID.Int64
	}

	return tx, nil
}

func (s *Store) LoadTransactions(ctx context.Context) ([]retail.Transaction, error) {
	query := `SELECT invoice, stock_code, description, quantity, invoice_date, price, customer_id, country
		FROM ` + s.table

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	defer rows.Close()

	var txs []retail.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
