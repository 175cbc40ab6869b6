package onlineretail_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rfm/internal/importer/onlineretail"
	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

func TestParser_OnlineRetailII(t *testing.T) {
	csv := `Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country
489434,85048,15CM CHRISTMAS GLASS BALL 20 LIGHTS,12,2009-12-01 07:45:00,6.95,13085.0,United Kingdom
C489449,22087,PAPER BUNTING WHITE LACE,-12,2009-12-01 10:33:00,2.95,16321.0,Australia
489464,21733,85123a mixed,-96,2009-12-01 10:52:00,0.00,,United Kingdom
`

	p := onlineretail.NewParser(',')
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	first := txs[0]
	assert.Equal(t, "489434", first.Invoice)
	assert.Equal(t, "85048", first.StockCode)
	require.NotNil(t, first.Description)
	assert.Equal(t, "15CM CHRISTMAS GLASS BALL 20 LIGHTS", *first.Description)
	require.NotNil(t, first.Quantity)
	assert.Equal(t, int64(12), *first.Quantity)
	require.NotNil(t, first.Price)
	assert.True(t, decimal.RequireFromString("6.95").Equal(*first.Price))
	require.NotNil(t, first.InvoiceDate)
	assert.Equal(t, time.Date(2009, 12, 1, 7, 45, 0, 0, time.UTC), *first.InvoiceDate)
	require.NotNil(t, first.CustomerID)
	assert.Equal(t, int64(13085), *first.CustomerID)
	assert.Equal(t, "United Kingdom", first.Country)

	assert.True(t, txs[1].IsCancellation())
	assert.Equal(t, int64(-12), *txs[1].Quantity)

	assert.Nil(t, txs[2].CustomerID)
	assert.False(t, txs[2].Complete())
}

func TestParser_OnlineRetail(t *testing.T) {
	csv := `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/2010 8:26,2.55,17850,United Kingdom
536366,22633,HAND WARMER UNION JACK,6,12/01/2010 08:28,1.85,17850,United Kingdom
`

	p := onlineretail.NewParser(',')
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	for _, tx := range txs {
		assert.True(t, tx.Complete())
		assert.Equal(t, int64(17850), *tx.CustomerID)
	}

	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), *txs[0].InvoiceDate)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 28, 0, 0, time.UTC), *txs[1].InvoiceDate)
}

func TestParser_MalformedCellsBecomeMissing(t *testing.T) {
	type testCase struct {
		name  string
		row   string
		check func(t *testing.T, p retail.Transaction)
	}

	tests := []testCase{
		{
			name: "FractionalCustomer",
			row:  "1,A,desc,1,2010-12-01 08:00:00,1.0,17850.5,UK",
			check: func(t *testing.T, p retail.Transaction) {
				assert.Nil(t, p.CustomerID)
			},
		},
		{
			name: "BadQuantity",
			row:  "1,A,desc,six,2010-12-01 08:00:00,1.0,17850,UK",
			check: func(t *testing.T, p retail.Transaction) {
				assert.Nil(t, p.Quantity)
			},
		},
		{
			name: "BadDate",
			row:  "1,A,desc,1,yesterday,1.0,17850,UK",
			check: func(t *testing.T, p retail.Transaction) {
				assert.Nil(t, p.InvoiceDate)
			},
		},
		{
			name: "PoundPrice",
			row:  "1,A,desc,1,2010-12-01 08:00:00,£2.10,17850,UK",
			check: func(t *testing.T, p retail.Transaction) {
				require.NotNil(t, p.Price)
				assert.Equal(t, "2.1", p.Price.String())
			},
		},
		{
			name: "EmptyDescription",
			row:  "1,A,,1,2010-12-01 08:00:00,1.0,17850,UK",
			check: func(t *testing.T, p retail.Transaction) {
				assert.Nil(t, p.Description)
			},
		},
	}

	header := "Invoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country\n"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := onlineretail.NewParser(',').Parse(strings.NewReader(header + tt.row + "\n"))
			require.NoError(t, err)
			require.Len(t, txs, 1)
			tt.check(t, txs[0])
		})
	}
}

func TestParser_PreambleAndBlankRows(t *testing.T) {
	csv := "Online Retail II export\n\n" +
		"invoice\tstockcode\tdescription\tquantity\tinvoicedate\tprice\tcustomer id\tcountry\n" +
		"489434\t85048\tGLASS BALL\t12\t2009-12-01 07:45:00\t6.95\t13085\tUnited Kingdom\n" +
		"\t\t\t\t\t\t\t\n"

	txs, err := onlineretail.NewParser('\t').Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "489434", txs[0].Invoice)
}

func TestParser_MissingOptionalColumns(t *testing.T) {
	csv := "Invoice,Description,Quantity,InvoiceDate,Price,Customer ID\n" +
		"489434,GLASS BALL,12,2009-12-01 07:45:00,6.95,13085\n"

	txs, err := onlineretail.NewParser(',').Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Empty(t, txs[0].StockCode)
	assert.Empty(t, txs[0].Country)
	assert.True(t, txs[0].Complete())
}

func TestParser_NoHeader(t *testing.T) {
	csv := "Date,Amount\n2024-01-01,10\n"

	_, err := onlineretail.NewParser(',').Parse(strings.NewReader(csv))
	assert.ErrorIs(t, err, onlineretail.ErrNoHeader)
}
