package onlineretail

// Profile describes the column names of one ledger export layout.
// Adding a layout is adding a Profile to the profiles slice.
type Profile struct {
	Name        string
	InvoiceCol  string
	StockCol    string // optional
	DescCol     string
	QuantityCol string
	DateCol     string
	PriceCol    string
	CustomerCol string
	CountryCol  string // optional
}

// requiredCols returns the columns that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.InvoiceCol, p.DescCol, p.QuantityCol, p.DateCol, p.PriceCol, p.CustomerCol}
}

// profiles is the ordered list of layouts tried during header detection.
var profiles = []Profile{
	{
		Name:        "online_retail_ii",
		InvoiceCol:  "Invoice",
		StockCol:    "StockCode",
		DescCol:     "Description",
		QuantityCol: "Quantity",
		DateCol:     "InvoiceDate",
		PriceCol:    "Price",
		CustomerCol: "Customer ID",
		CountryCol:  "Country",
	},
	{
		Name:        "online_retail",
		InvoiceCol:  "InvoiceNo",
		StockCol:    "StockCode",
		DescCol:     "Description",
		QuantityCol: "Quantity",
		DateCol:     "InvoiceDate",
		PriceCol:    "UnitPrice",
		CustomerCol: "CustomerID",
		CountryCol:  "Country",
	},
}
