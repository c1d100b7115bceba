package internal

import "github.com/shopspring/decimal"

// CatalogItem is one wine row of the distributor catalog. Prices holds the raw
// cell text per price list; it is only ever read through util.ParseMoney.
type CatalogItem struct {
	ID          int
	Code        string
	Description string
	Country     string
	Region      string
	Category    string
	Winery      string
	Grapes      []string
	Aging       string
	Prices      map[string]string
	Factor      decimal.Decimal
	Registered  bool
}

// Price returns the raw value stored for a price list, or "" when absent.
func (c CatalogItem) Price(list string) string {
	if c.Prices == nil {
		return ""
	}
	return c.Prices[list]
}

// Searchable joins every text attribute, used by the free-text filter.
func (c CatalogItem) Searchable() []string {
	out := []string{c.Code, c.Description, c.Country, c.Region, c.Category, c.Winery, c.Aging}
	out = append(out, c.Grapes...)
	for _, v := range c.Prices {
		out = append(out, v)
	}
	return out
}

// PricedItem is a catalog row with its resolved prices and canonical category,
// the shape every renderer consumes.
type PricedItem struct {
	CatalogItem
	CanonicalCategory string
	Base              decimal.Decimal
	EffectiveFactor   decimal.Decimal
	Sell              decimal.Decimal
	SellOverridden    bool
}

// NewItem is the operator input for registering a product missing from the
// spreadsheet.
type NewItem struct {
	Code        string
	Description string
	Country     string
	Region      string
	Category    string
	Price       decimal.Decimal
	Factor      decimal.Decimal
	Sell        decimal.Decimal
}

type ExportFormat string

const (
	FormatPDF     ExportFormat = "pdf"
	FormatXLSX    ExportFormat = "xlsx"
	FormatPreview ExportFormat = "txt"
	FormatMail    ExportFormat = "eml"
)

type ExportRun struct {
	TraceID    string
	Suggestion string
	Format     string
	Output     string
	Items      int
	CreatedAt  string
}
