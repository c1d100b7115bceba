package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"carta/internal"
	"carta/internal/util"
)

// Filter narrows the catalog the way the selection view does. Empty fields do
// not constrain; Max zero means no upper bound.
type Filter struct {
	Term        string
	Country     string
	Category    string
	Region      string
	Code        string
	Description string
	Min         decimal.Decimal
	Max         decimal.Decimal
	PriceList   string
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Term) == "" && f.Country == "" && f.Category == "" && f.Region == "" &&
		f.Code == "" && f.Description == "" && !f.Min.IsPositive() && !f.Max.IsPositive()
}

func (f Filter) Match(it internal.CatalogItem) bool {
	if term := strings.TrimSpace(f.Term); term != "" {
		hit := false
		for _, field := range it.Searchable() {
			if util.ContainsFolded(field, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.Country != "" && it.Country != f.Country {
		return false
	}
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.Region != "" && it.Region != f.Region {
		return false
	}
	if f.Code != "" && it.Code != f.Code {
		return false
	}
	if f.Description != "" && it.Description != f.Description {
		return false
	}

	if f.Min.IsPositive() || f.Max.IsPositive() {
		base := util.ParseMoney(it.Price(f.PriceList), decimal.Zero)
		if base.LessThan(f.Min) {
			return false
		}
		if f.Max.IsPositive() && base.GreaterThan(f.Max) {
			return false
		}
	}
	return true
}

// Apply keeps the order of items.
func (f Filter) Apply(items []internal.CatalogItem) []internal.CatalogItem {
	out := make([]internal.CatalogItem, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
