// Package pricing derives base and sell prices of catalog rows.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"carta/internal"
	"carta/internal/util"
)

// Quote is the outcome of resolving one row.
type Quote struct {
	Base           decimal.Decimal
	Factor         decimal.Decimal
	Sell           decimal.Decimal
	SellOverridden bool
}

// Resolve computes the prices of item for the chosen price list. It is pure
// and never fails: unparseable prices are zero and non-positive factors fall
// through to the next tier (override, row, global).
func Resolve(item internal.CatalogItem, priceList string, globalFactor decimal.Decimal, overrides *Overrides) Quote {
	base := util.ParseMoney(item.Price(priceList), decimal.Zero)

	factor := globalFactor
	if item.Factor.IsPositive() {
		factor = item.Factor
	}
	if f, ok := overrides.Factor(item.ID); ok {
		factor = f
	}

	if sell, ok := overrides.Sell(item.ID); ok {
		return Quote{Base: base, Factor: factor, Sell: sell, SellOverridden: true}
	}
	return Quote{Base: base, Factor: factor, Sell: base.Mul(factor)}
}

// Apply resolves item and attaches the canonical category computed by the
// caller.
func Apply(item internal.CatalogItem, category string, priceList string, globalFactor decimal.Decimal, overrides *Overrides) internal.PricedItem {
	q := Resolve(item, priceList, globalFactor, overrides)
	return internal.PricedItem{
		CatalogItem:       item,
		CanonicalCategory: category,
		Base:              q.Base,
		EffectiveFactor:   q.Factor,
		Sell:              q.Sell,
		SellOverridden:    q.SellOverridden,
	}
}

// MedianFactor is the median effective factor of items, shown in the list
// footer. Zero for an empty list.
func MedianFactor(items []internal.PricedItem) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}
	factors := make([]decimal.Decimal, 0, len(items))
	for _, it := range items {
		factors = append(factors, it.EffectiveFactor)
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].LessThan(factors[j]) })
	mid := len(factors) / 2
	if len(factors)%2 == 1 {
		return factors[mid]
	}
	return factors[mid-1].Add(factors[mid]).Div(decimal.NewFromInt(2))
}
