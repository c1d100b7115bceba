package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"carta/internal"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestResolve(t *testing.T) {
	global := d("2")
	cases := []struct {
		name       string
		item       internal.CatalogItem
		overrides  func(*Overrides)
		wantBase   string
		wantFactor string
		wantSell   string
	}{
		{
			name:       "global factor",
			item:       internal.CatalogItem{ID: 1, Prices: map[string]string{"preco1": "100.00"}},
			wantBase:   "100",
			wantFactor: "2",
			wantSell:   "200",
		},
		{
			name:       "comma decimal",
			item:       internal.CatalogItem{ID: 2, Prices: map[string]string{"preco1": "50,00"}},
			wantBase:   "50",
			wantFactor: "2",
			wantSell:   "100",
		},
		{
			name:       "row factor",
			item:       internal.CatalogItem{ID: 3, Prices: map[string]string{"preco1": "10"}, Factor: d("1.5")},
			wantBase:   "10",
			wantFactor: "1.5",
			wantSell:   "15",
		},
		{
			name:       "zero row factor falls back to global",
			item:       internal.CatalogItem{ID: 4, Prices: map[string]string{"preco1": "10"}, Factor: d("0")},
			wantBase:   "10",
			wantFactor: "2",
			wantSell:   "20",
		},
		{
			name:       "negative row factor falls back to global",
			item:       internal.CatalogItem{ID: 5, Prices: map[string]string{"preco1": "10"}, Factor: d("-3")},
			wantBase:   "10",
			wantFactor: "2",
			wantSell:   "20",
		},
		{
			name:       "factor override wins over row",
			item:       internal.CatalogItem{ID: 6, Prices: map[string]string{"preco1": "10"}, Factor: d("1.5")},
			overrides:  func(o *Overrides) { o.SetFactor(6, d("3")) },
			wantBase:   "10",
			wantFactor: "3",
			wantSell:   "30",
		},
		{
			name:       "zero factor override is ignored",
			item:       internal.CatalogItem{ID: 7, Prices: map[string]string{"preco1": "10"}, Factor: d("1.5")},
			overrides:  func(o *Overrides) { o.SetFactor(7, d("0")) },
			wantBase:   "10",
			wantFactor: "1.5",
			wantSell:   "15",
		},
		{
			name:       "sell override",
			item:       internal.CatalogItem{ID: 8, Prices: map[string]string{"preco1": "10"}},
			overrides:  func(o *Overrides) { o.SetSell(8, d("99.9")) },
			wantBase:   "10",
			wantFactor: "2",
			wantSell:   "99.9",
		},
		{
			name:       "missing price list",
			item:       internal.CatalogItem{ID: 9, Prices: map[string]string{"preco2": "10"}},
			wantBase:   "0",
			wantFactor: "2",
			wantSell:   "0",
		},
		{
			name:       "garbage price",
			item:       internal.CatalogItem{ID: 10, Prices: map[string]string{"preco1": "consultar"}},
			wantBase:   "0",
			wantFactor: "2",
			wantSell:   "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOverrides()
			if tc.overrides != nil {
				tc.overrides(o)
			}
			q := Resolve(tc.item, "preco1", global, o)
			if !q.Base.Equal(d(tc.wantBase)) {
				t.Fatalf("base got %v want %s", q.Base, tc.wantBase)
			}
			if !q.Factor.Equal(d(tc.wantFactor)) {
				t.Fatalf("factor got %v want %s", q.Factor, tc.wantFactor)
			}
			if !q.Sell.Equal(d(tc.wantSell)) {
				t.Fatalf("sell got %v want %s", q.Sell, tc.wantSell)
			}
		})
	}
}

func TestResolveSellIsBaseTimesFactor(t *testing.T) {
	for _, base := range []string{"0", "0.01", "12.34", "999.99", "15000"} {
		for _, factor := range []string{"0.5", "1", "1.75", "2", "3.333"} {
			item := internal.CatalogItem{ID: 1, Prices: map[string]string{"preco1": base}}
			q := Resolve(item, "preco1", d(factor), nil)
			if !q.Sell.Equal(d(base).Mul(d(factor))) {
				t.Fatalf("base=%s factor=%s sell=%v", base, factor, q.Sell)
			}
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	item := internal.CatalogItem{ID: 1, Prices: map[string]string{"preco1": "1.234,56"}, Factor: d("1.8")}
	o := NewOverrides()
	o.SetSell(2, d("10"))

	first := Resolve(item, "preco1", d("2"), o)
	second := Resolve(item, "preco1", d("2"), o)
	if !first.Base.Equal(second.Base) || !first.Sell.Equal(second.Sell) || !first.Factor.Equal(second.Factor) || first.SellOverridden != second.SellOverridden {
		t.Fatalf("first=%+v second=%+v", first, second)
	}
	if item.Price("preco1") != "1.234,56" {
		t.Fatal("input mutated")
	}
}

func TestOverridesClear(t *testing.T) {
	o := NewOverrides()
	o.SetFactor(1, d("3"))
	o.SetSell(1, d("50"))
	clone := o.Clone()
	o.Clear(1)

	if _, ok := o.Sell(1); ok {
		t.Fatal("sell override kept after clear")
	}
	if _, ok := clone.Sell(1); !ok {
		t.Fatal("clone lost sell override")
	}
	if len(FromEntries(clone.Entries()).Entries()) != 1 {
		t.Fatal("entries round trip")
	}
}

func TestMedianFactor(t *testing.T) {
	items := []internal.PricedItem{{EffectiveFactor: d("3")}, {EffectiveFactor: d("1")}, {EffectiveFactor: d("2")}, {EffectiveFactor: d("2.5")}}
	if got := MedianFactor(items); !got.Equal(d("2.25")) {
		t.Fatalf("got %v", got)
	}
	if got := MedianFactor(items[:3]); !got.Equal(d("2")) {
		t.Fatalf("got %v", got)
	}
}
