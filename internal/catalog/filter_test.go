package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"carta/internal"
	"carta/internal/util"
)

func filterFixture() []internal.CatalogItem {
	return []internal.CatalogItem{
		{ID: 1, Code: "1001", Description: "Vinho Tinto", Country: "Brasil", Region: "Serra", Category: "Vinho Tinto", Grapes: []string{"Merlot"}, Prices: map[string]string{"preco1": "100.00"}},
		{ID: 2, Code: "1002", Description: "Espumante Brut", Country: "Brasil", Category: "Espumante Brut", Prices: map[string]string{"preco1": "50,00"}},
		{ID: 3, Code: "2001", Description: "Château Rosé", Country: "França", Region: "Provence", Category: "Rosé", Prices: map[string]string{"preco1": "1.200,00", "preco2": "900"}},
	}
}

func ids(items []internal.CatalogItem) []int {
	out := []int{}
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"zero filter keeps all", Filter{}, []int{1, 2, 3}},
		{"term is accent and case insensitive", Filter{Term: "CHATEAU"}, []int{3}},
		{"term searches grapes", Filter{Term: "merlot"}, []int{1}},
		{"country exact", Filter{Country: "Brasil"}, []int{1, 2}},
		{"country is not folded", Filter{Country: "brasil"}, []int{}},
		{"region", Filter{Region: "Provence"}, []int{3}},
		{"code", Filter{Code: "1002"}, []int{2}},
		{"description", Filter{Description: "Vinho Tinto"}, []int{1}},
		{"min on base price", Filter{PriceList: "preco1", Min: decimal.NewFromInt(60)}, []int{1, 3}},
		{"max zero means no limit", Filter{PriceList: "preco1", Min: decimal.NewFromInt(60), Max: decimal.Zero}, []int{1, 3}},
		{"max", Filter{PriceList: "preco1", Max: decimal.NewFromInt(100)}, []int{1, 2}},
		{"price list switch", Filter{PriceList: "preco2", Min: decimal.NewFromInt(1)}, []int{3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(tc.filter.Apply(filterFixture()))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v want %v", got, tc.want)
				}
			}
		})
	}
}

func TestIndex(t *testing.T) {
	idx := BuildIndex(filterFixture())
	if idx.NextID() != 4 {
		t.Fatalf("next=%d", idx.NextID())
	}
	if idx.Add(internal.CatalogItem{ID: 2, Description: "clash"}) {
		t.Fatal("duplicate id accepted")
	}
	if it, _ := idx.Get(2); it.Description != "Espumante Brut" {
		t.Fatalf("first item not kept: %q", it.Description)
	}

	idx.Add(NewRegisteredItem(idx.NextID(), internal.NewItem{Description: "Novo", Price: decimal.NewFromInt(30)}, []string{"preco1", "preco2"}))
	it, ok := idx.Get(4)
	if !ok || !it.Registered || it.Price("preco2") != "30" {
		t.Fatalf("registered=%+v", it)
	}

	idx.Add(NewRegisteredItem(idx.NextID(), internal.NewItem{Description: "Fracionado", Price: decimal.RequireFromString("12.345")}, []string{"preco1"}))
	frac, _ := idx.Get(5)
	if got := util.ParseMoney(frac.Price("preco1"), decimal.Zero); !got.Equal(decimal.RequireFromString("12.345")) {
		t.Fatalf("registered price=%s (%q) want 12.345", got, frac.Price("preco1"))
	}

	countries := idx.Values(func(it internal.CatalogItem) string { return it.Country })
	if len(countries) != 2 || countries[0] != "Brasil" {
		t.Fatalf("countries=%v", countries)
	}
	if len(idx.Items()) != 5 || idx.Items()[3].ID != 4 {
		t.Fatal("items not ordered by id")
	}
	if got := idx.ByCode["2001"]; len(got) != 1 || got[0] != 3 {
		t.Fatalf("by code=%v", got)
	}
}

func TestEmptyIndexNextID(t *testing.T) {
	if got := BuildIndex(nil).NextID(); got != 0 {
		t.Fatalf("got %d", got)
	}
}
