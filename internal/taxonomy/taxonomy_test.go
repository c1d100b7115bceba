package taxonomy

import (
	"testing"

	"carta/internal"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
	}{
		{raw: "Vinho Tinto Reserva", want: Red},
		{raw: "VINHO TINTO", want: Red},
		{raw: "Espumante Brut", want: Sparkling},
		{raw: "espumante rosé", want: Sparkling},
		{raw: "Branco Frisante", want: Frizzante},
		{raw: "Vinho Branco Seco", want: White},
		{raw: "Rosé", want: Rose},
		{raw: "ROSADO", want: Rose},
		{raw: "Licoroso", want: Liqueur},
		{raw: "Vinho Fortificado (Porto)", want: Fortified},
		{raw: "Vinho de Sobremesa", want: Dessert},
		{raw: "Prosecco DOC", want: Sparkling},
		{raw: "sake", want: Category("Sake")},
		{raw: "  cerveja artesanal ", want: Category("Cerveja Artesanal")},
		{raw: "", want: Category("")},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := Normalize(tc.raw); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeCanonicalIsFixedPoint(t *testing.T) {
	for _, c := range Canonical() {
		if got := Normalize(string(c)); got != c {
			t.Fatalf("Normalize(%q) = %q", c, got)
		}
	}
}

func TestSortKey(t *testing.T) {
	maxCanonical := 0
	for i, c := range Canonical() {
		if SortKey(c) != i {
			t.Fatalf("SortKey(%q)=%d want %d", c, SortKey(c), i)
		}
		if i > maxCanonical {
			maxCanonical = i
		}
	}
	for _, raw := range []string{"", "Sake", "Cidra", "???"} {
		c := Normalize(raw)
		if SortKey(c) <= maxCanonical {
			t.Fatalf("unrecognized %q sorts inside canonical range", raw)
		}
	}
}

func TestSort(t *testing.T) {
	items := []internal.PricedItem{
		{CatalogItem: internal.CatalogItem{ID: 1, Country: "Brasil", Description: "B"}, CanonicalCategory: string(Red)},
		{CatalogItem: internal.CatalogItem{ID: 2, Country: "Brasil", Description: "A"}, CanonicalCategory: string(Sparkling)},
		{CatalogItem: internal.CatalogItem{ID: 3, Country: "Argentina", Description: "Z"}, CanonicalCategory: string(Red)},
		{CatalogItem: internal.CatalogItem{ID: 4, Country: "Japão", Description: "Sake"}, CanonicalCategory: "Sake"},
		{CatalogItem: internal.CatalogItem{ID: 5, Country: "Chile", Description: "C"}, CanonicalCategory: ""},
	}
	Sort(items)

	want := []int{2, 3, 1, 5, 4}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: got id %d want %d", i, items[i].ID, id)
		}
	}
}
