// Package taxonomy maps free-text wine types onto the fixed display categories
// of the wine list and orders them.
package taxonomy

import (
	"sort"
	"strings"

	"carta/internal"
	"carta/internal/util"
)

// Category is a canonical display category or the title-cased echo of an
// unrecognized label.
type Category string

const (
	Sparkling Category = "Espumantes"
	White     Category = "Brancos"
	Rose      Category = "Rosés"
	Red       Category = "Tintos"
	Frizzante Category = "Frisantes"
	Fortified Category = "Fortificados"
	Dessert   Category = "Vinhos de sobremesa"
	Liqueur   Category = "Licorosos"
)

// Unranked is the sort key of every category outside the display order.
const Unranked = 999

var displayOrder = []Category{Sparkling, White, Rose, Red, Frizzante, Fortified, Dessert, Liqueur}

type rule struct {
	category Category
	tokens   []string
}

// Rules are checked in this order and the first hit wins. Semi-sparkling,
// fortified, dessert and liqueur labels go before the colour rules: "licoroso"
// contains "ros" and "Branco Frisante" names a colour as well.
var rules = []rule{
	{Sparkling, []string{"espum", "sparkl", "champagne", "prosecco", "cremant"}},
	{Frizzante, []string{"fris", "frizz"}},
	{Fortified, []string{"forti"}},
	{Dessert, []string{"sobrem", "dessert"}},
	{Liqueur, []string{"licor"}},
	{White, []string{"branc", "white", "blanc"}},
	{Rose, []string{"ros"}},
	{Red, []string{"tint", "red", "rouge"}},
}

var rank = func() map[Category]int {
	m := make(map[Category]int, len(displayOrder))
	for i, c := range displayOrder {
		m[c] = i
	}
	return m
}()

// Normalize classifies raw. Unmatched input comes back title-cased and sorts
// after every canonical category; empty input yields "".
func Normalize(raw string) Category {
	folded := util.Fold(raw)
	for _, r := range rules {
		for _, token := range r.tokens {
			if strings.Contains(folded, token) {
				return r.category
			}
		}
	}
	return Category(util.TitleCase(raw))
}

// SortKey is the display index of c, or Unranked.
func SortKey(c Category) int {
	if i, ok := rank[c]; ok {
		return i
	}
	return Unranked
}

// IsCanonical reports whether c belongs to the display order.
func IsCanonical(c Category) bool {
	_, ok := rank[c]
	return ok
}

// Canonical returns the display order.
func Canonical() []Category {
	return append([]Category(nil), displayOrder...)
}

// Less orders priced items by category, country, description, then id.
func Less(a, b internal.PricedItem) bool {
	ka, kb := SortKey(Category(a.CanonicalCategory)), SortKey(Category(b.CanonicalCategory))
	if ka != kb {
		return ka < kb
	}
	if a.CanonicalCategory != b.CanonicalCategory {
		return a.CanonicalCategory < b.CanonicalCategory
	}
	if a.Country != b.Country {
		return a.Country < b.Country
	}
	if a.Description != b.Description {
		return a.Description < b.Description
	}
	return a.ID < b.ID
}

// Sort orders items in place for rendering.
func Sort(items []internal.PricedItem) {
	sort.SliceStable(items, func(i, j int) bool { return Less(items[i], items[j]) })
}
