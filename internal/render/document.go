// Package render turns a priced selection into the deliverables handed to a
// client: PDF, spreadsheet, text preview and e-mail draft.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"carta/internal"
	"carta/internal/pricing"
	"carta/internal/taxonomy"
	"carta/internal/util"
)

// Document is everything a renderer needs. Items must already be sorted.
type Document struct {
	Title       string
	Client      string
	Items       []internal.PricedItem
	GeneratedAt time.Time

	Photos      bool
	ImagesDir   string
	ClientLogo  string
	CompanyLogo string

	Company string
	Site    string
}

type Line struct {
	No   int
	Item internal.PricedItem
}

type CountryGroup struct {
	Country string
	Lines   []Line
}

type CategoryGroup struct {
	Category  string
	Countries []CountryGroup
}

// Groups splits items by category then country, keeping their order and
// numbering lines across the whole document.
func (d Document) Groups() []CategoryGroup {
	var out []CategoryGroup
	no := 0
	for _, it := range d.Items {
		no++
		if len(out) == 0 || out[len(out)-1].Category != it.CanonicalCategory {
			out = append(out, CategoryGroup{Category: it.CanonicalCategory})
		}
		cat := &out[len(out)-1]
		if len(cat.Countries) == 0 || cat.Countries[len(cat.Countries)-1].Country != it.Country {
			cat.Countries = append(cat.Countries, CountryGroup{Country: it.Country})
		}
		country := &cat.Countries[len(cat.Countries)-1]
		country.Lines = append(country.Lines, Line{No: no, Item: it})
	}
	return out
}

// Summary is the footer tally: counts per main category, total and median
// effective factor.
type Summary struct {
	Whites    int
	Reds      int
	Roses     int
	Sparkling int
	Total     int
	Factor    decimal.Decimal
}

func Summarize(items []internal.PricedItem) Summary {
	s := Summary{Total: len(items), Factor: pricing.MedianFactor(items)}
	for _, it := range items {
		switch taxonomy.Category(it.CanonicalCategory) {
		case taxonomy.White:
			s.Whites++
		case taxonomy.Red:
			s.Reds++
		case taxonomy.Rose:
			s.Roses++
		case taxonomy.Sparkling:
			s.Sparkling++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("Brancos: %d | Tintos: %d | Rosés: %d | Espumantes: %d | Total: %d | Fator: %s",
		s.Whites, s.Reds, s.Roses, s.Sparkling, s.Total, s.Factor.StringFixed(2))
}

// CodeLabel renders "NN (code)".
func (l Line) CodeLabel() string {
	return fmt.Sprintf("%02d (%s)", l.No, l.Item.Code)
}

// Origin renders "country | region | grape, grape".
func (l Line) Origin() string {
	s := l.Item.Country + " | " + l.Item.Region
	if len(l.Item.Grapes) > 0 {
		s += " | " + strings.Join(l.Item.Grapes, ", ")
	}
	return s
}

func (l Line) BasePrice() string {
	return "(" + util.FormatMoney(l.Item.Base) + ")"
}

func (l Line) SellPrice() string {
	return util.FormatMoney(l.Item.Sell)
}

func (l Line) Aged() bool {
	return strings.TrimSpace(l.Item.Aging) != ""
}

// Photo returns the image file for the line, or "" when photos are off or
// none exists.
func (d Document) Photo(l Line) string {
	if !d.Photos || d.ImagesDir == "" || l.Item.Code == "" {
		return ""
	}
	return FindImage(d.ImagesDir, l.Item.Code)
}

func (d Document) generatedLabel() string {
	return "Gerado em: " + d.GeneratedAt.Format("02/01/2006 15:04")
}

func (d Document) footerLine() string {
	if d.Company == "" {
		return d.Site
	}
	if d.Site == "" {
		return d.Company
	}
	return d.Company + " | " + d.Site
}
