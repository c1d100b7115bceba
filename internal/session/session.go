// Package session holds the state of one curation pass: the loaded catalog,
// price overrides, the active price list and the selection being built.
package session

import (
	"fmt"

	"github.com/shopspring/decimal"

	"carta/internal"
	"carta/internal/catalog"
	"carta/internal/errx"
	"carta/internal/logx"
	"carta/internal/pricing"
	"carta/internal/selection"
	"carta/internal/taxonomy"
)

type Options struct {
	PriceList  string
	Factor     decimal.Decimal
	PriceLists []string
}

type Session struct {
	catalog   *catalog.Index
	overrides *pricing.Overrides
	selection *selection.Reconciler
	prevView  map[int]bool

	priceList  string
	factor     decimal.Decimal
	priceLists []string
}

func New(idx *catalog.Index, overrides *pricing.Overrides, opts Options) *Session {
	if idx == nil {
		idx = catalog.BuildIndex(nil)
	}
	if overrides == nil {
		overrides = pricing.NewOverrides()
	}
	return &Session{
		catalog:    idx,
		overrides:  overrides,
		selection:  selection.NewReconciler(),
		prevView:   map[int]bool{},
		priceList:  opts.PriceList,
		factor:     opts.Factor,
		priceLists: opts.PriceLists,
	}
}

func (s *Session) Catalog() *catalog.Index { return s.catalog }
func (s *Session) Overrides() *pricing.Overrides { return s.overrides }
func (s *Session) Selection() *selection.Reconciler { return s.selection }
func (s *Session) PriceList() string { return s.priceList }
func (s *Session) Factor() decimal.Decimal { return s.factor }

// View returns the catalog rows matching f, priced with the session settings.
func (s *Session) View(f catalog.Filter) []internal.PricedItem {
	f.PriceList = s.priceList
	items := f.Apply(s.catalog.Items())
	out := make([]internal.PricedItem, 0, len(items))
	for _, it := range items {
		out = append(out, s.price(it))
	}
	return out
}

// ApplyView merges the checkbox state of the currently shown rows into the
// selection and remembers it as the baseline for the next call.
func (s *Session) ApplyView(curr map[int]bool) selection.Set {
	next := s.selection.ApplyViewEdits(s.prevView, curr)
	s.prevView = make(map[int]bool, len(curr))
	for id, checked := range curr {
		s.prevView[id] = checked
	}
	return next
}

// SelectFiltered adds every row matching f.
func (s *Session) SelectFiltered(f catalog.Filter) selection.Set {
	return s.selection.SelectAll(viewIDs(s.View(f)))
}

// SelectCategory adds the rows of f whose raw category equals category.
func (s *Session) SelectCategory(f catalog.Filter, category string) selection.Set {
	f.Category = category
	return s.SelectFiltered(f)
}

// Register adds a product missing from the workbook under the next free id. A
// positive sell price becomes a sell override.
func (s *Session) Register(in internal.NewItem) (internal.CatalogItem, error) {
	if in.Description == "" {
		return internal.CatalogItem{}, errx.MissingInput("description is required")
	}
	it := catalog.NewRegisteredItem(s.catalog.NextID(), in, s.priceLists)
	s.catalog.Add(it)
	if in.Sell.IsPositive() {
		s.overrides.SetSell(it.ID, in.Sell)
	}
	return it, nil
}

func (s *Session) Quote(id int) (pricing.Quote, bool) {
	it, ok := s.catalog.Get(id)
	if !ok {
		return pricing.Quote{}, false
	}
	return pricing.Resolve(it, s.priceList, s.factor, s.overrides), true
}

// MustQuote panics for an id the catalog does not hold.
func (s *Session) MustQuote(id int) pricing.Quote {
	q, ok := s.Quote(id)
	if !ok {
		panic(fmt.Sprintf("session: no catalog item with id %d", id))
	}
	return q
}

// Priced returns the selected rows in display order. Selected ids that are no
// longer in the catalog are skipped.
func (s *Session) Priced() []internal.PricedItem {
	ids := s.selection.Selection().Sorted()
	out := make([]internal.PricedItem, 0, len(ids))
	for _, id := range ids {
		it, ok := s.catalog.Get(id)
		if !ok {
			logx.Debug().Int("idx", id).Msg("selected id not in catalog")
			continue
		}
		out = append(out, s.price(it))
	}
	taxonomy.Sort(out)
	return out
}

// Finalize is Priced for export: an empty result is a missing-input error.
func (s *Session) Finalize() ([]internal.PricedItem, error) {
	items := s.Priced()
	if len(items) == 0 {
		return nil, errx.MissingInput("no selected items to export")
	}
	return items, nil
}

func (s *Session) price(it internal.CatalogItem) internal.PricedItem {
	category := string(taxonomy.Normalize(it.Category))
	return pricing.Apply(it, category, s.priceList, s.factor, s.overrides)
}

func viewIDs(items []internal.PricedItem) selection.Set {
	out := selection.NewSet()
	for _, it := range items {
		out[it.ID] = struct{}{}
	}
	return out
}
