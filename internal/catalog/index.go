package catalog

import (
	"sort"

	"carta/internal"
	"carta/internal/util"
)

// Index is the in-memory catalog keyed by item id.
type Index struct {
	ByID   map[int]internal.CatalogItem
	ByCode map[string][]int
	ids    []int
}

// BuildIndex keeps the first item seen for an id.
func BuildIndex(items []internal.CatalogItem) *Index {
	idx := &Index{
		ByID:   map[int]internal.CatalogItem{},
		ByCode: map[string][]int{},
	}
	for _, it := range items {
		idx.Add(it)
	}
	return idx
}

// Add inserts it unless its id is already taken and reports whether it did.
func (x *Index) Add(it internal.CatalogItem) bool {
	if _, exists := x.ByID[it.ID]; exists {
		return false
	}
	x.ByID[it.ID] = it
	i := sort.SearchInts(x.ids, it.ID)
	x.ids = append(x.ids, 0)
	copy(x.ids[i+1:], x.ids[i:])
	x.ids[i] = it.ID
	if code := util.Fold(it.Code); code != "" {
		x.ByCode[code] = append(x.ByCode[code], it.ID)
	}
	return true
}

func (x *Index) Get(id int) (internal.CatalogItem, bool) {
	it, ok := x.ByID[id]
	return it, ok
}

func (x *Index) Len() int {
	return len(x.ids)
}

// Items lists the catalog ordered by id.
func (x *Index) Items() []internal.CatalogItem {
	out := make([]internal.CatalogItem, 0, len(x.ids))
	for _, id := range x.ids {
		out = append(out, x.ByID[id])
	}
	return out
}

// NextID is one past the largest id, or 0 for an empty catalog.
func (x *Index) NextID() int {
	if len(x.ids) == 0 {
		return 0
	}
	return x.ids[len(x.ids)-1] + 1
}

// Values returns the distinct non-empty values of one attribute, sorted. It
// feeds the option lists of the exact-match filters.
func (x *Index) Values(attr func(internal.CatalogItem) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, id := range x.ids {
		v := attr(x.ByID[id])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// NewRegisteredItem builds the catalog row for a product missing from the
// workbook. The price is recorded for every price list so it resolves under
// any of them.
func NewRegisteredItem(id int, in internal.NewItem, priceLists []string) internal.CatalogItem {
	it := internal.CatalogItem{
		ID:          id,
		Code:        in.Code,
		Description: in.Description,
		Country:     in.Country,
		Region:      in.Region,
		Category:    in.Category,
		Prices:      map[string]string{},
		Factor:      in.Factor,
		Registered:  true,
	}
	for _, list := range priceLists {
		it.Prices[list] = util.PlainDecimal(in.Price)
	}
	return it
}
