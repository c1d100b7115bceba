package pricing

import "github.com/shopspring/decimal"

// Overrides holds operator-entered factor and sell price per item id. A nil
// *Overrides behaves as empty.
type Overrides struct {
	factor map[int]decimal.Decimal
	sell   map[int]decimal.Decimal
}

func NewOverrides() *Overrides {
	return &Overrides{factor: map[int]decimal.Decimal{}, sell: map[int]decimal.Decimal{}}
}

// Factor returns the override for id when one is set and positive.
func (o *Overrides) Factor(id int) (decimal.Decimal, bool) {
	if o == nil {
		return decimal.Zero, false
	}
	f, ok := o.factor[id]
	if !ok || !f.IsPositive() {
		return decimal.Zero, false
	}
	return f, true
}

func (o *Overrides) Sell(id int) (decimal.Decimal, bool) {
	if o == nil {
		return decimal.Zero, false
	}
	s, ok := o.sell[id]
	return s, ok
}

func (o *Overrides) SetFactor(id int, f decimal.Decimal) {
	o.factor[id] = f
}

func (o *Overrides) SetSell(id int, s decimal.Decimal) {
	o.sell[id] = s
}

func (o *Overrides) ClearFactor(id int) {
	delete(o.factor, id)
}

func (o *Overrides) ClearSell(id int) {
	delete(o.sell, id)
}

// Clear drops both overrides of id.
func (o *Overrides) Clear(id int) {
	o.ClearFactor(id)
	o.ClearSell(id)
}

func (o *Overrides) Clone() *Overrides {
	out := NewOverrides()
	if o == nil {
		return out
	}
	for id, f := range o.factor {
		out.factor[id] = f
	}
	for id, s := range o.sell {
		out.sell[id] = s
	}
	return out
}

// Entry is the flattened form used by storage.
type Entry struct {
	ID     int
	Factor *decimal.Decimal
	Sell   *decimal.Decimal
}

// Entries lists every id with at least one override.
func (o *Overrides) Entries() []Entry {
	if o == nil {
		return nil
	}
	byID := map[int]*Entry{}
	get := func(id int) *Entry {
		if e, ok := byID[id]; ok {
			return e
		}
		e := &Entry{ID: id}
		byID[id] = e
		return e
	}
	for id, f := range o.factor {
		f := f
		get(id).Factor = &f
	}
	for id, s := range o.sell {
		s := s
		get(id).Sell = &s
	}
	out := make([]Entry, 0, len(byID))
	for _, e := range byID {
		out = append(out, *e)
	}
	return out
}

// FromEntries rebuilds overrides loaded from storage.
func FromEntries(entries []Entry) *Overrides {
	o := NewOverrides()
	for _, e := range entries {
		if e.Factor != nil {
			o.SetFactor(e.ID, *e.Factor)
		}
		if e.Sell != nil {
			o.SetSell(e.ID, *e.Sell)
		}
	}
	return o
}
