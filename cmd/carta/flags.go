package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"carta/internal/catalog"
	"carta/internal/config"
	"carta/internal/logx"
	"carta/internal/session"
	"carta/internal/util"
)

// decimalValue accepts "2.5", "2,5" and "R$ 1.234,56".
type decimalValue struct {
	v   decimal.Decimal
	set bool
}

func (d *decimalValue) String() string {
	if d == nil || !d.set {
		return ""
	}
	return d.v.String()
}

func (d *decimalValue) Set(s string) error {
	v, ok := util.ParseMoneyOK(s)
	if !ok {
		return fmt.Errorf("invalid number %q", s)
	}
	d.v, d.set = v, true
	return nil
}

func decimalFlag(fs *flag.FlagSet, name, usage string) *decimalValue {
	d := &decimalValue{}
	fs.Var(d, name, usage)
	return d
}

type pricingFlags struct {
	priceList *string
	factor    *decimalValue
}

// addPricingFlags registers the price list and the global factor. factorName
// differs for commands that already take a per-item --factor.
func addPricingFlags(fs *flag.FlagSet, cfg config.Config, factorName string) *pricingFlags {
	return &pricingFlags{
		priceList: fs.String("price-list", cfg.DefaultPriceList, strings.Join(cfg.PriceLists, "|")),
		factor:    decimalFlag(fs, factorName, "global markup factor"),
	}
}

func (p *pricingFlags) options(cfg config.Config) session.Options {
	list := strings.ToLower(strings.TrimSpace(*p.priceList))
	if !cfg.HasPriceList(list) {
		logx.Warn().Str("priceList", list).Strs("known", cfg.PriceLists).Msg("unknown price list, base prices will be zero")
	}
	factor := decimal.NewFromFloat(cfg.MarkupFactor)
	if p.factor.set && p.factor.v.IsPositive() {
		factor = p.factor.v
	}
	return session.Options{PriceList: list, Factor: factor, PriceLists: cfg.PriceLists}
}

type viewFlags struct {
	*pricingFlags
	term, country, category, region, code, description *string
	min, max                                           *decimalValue
}

// addViewFlags registers the catalog filters plus the pricing settings.
func addViewFlags(fs *flag.FlagSet, cfg config.Config) *viewFlags {
	return &viewFlags{
		pricingFlags: addPricingFlags(fs, cfg, "factor"),
		term:         fs.String("term", "", "free-text search, accent and case insensitive"),
		country:      fs.String("country", "", "exact country"),
		category:     fs.String("category", "", "exact wine type as written in the catalog"),
		region:       fs.String("region", "", "exact region"),
		code:         fs.String("code", "", "exact product code"),
		description:  fs.String("description", "", "exact description"),
		min:          decimalFlag(fs, "min", "minimum base price"),
		max:          decimalFlag(fs, "max", "maximum base price, 0 for no limit"),
	}
}

func (v *viewFlags) filter() catalog.Filter {
	return catalog.Filter{
		Term:        *v.term,
		Country:     *v.country,
		Category:    *v.category,
		Region:      *v.region,
		Code:        *v.code,
		Description: *v.description,
		Min:         v.min.v,
		Max:         v.max.v,
	}
}
