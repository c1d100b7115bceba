package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"carta/internal"
	"carta/internal/catalog"
	"carta/internal/config"
	"carta/internal/errx"
	"carta/internal/logx"
	"carta/internal/pricing"
	"carta/internal/render"
	"carta/internal/selection"
	"carta/internal/session"
	"carta/internal/storage"
	"carta/internal/suggestions"
	"carta/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)
	logx.Init(logx.Options{Environment: cfg.Env, Level: cfg.LogLevel})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	importer := catalog.NewImportService(db)

	cmd := os.Args[1]
	switch cmd {
	case "catalog:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", cfg.CatalogPath, "catalog workbook (.xlsx, .xlsm or HTML .xls)")
		_ = fs.Parse(os.Args[2:])
		count, err := importer.Import(ctx, *file)
		must(err)
		fmt.Printf("catalog import complete: %d items from %s\n", count, *file)
	case "catalog:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		view := addViewFlags(fs, cfg)
		_ = fs.Parse(os.Args[2:])
		sess := openSession(ctx, importer, db, view.options(cfg))
		items := sess.View(view.filter())
		for _, it := range items {
			printItem(it)
		}
		fmt.Printf("%d of %d items (price list %s, factor %s)\n", len(items), sess.Catalog().Len(), sess.PriceList(), sess.Factor())
		if src, at, ok := importer.LastImport(); ok {
			fmt.Printf("catalog imported from %s at %s\n", src, at.Local().Format("02/01/2006 15:04"))
		}
	case "catalog:values":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		field := fs.String("field", "country", "country|category|region|code|description")
		_ = fs.Parse(os.Args[2:])
		attr, err := attribute(*field)
		must(err)
		idx, err := importer.Load(ctx)
		must(err)
		for _, v := range idx.Values(attr) {
			fmt.Println(v)
		}
	case "item:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		code := fs.String("code", "", "product code")
		description := fs.String("description", "", "description")
		country := fs.String("country", "", "country")
		region := fs.String("region", "", "region")
		category := fs.String("category", "", "wine type")
		price := decimalFlag(fs, "price", "base price, recorded for every price list")
		factor := decimalFlag(fs, "factor", "markup factor for this item")
		sell := decimalFlag(fs, "sell", "fixed sell price")
		pricingOpts := addPricingFlags(fs, cfg, "global-factor")
		_ = fs.Parse(os.Args[2:])

		sess := openSession(ctx, importer, db, pricingOpts.options(cfg))
		it, err := sess.Register(internal.NewItem{
			Code:        *code,
			Description: strings.TrimSpace(*description),
			Country:     *country,
			Region:      *region,
			Category:    *category,
			Price:       price.v,
			Factor:      factor.v,
			Sell:        sell.v,
		})
		must(err)
		must(db.InsertRegisteredItem(it))
		if sell.v.IsPositive() {
			s := sell.v
			must(db.SaveOverride(pricing.Entry{ID: it.ID, Sell: &s}))
		}
		q := sess.MustQuote(it.ID)
		fmt.Printf("registered idx=%d %s base=%s sell=%s\n", it.ID, it.Description, util.FormatMoney(q.Base), util.FormatMoney(q.Sell))
	case "override:set":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int("id", -1, "catalog idx")
		factor := decimalFlag(fs, "factor", "markup factor for this item")
		sell := decimalFlag(fs, "sell", "fixed sell price")
		pricingOpts := addPricingFlags(fs, cfg, "global-factor")
		_ = fs.Parse(os.Args[2:])
		if !factor.set && !sell.set {
			must(errx.MissingInput("--factor or --sell is required"))
		}

		sess := openSession(ctx, importer, db, pricingOpts.options(cfg))
		if _, ok := sess.Catalog().Get(*id); !ok {
			must(errx.NotFound("catalog item %d not found", *id))
		}
		entry := pricing.Entry{ID: *id}
		if factor.set {
			f := factor.v
			entry.Factor = &f
			sess.Overrides().SetFactor(*id, f)
		}
		if sell.set {
			s := sell.v
			entry.Sell = &s
			sess.Overrides().SetSell(*id, s)
		}
		must(db.SaveOverride(entry))
		printQuote(*id, sess.MustQuote(*id))
	case "override:clear":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int("id", -1, "catalog idx")
		onlyFactor := fs.Bool("factor", false, "clear only the factor override")
		onlySell := fs.Bool("sell", false, "clear only the sell override")
		_ = fs.Parse(os.Args[2:])
		clearFactor, clearSell := *onlyFactor, *onlySell
		if !clearFactor && !clearSell {
			clearFactor, clearSell = true, true
		}
		must(db.ClearOverride(*id, clearFactor, clearSell))
		fmt.Printf("cleared overrides for idx=%d factor=%t sell=%t\n", *id, clearFactor, clearSell)
	case "suggestion:list":
		store, closeStore := openStore(ctx, cfg, db)
		defer closeStore()
		names, err := store.List(ctx)
		must(errx.Store(err, "list suggestions"))
		for _, name := range names {
			fmt.Println(name)
		}
	case "suggestion:show":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "suggestion name")
		view := addViewFlags(fs, cfg)
		_ = fs.Parse(os.Args[2:])
		store, closeStore := openStore(ctx, cfg, db)
		defer closeStore()

		sess := openSession(ctx, importer, db, view.options(cfg))
		ids, err := sess.Selection().Load(ctx, *name, store)
		must(err)
		items := sess.Priced()
		for _, it := range items {
			printItem(it)
		}
		fmt.Printf("%s: %d ids, %d in catalog\n", *name, len(ids), len(items))
		fmt.Println(render.Summarize(items))
	case "suggestion:save":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "suggestion name")
		ids := fs.String("ids", "", "comma-separated catalog idx list")
		all := fs.Bool("all", false, "select every item matching the filters")
		selectCategory := fs.String("select-category", "", "select the filtered items of this wine type")
		view := addViewFlags(fs, cfg)
		_ = fs.Parse(os.Args[2:])
		store, closeStore := openStore(ctx, cfg, db)
		defer closeStore()

		sess := openSession(ctx, importer, db, view.options(cfg))
		sel := sess.Selection()
		sel.SelectAll(selection.ParseSet(*ids))
		if *all {
			sess.SelectFiltered(view.filter())
		}
		if *selectCategory != "" {
			sess.SelectCategory(view.filter(), *selectCategory)
		}
		merged, err := sel.Save(ctx, *name, store)
		must(err)
		fmt.Printf("saved suggestion %s: %d items (%s)\n", *name, len(merged), merged)
	case "suggestion:remove":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "suggestion name")
		ids := fs.String("ids", "", "comma-separated catalog idx list to drop")
		_ = fs.Parse(os.Args[2:])
		drop := selection.ParseSet(*ids)
		if len(drop) == 0 {
			must(errx.MissingInput("--ids is required"))
		}
		store, closeStore := openStore(ctx, cfg, db)
		defer closeStore()

		sel := selection.NewReconciler()
		_, err := sel.Load(ctx, *name, store)
		must(err)
		remaining := sel.Remove(drop)
		if len(remaining) == 0 {
			must(sel.Delete(ctx, *name, store))
			fmt.Printf("suggestion %s is empty and was deleted\n", *name)
			return
		}
		must(errx.Store(store.Write(ctx, *name, remaining), "write suggestion %q", *name))
		fmt.Printf("suggestion %s: %d items (%s)\n", *name, len(remaining), remaining)
	case "suggestion:delete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "suggestion name")
		_ = fs.Parse(os.Args[2:])
		store, closeStore := openStore(ctx, cfg, db)
		defer closeStore()
		must(selection.NewReconciler().Delete(ctx, *name, store))
		fmt.Printf("deleted suggestion %s\n", *name)
	case "export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "suggestion to export")
		ids := fs.String("ids", "", "extra comma-separated catalog idx list")
		format := fs.String("format", "pdf", "pdf|xlsx|txt|eml")
		out := fs.String("out", "", "output path (default OUTPUT_DIR/sugestao_carta_vinhos.<format>)")
		client := fs.String("client", "", "client name printed on the list")
		title := fs.String("title", cfg.ListTitle, "list title")
		photos := fs.Bool("photos", true, "insert product photos from IMAGES_DIR")
		logo := fs.String("logo", "", "client logo image")
		to := fs.String("to", "", "recipient address for eml drafts")
		view := addViewFlags(fs, cfg)
		_ = fs.Parse(os.Args[2:])

		exportFormat := internal.ExportFormat(strings.ToLower(*format))
		if *out == "" {
			*out = filepath.Join(cfg.OutputDir, render.DefaultFileName(exportFormat))
		}

		sess := openSession(ctx, importer, db, view.options(cfg))
		if *name != "" {
			store, closeStore := openStore(ctx, cfg, db)
			defer closeStore()
			_, err := sess.Selection().Load(ctx, *name, store)
			must(err)
		}
		sess.Selection().SelectAll(selection.ParseSet(*ids))
		items, err := sess.Finalize()
		must(err)

		doc := render.Document{
			Title:       *title,
			Client:      strings.TrimSpace(*client),
			Items:       items,
			GeneratedAt: time.Now(),
			Photos:      *photos,
			ImagesDir:   cfg.ImagesDir,
			ClientLogo:  *logo,
			CompanyLogo: cfg.LogoPath,
			Company:     cfg.CompanyFooter,
			Site:        cfg.CompanySite,
		}
		mail := render.MailOptions{FromName: cfg.MailFromName, FromAddress: cfg.MailFromAddress, ToAddress: *to}
		must(render.Export(doc, exportFormat, mail, *out))

		run := internal.ExportRun{
			TraceID:    uuid.NewString(),
			Suggestion: *name,
			Format:     string(exportFormat),
			Output:     *out,
			Items:      len(items),
		}
		if err := db.InsertExportRun(run); err != nil {
			logx.Warn().Err(err).Str("traceId", run.TraceID).Msg("could not record export run")
		}
		logx.Info().Str("traceId", run.TraceID).Str("format", run.Format).Int("items", run.Items).Msg("export written")
		fmt.Printf("exported %d items to %s\n", len(items), *out)
	case "export:history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "number of runs")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListExportRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("%s  %-4s  %3d items  %-20s  %s  %s\n", r.CreatedAt, r.Format, r.Items, r.Suggestion, r.Output, r.TraceID)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func openSession(ctx context.Context, importer *catalog.ImportService, db *storage.DB, opts session.Options) *session.Session {
	idx, err := importer.Load(ctx)
	must(err)
	if idx.Len() == 0 {
		logx.Warn().Msg("catalog is empty, run catalog:import first")
	}
	entries, err := db.ListOverrides()
	must(err)
	return session.New(idx, pricing.FromEntries(entries), opts)
}

func openStore(ctx context.Context, cfg config.Config, db *storage.DB) (selection.Store, func()) {
	store, closeFn, err := suggestions.Open(ctx, cfg, db)
	must(err)
	return store, func() {
		if err := closeFn(); err != nil {
			logx.Warn().Err(err).Msg("closing suggestion store")
		}
	}
}

func attribute(field string) (func(internal.CatalogItem) string, error) {
	switch field {
	case "country":
		return func(it internal.CatalogItem) string { return it.Country }, nil
	case "category":
		return func(it internal.CatalogItem) string { return it.Category }, nil
	case "region":
		return func(it internal.CatalogItem) string { return it.Region }, nil
	case "code":
		return func(it internal.CatalogItem) string { return it.Code }, nil
	case "description":
		return func(it internal.CatalogItem) string { return it.Description }, nil
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}
}

func printItem(it internal.PricedItem) {
	mark := ""
	if it.SellOverridden {
		mark = "*"
	}
	fmt.Printf("%5d  %-8s  %-12s  %-12s  %-50s  %14s  x%-5s  %14s%s\n",
		it.ID, it.Code, it.CanonicalCategory, it.Country, it.Description,
		util.FormatMoney(it.Base), it.EffectiveFactor.StringFixed(2), util.FormatMoney(it.Sell), mark)
}

func printQuote(id int, q pricing.Quote) {
	fmt.Printf("idx=%d base=%s factor=%s sell=%s overridden=%t\n",
		id, util.FormatMoney(q.Base), q.Factor.StringFixed(2), util.FormatMoney(q.Sell), q.SellOverridden)
}

func usage() {
	fmt.Println("usage: carta <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:import [--file=vinhos1.xlsx]")
	fmt.Println("  catalog:list [--term --country --category --region --code --description --min --max --price-list --factor]")
	fmt.Println("  catalog:values --field=country|category|region|code|description")
	fmt.Println("  item:add --description=... [--code --country --region --category --price --factor --sell]")
	fmt.Println("  override:set --id=N [--factor=2.5] [--sell=199,90]")
	fmt.Println("  override:clear --id=N [--factor] [--sell]")
	fmt.Println("  suggestion:list")
	fmt.Println("  suggestion:show --name=...")
	fmt.Println("  suggestion:save --name=... [--ids=1,2,3] [--all | --select-category=...] [filters]")
	fmt.Println("  suggestion:remove --name=... --ids=1,2")
	fmt.Println("  suggestion:delete --name=...")
	fmt.Println("  export [--name=...] [--ids=...] --format=pdf|xlsx|txt|eml [--out --client --photos --logo --to] [filters]")
	fmt.Println("  export:history [--limit=20]")
}

// must exits on err: not-found is informational (0), missing input a usage
// problem (2), anything else a failure (1).
func must(err error) {
	if err == nil {
		return
	}
	switch errx.KindOf(err) {
	case errx.KindNotFound:
		logx.Info().Msg(err.Error())
		os.Exit(0)
	case errx.KindMissingInput:
		logx.Warn().Msg(err.Error())
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
