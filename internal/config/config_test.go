package config

import "testing"

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PRICE_LISTS", " Preco1, preco38 ,,")
	t.Setenv("MARKUP_FACTOR", "2.5")
	t.Setenv("SUGGESTION_STORE", "FILE")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Env != Production {
		t.Fatalf("env=%s", cfg.Env)
	}
	if len(cfg.PriceLists) != 2 || cfg.PriceLists[0] != "preco1" || cfg.PriceLists[1] != "preco38" {
		t.Fatalf("price lists=%v", cfg.PriceLists)
	}
	if cfg.MarkupFactor != 2.5 || cfg.SuggestionStore != "file" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !cfg.HasPriceList("preco38") || cfg.HasPriceList("preco2") {
		t.Fatal("HasPriceList mismatch")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRICE_LISTS", "")
	t.Setenv("MARKUP_FACTOR", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MarkupFactor != 2.0 || len(cfg.PriceLists) != 7 || cfg.DefaultPriceList != "preco1" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadRejectsNonPositiveFactor(t *testing.T) {
	t.Setenv("MARKUP_FACTOR", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseEnvironment(t *testing.T) {
	cases := map[string]Environment{
		"production": Production,
		" TESTING ":  Testing,
		"":           Development,
		"staging":    Development,
	}
	for in, want := range cases {
		if got := ParseEnvironment(in); got != want {
			t.Fatalf("ParseEnvironment(%q) got %s want %s", in, got, want)
		}
	}
}

func TestRequire(t *testing.T) {
	var cfg Config
	if err := cfg.Require("REDIS_URL", "  "); err == nil {
		t.Fatal("expected error")
	}
	if err := cfg.Require("REDIS_URL", "redis://localhost:6379/0"); err != nil {
		t.Fatal(err)
	}
}
