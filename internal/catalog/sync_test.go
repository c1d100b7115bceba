package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"carta/internal"
	"carta/internal/storage"
)

func TestImportAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "carta.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	path := filepath.Join(dir, "vinhos1.xlsx")
	blob := mkXLSX([][]any{
		{"idx", "descricao", "preco1"},
		{1, "Vinho Tinto", "100.00"},
		{2, "Espumante Brut", "50,00"},
	})
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewImportService(db)
	n, err := svc.Import(ctx, path)
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	src, _, ok := svc.LastImport()
	if !ok || src != path {
		t.Fatalf("source=%q ok=%v", src, ok)
	}

	clash := NewRegisteredItem(2, internal.NewItem{Description: "Shadowed", Price: decimal.NewFromInt(1)}, []string{"preco1"})
	fresh := NewRegisteredItem(3, internal.NewItem{Description: "Novo", Price: decimal.NewFromInt(30)}, []string{"preco1"})
	for _, it := range []internal.CatalogItem{clash, fresh} {
		if err := db.InsertRegisteredItem(it); err != nil {
			t.Fatal(err)
		}
	}

	idx, err := svc.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 3 {
		t.Fatalf("len=%d", idx.Len())
	}
	if it, _ := idx.Get(2); it.Description != "Espumante Brut" {
		t.Fatalf("catalog row must win: %q", it.Description)
	}
	if it, _ := idx.Get(3); !it.Registered {
		t.Fatal("registered item missing")
	}
}

func TestImportMissingFile(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "carta.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := NewImportService(db).Import(context.Background(), "/nonexistent/vinhos.xlsx"); err == nil {
		t.Fatal("expected error")
	}
}
