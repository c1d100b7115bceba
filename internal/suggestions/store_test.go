package suggestions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"carta/internal/config"
	"carta/internal/errx"
	"carta/internal/selection"
	"carta/internal/storage"
)

func openDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "carta.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func backends(t *testing.T) map[string]selection.Store {
	t.Helper()
	out := map[string]selection.Store{
		BackendSQLite: NewSQLiteStore(openDB(t)),
		BackendFile:   NewFileStore(filepath.Join(t.TempDir(), "sugestoes")),
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		prefix := "carta:test:" + filepath.Base(t.TempDir()) + ":"
		store, err := NewRedisStore(context.Background(), RedisOptions{URL: url, Prefix: prefix})
		if err != nil {
			t.Fatalf("redis: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
		out[BackendRedis] = store
	}
	return out
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Read(ctx, "ClientX")
			if err != nil || found {
				t.Fatalf("unknown read: found=%v err=%v", found, err)
			}

			if err := store.Write(ctx, "ClientX", selection.NewSet(7, 5, 6)); err != nil {
				t.Fatal(err)
			}
			got, found, err := store.Read(ctx, "ClientX")
			if err != nil || !found || !got.Equal(selection.NewSet(5, 6, 7)) {
				t.Fatalf("got %v found=%v err=%v", got.Sorted(), found, err)
			}

			if err := store.Write(ctx, "ClientX", selection.NewSet(1)); err != nil {
				t.Fatal(err)
			}
			got, _, _ = store.Read(ctx, "ClientX")
			if !got.Equal(selection.NewSet(1)) {
				t.Fatalf("write did not replace: %v", got.Sorted())
			}

			names, err := store.List(ctx)
			if err != nil || len(names) != 1 || names[0] != "ClientX" {
				t.Fatalf("names=%v err=%v", names, err)
			}

			if err := store.Delete(ctx, "ClientX"); err != nil {
				t.Fatal(err)
			}
			if err := store.Delete(ctx, "ClientX"); !errors.Is(err, errx.ErrNotFound) {
				t.Fatalf("second delete: %v", err)
			}
		})
	}
}

func TestReconcilerAgainstBackends(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := selection.NewReconciler()
			r.SelectAll(selection.NewSet(5, 6))
			if _, err := r.Save(ctx, "ClientX", store); err != nil {
				t.Fatal(err)
			}
			r.Clear()
			r.SelectAll(selection.NewSet(6, 7))
			if _, err := r.Save(ctx, "ClientX", store); err != nil {
				t.Fatal(err)
			}

			fresh := selection.NewReconciler()
			got, err := fresh.Load(ctx, "ClientX", store)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != "5,6,7" {
				t.Fatalf("got %s", got.String())
			}
		})
	}
}

func TestFileStoreEncoding(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "Legacy.txt"), []byte("4,abc,5,,6.5,7"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, found, err := store.Read(ctx, "Legacy")
	if err != nil || !found || !got.Equal(selection.NewSet(4, 5, 7)) {
		t.Fatalf("got %v found=%v err=%v", got.Sorted(), found, err)
	}

	if err := store.Write(ctx, "Legacy", selection.NewSet(12, 3)); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "Legacy.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "3,12" {
		t.Fatalf("file content %q", string(b))
	}

	if _, err := store.List(ctx); err != nil {
		t.Fatal(err)
	}
	names, _ := store.List(ctx)
	if len(names) != 1 {
		t.Fatalf("temp files leaked into list: %v", names)
	}
}

func TestFileStoreListMissingDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List(context.Background())
	if err != nil || len(names) != 0 {
		t.Fatalf("names=%v err=%v", names, err)
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	cases := []struct {
		backend string
		wantErr bool
	}{
		{"sqlite", false},
		{"", false},
		{"file", false},
		{"redis", true},
		{"mongo", true},
	}
	for _, tc := range cases {
		t.Run(tc.backend, func(t *testing.T) {
			cfg := config.Config{SuggestionStore: tc.backend, SuggestionsDir: t.TempDir()}
			store, closeFn, err := Open(ctx, cfg, db)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || store == nil {
				t.Fatalf("store=%v err=%v", store, err)
			}
			_ = closeFn()
		})
	}
}
