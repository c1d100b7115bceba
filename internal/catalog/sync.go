package catalog

import (
	"context"
	"fmt"
	"time"

	"carta/internal/logx"
	"carta/internal/storage"
)

const (
	metaLastImport = "catalog.last_import"
	metaSource     = "catalog.source"
)

// ImportService snapshots catalog workbooks into the database and rebuilds the
// in-memory index from it.
type ImportService struct {
	db *storage.DB
}

func NewImportService(db *storage.DB) *ImportService {
	return &ImportService{db: db}
}

// Import replaces the stored catalog with the rows of path.
func (s *ImportService) Import(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	items, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("catalog %s has no rows", path)
	}
	if err := s.db.ReplaceCatalog(items); err != nil {
		return 0, err
	}
	_ = s.db.SetMetadata(metaLastImport, time.Now().UTC().Format(time.RFC3339))
	_ = s.db.SetMetadata(metaSource, path)
	return len(items), nil
}

// Load returns the stored catalog plus the registered items. On an id clash
// the imported row wins.
func (s *ImportService) Load(ctx context.Context) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := s.db.ListCatalog()
	if err != nil {
		return nil, err
	}
	idx := BuildIndex(items)

	registered, err := s.db.ListRegisteredItems()
	if err != nil {
		return nil, err
	}
	for _, it := range registered {
		if !idx.Add(it) {
			logx.Warn().Int("idx", it.ID).Str("description", it.Description).Msg("registered item shadowed by imported catalog row")
		}
	}
	return idx, nil
}

// LastImport reports when and from where the catalog was last imported.
func (s *ImportService) LastImport() (source string, at time.Time, ok bool) {
	src, err := s.db.GetMetadata(metaSource)
	if err != nil || src == nil {
		return "", time.Time{}, false
	}
	last, err := s.db.GetMetadata(metaLastImport)
	if err != nil || last == nil {
		return *src, time.Time{}, true
	}
	parsed, _ := time.Parse(time.RFC3339, *last)
	return *src, parsed, true
}
