package suggestions

import (
	"context"

	"carta/internal/errx"
	"carta/internal/selection"
	"carta/internal/storage"
)

// SQLiteStore keeps suggestions in the suggestions table using the same
// comma-separated encoding as the file store.
type SQLiteStore struct {
	db *storage.DB
}

func NewSQLiteStore(db *storage.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) List(_ context.Context) ([]string, error) {
	return s.db.ListSuggestionNames()
}

func (s *SQLiteStore) Read(_ context.Context, name string) (selection.Set, bool, error) {
	raw, err := s.db.GetSuggestion(name)
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return selection.Set{}, false, nil
	}
	return selection.ParseSet(*raw), true, nil
}

func (s *SQLiteStore) Write(_ context.Context, name string, ids selection.Set) error {
	return s.db.UpsertSuggestion(name, ids.String())
}

func (s *SQLiteStore) Delete(_ context.Context, name string) error {
	removed, err := s.db.DeleteSuggestion(name)
	if err != nil {
		return err
	}
	if !removed {
		return errx.NotFound("suggestion %q not found", name)
	}
	return nil
}
