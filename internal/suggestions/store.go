// Package suggestions holds the persistence backends for named selections.
package suggestions

import (
	"context"
	"fmt"

	"carta/internal/config"
	"carta/internal/selection"
	"carta/internal/storage"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Open builds the store selected by cfg.SuggestionStore. The returned close
// func releases backend resources that db does not own.
func Open(ctx context.Context, cfg config.Config, db *storage.DB) (selection.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SuggestionStore {
	case "", BackendSQLite:
		if db == nil {
			return nil, nil, fmt.Errorf("sqlite suggestion store needs an open database")
		}
		return NewSQLiteStore(db), noop, nil
	case BackendFile:
		return NewFileStore(cfg.SuggestionsDir), noop, nil
	case BackendRedis:
		if err := cfg.Require("REDIS_URL", cfg.RedisURL); err != nil {
			return nil, nil, err
		}
		store, err := NewRedisStore(ctx, RedisOptions{URL: cfg.RedisURL, Prefix: cfg.RedisPrefix})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown SUGGESTION_STORE %q (want sqlite, file or redis)", cfg.SuggestionStore)
	}
}
