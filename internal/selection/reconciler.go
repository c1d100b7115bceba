// Package selection keeps the set of chosen catalog ids for a session and
// persists it as named suggestions.
package selection

import (
	"context"
	"errors"
	"strings"
	"sync"

	"carta/internal/errx"
)

// Store persists named id sets. Read reports found=false for an unknown name;
// Delete returns an errx not-found error for one.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) (Set, bool, error)
	Write(ctx context.Context, name string, ids Set) error
	Delete(ctx context.Context, name string) error
}

// Reconciler owns the global selection of one session. Every operation swaps
// the whole set at once, so a half-applied edit batch is never visible.
type Reconciler struct {
	mu       sync.Mutex
	selected Set
}

func NewReconciler() *Reconciler {
	return &Reconciler{selected: Set{}}
}

// Selection returns a copy of the current selection.
func (r *Reconciler) Selection() Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected.Clone()
}

func (r *Reconciler) Contains(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected.Has(id)
}

func (r *Reconciler) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.selected)
}

// ApplyViewEdits merges the checkbox state of a filtered view. Only ids present
// in curr can change: an id becomes selected when curr marks it and prev did
// not, and is dropped when prev marked it and curr unmarks it. Ids outside the
// view keep their state.
func (r *Reconciler) ApplyViewEdits(prev, curr map[int]bool) Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.selected.Clone()
	for id, checked := range curr {
		was := prev[id]
		switch {
		case checked && !was:
			next[id] = struct{}{}
		case !checked && was:
			delete(next, id)
		}
	}
	r.selected = next
	return next.Clone()
}

// SelectAll adds every id of the view.
func (r *Reconciler) SelectAll(viewIDs Set) Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = r.selected.Union(viewIDs)
	return r.selected.Clone()
}

// Remove drops ids from the selection.
func (r *Reconciler) Remove(ids Set) Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.selected.Clone()
	for id := range ids {
		delete(next, id)
	}
	r.selected = next
	return next.Clone()
}

func (r *Reconciler) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = Set{}
}

// Save merges the selection into the suggestion stored under name and returns
// the persisted set. It never removes previously saved ids.
func (r *Reconciler) Save(ctx context.Context, name string, store Store) (Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errx.MissingInput("suggestion name is required")
	}
	current := r.Selection()
	if len(current) == 0 {
		return nil, errx.MissingInput("nothing selected to save")
	}

	existing, _, err := store.Read(ctx, name)
	if err != nil {
		return nil, asStoreErr(err, "read suggestion %q", name)
	}
	merged := existing.Union(current)
	if err := store.Write(ctx, name, merged); err != nil {
		return nil, asStoreErr(err, "write suggestion %q", name)
	}
	return merged, nil
}

// Load replaces the selection with the suggestion stored under name. On any
// failure the selection is left untouched.
func (r *Reconciler) Load(ctx context.Context, name string, store Store) (Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errx.MissingInput("suggestion name is required")
	}
	ids, found, err := store.Read(ctx, name)
	if err != nil {
		return nil, asStoreErr(err, "read suggestion %q", name)
	}
	if !found {
		return nil, errx.NotFound("suggestion %q not found", name)
	}

	r.mu.Lock()
	r.selected = ids.Clone()
	r.mu.Unlock()
	return ids.Clone(), nil
}

// Delete removes the suggestion stored under name. The selection is not
// affected.
func (r *Reconciler) Delete(ctx context.Context, name string, store Store) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errx.MissingInput("suggestion name is required")
	}
	if err := store.Delete(ctx, name); err != nil {
		if errors.Is(err, errx.ErrNotFound) {
			return err
		}
		return asStoreErr(err, "delete suggestion %q", name)
	}
	return nil
}

func asStoreErr(err error, format string, args ...any) error {
	if errx.KindOf(err) != errx.KindUnknown {
		return err
	}
	return errx.Store(err, format, args...)
}
