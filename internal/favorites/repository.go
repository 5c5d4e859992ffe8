// Package favorites persists the wishlist as a set of product ids.
package favorites

import (
	"context"
	"slices"

	"github.com/imrishuroy/quickstore/internal/store"
)

// Repository owns the favorites collection.
type Repository struct {
	store *store.Store
}

// NewRepository creates a favorites Repository.
func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// List returns the favorite product ids with duplicates dropped, first occurrence wins.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	ids, err := store.Read[string](ctx, r.store, store.Favorites)
	if err != nil {
		return nil, err
	}
	return dedupe(ids), nil
}

// Contains reports whether productID is a favorite.
func (r *Repository) Contains(ctx context.Context, productID string) (bool, error) {
	ids, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, productID), nil
}

// Toggle adds productID if absent or removes it if present and returns the
// resulting set. Duplicate entries left by older writers are collapsed.
func (r *Repository) Toggle(ctx context.Context, productID string) ([]string, error) {
	var result []string
	err := store.Mutate(ctx, r.store, store.Favorites, func(ids []string) ([]string, error) {
		ids = dedupe(ids)
		if i := slices.Index(ids, productID); i >= 0 {
			result = slices.Delete(ids, i, i+1)
		} else {
			result = append(ids, productID)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(result), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
