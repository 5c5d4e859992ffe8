package products

import (
	"context"
	"fmt"
	"time"

	"github.com/imrishuroy/quickstore/internal/store"
)

// Repository owns the products collection.
type Repository struct {
	store   *store.Store
	newID   store.IDFunc
	nowFunc func() time.Time
}

// NewRepository creates a products Repository. newID nil uses store.NewID.
func NewRepository(s *store.Store, newID store.IDFunc) *Repository {
	if newID == nil {
		newID = store.NewID
	}
	return &Repository{store: s, newID: newID, nowFunc: time.Now}
}

// List returns every product in stored order.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	return store.Read[Product](ctx, r.store, store.Products)
}

// Get returns the product with id or store.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
}

// Create appends a new product with a fresh id and creation time.
func (r *Repository) Create(ctx context.Context, np NewProduct) (Product, error) {
	if err := r.store.Validate(np); err != nil {
		return Product{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	p := Product{
		ID:          r.newID("P"),
		Name:        np.Name,
		Description: np.Description,
		Category:    np.Category,
		Image:       np.Image,
		Price:       np.Price,
		Stock:       np.Stock,
		CreatedAt:   r.nowFunc().UTC(),
	}
	err := store.Mutate(ctx, r.store, store.Products, func(ps []Product) ([]Product, error) {
		return append(ps, p), nil
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update merges patch into the product with id. Missing ids fail with store.ErrNotFound.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (Product, error) {
	var updated Product
	err := store.Mutate(ctx, r.store, store.Products, func(ps []Product) ([]Product, error) {
		for i := range ps {
			if ps[i].ID != id {
				continue
			}
			merged := patch.apply(ps[i])
			if err := r.store.Validate(merged); err != nil {
				return nil, fmt.Errorf("%w: %v", store.ErrInvalid, err)
			}
			ps[i] = merged
			updated = merged
			return ps, nil
		}
		return nil, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
	})
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

// Delete removes the product with id. Deleting a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return store.Mutate(ctx, r.store, store.Products, func(ps []Product) ([]Product, error) {
		out := ps[:0]
		for _, p := range ps {
			if p.ID != id {
				out = append(out, p)
			}
		}
		return out, nil
	})
}
