package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/store"
)

// ErrNotEligible is returned when a user without a matching order tries to review a product.
var ErrNotEligible = errors.New("user has not ordered this product")

// OrderLister is the read access reviews need to decide eligibility.
type OrderLister interface {
	ListByUser(ctx context.Context, userID string) ([]orders.Order, error)
}

// Repository owns the reviews collection. Reviews are kept most-recent-first.
type Repository struct {
	store   *store.Store
	orders  OrderLister
	newID   store.IDFunc
	nowFunc func() time.Time
}

// NewRepository creates a reviews Repository. newID nil uses store.NewID.
func NewRepository(s *store.Store, ol OrderLister, newID store.IDFunc) *Repository {
	if newID == nil {
		newID = store.NewID
	}
	return &Repository{store: s, orders: ol, newID: newID, nowFunc: time.Now}
}

// List returns all reviews, or only those for productID when it is non-empty.
func (r *Repository) List(ctx context.Context, productID string) ([]Review, error) {
	all, err := store.Read[Review](ctx, r.store, store.Reviews)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return all, nil
	}
	out := make([]Review, 0, len(all))
	for _, rv := range all {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// CanReview reports whether userID has an order containing productID.
func (r *Repository) CanReview(ctx context.Context, userID, productID string) (bool, error) {
	placed, err := r.orders.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, o := range placed {
		if o.Contains(productID) {
			return true, nil
		}
	}
	return false, nil
}

// Create stores a review at the head of the list. Users without an order
// containing the product get ErrNotEligible.
func (r *Repository) Create(ctx context.Context, nr NewReview) (Review, error) {
	if err := r.store.Validate(nr); err != nil {
		return Review{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	ok, err := r.CanReview(ctx, nr.UserID, nr.ProductID)
	if err != nil {
		return Review{}, err
	}
	if !ok {
		return Review{}, ErrNotEligible
	}

	rv := Review{
		ID:        r.newID("REV"),
		ProductID: nr.ProductID,
		UserID:    nr.UserID,
		UserName:  nr.UserName,
		Rating:    nr.Rating,
		Comment:   nr.Comment,
		CreatedAt: r.nowFunc().UTC(),
	}
	err = store.Mutate(ctx, r.store, store.Reviews, func(list []Review) ([]Review, error) {
		return append([]Review{rv}, list...), nil
	})
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

// Update merges patch into the review with id; missing ids fail with store.ErrNotFound.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (Review, error) {
	var updated Review
	err := store.Mutate(ctx, r.store, store.Reviews, func(list []Review) ([]Review, error) {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			rv := list[i]
			if patch.Rating != nil {
				rv.Rating = *patch.Rating
			}
			if patch.Comment != nil {
				rv.Comment = *patch.Comment
			}
			if err := r.store.Validate(rv); err != nil {
				return nil, fmt.Errorf("%w: %v", store.ErrInvalid, err)
			}
			list[i] = rv
			updated = rv
			return list, nil
		}
		return nil, fmt.Errorf("review %s: %w", id, store.ErrNotFound)
	})
	if err != nil {
		return Review{}, err
	}
	return updated, nil
}

// Delete removes the review with id; a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return store.Mutate(ctx, r.store, store.Reviews, func(list []Review) ([]Review, error) {
		out := list[:0]
		for _, rv := range list {
			if rv.ID != id {
				out = append(out, rv)
			}
		}
		return out, nil
	})
}
