package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/imrishuroy/quickstore/internal/store"
)

// Repository owns the orders collection. Orders are kept most-recent-first.
type Repository struct {
	store   *store.Store
	newID   store.IDFunc
	nowFunc func() time.Time
}

// NewRepository creates an orders Repository. newID nil uses store.NewID.
func NewRepository(s *store.Store, newID store.IDFunc) *Repository {
	if newID == nil {
		newID = store.NewID
	}
	return &Repository{store: s, newID: newID, nowFunc: time.Now}
}

// List returns all orders, newest first.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	return store.Read[Order](ctx, r.store, store.Orders)
}

// ListByUser returns the orders placed by userID, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Get returns the order with id or store.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (Order, error) {
	all, err := r.List(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range all {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
}

// Create persists the draft as a new Processing order at the head of the list.
// The items are copied, so later changes to the caller's slice or to the
// product catalog never reach the stored order.
func (r *Repository) Create(ctx context.Context, d Draft) (Order, error) {
	if err := r.store.Validate(d); err != nil {
		return Order{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	o := Order{
		ID:              r.newID("ORD"),
		UserID:          d.UserID,
		CustomerName:    d.CustomerName,
		CustomerMobile:  d.CustomerMobile,
		Items:           cloneItems(d.Items),
		Total:           d.Total,
		PaymentMethod:   d.PaymentMethod,
		ShippingAddress: d.ShippingAddress,
		Status:          StatusProcessing,
		CreatedAt:       r.nowFunc().UTC(),
	}
	err := store.Mutate(ctx, r.store, store.Orders, func(list []Order) ([]Order, error) {
		return append([]Order{o}, list...), nil
	})
	if err != nil {
		return Order{}, err
	}
	log.Printf("[orders] created order=%s user=%s total=%.2f", o.ID, o.UserID, o.Total)
	return o, nil
}

// UpdateStatus sets the status of orderID. An unknown orderID is a silent no-op,
// unlike Update on the other repositories.
func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", store.ErrInvalid, status)
	}
	return store.Mutate(ctx, r.store, store.Orders, func(list []Order) ([]Order, error) {
		for i := range list {
			if list[i].ID == orderID {
				list[i].Status = status
			}
		}
		return list, nil
	})
}
