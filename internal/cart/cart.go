// Package cart keeps the pre-order line items, mirrored write-through to the store.
package cart

import (
	"context"
	"slices"
	"sync"

	"github.com/imrishuroy/quickstore/internal/pricing"
	"github.com/imrishuroy/quickstore/internal/products"
	"github.com/imrishuroy/quickstore/internal/store"
)

// Item is a product in the cart with its quantity. Quantity is never below 1.
type Item struct {
	products.Product
	Quantity int `json:"quantity" validate:"min=1"`
}

// ChangeKind tells a new line apart from a merged one or a removal.
type ChangeKind string

const (
	Added           ChangeKind = "added"
	QuantityUpdated ChangeKind = "quantity_updated"
	Removed         ChangeKind = "removed"
)

// Change describes the effect of a cart mutation.
type Change struct {
	Kind ChangeKind `json:"kind"`
	Item Item       `json:"item"`
}

// Message is the notification text shown for the change.
func (c Change) Message() string {
	switch c.Kind {
	case Added:
		return "Added to cart!"
	case QuantityUpdated:
		return "Updated quantity in cart!"
	case Removed:
		return "Removed from cart"
	}
	return ""
}

// Controller owns the cart lines. Every mutation is written to the cart
// collection before it becomes visible; if the write fails the cart is unchanged.
type Controller struct {
	mu    sync.Mutex
	store *store.Store
	items []Item
}

// NewController returns an empty cart bound to s. Call Load to restore the mirror.
func NewController(s *store.Store) *Controller {
	return &Controller{store: s}
}

// Load replaces the in-memory cart with the persisted mirror.
func (c *Controller) Load(ctx context.Context) error {
	items, err := store.Read[Item](ctx, c.store, store.Cart)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	return nil
}

func (c *Controller) commit(ctx context.Context, next []Item) error {
	if err := store.Write(ctx, c.store, store.Cart, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

func (c *Controller) index(id string) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == id })
}

// Add puts p in the cart. An existing line for the same product gets its
// quantity bumped by one (QuantityUpdated); otherwise a line at quantity 1 is appended (Added).
func (c *Controller) Add(ctx context.Context, p products.Product) (Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(c.items)
	if i := c.index(p.ID); i >= 0 {
		next[i].Quantity++
		if err := c.commit(ctx, next); err != nil {
			return Change{}, err
		}
		return Change{Kind: QuantityUpdated, Item: next[i]}, nil
	}

	it := Item{Product: p, Quantity: 1}
	next = append(next, it)
	if err := c.commit(ctx, next); err != nil {
		return Change{}, err
	}
	return Change{Kind: Added, Item: it}, nil
}

// UpdateQuantity adds delta to the line for id, never going below 1.
// An unknown id is a no-op.
func (c *Controller) UpdateQuantity(ctx context.Context, id string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return nil
	}
	next := slices.Clone(c.items)
	next[i].Quantity = max(1, next[i].Quantity+delta)
	return c.commit(ctx, next)
}

// Remove drops the line for id. The bool is false when there was no such line.
func (c *Controller) Remove(ctx context.Context, id string) (Change, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return Change{}, false, nil
	}
	removed := c.items[i]
	next := slices.Delete(slices.Clone(c.items), i, i+1)
	if err := c.commit(ctx, next); err != nil {
		return Change{}, false, err
	}
	return Change{Kind: Removed, Item: removed}, true, nil
}

// Clear empties the cart. The in-memory cart is emptied even if writing the
// mirror fails; the error is still returned.
func (c *Controller) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	return store.Write(ctx, c.store, store.Cart, []Item{})
}

// Settle takes the placed lines out of the cart: each placed quantity is
// subtracted from the matching line and lines reaching zero are dropped.
// Lines added or raised after the order was priced stay in the cart.
// Like Clear, the in-memory cart is settled even if writing the mirror fails.
func (c *Controller) Settle(ctx context.Context, placed []Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ordered := make(map[string]int, len(placed))
	for _, it := range placed {
		ordered[it.ID] += it.Quantity
	}
	next := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		it.Quantity -= ordered[it.ID]
		if it.Quantity > 0 {
			next = append(next, it)
		}
	}
	c.items = next
	return store.Write(ctx, c.store, store.Cart, next)
}

// Items returns a copy of the cart lines.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Count is the total number of units, used for the cart badge.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Totals prices the current cart.
func (c *Controller) Totals() pricing.Totals {
	return pricing.Compute(Lines(c.Items()))
}

// Lines converts cart items into pricing lines.
func Lines(items []Item) []pricing.Line {
	out := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		out = append(out, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	return out
}
