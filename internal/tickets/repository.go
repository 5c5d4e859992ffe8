package tickets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imrishuroy/quickstore/internal/store"
)

// Repository owns the tickets collection.
type Repository struct {
	store   *store.Store
	newID   store.IDFunc
	nowFunc func() time.Time
}

// NewRepository creates a tickets Repository. newID nil uses store.NewID.
func NewRepository(s *store.Store, newID store.IDFunc) *Repository {
	if newID == nil {
		newID = store.NewID
	}
	return &Repository{store: s, newID: newID, nowFunc: time.Now}
}

// List returns every ticket, newest first.
func (r *Repository) List(ctx context.Context) ([]Ticket, error) {
	return store.Read[Ticket](ctx, r.store, store.Tickets)
}

// ListByUser returns the tickets raised by userID.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Ticket, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Ticket, 0, len(all))
	for _, t := range all {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Get returns the ticket with id or store.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (Ticket, error) {
	all, err := r.List(ctx)
	if err != nil {
		return Ticket{}, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, nil
		}
	}
	return Ticket{}, fmt.Errorf("ticket %s: %w", id, store.ErrNotFound)
}

// Create opens a ticket with no replies at the head of the list.
func (r *Repository) Create(ctx context.Context, nt NewTicket) (Ticket, error) {
	if err := r.store.Validate(nt); err != nil {
		return Ticket{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	t := Ticket{
		ID:             r.newID("TKT"),
		UserID:         nt.UserID,
		CustomerName:   nt.CustomerName,
		CustomerMobile: nt.CustomerMobile,
		Subject:        strings.TrimSpace(nt.Subject),
		Message:        nt.Message,
		Status:         StatusOpen,
		Replies:        []Reply{},
		CreatedAt:      r.nowFunc().UTC(),
	}
	err := store.Mutate(ctx, r.store, store.Tickets, func(list []Ticket) ([]Ticket, error) {
		return append([]Ticket{t}, list...), nil
	})
	if err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// update applies fn to the ticket with id and persists the result.
func (r *Repository) update(ctx context.Context, id string, fn func(*Ticket) error) (Ticket, error) {
	var updated Ticket
	err := store.Mutate(ctx, r.store, store.Tickets, func(list []Ticket) ([]Ticket, error) {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if err := fn(&list[i]); err != nil {
				return nil, err
			}
			updated = list[i]
			return list, nil
		}
		return nil, fmt.Errorf("ticket %s: %w", id, store.ErrNotFound)
	})
	if err != nil {
		return Ticket{}, err
	}
	return updated, nil
}

// AddReply appends a reply to the ticket thread; missing tickets fail with store.ErrNotFound.
func (r *Repository) AddReply(ctx context.Context, ticketID string, sender Sender, message string) (Ticket, error) {
	reply := Reply{
		ID:        r.newID("REP"),
		Sender:    sender,
		Message:   message,
		CreatedAt: r.nowFunc().UTC(),
	}
	if err := r.store.Validate(reply); err != nil {
		return Ticket{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	return r.update(ctx, ticketID, func(t *Ticket) error {
		t.Replies = append(t.Replies, reply)
		return nil
	})
}

// UpdateStatus sets the ticket status; missing tickets fail with store.ErrNotFound.
func (r *Repository) UpdateStatus(ctx context.Context, ticketID string, status Status) (Ticket, error) {
	if !status.Valid() {
		return Ticket{}, fmt.Errorf("%w: unknown ticket status %q", store.ErrInvalid, status)
	}
	return r.update(ctx, ticketID, func(t *Ticket) error {
		t.Status = status
		return nil
	})
}

// Delete removes the ticket with id; a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return store.Mutate(ctx, r.store, store.Tickets, func(list []Ticket) ([]Ticket, error) {
		out := list[:0]
		for _, t := range list {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out, nil
	})
}
