// Package idempotency remembers Idempotency-Key headers so a retried checkout
// returns the first response instead of placing a second order.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imrishuroy/quickstore/internal/store"
)

// DefaultTTL is how long a key is remembered when no window is configured.
const DefaultTTL = 48 * time.Hour

var errExists = errors.New("idempotency key exists")

// Store keeps idempotency records in the idempotency collection.
// Expired records are pruned whenever a new key is created.
type Store struct {
	store     *store.Store
	ttlWindow time.Duration
	nowFunc   func() time.Time
}

// NewStore returns a configured Store. ttlWindow <= 0 uses DefaultTTL.
func NewStore(s *store.Store, ttlWindow time.Duration) *Store {
	if ttlWindow <= 0 {
		ttlWindow = DefaultTTL
	}
	return &Store{
		store:     s,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// CreateIfNotExists records key as IN_PROGRESS.
// Returns (true, nil) if the key was new, or had expired or FAILED, and now belongs to the caller.
// Returns (false, nil) if a live record exists (caller should Get to inspect).
func (s *Store) CreateIfNotExists(ctx context.Context, key string) (bool, error) {
	now := s.nowFunc().UTC()
	rec := Record{
		Key:       key,
		Status:    StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttlWindow).Unix(),
	}

	err := store.Mutate(ctx, s.store, store.Idempotency, func(list []Record) ([]Record, error) {
		kept := list[:0]
		for _, r := range list {
			if r.expired(now) {
				continue
			}
			if r.Key == key {
				if r.Status != StatusFailed {
					return nil, errExists
				}
				continue
			}
			kept = append(kept, r)
		}
		return append(kept, rec), nil
	})
	if errors.Is(err, errExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create idempotency record: %w", err)
	}
	return true, nil
}

// Get returns the live record for key, or (nil, nil) if there is none.
func (s *Store) Get(ctx context.Context, key string) (*Record, error) {
	list, err := store.Read[Record](ctx, s.store, store.Idempotency)
	if err != nil {
		return nil, fmt.Errorf("get idempotency record: %w", err)
	}
	now := s.nowFunc()
	for _, r := range list {
		if r.Key == key && !r.expired(now) {
			return &r, nil
		}
	}
	return nil, nil
}

func (s *Store) update(ctx context.Context, key string, fn func(*Record)) error {
	now := s.nowFunc().UTC()
	return store.Mutate(ctx, s.store, store.Idempotency, func(list []Record) ([]Record, error) {
		for i := range list {
			if list[i].Key == key {
				fn(&list[i])
				list[i].UpdatedAt = now
				return list, nil
			}
		}
		return nil, fmt.Errorf("idempotency key %s: %w", key, store.ErrNotFound)
	})
}

// MarkDone sets status to DONE and stores the order id and a small response to replay.
func (s *Store) MarkDone(ctx context.Context, key, orderID, responseBody string, responseStatus int) error {
	err := s.update(ctx, key, func(r *Record) {
		r.Status = StatusDone
		r.OrderID = orderID
		r.ResponseBody = responseBody
		r.ResponseStatus = responseStatus
	})
	if err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	return nil
}

// MarkFailed marks the record FAILED with a note. A FAILED key may be reused.
func (s *Store) MarkFailed(ctx context.Context, key, note string) error {
	err := s.update(ctx, key, func(r *Record) {
		r.Status = StatusFailed
		r.Note = note
	})
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}
