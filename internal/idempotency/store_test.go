package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imrishuroy/quickstore/internal/store"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s := NewStore(store.New(store.NewMemoryBackend(), nil), ttl)
	s.nowFunc = func() time.Time { return now }
	return s, &now
}

func TestCreateIfNotExists_Get_MarkDone_MarkFailed(t *testing.T) {
	s, _ := newTestStore(48 * time.Hour)
	ctx := context.Background()
	key := "test-key-1"

	created, err := s.CreateIfNotExists(ctx, key)
	if err != nil {
		t.Fatalf("CreateIfNotExists error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true")
	}

	// second create should return created=false (exists)
	created2, err := s.CreateIfNotExists(ctx, key)
	if err != nil {
		t.Fatalf("second CreateIfNotExists error: %v", err)
	}
	if created2 {
		t.Fatalf("expected created=false on duplicate create")
	}

	rec, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected record, got nil")
	}
	if rec.Status != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", rec.Status)
	}

	if err := s.MarkDone(ctx, key, "ORD-1", `{"ok":true}`, 201); err != nil {
		t.Fatalf("MarkDone error: %v", err)
	}
	rec, _ = s.Get(ctx, key)
	if rec.Status != StatusDone || rec.OrderID != "ORD-1" || rec.ResponseBody != `{"ok":true}` || rec.ResponseStatus != 201 {
		t.Fatalf("record not updated: %+v", rec)
	}

	if err := s.MarkFailed(ctx, key, "failed-reason"); err != nil {
		t.Fatalf("MarkFailed error: %v", err)
	}
	rec, _ = s.Get(ctx, key)
	if rec.Status != StatusFailed || rec.Note != "failed-reason" {
		t.Fatalf("record not failed: %+v", rec)
	}

	// a failed key can be taken over by a retry
	created3, err := s.CreateIfNotExists(ctx, key)
	if err != nil || !created3 {
		t.Fatalf("retry after failure: created=%v err=%v", created3, err)
	}
}

func TestGet_Missing(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	rec, err := s.Get(context.Background(), "nope")
	if err != nil || rec != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", rec, err)
	}
	if err := s.MarkDone(context.Background(), "nope", "", "", 200); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("MarkDone unknown key: %v", err)
	}
}

func TestCreateIfNotExists_ExpiredKeyIsReusedAndPruned(t *testing.T) {
	s, now := newTestStore(time.Hour)
	ctx := context.Background()

	if _, err := s.CreateIfNotExists(ctx, "old"); err != nil {
		t.Fatalf("create: %v", err)
	}
	*now = now.Add(2 * time.Hour)

	rec, err := s.Get(ctx, "old")
	if err != nil || rec != nil {
		t.Fatalf("expired key should read as missing, got %+v %v", rec, err)
	}
	created, err := s.CreateIfNotExists(ctx, "new")
	if err != nil || !created {
		t.Fatalf("create new: %v %v", created, err)
	}
	list, err := store.Read[Record](ctx, s.store, store.Idempotency)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(list) != 1 || list[0].Key != "new" {
		t.Fatalf("expired record not pruned: %+v", list)
	}
}
