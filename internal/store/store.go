package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Store reads and writes whole named collections over a Backend.
// Mutations go through Mutate, which serializes read-modify-write cycles
// within this process. Other processes sharing the backend are not coordinated.
type Store struct {
	backend  Backend
	validate *validatorv10.Validate
	mu       sync.Mutex
}

// New creates a Store. v validates every decoded record; nil uses a plain validator.
func New(backend Backend, v *validatorv10.Validate) *Store {
	if v == nil {
		v = validatorv10.New()
	}
	return &Store{backend: backend, validate: v}
}

// Validate checks a value against its struct tags and registered struct-level rules.
// Non-struct values are accepted as is.
func (s *Store) Validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return s.validate.Struct(rv.Interface())
}

// Seed is the default value a collection receives when it does not exist yet.
type Seed struct {
	Collection Collection
	Value      any
}

// Initialize writes each seed whose collection is absent. Existing data is never overwritten,
// so calling it repeatedly is safe.
func (s *Store) Initialize(ctx context.Context, seeds ...Seed) error {
	for _, sd := range seeds {
		data, err := json.Marshal(sd.Value)
		if err != nil {
			return fmt.Errorf("marshal seed %s: %w", sd.Collection, err)
		}
		created, err := s.backend.SaveIfAbsent(ctx, string(sd.Collection), data)
		if err != nil {
			return fmt.Errorf("seed %s: %w: %w", sd.Collection, ErrPersistence, err)
		}
		if created {
			log.Printf("[store] seeded collection=%s", sd.Collection)
		}
	}
	return nil
}

// Read returns the collection as a list of T. A missing collection reads as empty.
func Read[T any](ctx context.Context, s *Store, c Collection) ([]T, error) {
	data, ok, err := s.backend.Load(ctx, string(c))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", c, ErrPersistence, err)
	}
	out := []T{}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", c, ErrCorruptRecord, err)
	}
	if out == nil {
		// stored as JSON null
		out = []T{}
	}
	for i := range out {
		if err := s.Validate(out[i]); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w: %v", c, i, ErrCorruptRecord, err)
		}
	}
	return out, nil
}

// Write replaces the whole collection.
func Write[T any](ctx context.Context, s *Store, c Collection, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := s.backend.Save(ctx, string(c), data); err != nil {
		return fmt.Errorf("write %s: %w: %w", c, ErrPersistence, err)
	}
	return nil
}

// Mutate reads the collection, applies fn and writes the result back. If fn
// returns an error nothing is written and the error is returned unchanged.
func Mutate[T any](ctx context.Context, s *Store, c Collection, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := Read[T](ctx, s, c)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return Write(ctx, s, c, next)
}

// ReadRecord returns the single record stored under c, or nil when absent.
func ReadRecord[T any](ctx context.Context, s *Store, c Collection) (*T, error) {
	data, ok, err := s.backend.Load(ctx, string(c))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", c, ErrPersistence, err)
	}
	trimmed := bytes.TrimSpace(data)
	if !ok || len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", c, ErrCorruptRecord, err)
	}
	if err := s.Validate(v); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", c, ErrCorruptRecord, err)
	}
	return &v, nil
}

// WriteRecord replaces the single record stored under c.
func WriteRecord[T any](ctx context.Context, s *Store, c Collection, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := s.backend.Save(ctx, string(c), data); err != nil {
		return fmt.Errorf("write %s: %w: %w", c, ErrPersistence, err)
	}
	return nil
}

// ClearRecord removes whatever is stored under c.
func (s *Store) ClearRecord(ctx context.Context, c Collection) error {
	if err := s.backend.Remove(ctx, string(c)); err != nil {
		return fmt.Errorf("clear %s: %w: %w", c, ErrPersistence, err)
	}
	return nil
}
