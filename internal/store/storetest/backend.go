// Package storetest provides backends for exercising failure paths of code built on store.
package storetest

import (
	"context"
	"errors"
	"sync"

	"github.com/imrishuroy/quickstore/internal/store"
)

// ErrInjected is returned by FlakyBackend for keys configured to fail.
var ErrInjected = errors.New("injected backend failure")

// FlakyBackend wraps a MemoryBackend and fails loads or saves for chosen keys.
type FlakyBackend struct {
	*store.MemoryBackend

	mu        sync.Mutex
	failSave  map[string]bool
	failLoad  map[string]bool
	saveCalls map[string]int
}

// NewFlakyBackend returns a FlakyBackend that behaves like a MemoryBackend until told to fail.
func NewFlakyBackend() *FlakyBackend {
	return &FlakyBackend{
		MemoryBackend: store.NewMemoryBackend(),
		failSave:      map[string]bool{},
		failLoad:      map[string]bool{},
		saveCalls:     map[string]int{},
	}
}

// FailSaves makes every Save/SaveIfAbsent/Remove on c fail while on is true.
func (f *FlakyBackend) FailSaves(c store.Collection, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSave[string(c)] = on
}

// FailLoads makes every Load on c fail while on is true.
func (f *FlakyBackend) FailLoads(c store.Collection, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failLoad[string(c)] = on
}

// SaveCalls reports how many successful saves hit c.
func (f *FlakyBackend) SaveCalls(c store.Collection) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveCalls[string(c)]
}

func (f *FlakyBackend) saveFails(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failSave[key]
}

func (f *FlakyBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failLoad[key]
	f.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return f.MemoryBackend.Load(ctx, key)
}

func (f *FlakyBackend) Save(ctx context.Context, key string, data []byte) error {
	if f.saveFails(key) {
		return ErrInjected
	}
	f.mu.Lock()
	f.saveCalls[key]++
	f.mu.Unlock()
	return f.MemoryBackend.Save(ctx, key, data)
}

func (f *FlakyBackend) SaveIfAbsent(ctx context.Context, key string, data []byte) (bool, error) {
	if f.saveFails(key) {
		return false, ErrInjected
	}
	return f.MemoryBackend.SaveIfAbsent(ctx, key, data)
}

func (f *FlakyBackend) Remove(ctx context.Context, key string) error {
	if f.saveFails(key) {
		return ErrInjected
	}
	return f.MemoryBackend.Remove(ctx, key)
}
