package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/quickstore/internal/store"
)

func TestToggle_TwiceRestoresMembership(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryBackend(), nil)
	require.NoError(t, store.Write(ctx, s, store.Favorites, []string{"P-1"}))
	r := NewRepository(s)

	set, err := r.Toggle(ctx, "P-2")
	require.NoError(t, err)
	require.Equal(t, []string{"P-1", "P-2"}, set)

	set, err = r.Toggle(ctx, "P-2")
	require.NoError(t, err)
	require.Equal(t, []string{"P-1"}, set)

	stored, err := store.Read[string](ctx, s, store.Favorites)
	require.NoError(t, err)
	require.Equal(t, []string{"P-1"}, stored)
}

func TestToggle_CollapsesDuplicates(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryBackend(), nil)
	require.NoError(t, store.Write(ctx, s, store.Favorites, []string{"P-9", "P-9", "P-3"}))
	r := NewRepository(s)

	// present (twice): removed completely
	set, err := r.Toggle(ctx, "P-9")
	require.NoError(t, err)
	require.Equal(t, []string{"P-3"}, set)

	// absent: added exactly once
	set, err = r.Toggle(ctx, "P-9")
	require.NoError(t, err)
	require.Equal(t, []string{"P-3", "P-9"}, set)

	ok, err := r.Contains(ctx, "P-9")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestList_EmptyStore(t *testing.T) {
	r := NewRepository(store.New(store.NewMemoryBackend(), nil))
	ids, err := r.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, ids)
}
