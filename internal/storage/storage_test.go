package storage_test

import (
	"context"
	"testing"

	"swarachna-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()

	t.Run("missing_key", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set_get_delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "cart", "[]"))
		v, err := s.Get(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, "[]", v)

		require.NoError(t, s.Delete(ctx, "cart", "absent"))
		_, err = s.Get(ctx, "cart")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	root := storage.NewMemoryStore()
	a := storage.Namespace(root, "session:a:")
	b := storage.Namespace(root, "session:b:")

	require.NoError(t, a.Set(ctx, "cart", "A"))
	require.NoError(t, b.Set(ctx, "cart", "B"))

	v, err := root.Get(ctx, "session:a:cart")
	require.NoError(t, err)
	assert.Equal(t, "A", v)

	require.NoError(t, a.Delete(ctx, "cart"))
	_, err = a.Get(ctx, "cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	v, err = b.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "B", v)
	assert.Equal(t, 1, root.Len())
}
