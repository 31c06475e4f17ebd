package cache

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/table"
)

const kind = "image-classification"

func summaryFixture() *table.Table {
	return table.MustNew(
		[]string{"n_examples", "n_classes"},
		[][]any{{float64(120), float64(3)}},
	)
}

func TestDiskStore(t *testing.T) {
	ctx := context.Background()
	store := NewDisk(t.TempDir())

	t.Run("missing summary", func(t *testing.T) {
		ok, err := store.Exists(ctx, "ibeans", kind)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = store.Load(ctx, "ibeans", kind)
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		want := summaryFixture()
		require.NoError(t, store.Save(ctx, "ibeans", kind, want))

		ok, err := store.Exists(ctx, "ibeans", kind)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.Load(ctx, "ibeans", kind)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("artifact lands at the canonical path", func(t *testing.T) {
		root := t.TempDir()
		s := NewDisk(root)
		require.NoError(t, s.Save(ctx, "boat", kind, summaryFixture()))

		_, err := os.Stat(dataset.SummaryPath(root, "boat", kind))
		assert.NoError(t, err)
	})
}

func setupRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store := NewRedis(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store := setupRedis(t)

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("missing summary", func(t *testing.T) {
		ok, err := store.Exists(ctx, "ibeans", kind)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = store.Load(ctx, "ibeans", kind)
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		want := summaryFixture()
		require.NoError(t, store.Save(ctx, "ibeans", kind, want))

		ok, err := store.Exists(ctx, "ibeans", kind)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.Load(ctx, "ibeans", kind)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("keys are namespaced per kind", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "shared-name", "other-kind", summaryFixture()))

		ok, err := store.Exists(ctx, "shared-name", kind)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
