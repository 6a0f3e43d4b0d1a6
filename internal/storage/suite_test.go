package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises the Store contract against one backend.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := newStore(t).Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SetGet", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", "v1"))
		require.NoError(t, s.Set(ctx, "k", "v2"))

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", got)
	})

	t.Run("HashRoundTrip", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.HSet(ctx, "h", map[string]string{"a": "1", "b": "2"}))
		require.NoError(t, s.HSet(ctx, "h", map[string]string{"b": "3"}))

		got, err := s.HGetAll(ctx, "h")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "3"}, got)
	})

	t.Run("HGetAllMissing", func(t *testing.T) {
		got, err := newStore(t).HGetAll(ctx, "nope")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Incr", func(t *testing.T) {
		s := newStore(t)
		for want := int64(1); want <= 3; want++ {
			got, err := s.Incr(ctx, "c")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		v, err := s.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, "3", v, "counter reads back as a decimal string")
	})

	t.Run("IncrNonInteger", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "c", "lots"))

		_, err := s.Incr(ctx, "c")
		assert.Error(t, err)

		v, err := s.Get(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, "lots", v, "a failed Incr leaves the value untouched")
	})

	t.Run("IncrConcurrent", func(t *testing.T) {
		s := newStore(t)
		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Incr(ctx, "hot")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		v, err := s.Get(ctx, "hot")
		require.NoError(t, err)
		assert.Equal(t, "50", v)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		s := newStore(t)
		for i, v := range []string{"a", "b", "c", "d"} {
			n, err := s.LPush(ctx, "l", v)
			require.NoError(t, err)
			assert.Equal(t, int64(i+1), n)
		}

		cases := []struct {
			start, stop int64
			want        []string
		}{
			{0, -1, []string{"d", "c", "b", "a"}},
			{0, 1, []string{"d", "c"}},
			{1, 2, []string{"c", "b"}},
			{2, 99, []string{"b", "a"}},
			{-2, -1, []string{"b", "a"}},
			{5, 9, nil},
			{2, 1, nil},
		}
		for _, c := range cases {
			got, err := s.LRange(ctx, "l", c.start, c.stop)
			require.NoError(t, err, "LRange(%d, %d)", c.start, c.stop)
			if len(c.want) == 0 {
				assert.Empty(t, got, "LRange(%d, %d)", c.start, c.stop)
				continue
			}
			assert.Equal(t, c.want, got, "LRange(%d, %d)", c.start, c.stop)
		}
	})

	t.Run("LRangeMissing", func(t *testing.T) {
		got, err := newStore(t).LRange(ctx, "none", 0, 9)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
