package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadList(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	t.Run("miss populates, hit skips the store", func(t *testing.T) {
		m := NewMemory()
		calls := 0
		fetch := func(context.Context) ([]string, error) {
			calls++
			return []string{"a", "b"}, nil
		}

		first, err := ReadList(ctx, m, log, "list", time.Hour, fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, first)

		second, err := ReadList(ctx, m, log, "list", time.Hour, fetch)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("empty result is returned but never cached", func(t *testing.T) {
		m := NewMemory()
		calls := 0
		fetch := func(context.Context) ([]string, error) {
			calls++
			return []string{}, nil
		}

		out, err := ReadList(ctx, m, log, "empty", time.Hour, fetch)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, 0, m.Len())

		_, err = ReadList(ctx, m, log, "empty", time.Hour, fetch)
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("fetch error propagates", func(t *testing.T) {
		m := NewMemory()
		boom := errors.New("store down")
		_, err := ReadList(ctx, m, log, "bad", time.Hour, func(context.Context) ([]string, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("undecodable entry falls through to fetch", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "junk", []byte("{not json"), 0))

		out, err := ReadList(ctx, m, log, "junk", time.Hour, func(context.Context) ([]string, error) {
			return []string{"fresh"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh"}, out)
	})
}

func TestReadOne(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	type entity struct {
		Name string `json:"name"`
	}

	t.Run("populated entry is served without refetching", func(t *testing.T) {
		m := NewMemory()
		calls := 0
		fetch := func(context.Context) (entity, error) {
			calls++
			return entity{Name: "ada"}, nil
		}

		first, err := ReadOne(ctx, m, log, "one", fetch)
		require.NoError(t, err)
		second, err := ReadOne(ctx, m, log, "one", fetch)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("entry persists past the list ttl", func(t *testing.T) {
		m := NewMemory()
		_, err := ReadOne(ctx, m, log, "one", func(context.Context) (entity, error) {
			return entity{Name: "ada"}, nil
		})
		require.NoError(t, err)

		m.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
		_, err = m.Get(ctx, "one")
		assert.NoError(t, err)
	})

	t.Run("fetch error propagates", func(t *testing.T) {
		m := NewMemory()
		boom := errors.New("not found")
		_, err := ReadOne(ctx, m, log, "one", func(context.Context) (entity, error) {
			return entity{}, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}
