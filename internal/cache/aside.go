package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ReadList is the cache-aside protocol for collection queries. On a hit the
// store is never touched. On a miss the fetch runs; empty result sets are
// returned as-is without caching, since the absence may be transient. A cache
// read or populate failure degrades to a store read and is logged, never
// surfaced; the cache is a performance layer only on the read path.
func ReadList[T any](ctx context.Context, c Cache, log zerolog.Logger, key string, ttl time.Duration, fetch func(context.Context) ([]T, error)) ([]T, error) {
	raw, err := c.Get(ctx, key)
	if err == nil {
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	} else if !errors.Is(err, ErrMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling through to store")
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	if raw, err := json.Marshal(out); err == nil {
		if err := c.Set(ctx, key, raw, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache populate failed")
		}
	}
	return out, nil
}

// ReadOne is the cache-aside protocol for point lookups. Entries are set
// without expiration; every write to the entity explicitly invalidates or
// refreshes its key.
func ReadOne[T any](ctx context.Context, c Cache, log zerolog.Logger, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	raw, err := c.Get(ctx, key)
	if err == nil {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	} else if !errors.Is(err, ErrMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling through to store")
	}

	out, err := fetch(ctx)
	if err != nil {
		return zero, err
	}
	if raw, err := json.Marshal(out); err == nil {
		if err := c.Set(ctx, key, raw, 0); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache populate failed")
		}
	}
	return out, nil
}
