package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scholarhub_cache_hits_total",
		Help: "Cache reads answered without touching the store",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scholarhub_cache_misses_total",
		Help: "Cache reads that fell through to the store",
	})
)

// Redis is the production Cache backed by go-redis. The client lifecycle is
// managed by the caller.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheMisses.Inc()
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	cacheHits.Inc()
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	// Pipeline so a multi-key invalidation is one round trip.
	pipe := r.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	_, err := pipe.Exec(ctx)
	return err
}
