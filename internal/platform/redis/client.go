// Package redis owns the process-wide redis connection used by the cache
// layer. The cache is optional: an unset URL means the service runs on the
// in-memory cache instead, so New reports that case as (nil, nil) rather
// than an error.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"scholarhub/internal/platform/config"
)

// Client is the shared redis connection. It satisfies the transport layer's
// health-check interface.
type Client struct {
	*redis.Client
}

// New dials redis using the configured URL. A verification ping runs before
// the client is handed out so a bad address fails at startup, not on the
// first cache read.
func New(ctx context.Context, cfg config.Redis) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url %q: %w", cfg.URL, err)
	}
	applyOverrides(opts, cfg)

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{Client: client}, nil
}

// applyOverrides layers pool and timeout settings from config over whatever
// the URL encoded. Zero values keep go-redis defaults.
func applyOverrides(opts *redis.Options, cfg config.Redis) {
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
