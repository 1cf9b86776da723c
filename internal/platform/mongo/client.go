package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"scholarhub/internal/platform/config"
)

// Client wraps the mongo client with health checking capabilities.
type Client struct {
	*mongo.Client
	db string
}

// New connects to the document store and verifies the connection with a ping.
func New(ctx context.Context, cfg config.Mongo) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return &Client{Client: client, db: cfg.Database}, nil
}

// Database returns the configured application database.
func (c *Client) Database() *mongo.Database {
	return c.Client.Database(c.db)
}

// Health checks if the document store connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx, readpref.Primary())
}

// Close disconnects from the document store.
func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
