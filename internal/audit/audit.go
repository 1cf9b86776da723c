// Package audit captures an append-only trail of entity mutations. The trail
// is observability, not a correctness dependency: append failures are logged
// by callers and never fail the mutation that produced them.
package audit

import (
	"context"
	"time"
)

// Event records one committed mutation.
type Event struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Kind      string    `bson:"kind" json:"kind"`     // account, project, update, application
	Action    string    `bson:"action" json:"action"` // create, edit, remove
	EntityID  string    `bson:"entityId" json:"entityId"`
	Detail    string    `bson:"detail,omitempty" json:"detail,omitempty"`
}

// Store is the sink events are appended to. Keep it transport-agnostic so
// tests can swap sinks easily.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}

// Publisher stamps and appends events.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context) ([]Event, error) {
	return p.store.List(ctx)
}
