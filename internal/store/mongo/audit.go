package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scholarhub/internal/audit"
)

type AuditStore struct {
	coll *mongo.Collection
}

func (s *AuditStore) Append(ctx context.Context, event audit.Event) error {
	_, err := s.coll.InsertOne(ctx, event)
	return err
}

func (s *AuditStore) List(ctx context.Context) ([]audit.Event, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := []audit.Event{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
