package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"scholarhub/internal/domain"
	"scholarhub/pkg/platform/sentinel"
)

type UpdateStore struct {
	coll *mongo.Collection
}

func (s *UpdateStore) Insert(ctx context.Context, update domain.Update) (domain.Update, error) {
	update.ID = primitive.NewObjectID()
	res, err := s.coll.InsertOne(ctx, update)
	if err != nil {
		return domain.Update{}, err
	}
	if res.InsertedID == nil {
		return domain.Update{}, sentinel.ErrNoEffect
	}
	return update, nil
}

func (s *UpdateStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Update, error) {
	var update domain.Update
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Update{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Update{}, err
	}
	return update, nil
}

func (s *UpdateStore) FindAll(ctx context.Context) ([]domain.Update, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *UpdateStore) BySubject(ctx context.Context, subject domain.Subject) ([]domain.Update, error) {
	return s.findMany(ctx, bson.M{"subject": subject})
}

func (s *UpdateStore) CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"projectId": projectID})
}

func (s *UpdateStore) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *UpdateStore) Update(ctx context.Context, id primitive.ObjectID, update domain.Update) error {
	update.ID = id
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *UpdateStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *UpdateStore) findMany(ctx context.Context, filter bson.M) ([]domain.Update, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []domain.Update{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
