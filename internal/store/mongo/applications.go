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

type ApplicationStore struct {
	coll *mongo.Collection
}

func (s *ApplicationStore) Insert(ctx context.Context, app domain.Application) (domain.Application, error) {
	app.ID = primitive.NewObjectID()
	res, err := s.coll.InsertOne(ctx, app)
	if err != nil {
		return domain.Application{}, err
	}
	if res.InsertedID == nil {
		return domain.Application{}, sentinel.ErrNoEffect
	}
	return app, nil
}

func (s *ApplicationStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Application, error) {
	var app domain.Application
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Application{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Application{}, err
	}
	return app, nil
}

func (s *ApplicationStore) FindAll(ctx context.Context) ([]domain.Application, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *ApplicationStore) FindByApplicant(ctx context.Context, accountID primitive.ObjectID) ([]domain.Application, error) {
	return s.findMany(ctx, bson.M{"applicantId": accountID})
}

func (s *ApplicationStore) CountByApplicant(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"applicantId": accountID})
}

func (s *ApplicationStore) CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"projectId": projectID})
}

func (s *ApplicationStore) DeleteByApplicant(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"applicantId": accountID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *ApplicationStore) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *ApplicationStore) Update(ctx context.Context, id primitive.ObjectID, app domain.Application) error {
	app.ID = id
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, app)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *ApplicationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *ApplicationStore) findMany(ctx context.Context, filter bson.M) ([]domain.Application, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []domain.Application{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
