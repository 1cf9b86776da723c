package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"scholarhub/internal/domain"
	"scholarhub/pkg/platform/sentinel"
)

type ProjectStore struct {
	coll *mongo.Collection
}

func (s *ProjectStore) Insert(ctx context.Context, project domain.Project) (domain.Project, error) {
	project.ID = primitive.NewObjectID()
	res, err := s.coll.InsertOne(ctx, project)
	if err != nil {
		return domain.Project{}, err
	}
	if res.InsertedID == nil {
		return domain.Project{}, sentinel.ErrNoEffect
	}
	return project, nil
}

func (s *ProjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Project, error) {
	var project domain.Project
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Project{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *ProjectStore) FindAll(ctx context.Context) ([]domain.Project, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *ProjectStore) ByDepartment(ctx context.Context, dep domain.Department) ([]domain.Project, error) {
	return s.findMany(ctx, bson.M{"department": dep})
}

func (s *ProjectStore) ByYearRange(ctx context.Context, min, max int) ([]domain.Project, error) {
	return s.findMany(ctx, bson.M{"createdYear": bson.M{"$gte": min, "$lte": max}})
}

func (s *ProjectStore) SearchByTitle(ctx context.Context, term string) ([]domain.Project, error) {
	filter := bson.M{"title": bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}}
	return s.findMany(ctx, filter)
}

func (s *ProjectStore) FindByMember(ctx context.Context, accountID primitive.ObjectID) ([]domain.Project, error) {
	return s.findMany(ctx, memberFilter(accountID))
}

func (s *ProjectStore) CountByMember(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, memberFilter(accountID))
}

func (s *ProjectStore) Update(ctx context.Context, id primitive.ObjectID, project domain.Project) error {
	project.ID = id
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, project)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *ProjectStore) findMany(ctx context.Context, filter bson.M) ([]domain.Project, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []domain.Project{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func memberFilter(accountID primitive.ObjectID) bson.M {
	return bson.M{"$or": []bson.M{
		{"professorIds": accountID},
		{"studentIds": accountID},
	}}
}
