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

type AccountStore struct {
	coll *mongo.Collection
}

func (s *AccountStore) Insert(ctx context.Context, account domain.Account) (domain.Account, error) {
	account.ID = primitive.NewObjectID()
	res, err := s.coll.InsertOne(ctx, account)
	if err != nil {
		return domain.Account{}, err
	}
	if res.InsertedID == nil {
		return domain.Account{}, sentinel.ErrNoEffect
	}
	return account, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Account, error) {
	var account domain.Account
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Account{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	filter := bson.M{"email": bson.M{"$regex": "^" + regexp.QuoteMeta(email) + "$", "$options": "i"}}
	var account domain.Account
	err := s.coll.FindOne(ctx, filter).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Account{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *AccountStore) FindAll(ctx context.Context) ([]domain.Account, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *AccountStore) SearchByName(ctx context.Context, term string) ([]domain.Account, error) {
	pattern := regexp.QuoteMeta(term)
	filter := bson.M{"$or": []bson.M{
		{"firstName": bson.M{"$regex": pattern, "$options": "i"}},
		{"lastName": bson.M{"$regex": pattern, "$options": "i"}},
	}}
	return s.findMany(ctx, filter)
}

func (s *AccountStore) Update(ctx context.Context, id primitive.ObjectID, account domain.Account) error {
	account.ID = id
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, account)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return sentinel.ErrNoEffect
	}
	return nil
}

func (s *AccountStore) findMany(ctx context.Context, filter bson.M) ([]domain.Account, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []domain.Account{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
