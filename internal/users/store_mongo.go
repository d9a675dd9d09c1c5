package users

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mind-engage/mindengage-quiz/internal/db"
)

type MongoStore struct{ users *mongo.Collection }

func NewMongoStore(mdb *mongo.Database) *MongoStore {
	return &MongoStore{users: mdb.Collection(db.CollUsers)}
}

func (s *MongoStore) Create(ctx context.Context, u User) error {
	_, err := s.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrapf(ErrEmailTaken, "%s", u.Email)
	}
	return errors.Wrap(err, "insert user")
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "find user")
	}
	return u, nil
}

func (s *MongoStore) UpdatePhone(ctx context.Context, id, phone string) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"phone_number": phone}})
	if err != nil {
		return errors.Wrap(err, "update phone")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
