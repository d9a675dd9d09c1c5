package exam

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mind-engage/mindengage-quiz/internal/db"
)

// MongoStore keeps tests and submissions as documents, one per record.
type MongoStore struct {
	tests       *mongo.Collection
	submissions *mongo.Collection
}

func NewMongoStore(mdb *mongo.Database) *MongoStore {
	return &MongoStore{
		tests:       mdb.Collection(db.CollTests),
		submissions: mdb.Collection(db.CollSubmissions),
	}
}

func (s *MongoStore) PutTest(ctx context.Context, t Test) error {
	_, err := s.tests.ReplaceOne(ctx, bson.M{"testId": t.TestID}, t, options.Replace().SetUpsert(true))
	return storageErr(err, "put test "+t.TestID)
}

func (s *MongoStore) FetchByID(ctx context.Context, testID string) (Test, error) {
	var t Test
	err := s.tests.FindOne(ctx, bson.M{"testId": testID}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Test{}, errors.Wrapf(ErrNotFound, "test %q", testID)
	}
	if err != nil {
		return Test{}, storageErr(err, "fetch test "+testID)
	}
	return t, nil
}

func (s *MongoStore) ListTests(ctx context.Context) ([]TestSummary, error) {
	cur, err := s.tests.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "testId", Value: 1}}))
	if err != nil {
		return nil, storageErr(err, "list tests")
	}
	var tests []Test
	if err := cur.All(ctx, &tests); err != nil {
		return nil, storageErr(err, "list tests")
	}
	out := make([]TestSummary, 0, len(tests))
	for _, t := range tests {
		out = append(out, t.Summary())
	}
	return out, nil
}

func (s *MongoStore) Save(ctx context.Context, sub Submission) (string, error) {
	if _, err := s.submissions.InsertOne(ctx, sub); err != nil {
		return "", storageErr(err, "insert submission "+sub.ID)
	}
	return sub.ID, nil
}

func (s *MongoStore) ListSubmissions(ctx context.Context, userID string) ([]Submission, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userId"] = userID
	}
	cur, err := s.submissions.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}))
	if err != nil {
		return nil, storageErr(err, "list submissions")
	}
	var out []Submission
	if err := cur.All(ctx, &out); err != nil {
		return nil, storageErr(err, "list submissions")
	}
	return out, nil
}
