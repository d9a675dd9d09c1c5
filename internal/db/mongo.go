package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by the Mongo-backed stores.
const (
	CollTests       = "tests"
	CollSubmissions = "submissions"
	CollUsers       = "users"
)

// OpenMongo connects, pings and returns the named database. Call
// Client().Disconnect on shutdown.
func OpenMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	if dbName == "" {
		dbName = "questionnaireDB"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	mdb := client.Database(dbName)
	if err := ensureMongoIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return mdb, nil
}

func ensureMongoIndexes(ctx context.Context, mdb *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	idx := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{CollTests, mongo.IndexModel{Keys: bson.D{{Key: "testId", Value: 1}}, Options: unique}},
		{CollUsers, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{CollSubmissions, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}}},
	}
	for _, ix := range idx {
		if _, err := mdb.Collection(ix.coll).Indexes().CreateOne(ctx, ix.model); err != nil {
			return fmt.Errorf("mongo index %s: %w", ix.coll, err)
		}
	}
	return nil
}
