package audit

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollection = "dispatch_audit"

// MongoStorage persists entries in a MongoDB collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a Mongo-backed storage in the dispatch_audit
// collection of the given database.
func NewMongoStorage(db *mongo.Database) (*MongoStorage, error) {
	if db == nil {
		return nil, errors.New("audit: mongo database is required")
	}
	return &MongoStorage{coll: db.Collection(defaultCollection)}, nil
}

// EnsureIndexes creates the indexes List relies on. Safe to call on every
// startup.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "target_user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("audit: create indexes: %w", err)
	}
	return nil
}

// Store implements Storage.
func (s *MongoStorage) Store(ctx context.Context, e Entry) error {
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("audit: insert entry %s: %w", e.ID, err)
	}
	return nil
}

// List implements Storage.
func (s *MongoStorage) List(ctx context.Context, f Filter) ([]Entry, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["target_user_id"] = f.UserID
	}
	if f.Kind != "" {
		filter["kind"] = f.Kind
	}
	if f.DeliveredOnly {
		filter["delivered"] = true
	}
	if !f.Since.IsZero() {
		filter["created_at"] = bson.M{"$gte": f.Since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts = opts.SetLimit(int64(f.Limit))
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("audit: query entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("audit: decode entries: %w", err)
	}
	return entries, nil
}
