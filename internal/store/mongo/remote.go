// Package mongo implements store.RemoteCollection against a MongoDB
// database. Records use their stable string id as the document _id;
// writes are whole-document replacements with upsert, matching the
// last-writer-wins contract of the durable store.
package mongo

import (
	"context"
	"errors"

	"arete/coaching-app/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// remoteCollection implements store.RemoteCollection for one collection.
type remoteCollection[T store.Record] struct {
	collection *mongo.Collection
}

// NewRemoteCollection returns a RemoteCollection backed by the named
// MongoDB collection. It expects a connected *mongo.Database.
func NewRemoteCollection[T store.Record](db *mongo.Database, name string) store.RemoteCollection[T] {
	return &remoteCollection[T]{collection: db.Collection(name)}
}

// Get retrieves one document by id.
func (r *remoteCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, store.ErrNotFound
		}
		return zero, err
	}
	return rec, nil
}

// Set replaces the document with the record's id, inserting it if absent.
func (r *remoteCollection[T]) Set(ctx context.Context, rec T) error {
	filter := bson.M{"_id": rec.RecordID()}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, rec, opts)
	return err
}

// List retrieves every document in the collection.
func (r *remoteCollection[T]) List(ctx context.Context) ([]T, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []T
	if err = cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// EnsureUserIndexes creates the indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
