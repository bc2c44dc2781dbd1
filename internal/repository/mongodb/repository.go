package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository implements the record store on top of a single MongoDB
// collection, one document per key.
type Repository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

type recordDoc struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client:   client,
		dbName:   dbName,
		collName: "records",
	}, nil
}

// Get fetches the raw JSON value stored under key, or (nil, nil) when the
// key was never written.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc recordDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	return doc.Value, nil
}

// Set upserts the raw JSON value under key.
func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"_id": key},
		recordDoc{Key: key, Value: value},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}
