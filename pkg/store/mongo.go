package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a MongoDB-backed store for server deployments.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string (mongodb://host:port).
	URI string

	// Database name. Defaults to "wordcloud".
	Database string

	// Collection name. Defaults to "clouds".
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "wordcloud"
	}
	if cfg.Collection == "" {
		cfg.Collection = "clouds"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Cloud, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	var cloud Cloud
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cloud)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cloud: %w", err)
	}
	return &cloud, nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Cloud, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list clouds: %w", err)
	}
	defer cursor.Close(ctx)

	var clouds []*Cloud
	if err := cursor.All(ctx, &clouds); err != nil {
		return nil, fmt.Errorf("decode clouds: %w", err)
	}
	return clouds, nil
}

func (s *MongoStore) Put(ctx context.Context, cloud *Cloud) error {
	if cloud.ID == "" {
		return ErrInvalidID
	}

	cloud.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": cloud.ID}, cloud, opts); err != nil {
		return fmt.Errorf("store cloud: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete cloud: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
