// Package store persists saved word clouds: a named word list plus the
// options it should be rendered with.
//
// Implementations for different backends:
//   - memory: in-memory storage for development/testing
//   - file: JSON files in a config directory, for CLI usage
//   - mongo: MongoDB collection for server deployments
//
// # Architecture
//
// A Cloud document is the unit of storage. The Store interface supports
// Get/List/Put/Delete; Put is an upsert keyed by the document ID. IDs are
// UUIDs assigned on first save.
//
// # Usage
//
//	st := store.NewMemoryStore()
//
//	cloud := store.NewCloud("speech", words, opts)
//	if err := st.Put(ctx, cloud); err != nil {
//	    return err
//	}
//
//	cloud, err := st.Get(ctx, cloud.ID)
//	if errors.Is(err, store.ErrNotFound) {
//	    // unknown ID
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a cloud does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned for empty or malformed document IDs.
	ErrInvalidID = errors.New("invalid cloud id")
)

// Cloud is a saved word cloud: input words plus rendering options.
// The bson tags keep the Mongo representation aligned with the JSON API.
type Cloud struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	Words     []wordcloud.Word  `json:"words" bson:"words"`
	MaxWords  int               `json:"max_words,omitempty" bson:"max_words,omitempty"`
	Options   wordcloud.Options `json:"options" bson:"options"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// NewCloud creates a cloud document with a fresh UUID and timestamps.
func NewCloud(name string, words []wordcloud.Word, opts wordcloud.Options) *Cloud {
	now := time.Now().UTC()
	return &Cloud{
		ID:        uuid.NewString(),
		Name:      name,
		Words:     words,
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for cloud storage backends.
type Store interface {
	// Get retrieves a cloud by ID. Returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*Cloud, error)

	// List returns all stored clouds, most recently updated first.
	List(ctx context.Context) ([]*Cloud, error)

	// Put stores a cloud, replacing any existing document with the same
	// ID, and refreshes its UpdatedAt timestamp.
	Put(ctx context.Context, cloud *Cloud) error

	// Delete removes a cloud. Returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
