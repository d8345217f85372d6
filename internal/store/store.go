// Package store is the persistence boundary of the NutriTrack core.
//
// # Overview
//
// The core never builds raw storage keys. It holds a Store and addresses data
// by (collection, user id); every backend derives its own physical address
// from that pair. Values are opaque JSON blobs, one per user per collection.
//
// Implementations
//
//   - MemoryStore     in-process map, with failure injection for tests
//   - SQLStore        one table in SQLite (modernc.org/sqlite) or PostgreSQL (pgx)
//   - S3Store         one object per blob in an S3-compatible bucket
//   - EncryptedStore  decorator sealing blobs with AES-GCM
//
// # Contract
//
// Get returns (nil, nil) when nothing is stored. PutBatch writes all blobs or,
// where the backend supports it, none of them (SQLStore, MemoryStore).
package store

import (
	"context"
	"net/url"
	"path"
)

// Collection names one of the per-user blobs.
type Collection string

const (
	FoodEntries            Collection = "food-entries"
	HealthIssues           Collection = "health-issues"
	HealthRecommendations  Collection = "health-recommendations"
	FitnessRecommendations Collection = "fitness-recommendations"
)

// Blob is one collection payload inside a batch write.
type Blob struct {
	Collection Collection
	Data       []byte
}

// Store persists JSON blobs per (collection, user id).
type Store interface {
	// Get returns the stored blob, or (nil, nil) if there is none.
	Get(ctx context.Context, c Collection, userID string) ([]byte, error)

	// Put replaces the blob for (c, userID).
	Put(ctx context.Context, c Collection, userID string, data []byte) error

	// PutBatch replaces several blobs of one user together.
	PutBatch(ctx context.Context, userID string, blobs ...Blob) error
}

// DefaultPrefix is the fixed namespace of every derived key.
const DefaultPrefix = "nutritrack"

// Key derives the address of (c, userID) under prefix, e.g.
// "nutritrack/food-entries/alice". The user id is path-escaped so it can
// never climb out of its collection.
func Key(prefix string, c Collection, userID string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return path.Join(prefix, string(c), url.PathEscape(userID))
}
