// Package interfaces defines the contracts between the graph core and its collaborators.
// Fetching, caching, logging and publishing are injected so the core stays testable.
package interfaces

import (
	"context"
	"time"
)

// Cache stores fetched corpus data between requests.
// Implementations exist for go-cache (memory), Redis and SQLite.
//
// Example usage:
//
//	data, err := cache.Get(ctx, "corpus:justdataplease:10")
//	if err != nil {
//		// cache miss, fetch and store
//		err = cache.Set(ctx, "corpus:justdataplease:10", encoded, 24*time.Hour)
//	}
type Cache interface {
	// Get retrieves a value by key.
	// Returns an error if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	// A ttl of 0 stores the value without expiration where the backend allows it.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
