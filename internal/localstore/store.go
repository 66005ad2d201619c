package localstore

import "context"

// Store is a durable key-value store with JSON-encoded values
type Store interface {
	// Get decodes the value at key into dst. It reports false when the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set encodes value and stores it at key
	Set(ctx context.Context, key string, value any) error
	// SetMany writes every entry atomically
	SetMany(ctx context.Context, entries map[string]any) error
	// Remove deletes key; removing a missing key is not an error
	Remove(ctx context.Context, key string) error
	Close() error
}
