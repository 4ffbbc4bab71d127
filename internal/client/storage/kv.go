package storage

import "context"

//go:generate moq -out kv_mock.go . KV

// KV defines the byte store that persists collections and cache entries.
// Format of the stored bytes is the caller's concern.
type KV interface {
	// Get returns stored bytes for key
	// Returns ErrNotFound if key doesn't exist
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores bytes under key, replacing previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Keys returns all keys with the given prefix
	Keys(ctx context.Context, prefix string) ([]string, error)
}
