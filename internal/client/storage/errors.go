package storage

import "errors"

// Common client storage errors
var (
	// ErrNotFound indicates that key is absent in the key-value store
	ErrNotFound = errors.New("key not found")

	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrPreferencesNotFound indicates that network preferences were never saved
	ErrPreferencesNotFound = errors.New("network preferences not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
