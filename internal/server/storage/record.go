package storage

import (
	"context"

	"github.com/iudanet/bizkeeper/internal/models"
)

//go:generate moq -out record_mock.go . RecordStorage

// RecordStorage defines interface for collection records held by the authority.
// Записи хранятся как непрозрачный JSON, ключ (collection, id).
type RecordStorage interface {
	// PutRecord creates or replaces a record
	PutRecord(ctx context.Context, collection string, record models.Record) error

	// GetRecord retrieves a record by id
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, collection, id string) (models.Record, error)

	// DeleteRecord removes a record
	// Returns ErrRecordNotFound if record doesn't exist
	DeleteRecord(ctx context.Context, collection, id string) error

	// ListRecords returns the whole collection in insertion order
	// Returns empty slice if collection is empty
	ListRecords(ctx context.Context, collection string) ([]models.Record, error)

	// CountRecords returns number of records per collection
	CountRecords(ctx context.Context) (map[string]int, error)
}
