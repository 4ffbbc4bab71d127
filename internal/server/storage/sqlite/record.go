package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/storage"
)

// PutRecord creates or replaces a record. created_at сохраняется при замене,
// поэтому порядок коллекции стабилен.
func (s *Storage) PutRecord(ctx context.Context, collection string, record models.Record) error {
	id := record.ID()
	if id == "" {
		return fmt.Errorf("record has no id")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	now := s.now().UnixMilli()
	query := `
		INSERT INTO records (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, collection, id, string(data), now, now); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by id
func (s *Storage) GetRecord(ctx context.Context, collection, id string) (models.Record, error) {
	query := `SELECT data FROM records WHERE collection = ? AND id = ?`

	var data string
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return decodeRecord(id, data)
}

// DeleteRecord removes a record
func (s *Storage) DeleteRecord(ctx context.Context, collection, id string) error {
	query := `DELETE FROM records WHERE collection = ? AND id = ?`

	result, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return expectAffected(result, storage.ErrRecordNotFound)
}

// ListRecords returns the whole collection in insertion order
func (s *Storage) ListRecords(ctx context.Context, collection string) ([]models.Record, error) {
	query := `
		SELECT id, data
		FROM records
		WHERE collection = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]models.Record, 0)

	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		rec, err := decodeRecord(id, data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// CountRecords returns number of records per collection
func (s *Storage) CountRecords(ctx context.Context) (map[string]int, error) {
	query := `SELECT collection, COUNT(*) FROM records GROUP BY collection`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)

	for rows.Next() {
		var collection string
		var count int
		if err := rows.Scan(&collection, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[collection] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}

func decodeRecord(id, data string) (models.Record, error) {
	rec := models.Record{}
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	// id в колонке является источником истины
	rec.SetID(id)
	return rec, nil
}
