package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/models"
)

var preferencesKey = []byte("network")

// SavePreferences stores network preferences
func (s *Storage) SavePreferences(ctx context.Context, prefs *models.NetworkPreferences) error {
	if prefs == nil {
		return fmt.Errorf("preferences are nil")
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("preferences bucket not found")
		}

		if err := bucket.Put(preferencesKey, data); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}

		return nil
	})
}

// GetPreferences retrieves network preferences
func (s *Storage) GetPreferences(ctx context.Context) (*models.NetworkPreferences, error) {
	var prefs *models.NetworkPreferences

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("preferences bucket not found")
		}

		data := bucket.Get(preferencesKey)
		if data == nil {
			return storage.ErrPreferencesNotFound
		}

		prefs = &models.NetworkPreferences{}
		if err := json.Unmarshal(data, prefs); err != nil {
			return fmt.Errorf("failed to unmarshal preferences: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return prefs, nil
}
