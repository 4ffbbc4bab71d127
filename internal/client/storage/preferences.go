package storage

import (
	"context"

	"github.com/iudanet/bizkeeper/internal/models"
)

//go:generate moq -out preferences_mock.go . PreferencesStorage

// PreferencesStorage defines interface for persisting NetworkPreferences
type PreferencesStorage interface {
	// SavePreferences stores network preferences
	SavePreferences(ctx context.Context, prefs *models.NetworkPreferences) error

	// GetPreferences retrieves network preferences
	// Returns ErrPreferencesNotFound on first run
	GetPreferences(ctx context.Context) (*models.NetworkPreferences, error)
}
