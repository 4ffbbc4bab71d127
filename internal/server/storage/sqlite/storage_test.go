package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/storage"
)

var (
	_ storage.UserStorage   = (*Storage)(nil)
	_ storage.TokenStorage  = (*Storage)(nil)
	_ storage.RecordStorage = (*Storage)(nil)
)

// setupTestStorage creates in-memory storage with applied migrations
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	return s, func() {
		_ = s.Close()
	}
}

// createTestUser creates user and returns its ID
func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "user-" + uuid.New().String()[:8],
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	return user.ID
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// повторный прогон миграций не должен падать
	require.NoError(t, s.runMigrations(ctx))

	var count int
	err := s.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'refresh_tokens', 'records')`,
	).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}
