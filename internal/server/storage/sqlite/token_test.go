package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/storage"
)

func TestTokenStorage_SaveAndGetRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	token := &models.RefreshToken{
		Token:     "refresh-1",
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	retrieved, err := s.GetRefreshToken(ctx, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, userID, retrieved.UserID)
	assert.Equal(t, token.ExpiresAt.Unix(), retrieved.ExpiresAt.Unix())

	// повторное сохранение заменяет запись
	token.ExpiresAt = token.ExpiresAt.Add(time.Hour)
	require.NoError(t, s.SaveRefreshToken(ctx, token))
	retrieved, err = s.GetRefreshToken(ctx, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, token.ExpiresAt.Unix(), retrieved.ExpiresAt.Unix())

	_, err = s.GetRefreshToken(ctx, "unknown")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_SaveRefreshToken_UnknownUser(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.SaveRefreshToken(context.Background(), &models.RefreshToken{
		Token:     "orphan",
		UserID:    "missing-user",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	})
	assert.Error(t, err, "foreign key must reject orphan token")
}

func TestTokenStorage_DeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     "to-delete",
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	require.NoError(t, s.DeleteRefreshToken(ctx, "to-delete"))

	err := s.DeleteRefreshToken(ctx, "to-delete")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_DeleteUserTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	otherID := createTestUser(t, ctx, s)

	for _, tok := range []struct{ token, user string }{
		{"a1", userID}, {"a2", userID}, {"b1", otherID},
	} {
		require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
			Token:     tok.token,
			UserID:    tok.user,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))
	}

	count, err := s.DeleteUserTokens(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// токены другого пользователя не затронуты
	_, err = s.GetRefreshToken(ctx, "b1")
	assert.NoError(t, err)
}

func TestTokenStorage_DeleteExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	now := time.Now()
	s.now = func() time.Time { return now }

	userID := createTestUser(t, ctx, s)
	tokens := []*models.RefreshToken{
		{Token: "expired1", UserID: userID, ExpiresAt: now.Add(-2 * time.Hour), CreatedAt: now.Add(-3 * time.Hour)},
		{Token: "expired2", UserID: userID, ExpiresAt: now.Add(-1 * time.Hour), CreatedAt: now.Add(-2 * time.Hour)},
		{Token: "valid1", UserID: userID, ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now},
		{Token: "valid2", UserID: userID, ExpiresAt: now.Add(48 * time.Hour), CreatedAt: now},
	}

	for _, token := range tokens {
		require.NoError(t, s.SaveRefreshToken(ctx, token))
	}

	count, err := s.DeleteExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "Should delete 2 expired tokens")

	_, err = s.GetRefreshToken(ctx, "expired1")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	_, err = s.GetRefreshToken(ctx, "valid2")
	assert.NoError(t, err)

	// повторный вызов ничего не удаляет
	count, err = s.DeleteExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
