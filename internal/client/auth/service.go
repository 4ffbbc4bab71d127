package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/validation"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// Service предоставляет функции авторизации
type Service struct {
	client  Client
	storage storage.AuthStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(client Client, authStorage storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		storage: authStorage,
		logger:  logger,
		now:     time.Now,
	}
}

// Session описывает сохраненную сессию
type Session struct {
	ExpiresAt time.Time
	Username  string
	UserID    string
	Expired   bool
}

// tokenClaims поля access token, которые читает клиент.
// Подпись не проверяется: клиент не владеет секретом, проверка на стороне authority.
type tokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login выполняет аутентификацию и сохраняет пару токенов
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("invalid password: password cannot be empty")
	}

	resp, err := s.client.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	auth := &storage.AuthData{
		Username:     username,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
	if claims, err := parseClaims(resp.AccessToken); err == nil {
		auth.UserID = claims.UserID
	} else {
		s.logger.Debug("Access token claims are not readable", "error", err)
	}

	if err := s.storage.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.logger.Info("Logged in", "username", username)
	return s.session(auth), nil
}

// Logout выполняет выход из системы
// Удаляет локальные данные авторизации и уведомляет сервер (best effort)
func (s *Service) Logout(ctx context.Context) error {
	authData, err := s.storage.GetAuth(ctx)
	if err != nil {
		// Если данных нет, просто логируем и продолжаем
		s.logger.Debug("No auth data found during logout", "error", err)
	} else if logoutErr := s.client.Logout(ctx, authData.AccessToken); logoutErr != nil {
		// Не прерываем процесс, если сервер недоступен
		s.logger.Warn("Failed to logout on server", "error", logoutErr)
	}

	// Всегда удаляем локальные данные, даже если сервер недоступен
	if err := s.storage.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}

	return nil
}

// Status возвращает текущую сессию или ErrNotAuthenticated
func (s *Service) Status(ctx context.Context) (*Session, error) {
	auth, err := s.storage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return s.session(auth), nil
}

func (s *Service) session(auth *storage.AuthData) *Session {
	expiresAt := time.Unix(auth.ExpiresAt, 0)
	return &Session{
		Username:  auth.Username,
		UserID:    auth.UserID,
		ExpiresAt: expiresAt,
		Expired:   !s.now().Before(expiresAt),
	}
}

func parseClaims(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}
