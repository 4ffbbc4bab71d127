package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/storage"
	"github.com/iudanet/bizkeeper/internal/validation"
)

// ErrInvalidCredentials неверный логин или пароль.
// Причина (нет пользователя / не совпал пароль) наружу не раскрывается.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service управляет учетными записями authority
type Service struct {
	users  storage.UserStorage
	logger *slog.Logger
	now    func() time.Time
	cost   int
}

// NewService создает сервис учетных записей
func NewService(users storage.UserStorage, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

// Create регистрирует пользователя с bcrypt хешем пароля
func (s *Service) Create(ctx context.Context, username, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", slog.String("username", username), slog.String("user_id", user.ID))
	return user, nil
}

// Authenticate проверяет пароль пользователя
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SetPassword заменяет пароль пользователя
func (s *Service) SetPassword(ctx context.Context, username, password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}
