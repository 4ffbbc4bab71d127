package auth

import (
	"context"

	"github.com/iudanet/bizkeeper/pkg/api"
)

//go:generate moq -out client_mock.go . Client

// Refresher обменивает refresh token на новую пару токенов
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)
}

// Client defines auth endpoints of the authority used by the client
type Client interface {
	Refresher

	// Login выполняет аутентификацию пользователя
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	// Logout отзывает refresh tokens пользователя на сервере
	Logout(ctx context.Context, accessToken string) error
}
