package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/models"
)

var (
	// ErrNotAuthenticated возвращается, если пара токенов не сохранена
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionTerminated возвращается после неудачного refresh; нужен повторный вход
	ErrSessionTerminated = errors.New("session terminated, login required")
)

// GateState состояние refresh gate
type GateState string

const (
	StateIdle       GateState = "idle"
	StateRefreshing GateState = "refreshing"
)

const refreshKey = "refresh"

// Gate выполняет не более одного refresh одновременно.
// Запросы, получившие 401 во время refresh, ждут его результата.
type Gate struct {
	storage    storage.AuthStorage
	refresher  Refresher
	notices    *events.NoticeBus
	logger     *slog.Logger
	now        func() time.Time
	group      singleflight.Group
	refreshing atomic.Bool
}

// NewGate создает Gate
func NewGate(authStorage storage.AuthStorage, refresher Refresher, notices *events.NoticeBus, logger *slog.Logger) *Gate {
	return &Gate{
		storage:   authStorage,
		refresher: refresher,
		notices:   notices,
		logger:    logger,
		now:       time.Now,
	}
}

// State возвращает текущее состояние gate
func (g *Gate) State() GateState {
	if g.refreshing.Load() {
		return StateRefreshing
	}
	return StateIdle
}

// AccessToken возвращает текущий access token
func (g *Gate) AccessToken(ctx context.Context) (string, error) {
	auth, err := g.storage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}
	return auth.AccessToken, nil
}

// Refresh возвращает access token, которым можно повторить запрос,
// отклоненный с staleToken. Если токен уже обновлен, refresh не выполняется.
func (g *Gate) Refresh(ctx context.Context, staleToken string) (string, error) {
	if token, ok, err := g.freshToken(ctx, staleToken); err != nil || ok {
		return token, err
	}

	// refresh не привязан к ctx первого запроса: его отмена не должна ломать ожидающих
	ch := g.group.DoChan(refreshKey, func() (any, error) {
		return g.refresh(context.WithoutCancel(ctx), staleToken)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// freshToken проверяет, не заменен ли staleToken другим refresh
func (g *Gate) freshToken(ctx context.Context, staleToken string) (string, bool, error) {
	auth, err := g.storage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return "", false, ErrNotAuthenticated
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get auth data: %w", err)
	}
	if auth.AccessToken != "" && auth.AccessToken != staleToken {
		return auth.AccessToken, true, nil
	}
	return "", false, nil
}

func (g *Gate) refresh(ctx context.Context, staleToken string) (string, error) {
	g.refreshing.Store(true)
	defer g.refreshing.Store(false)

	auth, err := g.storage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}
	// предыдущий refresh мог завершиться между проверкой и входом в группу
	if auth.AccessToken != "" && auth.AccessToken != staleToken {
		return auth.AccessToken, nil
	}

	g.logger.Info("Refreshing access token", "username", auth.Username)

	resp, err := g.refresher.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		g.terminate(ctx, err)
		return "", fmt.Errorf("%w: %w", ErrSessionTerminated, err)
	}

	auth.AccessToken = resp.AccessToken
	auth.RefreshToken = resp.RefreshToken
	auth.ExpiresAt = g.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()

	// старый refresh token уже погашен authority: без сохранения новой пары сессия потеряна
	if err := g.storage.SaveAuth(ctx, auth); err != nil {
		err = fmt.Errorf("failed to save refreshed tokens: %w", err)
		g.terminate(ctx, err)
		return "", fmt.Errorf("%w: %w", ErrSessionTerminated, err)
	}

	g.logger.Info("Access token refreshed", "username", auth.Username)
	return auth.AccessToken, nil
}

// terminate удаляет пару токенов и сообщает UI о необходимости повторного входа
func (g *Gate) terminate(ctx context.Context, cause error) {
	g.logger.Warn("Token refresh failed, terminating session", "error", cause)

	if err := g.storage.DeleteAuth(ctx); err != nil {
		g.logger.Error("Failed to delete auth data", "error", err)
	}

	if g.notices != nil {
		g.notices.Publish(models.Notice{
			At:      g.now(),
			Kind:    models.NoticeSessionTerminated,
			Message: "Session expired, please log in again",
		})
	}
}
