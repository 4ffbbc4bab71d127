package transport

import (
	"context"
	"time"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

//go:generate moq -out transport_mock.go . Dialer Network Tokens

// Conn duplex канал с authority
type Conn interface {
	Send(env *api.Envelope) error
	// Receive блокируется до следующего кадра или закрытия соединения
	Receive(env *api.Envelope) error
	Close() error
}

// Dialer открывает duplex канал с access token
type Dialer interface {
	Dial(ctx context.Context, url, token string) (Conn, error)
}

// Network доступ транспорта к сетевым настройкам
type Network interface {
	Preferences() models.NetworkPreferences
	WebSocketURL() string
	SetConnectionStatus(status models.ConnectionStatus)
	SetReachable(reachable bool)
	MarkSynced(ctx context.Context, at time.Time) error
}

// Tokens источник access token для handshake
type Tokens interface {
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context, staleToken string) (string, error)
}

// Applier применяет снимки authority к локальному хранилищу
type Applier interface {
	Apply(ctx context.Context, ev models.ChangeEvent) error
}

// Results принимает результаты операций
type Results interface {
	Resolve(result api.OperationResult) bool
	Pending(id uint64) (collection string, action models.Action, ok bool)
}
