package sync

import (
	"context"
	"time"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

//go:generate moq -out service_mock.go . Service
//go:generate moq -out deps_mock.go . APIClient Network

// Service определяет интерфейс для sync.Service
type Service interface {
	// FullSync скачивает снимки коллекций и перезаписывает локальные копии
	FullSync(ctx context.Context) (*SyncResult, error)

	// TriggerFullSync запускает FullSync в фоне (best effort)
	TriggerFullSync(ctx context.Context)

	// SyncNow ручная синхронизация для UI
	SyncNow(ctx context.Context) Result

	// TestConnection проверяет доступность authority по адресу и порту
	TestConnection(ctx context.Context, address string, port int) Result

	// RunAutoSync периодически синхронизирует до отмены ctx
	RunAutoSync(ctx context.Context) error
}

// APIClient определяет методы HTTP клиента, нужные синхронизации
type APIClient interface {
	FetchCollections(ctx context.Context, names []string) (*api.FullSyncResponse, error)
	Health(ctx context.Context, baseURL string) (*api.HealthResponse, error)
}

// Network доступ к сетевым настройкам
type Network interface {
	Preferences() models.NetworkPreferences
	BaseURL() string
	Reachable() bool
	SetReachable(reachable bool)
	MarkSynced(ctx context.Context, at time.Time) error
	Subscribe(fn func(models.NetworkPreferences)) (unsubscribe func())
}

// Applier применяет снимки authority к локальному хранилищу
type Applier interface {
	Apply(ctx context.Context, ev models.ChangeEvent) error
}
