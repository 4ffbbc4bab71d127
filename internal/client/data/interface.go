package data

import (
	"context"

	"github.com/iudanet/bizkeeper/internal/client/correlator"
	"github.com/iudanet/bizkeeper/internal/models"
)

//go:generate moq -out deps_mock.go . Store Network Transport Syncer

// Store локальное хранилище коллекций
type Store interface {
	Read(ctx context.Context, collection string) ([]models.Record, error)
	Append(ctx context.Context, collection string, record models.Record) (models.Record, error)
	Patch(ctx context.Context, collection, id string, patch models.Record) (models.Record, error)
	RemoveByID(ctx context.Context, collection, id string) error
}

// Network read-only доступ к сетевым настройкам
type Network interface {
	CurrentMode() models.Mode
	Reachable() bool
}

// Transport состояние дуплексного канала
type Transport interface {
	IsConnected() bool
}

// Submitter отправляет операцию authority и возвращает ожидаемый результат
type Submitter interface {
	Submit(ctx context.Context, collection string, action models.Action, payload models.Record, targetID string) *correlator.Completion
}

// Syncer запускает фоновую полную синхронизацию
type Syncer interface {
	TriggerFullSync(ctx context.Context)
}
