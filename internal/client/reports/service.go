// Package reports предоставляет read-style запросы к authority с откатом на кеш.
package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientapi "github.com/iudanet/bizkeeper/internal/client/api"
	"github.com/iudanet/bizkeeper/internal/client/auth"
	"github.com/iudanet/bizkeeper/internal/client/cache"
	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// Namespaces кеша
const (
	NamespaceStats   = "stats"
	NamespaceRecords = "records"
)

// TTL кешированных ответов
const (
	StatsTTL  = 15 * time.Minute
	RecordTTL = time.Hour
)

//go:generate moq -out source_mock.go . Source

// Source read-style endpoints authority
type Source interface {
	Stats(ctx context.Context) (*api.StatsResponse, error)
	GetRecord(ctx context.Context, collection, id string) (models.Record, error)
}

// Service read-style запросы через read-through кеш
type Service struct {
	source Source
	cache  *cache.Cache
}

// NewService создает Service
func NewService(source Source, c *cache.Cache) *Service {
	return &Service{source: source, cache: c}
}

// NetworkFailure сообщает, что authority не ответила.
// Ответ authority с кодом вне 2xx, завершенная сессия и отмена вызывающим
// не являются сетевым сбоем: кеш в этих случаях не используется.
func NetworkFailure(err error) bool {
	var statusErr *clientapi.StatusError
	switch {
	case errors.As(err, &statusErr):
		return false
	case errors.Is(err, clientapi.ErrUnauthorized), errors.Is(err, auth.ErrSessionTerminated):
		return false
	case errors.Is(err, context.Canceled):
		return false
	}
	return true
}

// Stats возвращает количество записей по коллекциям.
// Ошибка сети при промахе кеша возвращается без обертки.
func (s *Service) Stats(ctx context.Context) (*api.StatsResponse, error) {
	return cache.ReadThrough(ctx, s.cache, NamespaceStats, "summary", StatsTTL, NetworkFailure, s.source.Stats)
}

// Record возвращает запись коллекции по id
func (s *Service) Record(ctx context.Context, collection, id string) (models.Record, error) {
	if !models.IsKnownCollection(collection) {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	key := collection + "/" + id
	return cache.ReadThrough(ctx, s.cache, NamespaceRecords, key, RecordTTL, NetworkFailure, func(ctx context.Context) (models.Record, error) {
		return s.source.GetRecord(ctx, collection, id)
	})
}
