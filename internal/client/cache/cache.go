// Package cache хранит ответы read-style запросов, которые используются
// только когда сетевой запрос не удался.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/models"
)

// DefaultNoticeInterval минимальный интервал между offline уведомлениями одного namespace
const DefaultNoticeInterval = 30 * time.Second

// ErrMiss отсутствующая или просроченная запись
var ErrMiss = errors.New("cache miss")

// Entry запись кеша
type Entry struct {
	ExpiresAt time.Time       `json:"expires_at"`
	StoredAt  time.Time       `json:"stored_at"`
	Namespace string          `json:"namespace"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
}

// Cache is a TTL-tagged cache over a KV byte store
type Cache struct {
	kv             storage.KV
	notices        *events.NoticeBus
	logger         *slog.Logger
	now            func() time.Time
	lastNotice     map[string]time.Time
	noticeInterval time.Duration
	mu             sync.Mutex
}

// New создает Cache
func New(kv storage.KV, notices *events.NoticeBus, logger *slog.Logger) *Cache {
	return &Cache{
		kv:             kv,
		notices:        notices,
		logger:         logger,
		now:            time.Now,
		lastNotice:     make(map[string]time.Time),
		noticeInterval: DefaultNoticeInterval,
	}
}

func entryKey(namespace, key string) string {
	return namespace + "/" + key
}

// Set сохраняет значение со сроком жизни ttl
func (c *Cache) Set(ctx context.Context, namespace, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	now := c.now()
	entry := Entry{
		Namespace: namespace,
		Key:       key,
		Value:     raw,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.kv.Set(ctx, entryKey(namespace, key), data); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Get декодирует значение в dst. Просроченная запись считается промахом.
// ttl, если задан, дополнительно ограничивает возраст записи.
func (c *Cache) Get(ctx context.Context, namespace, key string, ttl time.Duration, dst any) (*Entry, error) {
	data, err := c.kv.Get(ctx, entryKey(namespace, key))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	now := c.now()
	if !now.Before(entry.ExpiresAt) {
		return nil, ErrMiss
	}
	if ttl > 0 && now.Sub(entry.StoredAt) >= ttl {
		return nil, ErrMiss
	}

	if err := json.Unmarshal(entry.Value, dst); err != nil {
		return nil, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return &entry, nil
}

// Purge удаляет все записи namespace
func (c *Cache) Purge(ctx context.Context, namespace string) error {
	keys, err := c.kv.Keys(ctx, namespace+"/")
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}
	for _, k := range keys {
		if err := c.kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to delete cache entry: %w", err)
		}
	}
	return nil
}

// notifyOffline публикует уведомление не чаще noticeInterval на namespace
func (c *Cache) notifyOffline(namespace string, storedAt time.Time) {
	now := c.now()

	c.mu.Lock()
	last, seen := c.lastNotice[namespace]
	if seen && now.Sub(last) < c.noticeInterval {
		c.mu.Unlock()
		return
	}
	c.lastNotice[namespace] = now
	c.mu.Unlock()

	if c.notices == nil {
		return
	}
	c.notices.Publish(models.Notice{
		At:        now,
		Kind:      models.NoticeOffline,
		Namespace: namespace,
		Message:   fmt.Sprintf("Offline: showing %s data cached at %s", namespace, storedAt.Format(time.DateTime)),
	})
}

// Fallback решает, допускает ли ошибка fetch ответ из кеша.
// nil означает "любая ошибка".
type Fallback func(error) bool

// ReadThrough выполняет fetch и кеширует успешный результат.
// Кеш читается только если fetch вернул ошибку, одобренную fallback;
// в остальных случаях возвращается исходная ошибка без изменений.
func ReadThrough[T any](ctx context.Context, c *Cache, namespace, key string, ttl time.Duration, fallback Fallback, fetch func(context.Context) (T, error)) (T, error) {
	value, fetchErr := fetch(ctx)
	if fetchErr == nil {
		if err := c.Set(ctx, namespace, key, value, ttl); err != nil {
			c.logger.Warn("Failed to cache response", "namespace", namespace, "key", key, "error", err)
		}
		return value, nil
	}
	if fallback != nil && !fallback(fetchErr) {
		var zero T
		return zero, fetchErr
	}

	var cached T
	entry, err := c.Get(ctx, namespace, key, ttl, &cached)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("Cache unavailable", "namespace", namespace, "key", key, "error", err)
		}
		var zero T
		return zero, fetchErr
	}

	c.logger.Info("Serving cached response", "namespace", namespace, "key", key, "error", fetchErr)
	c.notifyOffline(namespace, entry.StoredAt)
	return cached, nil
}
