package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/network"
	"github.com/iudanet/bizkeeper/internal/models"
)

// DefaultProbeTimeout таймаут проверки соединения
const DefaultProbeTimeout = 5 * time.Second

var (
	// ErrNotClient синхронизация доступна только в режиме client с адресом authority
	ErrNotClient = errors.New("node is not in client mode")

	// ErrSyncInProgress синхронизация уже выполняется
	ErrSyncInProgress = errors.New("sync already in progress")
)

// SyncResult contains sync operation results
type SyncResult struct {
	Collections int // количество перезаписанных коллекций
	Records     int // количество полученных записей
	Skipped     int // количество пропущенных коллекций (неизвестные или ошибки хранилища)
}

// Result ответ ручных операций для UI
type Result struct {
	Error string `json:"error,omitempty"`
	OK    bool   `json:"ok"`
}

// service handles poll-based synchronization between client and authority
type service struct {
	apiClient   APIClient
	network     Network
	store       Applier
	notices     *events.NoticeBus
	logger      *slog.Logger
	now         func() time.Time
	collections []string
	running     atomic.Bool
}

// NewService creates a new sync service
func NewService(apiClient APIClient, net Network, store Applier, notices *events.NoticeBus, collections []string, logger *slog.Logger) Service {
	if len(collections) == 0 {
		collections = models.AllCollections()
	}
	return &service{
		apiClient:   apiClient,
		network:     net,
		store:       store,
		notices:     notices,
		logger:      logger,
		now:         time.Now,
		collections: collections,
	}
}

// FullSync pulls full collection snapshots and overwrites local copies
func (s *service) FullSync(ctx context.Context) (*SyncResult, error) {
	if !s.network.Preferences().IsClient() {
		return nil, ErrNotClient
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	s.logger.Info("Starting full synchronization", "collections", len(s.collections))

	resp, err := s.apiClient.FetchCollections(ctx, s.collections)
	if err != nil {
		s.network.SetReachable(false)
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	s.network.SetReachable(true)

	result := &SyncResult{}
	for collection, records := range resp.Data {
		if !models.IsKnownCollection(collection) {
			s.logger.Warn("Skipping unknown collection", "collection", collection)
			result.Skipped++
			continue
		}

		err := s.store.Apply(ctx, models.ChangeEvent{
			Collection: collection,
			Records:    records,
			Origin:     models.OriginSynced,
		})
		if err != nil {
			s.logger.Warn("Failed to apply snapshot", "collection", collection, "error", err)
			result.Skipped++
			continue
		}

		result.Collections++
		result.Records += len(records)
	}

	// Сохраняем время синхронизации
	if err := s.network.MarkSynced(ctx, s.now()); err != nil {
		s.logger.Warn("Failed to save last sync time", "error", err)
		// Не прерываем синхронизацию из-за ошибки сохранения времени
	}

	s.logger.Info("Synchronization completed",
		"collections", result.Collections,
		"records", result.Records,
		"skipped", result.Skipped)

	return result, nil
}

// TriggerFullSync starts best-effort FullSync in background
func (s *service) TriggerFullSync(ctx context.Context) {
	// синхронизация не должна прерываться вместе с вызвавшей её операцией
	ctx = context.WithoutCancel(ctx)
	go func() {
		if _, err := s.FullSync(ctx); err != nil {
			s.logger.Debug("Background sync failed", "error", err)
		}
	}()
}

// SyncNow performs manual synchronization
func (s *service) SyncNow(ctx context.Context) Result {
	if _, err := s.FullSync(ctx); err != nil {
		return Result{Error: err.Error()}
	}
	return Result{OK: true}
}

// TestConnection probes authority health endpoint
func (s *service) TestConnection(ctx context.Context, address string, port int) Result {
	if address == "" {
		return Result{Error: "server address is empty"}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	resp, err := s.apiClient.Health(ctx, network.BaseURL(address, port))
	if err != nil {
		return Result{Error: err.Error()}
	}
	if resp.Status != "ok" {
		return Result{Error: fmt.Sprintf("server status: %s", resp.Status)}
	}
	return Result{OK: true}
}

// RunAutoSync runs periodic full sync while mode is client and autoSync is on.
// Таймер перезапускается при каждом изменении настроек.
func (s *service) RunAutoSync(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	unsubscribe := s.network.Subscribe(func(models.NetworkPreferences) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		prefs := s.network.Preferences()

		var tick <-chan time.Time
		var timer *time.Timer
		if prefs.IsClient() && prefs.AutoSync && prefs.SyncInterval > 0 {
			timer = time.NewTimer(prefs.SyncInterval)
			tick = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-changed:
			if timer != nil {
				timer.Stop()
			}
			s.logger.Debug("Preferences changed, re-arming autosync")
		case <-tick:
			s.autoSync(ctx)
		}
	}
}

func (s *service) autoSync(ctx context.Context) {
	if !s.network.Reachable() {
		probeCtx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
		_, err := s.apiClient.Health(probeCtx, s.network.BaseURL())
		cancel()
		if err != nil {
			s.logger.Debug("Authority unreachable, skipping autosync", "error", err)
			return
		}
		s.network.SetReachable(true)
	}

	if _, err := s.FullSync(ctx); err != nil {
		if errors.Is(err, ErrSyncInProgress) || ctx.Err() != nil {
			return
		}
		s.logger.Warn("Autosync failed", "error", err)
		if s.notices != nil {
			s.notices.Publish(models.Notice{
				At:      s.now(),
				Kind:    models.NoticeSyncFailed,
				Message: err.Error(),
			})
		}
	}
}
