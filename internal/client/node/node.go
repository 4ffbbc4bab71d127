// Package node собирает компоненты клиентского узла в единый граф зависимостей.
package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/bizkeeper/internal/client/api"
	"github.com/iudanet/bizkeeper/internal/client/auth"
	"github.com/iudanet/bizkeeper/internal/client/cache"
	"github.com/iudanet/bizkeeper/internal/client/correlator"
	"github.com/iudanet/bizkeeper/internal/client/data"
	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/network"
	"github.com/iudanet/bizkeeper/internal/client/reports"
	"github.com/iudanet/bizkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/bizkeeper/internal/client/store"
	"github.com/iudanet/bizkeeper/internal/client/sync"
	"github.com/iudanet/bizkeeper/internal/client/transport"
	"github.com/iudanet/bizkeeper/internal/config"
	"github.com/iudanet/bizkeeper/internal/models"
)

// Node клиентский узел: хранилище, сетевые настройки, транспорт и сервисы
type Node struct {
	Storage     *boltdb.Storage
	Changes     *events.ChangeBus
	Notices     *events.NoticeBus
	Preferences *events.PreferencesBus
	Network     *network.Manager
	Store       *store.Store
	API         *api.Client
	Gate        *auth.Gate
	Auth        *auth.Service
	Transport   *transport.Transport
	Correlator  *correlator.Correlator
	Sync        sync.Service
	Data        *data.Service
	Cache       *cache.Cache
	Reports     *reports.Service

	logger *slog.Logger
}

// Option переопределяет компоненты при сборке (используется в тестах)
type Option func(*options)

type options struct {
	dialer transport.Dialer
}

// WithDialer задает dialer дуплексного канала
func WithDialer(d transport.Dialer) Option {
	return func(o *options) { o.dialer = d }
}

// New открывает локальную БД и связывает компоненты
func New(ctx context.Context, cfg config.Client, logger *slog.Logger, opts ...Option) (*Node, error) {
	o := options{dialer: &transport.WebSocketDialer{}}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	n := &Node{
		Storage:     db,
		Changes:     events.NewBus[models.ChangeEvent](),
		Notices:     events.NewBus[models.Notice](),
		Preferences: events.NewBus[models.NetworkPreferences](),
		logger:      logger,
	}

	n.Network, err = network.NewManager(ctx, db, n.Preferences, logger.With("component", "network"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load network preferences: %w", err)
	}

	n.Store = store.New(db.Collections(), n.Changes, logger.With("component", "store"))

	n.API = api.NewClient(n.Network, cfg.RequestTimeout)
	n.Gate = auth.NewGate(db, n.API, n.Notices, logger.With("component", "auth"))
	n.API.SetTokenProvider(n.Gate)
	n.Auth = auth.NewService(n.API, db, logger.With("component", "auth"))

	n.Transport = transport.New(o.dialer, n.Network, n.Gate, n.Store, transport.Options{
		Collections: cfg.Collections,
		Attempts:    cfg.ReconnectAttempts,
		Backoff:     cfg.ReconnectBackoff,
	}, logger.With("component", "transport"))
	n.Correlator = correlator.New(n.Transport, cfg.OperationTimeout, logger.With("component", "correlator"))
	n.Transport.HandleResults(n.Correlator)

	n.Sync = sync.NewService(n.API, n.Network, n.Store, n.Notices, cfg.Collections, logger.With("component", "sync"))
	n.Data = data.NewService(n.Store, n.Network, n.Transport, n.Correlator, n.Sync, logger.With("component", "data"))

	n.Cache = cache.New(db.Cache(), n.Notices, logger.With("component", "cache"))
	n.Reports = reports.NewService(n.API, n.Cache)

	return n, nil
}

// Run держит транспорт в соответствии с сетевыми настройками и запускает autosync.
// Возвращается после отмены ctx; транспорт при этом отключается.
func (n *Node) Run(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	unsubscribe := n.Network.Subscribe(func(models.NetworkPreferences) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer n.Transport.Disconnect()

		n.Transport.Reconcile(ctx)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changed:
				n.logger.Debug("Network preferences changed, reconciling transport")
				n.Transport.Reconcile(ctx)
			}
		}
	})

	g.Go(func() error {
		return n.Sync.RunAutoSync(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close освобождает ресурсы узла
func (n *Node) Close() error {
	n.Transport.Disconnect()
	if err := n.Storage.Close(); err != nil {
		return fmt.Errorf("failed to close local storage: %w", err)
	}
	return nil
}
