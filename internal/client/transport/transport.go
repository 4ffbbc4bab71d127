// Package transport владеет duplex соединением с authority:
// подключение, переподключение и разбор входящих кадров.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// State состояние соединения
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateError        State = "error"
)

// Политика переподключения по умолчанию
const (
	DefaultAttempts = 5
	DefaultBackoff  = 2 * time.Second
)

var (
	// ErrNotConnected возвращается при отправке без активного соединения
	ErrNotConnected = errors.New("transport is not connected")

	// ErrNoEndpoint возвращается, если узел не в режиме client или адрес не задан
	ErrNoEndpoint = errors.New("no authority endpoint configured")
)

// Options настройки транспорта
type Options struct {
	// Collections коллекции, запрашиваемые full-sync после подключения
	Collections []string
	// Attempts общее число попыток подключения до остановки
	Attempts int
	// Backoff пауза между попытками
	Backoff time.Duration
}

// Transport owns exactly one duplex connection to the authority
type Transport struct {
	dialer  Dialer
	network Network
	tokens  Tokens
	store   Applier
	results Results
	states  *events.Bus[State]
	logger  *slog.Logger
	now     func() time.Time

	conn   Conn
	cancel context.CancelFunc
	done   chan struct{}
	state  State
	url    string
	opts   Options
	mu     sync.Mutex
	sendMu sync.Mutex
}

// New создает Transport в состоянии Disconnected
func New(dialer Dialer, network Network, tokens Tokens, store Applier, opts Options, logger *slog.Logger) *Transport {
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if len(opts.Collections) == 0 {
		opts.Collections = models.AllCollections()
	}

	return &Transport{
		dialer:  dialer,
		network: network,
		tokens:  tokens,
		store:   store,
		states:  events.NewBus[State](),
		logger:  logger,
		now:     time.Now,
		state:   StateDisconnected,
		opts:    opts,
	}
}

// HandleResults подключает получателя результатов операций.
// Correlator создается поверх транспорта, поэтому связывание отложенное.
func (t *Transport) HandleResults(results Results) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = results
}

// State возвращает текущее состояние соединения
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsConnected сообщает, можно ли отправлять операции
func (t *Transport) IsConnected() bool {
	return t.State() == StateConnected
}

// Subscribe подписывает на смену состояний
func (t *Transport) Subscribe(fn func(State)) (unsubscribe func()) {
	return t.states.Subscribe(fn)
}

// Connect запускает фоновый цикл подключения с новым бюджетом попыток.
// Ничего не делает, если цикл уже работает или узел не в режиме client.
func (t *Transport) Connect(ctx context.Context) error {
	if !t.network.Preferences().IsClient() {
		return ErrNoEndpoint
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.url = t.network.WebSocketURL()

	go t.run(loopCtx, cancel, t.done)
	return nil
}

// Disconnect закрывает соединение и отменяет переподключение.
// Безопасен для повторного вызова.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Reconcile приводит соединение в соответствие с текущими настройками
func (t *Transport) Reconcile(ctx context.Context) {
	prefs := t.network.Preferences()

	if !prefs.IsClient() {
		t.Disconnect()
		return
	}

	t.mu.Lock()
	running := t.cancel != nil
	moved := t.url != t.network.WebSocketURL()
	t.mu.Unlock()

	if running && moved {
		t.logger.Info("Authority address changed, reconnecting")
		t.Disconnect()
	}
	if err := t.Connect(ctx); err != nil {
		t.logger.Debug("Reconcile skipped connect", "error", err)
	}
}

// SendOperation отправляет операцию по активному соединению
func (t *Transport) SendOperation(ctx context.Context, op api.Operation) error {
	env, err := api.NewEnvelope(api.TypeOperation, op)
	if err != nil {
		return err
	}
	return t.send(env)
}

// RequestFullSync запрашивает снимки коллекций по активному соединению
func (t *Transport) RequestFullSync(collections []string) error {
	env, err := api.NewEnvelope(api.TypeSyncRequest, api.FullSyncRequest{Collections: collections})
	if err != nil {
		return err
	}
	return t.send(env)
}

func (t *Transport) send(env *api.Envelope) error {
	t.mu.Lock()
	conn := t.conn
	connected := t.state == StateConnected
	t.mu.Unlock()

	if conn == nil || !connected {
		return ErrNotConnected
	}

	t.sendMu.Lock()
	defer t.sendMu.Unlock()

	if err := conn.Send(env); err != nil {
		return fmt.Errorf("failed to send %s: %w", env.Type, err)
	}
	return nil
}

// run подключается, обслуживает соединение и переподключается после обрыва.
// По завершении освобождает контекст цикла.
func (t *Transport) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer func() {
		cancel()
		t.mu.Lock()
		t.cancel = nil
		t.mu.Unlock()
		close(done)
	}()

	for {
		conn, err := t.connectWithRetry(ctx)
		if err != nil {
			if ctx.Err() == nil {
				t.logger.Warn("Giving up connecting to authority", "error", err)
			}
			t.setState(StateDisconnected)
			return
		}

		t.serve(ctx, conn)

		if ctx.Err() != nil {
			return
		}
		t.logger.Warn("Connection to authority lost, reconnecting")
	}
}

// connectWithRetry делает не более opts.Attempts попыток с постоянной паузой
func (t *Transport) connectWithRetry(ctx context.Context) (Conn, error) {
	var conn Conn
	attempt := 0

	backoff := retry.WithMaxRetries(uint64(t.opts.Attempts-1), retry.NewConstant(t.opts.Backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		t.setState(StateConnecting)

		c, err := t.dial(ctx)
		if err != nil {
			t.setState(StateError)
			t.setState(StateDisconnected)
			t.network.SetReachable(false)
			t.logger.Info("Connection attempt failed",
				"attempt", attempt,
				"max_attempts", t.opts.Attempts,
				"error", err)
			return err
		}

		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// dial открывает соединение; отклоненный handshake повторяется один раз с обновленным токеном
func (t *Transport) dial(ctx context.Context) (Conn, error) {
	url := t.network.WebSocketURL()
	if url == "" {
		return nil, ErrNoEndpoint
	}

	token, err := t.tokens.AccessToken(ctx)
	if err != nil {
		// без сессии повторять бессмысленно
		return nil, fmt.Errorf("no access token: %w", err)
	}

	conn, err := t.dialer.Dial(ctx, url, token)
	if errors.Is(err, ErrHandshakeRejected) {
		fresh, refreshErr := t.tokens.Refresh(ctx, token)
		if refreshErr != nil {
			return nil, fmt.Errorf("handshake rejected and refresh failed: %w", refreshErr)
		}
		conn, err = t.dialer.Dial(ctx, url, fresh)
	}
	if err != nil {
		return nil, retry.RetryableError(err)
	}

	return conn, nil
}

// serve обслуживает соединение до обрыва или отмены ctx
func (t *Transport) serve(ctx context.Context, conn Conn) {
	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	t.setState(StateConnected)
	t.network.SetConnectionStatus(models.StatusConnected)
	t.network.SetReachable(true)
	if err := t.network.MarkSynced(ctx, t.now()); err != nil {
		t.logger.Warn("Failed to save last sync time", "error", err)
	}
	t.logger.Info("Connected to authority")

	if err := t.RequestFullSync(t.opts.Collections); err != nil {
		t.logger.Warn("Failed to request full sync", "error", err)
	}

	// отмена ctx разблокирует Receive
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var env api.Envelope
		if err := conn.Receive(&env); err != nil {
			if ctx.Err() == nil {
				t.logger.Debug("Receive failed", "error", err)
			}
			break
		}
		t.handle(ctx, &env)
	}

	t.mu.Lock()
	t.conn = nil
	t.mu.Unlock()
	_ = conn.Close()

	t.network.SetConnectionStatus(models.StatusDisconnected)
	if ctx.Err() == nil {
		t.network.SetReachable(false)
	}
	t.setState(StateDisconnected)
}

func (t *Transport) handle(ctx context.Context, env *api.Envelope) {
	switch env.Type {
	case api.TypeSyncResponse:
		var resp api.FullSyncResponse
		if err := env.Decode(&resp); err != nil {
			t.logger.Warn("Invalid frame", "error", err)
			return
		}
		t.applySnapshot(ctx, resp)

	case api.TypeDataUpdate:
		var update api.PushUpdate
		if err := env.Decode(&update); err != nil {
			t.logger.Warn("Invalid frame", "error", err)
			return
		}
		t.apply(ctx, models.ChangeEvent{
			Collection: update.Collection,
			Records:    update.Data,
			Origin:     models.OriginUpdated,
			Action:     update.Action,
			Item:       update.Item,
		})

	case api.TypeOperationResult:
		var result api.OperationResult
		if err := env.Decode(&result); err != nil {
			t.logger.Warn("Invalid frame", "error", err)
			return
		}
		t.handleResult(ctx, result)

	default:
		t.logger.Debug("Ignoring frame", "type", env.Type)
	}
}

func (t *Transport) applySnapshot(ctx context.Context, resp api.FullSyncResponse) {
	if !resp.Success {
		t.logger.Warn("Full sync rejected by authority", "error", resp.Error)
		return
	}

	for collection, records := range resp.Data {
		t.apply(ctx, models.ChangeEvent{
			Collection: collection,
			Records:    records,
			Origin:     models.OriginSynced,
		})
	}

	if err := t.network.MarkSynced(ctx, t.now()); err != nil {
		t.logger.Warn("Failed to save last sync time", "error", err)
	}
}

// handleResult применяет снимок из результата и передает результат correlator.
// Снимок применяется до завершения операции, чтобы вызывающий увидел его в хранилище.
func (t *Transport) handleResult(ctx context.Context, result api.OperationResult) {
	t.mu.Lock()
	results := t.results
	t.mu.Unlock()

	collection := result.Collection
	var action models.Action
	if results != nil {
		if c, a, ok := results.Pending(result.OperationID); ok {
			action = a
			if collection == "" {
				collection = c
			}
		}
	}

	if result.Success && result.Data != nil && collection != "" {
		t.apply(ctx, models.ChangeEvent{
			Collection: collection,
			Records:    result.Data,
			Origin:     models.OriginSynced,
			Action:     action,
			Item:       result.Item,
		})
	}

	if results == nil || !results.Resolve(result) {
		t.logger.Debug("Operation result not awaited", "operation_id", result.OperationID)
	}
}

func (t *Transport) apply(ctx context.Context, ev models.ChangeEvent) {
	if !models.IsKnownCollection(ev.Collection) {
		t.logger.Warn("Ignoring snapshot of unknown collection", "collection", ev.Collection)
		return
	}
	if err := t.store.Apply(ctx, ev); err != nil {
		t.logger.Error("Failed to apply snapshot", "collection", ev.Collection, "error", err)
	}
}

func (t *Transport) setState(s State) {
	t.mu.Lock()
	changed := t.state != s
	t.state = s
	t.mu.Unlock()

	if changed {
		t.logger.Debug("Transport state changed", "state", s)
		t.states.Publish(s)
	}
}
