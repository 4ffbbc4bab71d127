package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/iudanet/bizkeeper/internal/server/records"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// Hub обслуживает дуплексные соединения клиентов (/api/v1/ws).
// Изменения, примененные по операции одного клиента, рассылаются остальным как data-update.
type Hub struct {
	logger  *slog.Logger
	records RecordService
	conns   map[*peer]struct{}
	now     func() time.Time
	mu      sync.Mutex
	closed  bool
}

// peer одно websocket соединение; Send сериализуется
type peer struct {
	ws     *websocket.Conn
	userID string
	mu     sync.Mutex
}

func (p *peer) send(env *api.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return websocket.JSON.Send(p.ws, env)
}

// NewHub создает hub
func NewHub(logger *slog.Logger, records RecordService) *Hub {
	return &Hub{
		logger:  logger,
		records: records,
		conns:   make(map[*peer]struct{}),
		now:     time.Now,
	}
}

// Handler возвращает websocket handler. Авторизация выполняется AuthMiddleware
// до upgrade, поэтому отклоненный handshake клиент видит как 401.
func (h *Hub) Handler() http.Handler {
	return websocket.Server{
		// Origin не проверяем: клиенты не являются браузерами, доступ защищен токеном
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler:   h.serve,
	}
}

// Connections количество активных соединений
func (h *Hub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close закрывает все соединения. http.Server.Shutdown не закрывает hijacked соединения.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*peer, 0, len(h.conns))
	for p := range h.conns {
		conns = append(conns, p)
	}
	h.mu.Unlock()

	for _, p := range conns {
		_ = p.ws.Close()
	}
}

func (h *Hub) register(p *peer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[p] = struct{}{}
	return true
}

func (h *Hub) unregister(p *peer) {
	h.mu.Lock()
	delete(h.conns, p)
	h.mu.Unlock()
}

func (h *Hub) serve(ws *websocket.Conn) {
	req := ws.Request()
	ctx := context.WithoutCancel(req.Context())
	userID, _ := GetUserID(req.Context())

	p := &peer{ws: ws, userID: userID}
	if !h.register(p) {
		_ = ws.Close()
		return
	}
	defer func() {
		h.unregister(p)
		_ = ws.Close()
	}()

	h.logger.InfoContext(ctx, "client connected", slog.String("user_id", userID), slog.String("remote_addr", req.RemoteAddr))

	for {
		var env api.Envelope
		if err := websocket.JSON.Receive(ws, &env); err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.DebugContext(ctx, "receive failed", slog.Any("error", err))
			}
			break
		}
		h.handle(ctx, p, &env)
	}

	h.logger.InfoContext(ctx, "client disconnected", slog.String("user_id", userID))
}

func (h *Hub) handle(ctx context.Context, p *peer, env *api.Envelope) {
	switch env.Type {
	case api.TypeOperation:
		var op api.Operation
		if err := env.Decode(&op); err != nil {
			h.logger.WarnContext(ctx, "invalid operation frame", slog.Any("error", err))
			return
		}
		h.handleOperation(ctx, p, op)

	case api.TypeSyncRequest:
		var req api.FullSyncRequest
		if err := env.Decode(&req); err != nil {
			h.logger.WarnContext(ctx, "invalid sync-request frame", slog.Any("error", err))
			return
		}
		h.handleSyncRequest(ctx, p, req)

	default:
		h.logger.DebugContext(ctx, "ignoring frame", slog.String("type", string(env.Type)))
	}
}

func (h *Hub) handleOperation(ctx context.Context, p *peer, op api.Operation) {
	result := api.OperationResult{
		OperationID: op.OperationID,
		Collection:  op.Collection,
	}

	outcome, err := h.records.Apply(ctx, op)
	if err != nil {
		if !errors.Is(err, records.ErrInvalidOperation) {
			h.logger.ErrorContext(ctx, "failed to apply operation",
				slog.String("collection", op.Collection),
				slog.Uint64("operation_id", op.OperationID),
				slog.Any("error", err))
		}
		result.Error = err.Error()
		h.reply(ctx, p, api.TypeOperationResult, result)
		return
	}

	result.Success = true
	result.Item = outcome.Item
	result.Data = outcome.Data
	h.reply(ctx, p, api.TypeOperationResult, result)

	h.broadcast(ctx, p, api.PushUpdate{
		Item:       outcome.Item,
		Collection: op.Collection,
		Action:     op.Action,
		Data:       outcome.Data,
		Timestamp:  h.now().UnixMilli(),
	})
}

func (h *Hub) handleSyncRequest(ctx context.Context, p *peer, req api.FullSyncRequest) {
	resp := api.FullSyncResponse{Timestamp: h.now().UnixMilli()}

	data, err := h.records.Snapshot(ctx, req.Collections)
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Data = data
		resp.Success = true
	}

	h.reply(ctx, p, api.TypeSyncResponse, resp)
}

func (h *Hub) reply(ctx context.Context, p *peer, t api.MessageType, payload any) {
	env, err := api.NewEnvelope(t, payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build frame", slog.Any("error", err))
		return
	}
	if err := p.send(env); err != nil {
		h.logger.DebugContext(ctx, "send failed", slog.Any("error", err))
	}
}

// broadcast рассылает изменение всем соединениям, кроме источника
func (h *Hub) broadcast(ctx context.Context, origin *peer, update api.PushUpdate) {
	env, err := api.NewEnvelope(api.TypeDataUpdate, update)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build frame", slog.Any("error", err))
		return
	}

	h.mu.Lock()
	targets := make([]*peer, 0, len(h.conns))
	for p := range h.conns {
		if p != origin {
			targets = append(targets, p)
		}
	}
	h.mu.Unlock()

	for _, p := range targets {
		if err := p.send(env); err != nil {
			h.logger.DebugContext(ctx, "broadcast failed", slog.String("user_id", p.userID), slog.Any("error", err))
		}
	}

	h.logger.DebugContext(ctx, "update broadcast",
		slog.String("collection", update.Collection),
		slog.Int("recipients", len(targets)))
}
