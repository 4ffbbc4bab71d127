// Package correlator сопоставляет асинхронные результаты операций с их запросами.
package correlator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// DefaultTimeout время ожидания результата операции
const DefaultTimeout = 10 * time.Second

// ErrOperationTimeout возвращается, если результат не пришел вовремя
var ErrOperationTimeout = errors.New("operation timed out")

// RemoteError ошибка, о которой сообщила authority (success:false)
type RemoteError struct {
	Message     string
	OperationID uint64
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("operation %d rejected by server", e.OperationID)
	}
	return fmt.Sprintf("operation %d rejected by server: %s", e.OperationID, e.Message)
}

//go:generate moq -out sender_mock.go . Sender

// Sender отправляет операцию authority
type Sender interface {
	SendOperation(ctx context.Context, op api.Operation) error
}

// pending операция в ожидании результата
type pending struct {
	submittedAt time.Time
	completion  *Completion
	timer       *time.Timer
	collection  string
	action      models.Action
}

// Correlator assigns operation ids and resolves completions exactly once
type Correlator struct {
	sender  Sender
	logger  *slog.Logger
	pending map[uint64]*pending
	now     func() time.Time
	timeout time.Duration
	lastID  uint64
	mu      sync.Mutex
}

// New создает Correlator. timeout <= 0 означает DefaultTimeout.
func New(sender Sender, timeout time.Duration, logger *slog.Logger) *Correlator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Correlator{
		sender:  sender,
		logger:  logger,
		pending: make(map[uint64]*pending),
		now:     time.Now,
		timeout: timeout,
	}
}

// Submit регистрирует операцию, отправляет её и запускает таймаут.
// Возвращенный Completion завершается ровно один раз.
func (c *Correlator) Submit(ctx context.Context, collection string, action models.Action, payload models.Record, targetID string) *Completion {
	c.mu.Lock()
	c.lastID++
	id := c.lastID
	completion := newCompletion(id)
	p := &pending{
		submittedAt: c.now(),
		completion:  completion,
		collection:  collection,
		action:      action,
	}
	c.pending[id] = p
	// таймер запускается под блокировкой, чтобы expire видел уже зарегистрированную операцию
	p.timer = time.AfterFunc(c.timeout, func() { c.expire(id) })
	c.mu.Unlock()

	op := api.Operation{
		OperationID: id,
		Collection:  collection,
		Action:      action,
		Payload:     payload,
		TargetID:    targetID,
		Timestamp:   p.submittedAt.UnixMilli(),
	}

	c.logger.Debug("Submitting operation",
		"operation_id", id,
		"collection", collection,
		"action", action)

	if err := c.sender.SendOperation(ctx, op); err != nil {
		if c.take(id) != nil {
			completion.reject(fmt.Errorf("failed to send operation: %w", err))
		}
	}

	return completion
}

// Resolve завершает ожидающую операцию результатом.
// Возвращает false, если операция неизвестна (поздний или повторный результат).
func (c *Correlator) Resolve(result api.OperationResult) bool {
	p := c.take(result.OperationID)
	if p == nil {
		c.logger.Debug("Dropping result for unknown operation", "operation_id", result.OperationID)
		return false
	}

	if !result.Success {
		p.completion.reject(&RemoteError{OperationID: result.OperationID, Message: result.Error})
		return true
	}

	p.completion.resolve(result)
	return true
}

// Pending возвращает коллекцию и действие ожидающей операции
func (c *Correlator) Pending(id uint64) (collection string, action models.Action, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[id]
	if !ok {
		return "", "", false
	}
	return p.collection, p.action, true
}

// PendingCount возвращает количество операций в ожидании
func (c *Correlator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// take атомарно извлекает операцию из pending и останавливает её таймер
func (c *Correlator) take(id uint64) *pending {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[id]
	if !ok {
		return nil
	}
	delete(c.pending, id)
	p.timer.Stop()
	return p
}

func (c *Correlator) expire(id uint64) {
	p := c.take(id)
	if p == nil {
		return
	}

	c.logger.Warn("Operation timed out",
		"operation_id", id,
		"collection", p.collection,
		"action", p.action,
		"elapsed", c.now().Sub(p.submittedAt))
	p.completion.reject(ErrOperationTimeout)
}
