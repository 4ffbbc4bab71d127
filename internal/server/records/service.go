package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/storage"
	"github.com/iudanet/bizkeeper/internal/validation"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// ErrInvalidOperation операция не прошла проверку
var ErrInvalidOperation = errors.New("invalid operation")

// Outcome результат применения операции authority
type Outcome struct {
	// Item запись после операции (для delete последняя известная версия или только id)
	Item models.Record
	// Data полный снимок коллекции после операции
	Data []models.Record
}

// Service применяет операции к коллекциям authority.
// Операции сериализуются: побеждает последняя примененная.
type Service struct {
	storage storage.RecordStorage
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewService создает сервис записей
func NewService(storage storage.RecordStorage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Apply применяет операцию и возвращает запись и снимок коллекции
func (s *Service) Apply(ctx context.Context, op api.Operation) (*Outcome, error) {
	if err := validation.ValidateCollection(op.Collection); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		item models.Record
		err  error
	)

	switch op.Action {
	case models.ActionAdd:
		item, err = s.add(ctx, op)
	case models.ActionUpdate:
		item, err = s.update(ctx, op)
	case models.ActionDelete:
		item, err = s.delete(ctx, op)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidOperation, op.Action)
	}
	if err != nil {
		return nil, err
	}

	data, err := s.storage.ListRecords(ctx, op.Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.logger.DebugContext(ctx, "operation applied",
		slog.String("collection", op.Collection),
		slog.String("action", string(op.Action)),
		slog.String("id", item.ID()))

	return &Outcome{Item: item, Data: data}, nil
}

func (s *Service) add(ctx context.Context, op api.Operation) (models.Record, error) {
	if op.Payload == nil {
		return nil, fmt.Errorf("%w: add requires payload", ErrInvalidOperation)
	}

	item := op.Payload.Clone()
	if item.ID() == "" {
		item.SetID(uuid.New().String())
	}
	if err := validation.ValidateRecordID(item.ID()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}

	if err := s.storage.PutRecord(ctx, op.Collection, item); err != nil {
		return nil, fmt.Errorf("failed to add record: %w", err)
	}
	return item, nil
}

// update для отсутствующей записи выполняет upsert (id + patch)
func (s *Service) update(ctx context.Context, op api.Operation) (models.Record, error) {
	if err := validation.ValidateRecordID(op.TargetID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}

	current, err := s.storage.GetRecord(ctx, op.Collection, op.TargetID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	item := current.Merge(op.Payload)
	item.SetID(op.TargetID)

	if err := s.storage.PutRecord(ctx, op.Collection, item); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return item, nil
}

// delete отсутствующей записи не является ошибкой
func (s *Service) delete(ctx context.Context, op api.Operation) (models.Record, error) {
	if err := validation.ValidateRecordID(op.TargetID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}

	item, err := s.storage.GetRecord(ctx, op.Collection, op.TargetID)
	if err != nil {
		if !errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get record: %w", err)
		}
		item = models.Record{models.FieldID: op.TargetID}
	}

	err = s.storage.DeleteRecord(ctx, op.Collection, op.TargetID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}
	return item, nil
}

// Snapshot возвращает снимки коллекций; пустой список означает все коллекции
func (s *Service) Snapshot(ctx context.Context, names []string) (map[string][]models.Record, error) {
	if len(names) == 0 {
		names = models.AllCollections()
	}

	out := make(map[string][]models.Record, len(names))
	for _, name := range names {
		if err := validation.ValidateCollection(name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
		}
		list, err := s.storage.ListRecords(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		out[name] = list
	}
	return out, nil
}

// Get возвращает одну запись
func (s *Service) Get(ctx context.Context, collection, id string) (models.Record, error) {
	if err := validation.ValidateCollection(collection); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}
	return s.storage.GetRecord(ctx, collection, id)
}

// Stats возвращает количество записей по всем известным коллекциям
func (s *Service) Stats(ctx context.Context) (map[string]int, error) {
	counts, err := s.storage.CountRecords(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(counts))
	for _, c := range models.AllCollections() {
		out[c] = counts[c]
	}
	return out, nil
}
