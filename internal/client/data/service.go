package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iudanet/bizkeeper/internal/client/correlator"
	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/validation"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// ErrInvalidInput некорректные аргументы CRUD операции
var ErrInvalidInput = errors.New("invalid input")

// Service диспетчер CRUD операций.
// В режиме client с подключенным транспортом операция подтверждается authority,
// иначе (или при любой ошибке удаленной операции) запись фиксируется локально.
// Наружу возвращаются только ошибки хранилища и некорректный ввод.
type Service struct {
	store     Store
	network   Network
	transport Transport
	submitter Submitter
	syncer    Syncer
	logger    *slog.Logger
}

// NewService creates a new CRUD dispatcher
func NewService(store Store, network Network, transport Transport, submitter Submitter, syncer Syncer, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		network:   network,
		transport: transport,
		submitter: submitter,
		syncer:    syncer,
		logger:    logger,
	}
}

// Add добавляет запись. Пустой id заменяется новым UUID до отправки,
// чтобы локальная и удаленная копии совпадали.
func (s *Service) Add(ctx context.Context, collection string, record models.Record) (models.Record, error) {
	if err := validation.ValidateCollection(collection); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	rec := record.Clone()
	if rec == nil {
		rec = models.Record{}
	}
	if rec.ID() == "" {
		rec.SetID(uuid.NewString())
	}
	if err := validation.ValidateRecordID(rec.ID()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if item, ok := s.remote(ctx, collection, models.ActionAdd, rec, ""); ok {
		return item, nil
	}

	saved, err := s.store.Append(ctx, collection, rec)
	if err != nil {
		return nil, err
	}
	s.afterLocalCommit(ctx)
	return saved, nil
}

// Update применяет patch к записи. Отсутствующая локально запись создается.
func (s *Service) Update(ctx context.Context, collection, id string, patch models.Record) (models.Record, error) {
	if err := s.validateTarget(collection, id); err != nil {
		return nil, err
	}

	if item, ok := s.remote(ctx, collection, models.ActionUpdate, patch, id); ok {
		return item, nil
	}

	saved, err := s.store.Patch(ctx, collection, id, patch)
	if err != nil {
		return nil, err
	}
	s.afterLocalCommit(ctx)
	return saved, nil
}

// Delete удаляет запись. Удаление отсутствующей записи не является ошибкой.
func (s *Service) Delete(ctx context.Context, collection, id string) error {
	if err := s.validateTarget(collection, id); err != nil {
		return err
	}

	if _, ok := s.remote(ctx, collection, models.ActionDelete, nil, id); ok {
		return nil
	}

	if err := s.store.RemoveByID(ctx, collection, id); err != nil {
		return err
	}
	s.afterLocalCommit(ctx)
	return nil
}

// List возвращает локальную копию коллекции
func (s *Service) List(ctx context.Context, collection string) ([]models.Record, error) {
	if err := validation.ValidateCollection(collection); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.store.Read(ctx, collection)
}

func (s *Service) validateTarget(collection, id string) error {
	if err := validation.ValidateCollection(collection); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := validation.ValidateRecordID(id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// remote пытается выполнить операцию через authority.
// ok=false означает, что нужно фиксировать запись локально.
func (s *Service) remote(ctx context.Context, collection string, action models.Action, payload models.Record, targetID string) (models.Record, bool) {
	if s.network.CurrentMode() != models.ModeClient || !s.transport.IsConnected() {
		return nil, false
	}

	completion := s.submitter.Submit(ctx, collection, action, payload, targetID)
	result, err := completion.Wait(ctx)
	if err != nil {
		var remoteErr *correlator.RemoteError
		switch {
		case errors.As(err, &remoteErr):
			s.logger.Warn("Authority rejected operation, committing locally",
				"collection", collection, "action", action, "operation_id", completion.ID(), "error", remoteErr.Message)
		case errors.Is(err, correlator.ErrOperationTimeout):
			s.logger.Warn("Operation timed out, committing locally",
				"collection", collection, "action", action, "operation_id", completion.ID())
		default:
			s.logger.Warn("Remote operation failed, committing locally",
				"collection", collection, "action", action, "operation_id", completion.ID(), "error", err)
		}
		return nil, false
	}

	item, err := s.commitResult(ctx, collection, action, payload, targetID, result)
	if err != nil {
		s.logger.Warn("Failed to apply confirmed operation locally",
			"collection", collection, "operation_id", completion.ID(), "error", err)
		return nil, false
	}

	s.logger.Debug("Operation confirmed by authority",
		"collection", collection, "action", action, "operation_id", completion.ID())
	return item, true
}

// commitResult фиксирует подтвержденную операцию, если authority не прислал снимок коллекции.
// Снимок из результата уже применен транспортом.
func (s *Service) commitResult(ctx context.Context, collection string, action models.Action, payload models.Record, targetID string, result api.OperationResult) (models.Record, error) {
	item := result.Item.Clone()
	if result.Data != nil {
		if item == nil && action != models.ActionDelete {
			item = payload.Clone()
		}
		return item, nil
	}

	switch action {
	case models.ActionAdd:
		if item == nil {
			item = payload
		}
		return s.store.Append(ctx, collection, item)
	case models.ActionUpdate:
		if item == nil {
			item = payload
		}
		return s.store.Patch(ctx, collection, targetID, item)
	case models.ActionDelete:
		return item, s.store.RemoveByID(ctx, collection, targetID)
	}
	return item, nil
}

// afterLocalCommit запускает полную синхронизацию, если authority доступен
func (s *Service) afterLocalCommit(ctx context.Context) {
	if s.network.CurrentMode() == models.ModeClient && s.network.Reachable() && s.syncer != nil {
		s.syncer.TriggerFullSync(ctx)
	}
}
