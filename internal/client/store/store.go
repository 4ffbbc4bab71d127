// Package store хранит локальные копии коллекций и уведомляет подписчиков об изменениях.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/models"
)

// ErrStorageUnavailable возвращается, когда коллекцию не удалось прочитать или сохранить
var ErrStorageUnavailable = errors.New("could not persist")

// Store is the local store adapter over a KV byte store
type Store struct {
	kv     storage.KV
	bus    *events.ChangeBus
	logger *slog.Logger
	// pending события в порядке изменений, ждущие доставки
	pending []models.ChangeEvent
	// mu сериализует read-modify-write одной коллекции
	mu sync.Mutex
	// queueMu защищает pending и draining
	queueMu  sync.Mutex
	draining bool
}

// New создает новый Store.
// События доставляются после снятия блокировки в порядке изменений,
// поэтому подписчик может синхронно изменять Store: его событие придет
// после возврата из текущего обработчика.
func New(kv storage.KV, bus *events.ChangeBus, logger *slog.Logger) *Store {
	return &Store{
		kv:     kv,
		bus:    bus,
		logger: logger,
	}
}

// Read возвращает записи коллекции; отсутствующая коллекция пуста
func (s *Store) Read(ctx context.Context, collection string) ([]models.Record, error) {
	return s.read(ctx, collection)
}

// Write перезаписывает коллекцию целиком (локальное изменение)
func (s *Store) Write(ctx context.Context, collection string, records []models.Record) error {
	return s.Apply(ctx, models.ChangeEvent{
		Collection: collection,
		Records:    records,
		Origin:     models.OriginLocal,
	})
}

// Apply перезаписывает коллекцию снимком из события и публикует это событие.
// Используется транспортом и full-sync для данных authority.
func (s *Store) Apply(ctx context.Context, ev models.ChangeEvent) error {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Records == nil {
		ev.Records = []models.Record{}
	}
	if err := s.write(ctx, ev.Collection, ev.Records); err != nil {
		return err
	}

	s.enqueue(ev)
	return nil
}

// Append добавляет запись в коллекцию. Пустой id заменяется новым UUID,
// запись с уже существующим id заменяется.
func (s *Store) Append(ctx context.Context, collection string, record models.Record) (models.Record, error) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx, collection)
	if err != nil {
		return nil, err
	}

	rec := record.Clone()
	if rec == nil {
		rec = models.Record{}
	}
	if rec.ID() == "" {
		rec.SetID(uuid.NewString())
	}

	if i := indexOf(records, rec.ID()); i >= 0 {
		records[i] = rec
	} else {
		records = append(records, rec)
	}

	if err := s.write(ctx, collection, records); err != nil {
		return nil, err
	}

	s.enqueue(models.ChangeEvent{
		Collection: collection,
		Records:    records,
		Origin:     models.OriginLocal,
		Action:     models.ActionAdd,
		Item:       rec,
	})
	return rec.Clone(), nil
}

// Patch применяет patch к записи с id. Если записи нет, она создается из id и patch.
func (s *Store) Patch(ctx context.Context, collection, id string, patch models.Record) (models.Record, error) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx, collection)
	if err != nil {
		return nil, err
	}

	var rec models.Record
	if i := indexOf(records, id); i >= 0 {
		rec = records[i].Merge(patch)
		records[i] = rec
	} else {
		rec = models.Record{models.FieldID: id}.Merge(patch)
		records = append(records, rec)
	}

	if err := s.write(ctx, collection, records); err != nil {
		return nil, err
	}

	s.enqueue(models.ChangeEvent{
		Collection: collection,
		Records:    records,
		Origin:     models.OriginLocal,
		Action:     models.ActionUpdate,
		Item:       rec,
	})
	return rec.Clone(), nil
}

// RemoveByID удаляет запись. Удаление отсутствующей записи не изменяет коллекцию
// и не публикует событие.
func (s *Store) RemoveByID(ctx context.Context, collection, id string) error {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx, collection)
	if err != nil {
		return err
	}

	i := indexOf(records, id)
	if i < 0 {
		return nil
	}
	removed := records[i]
	records = append(records[:i], records[i+1:]...)

	if err := s.write(ctx, collection, records); err != nil {
		return err
	}

	s.enqueue(models.ChangeEvent{
		Collection: collection,
		Records:    records,
		Origin:     models.OriginLocal,
		Action:     models.ActionDelete,
		Item:       removed,
	})
	return nil
}

// Clear удаляет коллекцию из хранилища
func (s *Store) Clear(ctx context.Context, collection string) error {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, collection); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorageUnavailable, collection, err)
	}

	s.enqueue(models.ChangeEvent{
		Collection: collection,
		Records:    []models.Record{},
		Origin:     models.OriginLocal,
	})
	return nil
}

func (s *Store) read(ctx context.Context, collection string) ([]models.Record, error) {
	data, err := s.kv.Get(ctx, collection)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, collection, err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStorageUnavailable, collection, err)
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

func (s *Store) write(ctx context.Context, collection string, records []models.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorageUnavailable, collection, err)
	}
	if err := s.kv.Set(ctx, collection, data); err != nil {
		s.logger.Error("Failed to persist collection", "collection", collection, "error", err)
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, collection, err)
	}
	return nil
}

// enqueue ставит в очередь копию события, чтобы подписчики не могли изменить состояние хранилища.
// Вызывается под mu.
func (s *Store) enqueue(ev models.ChangeEvent) {
	if s.bus == nil {
		return
	}
	ev.Records = models.CloneRecords(ev.Records)
	ev.Item = ev.Item.Clone()

	s.queueMu.Lock()
	s.pending = append(s.pending, ev)
	s.queueMu.Unlock()
}

// flush доставляет накопленные события. Вызывается без mu; если доставка
// уже идет (в том числе выше по стеку из обработчика), события заберет она.
func (s *Store) flush() {
	s.queueMu.Lock()
	if s.draining {
		s.queueMu.Unlock()
		return
	}
	s.draining = true

	for len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		s.queueMu.Unlock()

		s.logger.Debug("Collection changed",
			"collection", ev.Collection,
			"origin", ev.Origin,
			"action", ev.Action,
			"count", len(ev.Records))
		s.bus.Publish(ev)

		s.queueMu.Lock()
	}

	s.pending = nil
	s.draining = false
	s.queueMu.Unlock()
}

func indexOf(records []models.Record, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range records {
		if r.ID() == id {
			return i
		}
	}
	return -1
}
