// Package events содержит синхронную шину уведомлений для UI-слоя.
package events

import (
	"sync"

	"github.com/iudanet/bizkeeper/internal/models"
)

// Bus рассылает значения типа T всем подписчикам.
// Publish вызывает обработчики синхронно в порядке подписки.
type Bus[T any] struct {
	handlers map[uint64]func(T)
	order    []uint64
	next     uint64
	mu       sync.RWMutex
}

// NewBus создает пустую шину
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{handlers: make(map[uint64]func(T))}
}

// Subscribe регистрирует обработчик и возвращает функцию отписки.
// Повторный вызов функции отписки ничего не делает.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.handlers[id] = fn
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish доставляет значение всем текущим подписчикам
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	fns := make([]func(T), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.handlers[id])
	}
	b.mu.RUnlock()

	// обработчики вызываются без блокировки, чтобы они могли подписываться/отписываться
	for _, fn := range fns {
		fn(v)
	}
}

// Len возвращает количество подписчиков
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

// Типы шин, используемые клиентом.
// События ChangeBus с Origin synced/updated доставляются из цикла приема транспорта:
// обработчик, синхронно вызывающий запись в режиме client, ждет результат до таймаута
// операции и затем фиксирует запись локально. Долгую работу выносите в горутину.
type (
	ChangeBus      = Bus[models.ChangeEvent]
	NoticeBus      = Bus[models.Notice]
	PreferencesBus = Bus[models.NetworkPreferences]
)
