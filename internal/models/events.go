package models

import "time"

// Origin источник изменения коллекции
type Origin string

const (
	OriginLocal   Origin = "local"   // локальная запись через CRUD
	OriginSynced  Origin = "synced"  // снимок от authority (full-sync, результат операции)
	OriginUpdated Origin = "updated" // push-обновление от authority, инициированное другим узлом
)

// ChangeEvent уведомление UI-слоя об изменении коллекции
type ChangeEvent struct {
	// Item запись, вызвавшая push-обновление (только для OriginUpdated)
	Item       Record
	Collection string
	Origin     Origin
	// Action действие, вызвавшее изменение (пустое для full-sync)
	Action  Action
	Records []Record
}

// NoticeKind тип уведомления пользователю
type NoticeKind string

const (
	NoticeOffline           NoticeKind = "offline"            // показаны кешированные данные
	NoticeSessionTerminated NoticeKind = "session-terminated" // требуется повторный вход
	NoticeSyncFailed        NoticeKind = "sync-failed"        // фоновая синхронизация не удалась
)

// Notice уведомление для UI (toast)
type Notice struct {
	At        time.Time
	Kind      NoticeKind
	Namespace string
	Message   string
}
