package models

import (
	"fmt"
	"maps"
	"strconv"
)

// Коллекции бизнес-записей, которые синхронизирует клиент
const (
	CollectionCustomers = "customers"
	CollectionProjects  = "projects"
	CollectionMaterials = "materials"
	CollectionQuotes    = "quotes"
	CollectionInvoices  = "invoices"
)

// AllCollections возвращает список всех известных коллекций в стабильном порядке
func AllCollections() []string {
	return []string{
		CollectionCustomers,
		CollectionProjects,
		CollectionMaterials,
		CollectionQuotes,
		CollectionInvoices,
	}
}

// IsKnownCollection проверяет, что коллекция входит в набор бизнес-коллекций
func IsKnownCollection(name string) bool {
	for _, c := range AllCollections() {
		if c == name {
			return true
		}
	}
	return false
}

// FieldID имя поля с идентификатором записи
const FieldID = "id"

// Record представляет запись любой коллекции.
// Слой синхронизации не интерпретирует бизнес-поля, ему нужен только стабильный "id".
type Record map[string]any

// ID возвращает идентификатор записи или пустую строку
func (r Record) ID() string {
	v, ok := r[FieldID]
	if !ok || v == nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		// JSON числа приходят как float64
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return fmt.Sprint(id)
	}
}

// SetID устанавливает идентификатор записи
func (r Record) SetID(id string) {
	r[FieldID] = id
}

// Clone создает поверхностную копию записи
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Merge возвращает копию записи с применённым patch.
// Поле id из patch игнорируется: идентификатор записи неизменяем.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	if out == nil {
		out = Record{}
	}
	for k, v := range patch {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	return out
}

// CloneRecords копирует срез записей
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Clone())
	}
	return out
}

// Action тип операции над записью
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid проверяет допустимость действия
func (a Action) Valid() bool {
	switch a {
	case ActionAdd, ActionUpdate, ActionDelete:
		return true
	}
	return false
}
