package api

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/bizkeeper/internal/models"
)

// MessageType тип кадра в дуплексном канале
type MessageType string

const (
	TypeOperation       MessageType = "operation"
	TypeOperationResult MessageType = "operation-result"
	TypeSyncRequest     MessageType = "sync-request"
	TypeSyncResponse    MessageType = "sync-response"
	TypeDataUpdate      MessageType = "data-update"
)

// Envelope кадр дуплексного канала: тип + полезная нагрузка
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope упаковывает payload в кадр указанного типа
func NewEnvelope(t MessageType, payload any) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", t, err)
	}
	return &Envelope{Type: t, Payload: data}, nil
}

// Decode распаковывает payload кадра
func (e *Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Operation исходящая операция записи
type Operation struct {
	Payload     models.Record `json:"payload,omitempty"`
	Collection  string        `json:"collection"`
	Action      models.Action `json:"action"`
	TargetID    string        `json:"targetId,omitempty"`
	OperationID uint64        `json:"operationId"`
	Timestamp   int64         `json:"timestamp"` // Unix ms
}

// OperationResult результат операции от authority
type OperationResult struct {
	Item models.Record `json:"item,omitempty"`
	// Collection позволяет применить снимок даже для просроченной операции
	Collection  string          `json:"collection,omitempty"`
	Error       string          `json:"error,omitempty"`
	Data        []models.Record `json:"data,omitempty"`
	OperationID uint64          `json:"operationId"`
	Success     bool            `json:"success"`
}

// FullSyncRequest запрос полного снимка коллекций
type FullSyncRequest struct {
	Collections []string `json:"collections"`
}

// FullSyncResponse полный снимок коллекций от authority
type FullSyncResponse struct {
	Data      map[string][]models.Record `json:"data"`
	Error     string                     `json:"error,omitempty"`
	Timestamp int64                      `json:"timestamp"` // Unix ms
	Success   bool                       `json:"success"`
}

// PushUpdate изменение коллекции, инициированное другим узлом
type PushUpdate struct {
	Item       models.Record   `json:"item,omitempty"`
	Collection string          `json:"collection"`
	Action     models.Action   `json:"action"`
	Data       []models.Record `json:"data"`
	Timestamp  int64           `json:"timestamp"` // Unix ms
}

// StatsResponse сводка по коллекциям authority (аналитика)
type StatsResponse struct {
	Counts      map[string]int `json:"counts"`
	GeneratedAt int64          `json:"generated_at"` // Unix ms
}
