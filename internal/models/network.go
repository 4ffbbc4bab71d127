package models

import "time"

// Mode сетевая роль узла
type Mode string

const (
	ModeStandalone Mode = "standalone" // работа только с локальными данными
	ModeServer     Mode = "server"     // узел является authority для остальных
	ModeClient     Mode = "client"     // узел синхронизируется с authority
)

// Valid проверяет допустимость режима
func (m Mode) Valid() bool {
	switch m {
	case ModeStandalone, ModeServer, ModeClient:
		return true
	}
	return false
}

// ConnectionStatus производный статус соединения с authority
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "connected"
	StatusDisconnected ConnectionStatus = "disconnected"
)

// Значения по умолчанию для NetworkPreferences
const (
	DefaultServerPort   = 8080
	DefaultSyncInterval = 5 * time.Minute
)

// NetworkPreferences хранит сетевые настройки узла.
// ServerAddress/ServerPort имеют смысл только в режиме client.
// ConnectionStatus вычисляется транспортом и не является источником истины.
type NetworkPreferences struct {
	LastSync         *time.Time       `json:"last_sync,omitempty"`
	Mode             Mode             `json:"mode"`
	ServerAddress    string           `json:"server_address"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
	ServerPort       int              `json:"server_port"`
	SyncInterval     time.Duration    `json:"sync_interval"`
	AutoSync         bool             `json:"auto_sync"`
}

// DefaultNetworkPreferences возвращает настройки первого запуска
func DefaultNetworkPreferences() NetworkPreferences {
	return NetworkPreferences{
		Mode:             ModeStandalone,
		ServerPort:       DefaultServerPort,
		ConnectionStatus: StatusDisconnected,
		AutoSync:         true,
		SyncInterval:     DefaultSyncInterval,
	}
}

// Clone возвращает независимую копию настроек
func (p NetworkPreferences) Clone() NetworkPreferences {
	out := p
	if p.LastSync != nil {
		ts := *p.LastSync
		out.LastSync = &ts
	}
	return out
}

// IsClient проверяет, что узел в режиме client и знает адрес authority
func (p NetworkPreferences) IsClient() bool {
	return p.Mode == ModeClient && p.ServerAddress != ""
}
