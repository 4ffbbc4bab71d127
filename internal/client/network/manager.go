// Package network хранит сетевые настройки узла и является единственным
// источником текущего режима для остальных компонентов.
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/models"
)

// Ключи настроек для UpdatePreference
const (
	KeyMode          = "mode"
	KeyServerAddress = "serverAddress"
	KeyServerPort    = "serverPort"
	KeyAutoSync      = "autoSync"
	KeySyncInterval  = "syncInterval"
)

var (
	// ErrUnknownPreference возвращается для неизвестного ключа настроек
	ErrUnknownPreference = errors.New("unknown preference")

	// ErrInvalidPreference возвращается для недопустимого значения
	ErrInvalidPreference = errors.New("invalid preference value")
)

// Manager is the single writer of NetworkPreferences
type Manager struct {
	storage   storage.PreferencesStorage
	bus       *events.PreferencesBus
	logger    *slog.Logger
	prefs     models.NetworkPreferences
	reachable bool
	mu        sync.RWMutex
}

// NewManager загружает настройки из хранилища.
// При первом запуске сохраняются значения по умолчанию.
func NewManager(ctx context.Context, prefsStorage storage.PreferencesStorage, bus *events.PreferencesBus, logger *slog.Logger) (*Manager, error) {
	m := &Manager{
		storage: prefsStorage,
		bus:     bus,
		logger:  logger,
	}

	stored, err := prefsStorage.GetPreferences(ctx)
	switch {
	case errors.Is(err, storage.ErrPreferencesNotFound):
		m.prefs = models.DefaultNetworkPreferences()
		if err := prefsStorage.SavePreferences(ctx, &m.prefs); err != nil {
			return nil, fmt.Errorf("failed to save default preferences: %w", err)
		}
		logger.Info("Network preferences initialized with defaults", "mode", m.prefs.Mode)
	case err != nil:
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	default:
		m.prefs = stored.Clone()
		if !m.prefs.Mode.Valid() {
			m.prefs.Mode = models.ModeStandalone
		}
		if m.prefs.ServerPort == 0 {
			m.prefs.ServerPort = models.DefaultServerPort
		}
		if m.prefs.SyncInterval <= 0 {
			m.prefs.SyncInterval = models.DefaultSyncInterval
		}
	}

	// Статус соединения производный, после рестарта соединения нет
	m.prefs.ConnectionStatus = models.StatusDisconnected

	return m, nil
}

// CurrentMode возвращает текущий режим узла
func (m *Manager) CurrentMode() models.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs.Mode
}

// Preferences возвращает копию текущих настроек
func (m *Manager) Preferences() models.NetworkPreferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs.Clone()
}

// UpdatePreference изменяет одну настройку и сразу сохраняет её.
// value может быть строкой (ввод CLI) или значением нужного типа.
func (m *Manager) UpdatePreference(ctx context.Context, key string, value any) error {
	m.mu.Lock()

	next := m.prefs.Clone()
	if err := applyPreference(&next, key, value); err != nil {
		m.mu.Unlock()
		return err
	}

	if err := m.storage.SavePreferences(ctx, &next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	m.prefs = next
	snapshot := next.Clone()
	m.mu.Unlock()

	m.logger.Info("Network preference updated", "key", key, "mode", snapshot.Mode)
	m.publish(snapshot)
	return nil
}

// SetConnectionStatus обновляет производный статус соединения (не сохраняется)
func (m *Manager) SetConnectionStatus(status models.ConnectionStatus) {
	m.mu.Lock()
	m.prefs.ConnectionStatus = status
	m.mu.Unlock()
}

// MarkSynced сохраняет время последней успешной синхронизации
func (m *Manager) MarkSynced(ctx context.Context, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.prefs.Clone()
	ts := at.UTC()
	next.LastSync = &ts

	if err := m.storage.SavePreferences(ctx, &next); err != nil {
		return fmt.Errorf("failed to save last sync: %w", err)
	}
	m.prefs = next
	return nil
}

// Reachable возвращает флаг доступности authority
func (m *Manager) Reachable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reachable
}

// SetReachable обновляет флаг доступности authority
func (m *Manager) SetReachable(reachable bool) {
	m.mu.Lock()
	changed := m.reachable != reachable
	m.reachable = reachable
	m.mu.Unlock()

	if changed {
		m.logger.Debug("Authority reachability changed", "reachable", reachable)
	}
}

// Subscribe подписывает на изменения настроек
func (m *Manager) Subscribe(fn func(models.NetworkPreferences)) (unsubscribe func()) {
	return m.bus.Subscribe(fn)
}

// BaseURL возвращает HTTP адрес authority или пустую строку вне режима client
func (m *Manager) BaseURL() string {
	prefs := m.Preferences()
	if !prefs.IsClient() {
		return ""
	}
	return BaseURL(prefs.ServerAddress, prefs.ServerPort)
}

// WebSocketURL возвращает адрес duplex канала authority
func (m *Manager) WebSocketURL() string {
	base := m.BaseURL()
	if base == "" {
		return ""
	}
	return "ws" + strings.TrimPrefix(base, "http") + "/api/v1/ws"
}

// BaseURL собирает HTTP адрес из адреса и порта.
// Адрес может уже содержать схему.
func BaseURL(address string, port int) string {
	address = strings.TrimSuffix(strings.TrimSpace(address), "/")
	scheme := "http"
	if rest, ok := strings.CutPrefix(address, "https://"); ok {
		scheme, address = "https", rest
	} else if rest, ok := strings.CutPrefix(address, "http://"); ok {
		address = rest
	}
	if port <= 0 {
		port = models.DefaultServerPort
	}
	return scheme + "://" + net.JoinHostPort(address, strconv.Itoa(port))
}

func (m *Manager) publish(prefs models.NetworkPreferences) {
	if m.bus != nil {
		m.bus.Publish(prefs)
	}
}

func applyPreference(p *models.NetworkPreferences, key string, value any) error {
	switch key {
	case KeyMode:
		s, err := asString(value)
		if err != nil {
			return err
		}
		mode := models.Mode(strings.ToLower(s))
		if !mode.Valid() {
			return fmt.Errorf("%w: mode %q", ErrInvalidPreference, s)
		}
		p.Mode = mode
	case KeyServerAddress:
		s, err := asString(value)
		if err != nil {
			return err
		}
		p.ServerAddress = strings.TrimSpace(s)
	case KeyServerPort:
		port, err := asInt(value)
		if err != nil {
			return err
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: port %d", ErrInvalidPreference, port)
		}
		p.ServerPort = port
	case KeyAutoSync:
		b, err := asBool(value)
		if err != nil {
			return err
		}
		p.AutoSync = b
	case KeySyncInterval:
		d, err := asDuration(value)
		if err != nil {
			return err
		}
		if d < time.Second {
			return fmt.Errorf("%w: sync interval %s", ErrInvalidPreference, d)
		}
		p.SyncInterval = d
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	return nil
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case models.Mode:
		return string(s), nil
	}
	return "", fmt.Errorf("%w: expected string, got %T", ErrInvalidPreference, v)
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPreference, n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: expected number, got %T", ErrInvalidPreference, v)
}

func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidPreference, b)
		}
		return parsed, nil
	}
	return false, fmt.Errorf("%w: expected boolean, got %T", ErrInvalidPreference, v)
}

func asDuration(v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(d))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a duration", ErrInvalidPreference, d)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("%w: expected duration, got %T", ErrInvalidPreference, v)
}
