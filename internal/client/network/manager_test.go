package network

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newPrefsStorage возвращает мок хранилища настроек с состоянием в памяти
func newPrefsStorage(initial *models.NetworkPreferences) *storage.PreferencesStorageMock {
	current := initial
	return &storage.PreferencesStorageMock{
		GetPreferencesFunc: func(ctx context.Context) (*models.NetworkPreferences, error) {
			if current == nil {
				return nil, storage.ErrPreferencesNotFound
			}
			p := current.Clone()
			return &p, nil
		},
		SavePreferencesFunc: func(ctx context.Context, prefs *models.NetworkPreferences) error {
			p := prefs.Clone()
			current = &p
			return nil
		},
	}
}

func TestNewManager_FirstRun(t *testing.T) {
	st := newPrefsStorage(nil)

	m, err := NewManager(context.Background(), st, events.NewBus[models.NetworkPreferences](), testLogger())
	require.NoError(t, err)

	assert.Equal(t, models.ModeStandalone, m.CurrentMode())
	assert.Len(t, st.SavePreferencesCalls(), 1, "defaults must be persisted")
	assert.Equal(t, models.DefaultNetworkPreferences(), m.Preferences())
}

func TestNewManager_LoadsStored(t *testing.T) {
	stored := models.DefaultNetworkPreferences()
	stored.Mode = models.ModeClient
	stored.ServerAddress = "10.0.0.5"
	stored.ConnectionStatus = models.StatusConnected

	m, err := NewManager(context.Background(), newPrefsStorage(&stored), nil, testLogger())
	require.NoError(t, err)

	assert.Equal(t, models.ModeClient, m.CurrentMode())
	// статус соединения не восстанавливается из хранилища
	assert.Equal(t, models.StatusDisconnected, m.Preferences().ConnectionStatus)
}

func TestNewManager_StorageError(t *testing.T) {
	st := &storage.PreferencesStorageMock{
		GetPreferencesFunc: func(ctx context.Context) (*models.NetworkPreferences, error) {
			return nil, errors.New("io error")
		},
	}

	m, err := NewManager(context.Background(), st, nil, testLogger())
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestManager_UpdatePreference(t *testing.T) {
	ctx := context.Background()
	st := newPrefsStorage(nil)
	bus := events.NewBus[models.NetworkPreferences]()

	var published []models.NetworkPreferences
	bus.Subscribe(func(p models.NetworkPreferences) { published = append(published, p) })

	m, err := NewManager(ctx, st, bus, testLogger())
	require.NoError(t, err)

	tests := []struct {
		value any
		check func(t *testing.T, p models.NetworkPreferences)
		name  string
		key   string
	}{
		{
			name: "mode from string", key: KeyMode, value: "client",
			check: func(t *testing.T, p models.NetworkPreferences) { assert.Equal(t, models.ModeClient, p.Mode) },
		},
		{
			name: "address", key: KeyServerAddress, value: " 192.168.1.10 ",
			check: func(t *testing.T, p models.NetworkPreferences) { assert.Equal(t, "192.168.1.10", p.ServerAddress) },
		},
		{
			name: "port from string", key: KeyServerPort, value: "9090",
			check: func(t *testing.T, p models.NetworkPreferences) { assert.Equal(t, 9090, p.ServerPort) },
		},
		{
			name: "auto sync", key: KeyAutoSync, value: false,
			check: func(t *testing.T, p models.NetworkPreferences) { assert.False(t, p.AutoSync) },
		},
		{
			name: "sync interval", key: KeySyncInterval, value: "30s",
			check: func(t *testing.T, p models.NetworkPreferences) { assert.Equal(t, 30*time.Second, p.SyncInterval) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, m.UpdatePreference(ctx, tt.key, tt.value))
			tt.check(t, m.Preferences())

			// изменение сохранено сразу
			stored, err := st.GetPreferences(ctx)
			require.NoError(t, err)
			tt.check(t, *stored)
		})
	}

	assert.Len(t, published, len(tests))
	assert.True(t, m.Preferences().IsClient())
}

func TestManager_UpdatePreferenceInvalid(t *testing.T) {
	ctx := context.Background()
	st := newPrefsStorage(nil)
	m, err := NewManager(ctx, st, nil, testLogger())
	require.NoError(t, err)
	saves := len(st.SavePreferencesCalls())

	tests := []struct {
		value   any
		wantErr error
		name    string
		key     string
	}{
		{name: "unknown key", key: "theme", value: "dark", wantErr: ErrUnknownPreference},
		{name: "bad mode", key: KeyMode, value: "master", wantErr: ErrInvalidPreference},
		{name: "port out of range", key: KeyServerPort, value: 70000, wantErr: ErrInvalidPreference},
		{name: "port not number", key: KeyServerPort, value: "abc", wantErr: ErrInvalidPreference},
		{name: "bad bool", key: KeyAutoSync, value: "maybe", wantErr: ErrInvalidPreference},
		{name: "too short interval", key: KeySyncInterval, value: "10ms", wantErr: ErrInvalidPreference},
		{name: "wrong type", key: KeyServerAddress, value: 42, wantErr: ErrInvalidPreference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.UpdatePreference(ctx, tt.key, tt.value)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Len(t, st.SavePreferencesCalls(), saves, "invalid values must not be persisted")
	assert.Equal(t, models.ModeStandalone, m.CurrentMode())
}

func TestManager_UpdatePreferenceSaveError(t *testing.T) {
	ctx := context.Background()
	st := newPrefsStorage(nil)
	m, err := NewManager(ctx, st, nil, testLogger())
	require.NoError(t, err)

	st.SavePreferencesFunc = func(ctx context.Context, prefs *models.NetworkPreferences) error {
		return errors.New("disk full")
	}

	err = m.UpdatePreference(ctx, KeyMode, models.ModeServer)
	assert.Error(t, err)
	assert.Equal(t, models.ModeStandalone, m.CurrentMode(), "in-memory state must match persisted")
}

func TestManager_ConnectionStatusAndSync(t *testing.T) {
	ctx := context.Background()
	st := newPrefsStorage(nil)
	m, err := NewManager(ctx, st, nil, testLogger())
	require.NoError(t, err)

	m.SetConnectionStatus(models.StatusConnected)
	assert.Equal(t, models.StatusConnected, m.Preferences().ConnectionStatus)

	now := time.Now()
	require.NoError(t, m.MarkSynced(ctx, now))
	require.NotNil(t, m.Preferences().LastSync)
	assert.True(t, now.Equal(*m.Preferences().LastSync))

	assert.False(t, m.Reachable())
	m.SetReachable(true)
	assert.True(t, m.Reachable())
}

func TestManager_PreferencesIsCopy(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(ctx, newPrefsStorage(nil), nil, testLogger())
	require.NoError(t, err)
	require.NoError(t, m.MarkSynced(ctx, time.Now()))

	p := m.Preferences()
	p.Mode = models.ModeServer
	*p.LastSync = time.Time{}

	assert.Equal(t, models.ModeStandalone, m.CurrentMode())
	assert.False(t, m.Preferences().LastSync.IsZero())
}

func TestManager_URLs(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(ctx, newPrefsStorage(nil), nil, testLogger())
	require.NoError(t, err)

	assert.Empty(t, m.BaseURL(), "standalone has no authority")
	assert.Empty(t, m.WebSocketURL())

	require.NoError(t, m.UpdatePreference(ctx, KeyMode, "client"))
	require.NoError(t, m.UpdatePreference(ctx, KeyServerAddress, "10.0.0.5"))
	require.NoError(t, m.UpdatePreference(ctx, KeyServerPort, 9090))

	assert.Equal(t, "http://10.0.0.5:9090", m.BaseURL())
	assert.Equal(t, "ws://10.0.0.5:9090/api/v1/ws", m.WebSocketURL())
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		address string
		want    string
		port    int
	}{
		{address: "localhost", port: 8080, want: "http://localhost:8080"},
		{address: "https://example.com/", port: 443, want: "https://example.com:443"},
		{address: "http://10.0.0.1", port: 0, want: "http://10.0.0.1:8080"},
		{address: "::1", port: 8080, want: "http://[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseURL(tt.address, tt.port))
		})
	}
}
