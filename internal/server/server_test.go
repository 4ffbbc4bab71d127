package server

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/client/network"
	"github.com/iudanet/bizkeeper/internal/client/node"
	"github.com/iudanet/bizkeeper/internal/config"
	"github.com/iudanet/bizkeeper/internal/logging"
	"github.com/iudanet/bizkeeper/internal/models"
)

// startAuthority запускает authority на случайном порту
func startAuthority(t *testing.T) (*Server, int) {
	t.Helper()

	cfg := config.DefaultServer()
	cfg.DBPath = filepath.Join(t.TempDir(), "server.db")
	cfg.JWTSecret = "integration-secret"

	ctx, cancel := context.WithCancel(context.Background())

	srv, err := New(ctx, cfg, "test", logging.Discard())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		assert.NoError(t, srv.Close())
	})

	return srv, ln.Addr().(*net.TCPAddr).Port
}

// startClient собирает клиентский узел, подключенный к authority
func startClient(t *testing.T, port int, username, password string) *node.Node {
	t.Helper()
	ctx := context.Background()

	cfg := config.DefaultClient()
	cfg.DBPath = filepath.Join(t.TempDir(), username+".db")
	cfg.ReconnectBackoff = 50 * time.Millisecond

	n, err := node.New(ctx, cfg, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, n.Network.UpdatePreference(ctx, network.KeyServerAddress, "127.0.0.1"))
	require.NoError(t, n.Network.UpdatePreference(ctx, network.KeyServerPort, port))

	_, err = n.Auth.Login(ctx, username, password)
	require.NoError(t, err)

	require.NoError(t, n.Network.UpdatePreference(ctx, network.KeyMode, string(models.ModeClient)))

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = n.Run(runCtx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		_ = n.Close()
	})

	require.Eventually(t, n.Transport.IsConnected, 5*time.Second, 20*time.Millisecond)
	return n
}

func TestNew_RequiresJWTSecret(t *testing.T) {
	cfg := config.DefaultServer()
	cfg.DBPath = filepath.Join(t.TempDir(), "server.db")

	_, err := New(context.Background(), cfg, "test", logging.Discard())
	assert.ErrorIs(t, err, ErrNoJWTSecret)
}

func TestServer_HealthWithoutAuth(t *testing.T) {
	_, port := startAuthority(t)

	resp, err := http.Get(network.BaseURL("127.0.0.1", port) + "/api/v1/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(network.BaseURL("127.0.0.1", port) + "/api/v1/stats")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestServer_ClientsSynchronize(t *testing.T) {
	ctx := context.Background()
	srv, port := startAuthority(t)

	_, err := srv.Accounts().Create(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	_, err = srv.Accounts().Create(ctx, "bob", "battery-staple")
	require.NoError(t, err)

	alice := startClient(t, port, "alice", "correct-horse")
	bob := startClient(t, port, "bob", "battery-staple")

	updates := make(chan models.ChangeEvent, 8)
	bob.Changes.Subscribe(func(ev models.ChangeEvent) {
		if ev.Origin == models.OriginUpdated {
			updates <- ev
		}
	})

	// операция проходит через authority и возвращается подтвержденной
	rec, err := alice.Data.Add(ctx, models.CollectionCustomers, models.Record{"name": "ACME"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID())

	list, err := alice.Data.List(ctx, models.CollectionCustomers)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// второй клиент получает push-обновление
	select {
	case ev := <-updates:
		assert.Equal(t, models.CollectionCustomers, ev.Collection)
		assert.Equal(t, models.ActionAdd, ev.Action)
		assert.Equal(t, "ACME", ev.Item["name"])
	case <-time.After(5 * time.Second):
		t.Fatal("push update was not delivered")
	}

	bobList, err := bob.Data.List(ctx, models.CollectionCustomers)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, rec.ID(), bobList[0].ID())

	// отчеты читают сводку authority
	stats, err := bob.Reports.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Counts[models.CollectionCustomers])
}
