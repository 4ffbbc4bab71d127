package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/records"
	"github.com/iudanet/bizkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/bizkeeper/pkg/api"
)

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()

	st, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	hub := NewHub(setupTestLogger(), records.NewService(st, setupTestLogger()))

	withUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Handler().ServeHTTP(w, r.WithContext(WithUser(r.Context(), "user-1", "alice")))
	})
	srv := httptest.NewServer(withUser)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialHub(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func sendFrame(t *testing.T, ws *websocket.Conn, typ api.MessageType, payload any) {
	t.Helper()

	env, err := api.NewEnvelope(typ, payload)
	require.NoError(t, err)
	require.NoError(t, websocket.JSON.Send(ws, env))
}

func receiveFrame(t *testing.T, ws *websocket.Conn) api.Envelope {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env api.Envelope
	require.NoError(t, websocket.JSON.Receive(ws, &env))
	return env
}

func TestHub_OperationResultAndBroadcast(t *testing.T) {
	hub, url := newTestHub(t)

	origin := dialHub(t, url)
	other := dialHub(t, url)

	require.Eventually(t, func() bool { return hub.Connections() == 2 }, 2*time.Second, 10*time.Millisecond)

	sendFrame(t, origin, api.TypeOperation, api.Operation{
		OperationID: 7,
		Collection:  models.CollectionCustomers,
		Action:      models.ActionAdd,
		Payload:     models.Record{"id": "c-1", "name": "ACME"},
	})

	env := receiveFrame(t, origin)
	require.Equal(t, api.TypeOperationResult, env.Type)

	var result api.OperationResult
	require.NoError(t, env.Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, uint64(7), result.OperationID)
	assert.Equal(t, models.CollectionCustomers, result.Collection)
	assert.Equal(t, "c-1", result.Item.ID())
	require.Len(t, result.Data, 1)

	env = receiveFrame(t, other)
	require.Equal(t, api.TypeDataUpdate, env.Type)

	var update api.PushUpdate
	require.NoError(t, env.Decode(&update))
	assert.Equal(t, models.CollectionCustomers, update.Collection)
	assert.Equal(t, models.ActionAdd, update.Action)
	assert.Equal(t, "ACME", update.Item["name"])
	assert.Len(t, update.Data, 1)
}

func TestHub_OperationRejected(t *testing.T) {
	_, url := newTestHub(t)
	ws := dialHub(t, url)

	sendFrame(t, ws, api.TypeOperation, api.Operation{
		OperationID: 1,
		Collection:  "secrets",
		Action:      models.ActionAdd,
		Payload:     models.Record{"id": "x"},
	})

	env := receiveFrame(t, ws)
	var result api.OperationResult
	require.NoError(t, env.Decode(&result))
	assert.False(t, result.Success)
	assert.Equal(t, uint64(1), result.OperationID)
	assert.Contains(t, result.Error, "unknown collection")
}

func TestHub_SyncRequest(t *testing.T) {
	_, url := newTestHub(t)
	ws := dialHub(t, url)

	sendFrame(t, ws, api.TypeOperation, api.Operation{
		OperationID: 1,
		Collection:  models.CollectionQuotes,
		Action:      models.ActionAdd,
		Payload:     models.Record{"id": "q-1"},
	})
	_ = receiveFrame(t, ws)

	sendFrame(t, ws, api.TypeSyncRequest, api.FullSyncRequest{
		Collections: []string{models.CollectionQuotes, models.CollectionInvoices},
	})

	env := receiveFrame(t, ws)
	require.Equal(t, api.TypeSyncResponse, env.Type)

	var resp api.FullSyncResponse
	require.NoError(t, env.Decode(&resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data[models.CollectionQuotes], 1)
	assert.Empty(t, resp.Data[models.CollectionInvoices])
}

func TestHub_Close(t *testing.T) {
	hub, url := newTestHub(t)
	ws := dialHub(t, url)

	require.Eventually(t, func() bool { return hub.Connections() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env api.Envelope
	assert.Error(t, websocket.JSON.Receive(ws, &env))
	assert.Eventually(t, func() bool { return hub.Connections() == 0 }, 2*time.Second, 10*time.Millisecond)
}
