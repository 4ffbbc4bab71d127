package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/client/iocli"
	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

// runCLI выполняет команду клиента над общей БД и возвращает вывод
func runCLI(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand("test", iocli.New(strings.NewReader(stdin), &out))
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	return out.String(), err
}

func newTestDB(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(PasswordEnv, "")
	return filepath.Join(t.TempDir(), "cli_test.db")
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.2.3", iocli.New(strings.NewReader(""), io.Discard))
	require.NotNil(t, cmd)
	assert.Equal(t, "bizkeeper", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand("test", iocli.New(strings.NewReader(""), io.Discard))
	commands := []string{
		"login", "logout", "status", "prefs", "test-connection", "sync",
		"add", "update", "delete", "list", "get", "stats", "watch",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand("test", iocli.New(strings.NewReader(""), io.Discard))

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	for _, name := range []string{"config", "db", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		want    models.Record
		name    string
		pairs   []string
		wantErr bool
	}{
		{
			name:  "typed values",
			pairs: []string{"name=ACME", "total=1200.5", "vip=true", "tags=[\"a\"]"},
			want:  models.Record{"name": "ACME", "total": 1200.5, "vip": true, "tags": []any{"a"}},
		},
		{
			name:  "value with equals sign",
			pairs: []string{"note=a=b"},
			want:  models.Record{"note": "a=b"},
		},
		{
			name:  "empty value",
			pairs: []string{"note="},
			want:  models.Record{"note": ""},
		},
		{name: "missing equals", pairs: []string{"name"}, wantErr: true},
		{name: "empty key", pairs: []string{"=x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFields(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandaloneRecordLifecycle(t *testing.T) {
	db := newTestDB(t)

	out, err := runCLI(t, db, "", "add", "customers", "-f", "id=c-1", "-f", "name=ACME", "-f", "vip=true")
	require.NoError(t, err)
	assert.Contains(t, out, "Added c-1")

	out, err = runCLI(t, db, "", "add", "customers", "--json", `{"id":"c-2","name":"Globex"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Added c-2")

	out, err = runCLI(t, db, "", "list", "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "customers (2)")
	assert.Contains(t, out, `"name":"ACME"`)
	assert.Contains(t, out, `"vip":true`)

	out, err = runCLI(t, db, "", "update", "customers", "c-1", "-f", "name=ACME Corp")
	require.NoError(t, err)
	assert.Contains(t, out, `"name":"ACME Corp"`)

	_, err = runCLI(t, db, "", "delete", "customers", "c-2")
	require.NoError(t, err)

	out, err = runCLI(t, db, "", "list", "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "customers (1)")
	assert.NotContains(t, out, "Globex")

	out, err = runCLI(t, db, "", "list", "quotes")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")
}

func TestRecordCommands_InvalidInput(t *testing.T) {
	db := newTestDB(t)

	_, err := runCLI(t, db, "", "add", "secrets", "-f", "x=1")
	assert.ErrorContains(t, err, "unknown collection")

	_, err = runCLI(t, db, "", "add", "customers", "--json", "{broken")
	assert.ErrorContains(t, err, "invalid --json")

	_, err = runCLI(t, db, "", "update", "customers", "c-1")
	assert.ErrorContains(t, err, "nothing to update")
}

func TestPrefsCommands(t *testing.T) {
	db := newTestDB(t)

	out, err := runCLI(t, db, "", "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "standalone")
	assert.Contains(t, out, "never")

	_, err = runCLI(t, db, "", "prefs", "set", "mode", "client")
	require.NoError(t, err)

	out, err = runCLI(t, db, "", "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "client")
	assert.Contains(t, out, "(not set)")

	_, err = runCLI(t, db, "", "prefs", "set", "serverPort", "70000")
	assert.Error(t, err)

	_, err = runCLI(t, db, "", "prefs", "set", "colour", "blue")
	assert.Error(t, err)
}

func TestStatus_NotAuthenticated(t *testing.T) {
	db := newTestDB(t)

	out, err := runCLI(t, db, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not authenticated")
	assert.Contains(t, out, "standalone")
}

func TestLogin_RequiresAuthority(t *testing.T) {
	db := newTestDB(t)

	_, err := runCLI(t, db, "alice\nsecret\n", "login")
	assert.ErrorContains(t, err, "authority is not configured")
}

// newAuthority поднимает httptest сервер с login, health и collections
func newAuthority(t *testing.T) (host string, port int) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "alice" || req.Password != "secret-password" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    900,
		})
	})
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	})
	mux.HandleFunc("GET /api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.FullSyncResponse{
			Success: true,
			Data: map[string][]models.Record{
				models.CollectionCustomers: {{"id": "remote-1", "name": "Initech"}},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	h, p, err := net.SplitHostPort(strings.TrimPrefix(server.URL, "http://"))
	require.NoError(t, err)
	port, err = strconv.Atoi(p)
	require.NoError(t, err)
	return h, port
}

func TestClientFlow_LoginSyncList(t *testing.T) {
	db := newTestDB(t)
	host, port := newAuthority(t)

	out, err := runCLI(t, db, "", "test-connection", host, strconv.Itoa(port))
	require.NoError(t, err)
	assert.Contains(t, out, "Authority is reachable")

	_, err = runCLI(t, db, "", "prefs", "set", "mode", "client")
	require.NoError(t, err)
	_, err = runCLI(t, db, "", "prefs", "set", "serverAddress", host)
	require.NoError(t, err)
	_, err = runCLI(t, db, "", "prefs", "set", "serverPort", strconv.Itoa(port))
	require.NoError(t, err)

	_, err = runCLI(t, db, "alice\nwrong-password\n", "login")
	require.Error(t, err)

	out, err = runCLI(t, db, "secret-password\n", "login", "--username", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Login successful")

	out, err = runCLI(t, db, "", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Synchronization completed")

	out, err = runCLI(t, db, "", "list", "customers")
	require.NoError(t, err)
	assert.Contains(t, out, "Initech")

	out, err = runCLI(t, db, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "never")
}

func TestTestConnection_Unreachable(t *testing.T) {
	db := newTestDB(t)

	out, err := runCLI(t, db, "", "test-connection", "127.0.0.1", "1")
	require.Error(t, err)
	assert.Contains(t, out, "✗")

	_, err = runCLI(t, db, "", "test-connection", "127.0.0.1", "port")
	assert.ErrorContains(t, err, "invalid port")
}
