package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/client/iocli"
	"github.com/iudanet/bizkeeper/internal/logging"
	"github.com/iudanet/bizkeeper/internal/server/accounts"
	"github.com/iudanet/bizkeeper/internal/server/storage/sqlite"
)

func runServerCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// пустой конфиг изолирует тест от ~/.config
	cfgPath := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o600))

	var out bytes.Buffer
	cmd := NewRootCommand("test", iocli.New(strings.NewReader(stdin), &out))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	return out.String(), err
}

func TestUserAdd(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	db := filepath.Join(t.TempDir(), "server.db")

	out, err := runServerCLI(t, "correct-horse\ncorrect-horse\n", "--db", db, "user", "add", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "User alice created")

	st, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	_, err = accounts.NewService(st, logging.Discard()).Authenticate(context.Background(), "alice", "correct-horse")
	assert.NoError(t, err)
}

func TestUserAdd_PasswordMismatch(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	db := filepath.Join(t.TempDir(), "server.db")

	_, err := runServerCLI(t, "correct-horse\nsomething-else\n", "--db", db, "user", "add", "alice")
	assert.ErrorContains(t, err, "passwords do not match")
}

func TestUserPasswd_FromEnv(t *testing.T) {
	db := filepath.Join(t.TempDir(), "server.db")

	t.Setenv(PasswordEnv, "first-password")
	_, err := runServerCLI(t, "", "--db", db, "user", "add", "bob")
	require.NoError(t, err)

	t.Setenv(PasswordEnv, "second-password")
	out, err := runServerCLI(t, "", "--db", db, "user", "passwd", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Password for bob changed")

	st, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	svc := accounts.NewService(st, logging.Discard())
	_, err = svc.Authenticate(context.Background(), "bob", "second-password")
	assert.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), "bob", "first-password")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestServe_RequiresSecret(t *testing.T) {
	t.Setenv("BIZKEEPER_JWT_SECRET", "")
	db := filepath.Join(t.TempDir(), "server.db")

	_, err := runServerCLI(t, "", "--db", db, "serve", "--listen", "127.0.0.1:0")
	assert.ErrorContains(t, err, "jwt secret is not configured")
}
