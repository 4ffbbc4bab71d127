package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestStdio_Output(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(""), &out)

	s.Println("mode:", "client")
	s.Printf("port=%d\n", 8080)
	_, err := s.Write([]byte("raw"))
	require.NoError(t, err)

	assert.Equal(t, "mode: client\nport=8080\nraw", out.String())
}

func TestStdio_ReadInput(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("  alice  \nsecret"), &out)

	username, err := s.ReadInput("Username: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	// последняя строка без перевода строки тоже читается
	password, err := s.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", password)

	assert.Equal(t, "Username: Password: ", out.String())

	_, err = s.ReadInput("More: ")
	assert.ErrorIs(t, err, io.EOF)
}
