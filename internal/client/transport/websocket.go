package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/iudanet/bizkeeper/pkg/api"
)

// ErrHandshakeRejected authority отклонила handshake (например, просроченный токен)
var ErrHandshakeRejected = errors.New("handshake rejected")

// WebSocketDialer открывает websocket соединение с Bearer токеном в handshake
type WebSocketDialer struct {
	Origin string
}

// Dial implements Dialer
func (d WebSocketDialer) Dial(ctx context.Context, url, token string) (Conn, error) {
	origin := d.Origin
	if origin == "" {
		origin = "http://localhost/"
	}

	cfg, err := websocket.NewConfig(url, origin)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket config: %w", err)
	}
	cfg.Header = http.Header{}
	cfg.Header.Set("Authorization", "Bearer "+token)

	ws, err := cfg.DialContext(ctx)
	if err != nil {
		var dialErr *websocket.DialError
		if errors.As(err, &dialErr) && dialErr.Err == websocket.ErrBadStatus {
			return nil, fmt.Errorf("%w: %w", ErrHandshakeRejected, err)
		}
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	return &wsConn{ws: ws}, nil
}

// wsConn кадры передаются как JSON сообщения
type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) Send(env *api.Envelope) error {
	return websocket.JSON.Send(c.ws, env)
}

func (c *wsConn) Receive(env *api.Envelope) error {
	return websocket.JSON.Receive(c.ws, env)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}
