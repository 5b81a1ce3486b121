package adapters

import (
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

// WebSocketTransport talks to an instrument behind a WebSocket gateway.
// Each command is sent as one text message; each reply is one text message.
type WebSocketTransport struct {
	url  string
	conn *websocket.Conn
}

// DialWebSocket connects to the gateway at the given ws:// or wss:// URL.
func DialWebSocket(serverURL string) (*WebSocketTransport, error) {
	if _, err := url.Parse(serverURL); err != nil {
		return nil, fmt.Errorf("parse %s: %w", serverURL, err)
	}
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}
	return &WebSocketTransport{url: serverURL, conn: conn}, nil
}

// WriteString sends one command as a text message.
func (t *WebSocketTransport) WriteString(s string) error {
	if t.conn == nil {
		return websocket.ErrCloseSent
	}
	return t.conn.WriteMessage(websocket.TextMessage, []byte(s))
}

// ReadString receives one text message. Binary messages are returned as-is
// so that binary block replies pass through unchanged.
func (t *WebSocketTransport) ReadString() (string, error) {
	if t.conn == nil {
		return "", websocket.ErrCloseSent
	}
	_, data, err := t.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close closes the connection.
func (t *WebSocketTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
