package connect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Xevion/go-ha-number-card/internal"
)

var ErrInvalidToken = errors.New("invalid authentication token")

const dialTimeout = 3 * time.Second

// Writer sends one JSON message to Home Assistant. HAConnection implements it;
// tests substitute a recorder.
type Writer interface {
	WriteMessage(msg any) error
}

// HAConnection is a wrapper around a WebSocket connection that serializes writes.
type HAConnection struct {
	Conn  *websocket.Conn // reads are not locked; only one reader (ListenWebsocket) may run
	mutex sync.Mutex
}

// WriteMessage writes a message to the WebSocket connection.
func (w *HAConnection) WriteMessage(msg any) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.Conn.WriteJSON(msg)
}

// Close sends a normal closure frame and closes the socket.
func (w *HAConnection) Close() error {
	deadline := time.Now().Add(10 * time.Second)
	err := w.Conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	if err != nil {
		slog.Warn("Error writing close message", "error", err)
	}
	return w.Conn.Close()
}

// ReadMessageRaw reads a raw message from the WebSocket connection.
func ReadMessageRaw(conn *websocket.Conn) ([]byte, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ReadMessage reads a message from the WebSocket connection and unmarshals it into the given type.
func ReadMessage[T any](conn *websocket.Conn) (T, error) {
	var result T
	msg, err := ReadMessageRaw(conn)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(msg, &result); err != nil {
		return result, err
	}
	return result, nil
}

// WebsocketURL derives the /api/websocket endpoint from the instance base URL.
func WebsocketURL(baseUrl *url.URL) (*url.URL, error) {
	u := *baseUrl
	u.Path = "/api/websocket"
	scheme, err := internal.GetEquivalentWebsocketScheme(baseUrl.Scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to build WebSocket URL: %w", err)
	}
	u.Scheme = scheme
	return &u, nil
}

// Dial opens and authenticates a websocket connection. ctx bounds only the
// handshake; the returned connection lives until closed.
func Dial(ctx context.Context, baseUrl *url.URL, token string) (*HAConnection, error) {
	wsURL, err := WebsocketURL(baseUrl)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, wsURL.String(), nil)
	if err != nil {
		slog.Error("Failed to connect to WebSocket. Check URI", "url", wsURL)
		return nil, err
	}

	if err := authenticate(conn, token); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &HAConnection{Conn: conn}, nil
}

// authenticate runs the auth_required -> auth -> auth_ok exchange.
func authenticate(conn *websocket.Conn, token string) error {
	required, err := ReadMessage[struct {
		MsgType string `json:"type"`
	}](conn)
	if err != nil {
		return fmt.Errorf("failed to read auth_required: %w", err)
	}
	if required.MsgType != "auth_required" {
		return fmt.Errorf("expected auth_required message, got %s", required.MsgType)
	}

	type authMessage struct {
		MsgType     string `json:"type"`
		AccessToken string `json:"access_token"`
	}
	if err := conn.WriteJSON(authMessage{MsgType: "auth", AccessToken: token}); err != nil {
		return fmt.Errorf("failed to send auth: %w", err)
	}

	resp, err := ReadMessage[struct {
		MsgType string `json:"type"`
		Message string `json:"message"`
	}](conn)
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}
	if resp.MsgType != "auth_ok" {
		slog.Error("Auth token is invalid. Please double check it or create a new token in your Home Assistant profile")
		return ErrInvalidToken
	}
	return nil
}

// SubscribeToStateChangedEvents subscribes to state_changed events under the given request id.
func SubscribeToStateChangedEvents(id int64, conn Writer) error {
	return SubscribeToEventType("state_changed", conn, id)
}

// SubscribeToEventType subscribes to eventType. Events arrive tagged with id.
func SubscribeToEventType(eventType string, conn Writer, id int64) error {
	type subEvent struct {
		Id        int64  `json:"id"`
		Type      string `json:"type"`
		EventType string `json:"event_type"`
	}

	e := subEvent{
		Id:        id,
		Type:      "subscribe_events",
		EventType: eventType,
	}
	if err := conn.WriteMessage(e); err != nil {
		return fmt.Errorf("error subscribing to %s: %w", eventType, err)
	}
	return nil
}
