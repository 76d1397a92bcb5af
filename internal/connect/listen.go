package connect

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
)

// BaseMessage is the envelope shared by all messages the websocket server sends.
type BaseMessage struct {
	Type    string `json:"type"`
	Id      int64  `json:"id"`
	Success bool   `json:"success"` // not present in all messages
}

type ChannelMessage struct {
	Id      int64
	Type    string
	Success bool
	Raw     []byte
}

// ListenWebsocket reads messages from conn and forwards them to c until a read
// fails or ctx is done, then closes c. Messages that fail to decode are skipped.
func ListenWebsocket(ctx context.Context, conn *websocket.Conn, c chan<- ChannelMessage) {
	defer close(c)

	for {
		raw, err := ReadMessageRaw(conn)
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("Error reading from websocket", "err", err)
			}
			return
		}

		msg, ok := decodeEnvelope(raw)
		if !ok {
			continue
		}

		select {
		case c <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func decodeEnvelope(raw []byte) (ChannelMessage, bool) {
	// default to true for messages that don't include "success" at all
	base := BaseMessage{Success: true}
	if err := json.Unmarshal(raw, &base); err != nil {
		slog.Error("Error unmarshalling message", "err", err, "message", string(raw))
		return ChannelMessage{}, false
	}
	if !base.Success {
		slog.Warn("Received unsuccessful response", "response", string(raw))
	}
	return ChannelMessage{
		Id:      base.Id,
		Type:    base.Type,
		Success: base.Success,
		Raw:     raw,
	}, true
}
