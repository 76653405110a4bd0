package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/terra-clan/spacegom-engine/internal/models"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamMessage is one frame sent to stream clients
type StreamMessage struct {
	Type         string               `json:"type"`
	Data         string               `json:"data,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
	Game         *models.GameSummary  `json:"game,omitempty"`
}

// Stream message types
const (
	StreamConnected    = "connected"
	StreamNotification = "notification"
	StreamPong         = "pong"
	StreamClosed       = "closed"
	StreamError        = "error"
)

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	gameID := GameIDFromContext(r.Context())

	g, err := s.sessions.Get(r.Context(), gameID)
	if err != nil {
		respondFailure(w, r, err, "open stream")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe(gameID)
	defer s.hub.Unsubscribe(gameID, sub)

	slog.Info("stream connected", "game_id", gameID, "subscribers", s.hub.Subscribers(gameID))

	summary := g.Summary()
	if err := sendStreamMessage(conn, StreamMessage{Type: StreamConnected, Game: &summary}); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// only the writer goroutine touches the connection for writing
	replies := make(chan StreamMessage, 4)
	var wg sync.WaitGroup

	// WebSocket -> replies
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}

			var msg StreamMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				slog.Debug("invalid stream message", "error", err)
				continue
			}
			if msg.Type == "ping" {
				select {
				case replies <- StreamMessage{Type: StreamPong}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	// notifications -> WebSocket
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		// unblock the reader, which may be parked in ReadMessage
		defer conn.SetReadDeadline(time.Now())
		ticker := time.NewTicker(streamPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-sub:
				if !ok {
					sendStreamMessage(conn, StreamMessage{Type: StreamClosed, Data: "game deleted"})
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game deleted"),
						time.Now().Add(streamWriteWait))
					return
				}
				if err := sendStreamMessage(conn, StreamMessage{Type: StreamNotification, Notification: &n}); err != nil {
					return
				}
			case msg := <-replies:
				if err := sendStreamMessage(conn, msg); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	wg.Wait()
	slog.Info("stream disconnected", "game_id", gameID)
}

func sendStreamMessage(conn *websocket.Conn, msg StreamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		slog.Debug("failed to send stream message", "error", err, "type", msg.Type)
		return err
	}
	return nil
}
