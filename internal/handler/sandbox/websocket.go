package sandbox

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/z-whatsapp/backend/internal/model/message"
	"github.com/zhouzirui/z-whatsapp/backend/internal/service/bot"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Responder produces the reply for one inbound message.
type Responder interface {
	Respond(ctx context.Context, msg message.Incoming) bot.Reply
}

// WebSocketHandler lets a developer chat with the bot without the provider.
// Every frame goes through the same pipeline as the webhook.
type WebSocketHandler struct {
	bot      Responder
	maxMedia int
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the sandbox handler.
func NewWebSocketHandler(responder Responder, maxMedia int) *WebSocketHandler {
	return &WebSocketHandler{
		bot:      responder,
		maxMedia: maxMedia,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts GET /sandbox/ws.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sandbox/ws", h.handleWebSocket)
}

// InboundFrame simulates one provider message.
type InboundFrame struct {
	From      string   `json:"from"`
	Body      string   `json:"body"`
	MediaURLs []string `json:"mediaUrls,omitempty"`
	Latitude  string   `json:"latitude,omitempty"`
	Longitude string   `json:"longitude,omitempty"`
}

// ReplyData is the payload of a "reply" frame.
type ReplyData struct {
	Route   string `json:"route"`
	Text    string `json:"text"`
	Session string `json:"session"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[sandbox] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// frames without "from" share one simulated sender per connection
	defaultSender := "sandbox:" + uuid.NewString()
	log.Printf("[sandbox] new connection sender=%s", defaultSender)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	h.send(conn, outgoingMessage{
		Type:      "connected",
		SessionID: defaultSender,
		Timestamp: time.Now().Unix(),
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[sandbox] read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		var frame InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.sendError(conn, "invalid frame: "+err.Error())
			continue
		}

		msg := h.toMessage(frame, defaultSender)
		reply := h.bot.Respond(ctx, msg)
		log.Printf("[sandbox] session=%s from=%s route=%s", reply.SessionID, msg.From, reply.Route)

		h.send(conn, outgoingMessage{
			Type:      "reply",
			SessionID: msg.From,
			Data:      ReplyData{Route: reply.Route, Text: reply.Text, Session: reply.SessionID},
			Timestamp: time.Now().Unix(),
		})
	}
}

func (h *WebSocketHandler) toMessage(frame InboundFrame, defaultSender string) message.Incoming {
	msg := message.Incoming{
		From:      strings.TrimSpace(frame.From),
		Body:      strings.TrimSpace(frame.Body),
		Latitude:  frame.Latitude,
		Longitude: frame.Longitude,
		MediaURLs: frame.MediaURLs,
	}
	if msg.From == "" {
		msg.From = defaultSender
	}
	if h.maxMedia > 0 && len(msg.MediaURLs) > h.maxMedia {
		msg.MediaURLs = msg.MediaURLs[:h.maxMedia]
	}
	msg.NumMedia = len(msg.MediaURLs)
	return msg
}

func (h *WebSocketHandler) send(conn *websocket.Conn, msg outgoingMessage) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[sandbox] write %s failed: %v", msg.Type, err)
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, text string) {
	h.send(conn, outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": text},
		Timestamp: time.Now().Unix(),
	})
}

// pingLoop uses WriteControl, which is safe alongside the reader's writes.
func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
