package sandbox

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/z-whatsapp/backend/internal/model/session"
	"github.com/zhouzirui/z-whatsapp/backend/internal/service/bot"
)

type frame struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

func dial(t *testing.T) (*websocket.Conn, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemoryStore()
	handler := NewWebSocketHandler(bot.NewService(store, bot.Config{}), 3)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sandbox/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if got := readFrame(t, conn); got.Type != "connected" || !strings.HasPrefix(got.SessionID, "sandbox:") {
		t.Fatalf("unexpected greeting: %+v", got)
	}
	return conn, store
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read err: %v", err)
	}
	return f
}

func exchange(t *testing.T, conn *websocket.Conn, in InboundFrame) (frame, ReplyData) {
	t.Helper()
	if err := conn.WriteJSON(in); err != nil {
		t.Fatalf("write err: %v", err)
	}
	f := readFrame(t, conn)
	var data ReplyData
	if f.Type == "reply" {
		if err := json.Unmarshal(f.Data, &data); err != nil {
			t.Fatalf("decode reply err: %v", err)
		}
	}
	return f, data
}

func TestSandboxRoutesThroughBot(t *testing.T) {
	conn, store := dial(t)

	f, data := exchange(t, conn, InboundFrame{Body: "nombre Lucía"})
	if f.Type != "reply" || data.Route != "nombre" {
		t.Fatalf("unexpected frame: %+v %+v", f, data)
	}
	stored := store.Get(f.SessionID)
	if stored.Name != "Lucía" {
		t.Fatalf("name not stored for %s", f.SessionID)
	}
	if data.Session == "" || data.Session != stored.ID {
		t.Fatalf("reply session %q does not match stored %q", data.Session, stored.ID)
	}

	_, data = exchange(t, conn, InboundFrame{Body: "mi nombre?"})
	if data.Text != "Tienes guardado el nombre: *Lucía*" {
		t.Fatalf("unexpected reply: %q", data.Text)
	}
}

func TestSandboxExplicitSenderAndMedia(t *testing.T) {
	conn, _ := dial(t)

	f, data := exchange(t, conn, InboundFrame{
		From:      "whatsapp:+1555",
		Body:      "hola",
		MediaURLs: []string{"u1", "u2", "u3", "u4"},
	})
	if f.SessionID != "whatsapp:+1555" {
		t.Fatalf("unexpected sender: %s", f.SessionID)
	}
	if data.Route != bot.RouteMedia || !strings.Contains(data.Text, "Recibí 3 archivo(s)") || strings.Contains(data.Text, "u4") {
		t.Fatalf("unexpected media reply: %+v", data)
	}
}

func TestSandboxInvalidFrame(t *testing.T) {
	conn, _ := dial(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write err: %v", err)
	}
	if f := readFrame(t, conn); f.Type != "error" {
		t.Fatalf("expected error frame, got %+v", f)
	}

	// connection stays usable
	if _, data := exchange(t, conn, InboundFrame{Body: "eco sigo aquí"}); data.Text != "🗣️ sigo aquí" {
		t.Fatalf("unexpected reply: %q", data.Text)
	}
}
