package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	wstypes "customer-admin/internal/domain/websocket"
	ws "customer-admin/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func readEvent(t *testing.T, conn *websocket.Conn) *wstypes.WSMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	msg, err := wstypes.ParseMessage(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return msg
}

func TestHandleConnection_ReceivesCustomerChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(zap.NewNop())
	go hub.Run(ctx)

	h := NewWebSocketHandler(hub, []string{"*"}, zap.NewNop())
	r := gin.New()
	r.GET("/ws", h.HandleConnection)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if msg := readEvent(t, conn); msg.Type != wstypes.EventTypeConnected {
		t.Fatalf("expected connected event, got %s", msg.Type)
	}

	hub.CustomersChanged("created", 12)
	msg := readEvent(t, conn)
	if msg.Type != wstypes.EventTypeCustomersChanged {
		t.Fatalf("expected customers.changed, got %s", msg.Type)
	}
	data, _ := msg.Data.(map[string]interface{})
	if data["action"] != "created" || data["customer_id"] != float64(12) {
		t.Errorf("unexpected payload %v", msg.Data)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readEvent(t, conn); msg.Type != wstypes.EventTypePong {
		t.Errorf("expected pong, got %s", msg.Type)
	}
}

func TestHandleConnection_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := ws.NewHub(zap.NewNop())
	h := NewWebSocketHandler(hub, []string{"http://admin.local"}, zap.NewNop())
	r := gin.New()
	r.GET("/ws", h.HandleConnection)
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %v", resp)
	}
}

func TestOriginAllowed(t *testing.T) {
	if !originAllowed("", []string{"http://a"}) {
		t.Error("same-origin requests carry no Origin and must pass")
	}
	if !originAllowed("http://a", []string{"http://a"}) {
		t.Error("listed origin must pass")
	}
	if originAllowed("http://b", []string{"http://a"}) {
		t.Error("unlisted origin must fail")
	}
}
