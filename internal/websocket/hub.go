// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	wstypes "customer-admin/internal/domain/websocket"

	"go.uber.org/zap"
)

// Hub fans customer change events out to every connected admin page.
// Only Run touches a client's send channel after registration.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	direct     chan *directMessage
	broadcast  chan *wstypes.WSMessage
	done       chan struct{}

	logger *zap.Logger
}

type directMessage struct {
	client  *Client
	message *wstypes.WSMessage
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan *directMessage, 64),
		broadcast:  make(chan *wstypes.WSMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.direct:
			h.mu.RLock()
			_, ok := h.clients[d.client]
			h.mu.RUnlock()
			if ok {
				h.deliver(d.client, d.message)
			}

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Register hands a freshly upgraded client to the hub. It returns false
// when the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) reply(client *Client, msg *wstypes.WSMessage) {
	select {
	case h.direct <- &directMessage{client: client, message: msg}:
	case <-h.done:
	}
}

// CustomersChanged queues a customers.changed event for every client.
// The event is dropped, not blocked on, when the queue is full.
func (h *Hub) CustomersChanged(action string, customerID int64) {
	msg := wstypes.NewMessage(wstypes.EventTypeCustomersChanged, wstypes.CustomersChangedData{
		Action:     action,
		CustomerID: customerID,
	})
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("websocket broadcast queue full, event dropped",
			zap.String("action", action),
			zap.Int64("customer_id", customerID),
		)
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("websocket client connected",
		zap.String("client_id", client.id),
		zap.Int("total", total),
	)

	h.deliver(client, wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"client_id": client.id,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info("websocket client disconnected",
			zap.String("client_id", client.id),
			zap.Int("total", len(h.clients)),
		)
	}
}

func (h *Hub) broadcastMessage(msg *wstypes.WSMessage) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		h.deliver(client, msg)
	}
}

// deliver queues msg on client, evicting clients that cannot keep up.
func (h *Hub) deliver(client *Client, msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		h.logger.Error("failed to marshal websocket message", zap.Error(err))
		return
	}

	select {
	case client.send <- data:
	default:
		h.logger.Warn("websocket client too slow, dropping", zap.String("client_id", client.id))
		h.unregisterClient(client)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
