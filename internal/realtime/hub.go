package realtime

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/observability"
)

// Hub fans broadcast frames out to every connected client. There is no
// per-user topic filtering at the transport layer and no replay: a client
// that connects after an event has been sent missed it permanently.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]struct{}
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewHub constructs a hub; call Run before registering clients.
func NewHub(logger *zap.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]struct{}),
		logger:     logger,
		metrics:    metrics,
	}
}

// Run owns the client set; membership changes and fan-out are serialized
// through this single goroutine so no lock is shared with request handlers.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				client.closeSend()
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.metrics.WebsocketConnected()
			h.logger.Debug("realtime client connected", zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
				h.metrics.WebsocketDisconnected()
			}
			h.logger.Debug("realtime client disconnected", zap.Int("clients", len(h.clients)))
		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// slow consumer: drop the connection rather than block fan-out
					delete(h.clients, client)
					client.closeSend()
					h.metrics.WebsocketDisconnected()
				}
			}
		}
	}
}

// Register adds a client to the fan-out set.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client; safe to call after the hub dropped it.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a frame for delivery to all connected clients. Delivery
// is best-effort and never blocks the caller; if the hub's queue is full the
// frame is dropped.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	default:
		h.logger.Warn("broadcast queue full, dropping frame")
	}
}
