package websocket

import (
	"context"
	"sync"

	"sales-crm-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// backplaneChannel is the Redis pub/sub channel shared by all instances so a
// mutation on one node reaches dashboards connected to another.
const backplaneChannel = "crm_dashboard_events"

// Hub fans CRM events out to every connected dashboard. Connections are
// anonymous: there is no per-user routing, every client sees the same stream.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional Redis backplane for multi-instance deployments.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client connected", map[string]interface{}{"clients": count})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client disconnected", map[string]interface{}{"clients": count})
		}
	}
}

// Broadcast pushes an event payload to all local clients and relays it over
// the Redis backplane for other instances.
func (h *Hub) Broadcast(payload []byte) {
	h.deliverLocal(payload)

	if h.rdb != nil {
		if err := h.rdb.Publish(context.Background(), backplaneChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Redis backplane publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) deliverLocal(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer: drop the connection rather than block the hub.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, backplaneChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliverLocal([]byte(msg.Payload))
	}
}
