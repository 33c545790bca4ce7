package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatusEvent is pushed to subscribed clients on every port status transition.
type StatusEvent struct {
	PortID    int64     `json:"port_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// Hub fans port status events out to connected dashboard clients.
type Hub struct {
	mu           sync.RWMutex
	clients      map[*client]struct{}
	logger       *zap.Logger
	pingInterval time.Duration
}

// NewHub builds the hub.
func NewHub(pingInterval time.Duration, logger *zap.Logger) *Hub {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Hub{
		clients:      make(map[*client]struct{}),
		logger:       logger,
		pingInterval: pingInterval,
	}
}

// NotifyStatus broadcasts one transition. Slow clients are skipped, not
// waited on; the feed is advisory and clients re-sync on reconnect.
func (h *Hub) NotifyStatus(portID int64, oldStatus, newStatus string) {
	event := StatusEvent{
		PortID:    portID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode status event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("dropping status event for slow client")
		}
	}
}

// Run blocks until ctx is done, then drops every connection. Keepalive
// pings are owned by each client's write pump, the only goroutine
// allowed to touch its connection.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
