// Package ws implements the live order feed: a WebSocket hub that fans
// order events out to connected dashboard sessions.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// writeTimeout bounds a single broadcast write so one stalled client
// cannot hold the hub read lock indefinitely.
const writeTimeout = 5 * time.Second

// Message is the envelope for all feed messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// client is one subscribed feed connection.
type client struct {
	ws     *websocket.Conn
	cancel context.CancelFunc
}

// Hub tracks the subscribed feed clients and broadcasts order events
// to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
	}
}

// HandleWS upgrades the request and serves the feed until the peer
// disconnects. The connection is hijacked, so net/http cancels the
// request context the moment this handler returns; the read loop
// therefore runs on its own context, canceled on removal, and the
// handler blocks for the lifetime of the subscription.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		slog.Error("order feed accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &client{ws: conn, cancel: cancel}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	slog.Info("order feed connected", "remote", r.RemoteAddr)

	// The feed is one-way: inbound frames are drained only to consume
	// pings and detect the peer going away.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}
	h.remove(c)
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// Broadcast sends a message to every subscribed client. Clients whose
// write fails or times out are dropped from the feed.
func (h *Hub) Broadcast(ctx context.Context, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("order feed marshal failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := c.ws.Write(wctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			slog.Debug("order feed write failed", "error", err)
			go h.remove(c)
		}
	}
}

// ConnectionCount returns the number of subscribed clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		c.cancel()
		delete(h.clients, c)
		slog.Info("order feed disconnected")
	}
}
