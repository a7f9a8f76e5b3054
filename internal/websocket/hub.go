// Package websocket pushes live dashboard updates to connected browsers.
// The hub fans broadcast messages out to every registered client; slow
// clients are dropped rather than allowed to stall the loop.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"sapflow/internal/infrastructure"
)

// Message is the envelope every broadcast is wrapped in.
type Message struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	quit chan struct{}
	done chan struct{}

	logger *slog.Logger
}

// NewHub creates a hub ready to Run.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.With(slog.String("component", "websocket.hub")),
	}
}

// Start launches the hub loop in its own goroutine.
func (h *Hub) Start() {
	go h.Run()
}

// Stop shuts the loop down and closes every client send channel.
func (h *Hub) Stop() {
	close(h.quit)
	<-h.done
}

// Run processes register, unregister and broadcast events until Stop is
// called. It must only run once.
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.fanOut(message)

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket hub stopped")
			return
		}
	}
}

// Register queues a client for registration with the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastUpdate wraps the payload in the standard message envelope and
// broadcasts it to all connected clients. Kinds in use include
// "data_refreshed" and "review_updated".
func (h *Hub) BroadcastUpdate(kind string, payload any) {
	msg := Message{
		Type:      kind,
		Data:      payload,
		Timestamp: time.Now(),
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast message",
			slog.String("type", kind),
			slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- raw:
	default:
		h.logger.Warn("Broadcast channel full, dropping message",
			slog.String("type", kind))
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("WebSocket client connected",
		slog.String("client_id", client.id),
		slog.String("remote_addr", client.remoteAddr),
		slog.Int("total_clients", count))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("WebSocket client disconnected",
		slog.String("client_id", client.id),
		slog.Int("total_clients", count))
}

func (h *Hub) fanOut(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow client: its send buffer is full, disconnect it.
			h.logger.Warn("Dropping slow WebSocket client",
				slog.String("client_id", client.id))
			close(client.send)
			delete(h.clients, client)
		}
	}
}
