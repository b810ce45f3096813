package websocket

import (
	"context"
	"net/http"
	"sync"

	"serwer-tabel/internal/logging"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans journal events out to websocket clients. Events of private files
// go to the owner's clients only, events of public files to everybody.
type Hub struct {
	clients    map[int64]map[*Client]bool
	mu         sync.RWMutex
	log        logging.Logger
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		log:        log,
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx is done. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.UserID]; !ok {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true
	h.log.Debug(context.Background(), "websocket client registered", "user_id", client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if userClients, ok := h.clients[client.UserID]; ok {
		if _, ok := userClients[client]; ok {
			delete(userClients, client)
			close(client.send)
			if len(userClients) == 0 {
				delete(h.clients, client.UserID)
			}
			h.log.Debug(context.Background(), "websocket client unregistered", "user_id", client.UserID)
		}
	}
}

// leave unregisters client unless the hub has already stopped.
func (h *Hub) leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) PublishEvent(userID int64, eventData []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		h.send(client, eventData)
	}
}

func (h *Hub) PublishAll(eventData []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, userClients := range h.clients {
		for client := range userClients {
			h.send(client, eventData)
		}
	}
}

func (h *Hub) send(client *Client, eventData []byte) {
	select {
	case client.send <- eventData:
	default:
		h.log.Warn(context.Background(), "websocket send buffer is full, dropping message", "user_id", client.UserID)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, userClients := range h.clients {
		n += len(userClients)
	}
	return n
}
