package ws_quiz

import (
	"log/slog"
	"sync"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub tracks live connections and the rooms they are subscribed to.
// It is the transport the usecases emit through.
type Hub struct {
	mu sync.RWMutex

	clients map[string]*Client
	// Keep track of sets of clients within each room
	rooms map[string]map[string]*Client

	logger *slog.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  slog.Default(),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.connID] = client
	h.logger.Info("client registered", "conn", client.connID)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, client.connID)
	for name, room := range h.rooms {
		delete(room, client.connID)
		if len(room) == 0 {
			delete(h.rooms, name)
		}
	}
	h.logger.Info("client unregistered", "conn", client.connID)
}

func (h *Hub) JoinRoom(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[string]*Client)
	}
	h.rooms[room][connID] = client
}

func (h *Hub) LeaveRoom(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[room]; ok {
		delete(clients, connID)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) Emit(connID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[connID]; ok {
		h.deliver(client, Event{Type: event, Payload: payload})
	}
}

func (h *Hub) EmitToRoom(room, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e := Event{Type: event, Payload: payload}
	for _, client := range h.rooms[room] {
		h.deliver(client, e)
	}
}

func (h *Hub) EmitToOthers(connID, room, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e := Event{Type: event, Payload: payload}
	for id, client := range h.rooms[room] {
		if id != connID {
			h.deliver(client, e)
		}
	}
}

func (h *Hub) EmitAll(event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e := Event{Type: event, Payload: payload}
	for _, client := range h.clients {
		h.deliver(client, e)
	}
}

// Disconnect closes the connection once everything queued before it is written.
func (h *Hub) Disconnect(connID string) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if !client.enqueue(frame{last: true}) {
		client.close()
	}
}

// A client that cannot keep up is dropped. Its read loop then runs the usual departure.
func (h *Hub) deliver(client *Client, e Event) {
	if !client.enqueue(frame{event: e}) {
		h.logger.Warn("dropping slow client", "conn", client.connID, "event", e.Type)
		client.close()
	}
}
