// Package live pushes save notifications to everyone watching a plan over a
// websocket. The feed is one-way: the server announces new versions, watchers
// re-fetch through the HTTP API.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

type Room struct {
	planID  string
	clients map[string]*Client // clientID -> client
}

func NewRoom(planID string) *Room {
	return &Room{
		planID:  planID,
		clients: make(map[string]*Client),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // planID -> room
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.PlanID]
	if !ok {
		room = NewRoom(client.PlanID)
		h.rooms[client.PlanID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	welcome, _ := json.Marshal(WelcomePayload{
		PlanID:   client.PlanID,
		ClientID: client.ClientID,
	})
	client.Send(&Message{
		Type:    TypeWelcome,
		PlanID:  client.PlanID,
		Payload: welcome,
	})

	slog.Info("watcher joined", "user", client.UserID, "plan", client.PlanID)
}

// removeClient drops the client from its room. The send channel is never
// closed: a broadcast snapshot may still hold the client, and WritePump exits
// through its context when the connection handler returns.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.PlanID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	if len(room.clients) == 0 {
		delete(h.rooms, client.PlanID)
	}
	h.mu.Unlock()

	slog.Info("watcher left", "user", client.UserID, "plan", client.PlanID)
}

// BroadcastPlanUpdated fans a new version number out to every watcher of the
// plan. Safe to call from any goroutine; a plan nobody watches is a no-op.
func (h *Hub) BroadcastPlanUpdated(planID string, version int) {
	payload, _ := json.Marshal(PlanUpdatedPayload{
		PlanID:  planID,
		Version: version,
	})
	h.broadcastToRoom(planID, &Message{
		Type:    TypePlanUpdated,
		PlanID:  planID,
		Payload: payload,
	})
}

func (h *Hub) broadcastToRoom(planID string, msg *Message) {
	h.mu.RLock()
	room, ok := h.rooms[planID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
