package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event types pushed to room subscribers.
const (
	EventRoster   = "roster"
	EventStarted  = "started"
	EventProgress = "progress"
	EventQuiz     = "quiz"
	EventFinished = "finished"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single client connection (a player watching a room).
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// ClientBuffer is the channel size handed out by NewClient.
const ClientBuffer = 16

func NewClient() Client {
	return make(Client, ClientBuffer)
}

// Hub manages all active rooms and their clients.
type Hub struct {
	rooms  map[uuid.UUID]map[Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[Client]bool),
		logger: logger,
	}
}

// Subscribe adds a new client to a specific room.
func (h *Hub) Subscribe(roomID uuid.UUID, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[Client]bool)
	}
	h.rooms[roomID][client] = true
}

// Unsubscribe removes a client from a room.
func (h *Hub) Unsubscribe(roomID uuid.UUID, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// Subscribers returns the number of clients watching a room.
func (h *Hub) Subscribers(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Broadcast sends an event to all clients in a specific room.
func (h *Hub) Broadcast(roomID uuid.UUID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}
	messageBytes, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode hub event", "room_id", roomID, "type", event.Type, "error", err)
		return
	}

	for client := range clients {
		// Use a non-blocking send to prevent a slow client from blocking the hub.
		select {
		case client <- messageBytes:
		default:
			h.logger.Warn("dropping event for slow client", "room_id", roomID, "type", event.Type)
		}
	}
}
