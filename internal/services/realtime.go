package services

import (
	"sync"
)

// Event is a real-time notification pushed to connected portal clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Event types emitted by the services.
const (
	EventMemberUpdated     = "member:updated"
	EventSessionCreated    = "session:created"
	EventSessionUpdated    = "session:updated"
	EventAttendanceMarked  = "attendance:marked"
	EventPlanAssigned      = "plan:assigned"
	EventFeedbackSubmitted = "feedback:submitted"
)

// Hub fans events out to WebSocket subscribers. Subscriptions are keyed by
// user ID so events can target one user or everyone.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[chan Event]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[chan Event]bool)}
}

// Subscribe registers a connection for userID and returns its event channel.
// The channel is buffered; slow consumers drop events instead of blocking
// publishers.
func (h *Hub) Subscribe(userID string) chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 100)
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[chan Event]bool)
	}
	h.clients[userID][ch] = true
	return ch
}

// Unsubscribe removes and closes a connection's channel.
func (h *Hub) Unsubscribe(userID string, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[userID]; ok && conns[ch] {
		delete(conns, ch)
		close(ch)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// EmitToUser sends an event to every connection of one user.
func (h *Hub) EmitToUser(userID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conns := range h.clients {
		for ch := range conns {
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// ClientCount returns the number of open subscriptions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}
