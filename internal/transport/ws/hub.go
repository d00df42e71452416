package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Organizer message types
const (
	MsgRegistrationStarted   MessageType = "registration_started"
	MsgRegistrationSubmitted MessageType = "registration_submitted"
)

// Registrant message types
const (
	MsgVisibilityChanged MessageType = "visibility_changed"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections. Organizers watch a form's incoming
// registrations; registrants receive visibility pushes for their own draft.
type Hub struct {
	organizerConns  map[string]map[*Connection]bool // formID -> conns
	registrantConns map[string]*Connection          // registrationID -> conn

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	FormID         string
	RegistrationID string // Empty for organizer connections
	IsOrganizer    bool
	Send           chan []byte
	Hub            *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	FormID         string // Set for organizer fan-out
	RegistrationID string // Set for a single registrant
	Message        *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		organizerConns:  make(map[string]map[*Connection]bool),
		registrantConns: make(map[string]*Connection),
		register:        make(chan *Connection),
		unregister:      make(chan *Connection),
		broadcast:       make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsOrganizer {
				if h.organizerConns[conn.FormID] == nil {
					h.organizerConns[conn.FormID] = make(map[*Connection]bool)
				}
				h.organizerConns[conn.FormID][conn] = true
				log.Printf("Organizer connected to form %s", conn.FormID)
			} else {
				h.registrantConns[conn.RegistrationID] = conn
				log.Printf("Registrant connected for registration %s", conn.RegistrationID)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsOrganizer {
				if conns, ok := h.organizerConns[conn.FormID]; ok && conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					log.Printf("Organizer disconnected from form %s", conn.FormID)
				}
			} else {
				if existing, ok := h.registrantConns[conn.RegistrationID]; ok && existing == conn {
					delete(h.registrantConns, conn.RegistrationID)
					close(conn.Send)
					log.Printf("Registrant disconnected for registration %s", conn.RegistrationID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.RegistrationID != "" {
				if conn, ok := h.registrantConns[msg.RegistrationID]; ok {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else if msg.FormID != "" {
				for conn := range h.organizerConns[msg.FormID] {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToOrganizer sends a message to every organizer watching a form
// (implements service.Broadcaster)
func (h *Hub) BroadcastToOrganizer(formID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		FormID: formID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToRegistrant sends a message to one registrant (implements
// service.Broadcaster)
func (h *Hub) BroadcastToRegistrant(registrationID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		RegistrationID: registrationID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
