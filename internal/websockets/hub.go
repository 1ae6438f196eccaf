package websockets

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks connected staff/owner clients and their rooms. It implements
// the notifier the order service emits events through.
type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	broadcast chan []byte

	rooms map[string]map[*Client]bool

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// JoinRoom subscribes a client to a named room
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

// BroadcastToRoom sends a message to every client in a room. Slow clients
// are dropped rather than blocking the sender.
func (h *Hub) BroadcastToRoom(room string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[room]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				close(client.send)
				delete(clients, client)
				delete(h.clients, client)
			}
		}
	}
}

// Emit pushes an event to a room, fire-and-forget. Marshal failures are
// logged and swallowed; notification delivery must never fail the caller.
func (h *Hub) Emit(room, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling %s payload: %v", event, err)
		return
	}
	message, err := json.Marshal(Message{Type: event, Data: data})
	if err != nil {
		log.Printf("Error marshaling %s message: %v", event, err)
		return
	}
	h.BroadcastToRoom(room, message)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				h.mu.Lock()
				for _, clients := range h.rooms {
					delete(clients, client)
				}
				h.mu.Unlock()
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
