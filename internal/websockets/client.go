package websockets

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
)

// Event types pushed to clients
const (
	TypeOrderNew    = "order.new"
	TypeOrderUpdate = "order.update"
	TypeOrderStatus = "order.status"
	TypeOrderPaid   = "order.paid"
	TypePing        = "ping"
	TypePong        = "pong"
)

// Message is the wire format for hub events
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client is one connected staff or owner session
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	userID string

	rooms []string
}

// NewClient creates a client subscribed to the given rooms
func NewClient(hub *Hub, conn *websocket.Conn, userID string, rooms []string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		rooms:  rooms,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		var wsMessage Message
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		// Clients only talk back for keepalive; events flow one way
		if wsMessage.Type == TypePing {
			pongMsg, _ := json.Marshal(Message{Type: TypePong})
			c.send <- pongMsg
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for range n {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs registers a connection with the hub, joins its rooms and starts
// the read/write pumps.
func ServeWs(hub *Hub, conn *websocket.Conn, userID string, rooms []string) {
	client := NewClient(hub, conn, userID, rooms)

	client.hub.register <- client
	for _, room := range rooms {
		hub.JoinRoom(client, room)
	}

	go client.writePump()
	go client.readPump()
}
