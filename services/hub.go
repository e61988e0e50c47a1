package services

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"formhub/models"

	"github.com/gorilla/websocket"
)

// Hub fans submission events out to form owners watching their responses
// arrive live. One client per open websocket, keyed by the form it watches.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Client struct {
	hub        *Hub
	id         string
	socket     *websocket.Conn
	send       chan []byte
	formID     uint
	ownerEmail string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client registered: %s for form %d (%s) - Total clients: %d",
				client.id, client.formID, client.ownerEmail, h.clientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered: %s for form %d (%s) - Total clients: %d",
					client.id, client.formID, client.ownerEmail, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastSubmission pushes a freshly accepted answer to every client
// watching the form.
func (h *Hub) BroadcastSubmission(formID uint, answer *models.Answer) {
	message := Message{
		Type: "submission",
		Payload: map[string]interface{}{
			"form_id": formID,
			"answer":  answer,
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling submission message: %v", err)
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if client.formID != formID {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop it.
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

func (h *Hub) WatcherCount(formID uint) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for client := range h.clients {
		if client.formID == formID {
			count++
		}
	}
	return count
}

func (h *Hub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) RegisterClient(conn *websocket.Conn, formID uint, ownerEmail string) *Client {
	client := &Client{
		hub:        h,
		id:         generateClientID(),
		socket:     conn,
		send:       make(chan []byte, 256),
		formID:     formID,
		ownerEmail: ownerEmail,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer func() {
		c.socket.Close()
	}()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		response := Message{
			Type:    "pong",
			Payload: "pong",
		}
		data, _ := json.Marshal(response)
		c.send <- data

	default:
		log.Printf("Unknown message type: %s from %s watching form %d", msg.Type, c.ownerEmail, c.formID)
	}
}

func generateClientID() string {
	return "client_" + strconv.FormatInt(time.Now().UnixNano(), 36)
}
