package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the server only listens for a local front end
	},
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSClient represents a WebSocket client connection
type WSClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans ledger events out to every connected client. A client that
// cannot keep up loses messages instead of stalling the ledger.
type Hub struct {
	mu      sync.Mutex
	clients map[*WSClient]struct{}
	logger  *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		clients: make(map[*WSClient]struct{}),
		logger:  logger,
	}
}

// Clients returns the number of connected clients
func (hub *Hub) Clients() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

func (hub *Hub) register(c *WSClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.clients[c] = struct{}{}
}

func (hub *Hub) unregister(c *WSClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if _, ok := hub.clients[c]; ok {
		delete(hub.clients, c)
		close(c.send)
	}
}

// Broadcast sends ev to every client. It is registered as a ledger listener.
func (hub *Hub) Broadcast(ev ledger.Event) {
	msg, err := encodeMessage("event", newEventView(ev))
	if err != nil {
		hub.logger.Error("Failed to encode %s event: %v", ev.Kind, err)
		return
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	for c := range hub.clients {
		select {
		case c.send <- msg:
		default:
			hub.logger.Warn("Dropping %s event for slow websocket client", ev.Kind)
		}
	}
}

func encodeMessage(msgType string, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{
		Type:    msgType,
		Payload: payloadBytes,
	})
}

// HandleWebSocket handles GET /ws. The stream starts with the current state
// and then carries every ledger event.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade error: %v", err)
		return
	}

	client := &WSClient{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.hub.register(client)
	h.logger.Debug("WebSocket client connected from %s", r.RemoteAddr)

	h.sendMessage(client, "state", h.state())

	go client.writePump()
	go h.readPump(client)
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *WSClient) writePump() {
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
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// readPump answers client requests until the connection drops
func (h *Handler) readPump(c *WSClient) {
	defer func() {
		h.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket error: %v", err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			h.sendError(c, "INVALID_MESSAGE", "Invalid message format")
			continue
		}

		switch msg.Type {
		case "state":
			h.sendMessage(c, "state", h.state())
		case "ping":
			h.sendMessage(c, "pong", map[string]interface{}{
				"timestamp": time.Now().Unix(),
			})
		default:
			h.sendError(c, "UNKNOWN_MESSAGE", "Unknown message type: "+msg.Type)
		}
	}
}

// sendMessage queues a message for one client
func (h *Handler) sendMessage(c *WSClient, msgType string, payload interface{}) {
	msg, err := encodeMessage(msgType, payload)
	if err != nil {
		h.logger.Error("Failed to encode %s message: %v", msgType, err)
		return
	}

	h.hub.mu.Lock()
	defer h.hub.mu.Unlock()
	if _, ok := h.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		// Channel full, drop message
	}
}

func (h *Handler) sendError(c *WSClient, code, message string) {
	h.sendMessage(c, "error", map[string]string{
		"code":    code,
		"message": message,
	})
}
