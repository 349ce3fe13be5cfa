package notifications

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

// connection is one staff user's live feed. Every frame, pings included,
// leaves through the send channel so the socket only ever has a single
// writer.
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks the live websocket feed, one connection per staff user. A
// reconnect replaces the previous connection.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.connections[c.userID]; exists {
		_ = old.conn.Close()
	}
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, exists := h.connections[c.userID]; exists && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// Push queues a notification for the user's live feed if connected. The
// connection's writer drains the queue; a slow client loses the frame,
// but the notification is already persisted, so nothing is lost.
func (h *Hub) Push(userID int64, message interface{}) bool {
	data, err := json.Marshal(message)
	if err != nil {
		return false
	}

	// the read lock also orders Push against unregister's close(send)
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, exists := h.connections[userID]
	if !exists {
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.connections)
}

// ServeWS parks the connection in the hub and blocks until the client
// goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// the feed is push-only; the read loop just watches for the close
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, c := range h.connections {
		close(c.send)
		_ = c.conn.Close()
		delete(h.connections, userID)
	}
}
