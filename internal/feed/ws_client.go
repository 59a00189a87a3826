package feed

import (
	"encoding/json"
	"laporantdx/backend/internal/logger"
	"laporantdx/backend/internal/models"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// WebSocketClient implements Client over a gorilla websocket.
type WebSocketClient struct {
	ID      string
	AdminID uint
	Conn    *websocket.Conn
	Hub     *Hub

	send      chan models.FeedEvent
	closeOnce sync.Once
	log       *logger.Logger
}

func NewWebSocketClient(conn *websocket.Conn, hub *Hub, adminID uint, log *logger.Logger) *WebSocketClient {
	id := uuid.NewString()
	return &WebSocketClient{
		ID:      id,
		AdminID: adminID,
		Conn:    conn,
		Hub:     hub,
		send:    make(chan models.FeedEvent, sendBuffer),
		log:     log.With("client_id", id, "admin_id", adminID),
	}
}

func (c *WebSocketClient) GetID() string                            { return c.ID }
func (c *WebSocketClient) GetSendChannel() chan<- models.FeedEvent { return c.send }

func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close stops the write pump, which closes the connection.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// readPump only watches for the peer going away; dashboards never send data.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("feed read error", "error", err)
			}
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				c.log.Error("feed encode error", "error", err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
