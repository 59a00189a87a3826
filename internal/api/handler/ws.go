package handler

import (
	"laporantdx/backend/internal/feed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Origin checking is left to the upgrader's same-origin default: the session
// rides on a cookie.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeFeed upgrades an admin request to the live report feed.
func (h *Handler) ServeFeed(c *gin.Context) {
	adminID := c.GetUint(ctxAdminID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Warn("feed upgrade failed", "error", err)
		return
	}

	client := feed.NewWebSocketClient(conn, h.Hub, adminID, h.log)
	if !h.Hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, http.StatusText(http.StatusServiceUnavailable)))
		conn.Close()
		return
	}
	client.Run()
}
