package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bourse/internal/logger"
	"bourse/internal/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades connections onto the announcement hub.
type WSHandler struct {
	hub *notify.Hub
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *notify.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Subscribe upgrades the request to a websocket and streams market
// announcements (session open/close, fresh news)
// @Summary     Subscribe to announcements
// @Description Upgrade to a websocket that streams market announcements
// @Tags        market
// @Success     101
// @Router      /ws [get]
func (h *WSHandler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Warnw("websocket upgrade failed", "error", err)
		return
	}
	h.hub.RegisterClient(conn)
}
