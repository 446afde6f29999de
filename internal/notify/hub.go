// Package notify fans market announcements out to connected websocket
// clients. Announcements are fire-and-forget: slow or dead clients are
// dropped, and the market core never blocks on delivery.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"bourse/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

// Announcement is the wire shape broadcast to clients.
type Announcement struct {
	Text   string                 `json:"text"`
	Fields map[string]interface{} `json:"fields,omitempty"`
	At     time.Time              `json:"at"`
}

// Hub tracks connected clients and broadcasts announcements to all of
// them from a single goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// Client is one websocket subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an announcement hub. Call Run on its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run services register/unregister/broadcast events until ctx is
// canceled, then disconnects every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			logger.Get().Debugw("announcement client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logger.Get().Debugw("announcement client disconnected", "clients", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client can't keep up; drop it.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Announce implements market.Announcer. Marshalling or a full broadcast
// queue only logs; announcement failure is never fatal.
func (h *Hub) Announce(text string, fields map[string]interface{}) {
	message, err := json.Marshal(Announcement{Text: text, Fields: fields, At: time.Now()})
	if err != nil {
		logger.Get().Warnw("failed to marshal announcement", "error", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		logger.Get().Warn("announcement queue full, dropping message")
	}
}

// RegisterClient attaches a websocket connection to the hub and starts
// its pumps.
func (h *Hub) RegisterClient(conn *websocket.Conn) {
	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pings/pongs and close frames are
// processed; inbound payloads are ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
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
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NopAnnouncer discards announcements, for tests and offline tooling.
type NopAnnouncer struct{}

// Announce implements market.Announcer.
func (NopAnnouncer) Announce(string, map[string]interface{}) {}
