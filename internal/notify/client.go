package notify

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueue      = 32
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// role of the authenticated caller, empty for anonymous clients.
	role string
}

// Attach registers conn with the hub, joins the given rooms and runs the
// read and write loops until the connection closes. role limits which rooms
// the client may join later with joinRoom frames.
func (h *Hub) Attach(conn *websocket.Conn, role string, rooms ...string) *Client {
	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendQueue),
		role: role,
	}
	h.register(c)
	for _, r := range rooms {
		h.Join(c, r)
	}

	go c.writePump()
	go c.readPump()
	return c
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("relay client closed", slog.String("error", err.Error()))
			}
			return
		}
		c.handle(data)
	}
}

func (c *Client) handle(data []byte) {
	var frame struct {
		Name string          `json:"event"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		return
	}

	var room string
	if err := json.Unmarshal(frame.Data, &room); err != nil {
		return
	}

	switch frame.Name {
	case EventJoinRoom:
		if !CanJoin(c.role, room) || !c.hub.Join(c, room) {
			c.hub.log.Debug("relay join refused", slog.String("room", room))
		}
	case EventLeaveRoom:
		c.hub.Leave(c, room)
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
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
