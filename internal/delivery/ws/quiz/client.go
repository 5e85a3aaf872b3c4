package ws_quiz

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
)

type frame struct {
	event Event
	// Close the connection instead of writing an event.
	last bool
}

type inboundEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan frame
	done   chan struct{}
	connID string

	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, connID string, buffer int) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan frame, buffer),
		done:   make(chan struct{}),
		connID: connID,
	}
}

func (c *Client) enqueue(f frame) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- f:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump handles the frames of one connection strictly in arrival order.
// Frames that are not a JSON envelope are dropped. It returns when the connection is gone.
func (c *Client) readPump(handle func(inboundEvent)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.hub.logger.Warn("connection closed unexpectedly", "conn", c.connID, "error", err)
			}
			return
		}

		var in inboundEvent
		if err := json.Unmarshal(data, &in); err != nil {
			c.hub.logger.Warn("malformed frame dropped", "conn", c.connID, "error", err)
			continue
		}
		handle(in)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case f := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if f.last {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "closed by server"))
				return
			}
			if err := c.conn.WriteJSON(f.event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
