package realtime

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Conn is the subset of the websocket connection the hub needs; tests
// substitute an in-memory implementation.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Client couples one websocket connection to the hub.
type Client struct {
	conn Conn
	send chan []byte

	closeOnce sync.Once
}

// NewClient wraps a connection with a buffered send queue.
func NewClient(conn Conn, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// WritePump drains the send queue onto the connection. It returns when the
// hub closes the queue or a write fails.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}

// ReadPump consumes inbound frames until the peer disconnects. There is no
// client-to-server event contract; reads only service pings and closes.
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
