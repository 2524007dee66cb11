package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. The channel is push-only, so
	// clients have no business sending anything large.
	maxMessageSize = 512

	// Outbound frames buffered per connection before drops begin.
	sendBufferSize = 256
)

// Client is one live dashboard connection: the middleman between a
// websocket and the hub. Outbound envelopes are pre-serialized by the hub;
// the client only moves bytes.
type Client struct {
	hub *Hub

	conn *websocket.Conn

	// send carries pre-marshaled frames to the write pump.
	send chan []byte

	// done is closed exactly once when the client is unregistered; it
	// releases the write pump and fences off further enqueues.
	done     chan struct{}
	doneOnce sync.Once

	logger *slog.Logger
}

// NewClient wraps an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger.With("component", "websocket_client"),
	}
}

// enqueue offers a frame to the write pump without blocking. It reports
// false when the client is shut down or its buffer is full; the frame is
// then simply dropped for this client.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// shutdown releases the write pump exactly once.
func (c *Client) shutdown() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// ReadPump drains the connection until it drops. The push channel carries
// no meaningful inbound payloads, so everything read is discarded; the pump
// exists to run the pong handler and to detect disconnects. Runs in its
// own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

// WritePump moves frames from the send channel to the connection and keeps
// the peer alive with pings. Runs in its own goroutine. Any write error
// ends the pump; the read pump then observes the closed connection and
// unregisters the client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case frame := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Error("failed to write frame", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}
