// Package dashboard provides a reconnecting consumer for the command
// center's real-time push channel. Dashboards use it to stay subscribed
// across server restarts and network blips without operator intervention.
package dashboard

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/drishti/command-center-backend/internal/core/domain"
)

// defaultReconnectInterval is the fixed pause between connection attempts.
// There is no backoff: during an emergency a dashboard must come back the
// moment the server does.
const defaultReconnectInterval = 3 * time.Second

// State describes the connection lifecycle.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Handler consumes one envelope payload. The raw data is passed through so
// each dashboard can decode only the events it cares about.
type Handler func(data json.RawMessage)

// Client is a reconnecting websocket consumer. Handlers are dispatched by
// envelope event tag; envelopes with no registered handler are dropped
// silently, which keeps old dashboards compatible with new event types.
type Client struct {
	url    string
	logger *slog.Logger

	// ReconnectInterval overrides the fixed reconnect pause. Must be set
	// before Start.
	ReconnectInterval time.Duration

	mu       sync.RWMutex
	handlers map[domain.EventName]Handler
	state    State

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewClient creates a client for the given websocket URL (including any
// token query parameter). Call On to register handlers, then Start.
func NewClient(url string, logger *slog.Logger) *Client {
	return &Client{
		url:               url,
		logger:            logger.With("component", "dashboard_client"),
		ReconnectInterval: defaultReconnectInterval,
		handlers:          make(map[domain.EventName]Handler),
		state:             StateDisconnected,
		stop:              make(chan struct{}),
		done:              make(chan struct{}),
	}
}

// On registers the handler for an event tag, replacing any previous one.
// Not safe to call after Start.
func (c *Client) On(event domain.EventName, handler Handler) {
	c.handlers[event] = handler
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Start launches the connect/consume/reconnect loop in a goroutine. The
// loop runs until Stop is called, retrying indefinitely.
func (c *Client) Start() {
	go c.run()
}

// Stop ends the loop and closes any live connection. Blocks until the loop
// has exited. Safe to call more than once.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
}

func (c *Client) run() {
	defer close(c.done)
	defer c.setState(StateDisconnected)

	for {
		select {
		case <-c.stop:
			return
		default:
		}

		c.setState(StateConnecting)

		conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err != nil {
			c.logger.Warn("connection failed, will retry",
				"error", err,
				"retry_in", c.ReconnectInterval,
			)
			if !c.pause() {
				return
			}
			continue
		}

		c.setState(StateConnected)
		c.logger.Info("connected to command center")

		c.consume(conn)

		c.setState(StateDisconnected)
		c.logger.Warn("connection lost, will retry", "retry_in", c.ReconnectInterval)

		if !c.pause() {
			return
		}
	}
}

// consume reads envelopes until the connection drops or Stop is called.
func (c *Client) consume(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	// Unblock the read when Stop is called.
	readDone := make(chan struct{})
	defer close(readDone)
	go func() {
		select {
		case <-c.stop:
			_ = conn.Close()
		case <-readDone:
		}
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var envelope struct {
			Event domain.EventName `json:"event"`
			Data  json.RawMessage  `json:"data"`
		}
		if err := json.Unmarshal(frame, &envelope); err != nil {
			c.logger.Warn("dropping malformed envelope", "error", err)
			continue
		}

		c.mu.RLock()
		handler := c.handlers[envelope.Event]
		c.mu.RUnlock()

		if handler != nil {
			handler(envelope.Data)
		}
	}
}

// pause waits out the reconnect interval; reports false when Stop was
// called during the wait.
func (c *Client) pause() bool {
	select {
	case <-c.stop:
		return false
	case <-time.After(c.ReconnectInterval):
		return true
	}
}

func (c *Client) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}
