package dashboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClientDispatchesByEventTag(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		payload, _ := json.Marshal(domain.Envelope{
			Event: domain.EventIncident,
			Data:  map[string]string{"summary": "crowd surge at gate 3"},
		})
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))

		// Hold the connection open until the client disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	received := make(chan json.RawMessage, 1)

	client := NewClient(wsURL(server), testLogger())
	client.ReconnectInterval = 10 * time.Millisecond
	client.On(domain.EventIncident, func(data json.RawMessage) {
		received <- data
	})

	client.Start()
	defer client.Stop()

	select {
	case data := <-received:
		var body map[string]string
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "crowd surge at gate 3", body["summary"])
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestClientReconnectsIndefinitely(t *testing.T) {
	upgrader := websocket.Upgrader{}

	var connects atomic.Int32

	// Every accepted connection is dropped immediately, forcing the client
	// back into its retry loop.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		connects.Add(1)
		_ = conn.Close()
	}))
	defer server.Close()

	client := NewClient(wsURL(server), testLogger())
	client.ReconnectInterval = 10 * time.Millisecond

	client.Start()
	defer client.Stop()

	require.Eventually(t, func() bool {
		return connects.Load() >= 3
	}, 2*time.Second, 10*time.Millisecond, "client should keep reconnecting")
}

func TestClientRetriesWhenServerUnreachable(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1", testLogger())
	client.ReconnectInterval = 10 * time.Millisecond

	client.Start()

	// The client should cycle between connecting and disconnected without
	// giving up.
	require.Eventually(t, func() bool {
		state := client.State()
		return state == StateConnecting || state == StateDisconnected
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.NotEqual(t, StateConnected, client.State())

	client.Stop()
	assert.Equal(t, StateDisconnected, client.State())
}

func TestClientStopEndsLoop(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	client := NewClient(wsURL(server), testLogger())
	client.ReconnectInterval = 10 * time.Millisecond

	client.Start()

	require.Eventually(t, func() bool {
		return client.State() == StateConnected
	}, 2*time.Second, 10*time.Millisecond)

	client.Stop()
	assert.Equal(t, StateDisconnected, client.State())

	// A second Stop is a no-op.
	client.Stop()
}

func TestClientIgnoresUnknownEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		unknown, _ := json.Marshal(domain.Envelope{Event: "future_event", Data: map[string]int{"n": 1}})
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, unknown))

		known, _ := json.Marshal(domain.Envelope{Event: domain.EventNewMessage, Data: map[string]string{"body": "hello"}})
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, known))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	received := make(chan json.RawMessage, 1)

	client := NewClient(wsURL(server), testLogger())
	client.ReconnectInterval = 10 * time.Millisecond
	client.On(domain.EventNewMessage, func(data json.RawMessage) {
		received <- data
	})

	client.Start()
	defer client.Stop()

	select {
	case data := <-received:
		var body map[string]string
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "hello", body["body"])
	case <-time.After(2 * time.Second):
		t.Fatal("known event was not delivered after unknown event")
	}
}
