package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(hub *Hub) *Client {
	// No pumps run in these tests; frames are read straight off the send
	// channel.
	return NewClient(hub, nil, testLogger())
}

// drainOne pops the next queued frame and decodes it.
func drainOne(t *testing.T, c *Client) domain.Envelope {
	t.Helper()

	select {
	case frame := <-c.send:
		var env domain.Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		return env
	default:
		t.Fatal("expected a queued frame, got none")
		return domain.Envelope{}
	}
}

func assertEmpty(t *testing.T, c *Client) {
	t.Helper()

	select {
	case frame := <-c.send:
		t.Fatalf("expected no queued frames, got %s", frame)
	default:
	}
}

func TestHubRegisterSendsWelcome(t *testing.T) {
	hub := NewHub(testLogger())
	client := newTestClient(hub)

	hub.Register(client)

	env := drainOne(t, client)
	assert.Equal(t, domain.EventConnected, env.Event)
	assertEmpty(t, client)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(testLogger())

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = newTestClient(hub)
		hub.Register(clients[i])
		drainOne(t, clients[i]) // welcome
	}

	hub.Broadcast(domain.EventAlertGenerated, map[string]string{"zone": "ram_ghat"})

	for _, c := range clients {
		env := drainOne(t, c)
		assert.Equal(t, domain.EventAlertGenerated, env.Event)
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ram_ghat", data["zone"])
		assertEmpty(t, c) // exactly once
	}
}

func TestHubBroadcastSkipsFaultyClient(t *testing.T) {
	hub := NewHub(testLogger())

	healthy := newTestClient(hub)
	faulty := newTestClient(hub)
	hub.Register(healthy)
	hub.Register(faulty)
	drainOne(t, healthy)
	drainOne(t, faulty)

	// Simulate a dead peer: its pump has shut down.
	faulty.shutdown()

	hub.Broadcast(domain.EventNewNotification, map[string]string{"title": "gate closed"})

	env := drainOne(t, healthy)
	assert.Equal(t, domain.EventNewNotification, env.Event)
	assertEmpty(t, faulty)
}

func TestHubBroadcastSkipsFullBuffer(t *testing.T) {
	hub := NewHub(testLogger())

	healthy := newTestClient(hub)
	slow := newTestClient(hub)
	hub.Register(healthy)
	hub.Register(slow)
	drainOne(t, healthy)

	// Fill the slow consumer's buffer to the brim (welcome already holds
	// one slot).
	for i := 0; i < sendBufferSize-1; i++ {
		require.True(t, slow.enqueue([]byte("{}")))
	}

	hub.Broadcast(domain.EventIncidentUpdate, map[string]string{"status": "acknowledged"})

	// The healthy client still receives; the producer was never blocked.
	env := drainOne(t, healthy)
	assert.Equal(t, domain.EventIncidentUpdate, env.Event)
}

func TestHubLateJoinerExcluded(t *testing.T) {
	hub := NewHub(testLogger())

	early := newTestClient(hub)
	hub.Register(early)
	drainOne(t, early)

	hub.Broadcast(domain.EventNewHelpRequest, map[string]string{"requestType": "medical"})
	drainOne(t, early)

	late := newTestClient(hub)
	hub.Register(late)

	env := drainOne(t, late)
	assert.Equal(t, domain.EventConnected, env.Event)
	assertEmpty(t, late) // missed the earlier envelope, no replay

	hub.Broadcast(domain.EventHelpRequestUpdate, map[string]string{"status": "resolved"})
	env = drainOne(t, late)
	assert.Equal(t, domain.EventHelpRequestUpdate, env.Event)
}

func TestHubUnregisterIdempotent(t *testing.T) {
	hub := NewHub(testLogger())

	a := newTestClient(hub)
	b := newTestClient(hub)
	hub.Register(a)
	hub.Register(b)
	drainOne(t, a)
	drainOne(t, b)

	hub.Unregister(a)
	hub.Unregister(a)                 // second time is a no-op
	hub.Unregister(newTestClient(hub)) // never registered

	assert.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(domain.EventNewMessage, map[string]string{"body": "hello"})
	env := drainOne(t, b)
	assert.Equal(t, domain.EventNewMessage, env.Event)
	assertEmpty(t, a)
}

func TestHubPerProducerOrdering(t *testing.T) {
	hub := NewHub(testLogger())

	client := newTestClient(hub)
	hub.Register(client)
	drainOne(t, client)

	hub.Broadcast(domain.EventIncident, map[string]int{"seq": 1})
	hub.Broadcast(domain.EventIncident, map[string]int{"seq": 2})
	hub.Broadcast(domain.EventIncident, map[string]int{"seq": 3})

	for want := 1; want <= 3; want++ {
		env := drainOne(t, client)
		data := env.Data.(map[string]any)
		assert.Equal(t, float64(want), data["seq"])
	}
}

func TestHubUnserializablePayloadDropped(t *testing.T) {
	hub := NewHub(testLogger())

	client := newTestClient(hub)
	hub.Register(client)
	drainOne(t, client)

	// A channel cannot be marshaled; the envelope must be dropped without
	// panicking or reaching any client.
	hub.Broadcast(domain.EventIncident, make(chan int))

	assertEmpty(t, client)
}

func TestHubConcurrentBroadcastAndRegistration(t *testing.T) {
	hub := NewHub(testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newTestClient(hub)
			hub.Register(c)
			hub.Broadcast(domain.EventIncident, map[string]string{"zone": "z"})
			hub.Unregister(c)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.ClientCount())
}

// Mirrors the end-to-end scenario: a critical incident reaches all three
// connected dashboards, while a fourth that connects afterwards only sees
// the next broadcast.
func TestHubCriticalIncidentScenario(t *testing.T) {
	hub := NewHub(testLogger())

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = newTestClient(hub)
		hub.Register(clients[i])
		drainOne(t, clients[i])
	}

	incident := map[string]any{
		"event":    map[string]any{"severity": "critical", "zoneId": "sector-7"},
		"analysis": map[string]any{"riskLevel": "critical"},
		"frame":    map[string]any{"sourceId": "cam-12"},
	}
	hub.Broadcast(domain.EventIncident, incident)

	for _, c := range clients {
		env := drainOne(t, c)
		assert.Equal(t, domain.EventIncident, env.Event)
	}

	late := newTestClient(hub)
	hub.Register(late)
	env := drainOne(t, late)
	assert.Equal(t, domain.EventConnected, env.Event)
	assertEmpty(t, late)

	hub.Broadcast(domain.EventIncidentUpdate, map[string]string{"status": "acknowledged"})
	env = drainOne(t, late)
	assert.Equal(t, domain.EventIncidentUpdate, env.Event)
}
