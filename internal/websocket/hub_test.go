package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sapflow/internal/shared/testutil"
)

type fakeConn struct {
	closed bool
}

func (f *fakeConn) ReadMessage() (int, []byte, error)      { select {} }
func (f *fakeConn) WriteMessage(int, []byte) error         { return nil }
func (f *fakeConn) SetReadLimit(int64)                     {}
func (f *fakeConn) SetReadDeadline(time.Time) error        { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error       { return nil }
func (f *fakeConn) SetPongHandler(func(string) error)      {}
func (f *fakeConn) RemoteAddr() string                     { return "127.0.0.1:12345" }
func (f *fakeConn) Close() error                           { f.closed = true; return nil }

func newTestClient(t *testing.T, hub *Hub) *Client {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewClientWithConnection(hub, &fakeConn{}, logger)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestHubRegisterAndCount(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	client := newTestClient(t, hub)
	hub.Register(client)

	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client never registered")
}

func TestHubUnregisterClosesSend(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	client := newTestClient(t, hub)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client never registered")

	hub.unregister <- client
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "client never unregistered")

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed")
}

func TestHubBroadcastUpdateEnvelope(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	client := newTestClient(t, hub)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client never registered")

	hub.BroadcastUpdate("data_refreshed", map[string]int{"vacuum_rows": 42})

	select {
	case raw := <-client.send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "data_refreshed", msg.Type)
		assert.False(t, msg.Timestamp.IsZero())
		data := msg.Data.(map[string]any)
		assert.Equal(t, float64(42), data["vacuum_rows"])
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast never delivered")
	}
}

func TestHubEvictsSlowClient(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger)
	hub.Start()
	defer hub.Stop()

	client := newTestClient(t, hub)
	// Shrink the buffer so a single pending message makes the client slow.
	client.send = make(chan []byte, 1)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client never registered")

	hub.BroadcastUpdate("review_updated", nil)
	hub.BroadcastUpdate("review_updated", nil)

	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "slow client never evicted")
}

func TestHubStopDisconnectsClients(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger)
	hub.Start()

	client := newTestClient(t, hub)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client never registered")

	hub.Stop()

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed on shutdown")
	assert.Equal(t, 0, hub.ClientCount())
}
