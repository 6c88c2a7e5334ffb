package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/querycache"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type recordingInvalidator struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, prefix querycache.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, prefix.String())
	return nil
}

func (r *recordingInvalidator) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

// testServer upgrades every request and hands the connection to serve.
type testServer struct {
	*httptest.Server
	connections atomic.Int32
	lastQuery   atomic.Value
	lastAuth    atomic.Value
}

func newTestServer(t *testing.T, serve func(n int32, ws *websocket.Conn)) *testServer {
	t.Helper()
	ts := &testServer{}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.lastQuery.Store(r.URL.Query().Get("token"))
		ts.lastAuth.Store(r.Header.Get("Authorization"))
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		serve(ts.connections.Add(1), ws)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(url string) *config.Realtime {
	return &config.Realtime{
		URL:                  url,
		Namespace:            "/notifications",
		ReconnectionDelay:    10 * time.Millisecond,
		ReconnectionAttempts: 5,
		AckTimeout:           time.Second,
	}
}

// echoAcks answers every frame carrying an ackId.
func echoAcks(ws *websocket.Conn) {
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}
		if msg.AckID != "" {
			_ = ws.WriteJSON(Message{Event: EventAck, AckID: msg.AckID, Data: json.RawMessage(`{"success":true,"event":"` + msg.Event + `"}`)})
		}
	}
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "ws://localhost:3001/notifications", endpoint("http://localhost:3001", "/notifications"))
	assert.Equal(t, "wss://api.example.com/notifications", endpoint("https://api.example.com/", "notifications"))
}

func TestConnectSendsToken(t *testing.T) {
	ts := newTestServer(t, func(_ int32, ws *websocket.Conn) { echoAcks(ws) })
	c := New(testConfig(ts.URL), staticToken("tok"))
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	assert.True(t, c.IsConnected())
	assert.Equal(t, "tok", ts.lastQuery.Load())
	assert.Equal(t, "Bearer tok", ts.lastAuth.Load())
	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, int32(1), ts.connections.Load())
}

func TestNotificationEventsInvalidateKeys(t *testing.T) {
	ts := newTestServer(t, func(_ int32, ws *websocket.Conn) {
		_ = ws.WriteJSON(Message{Event: EventNotification, Data: json.RawMessage(`{"id":"n1"}`)})
		_ = ws.WriteJSON(Message{Event: EventUpdateNotification, Data: json.RawMessage(`{"id":"n1"}`)})
		echoAcks(ws)
	})
	inv := &recordingInvalidator{}
	c := New(testConfig(ts.URL), staticToken("tok"))
	c.InvalidateOnNotification(inv)

	var received atomic.Int32
	off := c.On(EventNotification, func(data json.RawMessage) {
		if strings.Contains(string(data), "n1") {
			received.Add(1)
		}
	})
	defer off()

	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	assert.Eventually(t, func() bool { return len(inv.Keys()) == 4 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{`"notifications"`, `"notifications-unread-count"`, `"notifications"`, `"notifications-unread-count"`}, inv.Keys())
	assert.Equal(t, int32(1), received.Load())
}

func TestJoinTeamAck(t *testing.T) {
	ts := newTestServer(t, func(_ int32, ws *websocket.Conn) { echoAcks(ws) })
	c := New(testConfig(ts.URL), staticToken("tok"))
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	ack, err := c.JoinTeam(context.Background(), "team-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"event":"joinTeam"}`, string(ack))

	ack, err = c.JoinCompany(context.Background(), "c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"event":"joinCompany"}`, string(ack))
}

func TestJoinTeamRefused(t *testing.T) {
	ts := newTestServer(t, func(_ int32, ws *websocket.Conn) {
		for {
			var msg Message
			if err := ws.ReadJSON(&msg); err != nil {
				return
			}
			_ = ws.WriteJSON(Message{Event: EventAck, AckID: msg.AckID, Data: json.RawMessage(`{"success":false,"message":"Usuário não pertence à equipe"}`)})
		}
	})
	c := New(testConfig(ts.URL), staticToken("tok"))
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	ack, err := c.JoinTeam(context.Background(), "team-9")
	require.Error(t, err)
	assert.EqualError(t, err, "Usuário não pertence à equipe")
	var ackErr *AckError
	require.ErrorAs(t, err, &ackErr)
	assert.Equal(t, EventJoinTeam, ackErr.Event)
	assert.JSONEq(t, `{"success":false,"message":"Usuário não pertence à equipe"}`, string(ack))

	_, err = c.LeaveTeam(context.Background(), "team-9")
	assert.Error(t, err)
}

func TestEmitWithoutConnection(t *testing.T) {
	c := New(testConfig("http://127.0.0.1:1"), nil)
	_, err := c.LeaveTeam(context.Background(), "team-1")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.EqualError(t, err, "Socket não conectado")
}

func TestOffRemovesHandlers(t *testing.T) {
	c := New(testConfig("http://127.0.0.1:1"), nil)
	var calls int
	c.On("custom", func(json.RawMessage) { calls++ })
	c.On("custom", func(json.RawMessage) { calls++ })
	c.dispatch("custom", nil)
	c.Off("custom")
	c.dispatch("custom", nil)
	assert.Equal(t, 2, calls)
}

func TestReconnectsAfterDrop(t *testing.T) {
	ts := newTestServer(t, func(n int32, ws *websocket.Conn) {
		if n == 1 {
			return // drop the first connection
		}
		echoAcks(ws)
	})
	c := New(testConfig(ts.URL), staticToken("tok"))
	require.NoError(t, c.Connect(context.Background()))
	defer c.Disconnect()

	assert.Eventually(t, func() bool { return ts.connections.Load() == 2 && c.IsConnected() }, 2*time.Second, 10*time.Millisecond)
	_, err := c.JoinTeam(context.Background(), "t")
	assert.NoError(t, err)
}

func TestConnectGivesUpAfterAttempts(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), nil)
	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(5), attempts.Load())
	assert.False(t, c.IsConnected())
}

func TestDisconnectDuringReconnectIsQuiet(t *testing.T) {
	var requests atomic.Int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) > 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = ws.Close()
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ReconnectionDelay = 200 * time.Millisecond
	c := New(cfg, staticToken("tok"))
	var failures atomic.Int32
	c.On(EventError, func(json.RawMessage) { failures.Add(1) })

	require.NoError(t, c.Connect(context.Background()))
	assert.Eventually(t, func() bool { return requests.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	c.Disconnect()

	assert.Equal(t, int32(0), failures.Load())
	assert.False(t, c.IsConnected())
}

func TestDisconnect(t *testing.T) {
	ts := newTestServer(t, func(_ int32, ws *websocket.Conn) { echoAcks(ws) })
	c := New(testConfig(ts.URL), nil)
	require.NoError(t, c.Connect(context.Background()))
	c.Disconnect()
	assert.False(t, c.IsConnected())
	c.Disconnect()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), ts.connections.Load())
}
