package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/querycache"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512KB
)

// ErrNotConnected is returned when emitting without a connection.
var ErrNotConnected = errors.New("Socket não conectado")

// Notification cache keys refetched on every notification event.
var (
	NotificationsKey = querycache.K("notifications")
	UnreadCountKey   = querycache.K("notifications-unread-count")
)

// TokenSource supplies the bearer token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Invalidator marks cached queries stale.
type Invalidator interface {
	Invalidate(ctx context.Context, prefix querycache.Key) error
}

// Client is the notification socket client. One Client holds at most one
// connection.
type Client struct {
	endpoint   string
	tokens     TokenSource
	dialer     *websocket.Dialer
	delay      time.Duration
	attempts   int
	ackTimeout time.Duration

	mu       sync.RWMutex
	conn     *connection
	handlers map[string]map[int]Handler
	nextID   int
	pending  map[string]chan json.RawMessage
	cancel   context.CancelFunc
	done     chan struct{}

	connected atomic.Bool
	closing   atomic.Bool
}

type connection struct {
	ws     *websocket.Conn
	send   chan []byte
	closed chan struct{}
	once   sync.Once
}

func (c *connection) close() {
	c.once.Do(func() {
		close(c.closed)
		_ = c.ws.Close()
	})
}

// New creates a client for cfg. tokens may be nil for anonymous connections.
func New(cfg *config.Realtime, tokens TokenSource) *Client {
	if cfg == nil {
		cfg = &config.Realtime{URL: "http://localhost:3001", Namespace: "/notifications"}
	}
	c := &Client{
		endpoint:   endpoint(cfg.URL, cfg.Namespace),
		tokens:     tokens,
		dialer:     websocket.DefaultDialer,
		delay:      cfg.ReconnectionDelay,
		attempts:   cfg.ReconnectionAttempts,
		ackTimeout: cfg.AckTimeout,
		handlers:   make(map[string]map[int]Handler),
		pending:    make(map[string]chan json.RawMessage),
	}
	if c.delay <= 0 {
		c.delay = time.Second
	}
	if c.attempts <= 0 {
		c.attempts = 5
	}
	if c.ackTimeout <= 0 {
		c.ackTimeout = 10 * time.Second
	}

	c.On(EventAuthenticated, func(data json.RawMessage) {
		logger.Info(context.Background(), "socket authenticated", "data", string(data))
	})
	c.On(EventError, func(data json.RawMessage) {
		logger.Error(context.Background(), "socket error", "data", string(data))
	})
	return c
}

// endpoint turns an http(s) base URL plus namespace into a ws(s) URL.
func endpoint(base, namespace string) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(namespace, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		return "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// InvalidateOnNotification refetches the notification queries whenever the
// server pushes a notification event.
func (c *Client) InvalidateOnNotification(inv Invalidator) func() {
	invalidate := func(json.RawMessage) {
		ctx := context.Background()
		for _, key := range []querycache.Key{NotificationsKey, UnreadCountKey} {
			if err := inv.Invalidate(ctx, key); err != nil {
				logger.Warn(ctx, "failed to invalidate notifications", "key", key.String(), "error", err)
			}
		}
	}
	offNew := c.On(EventNotification, invalidate)
	offUpdate := c.On(EventUpdateNotification, invalidate)
	return func() {
		offNew()
		offUpdate()
	}
}

// On registers fn for event. The returned function unregisters it.
func (c *Client) On(event string, fn Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handlers[event] == nil {
		c.handlers[event] = make(map[int]Handler)
	}
	id := c.nextID
	c.nextID++
	c.handlers[event][id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers[event], id)
	}
}

// Off removes every handler of event.
func (c *Client) Off(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

// IsConnected reports whether the connection is up.
func (c *Client) IsConnected() bool { return c.connected.Load() }

// Connect dials the server and keeps the connection alive until Disconnect.
// It is a no-op when already connected.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()
	c.closing.Store(false)

	conn, err := c.dialWithRetry(ctx)
	if err != nil {
		cancel()
		c.mu.Lock()
		close(done)
		c.cancel = nil
		c.mu.Unlock()
		return err
	}
	c.attach(ctx, conn)
	go c.run(runCtx, conn, done)
	return nil
}

// Disconnect closes the connection and stops reconnecting.
func (c *Client) Disconnect() {
	c.mu.Lock()
	cancel, done, conn := c.cancel, c.done, c.conn
	c.cancel = nil
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	c.closing.Store(true)
	cancel()
	if conn != nil {
		_ = conn.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		conn.close()
	}
	<-done
}

func (c *Client) dialWithRetry(ctx context.Context) (*connection, error) {
	return backoff.Retry(ctx, func() (*connection, error) {
		return c.dial(ctx)
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.delay)),
		backoff.WithMaxTries(uint(c.attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn(ctx, "socket connection failed, retrying", "error", err, "retry_in", next.String())
		}),
	)
}

func (c *Client) dial(ctx context.Context) (*connection, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("invalid socket url: %w", err))
	}
	header := http.Header{}
	if c.tokens != nil {
		if token, err := c.tokens.Token(ctx); err == nil && token != "" {
			q := u.Query()
			q.Set("token", token)
			u.RawQuery = q.Encode()
			header.Set("Authorization", "Bearer "+token)
		}
	}

	ws, resp, err := c.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return nil, backoff.Permanent(fmt.Errorf("socket rejected: %s", resp.Status))
			}
		}
		return nil, err
	}
	return &connection{ws: ws, send: make(chan []byte, 256), closed: make(chan struct{})}, nil
}

// run serves conn and reconnects when it drops.
func (c *Client) run(ctx context.Context, conn *connection, done chan struct{}) {
	defer func() {
		c.connected.Store(false)
		c.mu.Lock()
		c.conn = nil
		close(done)
		c.mu.Unlock()
	}()

	for {
		go func(conn *connection) {
			select {
			case <-ctx.Done():
				conn.close()
			case <-conn.closed:
			}
		}(conn)
		go c.writePump(conn)
		c.readPump(conn)
		c.connected.Store(false)
		c.failPending()

		if c.closing.Load() || ctx.Err() != nil {
			return
		}
		logger.Warn(ctx, "socket disconnected, reconnecting")

		var err error
		conn, err = c.dialWithRetry(ctx)
		if err != nil {
			if c.closing.Load() || ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "socket reconnection failed", "error", err)
			c.dispatch(EventError, mustJSON(err.Error()))
			c.mu.Lock()
			if c.cancel != nil {
				c.cancel()
				c.cancel = nil
			}
			c.mu.Unlock()
			return
		}
		c.attach(ctx, conn)
	}
}

func (c *Client) attach(ctx context.Context, conn *connection) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)
	logger.Info(ctx, "socket connected", "url", c.endpoint)
}

func (c *Client) readPump(conn *connection) {
	defer conn.close()

	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && !c.closing.Load() {
				logger.Warn(context.Background(), "socket read error", "error", err)
			}
			return
		}
		_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn(context.Background(), "invalid socket message", "error", err)
			continue
		}
		if msg.Event == EventAck {
			c.resolveAck(msg.AckID, msg.Data)
			continue
		}
		c.dispatch(msg.Event, msg.Data)
	}
}

func (c *Client) writePump(conn *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-conn.closed:
			return
		case message := <-conn.send:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn(context.Background(), "socket write error", "error", err)
				conn.close()
				return
			}
		case <-ticker.C:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.close()
				return
			}
		}
	}
}

func (c *Client) dispatch(event string, data json.RawMessage) {
	c.mu.RLock()
	fns := make([]Handler, 0, len(c.handlers[event]))
	for _, fn := range c.handlers[event] {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(data)
	}
}

// Emit sends event without waiting for an acknowledgement.
func (c *Client) Emit(ctx context.Context, event string, data any) error {
	return c.emit(ctx, &Message{Event: event}, data)
}

// EmitWithAck sends event and waits for the server acknowledgement.
func (c *Client) EmitWithAck(ctx context.Context, event string, data any) (json.RawMessage, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create ack id: %w", err)
	}
	ch := make(chan json.RawMessage, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.emit(ctx, &Message{Event: event, AckID: id}, data); err != nil {
		return nil, err
	}

	timer := time.NewTimer(c.ackTimeout)
	defer timer.Stop()
	select {
	case ack, ok := <-ch:
		if !ok {
			return nil, ErrNotConnected
		}
		return ack, nil
	case <-timer.C:
		return nil, fmt.Errorf("%s: ack timeout", event)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) emit(ctx context.Context, msg *Message, data any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil || !c.connected.Load() {
		return ErrNotConnected
	}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", msg.Event, err)
		}
		msg.Data = b
	}
	frame, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case conn.send <- frame:
		return nil
	case <-conn.closed:
		return ErrNotConnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) resolveAck(id string, data json.RawMessage) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.pending[id]
	if !ok {
		return
	}
	select {
	case ch <- data:
	default:
	}
}

// failPending releases every waiter of a dropped connection.
func (c *Client) failPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// roomRequest emits a room event and fails with *AckError when the ack
// carries success false. The raw ack is returned either way.
func (c *Client) roomRequest(ctx context.Context, event string, data any) (json.RawMessage, error) {
	raw, err := c.EmitWithAck(ctx, event, data)
	if err != nil {
		return nil, err
	}
	var ack RoomAck
	if err := json.Unmarshal(raw, &ack); err != nil {
		return raw, fmt.Errorf("%s: invalid ack: %w", event, err)
	}
	if !ack.Success {
		logger.Warn(ctx, "socket room request refused", "event", event, "message", ack.Message)
		return raw, &AckError{Event: event, Message: ack.Message, Data: raw}
	}
	return raw, nil
}

// JoinTeam subscribes to the notifications of a team.
func (c *Client) JoinTeam(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.roomRequest(ctx, EventJoinTeam, map[string]string{"teamId": teamID})
}

// LeaveTeam unsubscribes from a team.
func (c *Client) LeaveTeam(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.roomRequest(ctx, EventLeaveTeam, map[string]string{"teamId": teamID})
}

// JoinCompany subscribes to the notifications of a company.
func (c *Client) JoinCompany(ctx context.Context, companyID string) (json.RawMessage, error) {
	return c.roomRequest(ctx, EventJoinCompany, map[string]string{"companyId": companyID})
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
