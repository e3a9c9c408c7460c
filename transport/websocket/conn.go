package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
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

	// Time allowed for the peer to answer our close frame.
	closeGrace = 2 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	sendQueueSize = 256
)

var (
	ErrConnClosed     = errors.New("connection closed")
	ErrSendQueueFull  = errors.New("send queue full")
	ErrAlreadyStarted = errors.New("connection already started")
)

// Handler receives the lifecycle of a connection.
type Handler interface {
	HandleOpen()
	HandleMessage(data []byte)
	// HandleClose is called once. err is nil for a normal closure.
	HandleClose(err error)
}

// outbound is a queued data frame or close request
type outbound struct {
	data      []byte
	close     bool
	closeCode int
}

// Conn is a client WebSocket connection.
type Conn struct {
	ws     *websocket.Conn
	logger *slog.Logger

	queue   chan outbound
	stop    chan struct{}
	stopped sync.Once
	started atomic.Bool

	mu      sync.Mutex
	closing bool
}

// Dial connects to endpoint. The handshake is bounded only by ctx.
func Dial(ctx context.Context, endpoint string, logger *slog.Logger) (*Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialer := &websocket.Dialer{
		Proxy:           http.ProxyFromEnvironment,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	ws, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to connect to %s (HTTP %d): %w", endpoint, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	logger.Info("connected", "endpoint", endpoint)
	return newConn(ws, logger), nil
}

func newConn(ws *websocket.Conn, logger *slog.Logger) *Conn {
	return &Conn{
		ws:     ws,
		logger: logger,
		queue:  make(chan outbound, sendQueueSize),
		stop:   make(chan struct{}),
	}
}

// Start reports the open connection to h and begins pumping frames.
func (c *Conn) Start(h Handler) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	go c.writePump()
	h.HandleOpen()
	go c.readPump(h)
	return nil
}

// Send queues a text frame. It never waits for the frame to be written.
func (c *Conn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closing {
		return ErrConnClosed
	}

	select {
	case c.queue <- outbound{data: data}:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close sends a close frame with code after any queued frames, then waits
// briefly for the peer's reply before dropping the connection. Later calls
// are no-ops.
func (c *Conn) Close(code int) error {
	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		return nil
	}
	c.closing = true

	req := outbound{close: true, closeCode: code}
	queued := false
	if c.started.Load() {
		select {
		case c.queue <- req:
			queued = true
		default:
		}
	}
	c.mu.Unlock()

	if !queued {
		return c.writeClose(code)
	}
	return nil
}

// Done is closed once the connection has been torn down.
func (c *Conn) Done() <-chan struct{} {
	return c.stop
}

// Teardown drops the connection without a close frame.
func (c *Conn) Teardown() {
	c.stopped.Do(func() {
		c.mu.Lock()
		c.closing = true
		c.mu.Unlock()

		close(c.stop)
		c.ws.Close()
	})
}

func (c *Conn) writeClose(code int) error {
	msg := websocket.FormatCloseMessage(code, "")
	err := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	time.AfterFunc(closeGrace, c.Teardown)
	if err != nil {
		return fmt.Errorf("failed to write close frame: %w", err)
	}
	return nil
}

// readPump pumps frames from the connection to the handler
func (c *Conn) readPump(h Handler) {
	defer c.Teardown()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			h.HandleClose(c.closeReason(err))
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(pongWait))

		if msgType != websocket.TextMessage {
			c.logger.Debug("ignoring non-text frame", "type", msgType)
			continue
		}
		h.HandleMessage(data)
	}
}

// closeReason maps a read error to nil for closures that are not failures
func (c *Conn) closeReason(err error) error {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}

	c.mu.Lock()
	closing := c.closing
	c.mu.Unlock()
	if closing {
		// We asked for the close or tore the connection down ourselves
		return nil
	}
	return err
}

// writePump pumps queued frames and keepalive pings to the connection
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return

		case out := <-c.queue:
			if out.close {
				if err := c.writeClose(out.closeCode); err != nil {
					c.logger.Warn("close failed", "error", err)
				}
				return
			}

			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, out.data); err != nil {
				c.logger.Warn("write failed", "error", err)
				c.Teardown()
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Warn("ping failed", "error", err)
				c.Teardown()
				return
			}
		}
	}
}
