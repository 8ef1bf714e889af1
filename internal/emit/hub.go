package emit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// InvokeResult is the channel replies to invoke requests are sent on.
const InvokeResult = "invoke-result"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxRequestSize = 4096
	sendBuffer     = 256
)

// ErrDropped is returned by Hub.Emit when at least one client's buffer was full.
var ErrDropped = errors.New("subscriber buffer full, message dropped")

// Invoker runs a named command on behalf of a websocket client.
type Invoker func(ctx context.Context, command string) error

// Request is an inbound client frame.
type Request struct {
	Invoke string `json:"invoke"`
}

// Reply answers a Request once its command returns.
type Reply struct {
	Invoke string `json:"invoke"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// HubOptions configures a Hub.
type HubOptions struct {
	// Context bounds commands started through Invoke.
	Context context.Context
	Invoke  Invoker
	Logger  *slog.Logger
}

// Hub broadcasts events to websocket subscribers and accepts invoke requests
// from them.
type Hub struct {
	ctx      context.Context
	invoke   Invoker
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	addr string
	once sync.Once
}

// NewHub builds a hub. The zero options are valid: no invoker means invoke
// requests are rejected.
func NewHub(opts HubOptions) *Hub {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		ctx:    ctx,
		invoke: opts.Invoke,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local front ends are served from arbitrary origins (file://, dev servers).
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the subscriber.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		addr: r.RemoteAddr,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.log.Info("subscriber connected", "remote", c.addr, "clients", total)

	go c.writePump()
	go c.readPump()
}

// Emit broadcasts one event. It never blocks on a slow subscriber.
func (h *Hub) Emit(channel string, payload any) error {
	data, err := Encode(channel, payload)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := false
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			dropped = true
		}
	}
	if dropped {
		return ErrDropped
	}
	return nil
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.stop()
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	total := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.log.Info("subscriber disconnected", "remote", c.addr, "clients", total)
	}
	c.stop()
}

func (c *client) stop() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxRequestSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("websocket read failed", "remote", c.addr, "error", err)
			}
			return
		}
		c.handleRequest(message)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) handleRequest(data []byte) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil || req.Invoke == "" {
		c.hub.log.Debug("ignoring malformed request", "remote", c.addr)
		return
	}

	invoke := c.hub.invoke
	if invoke == nil {
		c.reply(Reply{Invoke: req.Invoke, Error: "commands are disabled"})
		return
	}

	c.hub.log.Info("invoke", "command", req.Invoke, "remote", c.addr)
	// Device capture blocks for the lifetime of the process, so commands never
	// run on the read pump.
	go func() {
		err := invoke(c.hub.ctx, req.Invoke)
		r := Reply{Invoke: req.Invoke, OK: err == nil}
		if err != nil {
			r.Error = err.Error()
		}
		c.reply(r)
	}()
}

func (c *client) reply(r Reply) {
	data, err := Encode(InvokeResult, r)
	if err != nil {
		return
	}

	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
