// Package telemetry streams live lander telemetry to websocket spectators.
// The Hub implements the simulation's telemetry and outcome sinks, so a
// session can publish without knowing about the network.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

const (
	sendBuffer   = 256
	writeWait    = 5 * time.Second
	pingInterval = 30 * time.Second
)

// Message types on the wire.
const (
	TypeTelemetry = "telemetry"
	TypeOutcome   = "outcome"
)

// Message is the JSON envelope sent to spectators.
type Message struct {
	Type      string            `json:"type"`
	Mode      string            `json:"mode"`
	Telemetry *TelemetryPayload `json:"telemetry,omitempty"`
	Outcome   *OutcomePayload   `json:"outcome,omitempty"`
}

// TelemetryPayload is the wire form of sim.Telemetry.
type TelemetryPayload struct {
	State      string  `json:"state"`
	Altitude   float64 `json:"altitude"`
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
	Speed      float64 `json:"speed"`
	Angle      float64 `json:"angle"`
	RelAngle   float64 `json:"rel_angle"`
	Fuel       float64 `json:"fuel"`
	Elapsed    float64 `json:"elapsed"`
	Thrusting  bool    `json:"thrusting"`
	Score      int     `json:"score"`
}

// OutcomePayload is the wire form of sim.Outcome.
type OutcomePayload struct {
	Kind     string  `json:"kind"`
	Reason   string  `json:"reason,omitempty"`
	Segment  int     `json:"segment"`
	Speed    float64 `json:"speed"`
	RelAngle float64 `json:"rel_angle"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub fans simulation output out to every connected spectator.
// Slow clients whose buffer fills are dropped instead of blocking the game loop.
type Hub struct {
	mode     string
	logger   *log.Logger
	upgrader websocket.Upgrader

	// SampleEvery publishes one telemetry snapshot out of every N.
	SampleEvery int

	mu      sync.Mutex
	clients map[*client]struct{}
	count   int
	closed  bool
}

// NewHub creates a hub labelling its messages with mode.
func NewHub(mode string, logger *log.Logger) *Hub {
	return &Hub{
		mode:   mode,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		SampleEvery: 4,
		clients:     make(map[*client]struct{}),
	}
}

// Telemetry implements sim.TelemetrySink.
func (h *Hub) Telemetry(t sim.Telemetry) {
	h.mu.Lock()
	h.count++
	skip := h.SampleEvery > 1 && h.count%h.SampleEvery != 0 && t.State != sim.StateEnded
	h.mu.Unlock()
	if skip {
		return
	}

	h.publish(Message{
		Type: TypeTelemetry,
		Mode: h.mode,
		Telemetry: &TelemetryPayload{
			State:      t.State.String(),
			Altitude:   t.Altitude,
			Horizontal: t.Horizontal,
			Vertical:   t.Vertical,
			Speed:      t.Speed,
			Angle:      t.Angle,
			RelAngle:   t.RelAngle,
			Fuel:       t.Fuel,
			Elapsed:    t.Elapsed,
			Thrusting:  t.Thrusting,
			Score:      t.Score(),
		},
	})
}

// Outcome implements sim.OutcomeSink.
func (h *Hub) Outcome(o sim.Outcome) {
	h.publish(Message{
		Type: TypeOutcome,
		Mode: h.mode,
		Outcome: &OutcomePayload{
			Kind:     o.Kind.String(),
			Reason:   o.Reason.String(),
			Segment:  o.Segment,
			Speed:    o.Speed,
			RelAngle: o.RelAngle,
		},
	})
}

func (h *Hub) publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode telemetry", "error", err)
		return
	}
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow spectator", "remote", c.id)
			h.removeLocked(c)
		}
	}
}

// removeLocked unregisters c and closes its send channel. h.mu must be held.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and registers a spectator.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer), id: r.RemoteAddr}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("spectator connected", "remote", c.id)

	go h.readLoop(c)
	go h.writeLoop(c)
}

// readLoop discards client messages and unregisters on disconnect.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		h.logger.Info("spectator disconnected", "remote", c.id)
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every spectator and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// Handler returns a mux serving the feed at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	return mux
}

// Serve runs an HTTP server for the hub on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("telemetry feed listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
