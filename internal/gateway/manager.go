// Package gateway carries the WebSocket transport: connection lifecycle,
// fan-out of coordinator frames and dispatch of participant frames into the
// game engine.
package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/protocol"
)

// Manager owns every live WebSocket connection. Frames are marshaled once and
// pushed into per-connection send buffers; a connection that cannot keep up is
// dropped rather than allowed to stall the rest.
type Manager struct {
	conns map[uuid.UUID]*Connection
	mu    sync.RWMutex

	upgrader websocket.Upgrader
	config   Config

	broadcastCh chan broadcastMessage
}

// Connection is one participant's WebSocket link.
type Connection struct {
	ID      uuid.UUID
	Admin   bool
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *Manager

	ConnectedAt time.Time
	LastPing    time.Time
}

// Config holds WebSocket transport tuning.
type Config struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

type broadcastMessage struct {
	target uuid.UUID // zero value means every connection
	data   []byte
}

// DefaultConfig returns the default WebSocket configuration.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  8192,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewManager creates a connection manager.
func NewManager(config Config) *Manager {
	return &Manager{
		conns: make(map[uuid.UUID]*Connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan broadcastMessage, 1000),
	}
}

// Start processes outbound frames until the context is cancelled.
func (m *Manager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			m.closeAll()
			return
		case message := <-m.broadcastCh:
			m.handleBroadcast(message)
		}
	}
}

// Broadcast fans a frame out to every live connection. It satisfies the
// engine's Broadcaster contract; ordering is preserved because the engine
// calls it from a single goroutine and frames flow through one channel.
func (m *Manager) Broadcast(topic string, payload any) {
	data, err := protocol.Marshal(topic, payload)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to marshal broadcast frame")
		return
	}
	select {
	case m.broadcastCh <- broadcastMessage{data: data}:
	default:
		log.Warn().Str("topic", topic).Msg("broadcast channel full, dropping frame")
	}
}

// SendTo delivers a frame to a single connection.
func (m *Manager) SendTo(conn uuid.UUID, topic string, payload any) {
	data, err := protocol.Marshal(topic, payload)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to marshal targeted frame")
		return
	}
	select {
	case m.broadcastCh <- broadcastMessage{target: conn, data: data}:
	default:
		log.Warn().Str("topic", topic).Str("conn", conn.String()).Msg("broadcast channel full, dropping frame")
	}
}

// upgrade promotes an HTTP request to a WebSocket connection and registers it.
func (m *Manager) upgrade(w http.ResponseWriter, r *http.Request, admin bool) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return nil, err
	}

	connection := &Connection{
		ID:          uuid.New(),
		Admin:       admin,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Manager:     m,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}
	m.register(connection)

	log.Info().
		Str("connection_id", connection.ID.String()).
		Bool("admin", admin).
		Msg("WebSocket connection established")
	return connection, nil
}

func (m *Manager) register(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[conn.ID] = conn
}

// unregister removes a connection. Safe to call twice; only the first call
// closes the send channel.
func (m *Manager) unregister(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.conns[conn.ID]; exists {
		delete(m.conns, conn.ID)
		close(conn.Send)
		log.Info().
			Str("connection_id", conn.ID.String()).
			Int("remaining", len(m.conns)).
			Msg("connection unregistered")
	}
}

func (m *Manager) handleBroadcast(message broadcastMessage) {
	m.mu.RLock()
	targets := make([]*Connection, 0, len(m.conns))
	for _, conn := range m.conns {
		if message.target != uuid.Nil && conn.ID != message.target {
			continue
		}
		targets = append(targets, conn)
	}
	m.mu.RUnlock()

	for _, conn := range targets {
		select {
		case conn.Send <- message.data:
		default:
			log.Warn().
				Str("connection_id", conn.ID.String()).
				Msg("connection send buffer full, closing connection")
			m.unregister(conn)
			conn.Conn.Close()
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	conns := make([]*Connection, 0, len(m.conns))
	for _, conn := range m.conns {
		conns = append(conns, conn)
	}
	m.mu.Unlock()

	for _, conn := range conns {
		m.unregister(conn)
		conn.Conn.Close()
	}
}

// ConnectionCount reports the number of live connections.
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// writePump drains the send buffer to the socket and keeps the connection
// alive with pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID.String()).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			c.LastPing = time.Now()
		}
	}
}

// readPump reads frames off the socket and hands them to dispatch until the
// connection drops.
func (c *Connection) readPump(dispatch func(*Connection, []byte), closed func(*Connection)) {
	defer func() {
		c.Manager.unregister(c)
		c.Conn.Close()
		closed(c)
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		c.LastPing = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID.String()).
					Msg("unexpected WebSocket close error")
			}
			break
		}
		dispatch(c, message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}
