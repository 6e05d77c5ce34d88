// Package realtime pushes order events to connected dashboard sessions over
// WebSocket.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"orderdesk/internal/domain/service"
)

const writeTimeout = 5 * time.Second

// session pairs a websocket connection with its write lock. gorilla/websocket
// supports at most one concurrent writer per connection, so every write and
// the final close must hold mu.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) send(event any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	return s.conn.WriteJSON(event)
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.Close()
}

// Hub tracks live WebSocket connections per tenant and implements the
// OrderEventPublisher domain service. A tenant can hold several connections
// at once, one per open browser tab.
type Hub struct {
	mu     sync.RWMutex
	conns  map[uuid.UUID]map[*websocket.Conn]*session
	logger *slog.Logger
}

// NewHub is the constructor for Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[uuid.UUID]map[*websocket.Conn]*session),
		logger: logger,
	}
}

// Register adds a connection to the tenant's set.
func (h *Hub) Register(tenantID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[tenantID]
	if !ok {
		set = make(map[*websocket.Conn]*session)
		h.conns[tenantID] = set
	}
	set[conn] = &session{conn: conn}
}

// Unregister drops a connection and closes it. Empty tenant sets are removed
// so the map does not grow with churn. The close waits for any in-flight
// write on the same connection.
func (h *Hub) Unregister(tenantID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	var sess *session
	if set, ok := h.conns[tenantID]; ok {
		sess = set[conn]
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, tenantID)
		}
	}
	h.mu.Unlock()

	if sess != nil {
		sess.close()
	} else {
		conn.Close()
	}
}

// ConnectionCount returns how many live connections the tenant holds.
func (h *Hub) ConnectionCount(tenantID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns[tenantID])
}

// PublishOrderCreated sends the event to every live connection of the tenant.
// Dead connections are pruned; delivery is best-effort and the persisted
// notification inbox is the source of truth.
func (h *Hub) PublishOrderCreated(_ context.Context, tenantID uuid.UUID, event *service.OrderCreatedEvent) {
	h.mu.RLock()
	targets := make([]*session, 0, len(h.conns[tenantID]))
	for _, sess := range h.conns[tenantID] {
		targets = append(targets, sess)
	}
	h.mu.RUnlock()

	var failed []*session
	for _, sess := range targets {
		if err := sess.send(event); err != nil {
			h.logger.Debug("dropping dead websocket connection",
				slog.String("tenantId", tenantID.String()),
				slog.Any("error", err),
			)
			failed = append(failed, sess)
		}
	}

	for _, sess := range failed {
		h.Unregister(tenantID, sess.conn)
	}
}
