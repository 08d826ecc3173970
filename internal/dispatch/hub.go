package dispatch

import (
	"sync"

	"github.com/gorilla/websocket"

	"contract-service/internal/logging"
)

const maxConnectionsPerUser = 10

// Hub tracks open WebSocket sessions per user for the system channel.
type Hub struct {
	connections map[int64]map[*websocket.Conn]bool
	mutex       sync.Mutex
	logger      *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		connections: make(map[int64]map[*websocket.Conn]bool),
		logger:      logger,
	}
}

// Add registers a connection for a user.
func (h *Hub) Add(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, exists := h.connections[userID]; !exists {
		h.connections[userID] = make(map[*websocket.Conn]bool)
	}
	if len(h.connections[userID]) >= maxConnectionsPerUser {
		h.logger.Warnf("Max connections reached for user %d", userID)
		return
	}
	h.connections[userID][conn] = true
	h.logger.Infof("Added WebSocket connection for user %d (total: %d)", userID, len(h.connections[userID]))
}

// Remove drops a connection for a user.
func (h *Hub) Remove(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if conns, exists := h.connections[userID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.connections, userID)
		}
		h.logger.Infof("Removed WebSocket connection for user %d (remaining: %d)", userID, len(conns))
	}
}

// SendToUser pushes a message to every open session of a user. Write
// failures evict the broken connection; they are not reported to the caller.
func (h *Hub) SendToUser(userID int64, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	conns, exists := h.connections[userID]
	if !exists {
		return
	}
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Errorf("Failed to send WebSocket message to user %d: %v", userID, err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.connections, userID)
	}
}
