package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"contract-service/internal/dispatch"
	"contract-service/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks belong to the auth middleware owned by the CRUD layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades client sessions into the system-channel hub.
type WSHandler struct {
	hub    *dispatch.Hub
	logger *logging.Logger
}

func NewWSHandler(hub *dispatch.Hub, logger *logging.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

func (h *WSHandler) Serve(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed for user %d: %v", userID, err)
		return
	}

	h.hub.Add(userID, conn)
	go func() {
		defer func() {
			h.hub.Remove(userID, conn)
			conn.Close()
		}()
		// Drain until the client goes away; pushes flow the other way.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
