package api

import (
	"github.com/gin-gonic/gin"

	"contract-service/internal/config"
	"contract-service/internal/dispatch"
	"contract-service/internal/logging"
)

func NewRouter(db Store, hub *dispatch.Hub, logger *logging.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(db, logger)
	ws := NewWSHandler(hub, logger)

	api := r.Group(cfg.API.BasePath)
	{
		// Notifications
		api.GET("/notifications/user/:user_id", h.GetNotificationsByUserID)
		api.GET("/notifications/user/:user_id/unread-count", h.GetUnreadCount)
		api.PATCH("/notifications/:id/read", h.MarkNotificationRead)
		api.PATCH("/notifications/user/:user_id/read-all", h.MarkAllNotificationsRead)

		// Preferences
		api.GET("/preferences/user/:user_id", h.GetPreferencesByUserID)
		api.PUT("/preferences/user/:user_id", h.UpdatePreference)
	}

	// System-channel sessions
	r.GET("/ws/:user_id", ws.Serve)

	return r
}
