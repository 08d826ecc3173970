package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contract-service/internal/db"
	"contract-service/internal/logging"
	"contract-service/internal/models"
)

// Store is the slice of the data store the REST surface reads and writes.
type Store interface {
	ListNotificationsByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error)
	ListPreferencesByUser(ctx context.Context, userID int64) ([]models.PreferenceRecord, error)
	UpsertPreference(ctx context.Context, p models.PreferenceRecord) error
}

type Handler struct {
	db     Store
	logger *logging.Logger
}

func NewHandler(db Store, logger *logging.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

func (h *Handler) GetNotificationsByUserID(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := h.db.ListNotificationsByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Errorf("Failed to list notifications for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	count, err := h.db.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to count unread notifications for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	if err := h.db.MarkNotificationRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.logger.Errorf("Failed to mark notification %s read: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	updated, err := h.db.MarkAllNotificationsRead(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to mark notifications read for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) GetPreferencesByUserID(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	prefs, err := h.db.ListPreferencesByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to list preferences for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get preferences"})
		return
	}
	if prefs == nil {
		prefs = []models.PreferenceRecord{}
	}
	c.JSON(http.StatusOK, prefs)
}

type preferenceUpdate struct {
	Kind   models.EventKind `json:"kind" binding:"required"`
	Email  *bool            `json:"email" binding:"required"`
	InApp  *bool            `json:"in_app" binding:"required"`
	System *bool            `json:"system" binding:"required"`
}

func (h *Handler) UpdatePreference(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	var body preferenceUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !body.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event kind"})
		return
	}

	record := models.PreferenceRecord{
		UserID: userID,
		Kind:   body.Kind,
		Email:  *body.Email,
		InApp:  *body.InApp,
		System: *body.System,
	}
	if err := h.db.UpsertPreference(c.Request.Context(), record); err != nil {
		h.logger.Errorf("Failed to update preference for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preference"})
		return
	}

	h.logger.Infof("Updated %s preference for user %d", body.Kind, userID)
	c.JSON(http.StatusOK, record)
}
