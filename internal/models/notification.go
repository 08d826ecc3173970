package models

import (
	"time"

	"github.com/google/uuid"
)

// RetentionDays is how long a read notification is kept before the cleanup
// job may delete it.
const RetentionDays = 30

// Notification is the persisted in-app record created by the factory.
// It is mutated only by the mark-read endpoints and deleted by the cleanup
// job once read and past retention.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Kind      EventKind `json:"kind"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Meta      EventMeta `json:"metadata"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CategoryFor maps an event kind to the coarse category shown in the UI.
func CategoryFor(kind EventKind) string {
	switch kind {
	case EventExpiringSoon, EventExpired:
		return "expiration"
	case EventStatusChange:
		return "status"
	case EventRenewalReminder:
		return "renewal"
	case EventDocumentUpdate:
		return "document"
	default:
		return "general"
	}
}
