package models

import (
	"time"
)

// EventKind identifies the domain occurrence behind a notification. The set
// is closed; dispatch and template code switch on it exhaustively.
type EventKind string

const (
	EventExpiringSoon    EventKind = "EXPIRING_SOON"
	EventExpired         EventKind = "EXPIRED"
	EventStatusChange    EventKind = "STATUS_CHANGE"
	EventRenewalReminder EventKind = "RENEWAL_REMINDER"
	EventDocumentUpdate  EventKind = "DOCUMENT_UPDATE"
)

// Valid reports whether k is one of the known kinds.
func (k EventKind) Valid() bool {
	switch k {
	case EventExpiringSoon, EventExpired, EventStatusChange,
		EventRenewalReminder, EventDocumentUpdate:
		return true
	}
	return false
}

// EventMeta carries kind-specific context for template rendering. Fields not
// relevant to a kind stay zero and are omitted from JSON.
type EventMeta struct {
	ContractID    int64  `json:"contract_id,omitempty"`
	ContractTitle string `json:"contract_title,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	DaysLeft      int    `json:"days_left,omitempty"`
	OldStatus     string `json:"old_status,omitempty"`
	NewStatus     string `json:"new_status,omitempty"`
	DocumentName  string `json:"document_name,omitempty"`
}

// NotificationEvent is the value handed to the notification factory. It is
// produced by the expiration scanner or by domain actions arriving over
// Kafka, and is never persisted as-is.
type NotificationEvent struct {
	ContractID int64     `json:"contract_id"`
	UserID     int64     `json:"user_id"`
	Kind       EventKind `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
	Meta       EventMeta `json:"metadata"`
}
