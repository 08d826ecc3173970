package models

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a delivery medium for a notification.
type Channel string

const (
	ChannelInApp  Channel = "inApp"
	ChannelEmail  Channel = "email"
	ChannelSystem Channel = "system"
)

// TaskStatus is the delivery state of a queue entry. sent and failed are
// terminal; a terminal task is never mutated again.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskSent    TaskStatus = "sent"
	TaskFailed  TaskStatus = "failed"
)

// MaxDeliveryAttempts caps retries per delivery task.
const MaxDeliveryAttempts = 3

// DeliveryTask is one queued attempt to deliver one notification on one
// channel. Created by the notification factory, mutated exclusively by the
// queue processor.
type DeliveryTask struct {
	ID             uuid.UUID  `json:"id"`
	NotificationID uuid.UUID  `json:"notification_id"`
	Channel        Channel    `json:"channel"`
	Status         TaskStatus `json:"status"`
	Attempts       int        `json:"attempts"`
	LastError      string     `json:"last_error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
}
