package models

import (
	"time"
)

// ContractStatus is the lifecycle state of a contract. Transitions are
// monotonic except renewed -> active; expired and terminated are terminal
// for expiration purposes.
type ContractStatus string

const (
	ContractDraft      ContractStatus = "draft"
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
	ContractRenewed    ContractStatus = "renewed"
)

// Contract is owned by the CRUD layer; this service only reads it and
// applies the expiration transition.
type Contract struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Status           ContractStatus `json:"status"`
	EndDate          time.Time      `json:"end_date"`
	NotificationDays int            `json:"notification_days"` // 1-90
	OwnerID          int64          `json:"owner_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Terminal reports whether the contract can no longer expire.
func (c Contract) Terminal() bool {
	return c.Status == ContractExpired || c.Status == ContractTerminated
}

// DaysUntilExpiry returns the number of whole-or-partial days between now
// and the contract end date, rounded up.
func (c Contract) DaysUntilExpiry(now time.Time) int {
	remaining := c.EndDate.Sub(now)
	days := remaining / (24 * time.Hour)
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}
