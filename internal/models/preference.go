package models

import (
	"time"
)

// PreferenceRecord stores which channels a user has enabled for one event
// kind. Absence of a record means "all enabled": the resolver synthesizes
// and persists the default rather than dropping the notification.
type PreferenceRecord struct {
	UserID    int64     `json:"user_id"`
	Kind      EventKind `json:"kind"`
	Email     bool      `json:"email"`
	InApp     bool      `json:"in_app"`
	System    bool      `json:"system"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPreference returns the all-enabled record for (userID, kind).
func DefaultPreference(userID int64, kind EventKind) PreferenceRecord {
	return PreferenceRecord{
		UserID: userID,
		Kind:   kind,
		Email:  true,
		InApp:  true,
		System: true,
	}
}

// EnabledChannels lists the channels this record allows, in dispatch order.
func (p PreferenceRecord) EnabledChannels() []Channel {
	var channels []Channel
	if p.InApp {
		channels = append(channels, ChannelInApp)
	}
	if p.Email {
		channels = append(channels, ChannelEmail)
	}
	if p.System {
		channels = append(channels, ChannelSystem)
	}
	return channels
}
