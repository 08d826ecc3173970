package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"contract-service/internal/models"
)

// System pushes notifications to open client sessions. Delivery is
// best-effort: a user with no active session still counts as delivered.
type System struct {
	hub *Hub
}

func NewSystem(hub *Hub) *System {
	return &System{hub: hub}
}

func (s *System) Dispatch(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification %s: %w", n.ID, err)
	}
	s.hub.SendToUser(n.UserID, payload)
	return nil
}
