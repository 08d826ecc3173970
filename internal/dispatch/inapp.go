package dispatch

import (
	"context"

	"contract-service/internal/models"
)

// InApp is the in-app channel. Delivery equals existence: the notification
// row written by the factory is the artifact the UI reads, so there is
// nothing left to do here.
type InApp struct{}

func (InApp) Dispatch(ctx context.Context, n models.Notification) error {
	return nil
}
