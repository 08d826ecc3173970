// Package dispatch contains the per-channel delivery implementations invoked
// by the queue processor.
package dispatch

import (
	"context"

	"contract-service/internal/models"
)

// Dispatcher attempts delivery of one notification on one channel. Errors
// are counted as failed attempts by the queue processor; a Dispatcher never
// retries on its own.
type Dispatcher interface {
	Dispatch(ctx context.Context, n models.Notification) error
}
