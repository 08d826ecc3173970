package notification

import (
	"context"
	"errors"
	"fmt"

	"contract-service/internal/db"
	"contract-service/internal/models"
)

// Resolver answers which channels are enabled for a (user, event kind)
// pair. A missing record is synthesized as all-enabled and persisted, so a
// user without explicit preferences never silently loses notifications.
type Resolver struct {
	prefs PreferenceStore
}

func NewResolver(prefs PreferenceStore) *Resolver {
	return &Resolver{prefs: prefs}
}

func (r *Resolver) Resolve(ctx context.Context, userID int64, kind models.EventKind) (models.PreferenceRecord, error) {
	p, err := r.prefs.GetPreference(ctx, userID, kind)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return models.PreferenceRecord{}, fmt.Errorf("failed to resolve preference: %w", err)
	}

	p = models.DefaultPreference(userID, kind)
	if err := r.prefs.UpsertPreference(ctx, p); err != nil {
		return models.PreferenceRecord{}, fmt.Errorf("failed to persist default preference: %w", err)
	}
	return p, nil
}
