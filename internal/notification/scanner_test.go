package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-service/internal/logging"
	"contract-service/internal/models"
)

var scanNow = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestScanner(store *memStore, sink EventSink) *Scanner {
	s := NewScanner(store, sink, logging.NewNop())
	s.now = func() time.Time { return scanNow }
	return s
}

func TestScannerExpiresOverdueContracts(t *testing.T) {
	store := newMemStore()
	store.addContract(models.Contract{
		ID:               1,
		Title:            "Overdue",
		Status:           models.ContractActive,
		EndDate:          scanNow.Add(-time.Hour),
		NotificationDays: 30,
		OwnerID:          10,
	})
	sink := &recordingSink{}

	require.NoError(t, newTestScanner(store, sink).Run(context.Background()))

	assert.Equal(t, models.ContractExpired, store.contracts[1].Status)
	require.Len(t, sink.events, 1)
	assert.Equal(t, models.EventExpired, sink.events[0].Kind)
	assert.Equal(t, int64(10), sink.events[0].UserID)
}

func TestScannerIdempotentOnExpiredContract(t *testing.T) {
	store := newMemStore()
	store.addContract(models.Contract{
		ID:      2,
		Status:  models.ContractExpired,
		EndDate: scanNow.Add(-48 * time.Hour),
		OwnerID: 10,
	})
	sink := &recordingSink{}

	require.NoError(t, newTestScanner(store, sink).Run(context.Background()))

	assert.Zero(t, store.contractWrites)
	assert.Empty(t, sink.events)
}

func TestScannerEmitsExpiringSoonInsideWindow(t *testing.T) {
	store := newMemStore()
	store.addContract(models.Contract{
		ID:               3,
		Title:            "Soon",
		Status:           models.ContractActive,
		EndDate:          scanNow.Add(3 * 24 * time.Hour),
		NotificationDays: 30,
		OwnerID:          10,
	})
	store.addContract(models.Contract{
		ID:               4,
		Title:            "Far out",
		Status:           models.ContractActive,
		EndDate:          scanNow.Add(60 * 24 * time.Hour),
		NotificationDays: 30,
		OwnerID:          10,
	})
	sink := &recordingSink{}
	scanner := newTestScanner(store, sink)

	require.NoError(t, scanner.Run(context.Background()))
	require.Len(t, sink.events, 1)
	assert.Equal(t, models.EventExpiringSoon, sink.events[0].Kind)
	assert.Equal(t, 3, sink.events[0].Meta.DaysLeft)
	assert.Equal(t, models.ContractActive, store.contracts[3].Status)

	// The warning refires on every scan inside the window.
	require.NoError(t, scanner.Run(context.Background()))
	assert.Equal(t, []models.EventKind{models.EventExpiringSoon, models.EventExpiringSoon}, sink.kinds())
}

func TestScannerWindowBoundary(t *testing.T) {
	store := newMemStore()
	// Exactly notificationDays out: still inside the window (<=).
	store.addContract(models.Contract{
		ID:               5,
		Status:           models.ContractActive,
		EndDate:          scanNow.Add(30 * 24 * time.Hour),
		NotificationDays: 30,
		OwnerID:          10,
	})
	sink := &recordingSink{}

	require.NoError(t, newTestScanner(store, sink).Run(context.Background()))
	assert.Equal(t, []models.EventKind{models.EventExpiringSoon}, sink.kinds())
}

func TestScannerStatusWriteSurvivesEmissionFailure(t *testing.T) {
	store := newMemStore()
	store.addContract(models.Contract{
		ID:      6,
		Status:  models.ContractActive,
		EndDate: scanNow.Add(-time.Hour),
		OwnerID: 10,
	})
	sink := &recordingSink{err: errors.New("factory down")}

	require.NoError(t, newTestScanner(store, sink).Run(context.Background()))
	assert.Equal(t, models.ContractExpired, store.contracts[6].Status)
}

func TestScannerAbortsWhenStoreUnavailable(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("store unavailable")
	sink := &recordingSink{}

	err := newTestScanner(store, sink).Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, sink.events)
}
