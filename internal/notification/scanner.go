package notification

import (
	"context"
	"fmt"
	"time"

	"contract-service/internal/logging"
	"contract-service/internal/models"
)

// EventSink receives the events the scanner emits. The factory implements
// it.
type EventSink interface {
	CreateFromEvent(ctx context.Context, ev models.NotificationEvent) (models.Notification, error)
}

// Scanner is the daily expiration job. It walks every non-terminal contract,
// expires the overdue ones, and emits warning events for contracts inside
// their notification window. EXPIRING_SOON deliberately refires on every run
// within the window.
type Scanner struct {
	contracts ContractStore
	sink      EventSink
	logger    *logging.Logger
	now       func() time.Time
}

func NewScanner(contracts ContractStore, sink EventSink, logger *logging.Logger) *Scanner {
	return &Scanner{
		contracts: contracts,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one scan. Per-contract failures are logged and do not stop
// the scan; a failure to list contracts aborts the run and is retried only
// by the next scheduled tick.
func (s *Scanner) Run(ctx context.Context) error {
	contracts, err := s.contracts.ListActiveContracts(ctx)
	if err != nil {
		return fmt.Errorf("expiration scan aborted: %w", err)
	}

	now := s.now()
	var expired, expiring int
	for _, c := range contracts {
		if c.Terminal() {
			continue
		}
		switch {
		case !c.EndDate.After(now):
			if s.expire(ctx, c, now) {
				expired++
			}
		case c.DaysUntilExpiry(now) <= c.NotificationDays:
			if s.warn(ctx, c, now) {
				expiring++
			}
		}
	}

	s.logger.Infof("Expiration scan finished: %d contracts checked, %d expired, %d expiring soon", len(contracts), expired, expiring)
	return nil
}

// expire transitions the contract and emits EXPIRED. The status write comes
// first and stays durable even when event emission fails; status correctness
// outranks notification delivery.
func (s *Scanner) expire(ctx context.Context, c models.Contract, now time.Time) bool {
	if err := s.contracts.MarkContractExpired(ctx, c.ID); err != nil {
		s.logger.Errorf("Failed to expire contract %d: %v", c.ID, err)
		return false
	}

	ev := models.NotificationEvent{
		ContractID: c.ID,
		UserID:     c.OwnerID,
		Kind:       models.EventExpired,
		Message:    fmt.Sprintf("Contract %q has expired.", c.Title),
		OccurredAt: now,
		Meta: models.EventMeta{
			ContractID:    c.ID,
			ContractTitle: c.Title,
			EndDate:       c.EndDate.Format("2006-01-02"),
		},
	}
	if _, err := s.sink.CreateFromEvent(ctx, ev); err != nil {
		s.logger.Errorf("Contract %d expired but event emission failed: %v", c.ID, err)
	}
	return true
}

func (s *Scanner) warn(ctx context.Context, c models.Contract, now time.Time) bool {
	daysLeft := c.DaysUntilExpiry(now)
	ev := models.NotificationEvent{
		ContractID: c.ID,
		UserID:     c.OwnerID,
		Kind:       models.EventExpiringSoon,
		Message:    fmt.Sprintf("Contract %q expires in %d day(s).", c.Title, daysLeft),
		OccurredAt: now,
		Meta: models.EventMeta{
			ContractID:    c.ID,
			ContractTitle: c.Title,
			EndDate:       c.EndDate.Format("2006-01-02"),
			DaysLeft:      daysLeft,
		},
	}
	if _, err := s.sink.CreateFromEvent(ctx, ev); err != nil {
		s.logger.Errorf("Failed to emit expiring-soon event for contract %d: %v", c.ID, err)
		return false
	}
	return true
}
