package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntilExpiryRoundsUp(t *testing.T) {
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		endDate time.Time
		want    int
	}{
		{"exactly 3 days", now.Add(3 * 24 * time.Hour), 3},
		{"partial day rounds up", now.Add(2*24*time.Hour + time.Hour), 3},
		{"one hour left", now.Add(time.Hour), 1},
		{"already past", now.Add(-time.Hour), 0},
		{"exactly now", now, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contract{EndDate: tt.endDate}
			assert.Equal(t, tt.want, c.DaysUntilExpiry(now))
		})
	}
}

func TestContractTerminal(t *testing.T) {
	assert.True(t, Contract{Status: ContractExpired}.Terminal())
	assert.True(t, Contract{Status: ContractTerminated}.Terminal())
	assert.False(t, Contract{Status: ContractActive}.Terminal())
	assert.False(t, Contract{Status: ContractDraft}.Terminal())
	assert.False(t, Contract{Status: ContractRenewed}.Terminal())
}

func TestEnabledChannelsBySelection(t *testing.T) {
	p := PreferenceRecord{Email: true, InApp: false, System: true}
	assert.Equal(t, []Channel{ChannelEmail, ChannelSystem}, p.EnabledChannels())

	none := PreferenceRecord{}
	assert.Empty(t, none.EnabledChannels())

	all := DefaultPreference(1, EventExpired)
	assert.Len(t, all.EnabledChannels(), 3)
}

func TestEventKindValid(t *testing.T) {
	for _, k := range []EventKind{EventExpiringSoon, EventExpired, EventStatusChange, EventRenewalReminder, EventDocumentUpdate} {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, EventKind("OTHER").Valid())
}
