package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-service/internal/logging"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:00", want: TimeOfDay{Hour: 9, Minute: 0}},
		{in: "03:30", want: TimeOfDay{Hour: 3, Minute: 30}},
		{in: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "nope", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNextDailyRun(t *testing.T) {
	at := TimeOfDay{Hour: 9, Minute: 0}

	before := time.Date(2026, 6, 15, 8, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC), NextDailyRun(before, at))

	after := time.Date(2026, 6, 15, 9, 0, 1, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 16, 9, 0, 0, 0, time.UTC), NextDailyRun(after, at))

	exactly := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 16, 9, 0, 0, 0, time.UTC), NextDailyRun(exactly, at))
}

func TestIntervalJobFires(t *testing.T) {
	var runs atomic.Int32
	s := New(logging.NewNop(), time.Second)
	s.AddInterval("counter", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestSlowJobSkipsOverlappingTicks(t *testing.T) {
	var started atomic.Int32
	release := make(chan struct{})
	s := New(logging.NewNop(), time.Second)
	s.AddInterval("slow", 10*time.Millisecond, func(ctx context.Context) error {
		started.Add(1)
		<-release
		return nil
	})
	s.Start()
	time.Sleep(100 * time.Millisecond)

	// Many ticks elapsed while the first run was blocked; none may stack.
	assert.Equal(t, int32(1), started.Load())
	close(release)
	s.Stop()
}

func TestIndependentJobsRunConcurrently(t *testing.T) {
	var fast atomic.Int32
	blocked := make(chan struct{})
	s := New(logging.NewNop(), time.Second)
	s.AddInterval("blocked", 10*time.Millisecond, func(ctx context.Context) error {
		<-blocked
		return nil
	})
	s.AddInterval("fast", 10*time.Millisecond, func(ctx context.Context) error {
		fast.Add(1)
		return nil
	})
	s.Start()
	time.Sleep(100 * time.Millisecond)

	// One job being stuck must not starve the other.
	assert.GreaterOrEqual(t, fast.Load(), int32(3))
	close(blocked)
	s.Stop()
}

func TestStopHonorsGracePeriod(t *testing.T) {
	s := New(logging.NewNop(), 50*time.Millisecond)
	s.AddInterval("stuck", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(10 * time.Second) // ignores cancellation
		return nil
	})
	s.Start()
	time.Sleep(30 * time.Millisecond)

	start := time.Now()
	s.Stop()
	elapsed := time.Since(start)
	assert.Less(t, elapsed, time.Second, "Stop must give up after the grace period")
}
