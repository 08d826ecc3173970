// Package scheduler runs the service's periodic jobs: fixed-interval ticks
// and daily wall-clock triggers. Jobs are named, registered on an explicit
// Service value, and never overlap themselves: a tick that fires while the
// previous run of the same job is still executing is skipped, not queued.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"contract-service/internal/logging"
)

// JobFunc is one run of a periodic job. Errors are logged; the job is
// retried only by its next scheduled tick.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration // fixed-interval jobs
	daily    *TimeOfDay    // daily jobs
	fn       JobFunc
	running  atomic.Bool
}

// TimeOfDay is a local wall-clock trigger time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Service owns every job handle. It is constructed once in main and passed
// by reference; there is no package-level state.
type Service struct {
	logger *logging.Logger
	grace  time.Duration
	jobs   []*job

	// loopCancel stops the tick loops immediately; runCancel aborts
	// in-flight runs only after the grace period so a dispatch in progress
	// can finish instead of being abandoned mid-write.
	loopCancel context.CancelFunc
	runCancel  context.CancelFunc
	wg         sync.WaitGroup
}

func New(logger *logging.Logger, shutdownGrace time.Duration) *Service {
	return &Service{logger: logger, grace: shutdownGrace}
}

// AddInterval registers a job firing every interval.
func (s *Service) AddInterval(name string, interval time.Duration, fn JobFunc) {
	s.jobs = append(s.jobs, &job{name: name, interval: interval, fn: fn})
}

// AddDaily registers a job firing once a day at the given local time.
func (s *Service) AddDaily(name string, at TimeOfDay, fn JobFunc) {
	s.jobs = append(s.jobs, &job{name: name, daily: &at, fn: fn})
}

// Start launches one goroutine per registered job.
func (s *Service) Start() {
	loopCtx, loopCancel := context.WithCancel(context.Background())
	runCtx, runCancel := context.WithCancel(context.Background())
	s.loopCancel = loopCancel
	s.runCancel = runCancel
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runJob(loopCtx, runCtx, j)
	}
	s.logger.Infof("Scheduler started with %d jobs", len(s.jobs))
}

// Stop prevents further ticks and waits up to the shutdown grace period for
// in-flight runs to finish before aborting them.
func (s *Service) Stop() {
	if s.loopCancel != nil {
		s.loopCancel()
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Infof("Scheduler stopped")
	case <-time.After(s.grace):
		s.logger.Warnf("Scheduler shutdown grace of %s elapsed with jobs still running", s.grace)
	}
	if s.runCancel != nil {
		s.runCancel()
	}
}

func (s *Service) runJob(loopCtx, runCtx context.Context, j *job) {
	defer s.wg.Done()
	for {
		wait := j.interval
		if j.daily != nil {
			wait = time.Until(NextDailyRun(time.Now(), *j.daily))
		}
		timer := time.NewTimer(wait)
		select {
		case <-loopCtx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fire(runCtx, j)
		}
	}
}

// fire runs one tick of a job unless its previous run is still executing.
func (s *Service) fire(ctx context.Context, j *job) {
	if !j.running.CompareAndSwap(false, true) {
		s.logger.Warnf("Job %s still running, skipping tick", j.name)
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer j.running.Store(false)
		if err := j.fn(ctx); err != nil {
			s.logger.Errorf("Job %s failed: %v", j.name, err)
		}
	}()
}

// NextDailyRun returns the next occurrence of the wall-clock time strictly
// after now, in now's location.
func NextDailyRun(now time.Time, at TimeOfDay) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour, at.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
