// Package scheduler runs named jobs once a day at a configured local time.
// Jobs can be rescheduled at runtime when an admin changes an announcement
// time.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Job is a scheduled unit of work.
type Job func(ctx context.Context)

type entry struct {
	stop chan struct{}
}

// Scheduler manages daily jobs keyed by name.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[string]*entry
	now  func() time.Time
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		jobs: make(map[string]*entry),
		now:  time.Now,
	}
}

// Schedule runs fn every day at the given "HH:MM" local time. Scheduling a
// name that already exists replaces the old schedule.
func (s *Scheduler) Schedule(name, at string, fn Job) error {
	hour, minute, err := ParseTime(at)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.jobs[name]; ok {
		close(old.stop)
	}
	e := &entry{stop: make(chan struct{})}
	s.jobs[name] = e

	go s.run(name, hour, minute, fn, e.stop)

	log.Info().Str("job", name).Str("at", at).Msg("Daily job scheduled")
	return nil
}

// Remove cancels the named job if it is scheduled.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.jobs[name]; ok {
		close(e.stop)
		delete(s.jobs, name)
		log.Info().Str("job", name).Msg("Daily job removed")
	}
}

// Stop cancels all scheduled jobs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, e := range s.jobs {
		close(e.stop)
		delete(s.jobs, name)
	}
}

func (s *Scheduler) run(name string, hour, minute int, fn Job, stop <-chan struct{}) {
	for {
		now := s.now()
		d := NextRun(now, hour, minute).Sub(now)
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
			log.Info().Str("job", name).Msg("Running daily job")
			fn(context.Background())
		case <-stop:
			timer.Stop()
			return
		}
	}
}

// NextRun returns the next occurrence of hour:minute strictly after now.
func NextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// ParseTime parses an "HH:MM" string.
func ParseTime(at string) (hour, minute int, err error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", at)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", at)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", at)
	}
	return hour, minute, nil
}
