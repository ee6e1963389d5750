package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/premiumhub/pkg/logger"
)

// Job is a unit of periodic work.
type Job func(ctx context.Context) error

// Clock returns the current time.
type Clock func() time.Time

// AfterFunc returns a channel that fires after d. Tests replace it to drive
// ticks without waiting on the wall clock.
type AfterFunc func(d time.Duration) <-chan time.Time

type entry struct {
	name     string
	schedule Schedule
	job      Job
}

// Scheduler runs registered jobs on their schedules until the context is done.
type Scheduler struct {
	log   *slog.Logger
	now   Clock
	after AfterFunc

	mu      sync.Mutex
	entries []entry
	running bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.now = c
		}
	}
}

// WithAfterFunc overrides how the scheduler waits between runs.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.after = f
		}
	}
}

// New creates an empty Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		log:   logger.Discard(),
		now:   func() time.Time { return time.Now().UTC() },
		after: time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers job under name. Jobs cannot be added once Run has started.
func (s *Scheduler) Add(name string, schedule Schedule, job Job) error {
	if name == "" || schedule == nil || job == nil {
		return ErrInvalidJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	for _, e := range s.entries {
		if e.name == name {
			return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
		}
	}
	s.entries = append(s.entries, entry{name: name, schedule: schedule, job: job})
	return nil
}

// Run blocks until ctx is cancelled, running each job on its schedule.
// Jobs run in their own goroutine; a failing job is logged and keeps its schedule.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return ErrNoJobs
	}
	s.running = true
	entries := append([]entry(nil), s.entries...)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	var wg sync.WaitGroup
	for _, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, e)
		}()
	}
	wg.Wait()

	return nil
}

func (s *Scheduler) loop(ctx context.Context, e entry) {
	log := s.log.With(slog.String("job", e.name), slog.String("schedule", e.schedule.String()))
	log.InfoContext(ctx, "scheduled job registered", slog.Time("next_run", e.schedule.Next(s.now())))

	for {
		now := s.now()
		wait := max(e.schedule.Next(now).Sub(now), 0)

		select {
		case <-ctx.Done():
			return
		case <-s.after(wait):
		}

		s.runOnce(ctx, log, e)
	}
}

func (s *Scheduler) runOnce(ctx context.Context, log *slog.Logger, e entry) {
	start := s.now()
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "scheduled job panicked", slog.Any("panic", r))
		}
	}()

	if err := e.job(ctx); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		log.ErrorContext(ctx, "scheduled job failed", logger.Error(err), logger.Duration(s.now().Sub(start)))
		return
	}
	log.InfoContext(ctx, "scheduled job finished", logger.Duration(s.now().Sub(start)))
}
