package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is one scheduled unit of work. It must respect ctx cancellation.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	run      JobFunc
}

// Scheduler runs registered jobs on fixed intervals. Each job gets its own
// goroutine and an immediate first run at Start, so work missed while the
// process was down is picked up at boot.
type Scheduler struct {
	mu      sync.Mutex
	jobs    map[string]job
	started bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a named job. Panics on a duplicate name or registration
// after Start: both are wiring mistakes, not runtime conditions.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		panic(fmt.Sprintf("cron: job %q registered after Start", name))
	}
	if _, exists := s.jobs[name]; exists {
		panic(fmt.Sprintf("cron: duplicate job name %q", name))
	}
	s.jobs[name] = job{name: name, interval: interval, run: fn}
	slog.Info("cron job registered",
		slog.String("job", name), slog.Duration("interval", interval))
}

// Start launches every registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = true
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("cron scheduler started", slog.Int("jobs", len(s.jobs)))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("cron scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.execute(j)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(j)
		}
	}
}

// execute runs one job, containing panics so a faulty job cannot take the
// process down with it.
func (s *Scheduler) execute(j job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("cron job panicked",
				slog.String("job", j.name), slog.Any("panic", r))
		}
	}()

	start := time.Now()
	if err := j.run(s.ctx); err != nil {
		slog.Error("cron job failed",
			slog.String("job", j.name),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err))
		return
	}
	slog.Debug("cron job completed",
		slog.String("job", j.name), slog.Duration("took", time.Since(start)))
}

// RunOnce executes every registered job a single time, returning the first
// error. Used in tests and for one-shot invocations.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.run(ctx); err != nil {
			return fmt.Errorf("job %q: %w", j.name, err)
		}
	}
	return nil
}
