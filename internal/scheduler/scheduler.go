// Package scheduler runs named background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okian/revintel/pkg/logger"
	"github.com/okian/revintel/pkg/metrics"
)

// JobFunc is one run of a scheduled job.
type JobFunc func(ctx context.Context) error

type job struct {
	name  string
	spec  string
	fn    JobFunc
	entry cron.EntryID
}

// Scheduler wraps a seconds-precision cron. Overlapping runs of the same job
// are skipped.
type Scheduler struct {
	cron    *cron.Cron
	logger  logger.Logger
	timeout time.Duration

	mu      sync.Mutex
	jobs    map[string]*job
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithJobTimeout bounds each run. Zero disables the bound.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// New creates a stopped scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		jobs:    make(map[string]*job),
		timeout: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("scheduler")
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	cl := cronLogger{l: s.logger}
	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return s
}

// Add registers fn under name with a six-field cron spec (seconds first) or
// a descriptor such as "@every 5m". An empty spec leaves the job registered
// for Trigger only.
func (s *Scheduler) Add(name, spec string, fn JobFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: name and func are required", ErrInvalidJob)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	j := &job{name: name, spec: spec, fn: fn}
	if spec != "" {
		id, err := s.cron.AddFunc(spec, func() { s.run(s.ctx, j) })
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidJob, name, err)
		}
		j.entry = id
	}
	s.jobs[name] = j
	s.logger.Info(context.Background(), "job registered", logger.String("job", name), logger.String("schedule", spec))
	return nil
}

// Trigger runs a registered job now, on the caller's goroutine.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.run(ctx, j)
}

// Next returns the next scheduled run of a job, zero if it is not scheduled
// or the scheduler is stopped.
func (s *Scheduler) Next(name string) time.Time {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok || j.entry == 0 {
		return time.Time{}
	}
	return s.cron.Entry(j.entry).Next
}

// Start begins firing scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.logger.Info(context.Background(), "scheduler started", logger.Int("jobs", len(s.jobs)))
}

// Stop stops firing jobs, cancels running ones and waits for them to
// return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	stopCtx := s.cron.Stop()
	s.cancel()

	select {
	case <-stopCtx.Done():
		s.logger.Info(ctx, "scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn(ctx, "scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context, j *job) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := j.fn(ctx)
	if err != nil {
		metrics.RecordScheduledRun(j.name, "error")
		s.logger.Error(ctx, "scheduled job failed",
			logger.String("job", j.name),
			logger.Duration("took", time.Since(start)),
			logger.Error(err),
		)
		return err
	}
	metrics.RecordScheduledRun(j.name, "ok")
	s.logger.Debug(ctx, "scheduled job finished", logger.String("job", j.name), logger.Duration("took", time.Since(start)))
	return nil
}

// cronLogger adapts Logger to cron.Logger.
type cronLogger struct {
	l logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(context.Background(), "cron: "+msg, fields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(context.Background(), "cron: "+msg, append(fields(keysAndValues), logger.Error(err))...)
}

func fields(kv []any) []logger.Field {
	out := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logger.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
