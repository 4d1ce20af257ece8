// Package service is the application layer shared by the HTTP and MCP
// transports: it resolves CRM entities, runs the scoring engine, records
// predictions and drives background rescoring.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/revintel/internal/adapters/mq/queue"
	"github.com/okian/revintel/internal/adapters/mq/worker"
	"github.com/okian/revintel/internal/adapters/predictionlog"
	"github.com/okian/revintel/internal/adapters/ranking"
	"github.com/okian/revintel/internal/adapters/repository"
	"github.com/okian/revintel/internal/domain/dedupe"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/logger"
)

const (
	defaultTopLeads    = 10
	defaultMaxTopLeads = 100
	defaultLogLimit    = 100
)

// Service owns the scoring engine and every adapter it talks to.
type Service struct {
	engine   *scoring.Engine
	repo     repository.Store
	log      predictionlog.Log
	ranking  *ranking.Store
	validate *validator.Validate
	logger   logger.Logger
	now      func() time.Time

	workerCount int
	queueSize   int
	dedupeSize  int
	maxTopLeads int

	mu        sync.RWMutex
	started   bool
	startedAt time.Time
	queue     *queue.InMemoryQueue
	pool      *worker.Pool
	deduper   dedupe.Deduper
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRepository sets the CRM store. Defaults to the seeded in-memory store.
func WithRepository(r repository.Store) Option {
	return func(s *Service) {
		if r != nil {
			s.repo = r
		}
	}
}

// WithPredictionLog sets the prediction log. Defaults to an in-memory log.
func WithPredictionLog(l predictionlog.Log) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithWorkerCount sets the number of rescoring workers.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithQueueSize sets the rescoring queue capacity.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithDedupeSize bounds the in-flight job set.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeSize = n
		}
	}
}

// WithMaxTopLeads caps the limit accepted by TopLeads.
func WithMaxTopLeads(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopLeads = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for uptime and health windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service around engine.
func New(engine *scoring.Engine, opts ...Option) *Service {
	s := &Service{
		engine:      engine,
		ranking:     ranking.NewStore(),
		validate:    newValidator(),
		now:         time.Now,
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
		dedupeSize:  10000,
		maxTopLeads: defaultMaxTopLeads,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.repo == nil {
		s.repo = repository.NewMemoryStore()
	}
	if s.log == nil {
		s.log = predictionlog.NewMemoryLog(predictionlog.WithClock(s.now))
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.startedAt = s.now()
	return s
}

// Start launches the rescoring worker pool. Scoring calls work without it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s, worker.WithPoolLogger(s.logger.Named("rescore")))
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.String("model_version", s.engine.ModelVersion()),
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
	)
	return nil
}

// Stop drains the rescoring queue and closes the prediction log.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	if s.started {
		if err := s.pool.Shutdown(ctx); err != nil {
			firstErr = err
			s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
		}
		s.started = false
	}
	if err := s.log.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	s.logger.Info(ctx, "service stopped")
	return firstErr
}

// Engine returns the scoring engine.
func (s *Service) Engine() *scoring.Engine {
	return s.engine
}
