// Package worker runs rescoring jobs pulled from the queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/logger"
	"github.com/okian/revintel/pkg/metrics"
)

const defaultShutdownTimeout = 30 * time.Second

// Job is what workers read off the queue.
type Job = model.Job

// Processor does the work of one job.
type Processor interface {
	Process(ctx context.Context, j Job) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// InMemoryWorker pulls jobs and hands them to a Processor.
type InMemoryWorker struct {
	queue     Queue
	processor Processor
	name      string
	logger    logger.Logger
	done      chan struct{}
}

// NewInMemoryWorker creates a worker reading from q.
func NewInMemoryWorker(q Queue, p Processor, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		processor: p,
		name:      "worker",
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes jobs until the queue is drained and closed or ctx is done.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	for j := range w.queue.Dequeue(ctx) {
		w.process(ctx, j)
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) process(ctx context.Context, j Job) {
	start := time.Now()
	err := w.processor.Process(ctx, j)
	metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordJobProcessed(string(j.Kind), "error")
		metrics.RecordErrorByComponent("worker", "process_error")
		w.logger.Error(ctx, "job failed",
			logger.String("job_id", j.ID),
			logger.String("kind", string(j.Kind)),
			logger.String("entity_id", j.EntityID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordJobProcessed(string(j.Kind), "ok")
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers         []*InMemoryWorker
	queue           Queue
	logger          logger.Logger
	shutdownTimeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPool creates workerCount workers. A count below one uses the number
// of CPUs.
func NewPool(workerCount int, q Queue, p Processor, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	pool := &Pool{
		workers:         make([]*InMemoryWorker, workerCount),
		queue:           q,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(pool)
	}
	if pool.logger == nil {
		pool.logger = logger.Get().Named("worker-pool")
	}
	for i := range pool.workers {
		name := "worker-" + strconv.Itoa(i)
		pool.workers[i] = NewInMemoryWorker(q, p, WithName(name), WithLogger(pool.logger.Named(name)))
	}
	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start launches every worker. Workers stop when ctx is done or the queue
// is closed and drained.
func (p *Pool) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	for _, w := range p.workers {
		go w.Run(runCtx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue and waits for workers to drain it. Workers still
// busy when ctx or the shutdown timeout expires are cancelled.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	waitCtx, cancelWait := context.WithTimeout(ctx, p.shutdownTimeout)
	defer cancelWait()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-waitCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
		if timedOut {
			break
		}
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	metrics.UpdateWorkerCount(0)

	if timedOut {
		return fmt.Errorf("worker pool shutdown: %w", waitCtx.Err())
	}
	return nil
}
