package worker

import (
	"time"

	"github.com/okian/revintel/pkg/logger"
)

// Option configures an InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets the worker logger.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithPoolLogger sets the logger the pool and its workers derive from.
func WithPoolLogger(l logger.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for queued jobs.
func WithShutdownTimeout(d time.Duration) PoolOption {
	return func(p *Pool) {
		if d > 0 {
			p.shutdownTimeout = d
		}
	}
}
