package predictionlog

import (
	"context"
	"sync"
	"time"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/metrics"
)

// MemoryLog keeps records in a slice guarded by a mutex.
type MemoryLog struct {
	mu      sync.RWMutex
	records []model.PredictionRecord
	closed  bool
	opts    options
}

var _ Log = (*MemoryLog)(nil)

// NewMemoryLog returns an empty in-memory log.
func NewMemoryLog(opts ...Option) *MemoryLog {
	return &MemoryLog{opts: buildOptions(opts)}
}

func (l *MemoryLog) Append(ctx context.Context, rec model.PredictionRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := prepare(rec, l.opts.now)
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return "", ErrClosed
	}
	l.records = append(l.records, out)
	n := len(l.records)
	l.mu.Unlock()

	metrics.RecordLogAppend()
	metrics.UpdateLogSize(n)
	return out.ID, nil
}

func (l *MemoryLog) Recent(ctx context.Context, since time.Time) ([]model.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrClosed
	}

	out := make([]model.PredictionRecord, 0)
	for _, r := range l.records {
		if !r.Timestamp.Before(since) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (l *MemoryLog) Query(ctx context.Context, f Filter) ([]model.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrClosed
	}

	out := make([]model.PredictionRecord, 0)
	for i := len(l.records) - 1; i >= 0 && !f.full(len(out)); i-- {
		if f.matches(l.records[i]) {
			out = append(out, l.records[i].Clone())
		}
	}
	return out, nil
}

func (l *MemoryLog) Count(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return 0, ErrClosed
	}
	return len(l.records), nil
}

func (l *MemoryLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.records = nil
	return nil
}
