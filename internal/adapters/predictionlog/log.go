// Package predictionlog is the append-only record of predictions served,
// kept in memory or in a bbolt file.
package predictionlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/revintel/internal/domain/model"
)

// Log stores prediction records. Appends are serialized; reads return copies.
type Log interface {
	// Append stores rec and returns its id. Missing ids and timestamps are
	// filled in.
	Append(ctx context.Context, rec model.PredictionRecord) (string, error)
	// Recent returns the records stamped at or after since, oldest first.
	Recent(ctx context.Context, since time.Time) ([]model.PredictionRecord, error)
	// Query returns records matching f, newest first.
	Query(ctx context.Context, f Filter) ([]model.PredictionRecord, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Filter narrows a Query. A zero Type matches every type and a Limit of
// zero or less returns every match.
type Filter struct {
	Type  model.PredictionType
	Limit int
}

func (f Filter) matches(r model.PredictionRecord) bool {
	return f.Type == "" || r.Type == f.Type
}

func (f Filter) full(n int) bool {
	return f.Limit > 0 && n >= f.Limit
}

// Option configures a Log implementation.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// prepare validates rec and fills defaults. The returned record shares no
// memory with the caller's.
func prepare(rec model.PredictionRecord, now func() time.Time) (model.PredictionRecord, error) {
	if !rec.Type.Valid() {
		return rec, fmt.Errorf("%w: unknown prediction type %q", ErrInvalidRecord, rec.Type)
	}
	out := rec.Clone()
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.Timestamp.IsZero() {
		out.Timestamp = now()
	}
	out.Timestamp = out.Timestamp.UTC()
	return out, nil
}
