package predictionlog

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/metrics"
)

var bucketPredictions = []byte("predictions")

// BoltLog persists records in a bbolt file, one JSON value per record keyed
// by a big-endian sequence number so cursor order is append order. Records
// are never deleted, so the bucket sequence doubles as the record count.
type BoltLog struct {
	db   *bbolt.DB
	opts options
}

var _ Log = (*BoltLog)(nil)

// OpenBoltLog opens or creates the log file at path.
func OpenBoltLog(path string, opts ...Option) (*BoltLog, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open prediction log %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPredictions)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	l := &BoltLog{db: db, opts: buildOptions(opts)}
	if n, err := l.Count(context.Background()); err == nil {
		metrics.UpdateLogSize(n)
	}
	return l, nil
}

func (l *BoltLog) Append(ctx context.Context, rec model.PredictionRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := prepare(rec, l.opts.now)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal prediction record: %w", err)
	}

	var n int
	err = l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPredictions)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}
		n = int(seq)
		return nil
	})
	if err != nil {
		return "", l.wrap("append", err)
	}

	metrics.RecordLogAppend()
	metrics.UpdateLogSize(n)
	return out.ID, nil
}

func (l *BoltLog) Recent(ctx context.Context, since time.Time) ([]model.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.PredictionRecord, 0)
	err := l.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPredictions).ForEach(func(_, v []byte) error {
			var r model.PredictionRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if !r.Timestamp.Before(since) {
				out = append(out, r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, l.wrap("recent", err)
	}
	return out, nil
}

func (l *BoltLog) Query(ctx context.Context, f Filter) ([]model.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.PredictionRecord, 0)
	err := l.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketPredictions).Cursor()
		for k, v := c.Last(); k != nil && !f.full(len(out)); k, v = c.Prev() {
			var r model.PredictionRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if f.matches(r) {
				out = append(out, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, l.wrap("query", err)
	}
	return out, nil
}

func (l *BoltLog) Count(_ context.Context) (int, error) {
	var n int
	err := l.db.View(func(tx *bbolt.Tx) error {
		n = int(tx.Bucket(bucketPredictions).Sequence())
		return nil
	})
	if err != nil {
		return 0, l.wrap("count", err)
	}
	return n, nil
}

func (l *BoltLog) Close() error {
	return l.db.Close()
}

func (l *BoltLog) wrap(op string, err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return ErrClosed
	}
	return fmt.Errorf("prediction log %s: %w", op, err)
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
