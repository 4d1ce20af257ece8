// Package dedupe suppresses duplicate work for keys that are already in
// flight, such as an entity queued for rescoring twice in one sweep.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

const defaultMaxSize = 10000

// Deduper tracks keys that are currently being worked on.
type Deduper interface {
	// SeenAndRecord reports whether key is already in flight and records it
	// if it is not. The check and the insert are atomic.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord releases key once its work finished or could not be queued.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryDeduper keeps keys in a map with insertion order tracked by a list.
// When bounded and full, the oldest key is evicted so a lost Unrecord can
// never wedge the set.
type inMemoryDeduper struct {
	mu      sync.Mutex
	keys    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewInMemoryDeduper returns a Deduper holding at most WithMaxSize keys.
// A non-positive size disables eviction.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.keys = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.keys[key]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Front()
		d.order.Remove(oldest)
		delete(d.keys, oldest.Value.(string))
	}
	d.keys[key] = d.order.PushBack(key)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.keys[key]; ok {
		d.order.Remove(el)
		delete(d.keys, key)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}
