package queue

import "errors"

// ErrClosed is returned by producers that need an error value for a
// rejected enqueue on a closed queue.
var ErrClosed = errors.New("queue closed")

// ErrFull is returned by producers when the queue is at capacity.
var ErrFull = errors.New("queue full")
