package scheduler

import "errors"

// Sentinel errors for job registration.
var (
	ErrDuplicateJob = errors.New("job already registered")
	ErrUnknownJob   = errors.New("unknown job")
	ErrInvalidJob   = errors.New("invalid job")
)
