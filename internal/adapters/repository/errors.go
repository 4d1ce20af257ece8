package repository

import "errors"

// ErrNotFound is returned when an account or lead id is unknown.
var ErrNotFound = errors.New("entity not found")
