package ranking

import "errors"

// Sentinel errors for ranking queries.
var (
	ErrNotFound     = errors.New("lead not ranked")
	ErrInvalidLimit = errors.New("invalid ranking limit")
)
