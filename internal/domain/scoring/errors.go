package scoring

import "errors"

// Sentinel errors for this package.
var (
	ErrInvalidConfig = errors.New("invalid scoring config")
	ErrNotTrial      = errors.New("account is not on a trial plan")
)
