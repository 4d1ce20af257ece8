package predictionlog

import "errors"

// Sentinel errors for the prediction log.
var (
	ErrClosed        = errors.New("prediction log closed")
	ErrInvalidRecord = errors.New("invalid prediction record")
)
