package api

import "errors"

// Sentinel errors for request decoding.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrInvalidBody = errors.New("invalid request body")
)
