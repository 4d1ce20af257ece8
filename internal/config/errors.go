package config

import "errors"

// ErrLoadConfig wraps file, env and decoding failures; ErrInvalidConfig wraps
// values that decoded but failed validation.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
