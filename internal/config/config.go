// Package config defines service configuration and how it is loaded.
package config

import (
	"runtime"

	"github.com/okian/revintel/internal/domain/scoring"
)

// Transports the service can expose.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
	TransportBoth  = "both"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required_unless=Transport stdio"`

	// Transport selects the caller surfaces: http, stdio (MCP) or both.
	Transport string `koanf:"transport" validate:"oneof=http stdio both"`

	// QueueSize bounds the rescoring queue.
	QueueSize int `koanf:"queue_size" validate:"gt=0"`

	// WorkerCount sets the number of rescoring workers.
	WorkerCount int `koanf:"worker_count" validate:"gt=0"`

	// DedupeSize bounds the in-flight rescoring job set.
	DedupeSize int `koanf:"dedupe_size" validate:"gt=0"`

	// PredictionLogPath switches the prediction log to a bbolt file. Empty
	// keeps it in memory.
	PredictionLogPath string `koanf:"prediction_log_path"`

	// MaxTopLeads caps the top leads limit.
	MaxTopLeads int `koanf:"max_top_leads" validate:"gt=0"`

	// RescoreSchedule and HealthCheckSchedule are six-field cron specs
	// (seconds first) or descriptors. Empty disables the job.
	RescoreSchedule     string `koanf:"rescore_schedule" validate:"omitempty,cronspec"`
	HealthCheckSchedule string `koanf:"health_check_schedule" validate:"omitempty,cronspec"`

	// Model holds the scoring parameters.
	Model scoring.Config `koanf:"model"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":8080",
		Transport:           TransportHTTP,
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          50_000,
		MaxTopLeads:         100,
		RescoreSchedule:     "0 0 * * * *",
		HealthCheckSchedule: "0 */5 * * * *",
		Model:               scoring.DefaultConfig(),
	}
}

// ServesHTTP reports whether the HTTP transport is enabled.
func (c *Config) ServesHTTP() bool {
	return c.Transport == TransportHTTP || c.Transport == TransportBoth
}

// ServesStdio reports whether the MCP stdio transport is enabled.
func (c *Config) ServesStdio() bool {
	return c.Transport == TransportStdio || c.Transport == TransportBoth
}
