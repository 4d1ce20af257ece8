// Package demo drives a running revintel instance over HTTP: it scores every
// CRM lead and account concurrently, then checks the ranking and model health.
package demo

import (
	"time"

	"github.com/okian/revintel/internal/domain/types"
)

// Config holds configuration for a demo run.
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Concurrent requests in flight
	Timeout time.Duration // HTTP request timeout
	TopN    int           // Number of top leads to fetch
	Verbose bool          // Log every scored subject
}

// Summary is the outcome of a demo run.
type Summary struct {
	LeadsScored      int
	AccountsAssessed int
	TrialsPredicted  int
	Failed           int

	// Tiers counts results per prediction type and tier.
	Tiers map[string]map[string]int

	Top          []types.RankedLead
	HealthStatus string
	Volume       int
	Duration     time.Duration
}
