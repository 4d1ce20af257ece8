// Package model contains domain records passed between layers.
package model

// Plan is a subscription plan.
type Plan string

const (
	PlanTrial        Plan = "trial"
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// AccountStatus is the lifecycle state of a customer account.
type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusTrial   AccountStatus = "trial"
	StatusAtRisk  AccountStatus = "at_risk"
	StatusChurned AccountStatus = "churned"
)

// UsageSignals holds the product usage observed for an account.
// Zero values mean "not observed" and contribute nothing to a score.
type UsageSignals struct {
	DailyActiveUsers  int  `json:"daily_active_users"`
	FeaturesAdopted   int  `json:"features_adopted"`
	APICallsPerDay    int  `json:"api_calls_per_day"`
	SupportTickets30d int  `json:"support_tickets_30d"`
	NPSScore          *int `json:"nps_score"`
	LoginFrequency7d  int  `json:"login_frequency_7d"`

	// UsageDeclinePct is the drop in active usage over the last 30 days, 0-100.
	UsageDeclinePct float64 `json:"usage_decline_pct"`
	// DaysSinceLastLogin counts days since any seat logged in.
	DaysSinceLastLogin int `json:"days_since_last_login"`
	// MRRChangePct is the 90 day MRR change; negative means contraction.
	MRRChangePct float64 `json:"mrr_change_pct"`
	// SeatChangePct is the change in active seats since the start of the trial or quarter.
	SeatChangePct float64 `json:"seat_change_pct"`
	// SupportContactDaysAgo is nil when the account never contacted support.
	SupportContactDaysAgo *int `json:"support_contact_days_ago"`
	// TrialDay is the current day of the trial, zero outside trials.
	TrialDay int `json:"trial_day"`
}

// Account is a customer account in the CRM.
type Account struct {
	ID          string        `json:"id"`
	Company     string        `json:"company"`
	Plan        Plan          `json:"plan"`
	MRR         float64       `json:"mrr"`
	CreatedDate string        `json:"created_date"`
	Industry    string        `json:"industry"`
	Status      AccountStatus `json:"status"`
	Usage       UsageSignals  `json:"usage_signals"`
}

// IsTrial reports whether the account is on a trial plan.
func (a Account) IsTrial() bool {
	return a.Plan == PlanTrial
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	c := a
	if a.Usage.NPSScore != nil {
		v := *a.Usage.NPSScore
		c.Usage.NPSScore = &v
	}
	if a.Usage.SupportContactDaysAgo != nil {
		v := *a.Usage.SupportContactDaysAgo
		c.Usage.SupportContactDaysAgo = &v
	}
	return c
}
