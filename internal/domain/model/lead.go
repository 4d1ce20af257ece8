package model

// LeadSignals holds the marketing and sales engagement observed for a lead.
type LeadSignals struct {
	WebsiteVisits30d     int     `json:"website_visits_30d" validate:"gte=0"`
	DemoRequested        bool    `json:"demo_requested"`
	WhitepaperDownloads  int     `json:"whitepaper_downloads" validate:"gte=0"`
	EmailEngagementScore float64 `json:"email_engagement_score" validate:"gte=0,lte=100"`
	LinkedInEngagement   bool    `json:"linkedin_engagement"`
	FreeTrialStarted     bool    `json:"free_trial_started"`
}

// Lead is a prospective customer in the CRM.
type Lead struct {
	ID            string      `json:"id"`
	Company       string      `json:"company"`
	Industry      string      `json:"industry"`
	EmployeeCount int         `json:"employee_count"`
	ContactName   string      `json:"contact_name"`
	ContactTitle  string      `json:"contact_title"`
	Signals       LeadSignals `json:"signals"`
}
