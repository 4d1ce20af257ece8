package scoring

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/okian/revintel/internal/domain/model"
)

const weightTolerance = 1e-6

// Lead score features.
const (
	FeatureCompanySize = "company_size"
	FeatureEngagement  = "engagement_signals"
	FeatureIndustryFit = "industry_fit"
	FeatureIntent      = "intent_signals"
)

// Lead engagement and intent components.
const (
	SignalWebsiteVisits   = "website_visits"
	SignalEmailEngagement = "email_engagement"
	SignalDemoRequested   = "demo_requested"
	SignalFreeTrial       = "free_trial"
	SignalWhitepapers     = "whitepapers"
	SignalLinkedIn        = "linkedin"
)

// Churn risk indicators.
const (
	IndicatorUsageDecline = "usage_decline"
	IndicatorLoginRecency = "login_recency"
	IndicatorSupportLoad  = "support_load"
	IndicatorSentiment    = "sentiment"
	IndicatorMRRTrend     = "mrr_trend"
)

// Conversion signals.
const (
	SignalFeatureBreadth = "feature_breadth"
	SignalActiveUsage    = "active_usage"
	SignalLoginFrequency = "login_frequency"
	SignalAPIIntegration = "api_integration"
	SignalSeatGrowth     = "seat_growth"
	SignalSupportRecency = "support_recency"
	SignalTrialProgress  = "trial_progress"
)

// Account-level churn actions that are not tied to a weighted indicator.
const (
	ActionLowAdoption = "feature_adoption"
	ActionStarterPlan = "starter_plan"
)

var (
	leadFeatures       = []string{FeatureCompanySize, FeatureEngagement, FeatureIndustryFit, FeatureIntent}
	engagementSignals  = []string{SignalWebsiteVisits, SignalEmailEngagement, SignalDemoRequested, SignalFreeTrial, SignalWhitepapers, SignalLinkedIn}
	intentSignals      = []string{SignalDemoRequested, SignalFreeTrial, SignalLinkedIn}
	churnIndicators    = []string{IndicatorUsageDecline, IndicatorLoginRecency, IndicatorSupportLoad, IndicatorSentiment, IndicatorMRRTrend}
	conversionFeatures = []string{SignalFeatureBreadth, SignalActiveUsage, SignalLoginFrequency, SignalAPIIntegration, SignalSeatGrowth, SignalSupportRecency, SignalTrialProgress}
)

// SizeBand maps a minimum employee count to a size sub-score.
type SizeBand struct {
	MinEmployees int     `koanf:"min_employees" json:"min_employees"`
	Score        float64 `koanf:"score" json:"score"`
}

// LeadConfig parameterizes lead scoring.
type LeadConfig struct {
	Weights            map[string]float64 `koanf:"weights"`
	EngagementWeights  map[string]float64 `koanf:"engagement_weights"`
	IntentWeights      map[string]float64 `koanf:"intent_weights"`
	Tiers              TierTable          `koanf:"tiers"`
	SizeBands          []SizeBand         `koanf:"size_bands"`
	IndustryFit        map[string]float64 `koanf:"industry_fit"`
	DefaultIndustryFit float64            `koanf:"default_industry_fit"`
	VisitsCap          float64            `koanf:"visits_cap"`
	WhitepapersCap     float64            `koanf:"whitepapers_cap"`
}

// ChurnConfig parameterizes churn risk assessment. Explanations for tiers in
// AlertTiers enumerate the recommended interventions.
type ChurnConfig struct {
	Weights         map[string]float64  `koanf:"weights"`
	Tiers           TierTable           `koanf:"tiers"`
	LoginGapCapDays float64             `koanf:"login_gap_cap_days"`
	TicketCap       float64             `koanf:"ticket_cap"`
	MRRDeclineScale float64             `koanf:"mrr_decline_scale"`
	LowAdoption     int                 `koanf:"low_adoption_features"`
	ActionThreshold float64             `koanf:"action_threshold"`
	AlertTiers      []string            `koanf:"alert_tiers"`
	Interventions   map[string][]string `koanf:"interventions"`
	SignalActions   map[string]string   `koanf:"signal_actions"`
}

// ConversionConfig parameterizes trial conversion prediction.
type ConversionConfig struct {
	Weights            map[string]float64  `koanf:"weights"`
	Tiers              TierTable           `koanf:"tiers"`
	FeaturesCap        float64             `koanf:"features_cap"`
	ActiveUsersCap     float64             `koanf:"active_users_cap"`
	LoginsCap          float64             `koanf:"logins_cap"`
	APICallsCap        float64             `koanf:"api_calls_cap"`
	SupportRecencyDays float64             `koanf:"support_recency_days"`
	TrialLengthDays    float64             `koanf:"trial_length_days"`
	TierActions        map[string][]string `koanf:"tier_actions"`
	SignalActions      map[string]string   `koanf:"signal_actions"`
}

// DriftConfig parameterizes the health check.
type DriftConfig struct {
	Window            time.Duration                 `koanf:"window"`
	MinSample         int                           `koanf:"min_sample"`
	WarningTolerance  float64                       `koanf:"warning_tolerance"`
	CriticalTolerance float64                       `koanf:"critical_tolerance"`
	Baseline          map[string]map[string]float64 `koanf:"baseline"`
}

// Config is the full scoring configuration. It is validated once by
// NewEngine and never changes afterwards.
type Config struct {
	ModelVersion       string             `koanf:"version"`
	TrainingDate       string             `koanf:"training_date"`
	PerformanceMetrics map[string]float64 `koanf:"performance_metrics"`
	FeatureImportance  map[string]float64 `koanf:"feature_importance"`

	Lead       LeadConfig       `koanf:"lead"`
	Churn      ChurnConfig      `koanf:"churn"`
	Conversion ConversionConfig `koanf:"conversion"`
	Drift      DriftConfig      `koanf:"drift"`
}

// Tiers returns the tier table used for a prediction type.
func (c Config) Tiers(t model.PredictionType) TierTable {
	switch t {
	case model.PredictionLeadScore:
		return c.Lead.Tiers
	case model.PredictionChurnRisk:
		return c.Churn.Tiers
	case model.PredictionConversion:
		return c.Conversion.Tiers
	}
	return nil
}

// DefaultConfig returns the built-in model parameters.
func DefaultConfig() Config {
	return Config{
		ModelVersion: "v1.2.3",
		TrainingDate: "2024-10-15",
		PerformanceMetrics: map[string]float64{
			"accuracy":  0.89,
			"precision": 0.85,
			"recall":    0.82,
			"f1_score":  0.83,
			"roc_auc":   0.91,
		},
		FeatureImportance: map[string]float64{
			"email_engagement_score": 0.25,
			"website_visits_30d":     0.18,
			"demo_requested":         0.15,
			"employee_count":         0.12,
			"free_trial_started":     0.10,
			"whitepaper_downloads":   0.08,
			"linkedin_engagement":    0.07,
			"industry_fit":           0.05,
		},
		Lead: LeadConfig{
			Weights: map[string]float64{
				FeatureCompanySize: 0.20,
				FeatureEngagement:  0.40,
				FeatureIndustryFit: 0.20,
				FeatureIntent:      0.20,
			},
			EngagementWeights: map[string]float64{
				SignalWebsiteVisits:   0.25,
				SignalEmailEngagement: 0.30,
				SignalDemoRequested:   0.15,
				SignalFreeTrial:       0.10,
				SignalWhitepapers:     0.10,
				SignalLinkedIn:        0.10,
			},
			IntentWeights: map[string]float64{
				SignalDemoRequested: 0.50,
				SignalFreeTrial:     0.35,
				SignalLinkedIn:      0.15,
			},
			Tiers: TierTable{{Label: "hot", Min: 70}, {Label: "warm", Min: 40}, {Label: "cold", Min: 0}},
			SizeBands: []SizeBand{
				{MinEmployees: 1000, Score: 100},
				{MinEmployees: 500, Score: 90},
				{MinEmployees: 200, Score: 80},
				{MinEmployees: 100, Score: 70},
				{MinEmployees: 50, Score: 60},
				{MinEmployees: 20, Score: 50},
				{MinEmployees: 0, Score: 30},
			},
			IndustryFit: map[string]float64{
				"technology":            90,
				"saas":                  85,
				"data_analytics":        95,
				"finance":               80,
				"healthcare":            75,
				"insurance":             75,
				"manufacturing":         70,
				"energy":                70,
				"professional_services": 65,
				"education":             60,
				"retail":                55,
				"logistics":             50,
				"real_estate":           45,
				"agriculture":           40,
				"hospitality":           35,
				"nonprofit":             30,
			},
			DefaultIndustryFit: 50,
			VisitsCap:          50,
			WhitepapersCap:     5,
		},
		Churn: ChurnConfig{
			Weights: map[string]float64{
				IndicatorUsageDecline: 0.35,
				IndicatorLoginRecency: 0.25,
				IndicatorSupportLoad:  0.20,
				IndicatorSentiment:    0.10,
				IndicatorMRRTrend:     0.10,
			},
			Tiers:           TierTable{{Label: "critical", Min: 70}, {Label: "high", Min: 50}, {Label: "medium", Min: 30}, {Label: "low", Min: 0}},
			LoginGapCapDays: 45,
			TicketCap:       10,
			MRRDeclineScale: 2,
			LowAdoption:     3,
			ActionThreshold: 50,
			AlertTiers:      []string{"critical", "high"},
			Interventions: map[string][]string{
				"critical": {
					"Escalate to the executive sponsor within 24 hours",
					"Schedule executive business review to address concerns",
					"Assign a dedicated customer success manager for the next 30 days",
				},
				"high": {
					"Book a health check call with the account owner this week",
					"Prepare a tailored success plan with measurable adoption goals",
				},
				"medium": {
					"Review the account at the next quarterly business review",
				},
				"low": {},
			},
			SignalActions: map[string]string{
				IndicatorUsageDecline: "Provide personalized onboarding/training session",
				IndicatorLoginRecency: "Provide personalized onboarding/training session",
				IndicatorSupportLoad:  "Schedule executive business review to address concerns",
				IndicatorSentiment:    "Schedule executive business review to address concerns",
				IndicatorMRRTrend:     "Review billing and plan fit with the account owner",
				ActionLowAdoption:     "Demonstrate advanced features relevant to their use case",
				ActionStarterPlan:     "Explore upsell to Professional tier with more features",
			},
		},
		Conversion: ConversionConfig{
			Weights: map[string]float64{
				SignalFeatureBreadth: 0.20,
				SignalActiveUsage:    0.20,
				SignalLoginFrequency: 0.15,
				SignalAPIIntegration: 0.15,
				SignalSeatGrowth:     0.10,
				SignalSupportRecency: 0.10,
				SignalTrialProgress:  0.10,
			},
			Tiers:              TierTable{{Label: "likely", Min: 70}, {Label: "uncertain", Min: 40}, {Label: "unlikely", Min: 0}},
			FeaturesCap:        8,
			ActiveUsersCap:     15,
			LoginsCap:          14,
			APICallsCap:        300,
			SupportRecencyDays: 30,
			TrialLengthDays:    14,
			TierActions: map[string][]string{
				"likely":    {"Send upgrade prompt with success stories", "Offer onboarding call to ensure success"},
				"uncertain": {"Provide feature tutorial to drive adoption", "Share case study from similar customer"},
				"unlikely":  {"Increase engagement with personalized outreach", "Identify and remove adoption blockers"},
			},
			SignalActions: map[string]string{
				SignalFeatureBreadth: "Walk the team through two unused core features",
				SignalActiveUsage:    "Invite more teammates to the trial workspace",
				SignalLoginFrequency: "Send a daily tips sequence to build a login habit",
				SignalAPIIntegration: "Offer a solutions engineer session to set up the API integration",
				SignalSeatGrowth:     "Propose a team pilot to expand active seats",
				SignalSupportRecency: "Reach out proactively from support to unblock setup",
				SignalTrialProgress:  "Set up a mid-trial check-in to confirm success criteria",
			},
		},
		Drift: DriftConfig{
			Window:            24 * time.Hour,
			MinSample:         20,
			WarningTolerance:  0.10,
			CriticalTolerance: 0.20,
			Baseline: map[string]map[string]float64{
				string(model.PredictionLeadScore):  {"hot": 0.30, "warm": 0.40, "cold": 0.30},
				string(model.PredictionChurnRisk):  {"critical": 0.10, "high": 0.15, "medium": 0.25, "low": 0.50},
				string(model.PredictionConversion): {"likely": 0.35, "uncertain": 0.40, "unlikely": 0.25},
			},
		},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.PerformanceMetrics = maps.Clone(c.PerformanceMetrics)
	out.FeatureImportance = maps.Clone(c.FeatureImportance)

	out.Lead.Weights = maps.Clone(c.Lead.Weights)
	out.Lead.EngagementWeights = maps.Clone(c.Lead.EngagementWeights)
	out.Lead.IntentWeights = maps.Clone(c.Lead.IntentWeights)
	out.Lead.Tiers = slices.Clone(c.Lead.Tiers)
	out.Lead.SizeBands = slices.Clone(c.Lead.SizeBands)
	out.Lead.IndustryFit = maps.Clone(c.Lead.IndustryFit)

	out.Churn.Weights = maps.Clone(c.Churn.Weights)
	out.Churn.Tiers = slices.Clone(c.Churn.Tiers)
	out.Churn.AlertTiers = slices.Clone(c.Churn.AlertTiers)
	out.Churn.Interventions = cloneActions(c.Churn.Interventions)
	out.Churn.SignalActions = maps.Clone(c.Churn.SignalActions)

	out.Conversion.Weights = maps.Clone(c.Conversion.Weights)
	out.Conversion.Tiers = slices.Clone(c.Conversion.Tiers)
	out.Conversion.TierActions = cloneActions(c.Conversion.TierActions)
	out.Conversion.SignalActions = maps.Clone(c.Conversion.SignalActions)

	if c.Drift.Baseline != nil {
		out.Drift.Baseline = make(map[string]map[string]float64, len(c.Drift.Baseline))
		for k, v := range c.Drift.Baseline {
			out.Drift.Baseline[k] = maps.Clone(v)
		}
	}
	return out
}

func cloneActions(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}
	return out
}

// Validate checks every structural invariant of the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ModelVersion) == "" {
		return configErr("model version must not be empty")
	}

	checks := []struct {
		name    string
		weights map[string]float64
		known   []string
	}{
		{"lead.weights", c.Lead.Weights, leadFeatures},
		{"lead.engagement_weights", c.Lead.EngagementWeights, engagementSignals},
		{"lead.intent_weights", c.Lead.IntentWeights, intentSignals},
		{"churn.weights", c.Churn.Weights, churnIndicators},
		{"conversion.weights", c.Conversion.Weights, conversionFeatures},
	}
	for _, chk := range checks {
		if err := validateWeights(chk.name, chk.weights, chk.known); err != nil {
			return err
		}
	}

	for name, tiers := range map[string]TierTable{
		"lead.tiers":       c.Lead.Tiers,
		"churn.tiers":      c.Churn.Tiers,
		"conversion.tiers": c.Conversion.Tiers,
	} {
		if err := tiers.Validate(); err != nil {
			return configErr("%s: %v", name, err)
		}
	}

	for _, label := range c.Churn.AlertTiers {
		if !c.Churn.Tiers.Has(label) {
			return configErr("churn.alert_tiers: unknown tier %q", label)
		}
	}

	if err := validateSizeBands(c.Lead.SizeBands); err != nil {
		return err
	}
	for industry, fit := range c.Lead.IndustryFit {
		if fit < 0 || fit > maxScore {
			return configErr("lead.industry_fit[%s]=%v outside [0,100]", industry, fit)
		}
	}
	if c.Lead.DefaultIndustryFit < 0 || c.Lead.DefaultIndustryFit > maxScore {
		return configErr("lead.default_industry_fit=%v outside [0,100]", c.Lead.DefaultIndustryFit)
	}

	caps := map[string]float64{
		"lead.visits_cap":                 c.Lead.VisitsCap,
		"lead.whitepapers_cap":            c.Lead.WhitepapersCap,
		"churn.login_gap_cap_days":        c.Churn.LoginGapCapDays,
		"churn.ticket_cap":                c.Churn.TicketCap,
		"churn.mrr_decline_scale":         c.Churn.MRRDeclineScale,
		"conversion.features_cap":         c.Conversion.FeaturesCap,
		"conversion.active_users_cap":     c.Conversion.ActiveUsersCap,
		"conversion.logins_cap":           c.Conversion.LoginsCap,
		"conversion.api_calls_cap":        c.Conversion.APICallsCap,
		"conversion.support_recency_days": c.Conversion.SupportRecencyDays,
		"conversion.trial_length_days":    c.Conversion.TrialLengthDays,
	}
	for name, v := range caps {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return configErr("%s must be positive, got %v", name, v)
		}
	}

	return c.Drift.validate(c)
}

func (d DriftConfig) validate(c Config) error {
	if d.Window <= 0 {
		return configErr("drift.window must be positive")
	}
	if d.MinSample < 1 {
		return configErr("drift.min_sample must be at least 1")
	}
	if d.WarningTolerance <= 0 || d.CriticalTolerance <= d.WarningTolerance || d.CriticalTolerance > 1 {
		return configErr("drift tolerances must satisfy 0 < warning < critical <= 1")
	}
	for typ, shares := range d.Baseline {
		pt := model.PredictionType(typ)
		if !pt.Valid() {
			return configErr("drift.baseline: unknown prediction type %q", typ)
		}
		tiers := c.Tiers(pt)
		sum := 0.0
		for label, share := range shares {
			if !tiers.Has(label) {
				return configErr("drift.baseline[%s]: unknown tier %q", typ, label)
			}
			if share < 0 {
				return configErr("drift.baseline[%s][%s] is negative", typ, label)
			}
			sum += share
		}
		if math.Abs(sum-1) > weightTolerance {
			return configErr("drift.baseline[%s] sums to %.6f, must sum to 1.0", typ, sum)
		}
	}
	return nil
}

func validateWeights(name string, weights map[string]float64, known []string) error {
	if len(weights) == 0 {
		return configErr("%s must not be empty", name)
	}
	sum := 0.0
	for feature, w := range weights {
		if !slices.Contains(known, feature) {
			return configErr("%s: unknown feature %q", name, feature)
		}
		if w < 0 || math.IsNaN(w) {
			return configErr("%s[%s]=%v must be non-negative", name, feature, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightTolerance {
		return configErr("%s sums to %.6f, must sum to 1.0", name, sum)
	}
	return nil
}

func validateSizeBands(bands []SizeBand) error {
	if len(bands) == 0 {
		return configErr("lead.size_bands must not be empty")
	}
	for i, b := range bands {
		if b.Score < 0 || b.Score > maxScore {
			return configErr("lead.size_bands[%d].score=%v outside [0,100]", i, b.Score)
		}
		if i == 0 {
			continue
		}
		prev := bands[i-1]
		if b.MinEmployees >= prev.MinEmployees {
			return configErr("lead.size_bands must be strictly descending by min_employees")
		}
		if b.Score > prev.Score {
			return configErr("lead.size_bands scores must not increase as min_employees decreases")
		}
	}
	if last := bands[len(bands)-1]; last.MinEmployees != 0 {
		return configErr("lead.size_bands must end with min_employees 0, got %d", last.MinEmployees)
	}
	return nil
}

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
