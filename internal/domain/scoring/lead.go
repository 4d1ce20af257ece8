package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/revintel/internal/domain/model"
)

// Thresholds used to phrase lead explanations.
const (
	highEmailEngagement = 70
	enterpriseEmployees = 500
	lowWebsiteVisits    = 10
	smallCompany        = 50
)

// LeadFeatures is the input of ScoreLead.
type LeadFeatures struct {
	LeadID        string
	Company       string
	Industry      string
	EmployeeCount int
	Signals       model.LeadSignals
}

// LeadFeaturesFrom builds scoring input from a CRM lead.
func LeadFeaturesFrom(l model.Lead) LeadFeatures {
	return LeadFeatures{
		LeadID:        l.ID,
		Company:       l.Company,
		Industry:      l.Industry,
		EmployeeCount: l.EmployeeCount,
		Signals:       l.Signals,
	}
}

// ScoreLead computes the lead score, hot/warm/cold tier and attribution
// over company size, engagement, industry fit and intent.
func (e *Engine) ScoreLead(in LeadFeatures) Result {
	cfg := e.cfg.Lead
	s := in.Signals

	size := e.SizeScore(in.EmployeeCount)
	engagement := e.EngagementScore(s)
	fit, known := e.IndustryFit(in.Industry)
	intent := e.IntentScore(s)

	industryDesc := fmt.Sprintf("industry %q fit %.0f", in.Industry, fit)
	if !known {
		industryDesc = fmt.Sprintf("industry %q not in fit table, default fit %.0f", in.Industry, fit)
	}

	total, attrs := combine(cfg.Weights, []signal{
		{FeatureCompanySize, size, float64(in.EmployeeCount), fmt.Sprintf("%d employees", in.EmployeeCount)},
		{FeatureEngagement, engagement, engagement, engagementDescription(s)},
		{FeatureIndustryFit, fit, fit, industryDesc},
		{FeatureIntent, intent, intent, intentDescription(s)},
	}, valueImpact)

	score := finalScore(total)
	tier := cfg.Tiers.Lookup(float64(score))
	subject := in.Company
	if subject == "" {
		subject = "Lead"
	}

	return Result{
		Type:         model.PredictionLeadScore,
		SubjectID:    in.LeadID,
		Subject:      subject,
		Score:        score,
		Tier:         tier,
		Attributions: attrs,
		Explanation:  e.explainLead(subject, score, tier, total, attrs, in),
		ModelVersion: e.cfg.ModelVersion,
		Timestamp:    e.now().UTC(),
	}
}

// SizeScore maps an employee count onto the configured size bands. Counts
// at or below zero fall into the smallest band.
func (e *Engine) SizeScore(employees int) float64 {
	bands := e.cfg.Lead.SizeBands
	for _, b := range bands {
		if employees >= b.MinEmployees {
			return b.Score
		}
	}
	return bands[len(bands)-1].Score
}

// IndustryFit returns the fit score for an industry and whether it was found
// in the table. Unknown industries get the default fit.
func (e *Engine) IndustryFit(industry string) (float64, bool) {
	key := normalizeIndustry(industry)
	if fit, ok := e.cfg.Lead.IndustryFit[key]; ok {
		return fit, true
	}
	return e.cfg.Lead.DefaultIndustryFit, false
}

// EngagementScore combines the engagement signals into [0,100].
func (e *Engine) EngagementScore(s model.LeadSignals) float64 {
	cfg := e.cfg.Lead
	w := cfg.EngagementWeights
	v := w[SignalWebsiteVisits]*ratio(float64(s.WebsiteVisits30d), cfg.VisitsCap) +
		w[SignalEmailEngagement]*clamp(s.EmailEngagementScore, 0, maxScore) +
		w[SignalDemoRequested]*boolScore(s.DemoRequested) +
		w[SignalFreeTrial]*boolScore(s.FreeTrialStarted) +
		w[SignalWhitepapers]*ratio(float64(s.WhitepaperDownloads), cfg.WhitepapersCap) +
		w[SignalLinkedIn]*boolScore(s.LinkedInEngagement)
	return round(clamp(v, 0, maxScore), 2)
}

// IntentScore combines buying intent signals into [0,100].
func (e *Engine) IntentScore(s model.LeadSignals) float64 {
	w := e.cfg.Lead.IntentWeights
	v := w[SignalDemoRequested]*boolScore(s.DemoRequested) +
		w[SignalFreeTrial]*boolScore(s.FreeTrialStarted) +
		w[SignalLinkedIn]*boolScore(s.LinkedInEngagement)
	return round(clamp(v, 0, maxScore), 2)
}

func normalizeIndustry(industry string) string {
	s := strings.ToLower(strings.TrimSpace(industry))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func (e *Engine) explainLead(subject string, score int, tier string, total float64, attrs []Attribution, in LeadFeatures) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s scored %d/100 (%s tier).", subject, score, tier)
	if total <= 0 {
		b.WriteString(" No signal contributed to the score.")
		return b.String()
	}
	fmt.Fprintf(&b, " Top drivers: %s.", topDrivers(attrs))

	s := in.Signals
	var strong []string
	if s.DemoRequested {
		strong = append(strong, "demo requested")
	}
	if s.FreeTrialStarted {
		strong = append(strong, "free trial started")
	}
	if s.EmailEngagementScore > highEmailEngagement {
		strong = append(strong, "high email engagement")
	}
	if in.EmployeeCount >= enterpriseEmployees {
		strong = append(strong, "enterprise size")
	}
	if len(strong) > 0 {
		fmt.Fprintf(&b, " Strong signals: %s.", strings.Join(strong, ", "))
	}

	if tier == e.cfg.Lead.Tiers[0].Label {
		return b.String()
	}
	var improve []string
	if s.WebsiteVisits30d < lowWebsiteVisits {
		improve = append(improve, "low website engagement")
	}
	if !s.DemoRequested {
		improve = append(improve, "no demo requested")
	}
	if in.EmployeeCount < smallCompany {
		improve = append(improve, "small company size")
	}
	if len(improve) > 0 {
		fmt.Fprintf(&b, " Areas to improve: %s.", strings.Join(improve, ", "))
	}
	return b.String()
}

func engagementDescription(s model.LeadSignals) string {
	return fmt.Sprintf("%d site visits, email engagement %.0f, %d whitepapers, demo %s, trial %s, linkedin %s",
		s.WebsiteVisits30d, s.EmailEngagementScore, s.WhitepaperDownloads,
		yesNo(s.DemoRequested), yesNo(s.FreeTrialStarted), yesNo(s.LinkedInEngagement))
}

func intentDescription(s model.LeadSignals) string {
	return fmt.Sprintf("demo %s, trial %s, linkedin %s",
		yesNo(s.DemoRequested), yesNo(s.FreeTrialStarted), yesNo(s.LinkedInEngagement))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
