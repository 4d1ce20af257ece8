package scoring

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/revintel/internal/domain/model"
)

// AssessChurnRisk computes a churn risk score where higher means riskier,
// with attribution over usage decline, login recency, support load,
// sentiment and MRR trend, plus recommended interventions.
func (e *Engine) AssessChurnRisk(acc model.Account) Result {
	cfg := e.cfg.Churn
	u := acc.Usage

	sentiment, npsObserved, npsDesc := 0.0, 0.0, "no NPS response"
	if u.NPSScore != nil {
		npsObserved = float64(*u.NPSScore)
		sentiment = clamp((10-npsObserved)*10, 0, maxScore)
		npsDesc = fmt.Sprintf("NPS %d", *u.NPSScore)
	}

	total, attrs := combine(cfg.Weights, []signal{
		{IndicatorUsageDecline, u.UsageDeclinePct, u.UsageDeclinePct,
			fmt.Sprintf("usage declined %.0f%% over 30 days", u.UsageDeclinePct)},
		{IndicatorLoginRecency, ratio(float64(u.DaysSinceLastLogin), cfg.LoginGapCapDays), float64(u.DaysSinceLastLogin),
			fmt.Sprintf("%d days since last login", u.DaysSinceLastLogin)},
		{IndicatorSupportLoad, ratio(float64(u.SupportTickets30d), cfg.TicketCap), float64(u.SupportTickets30d),
			fmt.Sprintf("%d support tickets in 30 days", u.SupportTickets30d)},
		{IndicatorSentiment, sentiment, npsObserved, npsDesc},
		{IndicatorMRRTrend, clamp(-u.MRRChangePct*cfg.MRRDeclineScale, 0, maxScore), u.MRRChangePct,
			fmt.Sprintf("MRR changed %+.0f%% over 90 days", u.MRRChangePct)},
	}, riskImpact)

	score := finalScore(total)
	tier := cfg.Tiers.Lookup(float64(score))
	recs := e.churnRecommendations(acc, tier, attrs)

	return Result{
		Type:            model.PredictionChurnRisk,
		SubjectID:       acc.ID,
		Subject:         acc.Company,
		Score:           score,
		Tier:            tier,
		Attributions:    attrs,
		Explanation:     e.explainChurn(acc.Company, score, tier, total, attrs, recs),
		Recommendations: recs,
		ModelVersion:    e.cfg.ModelVersion,
		Timestamp:       e.now().UTC(),
	}
}

func (e *Engine) churnRecommendations(acc model.Account, tier string, attrs []Attribution) []string {
	cfg := e.cfg.Churn
	recs := appendUnique(nil, cfg.Interventions[tier]...)
	for _, a := range attrs {
		if a.Value >= cfg.ActionThreshold {
			recs = appendUnique(recs, cfg.SignalActions[a.Feature])
		}
	}
	if acc.Usage.FeaturesAdopted < cfg.LowAdoption {
		recs = appendUnique(recs, cfg.SignalActions[ActionLowAdoption])
	}
	if acc.Plan == model.PlanStarter {
		recs = appendUnique(recs, cfg.SignalActions[ActionStarterPlan])
	}
	if recs == nil {
		recs = []string{}
	}
	return recs
}

func (e *Engine) explainChurn(subject string, score int, tier string, total float64, attrs []Attribution, recs []string) string {
	if subject == "" {
		subject = "Account"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s churn risk is %d/100 (%s tier).", subject, score, tier)
	if total <= 0 {
		b.WriteString(" No risk indicator is elevated.")
		return b.String()
	}
	fmt.Fprintf(&b, " Main risk drivers: %s.", topDrivers(attrs))
	if slices.Contains(e.cfg.Churn.AlertTiers, tier) && len(recs) > 0 {
		fmt.Fprintf(&b, " Recommended interventions: %s.", strings.Join(recs, "; "))
	}
	return b.String()
}
