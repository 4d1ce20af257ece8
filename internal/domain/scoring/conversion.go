package scoring

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/revintel/internal/domain/model"
)

const weakestSignals = 2

// PredictConversion estimates the probability that a trial account converts
// to a paid plan, in [0,1], with a tier, attribution and next actions keyed
// to the weakest signals.
func (e *Engine) PredictConversion(acc model.Account) Result {
	cfg := e.cfg.Conversion
	u := acc.Usage

	recency, recencyObserved, recencyDesc := 0.0, 0.0, "no support interaction yet"
	if u.SupportContactDaysAgo != nil {
		days := float64(*u.SupportContactDaysAgo)
		recencyObserved = days
		recency = clamp(maxScore-days/cfg.SupportRecencyDays*maxScore, 0, maxScore)
		recencyDesc = fmt.Sprintf("last support interaction %d days ago", *u.SupportContactDaysAgo)
	}

	total, attrs := combine(cfg.Weights, []signal{
		{SignalFeatureBreadth, ratio(float64(u.FeaturesAdopted), cfg.FeaturesCap), float64(u.FeaturesAdopted),
			fmt.Sprintf("%d features adopted", u.FeaturesAdopted)},
		{SignalActiveUsage, ratio(float64(u.DailyActiveUsers), cfg.ActiveUsersCap), float64(u.DailyActiveUsers),
			fmt.Sprintf("%d daily active users", u.DailyActiveUsers)},
		{SignalLoginFrequency, ratio(float64(u.LoginFrequency7d), cfg.LoginsCap), float64(u.LoginFrequency7d),
			fmt.Sprintf("%d logins in 7 days", u.LoginFrequency7d)},
		{SignalAPIIntegration, ratio(float64(u.APICallsPerDay), cfg.APICallsCap), float64(u.APICallsPerDay),
			fmt.Sprintf("%d API calls per day", u.APICallsPerDay)},
		{SignalSeatGrowth, clamp(u.SeatChangePct, 0, maxScore), u.SeatChangePct,
			fmt.Sprintf("active seats changed %+.0f%%", u.SeatChangePct)},
		{SignalSupportRecency, recency, recencyObserved, recencyDesc},
		{SignalTrialProgress, ratio(float64(u.TrialDay), cfg.TrialLengthDays), float64(u.TrialDay),
			fmt.Sprintf("day %d of %.0f day trial", u.TrialDay, cfg.TrialLengthDays)},
	}, valueImpact)

	score := finalScore(total)
	probability := round(clamp(total/maxScore, 0, 1), 3)
	tier := cfg.Tiers.Lookup(float64(score))
	weakest := weakest(attrs, weakestSignals)

	recs := appendUnique(nil, cfg.TierActions[tier]...)
	for _, a := range weakest {
		recs = appendUnique(recs, cfg.SignalActions[a.Feature])
	}
	if recs == nil {
		recs = []string{}
	}

	subject := acc.Company
	if subject == "" {
		subject = "Account"
	}

	return Result{
		Type:            model.PredictionConversion,
		SubjectID:       acc.ID,
		Subject:         subject,
		Score:           score,
		Probability:     &probability,
		Tier:            tier,
		Attributions:    attrs,
		Explanation:     explainConversion(subject, probability, tier, total, attrs, weakest),
		Recommendations: recs,
		ModelVersion:    e.cfg.ModelVersion,
		Timestamp:       e.now().UTC(),
	}
}

// weakest returns the n lowest-valued signals, ties broken by feature name.
func weakest(attrs []Attribution, n int) []Attribution {
	sorted := slices.Clone(attrs)
	slices.SortStableFunc(sorted, func(a, b Attribution) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Feature, b.Feature)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func explainConversion(subject string, probability float64, tier string, total float64, attrs, weak []Attribution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s has a %.1f%% probability of converting (%s tier).", subject, probability*100, tier)
	if total <= 0 {
		b.WriteString(" No trial engagement has been observed yet.")
		return b.String()
	}
	fmt.Fprintf(&b, " Strongest signals: %s.", topDrivers(attrs))
	names := make([]string, len(weak))
	for i, a := range weak {
		names[i] = humanize(a.Feature)
	}
	fmt.Fprintf(&b, " Weakest signals: %s.", strings.Join(names, " and "))
	return b.String()
}
