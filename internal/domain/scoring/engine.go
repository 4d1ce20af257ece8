// Package scoring implements the rule-based revenue scoring engine: weighted
// features combined into a 0-100 score, bucketed into a tier and explained
// by a per-feature attribution breakdown.
//
// The engine is pure. Given the same inputs and configuration it returns the
// same result apart from the timestamp, and it is safe for concurrent use.
package scoring

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/apperr"
)

const maxScore = 100

// Attribution is the share of a score owed to one feature.
type Attribution struct {
	Feature string `json:"feature"`
	// Value is the feature normalized to [0,100].
	Value float64 `json:"value"`
	// Observed is the raw input the value was derived from.
	Observed     float64 `json:"observed"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Percentage   float64 `json:"percentage"`
	Impact       string  `json:"impact"`
	Description  string  `json:"description"`
}

// Result is the outcome of one scoring call. It is returned by value and
// never modified by the engine afterwards.
type Result struct {
	Type            model.PredictionType `json:"prediction_type"`
	SubjectID       string               `json:"subject_id,omitempty"`
	Subject         string               `json:"subject"`
	Score           int                  `json:"score"`
	Probability     *float64             `json:"probability,omitempty"`
	Tier            string               `json:"tier"`
	Attributions    []Attribution        `json:"attributions"`
	Explanation     string               `json:"explanation"`
	Recommendations []string             `json:"recommendations,omitempty"`
	ModelVersion    string               `json:"model_version"`
	Timestamp       time.Time            `json:"timestamp"`
}

// TopAttribution returns the largest contributor, false when there are none.
func (r Result) TopAttribution() (Attribution, bool) {
	if len(r.Attributions) == 0 {
		return Attribution{}, false
	}
	return r.Attributions[0], true
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine scores leads and accounts against an immutable Config.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine validates cfg and returns an engine bound to a private copy of it.
// Invalid configuration yields an apperr.KindConfig error.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	c := cfg.Clone()
	if err := c.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, "scoring.new_engine", err)
	}
	e := &Engine{cfg: c, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg.Clone()
}

// ModelVersion returns the configured model version.
func (e *Engine) ModelVersion() string {
	return e.cfg.ModelVersion
}

type signal struct {
	feature     string
	value       float64
	observed    float64
	description string
}

// combine weights the signals and returns the unrounded total together with
// attributions ordered by contribution. When the total is zero every
// percentage is zero.
func combine(weights map[string]float64, signals []signal, impact func(value float64) string) (float64, []Attribution) {
	total := 0.0
	attrs := make([]Attribution, 0, len(signals))
	for _, s := range signals {
		w := weights[s.feature]
		v := clamp(s.value, 0, maxScore)
		c := v * w
		total += c
		attrs = append(attrs, Attribution{
			Feature:      s.feature,
			Value:        round(v, 1),
			Observed:     s.observed,
			Weight:       w,
			Contribution: c,
			Impact:       impact(v),
			Description:  s.description,
		})
	}
	for i := range attrs {
		if total > 0 {
			attrs[i].Percentage = round(attrs[i].Contribution/total*100, 1)
		}
	}
	slices.SortStableFunc(attrs, func(a, b Attribution) int {
		if c := cmp.Compare(b.Contribution, a.Contribution); c != 0 {
			return c
		}
		return strings.Compare(a.Feature, b.Feature)
	})
	for i := range attrs {
		attrs[i].Contribution = round(attrs[i].Contribution, 2)
	}
	return total, attrs
}

// finalScore rounds and clamps a weighted total to an integer in [0,100].
func finalScore(total float64) int {
	return int(clamp(math.Round(total), 0, maxScore))
}

// topDrivers renders up to two positive contributors as
// "engagement signals (38.9%) and intent signals (21.8%)".
func topDrivers(attrs []Attribution) string {
	parts := make([]string, 0, 2)
	for _, a := range attrs {
		if a.Contribution <= 0 || len(parts) == 2 {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%.1f%%)", humanize(a.Feature), a.Percentage))
	}
	return strings.Join(parts, " and ")
}

func humanize(feature string) string {
	return strings.ReplaceAll(feature, "_", " ")
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ratio scales n against limit onto [0,100].
func ratio(n, limit float64) float64 {
	return clamp(n/limit*100, 0, maxScore)
}

func boolScore(b bool) float64 {
	if b {
		return maxScore
	}
	return 0
}

// appendUnique appends items not already present, preserving order.
func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		if it != "" && !slices.Contains(dst, it) {
			dst = append(dst, it)
		}
	}
	return dst
}

func valueImpact(v float64) string {
	switch {
	case v >= 70:
		return "positive"
	case v >= 40:
		return "neutral"
	default:
		return "negative"
	}
}

func riskImpact(v float64) string {
	switch {
	case v >= 70:
		return "high"
	case v >= 40:
		return "moderate"
	default:
		return "low"
	}
}
