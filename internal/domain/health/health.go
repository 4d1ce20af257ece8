// Package health evaluates model health from a snapshot of the prediction
// log: volume, tier distribution and drift against the configured baseline.
package health

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
)

// Status is the drift verdict for a prediction type or the whole model.
type Status string

const (
	StatusInsufficientData Status = "insufficient_data"
	StatusNormal           Status = "normal"
	StatusWarning          Status = "warning"
	StatusCritical         Status = "critical"
)

// Code encodes the status as a gauge value: -1 insufficient data, 0 normal,
// 1 warning, 2 critical.
func (s Status) Code() int {
	switch s {
	case StatusNormal:
		return 0
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	default:
		return -1
	}
}

// TypeDrift is the drift evaluation for one prediction type.
type TypeDrift struct {
	Type     model.PredictionType `json:"prediction_type"`
	Status   Status               `json:"status"`
	Samples  int                  `json:"samples"`
	Observed map[string]float64   `json:"tier_distribution"`
	Baseline map[string]float64   `json:"baseline_distribution,omitempty"`
	// MaxDeviation is the largest absolute difference between an observed
	// tier share and its baseline share.
	MaxDeviation float64 `json:"max_deviation"`
	DriftedTier  string  `json:"most_drifted_tier,omitempty"`
}

// Report is the result of a health check.
type Report struct {
	Status             Status                       `json:"status"`
	ModelVersion       string                       `json:"model_version"`
	TrainingDate       string                       `json:"training_date"`
	Accuracy           float64                      `json:"accuracy"`
	PerformanceMetrics map[string]float64           `json:"performance_metrics"`
	UptimeSeconds      float64                      `json:"uptime_seconds"`
	Window             string                       `json:"window"`
	Volume             int                          `json:"prediction_volume"`
	VolumeByType       map[model.PredictionType]int `json:"volume_by_type"`
	Drift              []TypeDrift                  `json:"drift"`
	Alerts             []string                     `json:"alerts"`
	CheckedAt          time.Time                    `json:"checked_at"`
}

// Check aggregates the records that fall inside cfg.Drift.Window ending at
// now. The records slice is only read.
func Check(records []model.PredictionRecord, cfg scoring.Config, startedAt, now time.Time) Report {
	since := now.Add(-cfg.Drift.Window)

	counts := make(map[model.PredictionType]map[string]int, len(model.PredictionTypes))
	volumeByType := make(map[model.PredictionType]int, len(model.PredictionTypes))
	for _, t := range model.PredictionTypes {
		volumeByType[t] = 0
		counts[t] = map[string]int{}
	}

	volume := 0
	for _, r := range records {
		if r.Timestamp.Before(since) || r.Timestamp.After(now) || !r.Type.Valid() {
			continue
		}
		volume++
		volumeByType[r.Type]++
		if r.Tier != "" {
			counts[r.Type][r.Tier]++
		}
	}

	uptime := now.Sub(startedAt)
	if uptime < 0 {
		uptime = 0
	}

	rep := Report{
		Status:             StatusInsufficientData,
		ModelVersion:       cfg.ModelVersion,
		TrainingDate:       cfg.TrainingDate,
		Accuracy:           cfg.PerformanceMetrics["accuracy"],
		PerformanceMetrics: cloneFloats(cfg.PerformanceMetrics),
		UptimeSeconds:      math.Round(uptime.Seconds()),
		Window:             cfg.Drift.Window.String(),
		Volume:             volume,
		VolumeByType:       volumeByType,
		Drift:              make([]TypeDrift, 0, len(model.PredictionTypes)),
		Alerts:             []string{},
		CheckedAt:          now.UTC(),
	}

	for _, t := range model.PredictionTypes {
		d := evaluate(t, counts[t], cfg)
		rep.Drift = append(rep.Drift, d)
		if d.Status.Code() > rep.Status.Code() {
			rep.Status = d.Status
		}
		if d.Status == StatusWarning || d.Status == StatusCritical {
			rep.Alerts = append(rep.Alerts, fmt.Sprintf("%s tier distribution drifted %.1f%% on %q (%s)",
				t, d.MaxDeviation*100, d.DriftedTier, d.Status))
		}
	}
	return rep
}

func evaluate(t model.PredictionType, counts map[string]int, cfg scoring.Config) TypeDrift {
	samples := 0
	for _, n := range counts {
		samples += n
	}

	d := TypeDrift{
		Type:     t,
		Status:   StatusInsufficientData,
		Samples:  samples,
		Observed: map[string]float64{},
		Baseline: cloneFloats(cfg.Drift.Baseline[string(t)]),
	}

	labels := cfg.Tiers(t).Labels()
	for label := range counts {
		if !contains(labels, label) {
			labels = append(labels, label)
		}
	}
	for _, label := range labels {
		d.Observed[label] = 0
		if samples > 0 {
			d.Observed[label] = round3(float64(counts[label]) / float64(samples))
		}
	}

	if samples < cfg.Drift.MinSample {
		return d
	}

	// Iterate in a fixed order so ties pick the same tier every time.
	sort.Strings(labels)
	for _, label := range labels {
		observed := 0.0
		if samples > 0 {
			observed = float64(counts[label]) / float64(samples)
		}
		dev := math.Abs(observed - d.Baseline[label])
		if dev > d.MaxDeviation {
			d.MaxDeviation = dev
			d.DriftedTier = label
		}
	}
	d.MaxDeviation = round3(d.MaxDeviation)

	switch {
	case len(d.Baseline) == 0:
		d.Status = StatusNormal
		d.MaxDeviation = 0
		d.DriftedTier = ""
	case d.MaxDeviation > cfg.Drift.CriticalTolerance:
		d.Status = StatusCritical
	case d.MaxDeviation > cfg.Drift.WarningTolerance:
		d.Status = StatusWarning
	default:
		d.Status = StatusNormal
	}
	return d
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func cloneFloats(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
