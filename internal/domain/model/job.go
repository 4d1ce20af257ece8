package model

import "time"

// JobKind selects what a rescoring job does with its entity.
type JobKind string

const (
	JobScoreLead         JobKind = "score_lead"
	JobAssessChurn       JobKind = "assess_churn"
	JobPredictConversion JobKind = "predict_conversion"
)

// Job is one unit of background rescoring work.
type Job struct {
	ID         string    `json:"id"`
	SweepID    string    `json:"sweep_id"`
	Kind       JobKind   `json:"kind"`
	EntityID   string    `json:"entity_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Key identifies the work a job does, independent of the sweep that queued
// it. Two jobs with the same key are duplicates while either is in flight.
func (j Job) Key() string {
	return string(j.Kind) + ":" + j.EntityID
}
