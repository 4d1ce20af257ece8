package model

import (
	"encoding/json"
	"time"
)

// PredictionType names the task that produced a prediction.
type PredictionType string

const (
	PredictionLeadScore  PredictionType = "lead_score"
	PredictionChurnRisk  PredictionType = "churn_risk"
	PredictionConversion PredictionType = "conversion_probability"
)

// PredictionTypes lists every known prediction type in a stable order.
var PredictionTypes = []PredictionType{PredictionLeadScore, PredictionChurnRisk, PredictionConversion}

// Valid reports whether t is a known prediction type.
func (t PredictionType) Valid() bool {
	switch t {
	case PredictionLeadScore, PredictionChurnRisk, PredictionConversion:
		return true
	}
	return false
}

// PredictionRecord is one append-only entry of the prediction log.
// Input and Result are JSON snapshots taken at append time.
type PredictionRecord struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Type         PredictionType  `json:"prediction_type"`
	ModelVersion string          `json:"model_version"`
	Tier         string          `json:"tier,omitempty"`
	Input        json.RawMessage `json:"input_data"`
	Result       json.RawMessage `json:"prediction_result"`
}

// Clone returns a copy that shares no memory with r.
func (r PredictionRecord) Clone() PredictionRecord {
	c := r
	c.Input = append(json.RawMessage(nil), r.Input...)
	c.Result = append(json.RawMessage(nil), r.Result...)
	return c
}
