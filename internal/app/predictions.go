package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/okian/revintel/internal/adapters/predictionlog"
	"github.com/okian/revintel/internal/domain/health"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/apperr"
	"github.com/okian/revintel/pkg/logger"
	"github.com/okian/revintel/pkg/metrics"
)

// LogPredictionRequest records a prediction produced outside the engine.
type LogPredictionRequest struct {
	PredictionType   model.PredictionType `json:"prediction_type" validate:"required,oneof=lead_score churn_risk conversion_probability"`
	InputData        json.RawMessage      `json:"input_data" validate:"required"`
	PredictionResult json.RawMessage      `json:"prediction_result" validate:"required"`
}

// LogPredictionResponse acknowledges a logged prediction.
type LogPredictionResponse struct {
	LogID     string    `json:"log_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// LogPrediction appends an externally produced prediction to the log. The
// payloads must be valid JSON and the result a JSON object; its "tier" field
// is indexed for drift tracking.
func (s *Service) LogPrediction(ctx context.Context, req LogPredictionRequest) (LogPredictionResponse, error) {
	const op = "log_prediction"
	if err := s.checkStruct(op, req); err != nil {
		return LogPredictionResponse{}, err
	}
	if !json.Valid(req.InputData) {
		return LogPredictionResponse{}, apperr.Validation(op, "invalid request",
			apperr.FieldError{Field: "input_data", Message: "must be valid JSON"})
	}
	if !json.Valid(req.PredictionResult) {
		return LogPredictionResponse{}, apperr.Validation(op, "invalid request",
			apperr.FieldError{Field: "prediction_result", Message: "must be valid JSON"})
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(req.PredictionResult, &object); err != nil || object == nil {
		return LogPredictionResponse{}, apperr.Validation(op, "invalid request",
			apperr.FieldError{Field: "prediction_result", Message: "must be a JSON object"})
	}
	var probe struct {
		Tier         string `json:"tier"`
		ModelVersion string `json:"model_version"`
	}
	if err := json.Unmarshal(req.PredictionResult, &probe); err != nil {
		return LogPredictionResponse{}, apperr.Validation(op, "invalid request",
			apperr.FieldError{Field: "prediction_result", Message: "tier and model_version must be strings"})
	}
	version := probe.ModelVersion
	if version == "" {
		version = s.engine.ModelVersion()
	}

	rec := model.PredictionRecord{
		Type:         req.PredictionType,
		ModelVersion: version,
		Tier:         probe.Tier,
		Timestamp:    s.now().UTC(),
		Input:        req.InputData,
		Result:       req.PredictionResult,
	}
	id, err := s.log.Append(ctx, rec)
	if err != nil {
		metrics.RecordLogError()
		return LogPredictionResponse{}, apperr.Wrap(apperr.KindInternal, op, err)
	}
	return LogPredictionResponse{LogID: id, Timestamp: rec.Timestamp, Status: "logged"}, nil
}

// ListPredictions returns logged predictions newest first. A zero limit
// returns the default page.
func (s *Service) ListPredictions(ctx context.Context, t model.PredictionType, limit int) ([]model.PredictionRecord, error) {
	const op = "get_prediction_logs"
	if t != "" && !t.Valid() {
		return nil, apperr.Validation(op, "invalid request",
			apperr.FieldError{Field: "prediction_type", Message: "must be one of [lead_score churn_risk conversion_probability]"})
	}
	if limit < 0 {
		return nil, apperr.Validation(op, "invalid request",
			apperr.FieldError{Field: "limit", Message: "must be >= 0"})
	}
	if limit == 0 {
		limit = defaultLogLimit
	}
	out, err := s.log.Query(ctx, predictionlog.Filter{Type: t, Limit: limit})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, err)
	}
	return out, nil
}

// CheckModelHealth evaluates the prediction log inside the drift window and
// publishes the verdict as metrics.
func (s *Service) CheckModelHealth(ctx context.Context) (health.Report, error) {
	const op = "check_model_health"
	cfg := s.engine.Config()
	now := s.now()

	records, err := s.log.Recent(ctx, now.Add(-cfg.Drift.Window))
	if err != nil {
		metrics.RecordErrorByComponent("health", "log_read")
		return health.Report{}, apperr.Wrap(apperr.KindInternal, op, err)
	}
	rep := health.Check(records, cfg, s.startedAt, now)

	for _, d := range rep.Drift {
		metrics.UpdateDrift(string(d.Type), d.MaxDeviation, d.Status.Code())
	}
	metrics.RecordHealthCheck()
	if len(rep.Alerts) > 0 {
		s.logger.Warn(ctx, "model drift detected",
			logger.String("status", string(rep.Status)),
			logger.Any("alerts", rep.Alerts),
		)
	}
	return rep, nil
}

// ModelMetadata describes the scoring model.
type ModelMetadata struct {
	Name               string                        `json:"model_name"`
	Version            string                        `json:"version"`
	TrainingDate       string                        `json:"training_date"`
	PerformanceMetrics map[string]float64            `json:"performance_metrics"`
	FeatureImportance  map[string]float64            `json:"feature_importance"`
	Weights            map[string]map[string]float64 `json:"weights"`
	Tiers              map[string]scoring.TierTable  `json:"tiers"`
}

// ModelMetadata returns the model description derived from the configuration.
func (s *Service) ModelMetadata() ModelMetadata {
	cfg := s.engine.Config()
	return ModelMetadata{
		Name:               "lead_scorer",
		Version:            cfg.ModelVersion,
		TrainingDate:       cfg.TrainingDate,
		PerformanceMetrics: cfg.PerformanceMetrics,
		FeatureImportance:  cfg.FeatureImportance,
		Weights: map[string]map[string]float64{
			string(model.PredictionLeadScore):  cfg.Lead.Weights,
			string(model.PredictionChurnRisk):  cfg.Churn.Weights,
			string(model.PredictionConversion): cfg.Conversion.Weights,
		},
		Tiers: map[string]scoring.TierTable{
			string(model.PredictionLeadScore):  cfg.Lead.Tiers,
			string(model.PredictionChurnRisk):  cfg.Churn.Tiers,
			string(model.PredictionConversion): cfg.Conversion.Tiers,
		},
	}
}
