package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/apperr"
)

func registerTools(s *Server) {
	registerScoreLead(s)
	registerConversionInsights(s)
	registerChurnRisk(s)
	registerModelHealth(s)
	registerLogPrediction(s)
	registerPredictionLogs(s)
	registerTopLeads(s)
}

// decodeArgs unmarshals tool arguments strictly. Empty arguments leave dst
// untouched.
func decodeArgs(tool string, args json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(args)) == 0 || string(bytes.TrimSpace(args)) == "null" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Op: tool, Message: fmt.Sprintf("invalid arguments: %v", err), Err: err}
	}
	return nil
}

var accountIDSchema = mustJSON(map[string]any{
	"type": "object",
	"properties": map[string]any{
		"account_id": map[string]any{"type": "string", "description": "Account ID (e.g. acc_002)"},
	},
	"required": []string{"account_id"},
})

type accountInput struct {
	AccountID string `json:"account_id"`
}

// --- score_lead ---

func registerScoreLead(s *Server) {
	s.addTool("score_lead",
		"Score a lead from company attributes and engagement signals, or a CRM lead by lead_id. "+
			"Returns score (0-100), tier (hot/warm/cold), feature attributions and an explanation.",
		mustJSON(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lead_id":      map[string]any{"type": "string", "description": "CRM lead ID (e.g. lead_001); overrides the other fields"},
				"company_name": map[string]any{"type": "string", "description": "Name of the company"},
				"industry": map[string]any{
					"type": "string", "description": "Company industry (technology, finance, healthcare, ...)",
					"default": service.DefaultIndustry,
				},
				"employee_count": map[string]any{
					"type": "integer", "description": "Number of employees; zero or less falls into the smallest size band",
					"default": service.DefaultEmployeeCount,
				},
				"signals": map[string]any{
					"type":        "object",
					"description": "Engagement signals",
					"properties": map[string]any{
						"website_visits_30d":     map[string]any{"type": "integer", "minimum": 0},
						"demo_requested":         map[string]any{"type": "boolean"},
						"whitepaper_downloads":   map[string]any{"type": "integer", "minimum": 0},
						"email_engagement_score": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
						"linkedin_engagement":    map[string]any{"type": "boolean"},
						"free_trial_started":     map[string]any{"type": "boolean"},
					},
				},
			},
		}),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in service.ScoreLeadRequest
			if err := decodeArgs("score_lead", args, &in); err != nil {
				return nil, err
			}
			return s.deps.ScoreLead(ctx, in)
		},
	)
}

// --- get_conversion_insights ---

func registerConversionInsights(s *Server) {
	s.addTool("get_conversion_insights",
		"Analyze a trial account and predict its conversion probability with recommended actions.",
		accountIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in accountInput
			if err := decodeArgs("get_conversion_insights", args, &in); err != nil {
				return nil, err
			}
			return s.deps.PredictConversion(ctx, in.AccountID)
		},
	)
}

// --- detect_churn_risk ---

func registerChurnRisk(s *Server) {
	s.addTool("detect_churn_risk",
		"Analyze account health and detect churn risk with suggested interventions.",
		accountIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in accountInput
			if err := decodeArgs("detect_churn_risk", args, &in); err != nil {
				return nil, err
			}
			return s.deps.AssessChurnRisk(ctx, in.AccountID)
		},
	)
}

// --- check_model_health ---

func registerModelHealth(s *Server) {
	s.addTool("check_model_health",
		"Check model health: version, uptime, prediction volume, tier distribution and drift status.",
		mustJSON(map[string]any{"type": "object", "properties": map[string]any{}}),
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			return s.deps.CheckModelHealth(ctx)
		},
	)
}

// --- log_prediction ---

type logPredictionInput struct {
	PredictionData *service.LogPredictionRequest `json:"prediction_data"`
}

func registerLogPrediction(s *Server) {
	s.addTool("log_prediction",
		"Log a prediction for monitoring and drift detection.",
		mustJSON(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prediction_data": map[string]any{
					"type":        "object",
					"description": "Prediction details including type, input and result",
					"properties": map[string]any{
						"prediction_type": map[string]any{
							"type": "string",
							"enum": model.PredictionTypes,
						},
						"input_data":        map[string]any{"type": "object"},
						"prediction_result": map[string]any{"type": "object"},
					},
					"required": []string{"prediction_type", "input_data", "prediction_result"},
				},
			},
			"required": []string{"prediction_data"},
		}),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in logPredictionInput
			if err := decodeArgs("log_prediction", args, &in); err != nil {
				return nil, err
			}
			if in.PredictionData == nil {
				return nil, apperr.Validation("log_prediction", "invalid request",
					apperr.FieldError{Field: "prediction_data", Message: "is required"})
			}
			return s.deps.LogPrediction(ctx, *in.PredictionData)
		},
	)
}

// --- get_prediction_logs ---

type predictionLogsInput struct {
	PredictionType model.PredictionType `json:"prediction_type"`
	Limit          int                  `json:"limit"`
}

func registerPredictionLogs(s *Server) {
	s.addTool("get_prediction_logs",
		"List logged predictions, newest first, optionally filtered by type.",
		mustJSON(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prediction_type": map[string]any{"type": "string", "enum": model.PredictionTypes},
				"limit":           map[string]any{"type": "integer", "minimum": 0, "default": 100},
			},
		}),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in predictionLogsInput
			if err := decodeArgs("get_prediction_logs", args, &in); err != nil {
				return nil, err
			}
			return s.deps.ListPredictions(ctx, in.PredictionType, in.Limit)
		},
	)
}

// --- top_leads ---

type topLeadsInput struct {
	Limit int `json:"limit"`
}

func registerTopLeads(s *Server) {
	s.addTool("top_leads",
		"Rank the CRM leads scored so far, best first.",
		mustJSON(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "default": 10},
			},
		}),
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var in topLeadsInput
			if err := decodeArgs("top_leads", args, &in); err != nil {
				return nil, err
			}
			return s.deps.TopLeads(ctx, in.Limit)
		},
	)
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("mustJSON: %v", err))
	}
	return data
}
