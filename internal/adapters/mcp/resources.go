package mcp

import (
	"context"
	"strings"

	"github.com/okian/revintel/internal/domain/health"
	"github.com/okian/revintel/pkg/apperr"
)

// Resource URIs.
const (
	uriAccountsList  = "crm://accounts/list"
	uriModelMetadata = "models://lead_scorer/metadata"
	prefixAccounts   = "crm://accounts/"
	prefixLeads      = "crm://leads/"
)

func registerResources(s *Server) {
	s.resources = []resourceDef{
		{
			URI:         uriAccountsList,
			Name:        "All CRM Accounts",
			MimeType:    "application/json",
			Description: "List of all customer accounts with usage signals",
		},
		{
			URI:         uriModelMetadata,
			Name:        "Lead Scorer Model Metadata",
			MimeType:    "application/json",
			Description: "Model version, performance metrics, feature importance and drift status",
		},
	}
	s.templates = []resourceTemplateDef{
		{
			URITemplate: prefixAccounts + "{account_id}",
			Name:        "CRM Account",
			MimeType:    "application/json",
			Description: "One customer account with usage signals",
		},
		{
			URITemplate: prefixLeads + "{lead_id}",
			Name:        "CRM Lead",
			MimeType:    "application/json",
			Description: "One prospective customer with engagement signals",
		},
	}
}

// modelMetadataResource adds the current drift verdict to the static model
// description.
type modelMetadataResource struct {
	ModelVersion       string             `json:"model_version"`
	TrainingDate       string             `json:"training_date"`
	PerformanceMetrics map[string]float64 `json:"performance_metrics"`
	FeatureImportance  map[string]float64 `json:"feature_importance"`
	DriftStatus        health.Status      `json:"drift_status"`
	PredictionVolume   int                `json:"prediction_volume"`
}

func (s *Server) readResource(ctx context.Context, uri string) (any, error) {
	const op = "resources/read"
	switch {
	case uri == uriAccountsList:
		return s.deps.ListAccounts(ctx, "")
	case uri == uriModelMetadata:
		md := s.deps.ModelMetadata()
		rep, err := s.deps.CheckModelHealth(ctx)
		if err != nil {
			return nil, err
		}
		return modelMetadataResource{
			ModelVersion:       md.Version,
			TrainingDate:       md.TrainingDate,
			PerformanceMetrics: md.PerformanceMetrics,
			FeatureImportance:  md.FeatureImportance,
			DriftStatus:        rep.Status,
			PredictionVolume:   rep.Volume,
		}, nil
	case strings.HasPrefix(uri, prefixAccounts):
		return s.deps.GetAccount(ctx, strings.TrimPrefix(uri, prefixAccounts))
	case strings.HasPrefix(uri, prefixLeads):
		return s.deps.GetLead(ctx, strings.TrimPrefix(uri, prefixLeads))
	default:
		return nil, apperr.NotFound(op, "unknown resource URI: %s", uri)
	}
}
