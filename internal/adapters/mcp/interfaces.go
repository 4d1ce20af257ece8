package mcp

import (
	"context"

	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/health"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/internal/domain/types"
)

// Dependencies is the service surface exposed over MCP.
type Dependencies interface {
	ScoreLead(ctx context.Context, req service.ScoreLeadRequest) (scoring.Result, error)
	AssessChurnRisk(ctx context.Context, accountID string) (scoring.Result, error)
	PredictConversion(ctx context.Context, accountID string) (scoring.Result, error)
	CheckModelHealth(ctx context.Context) (health.Report, error)
	LogPrediction(ctx context.Context, req service.LogPredictionRequest) (service.LogPredictionResponse, error)
	ListPredictions(ctx context.Context, t model.PredictionType, limit int) ([]model.PredictionRecord, error)
	TopLeads(ctx context.Context, limit int) ([]types.RankedLead, error)

	ListAccounts(ctx context.Context, status model.AccountStatus) ([]model.Account, error)
	GetAccount(ctx context.Context, id string) (model.Account, error)
	GetLead(ctx context.Context, id string) (model.Lead, error)
	ModelMetadata() service.ModelMetadata

	// Engine scores without logging, for prompt rendering.
	Engine() *scoring.Engine
}
