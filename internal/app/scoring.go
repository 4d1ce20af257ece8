package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/okian/revintel/internal/adapters/repository"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/pkg/apperr"
	"github.com/okian/revintel/pkg/logger"
	"github.com/okian/revintel/pkg/metrics"
)

// Defaults applied to ad-hoc lead requests.
const (
	DefaultIndustry      = "technology"
	DefaultEmployeeCount = 100
)

// ScoreLeadRequest scores either a CRM lead by id or an ad-hoc company.
type ScoreLeadRequest struct {
	LeadID        string             `json:"lead_id,omitempty" validate:"required_without=CompanyName,omitempty,max=64,entityid"`
	CompanyName   string             `json:"company_name,omitempty" validate:"required_without=LeadID,max=200"`
	Industry      string             `json:"industry,omitempty" validate:"max=100"`
	EmployeeCount *int               `json:"employee_count,omitempty"`
	Signals       *model.LeadSignals `json:"signals,omitempty"`
}

// ScoreLead scores a lead. A lead id takes precedence over ad-hoc fields.
func (s *Service) ScoreLead(ctx context.Context, req ScoreLeadRequest) (scoring.Result, error) {
	const op = "score_lead"
	if err := s.checkStruct(op, req); err != nil {
		s.fail(model.PredictionLeadScore, err)
		return scoring.Result{}, err
	}
	if req.LeadID != "" {
		return s.ScoreLeadByID(ctx, req.LeadID)
	}

	in := scoring.LeadFeatures{
		Company:       req.CompanyName,
		Industry:      req.Industry,
		EmployeeCount: DefaultEmployeeCount,
	}
	if in.Industry == "" {
		in.Industry = DefaultIndustry
	}
	if req.EmployeeCount != nil {
		in.EmployeeCount = *req.EmployeeCount
	}
	if req.Signals != nil {
		in.Signals = *req.Signals
	}

	start := time.Now()
	res := s.engine.ScoreLead(in)
	s.observe(ctx, res, start, req)
	return res, nil
}

// ScoreLeadByID scores a CRM lead and records it in the pipeline ranking.
func (s *Service) ScoreLeadByID(ctx context.Context, leadID string) (scoring.Result, error) {
	const op = "score_lead"
	if err := s.checkID(op, "lead_id", leadID); err != nil {
		s.fail(model.PredictionLeadScore, err)
		return scoring.Result{}, err
	}
	lead, err := s.repo.GetLead(ctx, leadID)
	if err != nil {
		err = s.lookupErr(op, "lead", leadID, err)
		s.fail(model.PredictionLeadScore, err)
		return scoring.Result{}, err
	}

	start := time.Now()
	res := s.engine.ScoreLead(scoring.LeadFeaturesFrom(lead))
	s.ranking.Upsert(ctx, lead.ID, lead.Company, res.Score, res.Tier)
	s.observe(ctx, res, start, lead)
	return res, nil
}

// AssessChurnRisk scores the churn risk of a CRM account.
func (s *Service) AssessChurnRisk(ctx context.Context, accountID string) (scoring.Result, error) {
	const op = "detect_churn_risk"
	acc, err := s.account(ctx, op, model.PredictionChurnRisk, accountID)
	if err != nil {
		return scoring.Result{}, err
	}
	start := time.Now()
	res := s.engine.AssessChurnRisk(acc)
	s.observe(ctx, res, start, acc)
	return res, nil
}

// PredictConversion estimates trial conversion for a CRM account. Accounts
// that are not on a trial plan are rejected.
func (s *Service) PredictConversion(ctx context.Context, accountID string) (scoring.Result, error) {
	const op = "get_conversion_insights"
	acc, err := s.account(ctx, op, model.PredictionConversion, accountID)
	if err != nil {
		return scoring.Result{}, err
	}
	if !acc.IsTrial() {
		err := &apperr.Error{
			Kind:    apperr.KindValidation,
			Op:      op,
			Message: "account " + acc.ID + " is on the " + string(acc.Plan) + " plan, conversion insights need a trial account",
			Fields:  []apperr.FieldError{{Field: "account_id", Message: "must reference a trial account"}},
			Err:     scoring.ErrNotTrial,
		}
		s.fail(model.PredictionConversion, err)
		return scoring.Result{}, err
	}
	start := time.Now()
	res := s.engine.PredictConversion(acc)
	s.observe(ctx, res, start, acc)
	return res, nil
}

func (s *Service) account(ctx context.Context, op string, t model.PredictionType, id string) (model.Account, error) {
	if err := s.checkID(op, "account_id", id); err != nil {
		s.fail(t, err)
		return model.Account{}, err
	}
	acc, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		err = s.lookupErr(op, "account", id, err)
		s.fail(t, err)
		return model.Account{}, err
	}
	return acc, nil
}

func (s *Service) lookupErr(op, entity, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &apperr.Error{Kind: apperr.KindNotFound, Op: op, Message: entity + " " + id + " not found", Err: err}
	}
	return apperr.Wrap(apperr.KindInternal, op, err)
}

func (s *Service) fail(t model.PredictionType, err error) {
	metrics.RecordPredictionError(string(t), apperr.KindOf(err).String())
}

// observe records metrics for a result and appends it to the prediction
// log. Log failures are reported but never fail the caller.
func (s *Service) observe(ctx context.Context, res scoring.Result, start time.Time, input any) {
	metrics.RecordScoringLatency(string(res.Type), float64(time.Since(start).Microseconds())/1000)
	metrics.RecordPrediction(string(res.Type), res.Tier)

	in, err := json.Marshal(input)
	if err != nil {
		s.logFailure(ctx, res, err)
		return
	}
	out, err := json.Marshal(res)
	if err != nil {
		s.logFailure(ctx, res, err)
		return
	}
	id, err := s.log.Append(ctx, model.PredictionRecord{
		Type:         res.Type,
		ModelVersion: res.ModelVersion,
		Tier:         res.Tier,
		Timestamp:    res.Timestamp,
		Input:        in,
		Result:       out,
	})
	if err != nil {
		s.logFailure(ctx, res, err)
		return
	}
	s.logger.Debug(ctx, "prediction recorded",
		logger.String("log_id", id),
		logger.String("type", string(res.Type)),
		logger.String("subject", res.SubjectID),
		logger.Int("score", res.Score),
		logger.String("tier", res.Tier),
	)
}

func (s *Service) logFailure(ctx context.Context, res scoring.Result, err error) {
	metrics.RecordLogError()
	s.logger.Warn(ctx, "prediction log append failed",
		logger.String("type", string(res.Type)),
		logger.String("subject", res.SubjectID),
		logger.Error(err),
	)
}
