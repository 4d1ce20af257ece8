package service

import (
	"context"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/pkg/apperr"
)

// ListAccounts returns every CRM account, optionally narrowed to a status.
func (s *Service) ListAccounts(ctx context.Context, status model.AccountStatus) ([]model.Account, error) {
	const op = "list_accounts"
	if status != "" {
		if err := s.validate.Var(string(status), "oneof=active trial at_risk churned"); err != nil {
			return nil, apperr.FromVar(op, "status", err)
		}
		out, err := s.repo.AccountsByStatus(ctx, status)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, op, err)
		}
		return out, nil
	}
	out, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, err)
	}
	return out, nil
}

// GetAccount returns one CRM account.
func (s *Service) GetAccount(ctx context.Context, id string) (model.Account, error) {
	const op = "get_account"
	if err := s.checkID(op, "account_id", id); err != nil {
		return model.Account{}, err
	}
	acc, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return model.Account{}, s.lookupErr(op, "account", id, err)
	}
	return acc, nil
}

// ListLeads returns every CRM lead.
func (s *Service) ListLeads(ctx context.Context) ([]model.Lead, error) {
	out, err := s.repo.ListLeads(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list_leads", err)
	}
	return out, nil
}

// GetLead returns one CRM lead.
func (s *Service) GetLead(ctx context.Context, id string) (model.Lead, error) {
	const op = "get_lead"
	if err := s.checkID(op, "lead_id", id); err != nil {
		return model.Lead{}, err
	}
	lead, err := s.repo.GetLead(ctx, id)
	if err != nil {
		return model.Lead{}, s.lookupErr(op, "lead", id, err)
	}
	return lead, nil
}
