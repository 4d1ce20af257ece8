package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/okian/revintel/internal/adapters/ranking"
	"github.com/okian/revintel/internal/domain/types"
	"github.com/okian/revintel/pkg/apperr"
)

// TopLeads returns the best scored CRM leads. A zero limit returns the
// default page.
func (s *Service) TopLeads(ctx context.Context, limit int) ([]types.RankedLead, error) {
	const op = "top_leads"
	if limit == 0 {
		limit = defaultTopLeads
	}
	if limit < 0 || limit > s.maxTopLeads {
		return nil, apperr.Validation(op, "invalid request", apperr.FieldError{
			Field:   "limit",
			Message: "must be between 1 and " + strconv.Itoa(s.maxTopLeads),
		})
	}
	out, err := s.ranking.TopN(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, op, err)
	}
	return out, nil
}

// LeadRank returns the pipeline position of a lead that has been scored by id.
func (s *Service) LeadRank(ctx context.Context, leadID string) (types.RankedLead, error) {
	const op = "lead_rank"
	if _, err := s.GetLead(ctx, leadID); err != nil {
		return types.RankedLead{}, err
	}
	r, err := s.ranking.Rank(ctx, leadID)
	if errors.Is(err, ranking.ErrNotFound) {
		return types.RankedLead{}, &apperr.Error{
			Kind:    apperr.KindNotFound,
			Op:      op,
			Message: "lead " + leadID + " has not been scored yet",
			Err:     err,
		}
	}
	if err != nil {
		return types.RankedLead{}, apperr.Wrap(apperr.KindInternal, op, err)
	}
	return r, nil
}
