package api

import (
	"context"
	"net/http"

	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
	"github.com/okian/revintel/internal/domain/types"
)

// LeadDependencies is what the lead handlers need from the service.
type LeadDependencies interface {
	ScoreLead(ctx context.Context, req service.ScoreLeadRequest) (scoring.Result, error)
	ListLeads(ctx context.Context) ([]model.Lead, error)
	GetLead(ctx context.Context, id string) (model.Lead, error)
	TopLeads(ctx context.Context, limit int) ([]types.RankedLead, error)
	LeadRank(ctx context.Context, leadID string) (types.RankedLead, error)
}

// LeadsHandler serves lead scoring and ranking.
type LeadsHandler struct {
	deps LeadDependencies
}

// NewLeadsHandler creates a new leads handler.
func NewLeadsHandler(deps LeadDependencies) *LeadsHandler {
	return &LeadsHandler{deps: deps}
}

// HandleScore handles POST /v1/leads/score.
func (h *LeadsHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req service.ScoreLeadRequest
	if err := decodeJSON(w, r, "score_lead", &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.deps.ScoreLead(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleList handles GET /v1/leads.
func (h *LeadsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.deps.ListLeads(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// HandleGet handles GET /v1/leads/{id}.
func (h *LeadsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	lead, err := h.deps.GetLead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// HandleTop handles GET /v1/leads/top?limit=N.
func (h *LeadsHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "top_leads", "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	leads, err := h.deps.TopLeads(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// HandleRank handles GET /v1/leads/{id}/rank.
func (h *LeadsHandler) HandleRank(w http.ResponseWriter, r *http.Request) {
	rank, err := h.deps.LeadRank(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rank)
}
