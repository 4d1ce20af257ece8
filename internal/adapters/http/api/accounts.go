package api

import (
	"context"
	"net/http"

	"github.com/okian/revintel/internal/domain/model"
	"github.com/okian/revintel/internal/domain/scoring"
)

// AccountDependencies is what the account handlers need from the service.
type AccountDependencies interface {
	ListAccounts(ctx context.Context, status model.AccountStatus) ([]model.Account, error)
	GetAccount(ctx context.Context, id string) (model.Account, error)
	AssessChurnRisk(ctx context.Context, accountID string) (scoring.Result, error)
	PredictConversion(ctx context.Context, accountID string) (scoring.Result, error)
}

// AccountsHandler serves CRM accounts and their churn and conversion scores.
type AccountsHandler struct {
	deps AccountDependencies
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(deps AccountDependencies) *AccountsHandler {
	return &AccountsHandler{deps: deps}
}

// HandleList handles GET /v1/accounts?status=S.
func (h *AccountsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := model.AccountStatus(r.URL.Query().Get("status"))
	accounts, err := h.deps.ListAccounts(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// HandleGet handles GET /v1/accounts/{id}.
func (h *AccountsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	acc, err := h.deps.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// HandleChurn handles GET /v1/accounts/{id}/churn.
func (h *AccountsHandler) HandleChurn(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.AssessChurnRisk(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleConversion handles GET /v1/accounts/{id}/conversion.
func (h *AccountsHandler) HandleConversion(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.PredictConversion(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
