// Package api serves the scoring service over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/revintel/pkg/apperr"
)

const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Each handler declares the slice of
// it that it uses.
type Dependencies interface {
	LeadDependencies
	AccountDependencies
	ModelDependencies
	PredictionDependencies
	RescoreDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leadsHandler       *LeadsHandler
	accountsHandler    *AccountsHandler
	modelHandler       *ModelHandler
	predictionsHandler *PredictionsHandler
	rescoreHandler     *RescoreHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		leadsHandler:       NewLeadsHandler(deps),
		accountsHandler:    NewAccountsHandler(deps),
		modelHandler:       NewModelHandler(deps),
		predictionsHandler: NewPredictionsHandler(deps),
		rescoreHandler:     NewRescoreHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /v1/leads", MetricsMiddleware(s.leadsHandler.HandleList, "leads_list"))
	mux.HandleFunc("POST /v1/leads/score", MetricsMiddleware(s.leadsHandler.HandleScore, "leads_score"))
	mux.HandleFunc("GET /v1/leads/top", MetricsMiddleware(s.leadsHandler.HandleTop, "leads_top"))
	mux.HandleFunc("GET /v1/leads/{id}", MetricsMiddleware(s.leadsHandler.HandleGet, "leads_get"))
	mux.HandleFunc("GET /v1/leads/{id}/rank", MetricsMiddleware(s.leadsHandler.HandleRank, "leads_rank"))

	mux.HandleFunc("GET /v1/accounts", MetricsMiddleware(s.accountsHandler.HandleList, "accounts_list"))
	mux.HandleFunc("GET /v1/accounts/{id}", MetricsMiddleware(s.accountsHandler.HandleGet, "accounts_get"))
	mux.HandleFunc("GET /v1/accounts/{id}/churn", MetricsMiddleware(s.accountsHandler.HandleChurn, "accounts_churn"))
	mux.HandleFunc("GET /v1/accounts/{id}/conversion", MetricsMiddleware(s.accountsHandler.HandleConversion, "accounts_conversion"))

	mux.HandleFunc("GET /v1/model/health", MetricsMiddleware(s.modelHandler.HandleHealth, "model_health"))
	mux.HandleFunc("GET /v1/model/metadata", MetricsMiddleware(s.modelHandler.HandleMetadata, "model_metadata"))

	mux.HandleFunc("POST /v1/predictions", MetricsMiddleware(s.predictionsHandler.HandleLog, "predictions_log"))
	mux.HandleFunc("GET /v1/predictions", MetricsMiddleware(s.predictionsHandler.HandleList, "predictions_list"))

	mux.HandleFunc("POST /v1/rescore", MetricsMiddleware(s.rescoreHandler.HandleRescore, "rescore"))
}

type errorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []apperr.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err with the status of its apperr kind. Internal
// failures are reported without detail.
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Code: apperr.KindInternal.String(), Message: http.StatusText(http.StatusInternalServerError)}
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind != apperr.KindInternal && e.Kind != apperr.KindUnknown {
		resp.Code = e.Kind.String()
		resp.Message = e.Message
		resp.Fields = e.Fields
	}
	writeJSON(w, apperr.StatusOf(err), resp)
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Op: op, Message: fmt.Sprintf("%v: %v", ErrInvalidBody, err), Err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &apperr.Error{Kind: apperr.KindValidation, Op: op, Message: ErrInvalidBody.Error() + ": trailing data", Err: ErrInvalidBody}
	}
	return nil
}

// queryInt parses an optional integer query parameter, zero when absent.
func queryInt(r *http.Request, op, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &apperr.Error{
			Kind:    apperr.KindValidation,
			Op:      op,
			Message: "invalid request",
			Fields:  []apperr.FieldError{{Field: name, Message: "must be an integer"}},
			Err:     ErrBadRequest,
		}
	}
	return n, nil
}
