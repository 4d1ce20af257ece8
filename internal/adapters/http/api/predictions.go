package api

import (
	"context"
	"net/http"

	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/model"
)

// PredictionDependencies is what the prediction log handlers need.
type PredictionDependencies interface {
	LogPrediction(ctx context.Context, req service.LogPredictionRequest) (service.LogPredictionResponse, error)
	ListPredictions(ctx context.Context, t model.PredictionType, limit int) ([]model.PredictionRecord, error)
}

// PredictionsHandler serves the prediction log.
type PredictionsHandler struct {
	deps PredictionDependencies
}

// NewPredictionsHandler creates a new predictions handler.
func NewPredictionsHandler(deps PredictionDependencies) *PredictionsHandler {
	return &PredictionsHandler{deps: deps}
}

// HandleLog handles POST /v1/predictions.
func (h *PredictionsHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	var req service.LogPredictionRequest
	if err := decodeJSON(w, r, "log_prediction", &req); err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.deps.LogPrediction(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /v1/predictions?type=T&limit=N.
func (h *PredictionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "get_prediction_logs", "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	t := model.PredictionType(r.URL.Query().Get("type"))
	recs, err := h.deps.ListPredictions(r.Context(), t, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
