package api

import (
	"context"
	"net/http"
	"strconv"

	service "github.com/okian/revintel/internal/app"
)

// RescoreDependencies triggers a background rescoring sweep.
type RescoreDependencies interface {
	EnqueueSweep(ctx context.Context) (service.SweepResult, error)
}

// RescoreHandler handles rescore requests.
type RescoreHandler struct {
	deps RescoreDependencies
}

// NewRescoreHandler creates a new rescore handler.
func NewRescoreHandler(deps RescoreDependencies) *RescoreHandler {
	return &RescoreHandler{deps: deps}
}

// HandleRescore handles POST /v1/rescore. A partially queued sweep still
// reports how far it got alongside the 503.
func (h *RescoreHandler) HandleRescore(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.EnqueueSweep(r.Context())
	if err != nil {
		if res.Queued > 0 {
			w.Header().Set("X-Rescore-Queued", strconv.Itoa(res.Queued))
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, res)
}
