package api

import (
	"context"
	"net/http"

	service "github.com/okian/revintel/internal/app"
	"github.com/okian/revintel/internal/domain/health"
)

// ModelDependencies is what the model handlers need from the service.
type ModelDependencies interface {
	CheckModelHealth(ctx context.Context) (health.Report, error)
	ModelMetadata() service.ModelMetadata
}

// ModelHandler reports model health and metadata.
type ModelHandler struct {
	deps ModelDependencies
}

// NewModelHandler creates a new model handler.
func NewModelHandler(deps ModelDependencies) *ModelHandler {
	return &ModelHandler{deps: deps}
}

// HandleHealth handles GET /v1/model/health.
func (h *ModelHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	rep, err := h.deps.CheckModelHealth(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleMetadata handles GET /v1/model/metadata.
func (h *ModelHandler) HandleMetadata(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.ModelMetadata())
}
