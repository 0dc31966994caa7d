// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/akirun/vdotcoach/internal/domain/types"
)

// ProjectionDependencies defines the interface for projection operations.
type ProjectionDependencies interface {
	Projection(ctx context.Context, distance, finish string) (types.Projection, error)
}

// ProjectionHandler handles calculator projection requests.
type ProjectionHandler struct {
	deps ProjectionDependencies
}

// NewProjectionHandler creates a new projection handler.
func NewProjectionHandler(deps ProjectionDependencies) *ProjectionHandler {
	return &ProjectionHandler{deps: deps}
}

// HandleGetProjection handles GET /api/projection?distance=D&time=T requests.
func (h *ProjectionHandler) HandleGetProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	distance := strings.TrimSpace(q.Get("distance"))
	finish := strings.TrimSpace(q.Get("time"))
	if distance == "" || finish == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	projection, err := h.deps.Projection(r.Context(), distance, finish)
	if err != nil {
		// Malformed input is the only failure mode of a pure computation.
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, projection)
}
