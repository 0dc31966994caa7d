// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/akirun/vdotcoach/internal/domain/types"
)

// PlanDependencies defines the interface for planner prefill.
type PlanDependencies interface {
	PlanPrefill(ctx context.Context, rawQuery string) types.PlanForm
}

// PlanHandler handles planner prefill requests.
type PlanHandler struct {
	deps PlanDependencies
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(deps PlanDependencies) *PlanHandler {
	return &PlanHandler{deps: deps}
}

// HandleGetPlan handles GET /api/plan requests carrying the hand-off
// payload. Bad or missing payload values are never an error here: the
// planner must stay usable with any query string, so every response is
// a 200 with defaults substituted field by field.
func (h *PlanHandler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	form := h.deps.PlanPrefill(r.Context(), r.URL.RawQuery)
	writeJSON(w, http.StatusOK, form)
}
