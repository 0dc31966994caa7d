// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/akirun/vdotcoach/internal/domain/types"
)

// ScheduleDependencies defines the interface for schedule operations.
type ScheduleDependencies interface {
	PlanSchedule(ctx context.Context, raceDate string) (types.Schedule, error)
}

// ScheduleHandler handles training window requests.
type ScheduleHandler struct {
	deps ScheduleDependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps ScheduleDependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

// HandleGetSchedule handles GET /api/schedule?race_date=YYYY-MM-DD requests.
func (h *ScheduleHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	raceDate := strings.TrimSpace(r.URL.Query().Get("race_date"))
	if raceDate == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	schedule, err := h.deps.PlanSchedule(r.Context(), raceDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}
