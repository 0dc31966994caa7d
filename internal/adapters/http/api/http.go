// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akirun/vdotcoach/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Projection computes the calculator's answer for one race result.
	Projection(ctx context.Context, distance, finish string) (types.Projection, error)

	// HandoffLink builds the outbound planner URL for a race result.
	HandoffLink(ctx context.Context, distance, finish, target string) (types.HandoffLink, error)

	// PlanPrefill reads the hand-off payload and prefills the planner
	// form. It never fails; unreadable fields take their defaults.
	PlanPrefill(ctx context.Context, rawQuery string) types.PlanForm

	// PlanSchedule picks the training window for a race date.
	PlanSchedule(ctx context.Context, raceDate string) (types.Schedule, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	projectionHandler *ProjectionHandler
	linkHandler       *HandoffLinkHandler
	planHandler       *PlanHandler
	scheduleHandler   *ScheduleHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		projectionHandler: NewProjectionHandler(deps),
		linkHandler:       NewHandoffLinkHandler(deps),
		planHandler:       NewPlanHandler(deps),
		scheduleHandler:   NewScheduleHandler(deps),
		dashboardHandler:  newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/projection", MetricsMiddleware(s.projectionHandler.HandleGetProjection, "projection"))
	mux.HandleFunc("/api/handoff-link", MetricsMiddleware(s.linkHandler.HandleGetHandoffLink, "handoff_link"))
	mux.HandleFunc("/api/plan", MetricsMiddleware(s.planHandler.HandleGetPlan, "plan"))
	mux.HandleFunc("/api/schedule", MetricsMiddleware(s.scheduleHandler.HandleGetSchedule, "schedule"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
