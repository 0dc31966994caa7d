// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/akirun/vdotcoach/internal/domain/types"
)

// HandoffLinkDependencies defines the interface for link building.
type HandoffLinkDependencies interface {
	HandoffLink(ctx context.Context, distance, finish, target string) (types.HandoffLink, error)
}

// HandoffLinkHandler handles outbound planner link requests.
type HandoffLinkHandler struct {
	deps HandoffLinkDependencies
}

// NewHandoffLinkHandler creates a new hand-off link handler.
func NewHandoffLinkHandler(deps HandoffLinkDependencies) *HandoffLinkHandler {
	return &HandoffLinkHandler{deps: deps}
}

// HandleGetHandoffLink handles GET /api/handoff-link?distance=D&time=T&target=G requests.
func (h *HandoffLinkHandler) HandleGetHandoffLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	distance := strings.TrimSpace(q.Get("distance"))
	finish := strings.TrimSpace(q.Get("time"))
	target := strings.TrimSpace(q.Get("target"))
	if distance == "" || finish == "" || target == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	link, err := h.deps.HandoffLink(r.Context(), distance, finish, target)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}
