package api

import (
	"context"
	"net/http"
	"strings"
)

// StandingsDependencies defines the interface for standings reads.
type StandingsDependencies interface {
	Standings(ctx context.Context, category string) ([]Standing, error)
}

// StandingsHandler handles flat standings requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleGetStandings handles GET /standings?category=C requests.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.Standings(r.Context(), category)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
