package api

import (
	"context"
	"net/http"
	"strings"
)

// TierListDependencies defines the interface for tier list reads.
type TierListDependencies interface {
	TierList(ctx context.Context, category string) (TierList, error)
}

// TierListHandler handles tier list requests.
type TierListHandler struct {
	deps TierListDependencies
}

// NewTierListHandler creates a new tier list handler.
func NewTierListHandler(deps TierListDependencies) *TierListHandler {
	return &TierListHandler{deps: deps}
}

// HandleGetTierList handles GET /tierlist?category=C requests.
func (h *TierListHandler) HandleGetTierList(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_tierlist"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	tl, err := h.deps.TierList(r.Context(), category)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, tl)
}
