package api

import (
	"context"
	"net/http"
	"strings"
)

// PredictDependencies defines the interface for head-to-head predictions.
type PredictDependencies interface {
	Predict(ctx context.Context, category, idA, idB string) (Prediction, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandleGetPrediction handles GET /predict?category=C&a=X&b=Y requests.
func (h *PredictHandler) HandleGetPrediction(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_prediction"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	idA := strings.TrimSpace(q.Get("a"))
	idB := strings.TrimSpace(q.Get("b"))
	if category == "" || idA == "" || idB == "" || idA == idB {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	p, err := h.deps.Predict(r.Context(), category, idA, idB)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}
