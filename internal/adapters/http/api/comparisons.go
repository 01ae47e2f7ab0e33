package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/moveboard/moveboard/internal/domain/dedupe"
	"github.com/moveboard/moveboard/internal/domain/model"
)

// ComparisonDependencies defines the interface for comparison ingestion.
type ComparisonDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, e model.Event) bool
}

// ComparisonsHandler handles comparison submissions.
type ComparisonsHandler struct {
	deps ComparisonDependencies
}

// NewComparisonsHandler creates a new comparisons handler.
func NewComparisonsHandler(deps ComparisonDependencies) *ComparisonsHandler {
	return &ComparisonsHandler{deps: deps}
}

// HandlePostComparison handles POST /comparisons requests.
func (h *ComparisonsHandler) HandlePostComparison(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_comparison"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req comparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Clients may omit event_id; a generated id still gets the event
	// through dedupe and into the log, it just cannot be retried
	// idempotently.
	if req.EventID == "" {
		req.EventID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", EventID: req.EventID, Duplicate: true})
		return
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), req.event()); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.EventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", EventID: req.EventID, Duplicate: false})
}
