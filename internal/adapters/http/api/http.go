// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/moveboard/moveboard/internal/domain/dedupe"
	"github.com/moveboard/moveboard/internal/domain/model"
	"github.com/moveboard/moveboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a comparison event for async processing.
	// Returns false on backpressure.
	Enqueue(ctx context.Context, e model.Event) bool

	// Read operations expose ranking data.
	TierList(ctx context.Context, category string) (TierList, error)
	Standings(ctx context.Context, category string) ([]Standing, error)
	Predict(ctx context.Context, category, idA, idB string) (Prediction, error)
	Categories() []string
}

// Read shapes returned by ranking queries.
type (
	TierList   = types.TierList
	Standing   = types.Standing
	Prediction = types.Prediction
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	comparisonsHandler *ComparisonsHandler
	tierListHandler    *TierListHandler
	standingsHandler   *StandingsHandler
	predictHandler     *PredictHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		comparisonsHandler: NewComparisonsHandler(deps),
		tierListHandler:    NewTierListHandler(deps),
		standingsHandler:   NewStandingsHandler(deps),
		predictHandler:     NewPredictHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/comparisons", MetricsMiddleware(s.comparisonsHandler.HandlePostComparison, "comparisons"))
	mux.HandleFunc("/tierlist", MetricsMiddleware(s.tierListHandler.HandleGetTierList, "tierlist"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandleGetPrediction, "predict"))
}

// comparisonRequest mirrors the wire schema for POST /comparisons.
type comparisonRequest struct {
	EventID  string `json:"event_id"`
	ItemA    string `json:"item_a"`
	ItemB    string `json:"item_b"`
	Outcome  string `json:"outcome"`
	Category string `json:"category"`
	TS       string `json:"ts"`
}

func (c comparisonRequest) validate() error {
	switch {
	case strings.TrimSpace(c.ItemA) == "":
		return errors.New("missing item_a")
	case strings.TrimSpace(c.ItemB) == "":
		return errors.New("missing item_b")
	case strings.TrimSpace(c.Category) == "":
		return errors.New("missing category")
	}
	if c.ItemA == c.ItemB {
		return errors.New("item_a and item_b must differ")
	}
	if !model.Outcome(c.Outcome).Valid() {
		return errors.New("outcome must be a_wins, b_wins or tie")
	}
	if c.TS != "" {
		if _, err := time.Parse(time.RFC3339, c.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

// event converts a validated request to the domain event. The timestamp
// defaults to the server clock when the client omitted it.
func (c comparisonRequest) event() model.Event {
	ts := time.Now().UTC()
	if c.TS != "" {
		ts, _ = time.Parse(time.RFC3339, c.TS)
	}
	return model.Event{
		EventID:  c.EventID,
		ItemA:    c.ItemA,
		ItemB:    c.ItemB,
		Outcome:  model.Outcome(c.Outcome),
		Category: strings.ToLower(c.Category),
		TS:       ts,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
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
