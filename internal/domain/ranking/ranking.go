// Package ranking computes per-move standings from a log of pairwise
// comparison events using a win-rate-seeded Bradley-Terry-Luce heuristic.
//
// Everything in this package is a pure function of its inputs: no I/O, no
// timers, no shared state. Callers hand Compute a snapshot of the event
// log and get fresh values back; re-invocation on a newer snapshot is the
// only update mechanism.
package ranking

import (
	"math"

	"github.com/moveboard/moveboard/internal/domain/model"
)

// Logistic confidence curve constants. Confidence(10) == 0.5 exactly.
const (
	confidenceSteepness = 0.5
	confidenceMidpoint  = 10.0
)

// predictionTolerance is the band inside which two win rates are treated
// as "no clear prediction".
const predictionTolerance = 0.1

// neutralScore is the prior assigned to moves with no comparison data.
const neutralScore = 0.5

// Event is the comparison record the engine consumes.
// Using the model.Event type for consistency with the ingestion path.
type Event = model.Event

// Item is the minimal view of a catalog move the engine needs. The
// descriptive payload (name, owner, frame data) stays with the catalog;
// the engine only ever sees resolved identifiers.
type Item struct {
	ID       string
	Category string
}

// Standing is the derived per-move summary. It is recomputed from scratch
// on every call to Compute and never persisted by the engine.
type Standing struct {
	ItemID     string
	Score      float64 // strength in [0,1]
	Wins       float64 // tie counts as 0.5
	Total      int
	WinRate    float64
	Confidence float64 // 0 when Total == 0
	Opponents  int     // distinct opponents faced
}

// Standings is the result of one full recomputation for a category.
// InsufficientData is a first-class output state, not an error: it lets
// callers render "no rankings yet" distinctly from "ranked and weak".
type Standings struct {
	Category         string
	Entries          []Standing
	InsufficientData bool
}

// Confidence maps a total comparison count onto [0,1] via a logistic
// curve: 0.5 at n=10, approaching 1 as n grows. Exposed standalone so the
// presentation layer can show a trust indicator.
func Confidence(n int) float64 {
	return 1.0 / (1.0 + math.Exp(-confidenceSteepness*(float64(n)-confidenceMidpoint)))
}

// shares returns the win-equivalent credited to each participant:
// 1/0 for a win, 0.5/0.5 for a tie. ok is false for unknown outcomes.
func shares(o model.Outcome) (a, b float64, ok bool) {
	switch o {
	case model.OutcomeAWins:
		return 1, 0, true
	case model.OutcomeBWins:
		return 0, 1, true
	case model.OutcomeTie:
		return 0.5, 0.5, true
	}
	return 0, 0, false
}

// tally accumulates win shares and opponents for one move.
type tally struct {
	wins      float64
	total     int
	opponents map[string]struct{}
}

// Compute derives one Standing per item from the events restricted to
// category. The events slice may be an unfiltered global log; anything
// outside the category is ignored. An event is skipped entirely unless
// both participants are known items of the category (the strict policy
// for dangling references), and self-comparisons are skipped as well.
//
// Scores are seeded per move as winRate * (0.5 + 0.5*Confidence(total))
// and then min-max rescaled across the moves that have data; moves with
// no data keep the neutral 0.5 untouched. This deliberately avoids a full
// joint maximum-likelihood BTL solve: the comparison graph is typically
// sparse and the per-move heuristic is cheaper and more stable on small
// samples.
//
// Output order follows the input items order, so repeated calls on the
// same snapshot are bit-identical.
func Compute(items []Item, events []Event, category string) Standings {
	out := Standings{Category: category}

	known := make(map[string]*tally, len(items))
	for _, it := range items {
		if it.Category != "" && it.Category != category {
			continue
		}
		known[it.ID] = &tally{opponents: make(map[string]struct{})}
	}

	used := 0
	for i := range events {
		e := &events[i]
		if e.Category != category || e.ItemA == e.ItemB {
			continue
		}
		sa, sb, ok := shares(e.Outcome)
		if !ok {
			continue
		}
		ta, ok := known[e.ItemA]
		if !ok {
			continue
		}
		tb, ok := known[e.ItemB]
		if !ok {
			continue
		}
		ta.wins += sa
		tb.wins += sb
		ta.total++
		tb.total++
		ta.opponents[e.ItemB] = struct{}{}
		tb.opponents[e.ItemA] = struct{}{}
		used++
	}

	out.InsufficientData = used == 0

	// Seed pass, tracking the empirical range of scored moves only.
	minSeed, maxSeed := math.Inf(1), math.Inf(-1)
	out.Entries = make([]Standing, 0, len(items))
	for _, it := range items {
		t, ok := known[it.ID]
		if !ok {
			continue
		}
		s := Standing{ItemID: it.ID, Score: neutralScore, Opponents: len(t.opponents)}
		if t.total > 0 {
			s.Wins = t.wins
			s.Total = t.total
			s.WinRate = t.wins / float64(t.total)
			s.Confidence = Confidence(t.total)
			s.Score = s.WinRate * (0.5 + 0.5*s.Confidence)
			if s.Score < minSeed {
				minSeed = s.Score
			}
			if s.Score > maxSeed {
				maxSeed = s.Score
			}
		}
		out.Entries = append(out.Entries, s)
	}

	// Min-max rescale maps the empirical range onto [0,1]. A degenerate
	// range (single scored move, or all seeds equal) keeps raw seeds to
	// avoid dividing by zero.
	if maxSeed > minSeed {
		span := maxSeed - minSeed
		for i := range out.Entries {
			if out.Entries[i].Total > 0 {
				out.Entries[i].Score = (out.Entries[i].Score - minSeed) / span
			}
		}
	}

	return out
}

// Prediction is a head-to-head diagnostic built from raw win/total
// tallies, not from rescaled strength scores. It exists so the
// presentation layer can show "the model thought X would win" next to the
// user's actual pick; it plays no part in the ranking computation.
type Prediction struct {
	ItemA      string
	ItemB      string
	ScoreA     float64
	ScoreB     float64
	Winner     string // empty when there is no clear prediction
	Confidence float64
}

// PredictOutcome compares two standings' win rates. When the two scores
// are within the fixed 0.1 tolerance band of each other, no winner is
// named.
func PredictOutcome(a, b Standing) Prediction {
	p := Prediction{
		ItemA:      a.ItemID,
		ItemB:      b.ItemID,
		ScoreA:     0.5,
		ScoreB:     0.5,
		Confidence: Confidence(a.Total + b.Total),
	}
	if sum := a.WinRate + b.WinRate; sum > 0 {
		p.ScoreA = a.WinRate / sum
		p.ScoreB = 1 - p.ScoreA
	}
	switch {
	case p.ScoreA > p.ScoreB+predictionTolerance:
		p.Winner = a.ItemID
	case p.ScoreB > p.ScoreA+predictionTolerance:
		p.Winner = b.ItemID
	}
	return p
}
