package seeder

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/moveboard/moveboard/internal/adapters/catalog"
)

// randomFloatDivisor bounds the resolution of getRandomFloat.
const randomFloatDivisor = 1000000

// Quality blend weights. Combo potential dominates because it separates
// moves of the same category more than raw safety does.
const (
	safetyWeight = 0.3
	comboWeight  = 0.4
	frameWeight  = 0.3
	qualityFloor = 0.05
)

// comparison is the wire shape submitted to POST /comparisons.
type comparison struct {
	EventID  string `json:"event_id"`
	ItemA    string `json:"item_a"`
	ItemB    string `json:"item_b"`
	Outcome  string `json:"outcome"`
	Category string `json:"category"`
	TS       string `json:"ts"`
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomIndex returns a random int in [0, n).
func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// quality collapses the derived frame-data fields into one positive
// strength signal used to bias outcomes.
func quality(m catalog.Move) float64 {
	q := m.SafetyRating*safetyWeight + m.ComboPotential*comboWeight + m.FrameEfficiency*frameWeight
	if q < qualityFloor {
		return qualityFloor
	}
	return q
}

// generateComparisons synthesizes biased comparisons between random move
// pairs of one category.
func generateComparisons(moves []catalog.Move, category string, count int) []comparison {
	out := make([]comparison, 0, count)
	for i := 0; i < count; i++ {
		a := randomIndex(len(moves))
		b := randomIndex(len(moves))
		if a == b {
			b = (b + 1) % len(moves)
		}
		out = append(out, comparison{
			EventID:  uuid.NewString(),
			ItemA:    moves[a].ID,
			ItemB:    moves[b].ID,
			Outcome:  biasedOutcome(moves[a], moves[b]),
			Category: category,
			TS:       time.Now().UTC().Format(time.RFC3339),
		})
	}
	return out
}

// biasedOutcome samples a winner with probability proportional to quality.
// A narrow band around even odds is reported as a tie.
func biasedOutcome(a, b catalog.Move) string {
	qa, qb := quality(a), quality(b)
	pA := qa / (qa + qb)
	r := getRandomFloat()
	switch {
	case r < pA-0.05:
		return "a_wins"
	case r > pA+0.05:
		return "b_wins"
	default:
		return "tie"
	}
}
