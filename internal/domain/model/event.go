// Package model contains domain models passed between layers.
package model

import "time"

// Outcome is the result of one pairwise comparison.
type Outcome string

// Possible comparison outcomes. These values appear on the wire.
const (
	OutcomeAWins Outcome = "a_wins"
	OutcomeBWins Outcome = "b_wins"
	OutcomeTie   Outcome = "tie"
)

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeAWins, OutcomeBWins, OutcomeTie:
		return true
	}
	return false
}

// Event is an immutable record of one pairwise judgment between two moves
// of the same category. Events are append-only; nothing downstream ever
// mutates one once accepted.
type Event struct {
	EventID  string    // client-supplied idempotency key, generated server-side when absent
	ItemA    string    // first move identifier
	ItemB    string    // second move identifier, must differ from ItemA
	Outcome  Outcome   // a_wins, b_wins or tie
	Category string    // comparison partition, e.g. "jab"
	TS       time.Time // judgment timestamp
}
