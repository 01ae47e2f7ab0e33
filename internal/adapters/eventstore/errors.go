package eventstore

import "errors"

// Sentinel kinds for event store errors.
var (
	ErrInvalidEvent   = errors.New("invalid event")
	ErrSelfComparison = errors.New("event compares a move against itself")
)
