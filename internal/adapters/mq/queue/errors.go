package queue

import "errors"

// Sentinel errors for queue consumers.
var (
	ErrClosed = errors.New("queue closed")
)
