package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by service operations.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrUnknownItem = errors.New("unknown item")
)

func unknownItem(id, category string) error {
	return fmt.Errorf("%w: %q in category %q", ErrUnknownItem, id, category)
}
