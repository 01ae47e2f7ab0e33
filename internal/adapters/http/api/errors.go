package api

import (
	"errors"
	"fmt"

	"github.com/moveboard/moveboard/internal/adapters/catalog"
	service "github.com/moveboard/moveboard/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
)

// NewKind tags a sentinel with the failing operation.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel and its cause with the failing operation.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap tags an error with the failing operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// isNotFound translates upstream lookup failures to 404.
func isNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNoCatalog) || errors.Is(err, service.ErrUnknownItem)
}
