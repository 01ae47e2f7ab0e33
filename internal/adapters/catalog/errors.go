package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNoCatalog     = errors.New("no catalog for category")
	ErrEmptyBundle   = errors.New("empty bundle")
	ErrDuplicateMove = errors.New("duplicate move id")
)
