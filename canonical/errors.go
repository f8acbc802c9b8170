package canonical

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a value violates the data model
	// invariants: duplicate object keys or non-finite numbers.
	ErrInvalidInput = errors.New("canonical: invalid input")

	// ErrDepthExceeded is returned when nesting exceeds Config.MaxDepth.
	// It also matches ErrInvalidInput.
	ErrDepthExceeded = fmt.Errorf("%w: maximum nesting depth exceeded", ErrInvalidInput)
)
