package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyVector is returned when a vector has no components.
	ErrEmptyVector = errors.New("empty vector")

	// ErrZeroVector is returned when an operation is undefined for a
	// zero-norm vector, such as cosine similarity.
	ErrZeroVector = errors.New("zero-norm vector")
)

// DimensionMismatchError is returned when two vectors of different
// dimensionality are compared.
type DimensionMismatchError struct {
	LenA int
	LenB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: %d vs %d", e.LenA, e.LenB)
}
