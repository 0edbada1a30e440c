// Package vector provides validation and shared helpers for embedding vectors.
package vector

import "gonum.org/v1/gonum/floats"

// CheckPair validates that a and b are both non-empty and share the same
// dimensionality. It returns ErrEmptyVector or a DimensionMismatchError
// when the pair cannot be compared.
func CheckPair(a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptyVector
	}
	if len(a) != len(b) {
		return &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}
	return nil
}

// Range returns the smallest and largest component across all given
// vectors. Empty vectors contribute nothing; the range over no components
// is (0, 0).
func Range(vs ...[]float64) (min, max float64) {
	first := true
	for _, v := range vs {
		if len(v) == 0 {
			continue
		}
		lo, hi := floats.Min(v), floats.Max(v)
		if first {
			min, max = lo, hi
			first = false
			continue
		}
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	return min, max
}
