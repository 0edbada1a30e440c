// Package similarity computes comparison metrics between embedding vectors.
package similarity

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/embedviz/embedviz/pkg/vector"
)

// Result holds the metrics computed for a pair of embeddings.
type Result struct {
	// Cosine is the cosine similarity between the two vectors, in [-1, 1].
	Cosine float64

	// Euclidean is the Euclidean (L2) distance between the two vectors.
	Euclidean float64
}

// Cosine returns the cosine similarity between a and b. The similarity is
// undefined for zero-norm vectors, in which case vector.ErrZeroVector is
// returned.
func Cosine(a, b []float64) (float64, error) {
	if err := vector.CheckPair(a, b); err != nil {
		return 0, err
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("cosine similarity undefined: %w", vector.ErrZeroVector)
	}

	return floats.Dot(a, b) / (normA * normB), nil
}

// Euclidean returns the Euclidean distance between a and b.
func Euclidean(a, b []float64) (float64, error) {
	if err := vector.CheckPair(a, b); err != nil {
		return 0, err
	}

	return floats.Distance(a, b, 2), nil
}

// Evaluate computes every metric for the pair. Errors from any single
// metric fail the whole evaluation, so a Result is either complete or
// absent.
func Evaluate(a, b []float64) (Result, error) {
	cos, err := Cosine(a, b)
	if err != nil {
		return Result{}, err
	}

	dist, err := Euclidean(a, b)
	if err != nil {
		return Result{}, err
	}

	return Result{Cosine: cos, Euclidean: dist}, nil
}
