package similarity_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/embedviz/embedviz/pkg/similarity"
	"github.com/embedviz/embedviz/pkg/vector"
)

func TestSimilarity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Similarity Suite")
}

var _ = Describe("Cosine", func() {
	It("returns 1 for identical vectors", func() {
		cos, err := similarity.Cosine([]float64{1, 2, 3}, []float64{1, 2, 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(cos).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("returns 1 for parallel vectors of different magnitude", func() {
		cos, err := similarity.Cosine([]float64{1, 2, 3}, []float64{2, 4, 6})
		Expect(err).NotTo(HaveOccurred())
		Expect(cos).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("returns 0 for orthogonal vectors", func() {
		cos, err := similarity.Cosine([]float64{1, 0}, []float64{0, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(cos).To(BeZero())
	})

	It("returns -1 for opposite vectors", func() {
		cos, err := similarity.Cosine([]float64{1, 2}, []float64{-1, -2})
		Expect(err).NotTo(HaveOccurred())
		Expect(cos).To(BeNumerically("~", -1.0, 1e-12))
	})

	It("matches a hand-computed value", func() {
		// dot = 32, |a| = sqrt(14), |b| = sqrt(77)
		cos, err := similarity.Cosine([]float64{1, 2, 3}, []float64{4, 5, 6})
		Expect(err).NotTo(HaveOccurred())
		Expect(cos).To(BeNumerically("~", 0.9746318461970762, 1e-12))
	})

	It("is symmetric", func() {
		a := []float64{0.3, -0.2, 0.8}
		b := []float64{-0.5, 0.1, 0.4}

		ab, err := similarity.Cosine(a, b)
		Expect(err).NotTo(HaveOccurred())
		ba, err := similarity.Cosine(b, a)
		Expect(err).NotTo(HaveOccurred())
		Expect(ab).To(Equal(ba))
	})

	It("rejects a zero-norm first vector", func() {
		_, err := similarity.Cosine([]float64{0, 0, 0}, []float64{1, 2, 3})
		Expect(err).To(MatchError(vector.ErrZeroVector))
	})

	It("rejects a zero-norm second vector", func() {
		_, err := similarity.Cosine([]float64{1, 2, 3}, []float64{0, 0, 0})
		Expect(err).To(MatchError(vector.ErrZeroVector))
	})

	It("rejects empty vectors", func() {
		_, err := similarity.Cosine(nil, []float64{1})
		Expect(err).To(MatchError(vector.ErrEmptyVector))
	})

	It("rejects mismatched dimensions", func() {
		_, err := similarity.Cosine([]float64{1, 2}, []float64{1, 2, 3})

		var mismatch *vector.DimensionMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
	})
})

var _ = Describe("Euclidean", func() {
	It("returns 0 for identical vectors", func() {
		dist, err := similarity.Euclidean([]float64{1, 2, 3}, []float64{1, 2, 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeZero())
	})

	It("matches a 3-4-5 triangle", func() {
		dist, err := similarity.Euclidean([]float64{0, 0}, []float64{3, 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeNumerically("~", 5.0, 1e-12))
	})

	It("matches a hand-computed value", func() {
		// sqrt(27)
		dist, err := similarity.Euclidean([]float64{1, 2, 3}, []float64{4, 5, 6})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeNumerically("~", 5.196152422706632, 1e-12))
	})

	It("is symmetric", func() {
		a := []float64{0.3, -0.2, 0.8}
		b := []float64{-0.5, 0.1, 0.4}

		ab, err := similarity.Euclidean(a, b)
		Expect(err).NotTo(HaveOccurred())
		ba, err := similarity.Euclidean(b, a)
		Expect(err).NotTo(HaveOccurred())
		Expect(ab).To(Equal(ba))
	})

	It("accepts zero-norm vectors", func() {
		dist, err := similarity.Euclidean([]float64{0, 0}, []float64{0, 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(dist).To(BeZero())
	})

	It("rejects empty vectors", func() {
		_, err := similarity.Euclidean([]float64{}, []float64{1})
		Expect(err).To(MatchError(vector.ErrEmptyVector))
	})

	It("rejects mismatched dimensions", func() {
		_, err := similarity.Euclidean([]float64{1}, []float64{1, 2})

		var mismatch *vector.DimensionMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
	})
})

var _ = Describe("Evaluate", func() {
	It("computes all metrics for a pair", func() {
		result, err := similarity.Evaluate([]float64{1, 2, 3}, []float64{4, 5, 6})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Cosine).To(BeNumerically("~", 0.9746318461970762, 1e-12))
		Expect(result.Euclidean).To(BeNumerically("~", 5.196152422706632, 1e-12))
	})

	It("returns an empty result when the pair is degenerate", func() {
		result, err := similarity.Evaluate([]float64{0, 0}, []float64{1, 2})
		Expect(err).To(MatchError(vector.ErrZeroVector))
		Expect(result).To(BeZero())
	})

	It("returns an empty result for mismatched dimensions", func() {
		result, err := similarity.Evaluate([]float64{1}, []float64{1, 2})

		var mismatch *vector.DimensionMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
		Expect(result).To(BeZero())
	})
})
