package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/embedviz/embedviz/pkg/logger"
	testutils "github.com/embedviz/embedviz/pkg/utils/test"
)

// compareRequest builds a POST request against path with the given JSON body.
func compareRequest(path, body string) *http.Request {
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")
	return req
}

var _ = Describe("handleCompare", func() {
	var (
		server   *Server
		provider *testutils.MockProvider
	)

	BeforeEach(func() {
		provider = testutils.NewMockProvider()
		provider.Embeddings["alpha"] = []float64{1, 2, 3}
		provider.Embeddings["beta"] = []float64{4, 5, 6}

		var err error
		server, err = NewServer(Config{ListenAddr: ":0", Model: "test-model"}, provider, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns metrics for a valid pair", func() {
		req := compareRequest("/v1/compare", `{"text_a": "alpha", "text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		var out CompareResponse
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(body, &out)).To(Succeed())

		Expect(out.RequestID).NotTo(BeEmpty())
		Expect(out.Model).To(Equal("test-model"))
		Expect(out.Dimensions).To(Equal(3))
		Expect(out.CosineSimilarity).To(BeNumerically("~", 0.9746318461970762, 1e-12))
		Expect(out.EuclideanDistance).To(BeNumerically("~", 5.196152422706632, 1e-12))
		Expect(out.EmbeddingA).To(BeNil())
		Expect(out.EmbeddingB).To(BeNil())
	})

	It("includes the raw vectors when requested", func() {
		req := compareRequest("/v1/compare", `{"text_a": "alpha", "text_b": "beta", "include_embeddings": true}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		var out CompareResponse
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(body, &out)).To(Succeed())

		Expect(out.EmbeddingA).To(Equal([]float64{1, 2, 3}))
		Expect(out.EmbeddingB).To(Equal([]float64{4, 5, 6}))
	})

	It("returns 400 for an invalid JSON body", func() {
		req := compareRequest("/v1/compare", `{not json`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
	})

	It("returns 400 when text_a is missing", func() {
		req := compareRequest("/v1/compare", `{"text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("text_a is required"))
	})

	It("returns 400 when text_b is missing", func() {
		req := compareRequest("/v1/compare", `{"text_a": "alpha"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("text_b is required"))
	})

	It("returns 502 when the provider fails", func() {
		provider.FailOn = "alpha"

		req := compareRequest("/v1/compare", `{"text_a": "alpha", "text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadGateway))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("failed to fetch embeddings"))
	})

	It("returns 422 for a zero-norm embedding", func() {
		provider.Embeddings["zero"] = []float64{0, 0, 0}

		req := compareRequest("/v1/compare", `{"text_a": "zero", "text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("zero-norm"))
	})

	It("returns 422 for mismatched dimensions", func() {
		provider.Embeddings["short"] = []float64{1, 2}

		req := compareRequest("/v1/compare", `{"text_a": "short", "text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("dimension mismatch"))
	})
})

var _ = Describe("handleComparePlot", func() {
	var (
		server   *Server
		provider *testutils.MockProvider
	)

	BeforeEach(func() {
		provider = testutils.NewMockProvider()
		provider.Embeddings["alpha"] = []float64{1, 2, 3}
		provider.Embeddings["beta"] = []float64{4, 5, 6}

		var err error
		server, err = NewServer(Config{ListenAddr: ":0", Model: "test-model"}, provider, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns a PNG figure by default", func() {
		req := compareRequest("/v1/compare/plot", `{"text_a": "alpha", "text_b": "beta"}`)

		resp, err := server.app.Test(req, 10000)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(Equal("image/png"))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(body[:8]).To(Equal([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}))
	})

	It("returns an SVG figure when requested", func() {
		req := compareRequest("/v1/compare/plot?format=svg", `{"text_a": "alpha", "text_b": "beta"}`)

		resp, err := server.app.Test(req, 10000)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(Equal("image/svg+xml"))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("<svg"))
	})

	It("returns 400 for an unknown format", func() {
		req := compareRequest("/v1/compare/plot?format=pdf", `{"text_a": "alpha", "text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("format must be png or svg"))
	})

	It("returns 400 when a text is missing", func() {
		req := compareRequest("/v1/compare/plot", `{"text_a": "alpha"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
	})

	It("returns 502 when the provider fails", func() {
		provider.FailOn = "beta"

		req := compareRequest("/v1/compare/plot", `{"text_a": "alpha", "text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadGateway))
	})

	It("returns 422 for mismatched dimensions", func() {
		provider.Embeddings["short"] = []float64{1, 2}

		req := compareRequest("/v1/compare/plot", `{"text_a": "short", "text_b": "beta"}`)

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))
	})
})
