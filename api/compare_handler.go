package api

import (
	"bytes"
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/embedviz/embedviz/pkg/figure"
	"github.com/embedviz/embedviz/pkg/similarity"
)

// CompareRequest is the body for POST /v1/compare and POST /v1/compare/plot.
type CompareRequest struct {
	TextA string `json:"text_a" validate:"required"`
	TextB string `json:"text_b" validate:"required"`

	// IncludeEmbeddings requests the raw vectors in the response.
	IncludeEmbeddings bool `json:"include_embeddings"`
}

// CompareResponse holds the similarity metrics for one comparison.
type CompareResponse struct {
	RequestID         string    `json:"request_id"`
	Model             string    `json:"model"`
	Dimensions        int       `json:"dimensions"`
	CosineSimilarity  float64   `json:"cosine_similarity"`
	EuclideanDistance float64   `json:"euclidean_distance"`
	EmbeddingA        []float64 `json:"embedding_a,omitempty"`
	EmbeddingB        []float64 `json:"embedding_b,omitempty"`
}

// handleCompare handles POST /v1/compare.
func (s *Server) handleCompare(c *fiber.Ctx) error {
	var req CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}

	if err := s.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: validationMessage(err),
		})
	}

	requestID := uuid.NewString()

	a, b, err := s.fetchPair(c.Context(), req.TextA, req.TextB)
	if err != nil {
		s.logger.Error("fetching embeddings", "request_id", requestID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "failed to fetch embeddings",
		})
	}

	result, err := similarity.Evaluate(a, b)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	resp := CompareResponse{
		RequestID:         requestID,
		Model:             s.config.Model,
		Dimensions:        len(a),
		CosineSimilarity:  result.Cosine,
		EuclideanDistance: result.Euclidean,
	}
	if req.IncludeEmbeddings {
		resp.EmbeddingA = a
		resp.EmbeddingB = b
	}

	s.logger.Info("comparison served",
		"request_id", requestID,
		"dimensions", resp.Dimensions,
	)

	return c.JSON(resp)
}

// handleComparePlot handles POST /v1/compare/plot.
// The optional format query parameter selects png (default) or svg output.
func (s *Server) handleComparePlot(c *fiber.Ctx) error {
	var req CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}

	if err := s.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: validationMessage(err),
		})
	}

	format := c.Query("format", "png")
	if format != "png" && format != "svg" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "format must be png or svg",
		})
	}

	requestID := uuid.NewString()

	a, b, err := s.fetchPair(c.Context(), req.TextA, req.TextB)
	if err != nil {
		s.logger.Error("fetching embeddings", "request_id", requestID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "failed to fetch embeddings",
		})
	}

	fig, err := figure.Render(a, b)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	// Render into a buffer first so a failure never emits a partial image.
	var buf bytes.Buffer
	switch format {
	case "svg":
		err = fig.WriteSVG(&buf)
	default:
		err = fig.WritePNG(&buf)
	}
	if err != nil {
		s.logger.Error("rendering figure", "request_id", requestID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to render figure",
		})
	}

	if format == "svg" {
		c.Set(fiber.HeaderContentType, "image/svg+xml")
	} else {
		c.Set(fiber.HeaderContentType, "image/png")
	}

	s.logger.Info("figure served",
		"request_id", requestID,
		"format", format,
		"bytes", buf.Len(),
	)

	return c.Send(buf.Bytes())
}

// fetchPair embeds both texts concurrently against the provider.
func (s *Server) fetchPair(ctx context.Context, textA, textB string) ([]float64, []float64, error) {
	var a, b []float64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.embedder.Embed(ctx, textA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.embedder.Embed(ctx, textB)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return a, b, nil
}

// validationMessage renders a terse, user-facing message for a validation error.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fe.Field() + " is required"
		}
		return fe.Field() + " is invalid"
	}
	return "invalid request body"
}
