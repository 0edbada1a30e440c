package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/embedviz/embedviz/pkg/embeddings"
)

// ModelsResponse lists the models available from the configured provider.
type ModelsResponse struct {
	Count  int                `json:"count"`
	Models []embeddings.Model `json:"models"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListModels returns the models available from the embedding provider.
func (s *Server) handleListModels(c *fiber.Ctx) error {
	lister, ok := embeddings.AsLister(s.embedder)
	if !ok {
		return c.Status(fiber.StatusNotImplemented).JSON(ErrorResponse{
			Error: "provider does not support listing models",
		})
	}

	models, err := lister.ListModels(c.Context())
	if err != nil {
		s.logger.Error("listing models", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "failed to list models",
		})
	}

	return c.JSON(ModelsResponse{
		Count:  len(models),
		Models: models,
	})
}

// handleShowModel returns details for a single model by name.
func (s *Server) handleShowModel(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "name parameter required",
		})
	}

	inspector, ok := embeddings.AsInspector(s.embedder)
	if !ok {
		return c.Status(fiber.StatusNotImplemented).JSON(ErrorResponse{
			Error: "provider does not support model details",
		})
	}

	card, err := inspector.ShowModel(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "model not found",
		})
	}

	// License text is large and uninteresting over the wire.
	card.License = ""

	return c.JSON(card)
}
