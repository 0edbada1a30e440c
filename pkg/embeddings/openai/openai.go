// Package openai implements pkg/embeddings' provider contract for the
// OpenAI API.
package openai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/embedviz/embedviz/pkg/embeddings"
)

// DefaultEmbeddingModel is the default model used for embeddings.
const DefaultEmbeddingModel = openai.EmbeddingModelTextEmbedding3Small

// Embedder wraps the OpenAI embeddings and models APIs.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// EmbedderConfig holds configuration for the OpenAI embedder.
type EmbedderConfig struct {
	// APIKey authorizes requests. Falls back to the OPENAI_API_KEY
	// environment variable when empty.
	APIKey string

	// BaseURL overrides the OpenAI API URL, for proxies and
	// API-compatible gateways. Leave empty for the official endpoint.
	BaseURL string

	// Model is the embedding model to use. Defaults to
	// DefaultEmbeddingModel if empty.
	Model string
}

// NewEmbedder creates a new embedder using the OpenAI API.
func NewEmbedder(cfg EmbedderConfig) (*Embedder, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: an OpenAI API key is required", embeddings.ErrEmbedding)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := openai.EmbeddingModel(cfg.Model)
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client := openai.NewClient(opts...)

	return &Embedder{
		client: &client,
		model:  model,
	}, nil
}

// Embed converts text into a vector embedding.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", embeddings.ErrEmbedding, err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", embeddings.ErrEmbedding)
	}

	return resp.Data[0].Embedding, nil
}

// Ping checks that the OpenAI API is reachable with the configured key.
func (e *Embedder) Ping(ctx context.Context) error {
	if _, err := e.client.Models.List(ctx); err != nil {
		return fmt.Errorf("%w: openai unreachable: %v", embeddings.ErrEmbedding, err)
	}

	return nil
}

// ListModels returns the models visible to the configured API key.
func (e *Embedder) ListModels(ctx context.Context) ([]embeddings.Model, error) {
	page, err := e.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing models: %v", embeddings.ErrEmbedding, err)
	}

	models := make([]embeddings.Model, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, embeddings.Model{
			Name:       m.ID,
			ModifiedAt: time.Unix(m.Created, 0).UTC(),
			Details: embeddings.ModelDetails{
				Family: m.OwnedBy,
			},
		})
	}

	return models, nil
}

// ShowModel returns the model card for a single model. OpenAI exposes
// only a thin metadata record, which is mapped onto the card's
// ModelInfo.
func (e *Embedder) ShowModel(ctx context.Context, name string) (*embeddings.ModelCard, error) {
	if name == "" {
		name = string(e.model)
	}

	m, err := e.client.Models.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching model %s: %v", embeddings.ErrEmbedding, name, err)
	}

	return &embeddings.ModelCard{
		Details: embeddings.ModelDetails{
			Family: m.OwnedBy,
		},
		ModelInfo: map[string]any{
			"id":       m.ID,
			"created":  m.Created,
			"owned_by": m.OwnedBy,
		},
	}, nil
}

// Close releases resources held by the embedder.
func (e *Embedder) Close() error {
	return nil
}

var (
	_ embeddings.Embedder  = (*Embedder)(nil)
	_ embeddings.Pinger    = (*Embedder)(nil)
	_ embeddings.Lister    = (*Embedder)(nil)
	_ embeddings.Inspector = (*Embedder)(nil)
)
