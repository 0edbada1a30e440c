// Package ollama implements pkg/embeddings' provider contract for
// Ollama's embedding and model metadata APIs.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/embedviz/embedviz/pkg/embeddings"
)

const (
	// DefaultEmbeddingModel is the default model used for embeddings.
	DefaultEmbeddingModel = "nomic-embed-text"

	// DefaultBaseURL is the default Ollama API URL.
	DefaultBaseURL = "http://localhost:11434"

	// embedTimeout bounds embedding generation, which can load model
	// weights on first use.
	embedTimeout = 120 * time.Second

	// metaTimeout bounds metadata calls such as listing models.
	metaTimeout = 5 * time.Second
)

// Embedder wraps Ollama's embedding and model metadata APIs.
type Embedder struct {
	baseURL     string
	model       string
	embedClient *http.Client
	metaClient  *http.Client
}

// EmbedderConfig holds configuration for the Ollama embedder.
type EmbedderConfig struct {
	// BaseURL is the Ollama API URL (e.g., "http://localhost:11434").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the embedding model to use (e.g., "nomic-embed-text", "all-minilm").
	// Defaults to DefaultEmbeddingModel if empty.
	Model string
}

// embedRequest is the request body for Ollama's embedding API.
type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// embedResponse is the response from Ollama's embedding API.
type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// tagsResponse is the response from Ollama's model listing API.
type tagsResponse struct {
	Models []embeddings.Model `json:"models"`
}

// showRequest is the request body for Ollama's model card API.
type showRequest struct {
	Model string `json:"model"`
}

// NewEmbedder creates a new embedder using Ollama's APIs.
func NewEmbedder(cfg EmbedderConfig) (*Embedder, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}

	return &Embedder{
		baseURL: baseURL,
		model:   model,
		embedClient: &http.Client{
			Timeout: embedTimeout,
		},
		metaClient: &http.Client{
			Timeout: metaTimeout,
		},
	}, nil
}

// Embed converts text into a vector embedding.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	reqBody := embedRequest{
		Model: e.model,
		Input: text,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", embeddings.ErrEmbedding, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/embed", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", embeddings.ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.embedClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending request: %v", embeddings.ErrEmbedding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: ollama returned status %d: %s", embeddings.ErrEmbedding, resp.StatusCode, string(body))
	}

	var embedResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", embeddings.ErrEmbedding, err)
	}

	if len(embedResp.Embeddings) == 0 || len(embedResp.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", embeddings.ErrEmbedding)
	}

	return embedResp.Embeddings[0], nil
}

// Ping checks that the Ollama host is reachable.
func (e *Embedder) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", e.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", embeddings.ErrEmbedding, err)
	}

	resp, err := e.metaClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ollama unreachable at %s: %v", embeddings.ErrEmbedding, e.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", embeddings.ErrEmbedding, resp.StatusCode)
	}

	return nil
}

// ListModels returns the models installed on the Ollama host.
func (e *Embedder) ListModels(ctx context.Context) ([]embeddings.Model, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", e.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", embeddings.ErrEmbedding, err)
	}

	resp, err := e.metaClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama unreachable at %s: %v", embeddings.ErrEmbedding, e.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: ollama returned status %d: %s", embeddings.ErrEmbedding, resp.StatusCode, string(body))
	}

	var tagsResp tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", embeddings.ErrEmbedding, err)
	}

	return tagsResp.Models, nil
}

// ShowModel returns the model card for a single model. An empty name
// resolves to the configured embedding model.
func (e *Embedder) ShowModel(ctx context.Context, name string) (*embeddings.ModelCard, error) {
	if name == "" {
		name = e.model
	}

	jsonBody, err := json.Marshal(showRequest{Model: name})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", embeddings.ErrEmbedding, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/show", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", embeddings.ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.metaClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ollama unreachable at %s: %v", embeddings.ErrEmbedding, e.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: ollama returned status %d: %s", embeddings.ErrEmbedding, resp.StatusCode, string(body))
	}

	var card embeddings.ModelCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", embeddings.ErrEmbedding, err)
	}

	return &card, nil
}

// Close releases resources held by the embedder.
func (e *Embedder) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

var (
	_ embeddings.Embedder  = (*Embedder)(nil)
	_ embeddings.Pinger    = (*Embedder)(nil)
	_ embeddings.Lister    = (*Embedder)(nil)
	_ embeddings.Inspector = (*Embedder)(nil)
)
