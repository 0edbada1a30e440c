// Package embeddingutils is the embeddings utility package
package embeddingutils

import (
	"fmt"

	"github.com/embedviz/embedviz/pkg/embeddings"
	"github.com/embedviz/embedviz/pkg/embeddings/ollama"
	"github.com/embedviz/embedviz/pkg/embeddings/openai"
)

type NewEmbedderOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	APIKey       string
}

func NewEmbedder(o *NewEmbedderOpts) (embeddings.Embedder, error) {
	switch o.ProviderType {
	case "ollama":
		return ollama.NewEmbedder(ollama.EmbedderConfig{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
	case "openai":
		// The stock target and model are Ollama-flavored; OpenAI keeps
		// its own defaults.
		baseURL := o.TargetURL
		if baseURL == ollama.DefaultBaseURL {
			baseURL = ""
		}

		model := o.Model
		if model == ollama.DefaultEmbeddingModel {
			model = ""
		}

		return openai.NewEmbedder(openai.EmbedderConfig{
			APIKey:  o.APIKey,
			BaseURL: baseURL,
			Model:   model,
		})
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", o.ProviderType)
	}
}
