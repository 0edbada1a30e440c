// Package embeddings defines the embedding provider contract shared by
// the CLI and the API server.
package embeddings

import (
	"context"
	"errors"
)

// ErrEmbedding is returned when an embedding provider operation fails.
var ErrEmbedding = errors.New("embedding failed")

// Embedder provides text embedding capabilities.
type Embedder interface {
	// Embed converts text into a vector embedding.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Close releases any resources held by the embedder.
	Close() error
}

// Pinger reports provider connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Lister enumerates the models available on a provider.
type Lister interface {
	ListModels(ctx context.Context) ([]Model, error)
}

// Inspector fetches the model card for a single model.
type Inspector interface {
	ShowModel(ctx context.Context, name string) (*ModelCard, error)
}

// Unwrapper is implemented by embedders that decorate another embedder,
// such as the caching wrapper.
type Unwrapper interface {
	Unwrap() Embedder
}

// AsPinger returns the Pinger capability of e, unwrapping decorated
// embedders along the way.
func AsPinger(e Embedder) (Pinger, bool) {
	for e != nil {
		if p, ok := e.(Pinger); ok {
			return p, true
		}
		u, ok := e.(Unwrapper)
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return nil, false
}

// AsLister returns the Lister capability of e, unwrapping decorated
// embedders along the way.
func AsLister(e Embedder) (Lister, bool) {
	for e != nil {
		if l, ok := e.(Lister); ok {
			return l, true
		}
		u, ok := e.(Unwrapper)
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return nil, false
}

// AsInspector returns the Inspector capability of e, unwrapping
// decorated embedders along the way.
func AsInspector(e Embedder) (Inspector, bool) {
	for e != nil {
		if i, ok := e.(Inspector); ok {
			return i, true
		}
		u, ok := e.(Unwrapper)
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return nil, false
}
