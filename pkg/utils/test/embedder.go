package testutils

import (
	"context"
	"fmt"

	"github.com/embedviz/embedviz/pkg/embeddings"
)

// MockEmbedder is a test embedder that returns predictable embeddings
type MockEmbedder struct {
	Embeddings map[string][]float64

	// FailOn causes Embed to return an error when the input text matches
	FailOn string

	// EmbedCalls counts the calls made to Embed
	EmbedCalls int

	// Closed reports whether Close was called
	Closed bool
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		Embeddings: make(map[string][]float64),
	}
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	m.EmbedCalls++

	if m.FailOn != "" && text == m.FailOn {
		return nil, fmt.Errorf("%w: mock failure for: %s", embeddings.ErrEmbedding, text)
	}

	if emb, ok := m.Embeddings[text]; ok {
		return emb, nil
	}

	// Return a default embedding for any text
	return []float64{0.1, 0.2, 0.3}, nil
}

func (m *MockEmbedder) Close() error {
	m.Closed = true
	return nil
}

// MockProvider is a MockEmbedder carrying the full set of provider
// capabilities, for testing the models and show paths.
type MockProvider struct {
	MockEmbedder

	PingErr error
	Models  []embeddings.Model
	ListErr error
	Cards   map[string]*embeddings.ModelCard
	ShowErr error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder: MockEmbedder{Embeddings: make(map[string][]float64)},
		Cards:        make(map[string]*embeddings.ModelCard),
	}
}

func (m *MockProvider) Ping(_ context.Context) error {
	return m.PingErr
}

func (m *MockProvider) ListModels(_ context.Context) ([]embeddings.Model, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Models, nil
}

func (m *MockProvider) ShowModel(_ context.Context, name string) (*embeddings.ModelCard, error) {
	if m.ShowErr != nil {
		return nil, m.ShowErr
	}

	card, ok := m.Cards[name]
	if !ok {
		return nil, fmt.Errorf("%w: model %q not found", embeddings.ErrEmbedding, name)
	}
	return card, nil
}
