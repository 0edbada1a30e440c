package embeddings

import "time"

// Model describes a single model available on a provider.
type Model struct {
	Name       string       `json:"name"`
	Size       int64        `json:"size,omitempty"`
	Digest     string       `json:"digest,omitempty"`
	ModifiedAt time.Time    `json:"modified_at,omitzero"`
	Details    ModelDetails `json:"details,omitzero"`
}

// ModelDetails carries the provider-reported metadata of a model.
type ModelDetails struct {
	Format            string   `json:"format,omitempty"`
	Family            string   `json:"family,omitempty"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size,omitempty"`
	QuantizationLevel string   `json:"quantization_level,omitempty"`
}

// ModelCard is the full metadata record of a model. License carries the
// model's license text when the provider reports one; presentation
// layers withhold it from their output.
type ModelCard struct {
	Modelfile    string         `json:"modelfile,omitempty"`
	Parameters   string         `json:"parameters,omitempty"`
	Template     string         `json:"template,omitempty"`
	License      string         `json:"license,omitempty"`
	Details      ModelDetails   `json:"details,omitzero"`
	ModelInfo    map[string]any `json:"model_info,omitempty"`
	Capabilities []string       `json:"capabilities,omitempty"`
}
