package config

const (
	defaultAPIListen = ":8080"

	defaultEmbeddingProvider = "ollama"
	defaultEmbeddingTarget   = "http://localhost:11434"
	defaultEmbeddingModel    = "nomic-embed-text"

	defaultPlotOutput = "comparison.png"
	defaultPlotWidth  = 1080
	defaultPlotHeight = 360

	defaultCacheSize = 128
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Embedding: EmbeddingConfig{
			Provider: defaultEmbeddingProvider,
			Target:   defaultEmbeddingTarget,
			Model:    defaultEmbeddingModel,
		},
		Plot: PlotConfig{
			Output: defaultPlotOutput,
			Width:  defaultPlotWidth,
			Height: defaultPlotHeight,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    defaultCacheSize,
		},
	}
}
