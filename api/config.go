// Package api provides the HTTP API server for comparing embeddings.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// Model is the embedding model name reported in compare responses.
	Model string
}
