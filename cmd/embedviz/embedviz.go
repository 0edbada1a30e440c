// Package embedvizcmder provides the root embedviz command.
package embedvizcmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/embedviz/embedviz/cmd/embedviz/auth"
	comparecmder "github.com/embedviz/embedviz/cmd/embedviz/compare"
	configcmder "github.com/embedviz/embedviz/cmd/embedviz/config"
	modelscmder "github.com/embedviz/embedviz/cmd/embedviz/models"
	servecmder "github.com/embedviz/embedviz/cmd/embedviz/serve"
	showcmder "github.com/embedviz/embedviz/cmd/embedviz/show"
	versioncmder "github.com/embedviz/embedviz/cmd/version"
)

const embedvizLongDesc string = `Embedviz compares text embeddings.

Fetch embeddings for a pair of texts from a provider (Ollama or OpenAI),
score how similar they are, and render a comparison figure:
  embedviz compare "first text" "second text"

Run the HTTP API with the browser UI:
  embedviz serve

Inspect the models available on the provider:
  embedviz models
  embedviz show nomic-embed-text`

const embedvizShortDesc string = "Embedviz - Embedding comparison and visualization"

func NewEmbedvizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embedviz",
		Short: embedvizShortDesc,
		Long:  embedvizLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .embedviz/ config directory")

	// Add subcommands
	cmd.AddCommand(comparecmder.NewCompareCmd())
	cmd.AddCommand(modelscmder.NewModelsCmd())
	cmd.AddCommand(showcmder.NewShowCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
