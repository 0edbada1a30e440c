// Package showcmder provides the show command for displaying a model card.
package showcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embedviz/embedviz/pkg/cliui"
	"github.com/embedviz/embedviz/pkg/config"
	"github.com/embedviz/embedviz/pkg/credentials"
	"github.com/embedviz/embedviz/pkg/embeddings"
	embeddingutils "github.com/embedviz/embedviz/pkg/embeddings/utils"
)

type showCommander struct {
	provider string
	target   string
	model    string
	jsonOut  bool
}

const showLongDesc string = `Show the model card for a model.

Fetches the provider's metadata record for the model (details, parameters,
template, capabilities) and renders it for the terminal. With no argument,
shows the configured embedding model. License text is withheld.

Examples:
  embedviz show
  embedviz show nomic-embed-text
  embedviz show mxbai-embed-large --json`

const showShortDesc string = "Show the model card for a model"

func NewShowCmd() *cobra.Command {
	cmder := &showCommander{}
	flagSet := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "show [model]",
		Short: showShortDesc,
		Long:  showLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, flagSet, []string{
				config.FlagProvider,
				config.FlagTarget,
			})

			cmder.provider = v.GetString("embedding.provider")
			cmder.target = v.GetString("embedding.target")
			cmder.model = v.GetString("embedding.model")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(configDir, name)
		},
	}

	config.AddStringFlag(cmd, flagSet, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, flagSet, config.FlagTarget, &cmder.target)
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Emit the model card as JSON on stdout")

	return cmd
}

func (c *showCommander) run(configDir, name string) error {
	if name == "" {
		name = c.model
	}

	embedder, err := c.newEmbedder(configDir)
	if err != nil {
		return err
	}
	defer embedder.Close()

	inspector, ok := embeddings.AsInspector(embedder)
	if !ok {
		return fmt.Errorf("provider %q does not support model cards", c.provider)
	}

	card, err := inspector.ShowModel(context.Background(), name)
	if err != nil {
		return err
	}

	// License text is withheld from every presentation of the card.
	card.License = ""

	if c.jsonOut {
		data, err := json.MarshalIndent(card, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding model card: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	rendered, err := cliui.RenderMarkdown(cardMarkdown(name, card))
	if err != nil {
		return fmt.Errorf("rendering model card: %w", err)
	}

	fmt.Print(rendered)
	return nil
}

func (c *showCommander) newEmbedder(configDir string) (embeddings.Embedder, error) {
	var apiKey string
	if c.provider == "openai" {
		mgr, err := credentials.NewManager(configDir)
		if err != nil {
			return nil, fmt.Errorf("loading credentials: %w", err)
		}

		apiKey, err = mgr.GetKey("openai")
		if err != nil {
			return nil, err
		}
	}

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: c.provider,
		TargetURL:    c.target,
		Model:        c.model,
		APIKey:       apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return embedder, nil
}

// cardMarkdown formats a model card as a markdown document for glamour.
func cardMarkdown(name string, card *embeddings.ModelCard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", name)

	d := card.Details
	if d.Family != "" || d.Format != "" || d.ParameterSize != "" || d.QuantizationLevel != "" {
		b.WriteString("## Details\n\n")
		writeItem(&b, "Family", d.Family)
		writeItem(&b, "Format", d.Format)
		writeItem(&b, "Parameter Size", d.ParameterSize)
		writeItem(&b, "Quantization", d.QuantizationLevel)
		b.WriteString("\n")
	}

	if len(card.Capabilities) > 0 {
		b.WriteString("## Capabilities\n\n")
		for _, capability := range card.Capabilities {
			fmt.Fprintf(&b, "- %s\n", capability)
		}
		b.WriteString("\n")
	}

	if card.Parameters != "" {
		fmt.Fprintf(&b, "## Parameters\n\n```\n%s\n```\n\n", strings.TrimSpace(card.Parameters))
	}

	if card.Template != "" {
		fmt.Fprintf(&b, "## Template\n\n```\n%s\n```\n\n", strings.TrimSpace(card.Template))
	}

	if len(card.ModelInfo) > 0 {
		b.WriteString("## Model Info\n\n")
		for _, k := range slices.Sorted(maps.Keys(card.ModelInfo)) {
			fmt.Fprintf(&b, "- **%s**: %v\n", k, card.ModelInfo[k])
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeItem(b *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(b, "- **%s**: %s\n", key, value)
	}
}
