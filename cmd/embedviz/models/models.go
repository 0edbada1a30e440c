// Package modelscmder provides the models command for listing the models
// installed on the configured provider.
package modelscmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedviz/embedviz/pkg/cliui"
	"github.com/embedviz/embedviz/pkg/config"
	"github.com/embedviz/embedviz/pkg/credentials"
	"github.com/embedviz/embedviz/pkg/embeddings"
	embeddingutils "github.com/embedviz/embedviz/pkg/embeddings/utils"
	"github.com/embedviz/embedviz/pkg/utils"
)

type modelsCommander struct {
	provider string
	target   string
	model    string
	jsonOut  bool
}

const modelsLongDesc string = `List the models available on the configured provider.

Queries the provider for its installed models and prints their name, size,
family, parameter count, and quantization level. Listing doubles as a
connectivity check: it fails when the provider is unreachable.

Examples:
  embedviz models
  embedviz models --target http://remote:11434
  embedviz models --provider openai
  embedviz models --json`

const modelsShortDesc string = "List the models available on the provider"

func NewModelsCmd() *cobra.Command {
	cmder := &modelsCommander{}
	flagSet := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "models",
		Short: modelsShortDesc,
		Long:  modelsLongDesc,
		Args:  cobra.NoArgs,
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
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(configDir)
		},
	}

	config.AddStringFlag(cmd, flagSet, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, flagSet, config.FlagTarget, &cmder.target)
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Emit the model list as JSON on stdout")

	return cmd
}

func (c *modelsCommander) run(configDir string) error {
	embedder, err := c.newEmbedder(configDir)
	if err != nil {
		return err
	}
	defer embedder.Close()

	lister, ok := embeddings.AsLister(embedder)
	if !ok {
		return fmt.Errorf("provider %q does not support listing models", c.provider)
	}

	steps := io.Writer(os.Stdout)
	if c.jsonOut {
		steps = os.Stderr
	}

	var models []embeddings.Model
	err = cliui.Step(steps, fmt.Sprintf("Fetching models from %s", c.provider), func() error {
		var err error
		models, err = lister.ListModels(context.Background())
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOut {
		data, err := json.MarshalIndent(models, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding models: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	c.printTable(models)
	return nil
}

func (c *modelsCommander) newEmbedder(configDir string) (embeddings.Embedder, error) {
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

func (c *modelsCommander) printTable(models []embeddings.Model) {
	if len(models) == 0 {
		fmt.Printf("\n  %s No models installed on %s.\n\n", cliui.DimStyle.Render("●"), c.provider)
		return
	}

	// Find the longest model name for alignment.
	nameLen := len("NAME")
	for _, m := range models {
		if len(m.Name) > nameLen {
			nameLen = len(m.Name)
		}
	}

	fmt.Println()
	fmt.Printf("  %s\n", cliui.HeaderStyle.Render(
		fmt.Sprintf("%-*s  %10s  %-14s  %-8s  %-10s  %s", nameLen, "NAME", "SIZE", "FAMILY", "PARAMS", "QUANT", "MODIFIED")))

	for _, m := range models {
		size := "-"
		if m.Size > 0 {
			size = utils.FormatBytes(m.Size)
		}

		modified := "-"
		if !m.ModifiedAt.IsZero() {
			modified = m.ModifiedAt.Format("2006-01-02")
		}

		fmt.Printf("  %s  %10s  %-14s  %-8s  %-10s  %s\n",
			cliui.NameStyle.Render(fmt.Sprintf("%-*s", nameLen, m.Name)),
			size,
			orDash(m.Details.Family),
			orDash(m.Details.ParameterSize),
			orDash(m.Details.QuantizationLevel),
			cliui.DimStyle.Render(modified),
		)
	}

	fmt.Println()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
