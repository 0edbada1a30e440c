// Package comparecmder provides the compare command for scoring and
// visualizing the similarity of two texts.
package comparecmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"github.com/embedviz/embedviz/pkg/cliui"
	"github.com/embedviz/embedviz/pkg/config"
	"github.com/embedviz/embedviz/pkg/credentials"
	"github.com/embedviz/embedviz/pkg/embeddings"
	embeddingutils "github.com/embedviz/embedviz/pkg/embeddings/utils"
	"github.com/embedviz/embedviz/pkg/figure"
	"github.com/embedviz/embedviz/pkg/logger"
	"github.com/embedviz/embedviz/pkg/similarity"
)

type compareCommander struct {
	provider   string
	target     string
	model      string
	output     string
	plotWidth  uint
	plotHeight uint
	noPlot     bool
	jsonOut    bool
	debug      bool

	cacheEnabled bool
	cacheSize    uint

	logger *slog.Logger
}

// compareResult is the machine-readable result emitted by --json.
type compareResult struct {
	Provider          string    `json:"provider"`
	Model             string    `json:"model"`
	Dimensions        int       `json:"dimensions"`
	CosineSimilarity  float64   `json:"cosine_similarity"`
	EuclideanDistance float64   `json:"euclidean_distance"`
	EmbeddingA        []float64 `json:"embedding_a"`
	EmbeddingB        []float64 `json:"embedding_b"`
	Output            string    `json:"output,omitempty"`
}

const compareLongDesc string = `Compare two texts by their embeddings.

Fetches an embedding for each text from the configured provider, computes
the cosine similarity and Euclidean distance between them, and renders a
two-panel comparison figure (per-dimension overlay plus dimension-wise
scatter) to the output path.

Flag values fall back to the corresponding config.toml keys and
EMBEDVIZ_* environment variables.

Examples:
  embedviz compare "the cat sat on the mat" "a feline rested on the rug"
  embedviz compare --model mxbai-embed-large "first" "second"
  embedviz compare --provider openai "first" "second"
  embedviz compare --output pair.svg "first" "second"
  embedviz compare --json --no-plot "first" "second"`

const compareShortDesc string = "Compare two texts by their embeddings"

func NewCompareCmd() *cobra.Command {
	cmder := &compareCommander{}
	flagSet := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "compare <text1> <text2>",
		Short: compareShortDesc,
		Long:  compareLongDesc,
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, flagSet, []string{
				config.FlagProvider,
				config.FlagTarget,
				config.FlagModel,
				config.FlagOutput,
				config.FlagPlotWidth,
				config.FlagPlotHeight,
			})

			cmder.provider = v.GetString("embedding.provider")
			cmder.target = v.GetString("embedding.target")
			cmder.model = v.GetString("embedding.model")
			cmder.output = v.GetString("plot.output")
			cmder.plotWidth = v.GetUint("plot.width")
			cmder.plotHeight = v.GetUint("plot.height")
			cmder.cacheEnabled = v.GetBool("cache.enabled")
			cmder.cacheSize = v.GetUint("cache.size")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(configDir, args[0], args[1])
		},
	}

	config.AddStringFlag(cmd, flagSet, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, flagSet, config.FlagTarget, &cmder.target)
	config.AddStringFlag(cmd, flagSet, config.FlagModel, &cmder.model)
	config.AddStringFlag(cmd, flagSet, config.FlagOutput, &cmder.output)
	config.AddUintFlag(cmd, flagSet, config.FlagPlotWidth, &cmder.plotWidth)
	config.AddUintFlag(cmd, flagSet, config.FlagPlotHeight, &cmder.plotHeight)
	cmd.Flags().BoolVar(&cmder.noPlot, "no-plot", false, "Skip rendering the comparison figure")
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Emit the full result as JSON on stdout")

	return cmd
}

func (c *compareCommander) run(configDir, textA, textB string) error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	embedder, err := c.newEmbedder(configDir)
	if err != nil {
		return err
	}
	defer embedder.Close()

	// Spinners go to stderr in JSON mode so stdout stays machine-readable.
	steps := io.Writer(os.Stdout)
	if c.jsonOut {
		steps = os.Stderr
	}

	ctx := context.Background()

	if pinger, ok := embeddings.AsPinger(embedder); ok {
		pingMsg := "Connecting to " + c.provider
		if c.provider == "ollama" {
			pingMsg = fmt.Sprintf("Connecting to ollama at %s", c.target)
		}

		if err := cliui.Step(steps, pingMsg, func() error {
			return pinger.Ping(ctx)
		}); err != nil {
			return err
		}
	}

	var embA, embB []float64
	err = cliui.Step(steps, fmt.Sprintf("Fetching embeddings with %s", c.model), func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			embA, err = embedder.Embed(gctx, textA)
			return err
		})
		g.Go(func() error {
			var err error
			embB, err = embedder.Embed(gctx, textB)
			return err
		})
		return g.Wait()
	})
	if err != nil {
		return err
	}

	result, err := similarity.Evaluate(embA, embB)
	if err != nil {
		return err
	}

	c.logger.Debug("comparison complete",
		"model", c.model,
		"dimensions", len(embA),
		"cosine", result.Cosine,
		"euclidean", result.Euclidean,
	)

	var output string
	if !c.noPlot {
		output = c.output
		err = cliui.Step(steps, fmt.Sprintf("Rendering figure to %s", c.output), func() error {
			fig, err := figure.Render(embA, embB, figure.WithSize(
				vg.Points(float64(c.plotWidth)),
				vg.Points(float64(c.plotHeight)),
			))
			if err != nil {
				return err
			}
			return fig.Save(c.output)
		})
		if err != nil {
			return err
		}
	}

	if c.jsonOut {
		return c.printJSON(embA, embB, result, output)
	}

	c.printMetrics(len(embA), result, output)
	return nil
}

// newEmbedder builds the configured provider, wrapped with the LRU cache
// when enabled. OpenAI keys come from the credential store, with the
// provider falling back to OPENAI_API_KEY itself.
func (c *compareCommander) newEmbedder(configDir string) (embeddings.Embedder, error) {
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

	if !c.cacheEnabled {
		return embedder, nil
	}

	cached, err := embeddings.NewCached(embedder, int(c.cacheSize))
	if err != nil {
		embedder.Close()
		return nil, err
	}

	return cached, nil
}

func (c *compareCommander) printMetrics(dims int, result similarity.Result, output string) {
	fmt.Println()
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Model:     "), cliui.NameStyle.Render(c.model))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Dimensions:"), cliui.ValueStyle.Render(strconv.Itoa(dims)))
	fmt.Println()
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Cosine Similarity: "), cliui.ValueStyle.Render(fmt.Sprintf("%.4f", result.Cosine)))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Euclidean Distance:"), cliui.ValueStyle.Render(fmt.Sprintf("%.4f", result.Euclidean)))

	if output != "" {
		fmt.Println()
		fmt.Printf("  %s Figure written to %s\n", cliui.SuccessMark, cliui.DimStyle.Render(output))
	}

	fmt.Println()
}

func (c *compareCommander) printJSON(embA, embB []float64, result similarity.Result, output string) error {
	res := compareResult{
		Provider:          c.provider,
		Model:             c.model,
		Dimensions:        len(embA),
		CosineSimilarity:  result.Cosine,
		EuclideanDistance: result.Euclidean,
		EmbeddingA:        embA,
		EmbeddingB:        embB,
		Output:            output,
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
