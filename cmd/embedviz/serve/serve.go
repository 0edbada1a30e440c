// Package servecmder provides the serve command for running the embedviz
// HTTP API and web UI.
package servecmder

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/embedviz/embedviz/api"
	"github.com/embedviz/embedviz/pkg/config"
	"github.com/embedviz/embedviz/pkg/credentials"
	"github.com/embedviz/embedviz/pkg/embeddings"
	embeddingutils "github.com/embedviz/embedviz/pkg/embeddings/utils"
	"github.com/embedviz/embedviz/pkg/logger"
)

type ServeCommander struct {
	listen   string
	provider string
	target   string
	model    string
	logFile  string
	debug    bool

	cacheEnabled bool
	cacheSize    uint

	logger *slog.Logger
}

const serveLongDesc string = `Run the embedviz HTTP API and web UI.

Serves the comparison API (POST /v1/compare, POST /v1/compare/plot,
GET /v1/models) and the browser UI on the configured listen address.
Flag values fall back to the corresponding config.toml keys and
EMBEDVIZ_* environment variables.

Examples:
  embedviz serve
  embedviz serve --listen :9090 --model mxbai-embed-large
  embedviz serve --provider openai --log-file embedviz.log`

const serveShortDesc string = "Run the embedviz HTTP API and web UI"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}
	flagSet := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, flagSet, []string{
				config.FlagListen,
				config.FlagProvider,
				config.FlagTarget,
				config.FlagModel,
			})

			cmder.listen = v.GetString("api.listen")
			cmder.provider = v.GetString("embedding.provider")
			cmder.target = v.GetString("embedding.target")
			cmder.model = v.GetString("embedding.model")
			cmder.cacheEnabled = v.GetBool("cache.enabled")
			cmder.cacheSize = v.GetUint("cache.size")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(configDir)
		},
	}

	config.AddStringFlag(cmd, flagSet, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, flagSet, config.FlagProvider, &cmder.provider)
	config.AddStringFlag(cmd, flagSet, config.FlagTarget, &cmder.target)
	config.AddStringFlag(cmd, flagSet, config.FlagModel, &cmder.model)
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *ServeCommander) run(configDir string) error {
	log, closer, err := c.newLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	c.logger = log

	embedder, err := c.newEmbedder(configDir)
	if err != nil {
		return err
	}
	defer embedder.Close()

	c.logger.Info("starting embedviz",
		"provider", c.provider,
		"target", c.target,
		"model", c.model,
		"cache", c.cacheEnabled,
	)

	server, err := api.NewServer(api.Config{
		ListenAddr: c.listen,
		Model:      c.model,
	}, embedder, c.logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Channel to capture errors from the server goroutine
	errChan := make(chan error, 1)

	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

// newLogger builds the serve logger: pretty output on stdout, plus a JSON
// stream to --log-file when given. The returned closer is nil when no log
// file is open.
func (c *ServeCommander) newLogger() (*slog.Logger, io.Closer, error) {
	pretty := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
	)

	if c.logFile == "" {
		return pretty, nil, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	jsonLog := logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
	)

	return logger.Multi(pretty, jsonLog), f, nil
}

func (c *ServeCommander) newEmbedder(configDir string) (embeddings.Embedder, error) {
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
