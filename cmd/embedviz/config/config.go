// Package configcmder provides the config command for managing persistent
// embedviz configuration stored in the .embedviz/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent embedviz configuration.

Configuration is stored as config.toml in the .embedviz/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  api.listen,
  embedding.provider, embedding.target, embedding.model,
  plot.output, plot.width, plot.height,
  cache.enabled, cache.size

Use subcommands to get, set, or list configuration values:
  embedviz config set <key> <value>    Set a configuration value
  embedviz config get <key>            Get a configuration value
  embedviz config list                 List all configuration values

Examples:
  embedviz config set embedding.model nomic-embed-text
  embedviz config set embedding.provider openai
  embedviz config get plot.output
  embedviz config list`

const configShortDesc string = "Manage persistent embedviz configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
