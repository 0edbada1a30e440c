package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/embedviz/embedviz/pkg/dotdir"
)

// InitViper builds the *viper.Viper that backs every command's PreRunE.
//
// Precedence, highest first:
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. EMBEDVIZ_* environment variables (EMBEDVIZ_EMBEDDING_MODEL, ...)
//  3. config.toml found via dotdir resolution
//  4. NewDefaultConfig() defaults
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)

	target, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if target != "" {
		v.AddConfigPath(target)
	}

	// A missing config file is fine, the defaults apply.
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	v.SetEnvPrefix("EMBEDVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Embedding
	v.SetDefault("embedding.provider", d.Embedding.Provider)
	v.SetDefault("embedding.target", d.Embedding.Target)
	v.SetDefault("embedding.model", d.Embedding.Model)

	// Plot
	v.SetDefault("plot.output", d.Plot.Output)
	v.SetDefault("plot.width", d.Plot.Width)
	v.SetDefault("plot.height", d.Plot.Height)

	// Cache
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.size", d.Cache.Size)
}
