package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent embedviz configuration stored as config.toml
// in the .embedviz/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	API       APIConfig       `toml:"api"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Plot      PlotConfig      `toml:"plot"`
	Cache     CacheConfig     `toml:"cache"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider string `toml:"provider,omitempty"`
	Target   string `toml:"target,omitempty"`
	Model    string `toml:"model,omitempty"`
}

// PlotConfig holds figure rendering settings. Width and height are in
// typographic points (72 per inch).
type PlotConfig struct {
	Output string `toml:"output,omitempty"`
	Width  uint   `toml:"width,omitempty"`
	Height uint   `toml:"height,omitempty"`
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	Size    uint `toml:"size,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"embedding.provider": {
		get: func(c *Config) string { return c.Embedding.Provider },
		set: func(c *Config, v string) error { c.Embedding.Provider = v; return nil },
	},
	"embedding.target": {
		get: func(c *Config) string { return c.Embedding.Target },
		set: func(c *Config, v string) error { c.Embedding.Target = v; return nil },
	},
	"embedding.model": {
		get: func(c *Config) string { return c.Embedding.Model },
		set: func(c *Config, v string) error { c.Embedding.Model = v; return nil },
	},
	"plot.output": {
		get: func(c *Config) string { return c.Plot.Output },
		set: func(c *Config, v string) error { c.Plot.Output = v; return nil },
	},
	"plot.width": {
		get: func(c *Config) string {
			if c.Plot.Width == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Plot.Width), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for plot.width: %w", err)
			}
			c.Plot.Width = uint(n)
			return nil
		},
	},
	"plot.height": {
		get: func(c *Config) string {
			if c.Plot.Height == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Plot.Height), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for plot.height: %w", err)
			}
			c.Plot.Height = uint(n)
			return nil
		},
	},
	"cache.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Cache.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for cache.enabled: %w", err)
			}
			c.Cache.Enabled = b
			return nil
		},
	},
	"cache.size": {
		get: func(c *Config) string {
			if c.Cache.Size == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Cache.Size), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for cache.size: %w", err)
			}
			c.Cache.Size = uint(n)
			return nil
		},
	},
}
