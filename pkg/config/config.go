package config

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/embedviz/embedviz/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// v0 is the original config.toml layout.
	v0 = 0

	// CurrentV is the newest layout this build understands.
	CurrentV = v0
)

// configKeyOrder fixes the display order of keys to match the TOML
// section layout.
var configKeyOrder = []string{
	"api.listen",
	"embedding.provider",
	"embedding.target",
	"embedding.model",
	"plot.output",
	"plot.width",
	"plot.height",
	"cache.enabled",
	"cache.size",
}

// Configer reads and writes config.toml in the resolved .embedviz/
// directory.
type Configer struct {
	targetPath string
}

func NewConfiger(override string) (*Configer, error) {
	target, err := dotdir.NewManager().Target(override)
	if err != nil {
		return nil, err
	}

	// No .embedviz/ directory anywhere: targetPath stays empty, LoadConfig
	// serves defaults, and SaveConfig errors clearly.
	if target == "" {
		return &Configer{}, nil
	}

	path := filepath.Join(target, configFile)
	if _, err := os.Stat(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return &Configer{targetPath: path}, nil
}

// ValidConfigKeys returns all supported configuration key names in a
// stable order.
func ValidConfigKeys() []string {
	result := make([]string, 0, len(configKeys))
	for _, k := range configKeyOrder {
		if _, ok := configKeys[k]; ok {
			result = append(result, k)
		}
	}

	// Keys missing from the order list still get returned, sorted.
	var missed []string
	for k := range configKeys {
		if !slices.Contains(result, k) {
			missed = append(missed, k)
		}
	}
	slices.Sort(missed)

	return append(result, missed...)
}

// IsValidConfigKey reports whether key names a supported config entry.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

// GetTarget returns the resolved path to the config file, or an empty
// string when no .embedviz/ directory was found.
func (c *Configer) GetTarget() string {
	return c.targetPath
}

// LoadConfig reads config.toml and fills unset fields from
// NewDefaultConfig(), so callers always receive a fully-populated Config.
// A missing file yields the pure defaults.
func (c *Configer) LoadConfig() (*Config, error) {
	if c.targetPath == "" {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(c.targetPath)
	if errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills zero-value fields in cfg with values from NewDefaultConfig().
func applyDefaults(cfg *Config) {
	defaults := NewDefaultConfig()

	cfg.Version = cmp.Or(cfg.Version, defaults.Version)
	cfg.API.Listen = cmp.Or(cfg.API.Listen, defaults.API.Listen)

	cfg.Embedding.Provider = cmp.Or(cfg.Embedding.Provider, defaults.Embedding.Provider)
	cfg.Embedding.Target = cmp.Or(cfg.Embedding.Target, defaults.Embedding.Target)
	cfg.Embedding.Model = cmp.Or(cfg.Embedding.Model, defaults.Embedding.Model)

	cfg.Plot.Output = cmp.Or(cfg.Plot.Output, defaults.Plot.Output)
	cfg.Plot.Width = cmp.Or(cfg.Plot.Width, defaults.Plot.Width)
	cfg.Plot.Height = cmp.Or(cfg.Plot.Height, defaults.Plot.Height)

	// TOML cannot tell an absent [cache] section apart from one that only
	// sets enabled = false, so the merge is all-or-nothing for the section.
	if cfg.Cache == (CacheConfig{}) {
		cfg.Cache = defaults.Cache
	} else {
		cfg.Cache.Size = cmp.Or(cfg.Cache.Size, defaults.Cache.Size)
	}
}

// SaveConfig encodes the whole struct to config.toml. Partial writes would
// read back as defaults, so there is no merge on the way out.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	if c.targetPath == "" {
		return errors.New("no .embedviz directory to write into")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// keyInfo resolves a dotted key name against the registry.
func keyInfo(key string) (configKeyInfo, error) {
	info, ok := configKeys[key]
	if !ok {
		return configKeyInfo{}, fmt.Errorf("unknown config key: %q", key)
	}
	return info, nil
}

// SetConfigValue updates one key through a load-modify-save cycle. The
// save persists the full effective config, not just the one key.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, err := keyInfo(key)
	if err != nil {
		return err
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue renders one key of the effective config as a string.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, err := keyInfo(key)
	if err != nil {
		return "", err
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}

// ParseConfigTOML decodes raw TOML bytes and gates on the version field.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}

	if cfg.Version != 0 && cfg.Version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentV)
	}

	return cfg, nil
}
