package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --model
// on both "embedviz compare" and "embedviz serve").
type Flag struct {
	// Name is the long flag name (e.g. "model").
	Name string

	// Shorthand is the one-letter short flag (e.g. "m"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "embedding.model").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagListen     = "listen"
	FlagProvider   = "provider"
	FlagTarget     = "target"
	FlagModel      = "model"
	FlagOutput     = "output"
	FlagPlotWidth  = "plot-width"
	FlagPlotHeight = "plot-height"
)

// DefaultFlagSet returns the canonical registry of all embedviz flags.
func DefaultFlagSet() FlagSet {
	return FlagSet{
		FlagListen: {
			Name:        "listen",
			ViperKey:    "api.listen",
			Description: "Address for the API server to listen on",
		},
		FlagProvider: {
			Name:        "provider",
			ViperKey:    "embedding.provider",
			Description: "Embedding provider type (ollama, openai)",
		},
		FlagTarget: {
			Name:        "target",
			ViperKey:    "embedding.target",
			Description: "Embedding provider base URL",
		},
		FlagModel: {
			Name:        "model",
			Shorthand:   "m",
			ViperKey:    "embedding.model",
			Description: "Embedding model name",
		},
		FlagOutput: {
			Name:        "output",
			Shorthand:   "o",
			ViperKey:    "plot.output",
			Description: "Output path for the comparison figure (.png or .svg)",
		},
		FlagPlotWidth: {
			Name:        "plot-width",
			ViperKey:    "plot.width",
			Description: "Figure width in points",
		},
		FlagPlotHeight: {
			Name:        "plot-height",
			ViperKey:    "plot.height",
			Description: "Figure height in points",
		},
	}
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}
