// Package config loads tool configuration from an optional YAML file and
// defaults. The resulting Config is passed by value into the core packages;
// nothing in the core reads global state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/diskreclaim/reclaim/internal/cachescan"
	"github.com/diskreclaim/reclaim/internal/sizer"
)

// Config holds the externally-persisted settings the scanners consume.
type Config struct {
	// Roots are the locations scanned for cache candidates.
	Roots []string `mapstructure:"roots"`
	// MaxDepth bounds candidate scanning below each root.
	MaxDepth int `mapstructure:"max_depth"`
	// Concurrency bounds simultaneous directory aggregations.
	Concurrency int `mapstructure:"concurrency"`
	// DisabledTypes lists rule IDs excluded from scanning.
	DisabledTypes []string `mapstructure:"disabled_types"`
	// Output is the default output format (table or json).
	Output string `mapstructure:"output"`
}

// Load reads configuration from path, or from the default locations
// (~/.config/reclaim, then the working directory) when path is empty.
// A missing config file is not an error; defaults apply.
func Load(path string) (Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("reclaim")
		v.SetConfigType("yaml")

		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "reclaim"))
		}

		v.AddConfigPath(".")
	}

	v.SetDefault("max_depth", cachescan.DefaultMaxDepth)
	v.SetDefault("concurrency", sizer.DefaultPermits)
	v.SetDefault("output", "table")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		// No file in the default locations is fine; an explicitly named
		// file must exist and parse.
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if len(cfg.Roots) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Roots = []string{home}
		} else {
			cfg.Roots = []string{"."}
		}
	}

	return cfg, nil
}

// EnabledRules returns the default rule table minus the disabled types,
// preserving registry order.
func (c Config) EnabledRules() []cachescan.Rule {
	rules := cachescan.DefaultRules()
	if len(c.DisabledTypes) == 0 {
		return rules
	}

	enabled := make([]cachescan.Rule, 0, len(rules))

	for _, rule := range rules {
		if slices.Contains(c.DisabledTypes, rule.ID) {
			continue
		}

		enabled = append(enabled, rule)
	}

	return enabled
}
