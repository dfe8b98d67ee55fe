// Package config loads tool configuration from .typeforge.yml plus
// TYPEFORGE_* environment variables. Command-line flags still win; the
// config file only supplies defaults so teams can check shared settings into
// their repos.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the typeforge configuration.
type Config struct {
	Target string       `mapstructure:"target"`
	Output OutputConfig `mapstructure:"output"`
	Infer  InferConfig  `mapstructure:"infer"`
	Rust   RustConfig   `mapstructure:"rust"`
	TS     TSConfig     `mapstructure:"typescript"`
}

// OutputConfig controls how generated code is emitted.
type OutputConfig struct {
	Dir             string `mapstructure:"dir"`
	Indent          string `mapstructure:"indent"`
	IncludeComments bool   `mapstructure:"include_comments"`
	Strict          bool   `mapstructure:"strict"`
}

// InferConfig tunes the inference engine.
type InferConfig struct {
	RootName      string `mapstructure:"root_name"`
	MapThreshold  int    `mapstructure:"map_threshold"`
	MapUnionLimit int    `mapstructure:"map_union_limit"`
}

// RustConfig holds Rust renderer settings.
type RustConfig struct {
	DeriveMacros  []string `mapstructure:"derive_macros"`
	PrivateFields bool     `mapstructure:"private_fields"`
}

// TSConfig holds TypeScript renderer settings.
type TSConfig struct {
	Readonly bool `mapstructure:"readonly"`
}

// Load reads .typeforge.yml from the current directory if present,
// overlaying TYPEFORGE_* environment variables. Missing files are not an
// error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("target", "typescript")
	v.SetDefault("output.indent", "")
	v.SetDefault("output.include_comments", false)
	v.SetDefault("output.strict", false)
	v.SetDefault("infer.root_name", "Root")
	v.SetDefault("infer.map_threshold", 4)
	v.SetDefault("infer.map_union_limit", 2)

	v.SetConfigName(".typeforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TYPEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Infer.MapThreshold < 0 {
		return fmt.Errorf("infer.map_threshold must not be negative, got: %d", cfg.Infer.MapThreshold)
	}
	if cfg.Infer.MapUnionLimit < 1 {
		return fmt.Errorf("infer.map_union_limit must be at least 1, got: %d", cfg.Infer.MapUnionLimit)
	}
	return nil
}
