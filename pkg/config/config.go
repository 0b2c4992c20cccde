// Package config loads tool settings from an optional YAML file and
// SLACKSEARCH_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/raesene/slackdump-searcher/pkg/permalink"
)

// Config holds the run-independent settings. Per-run choices (input,
// archive folder, pattern) stay on the command line.
type Config struct {
	BaseURL     string `mapstructure:"base_url" validate:"required,url"`
	Output      string `mapstructure:"output" validate:"required"`
	OpenBrowser bool   `mapstructure:"open_browser"`
	Zgrep       string `mapstructure:"zgrep" validate:"required"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Load reads slackdump-searcher.yaml from the current directory or
// $HOME/.config when present, applies environment overrides, and validates
// the result. A missing config file is fine; defaults cover every key.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("slackdump-searcher")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config")

	v.SetDefault("base_url", permalink.DefaultBaseURL)
	v.SetDefault("output", "results.html")
	v.SetDefault("open_browser", true)
	v.SetDefault("zgrep", "zgrep")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("SLACKSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
