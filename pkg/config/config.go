// Package config holds the application configuration, loaded through viper
// from defaults, an optional YAML file and RENDERTREE_ environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// RENDERTREE_DISPLAY_WIDTH=1024.
const EnvPrefix = "RENDERTREE"

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
	Script   ScriptConfig   `mapstructure:"script" yaml:"script"`
	Style    StyleConfig    `mapstructure:"style" yaml:"style"`
}

// LoggerConfig configures the process logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// DisplayConfig configures the window opened by the open command.
type DisplayConfig struct {
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Title  string `mapstructure:"title" yaml:"title"`
}

// SnapshotConfig sets the canvas size of PNG snapshots.
type SnapshotConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// ScriptConfig configures guest script execution.
type ScriptConfig struct {
	// Label names the combined inline script in error messages.
	Label string `mapstructure:"label" yaml:"label"`
}

// StyleConfig configures the stylesheet every page starts from.
type StyleConfig struct {
	// UserAgent is appended to the built-in default rules.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "rendertree")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Display --
	v.SetDefault("display.width", 800)
	v.SetDefault("display.height", 600)
	v.SetDefault("display.title", "rendertree")

	// -- Snapshot --
	v.SetDefault("snapshot.width", 800)
	v.SetDefault("snapshot.height", 600)

	// -- Script --
	v.SetDefault("script.label", "(inline)")

	// -- Style --
	v.SetDefault("style.user_agent", "")
}

// BindEnv makes every key overridable through the environment.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewDefaultConfig returns the configuration with nothing but defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// This should not happen with defaults
		panic(fmt.Sprintf("failed to load default config: %v", err))
	}
	return cfg
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", c.Snapshot.Width, c.Snapshot.Height)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	if c.Script.Label == "" {
		return fmt.Errorf("script.label must not be empty")
	}
	return nil
}
