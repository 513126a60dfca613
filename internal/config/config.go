// Package config loads user preferences from ~/.roster/config.yaml and
// ROSTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clubroster/internal/avatar"

	"github.com/spf13/viper"
)

type Config struct {
	// Seed is the seed file loaded at startup; empty means the built-in sample club.
	Seed string `mapstructure:"seed"`

	// AvatarMaxPixels bounds the longer edge of embedded avatars (0 disables scaling).
	AvatarMaxPixels int `mapstructure:"avatar_max_pixels"`

	// MarkdownStyle is a glamour standard style ("dark", "light", "notty", ...).
	// Empty selects one from the terminal background.
	MarkdownStyle string `mapstructure:"markdown_style"`

	// DebugLog is a file that receives the TUI's JSON debug log.
	DebugLog string `mapstructure:"debug_log"`
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.roster).
	if v := strings.TrimSpace(os.Getenv("ROSTER_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".roster"), nil
}

// Load reads config.yaml from Dir (missing file is fine) and applies ROSTER_*
// environment overrides, e.g. ROSTER_SEED or ROSTER_AVATAR_MAX_PIXELS.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("seed", "")
	v.SetDefault("avatar_max_pixels", avatar.DefaultMaxPixels)
	v.SetDefault("markdown_style", "")
	v.SetDefault("debug_log", "")

	v.SetEnvPrefix("ROSTER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.AvatarMaxPixels < 0 {
		cfg.AvatarMaxPixels = 0
	}
	return &cfg, nil
}
