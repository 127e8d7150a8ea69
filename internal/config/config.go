// Package config loads panelnav settings and the document definition with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"panelnav/internal/document"
	"panelnav/internal/location"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	StartURL string         `mapstructure:"start_url"`
	History  HistoryConfig  `mapstructure:"history"`
	Labels   string         `mapstructure:"labels"`
	Log      LogConfig      `mapstructure:"log"`
	Progress ProgressConfig `mapstructure:"progress"`
	Input    InputConfig    `mapstructure:"input"`

	Panels  []document.PanelDef  `mapstructure:"panels"`
	Buttons []document.ButtonDef `mapstructure:"buttons"`

	// File is the config file that was read ("" when none).
	File string `mapstructure:"-"`
}

// HistoryConfig selects the history backend. An empty path keeps history in memory.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ProgressConfig tunes scroll-to-progress mapping.
type ProgressConfig struct {
	// RowUnits is how many scroll units one terminal row represents.
	RowUnits     float64 `mapstructure:"row_units"`
	SmoothFrames int     `mapstructure:"smooth_frames"`
	// WheelRows is how many rows one wheel notch scrolls.
	WheelRows int `mapstructure:"wheel_rows"`
}

// InputConfig tunes key handling.
type InputConfig struct {
	EscapeRelease time.Duration `mapstructure:"escape_release"`
}

// Dir returns $XDG_CONFIG_HOME/panelnav (or ~/.config/panelnav).
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "panelnav"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("start_url", location.DefaultURL)
	v.SetDefault("history.path", "")
	v.SetDefault("labels", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("progress.row_units", 16.0)
	v.SetDefault("progress.smooth_frames", 8)
	v.SetDefault("progress.wheel_rows", 3)
	v.SetDefault("input.escape_release", "600ms")
}

// Load reads configuration from path (or the default config dir when path is
// empty), PANELNAV_* environment variables and defaults. A missing default
// config file is not an error; the built-in document is used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PANELNAV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if len(cfg.Panels) == 0 {
		cfg.Panels = DefaultPanels()
		if len(cfg.Buttons) == 0 {
			cfg.Buttons = DefaultButtons()
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the document definition and numeric settings. When no panel
// is marked visible, the first one becomes visible.
func (c *Config) Validate() error {
	if len(c.Panels) == 0 {
		return errors.New("config: at least one panel is required")
	}
	seen := make(map[string]bool, len(c.Panels))
	visible := 0
	for _, p := range c.Panels {
		if p.ID == "" {
			return errors.New("config: panel without id")
		}
		if seen[p.ID] {
			return fmt.Errorf("config: duplicate panel id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Visible {
			visible++
		}
	}
	if visible > 1 {
		return fmt.Errorf("config: %d panels marked visible, want one", visible)
	}
	if visible == 0 {
		c.Panels[0].Visible = true
	}
	for _, b := range c.Buttons {
		if b.ID == "" || b.Target == "" {
			return fmt.Errorf("config: button %q needs id and target", b.ID)
		}
	}
	if c.Progress.RowUnits <= 0 {
		return fmt.Errorf("config: progress.row_units must be positive, got %v", c.Progress.RowUnits)
	}
	if _, err := location.Parse(c.StartURL); err != nil {
		return fmt.Errorf("config: start_url: %w", err)
	}
	return nil
}

// Document builds the configured document.
func (c *Config) Document() *document.Document {
	return document.Build(c.Panels, c.Buttons)
}
