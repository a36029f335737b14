// Package config loads sketchpad settings from an optional sketchpad.yaml
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/example/sketchpad/canvas"
)

// DefaultPath is read when no path is given and SKETCHPAD_CONFIG is unset.
const DefaultPath = "sketchpad.yaml"

// MaxBrushWidth is the widest brush the toolbar slider offers.
const MaxBrushWidth = 30

// Environment overrides.
const (
	EnvConfig    = "SKETCHPAD_CONFIG"
	EnvLogLevel  = "SKETCHPAD_LOG_LEVEL"
	EnvExportDir = "SKETCHPAD_EXPORT_DIR"
)

type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Brush  BrushConfig  `yaml:"brush"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

type BrushConfig struct {
	Color string `yaml:"color"`
	Width int    `yaml:"width"`
	// Fill is empty for no fill.
	Fill string `yaml:"fill,omitempty"`
}

type ExportConfig struct {
	Dir         string `yaml:"dir"`
	JPEGQuality int    `yaml:"jpeg_quality"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 800, Height: 500, Background: "white"},
		Brush:  BrushConfig{Color: "black", Width: 3},
		Export: ExportConfig{Dir: ".", JPEGQuality: 95},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A .env file in the working directory is loaded first if present. An empty
// path falls back to SKETCHPAD_CONFIG, then DefaultPath; a missing file is
// not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithField("error", err).Warn("Failed to load .env file")
	}
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultPath
	}

	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional reads a YAML file over the defaults. A missing file yields
// the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		c.Export.Dir = v
	}
}

// Validate checks sizes, widths, colors and the log level.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d: must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Brush.Width < 1 || c.Brush.Width > MaxBrushWidth {
		return fmt.Errorf("brush width %d: must be within 1-%d", c.Brush.Width, MaxBrushWidth)
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d: must be within 1-100", c.Export.JPEGQuality)
	}
	if _, err := c.Background(); err != nil {
		return err
	}
	if _, err := c.BrushColor(); err != nil {
		return err
	}
	if _, err := c.BrushFill(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format %q: must be text or json", c.Log.Format)
	}
	return nil
}

func (c *Config) Background() (canvas.RGB, error) {
	return parseColorField("canvas.background", c.Canvas.Background)
}

func (c *Config) BrushColor() (canvas.RGB, error) {
	return parseColorField("brush.color", c.Brush.Color)
}

// BrushFill returns nil when no fill is configured.
func (c *Config) BrushFill() (*canvas.RGB, error) {
	if strings.TrimSpace(c.Brush.Fill) == "" || strings.EqualFold(c.Brush.Fill, "none") {
		return nil, nil
	}
	rgb, err := parseColorField("brush.fill", c.Brush.Fill)
	if err != nil {
		return nil, err
	}
	return &rgb, nil
}

func parseColorField(field, value string) (canvas.RGB, error) {
	rgb, err := canvas.ParseColor(value)
	if err != nil {
		return canvas.RGB{}, fmt.Errorf("%s: %w", field, err)
	}
	return rgb, nil
}

// SetupLogging configures the standard logrus logger.
func (c *Config) SetupLogging(debug bool) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	if c.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Fields summarizes the config for the startup log line.
func (c *Config) Fields() logrus.Fields {
	return logrus.Fields{
		"width":      c.Canvas.Width,
		"height":     c.Canvas.Height,
		"background": c.Canvas.Background,
		"export_dir": c.Export.Dir,
	}
}
