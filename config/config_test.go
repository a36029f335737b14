package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/canvas"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOptional() failed: %v", err)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 500 || cfg.Brush.Width != 3 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOptionalOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sketchpad.yaml", `
canvas:
  width: 400
  height: 300
brush:
  color: red
  fill: yellow
export:
  jpeg_quality: 80
`)
	cfg, err := LoadOptional(path)
	if err != nil {
		t.Fatalf("LoadOptional() failed: %v", err)
	}
	if cfg.Canvas.Width != 400 || cfg.Canvas.Height != 300 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Canvas.Background != "white" {
		t.Errorf("unset background = %q, want default white", cfg.Canvas.Background)
	}
	if cfg.Brush.Width != 3 || cfg.Export.JPEGQuality != 80 {
		t.Errorf("brush width = %d, jpeg quality = %d", cfg.Brush.Width, cfg.Export.JPEGQuality)
	}
	fill, err := cfg.BrushFill()
	if err != nil || fill == nil || *fill != (canvas.RGB{R: 255, G: 255}) {
		t.Errorf("BrushFill() = %v, %v, want yellow", fill, err)
	}
}

func TestLoadOptionalBadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "canvas: [1, 2\n")
	if _, err := LoadOptional(path); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("LoadOptional() error = %v, want parse failure", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.yaml", "log:\n  level: warn\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvExportDir, dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want env override debug", cfg.Log.Level)
	}
	if cfg.Export.Dir != dir {
		t.Errorf("export dir = %q, want %q", cfg.Export.Dir, dir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, "canvas size"},
		{"thin brush", func(c *Config) { c.Brush.Width = 0 }, "brush width"},
		{"wide brush", func(c *Config) { c.Brush.Width = MaxBrushWidth + 1 }, "brush width"},
		{"bad background", func(c *Config) { c.Canvas.Background = "plaid" }, "canvas.background"},
		{"bad fill", func(c *Config) { c.Brush.Fill = "#12" }, "brush.fill"},
		{"bad quality", func(c *Config) { c.Export.JPEGQuality = 101 }, "jpeg quality"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestBrushFillNone(t *testing.T) {
	cfg := Default()
	for _, v := range []string{"", "none", "NONE"} {
		cfg.Brush.Fill = v
		fill, err := cfg.BrushFill()
		if err != nil || fill != nil {
			t.Errorf("BrushFill(%q) = %v, %v, want nil", v, fill, err)
		}
	}
}
