package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/example/sketchpad/config"
)

func TestExportName(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	name := exportName("out", now)
	if filepath.Dir(name) != "out" {
		t.Errorf("dir = %q, want out", filepath.Dir(name))
	}
	base := filepath.Base(name)
	if !strings.HasPrefix(base, "drawing_") || !strings.HasSuffix(base, ".png") {
		t.Fatalf("name = %q, want drawing_<ulid>.png", base)
	}
	id, err := ulid.Parse(strings.TrimSuffix(strings.TrimPrefix(base, "drawing_"), ".png"))
	if err != nil {
		t.Fatalf("embedded ulid: %v", err)
	}
	if got := ulid.Time(id.Time()); !got.Equal(now) {
		t.Errorf("ulid time = %v, want %v", got, now)
	}
	if exportName("out", now) == name {
		t.Error("two names for the same instant collided")
	}
}

func TestWithDefaultExt(t *testing.T) {
	tests := map[string]string{
		"a":         "a.png",
		"a.jpg":     "a.jpg",
		"dir/b":     "dir/b.png",
		"dir/b.TIF": "dir/b.TIF",
	}
	for in, want := range tests {
		if got := withDefaultExt(in); got != want {
			t.Errorf("withDefaultExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSameFill(t *testing.T) {
	a, b := palette[1].Ptr(), palette[1].Ptr()
	if !sameFill(a, b) || !sameFill(nil, nil) {
		t.Error("equal fills reported different")
	}
	if sameFill(a, nil) || sameFill(a, palette[2].Ptr()) {
		t.Error("different fills reported equal")
	}
}

func TestExportSample(t *testing.T) {
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "sample")
	if err := exportSample(cfg, path); err != nil {
		t.Fatalf("exportSample() failed: %v", err)
	}
	if fi, err := os.Stat(path + ".png"); err != nil || fi.Size() == 0 {
		t.Errorf("sample not written: %v", err)
	}
}
