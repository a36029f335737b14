package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.png", FormatPNG},
		{"OUT.PNG", FormatPNG},
		{"a/b/c.jpg", FormatJPEG},
		{"c.jpeg", FormatJPEG},
		{"c.gif", FormatGIF},
		{"c.bmp", FormatBMP},
		{"c.tif", FormatTIFF},
		{"c.tiff", FormatTIFF},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, %v, want %v", tt.path, got, err, tt.want)
		}
	}

	for _, path := range []string{"noext", "x.webp", "x.png.txt"} {
		if _, err := FormatFromPath(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", path, err)
		}
	}
}

func TestSaveImagePNG(t *testing.T) {
	c := smokeScene(t)
	path := filepath.Join(t.TempDir(), "scene.png")
	if err := c.SaveImage(path); err != nil {
		t.Fatalf("SaveImage() failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode saved png: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 400, 400) {
		t.Errorf("bounds = %v, want 400x400", img.Bounds())
	}
	if got := FromColor(img.At(100, 100)); !near(got, RGB{255, 255, 0}, 8) {
		t.Errorf("saved pixel (100,100) = %v, want yellow", got)
	}
}

func TestSaveImageRendersFirst(t *testing.T) {
	c := newTestCanvas(t, 50, 50)
	red := RGB{255, 0, 0}
	c.AddRect(image.Pt(0, 0), image.Pt(50, 50), red, 1, &red)
	// no explicit Render
	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := c.SaveImage(path); err != nil {
		t.Fatalf("SaveImage() failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decode bmp: %v", err)
	}
	if got := FromColor(img.At(25, 25)); !near(got, red, 8) {
		t.Errorf("pixel = %v, want red", got)
	}
}

func TestSaveImageOtherFormats(t *testing.T) {
	c := smokeScene(t)
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "a.jpeg", "a.gif", "a.bmp", "a.tiff"} {
		path := filepath.Join(dir, name)
		if err := c.SaveImage(path); err != nil {
			t.Errorf("SaveImage(%q) failed: %v", name, err)
			continue
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("SaveImage(%q) wrote nothing: %v", name, err)
		}
	}
}

func TestSaveImageUnsupportedExtension(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	path := filepath.Join(t.TempDir(), "out.webp")
	err := c.SaveImage(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("SaveImage() error = %v, want ErrUnsupportedFormat", err)
	}
	if !IsEncode(err) || IsIO(err) {
		t.Errorf("error kind: encode=%v io=%v, want encode", IsEncode(err), IsIO(err))
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("unsupported export should not create a file")
	}
}

func TestSaveImageUnwritablePath(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.png")
	err := c.SaveImage(path)
	if err == nil {
		t.Fatal("SaveImage() into a missing directory succeeded")
	}
	if !IsIO(err) {
		t.Errorf("SaveImage() error = %v, want IO kind", err)
	}
	var ee *ExportError
	if !errors.As(err, &ee) || ee.Op != "create" || ee.Path != path {
		t.Errorf("ExportError = %+v, want create on %s", ee, path)
	}
}

func TestEncodeTIFF(t *testing.T) {
	c := smokeScene(t)
	var buf bytes.Buffer
	if err := c.Encode(&buf, FormatTIFF); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	img, err := tiff.Decode(&buf)
	if err != nil {
		t.Fatalf("decode tiff: %v", err)
	}
	if got := FromColor(img.At(250, 100)); !near(got, RGB{0, 128, 0}, 8) {
		t.Errorf("pixel (250,100) = %v, want green", got)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	err := c.Encode(&bytes.Buffer{}, FormatUnknown)
	if !errors.Is(err, ErrUnsupportedFormat) || !IsEncode(err) {
		t.Errorf("Encode(unknown) error = %v, want unsupported encode error", err)
	}
}
