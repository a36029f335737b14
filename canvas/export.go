package canvas

import (
	"errors"
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const defaultJPEGQuality = 95

// Format is an export image encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

var formatsByExt = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// FormatFromPath picks the encoding from the file extension, ignoring case.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatsByExt[ext]
	if !ok {
		return FormatUnknown, fmt.Errorf("extension %q: %w", ext, ErrUnsupportedFormat)
	}
	return f, nil
}

// SaveImage renders the canvas and writes it to path in the format named by
// the extension. A failed write leaves no partial file behind.
func (c *Canvas) SaveImage(path string) error {
	log := c.log.WithField("path", path)

	c.Render()

	format, err := FormatFromPath(path)
	if err != nil {
		log.WithField("error", err).Error("Failed to save image")
		return &ExportError{Op: "format", Kind: KindEncode, Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		log.WithField("error", err).Error("Failed to save image")
		return &ExportError{Op: "create", Kind: KindIO, Path: path, Err: err}
	}
	if err := c.encode(f, format); err != nil {
		f.Close()
		os.Remove(path)
		log.WithField("error", err).Error("Failed to save image")
		return &ExportError{Op: "encode", Kind: encodeKind(err), Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		log.WithField("error", err).Error("Failed to save image")
		return &ExportError{Op: "close", Kind: KindIO, Path: path, Err: err}
	}

	log.WithField("format", format).Info("Image saved")
	return nil
}

// Encode renders the canvas and writes it to w.
func (c *Canvas) Encode(w io.Writer, format Format) error {
	c.Render()
	if err := c.encode(w, format); err != nil {
		return &ExportError{Op: "encode", Kind: encodeKind(err), Err: err}
	}
	return nil
}

func (c *Canvas) encode(w io.Writer, format Format) error {
	img := c.raster
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: c.jpegQuality})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("format %v: %w", format, ErrUnsupportedFormat)
	}
	return err
}

// encodeKind separates write failures surfacing through an encoder from bad
// image data.
func encodeKind(err error) ErrorKind {
	var pe *os.PathError
	if errors.As(err, &pe) || errors.Is(err, io.ErrShortWrite) || errors.Is(err, io.ErrClosedPipe) {
		return KindIO
	}
	return KindEncode
}
