package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned by ParseColor for names it cannot resolve.
var ErrUnknownColor = errors.New("unknown color")

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Some colors used as defaults across the app.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Ptr returns a pointer to a copy of c, for the optional fill arguments.
func (c RGB) Ptr() *RGB {
	return &c
}

// FromColor drops alpha from any color.Color.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseColor resolves an SVG color name ("red", "yellow") or a #rgb / #rrggbb
// hex string.
func ParseColor(s string) (RGB, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, ErrUnknownColor)
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(s, name[1:])
	}
	c, ok := colornames.Map[name]
	if !ok {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, ErrUnknownColor)
	}
	return RGB{R: c.R, G: c.G, B: c.B}, nil
}

func parseHex(orig, hex string) (RGB, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("parse color %q: %w", orig, ErrUnknownColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", orig, ErrUnknownColor)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
