package canvas

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"red", RGB{255, 0, 0}},
		{"Yellow", RGB{255, 255, 0}},
		{" green ", RGB{0, 128, 0}},
		{"white", White},
		{"#000", Black},
		{"#1a2B3c", RGB{0x1a, 0x2b, 0x3c}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12", "#gggggg", "#1234567"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrUnknownColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrUnknownColor", in, err)
		}
	}
}

func TestRGBIsOpaque(t *testing.T) {
	_, _, _, a := RGB{1, 2, 3}.RGBA()
	if a != 0xffff {
		t.Errorf("alpha = %#x, want 0xffff", a)
	}
	if got := FromColor(color.NRGBA{R: 10, G: 20, B: 30, A: 255}); got != (RGB{10, 20, 30}) {
		t.Errorf("FromColor = %v", got)
	}
	if s := (RGB{255, 0, 16}).String(); s != "#ff0010" {
		t.Errorf("String() = %q", s)
	}
}
