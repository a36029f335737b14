package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/example/sketchpad/canvas"
)

var (
	panelColor   = color.RGBA{20, 20, 20, 255}
	buttonColor  = color.RGBA{70, 70, 70, 255}
	activeColor  = color.RGBA{60, 110, 170, 255}
	outlineColor = color.RGBA{230, 230, 230, 255}
)

type slider struct {
	x, y   float64
	width  float64
	min    float64
	max    float64
	value  *float64
	active bool
}

// handleInput returns true while the knob is being dragged.
func (s *slider) handleInput(mx, my float64, pressed bool) bool {
	knobRadius := 10.0
	knobX := s.x + ((*s.value - s.min) / (s.max - s.min) * s.width)
	if pressed {
		if !s.active {
			if math.Hypot(mx-knobX, my-s.y) <= knobRadius*1.5 {
				s.active = true
			}
		}
		if s.active {
			t := (mx - s.x) / s.width
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			*s.value = math.Round(s.min + t*(s.max-s.min))
		}
	} else {
		s.active = false
	}
	return s.active
}

func (s *slider) draw(dst *ebiten.Image, label string) {
	barY := s.y
	trackHeight := 6.0
	vector.DrawFilledRect(dst, float32(s.x), float32(barY-trackHeight/2), float32(s.width), float32(trackHeight), color.RGBA{60, 60, 60, 255}, false)
	knobRadius := 10.0
	knobX := s.x + ((*s.value - s.min) / (s.max - s.min) * s.width)
	vector.DrawFilledCircle(dst, float32(knobX), float32(barY), float32(knobRadius), color.RGBA{200, 200, 200, 255}, false)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s: %.0f", label, *s.value), int(s.x), int(s.y)-24)
}

type button struct {
	rect    image.Rectangle
	label   string
	onClick func()
	// selected, when set, highlights the button.
	selected func() bool
}

func rectContainsPoint(rect image.Rectangle, p image.Point) bool {
	return p.X >= rect.Min.X && p.X < rect.Max.X && p.Y >= rect.Min.Y && p.Y < rect.Max.Y
}

func (b *button) contains(x, y int) bool {
	return rectContainsPoint(b.rect, image.Pt(x, y))
}

func (b *button) draw(dst *ebiten.Image) {
	bg := buttonColor
	if b.selected != nil && b.selected() {
		bg = activeColor
	}
	vector.DrawFilledRect(dst, float32(b.rect.Min.X), float32(b.rect.Min.Y), float32(b.rect.Dx()), float32(b.rect.Dy()), bg, false)
	ebitenutil.DebugPrintAt(dst, b.label, b.rect.Min.X+6, b.rect.Min.Y+8)
}

// swatch is a palette entry. A nil color stands for "no fill".
type swatch struct {
	rect     image.Rectangle
	color    *canvas.RGB
	onClick  func(*canvas.RGB)
	selected func() bool
}

func (s *swatch) contains(x, y int) bool {
	return rectContainsPoint(s.rect, image.Pt(x, y))
}

func (s *swatch) draw(dst *ebiten.Image) {
	x, y := float32(s.rect.Min.X), float32(s.rect.Min.Y)
	w, h := float32(s.rect.Dx()), float32(s.rect.Dy())
	if s.color == nil {
		vector.DrawFilledRect(dst, x, y, w, h, color.White, false)
		vector.StrokeLine(dst, x, y+h, x+w, y, 2, color.RGBA{200, 0, 0, 255}, true)
	} else {
		vector.DrawFilledRect(dst, x, y, w, h, *s.color, false)
	}
	if s.selected != nil && s.selected() {
		vector.StrokeRect(dst, x-2, y-2, w+4, h+4, 2, outlineColor, false)
	}
}

type confirmDialog struct {
	message   string
	visible   bool
	onConfirm func()
	onCancel  func()
}

const (
	dialogW = 400
	dialogH = 160
)

func (c *confirmDialog) layout(viewW, viewH int) (box, yes, no image.Rectangle) {
	x := (viewW - dialogW) / 2
	y := (viewH - dialogH) / 2
	box = image.Rect(x, y, x+dialogW, y+dialogH)
	yes = image.Rect(x+40, y+90, x+140, y+130)
	no = image.Rect(x+dialogW-140, y+90, x+dialogW-40, y+130)
	return box, yes, no
}

func (c *confirmDialog) draw(dst *ebiten.Image) {
	if !c.visible {
		return
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, 120}, false)
	box, yesRect, noRect := c.layout(w, h)
	vector.DrawFilledRect(dst, float32(box.Min.X), float32(box.Min.Y), float32(box.Dx()), float32(box.Dy()), color.RGBA{30, 30, 30, 255}, false)
	ebitenutil.DebugPrintAt(dst, c.message, box.Min.X+20, box.Min.Y+30)
	vector.DrawFilledRect(dst, float32(yesRect.Min.X), float32(yesRect.Min.Y), float32(yesRect.Dx()), float32(yesRect.Dy()), color.RGBA{70, 120, 70, 255}, false)
	vector.DrawFilledRect(dst, float32(noRect.Min.X), float32(noRect.Min.Y), float32(noRect.Dx()), float32(noRect.Dy()), color.RGBA{120, 70, 70, 255}, false)
	ebitenutil.DebugPrintAt(dst, "Yes", yesRect.Min.X+38, yesRect.Min.Y+12)
	ebitenutil.DebugPrintAt(dst, "No", noRect.Min.X+42, noRect.Min.Y+12)
}

func (c *confirmDialog) handleInput(mx, my, viewW, viewH int, clicked bool) {
	if !c.visible || !clicked {
		return
	}
	_, yesRect, noRect := c.layout(viewW, viewH)
	if rectContainsPoint(yesRect, image.Pt(mx, my)) {
		c.visible = false
		if c.onConfirm != nil {
			c.onConfirm()
		}
	} else if rectContainsPoint(noRect, image.Pt(mx, my)) {
		c.visible = false
		if c.onCancel != nil {
			c.onCancel()
		}
	}
}

// strokeDashed draws a-b as alternating dashes for the in-progress preview.
func strokeDashed(dst *ebiten.Image, a, b image.Point, offsetY, width float32, clr color.Color) {
	const dash, gap = 6.0, 4.0
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	for d := 0.0; d < length; d += dash + gap {
		end := math.Min(d+dash, length)
		vector.StrokeLine(dst,
			float32(x0+ux*d), float32(y0+uy*d)+offsetY,
			float32(x0+ux*end), float32(y0+uy*end)+offsetY,
			width, clr, true)
	}
}
