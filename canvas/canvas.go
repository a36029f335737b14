// Package canvas is an offscreen drawing surface holding an ordered list of
// shapes. Shapes are painted oldest first, so the newest one is on top both
// visually and for hit testing.
//
// A Canvas is not safe for concurrent use.
package canvas

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/sirupsen/logrus"
)

type Canvas struct {
	width, height int
	bg            RGB
	shapes        []*Shape

	ids         *Allocator
	log         *logrus.Entry
	jpegQuality int

	dc     *gg.Context
	raster *image.RGBA
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithAllocator sets where shape ids come from. By default every canvas
// shares one process-wide allocator.
func WithAllocator(a *Allocator) Option {
	return func(c *Canvas) {
		if a != nil {
			c.ids = a
		}
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *Canvas) {
		if l != nil {
			c.log = l
		}
	}
}

// WithJPEGQuality sets the quality used for .jpg exports (1-100).
func WithJPEGQuality(q int) Option {
	return func(c *Canvas) {
		if q >= 1 && q <= 100 {
			c.jpegQuality = q
		}
	}
}

// New creates a width x height canvas cleared to bg. The size is fixed.
func New(width, height int, bg RGB, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new canvas %dx%d: %w", width, height, ErrInvalidSize)
	}
	c := &Canvas{
		width:       width,
		height:      height,
		bg:          bg,
		ids:         defaultAllocator,
		log:         logrus.WithField("component", "canvas"),
		jpegQuality: defaultJPEGQuality,
		dc:          gg.NewContext(width, height),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.clearRaster()
	return c, nil
}

func (c *Canvas) Width() int      { return c.width }
func (c *Canvas) Height() int     { return c.height }
func (c *Canvas) Background() RGB { return c.bg }

// Len returns the number of shapes.
func (c *Canvas) Len() int { return len(c.shapes) }

// Shapes returns a copy of the shape list in insertion order.
func (c *Canvas) Shapes() []Shape {
	out := make([]Shape, len(c.shapes))
	for i, s := range c.shapes {
		out[i] = *s
	}
	return out
}

// Shape returns a copy of the shape with the given id.
func (c *Canvas) Shape(id ID) (Shape, bool) {
	s := c.find(id)
	if s == nil {
		return Shape{}, false
	}
	return *s, true
}

// AddLine appends a line. Widths below 1 are raised to 1.
func (c *Canvas) AddLine(p1, p2 image.Point, stroke RGB, width int) ID {
	return c.add(newLine(c.ids.Next(), p1, p2, stroke, width))
}

// AddRect appends a rectangle spanning the two corners, given in any order.
// A nil fill leaves the interior transparent.
func (c *Canvas) AddRect(p1, p2 image.Point, stroke RGB, width int, fill *RGB) ID {
	return c.add(newBoxed(c.ids.Next(), KindRect, p1, p2, stroke, width, fill))
}

// AddEllipse appends the ellipse inscribed in the box spanning the two
// corners.
func (c *Canvas) AddEllipse(p1, p2 image.Point, stroke RGB, width int, fill *RGB) ID {
	return c.add(newBoxed(c.ids.Next(), KindEllipse, p1, p2, stroke, width, fill))
}

func (c *Canvas) add(s *Shape) ID {
	c.shapes = append(c.shapes, s)
	c.log.WithFields(logrus.Fields{
		"shape_id": s.id,
		"kind":     s.kind,
		"width":    s.width,
	}).Debug("Shape added")
	return s.id
}

// SetFillByID sets or, with nil, removes the fill of a shape. Lines accept the
// call but keep no fill.
func (c *Canvas) SetFillByID(id ID, fill *RGB) error {
	s := c.find(id)
	if s == nil {
		return fmt.Errorf("set fill of shape %d: %w", id, ErrNotFound)
	}
	s.setFill(fill)
	return nil
}

// SetFillAtPoint fills the topmost rect or ellipse under p and returns its
// id. Lines are skipped even when p lies on them.
func (c *Canvas) SetFillAtPoint(p image.Point, fill *RGB) (ID, bool) {
	for i := len(c.shapes) - 1; i >= 0; i-- {
		s := c.shapes[i]
		if !s.kind.Closed() {
			continue
		}
		if s.Contains(p) {
			s.setFill(fill)
			c.log.WithFields(logrus.Fields{
				"shape_id": s.id,
				"x":        p.X,
				"y":        p.Y,
			}).Debug("Fill applied")
			return s.id, true
		}
	}
	return 0, false
}

// Clear drops every shape and resets the raster. Ids keep counting up.
func (c *Canvas) Clear() {
	c.shapes = nil
	c.clearRaster()
	c.log.Debug("Canvas cleared")
}

// Image returns a copy of the raster as of the last Render or Clear.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(c.raster.Rect)
	copy(img.Pix, c.raster.Pix)
	return img
}

// At returns the raster color at (x, y). Out of range reads return the
// background.
func (c *Canvas) At(x, y int) RGB {
	if !image.Pt(x, y).In(c.raster.Rect) {
		return c.bg
	}
	px := c.raster.RGBAAt(x, y)
	return RGB{R: px.R, G: px.G, B: px.B}
}

func (c *Canvas) find(id ID) *Shape {
	for _, s := range c.shapes {
		if s.id == id {
			return s
		}
	}
	return nil
}
