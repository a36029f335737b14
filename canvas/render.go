package canvas

import (
	"image"
	"image/draw"

	"github.com/gogpu/gg"
	"github.com/sirupsen/logrus"
)

// Render repaints the raster from scratch: background first, then every
// shape in insertion order. Calling it twice without a mutation in between
// yields identical pixels.
func (c *Canvas) Render() {
	c.dc.ClearWithColor(gg.FromColor(c.bg))
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	for _, s := range c.shapes {
		if err := c.draw(s); err != nil {
			c.log.WithFields(logrus.Fields{
				"shape_id": s.id,
				"kind":     s.kind,
				"error":    err,
			}).Warn("Failed to draw shape")
		}
	}
	c.raster = toRGBA(c.dc.Image())
	c.log.WithField("shapes", len(c.shapes)).Debug("Canvas rendered")
}

func (c *Canvas) draw(s *Shape) error {
	if s.kind == KindLine && s.p1 == s.p2 {
		return c.drawDot(s)
	}
	c.tracePath(s)
	if fill, ok := s.Fill(); ok {
		c.dc.SetColor(fill)
		if err := c.dc.FillPreserve(); err != nil {
			return err
		}
	}
	c.dc.SetColor(s.stroke)
	c.dc.SetLineWidth(float64(s.width))
	return c.dc.Stroke()
}

// drawDot paints a zero-length line as a disc of the stroke width, the way a
// round cap would if the path had any length.
func (c *Canvas) drawDot(s *Shape) error {
	c.dc.DrawCircle(float64(s.p1.X), float64(s.p1.Y), float64(s.width)/2)
	c.dc.SetColor(s.stroke)
	return c.dc.Fill()
}

func (c *Canvas) tracePath(s *Shape) {
	switch s.kind {
	case KindLine:
		c.dc.DrawLine(float64(s.p1.X), float64(s.p1.Y), float64(s.p2.X), float64(s.p2.Y))
	case KindRect:
		b := s.box
		c.dc.DrawRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
	case KindEllipse:
		b := s.box
		rx, ry := float64(b.W)/2, float64(b.H)/2
		c.dc.DrawEllipse(float64(b.X)+rx, float64(b.Y)+ry, rx, ry)
	}
}

func (c *Canvas) clearRaster() {
	c.dc.ClearWithColor(gg.FromColor(c.bg))
	c.raster = toRGBA(c.dc.Image())
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
