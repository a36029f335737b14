package canvas

import (
	"image"
	"math"
)

// Kind is the shape variant. The set is closed.
type Kind uint8

const (
	KindLine Kind = iota + 1
	KindRect
	KindEllipse
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// Closed reports whether the variant has an interior that can be filled.
func (k Kind) Closed() bool {
	return k == KindRect || k == KindEllipse
}

// Box is an axis-aligned bounding box with non-negative extent.
type Box struct {
	X, Y int
	W, H int
}

// BoxFromCorners normalizes two opposite corners given in any order.
func BoxFromCorners(p1, p2 image.Point) Box {
	return Box{
		X: min(p1.X, p2.X),
		Y: min(p1.Y, p2.Y),
		W: abs(p2.X - p1.X),
		H: abs(p2.Y - p1.Y),
	}
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.W == 0 || b.H == 0
}

// Rect converts to an image.Rectangle covering the same area.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// contains is inclusive of all four edges.
func (b Box) contains(p image.Point) bool {
	if b.Empty() {
		return false
	}
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Shape is one drawable record. Only the canvas that owns it can change its
// fill; everything else is fixed at creation.
type Shape struct {
	id     ID
	kind   Kind
	stroke RGB
	width  int
	fill   RGB
	filled bool

	// line geometry
	p1, p2 image.Point
	// rect and ellipse geometry
	box Box
}

func newLine(id ID, p1, p2 image.Point, stroke RGB, width int) *Shape {
	return &Shape{id: id, kind: KindLine, stroke: stroke, width: clampWidth(width), p1: p1, p2: p2}
}

func newBoxed(id ID, kind Kind, p1, p2 image.Point, stroke RGB, width int, fill *RGB) *Shape {
	s := &Shape{id: id, kind: kind, stroke: stroke, width: clampWidth(width), box: BoxFromCorners(p1, p2)}
	s.setFill(fill)
	return s
}

func (s *Shape) ID() ID      { return s.id }
func (s *Shape) Kind() Kind  { return s.kind }
func (s *Shape) Stroke() RGB { return s.stroke }
func (s *Shape) Width() int  { return s.width }

// Fill returns the fill color and whether one is set. Lines never have one.
func (s *Shape) Fill() (RGB, bool) {
	return s.fill, s.filled
}

// Endpoints returns the two points of a line. Zero for other kinds.
func (s *Shape) Endpoints() (image.Point, image.Point) {
	return s.p1, s.p2
}

// Box returns the bounding box of a rect or ellipse. Zero for lines.
func (s *Shape) Box() Box {
	return s.box
}

// setFill is a no-op that clears the fill for lines.
func (s *Shape) setFill(c *RGB) {
	if c == nil || !s.kind.Closed() {
		s.fill, s.filled = RGB{}, false
		return
	}
	s.fill, s.filled = *c, true
}

// Contains hit-tests p against the shape geometry.
func (s *Shape) Contains(p image.Point) bool {
	switch s.kind {
	case KindLine:
		return s.lineContains(p)
	case KindRect:
		return s.box.contains(p)
	case KindEllipse:
		return s.ellipseContains(p)
	default:
		return false
	}
}

// LineTolerance is how far from a line's centre a point may be and still hit
// it. Thin lines keep a 3px floor so they stay clickable.
func LineTolerance(width int) float64 {
	return math.Max(3.0, float64(width)/2+1.5)
}

func (s *Shape) lineContains(p image.Point) bool {
	return distancePointToSegment(p, s.p1, s.p2) <= LineTolerance(s.width)
}

func (s *Shape) ellipseContains(p image.Point) bool {
	if s.box.Empty() {
		return false
	}
	rx := float64(s.box.W) / 2
	ry := float64(s.box.H) / 2
	nx := (float64(p.X) - (float64(s.box.X) + rx)) / rx
	ny := (float64(p.Y) - (float64(s.box.Y) + ry)) / ry
	return nx*nx+ny*ny <= 1.0
}

func distancePointToSegment(p, a, b image.Point) float64 {
	apx := float64(p.X - a.X)
	apy := float64(p.Y - a.Y)
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	abLen2 := abx*abx + aby*aby
	if abLen2 == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	cx := float64(a.X) + t*abx
	cy := float64(a.Y) + t*aby
	return math.Hypot(float64(p.X)-cx, float64(p.Y)-cy)
}

func clampWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
