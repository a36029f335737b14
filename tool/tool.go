// Package tool turns pointer drags into shapes on a canvas.
//
// A Drafter tracks one gesture at a time. While the pointer moves it only
// produces preview outlines; the canvas is touched once, when the gesture
// finishes.
package tool

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/example/sketchpad/canvas"
)

var (
	// ErrNotDrawing is returned by Finish when no gesture was started.
	ErrNotDrawing = errors.New("no gesture in progress")
	// ErrNothingToFill is returned when a bucket click lands on no rect or
	// ellipse.
	ErrNothingToFill = errors.New("no fillable shape at point")
	// ErrUnknownKind is returned by ParseKind.
	ErrUnknownKind = errors.New("unknown tool")
)

// Kind selects what a gesture produces.
type Kind int

const (
	Rect Kind = iota
	Ellipse
	Line
	Pen
	Bucket
)

// Kinds lists every tool in toolbar order.
var Kinds = []Kind{Rect, Ellipse, Line, Pen, Bucket}

func (k Kind) String() string {
	switch k {
	case Rect:
		return "rect"
	case Ellipse:
		return "ellipse"
	case Line:
		return "line"
	case Pen:
		return "pen"
	case Bucket:
		return "bucket"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	switch name {
	case "rectangle":
		return Rect, nil
	case "circle":
		return Ellipse, nil
	case "fill":
		return Bucket, nil
	}
	return 0, fmt.Errorf("parse tool %q: %w", s, ErrUnknownKind)
}

// Style is applied to shapes as they are committed.
type Style struct {
	Stroke canvas.RGB
	Width  int
	// Fill is used for new rects and ellipses and by the bucket. Nil means
	// no fill.
	Fill *canvas.RGB
}

// Segment is one straight piece of a preview outline.
type Segment struct {
	A, B image.Point
}

// ellipseChords is how many segments approximate an ellipse preview.
const ellipseChords = 48

type Drafter struct {
	kind  Kind
	style Style

	drawing    bool
	start, end image.Point
	points     []image.Point
}

func NewDrafter(kind Kind, style Style) *Drafter {
	return &Drafter{kind: kind, style: style}
}

func (d *Drafter) Kind() Kind   { return d.kind }
func (d *Drafter) Style() Style { return d.style }

// Active reports whether a gesture is in progress.
func (d *Drafter) Active() bool { return d.drawing }

// SetKind switches tools. A gesture in progress is dropped.
func (d *Drafter) SetKind(k Kind) {
	d.Cancel()
	d.kind = k
}

// SetStyle takes effect for the next committed shape.
func (d *Drafter) SetStyle(s Style) {
	d.style = s
}

// Begin starts a gesture at p.
func (d *Drafter) Begin(p image.Point) {
	d.drawing = true
	d.start, d.end = p, p
	d.points = append(d.points[:0], p)
}

// Move updates the gesture. It does nothing when no gesture is active.
func (d *Drafter) Move(p image.Point) {
	if !d.drawing {
		return
	}
	d.end = p
	if d.kind == Pen && p != d.points[len(d.points)-1] {
		d.points = append(d.points, p)
	}
}

// Cancel drops the gesture without committing anything.
func (d *Drafter) Cancel() {
	d.drawing = false
	d.points = d.points[:0]
}

// Finish ends the gesture at p and commits the result to c. It returns the
// ids of the shapes added, or for the bucket the id of the shape filled.
func (d *Drafter) Finish(p image.Point, c *canvas.Canvas) ([]canvas.ID, error) {
	if !d.drawing {
		return nil, ErrNotDrawing
	}
	d.Move(p)
	defer d.Cancel()

	s := d.style
	switch d.kind {
	case Rect:
		return []canvas.ID{c.AddRect(d.start, d.end, s.Stroke, s.Width, s.Fill)}, nil
	case Ellipse:
		return []canvas.ID{c.AddEllipse(d.start, d.end, s.Stroke, s.Width, s.Fill)}, nil
	case Line:
		return []canvas.ID{c.AddLine(d.start, d.end, s.Stroke, s.Width)}, nil
	case Pen:
		return d.commitPen(c), nil
	case Bucket:
		id, ok := c.SetFillAtPoint(d.end, s.Fill)
		if !ok {
			return nil, fmt.Errorf("fill at %v: %w", d.end, ErrNothingToFill)
		}
		return []canvas.ID{id}, nil
	default:
		return nil, fmt.Errorf("finish %v: %w", d.kind, ErrUnknownKind)
	}
}

// commitPen stores a freehand stroke as one line per sampled step. A click
// without movement becomes a zero-length line, which renders as a dot.
func (d *Drafter) commitPen(c *canvas.Canvas) []canvas.ID {
	s := d.style
	if len(d.points) == 1 {
		return []canvas.ID{c.AddLine(d.points[0], d.points[0], s.Stroke, s.Width)}
	}
	ids := make([]canvas.ID, 0, len(d.points)-1)
	for i := 0; i < len(d.points)-1; i++ {
		ids = append(ids, c.AddLine(d.points[i], d.points[i+1], s.Stroke, s.Width))
	}
	return ids
}

// Preview returns the outline of the gesture in progress, or nil.
func (d *Drafter) Preview() []Segment {
	if !d.drawing {
		return nil
	}
	switch d.kind {
	case Rect:
		return rectOutline(canvas.BoxFromCorners(d.start, d.end))
	case Ellipse:
		return ellipseOutline(canvas.BoxFromCorners(d.start, d.end), ellipseChords)
	case Line:
		return []Segment{{A: d.start, B: d.end}}
	case Pen:
		out := make([]Segment, 0, len(d.points))
		for i := 0; i < len(d.points)-1; i++ {
			out = append(out, Segment{A: d.points[i], B: d.points[i+1]})
		}
		return out
	default:
		return nil
	}
}

func rectOutline(b canvas.Box) []Segment {
	tl := image.Pt(b.X, b.Y)
	tr := image.Pt(b.X+b.W, b.Y)
	br := image.Pt(b.X+b.W, b.Y+b.H)
	bl := image.Pt(b.X, b.Y+b.H)
	return []Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

func ellipseOutline(b canvas.Box, n int) []Segment {
	rx, ry := float64(b.W)/2, float64(b.H)/2
	cx, cy := float64(b.X)+rx, float64(b.Y)+ry
	at := func(i int) image.Point {
		a := 2 * math.Pi * float64(i) / float64(n)
		return image.Pt(int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a))))
	}
	out := make([]Segment, n)
	prev := at(0)
	for i := 1; i <= n; i++ {
		next := at(i)
		out[i-1] = Segment{A: prev, B: next}
		prev = next
	}
	return out
}
