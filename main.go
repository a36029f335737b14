package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/example/sketchpad/canvas"
	"github.com/example/sketchpad/config"
	"github.com/example/sketchpad/tool"
)

const (
	uiHeight     = 110
	minViewWidth = 1180
)

// palette is the toolbar color row.
var palette = []canvas.RGB{
	{0, 0, 0},
	{255, 0, 0},
	{0, 128, 0},
	{0, 0, 255},
	{255, 255, 0},
	{255, 0, 255},
}

type Game struct {
	canvas  *canvas.Canvas
	surface *ebiten.Image
	dirty   bool

	drafter   *tool.Drafter
	stroke    canvas.RGB
	fill      *canvas.RGB
	brushSize float64

	buttons      []*button
	swatches     []*swatch
	sliders      []*slider
	confirm      confirmDialog
	lastMouseBtn bool

	exportDir string
	saves     chan saveRequest
	saving    bool
	log       *logrus.Entry
}

func NewGame(cfg *config.Config) (*Game, error) {
	bg, err := cfg.Background()
	if err != nil {
		return nil, err
	}
	stroke, err := cfg.BrushColor()
	if err != nil {
		return nil, err
	}
	fill, err := cfg.BrushFill()
	if err != nil {
		return nil, err
	}
	c, err := canvas.New(cfg.Canvas.Width, cfg.Canvas.Height, bg,
		canvas.WithJPEGQuality(cfg.Export.JPEGQuality))
	if err != nil {
		return nil, err
	}

	g := &Game{
		canvas:    c,
		surface:   ebiten.NewImage(cfg.Canvas.Width, cfg.Canvas.Height),
		dirty:     true,
		stroke:    stroke,
		fill:      fill,
		brushSize: float64(cfg.Brush.Width),
		exportDir: cfg.Export.Dir,
		saves:     make(chan saveRequest, 1),
		log:       logrus.WithField("component", "app"),
	}
	g.drafter = tool.NewDrafter(tool.Rect, g.style())
	g.setupUI()
	return g, nil
}

func (g *Game) style() tool.Style {
	return tool.Style{Stroke: g.stroke, Width: int(g.brushSize), Fill: g.fill}
}

func (g *Game) setupUI() {
	labels := map[tool.Kind]string{
		tool.Rect:    "Rectangle",
		tool.Ellipse: "Ellipse",
		tool.Line:    "Line",
		tool.Pen:     "Pen",
		tool.Bucket:  "Fill",
	}
	x := 20
	for _, k := range tool.Kinds {
		g.buttons = append(g.buttons, &button{
			rect:     image.Rect(x, 12, x+100, 48),
			label:    labels[k],
			onClick:  func() { g.drafter.SetKind(k) },
			selected: func() bool { return g.drafter.Kind() == k },
		})
		x += 110
	}
	g.buttons = append(g.buttons,
		&button{rect: image.Rect(x+20, 12, x+120, 48), label: "Save", onClick: g.requestSave},
		&button{rect: image.Rect(x+130, 12, x+230, 48), label: "Clear", onClick: g.confirmClear},
	)

	x = 20
	for i := range palette {
		c := palette[i]
		g.swatches = append(g.swatches, &swatch{
			rect:     image.Rect(x, 62, x+24, 86),
			color:    &c,
			onClick:  func(c *canvas.RGB) { g.stroke = *c },
			selected: func() bool { return g.stroke == c },
		})
		x += 32
	}
	x += 40
	fills := []*canvas.RGB{nil}
	for i := range palette {
		fills = append(fills, palette[i].Ptr())
	}
	for _, c := range fills {
		g.swatches = append(g.swatches, &swatch{
			rect:     image.Rect(x, 62, x+24, 86),
			color:    c,
			onClick:  func(c *canvas.RGB) { g.fill = c },
			selected: func() bool { return sameFill(g.fill, c) },
		})
		x += 32
	}

	g.sliders = []*slider{
		{x: float64(x + 60), y: 80, width: 200, min: 1, max: config.MaxBrushWidth, value: &g.brushSize},
	}
}

func sameFill(a, b *canvas.RGB) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) Update() error {
	g.drainSaves()

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := pressed && !g.lastMouseBtn
	viewW, viewH := ebiten.WindowSize()

	defer func() {
		g.lastMouseBtn = pressed
		g.refresh()
	}()

	if g.confirm.visible {
		g.confirm.handleInput(mx, my, viewW, viewH, clicked)
		return nil
	}

	if g.drafter.Active() {
		g.handleDrawing(mx, my, pressed)
		return nil
	}

	for _, s := range g.sliders {
		if s.handleInput(float64(mx), float64(my), pressed) {
			g.drafter.SetStyle(g.style())
			return nil
		}
	}

	if clicked {
		for _, b := range g.buttons {
			if b.contains(mx, my) {
				b.onClick()
				return nil
			}
		}
		for _, s := range g.swatches {
			if s.contains(mx, my) {
				s.onClick(s.color)
				g.drafter.SetStyle(g.style())
				return nil
			}
		}
	}

	if my <= uiHeight {
		return nil
	}
	if clicked {
		g.drafter.SetStyle(g.style())
		g.drafter.Begin(g.canvasPoint(mx, my))
	}
	return nil
}

func (g *Game) canvasPoint(mx, my int) image.Point {
	return image.Pt(mx, my-uiHeight)
}

func (g *Game) handleDrawing(mx, my int, pressed bool) {
	p := g.canvasPoint(mx, my)
	if pressed {
		g.drafter.Move(p)
		return
	}
	kind := g.drafter.Kind()
	ids, err := g.drafter.Finish(p, g.canvas)
	switch {
	case errors.Is(err, tool.ErrNothingToFill):
		g.log.WithField("point", p).Debug("Nothing to fill")
	case err != nil:
		g.log.WithField("error", err).Warn("Failed to finish gesture")
	default:
		g.log.WithFields(logrus.Fields{
			"tool":   kind,
			"shapes": len(ids),
		}).Debug("Gesture committed")
		g.dirty = true
	}
}

// refresh re-renders the canvas after a committed change and uploads it.
func (g *Game) refresh() {
	if !g.dirty {
		return
	}
	g.canvas.Render()
	g.surface.WritePixels(g.canvas.Image().Pix)
	g.dirty = false
}

func (g *Game) confirmClear() {
	g.confirm = confirmDialog{
		message: "Clear the canvas?",
		visible: true,
		onConfirm: func() {
			g.drafter.Cancel()
			g.canvas.Clear()
			g.dirty = true
			g.log.Info("Canvas cleared")
		},
		onCancel: func() {},
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, uiHeight)
	screen.DrawImage(g.surface, op)

	for _, seg := range g.drafter.Preview() {
		strokeDashed(screen, seg.A, seg.B, uiHeight, float32(max(1, g.brushSize/2)), g.stroke)
	}

	vector.DrawFilledRect(screen, 0, 0, float32(w), uiHeight, panelColor, false)
	for _, b := range g.buttons {
		b.draw(screen)
	}
	for _, s := range g.swatches {
		s.draw(screen)
	}
	g.sliders[0].draw(screen, "Width")

	fill := "none"
	if g.fill != nil {
		fill = g.fill.String()
	}
	status := fmt.Sprintf("Tool: %s  Stroke: %s  Fill: %s  Shapes: %d",
		g.drafter.Kind(), g.stroke, fill, g.canvas.Len())
	ebitenutil.DebugPrintAt(screen, status, 20, uiHeight-20)

	if g.confirm.visible {
		g.confirm.draw(screen)
	}
}

func main() {
	configPath := flag.String("config", "", "path to sketchpad.yaml")
	exportPath := flag.String("export", "", "render the sample scene to this file and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithField("error", err).Fatal("Failed to load config")
	}
	cfg.SetupLogging(*debug)
	if *debug {
		gg.SetLogger(slog.Default())
	}
	logrus.WithFields(cfg.Fields()).Info("Starting sketchpad")

	if *exportPath != "" {
		if err := exportSample(cfg, *exportPath); err != nil {
			logrus.WithField("error", err).Error("Failed to export sample")
			os.Exit(1)
		}
		return
	}

	game, err := NewGame(cfg)
	if err != nil {
		logrus.WithField("error", err).Fatal("Failed to create canvas")
	}
	ebiten.SetWindowSize(max(cfg.Canvas.Width, minViewWidth), cfg.Canvas.Height+uiHeight)
	ebiten.SetWindowTitle("Sketchpad")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
